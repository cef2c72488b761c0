// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: modal/session.go
// Summary: Composes the compiled tables, the state machine and the live
// gesture of one modal.
// Usage: Call Layout whenever the viewport changes, drive it with Present,
// Dismiss, SnapTo and the drag methods, and hand each returned Plan to an
// animator. When the animator finishes it calls Complete with the plan ID.
// Notes: Only the newest plan may complete; older completions are ignored.
// A drag keeps the table and offset it started with until it ends.

package modal

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/framegrace/texelmodal/geom"
	"github.com/framegrace/texelmodal/keyframe"
	"github.com/framegrace/texelmodal/layout"
	"github.com/framegrace/texelmodal/snap"
)

var (
	ErrNotCompiled = errors.New("modal: layout has not been computed")
	ErrNoGesture   = errors.New("modal: no drag in progress")
)

// GestureSample is the live state of a drag.
type GestureSample struct {
	Point    geom.Point
	Previous geom.Point
	Initial  geom.Point
	Velocity geom.Point
}

type drag struct {
	sample     GestureSample
	table      *snap.Table
	offset     float64
	presenting bool
}

// Plan tells an animator where to go. Events are the lifecycle events
// emitted when the plan was created.
type Plan struct {
	ID           uint64
	From, To     int
	Target       snap.InterpolationPoint
	FromProgress float64
	ToProgress   float64
	// Velocity is the release speed in progress units per second; zero for
	// programmatic plans.
	Velocity float64
	Events   []Event
}

// Frame is what a drag update displays.
type Frame struct {
	Progress float64
	Sample   snap.Sample
	State    State
}

// Session is one modal instance. It is not safe for concurrent use.
type Session struct {
	Compiler   *snap.Compiler
	Projection snap.Projection
	// PresentIndex is the point Present snaps to; 0 means the first point
	// after the undershoot.
	PresentIndex int
	Logger       zerolog.Logger

	points  []snap.SnapPointConfig
	ctx     layout.Context
	config  *snap.Table
	active  snap.ActiveTable
	custom  *snap.SnapPointConfig
	machine *Machine

	index    int
	progress float64
	latest   uint64
	pending  *Plan
	drag     *drag
}

// NewSession returns a session over points. Layout must be called before
// anything else.
func NewSession(c *snap.Compiler, points []snap.SnapPointConfig) *Session {
	if c == nil {
		c = snap.NewCompiler(geom.BottomToTop)
	}
	return &Session{
		Compiler:   c,
		Projection: snap.DefaultProjection(),
		Logger:     zerolog.Nop(),
		points:     append([]snap.SnapPointConfig(nil), points...),
		machine:    NewMachine(),
	}
}

// Machine exposes the lifecycle machine, mainly for Listen.
func (s *Session) Machine() *Machine { return s.machine }

// State is shorthand for Machine().State().
func (s *Session) State() State { return s.machine.State() }

// Index is the index of the point the modal last settled on.
func (s *Session) Index() int { return s.index }

// Progress is the last displayed progress.
func (s *Session) Progress() float64 { return s.progress }

// Active returns the table currently driving the modal.
func (s *Session) Active() snap.ActiveTable { return s.active }

// Config returns the config table even while an override is active.
func (s *Session) Config() *snap.Table { return s.config }

// Dragging reports whether a drag is live.
func (s *Session) Dragging() bool { return s.drag != nil }

// Layout rebuilds the config table, and the override table if one is
// active, for ctx. A live drag keeps its own table and offset.
func (s *Session) Layout(ctx layout.Context) error {
	t, err := s.Compiler.Compile(s.points, ctx)
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	s.config, s.ctx = t, ctx
	if s.active.IsOverride() && s.custom != nil {
		ov, err := s.Compiler.CompileOverride(s.points, s.active.OverrideIndex, *s.custom, ctx)
		if err != nil {
			return fmt.Errorf("layout: %w", err)
		}
		s.active = ov
	} else {
		s.active = snap.ConfigActive(t)
	}
	if last := s.active.Table.Len() - 1; s.index > last {
		s.index = last
	}
	if s.pending != nil {
		s.retarget(s.pending)
	} else if !s.Dragging() {
		s.progress = s.active.Points()[s.index].Percent
	}
	s.Logger.Debug().
		Str("viewport", ctx.Viewport.String()).
		Str("table", s.active.Kind.String()).
		Int("points", s.active.Table.Len()).
		Msg("Session: layout")
	return nil
}

// retarget points p at its destination in the current table, so a plan
// made before a relayout still lands on the rebuilt knot.
func (s *Session) retarget(p *Plan) {
	pts := s.active.Points()
	if p.To >= len(pts) {
		p.To = len(pts) - 1
	}
	p.Target = pts[p.To]
	p.ToProgress = pts[p.To].Percent
}

// Pending returns the plan waiting for Complete. Its target follows
// relayouts, so animators should re-read it while they run.
func (s *Session) Pending() (Plan, bool) {
	if s.pending == nil {
		return Plan{}, false
	}
	return *s.pending, true
}

// Sample returns the property set at the displayed progress.
func (s *Session) Sample() (snap.Sample, error) {
	if !s.active.Valid() {
		return snap.Sample{}, ErrNotCompiled
	}
	return s.active.Table.ValuesAt(s.progress)
}

// Seek records the progress an animator is currently showing, so a drag
// that interrupts it starts from what is on screen.
func (s *Session) Seek(progress float64) { s.progress = progress }

// Present shows the modal at PresentIndex.
func (s *Session) Present() (Plan, error) {
	if !s.active.Valid() {
		return Plan{}, ErrNotCompiled
	}
	i := s.PresentIndex
	if i <= 0 {
		i = 1
	}
	return s.SnapTo(i)
}

// Dismiss hides the modal by animating to the undershoot point.
func (s *Session) Dismiss() (Plan, error) {
	if !s.active.Valid() {
		return Plan{}, ErrNotCompiled
	}
	return s.plan(0, DismissingProgrammatic, 0), nil
}

// SnapTo animates to index in the active table. Boundary points that do
// not allow snapping are adjusted, and index 0 dismisses.
func (s *Session) SnapTo(index int) (Plan, error) {
	if !s.active.Valid() {
		return Plan{}, ErrNotCompiled
	}
	t := s.active.Table
	if index < 0 || index >= t.Len() {
		return Plan{}, fmt.Errorf("%w: index %d of %d", snap.ErrSnapPointNotFound, index, t.Len())
	}
	index = t.AdjustIndex(index)
	if index == 0 {
		return s.plan(0, DismissingProgrammatic, 0), nil
	}
	return s.plan(index, SnappingProgrammatic, 0), nil
}

// SnapToKey is SnapTo addressed by key.
func (s *Session) SnapToKey(key snap.Key) (Plan, error) {
	if !s.active.Valid() {
		return Plan{}, ErrNotCompiled
	}
	i, err := s.active.Table.IndexOf(key)
	if err != nil {
		return Plan{}, err
	}
	return s.SnapTo(i)
}

// SnapToCustom builds an override table ending in a custom point and
// animates to it. The override is dropped once the modal settles at or
// below the point it branched from.
func (s *Session) SnapToCustom(kf *keyframe.Config, expr layout.Expr) (Plan, error) {
	if !s.active.Valid() {
		return Plan{}, ErrNotCompiled
	}
	base := s.index
	if s.active.IsOverride() && base >= s.active.CustomIndex() {
		base = s.active.OverrideIndex
	}
	if base >= len(s.points) {
		base = len(s.points) - 1
	}
	custom := snap.SnapPointConfig{Layout: expr, Keyframe: kf.Clone()}
	ov, err := s.Compiler.CompileOverride(s.points, base, custom, s.ctx)
	if err != nil {
		return Plan{}, err
	}
	s.active, s.custom = ov, &custom
	s.Logger.Debug().Int("override_index", base).Msg("Session: override table installed")
	return s.plan(ov.CustomIndex(), SnappingProgrammatic, 0), nil
}

// ClearOverride drops the override table. If the modal sits on the custom
// point it snaps back to the branch point and the plan is returned.
func (s *Session) ClearOverride() (Plan, bool) {
	if !s.active.IsOverride() {
		return Plan{}, false
	}
	ov := s.active
	s.dropOverride()
	if s.index > ov.OverrideIndex || (s.pending != nil && s.pending.To > ov.OverrideIndex) {
		s.index = min(s.index, ov.OverrideIndex)
		return s.plan(ov.OverrideIndex, SnappingProgrammatic, 0), true
	}
	return Plan{}, false
}

func (s *Session) dropOverride() {
	s.active, s.custom = snap.ConfigActive(s.config), nil
	s.Logger.Debug().Msg("Session: override table cleaned up")
}

func (s *Session) plan(to int, req State, velocity float64) Plan {
	// Retargeting a presentation keeps it a presentation.
	if cur := s.machine.State(); cur.IsPresenting() && req.IsSnapping() {
		req = cur
	}
	events := s.machine.SetState(req)
	t := s.active.Table
	s.latest++
	p := Plan{
		ID:           s.latest,
		From:         s.index,
		To:           to,
		Target:       t.Points[to],
		FromProgress: s.progress,
		ToProgress:   t.Points[to].Percent,
		Velocity:     velocity,
		Events:       events,
	}
	s.pending = &p
	s.Logger.Debug().
		Uint64("plan", p.ID).
		Int("from", p.From).
		Int("to", p.To).
		Str("state", s.machine.State().String()).
		Msg("Session: plan")
	return p
}

// Complete settles the plan with the given ID. Stale IDs return nil.
func (s *Session) Complete(id uint64) []Event {
	if s.pending == nil || s.pending.ID != id {
		s.Logger.Debug().Uint64("plan", id).Msg("Session: stale completion ignored")
		return nil
	}
	p := *s.pending
	s.pending = nil
	s.retarget(&p)
	s.index = p.To
	s.progress = p.ToProgress

	events := s.machine.SetState(s.machine.State().Settled())
	if s.active.ShouldCleanUp(s.index) {
		s.dropOverride()
	}
	return events
}

// BeginDrag starts a drag at p, interrupting any running plan. Dragging a
// hidden modal presents it, as BeginPresentDrag does.
func (s *Session) BeginDrag(p geom.Point) ([]Event, error) {
	return s.beginDrag(p, s.machine.State().IsHidden())
}

// BeginPresentDrag starts a drag that presents a hidden modal, such as an
// edge swipe. The machine is held in PresentingGesture until the drag ends.
func (s *Session) BeginPresentDrag(p geom.Point) ([]Event, error) {
	return s.beginDrag(p, true)
}

func (s *Session) beginDrag(p geom.Point, presenting bool) ([]Event, error) {
	if !s.active.Valid() {
		return nil, ErrNotCompiled
	}
	t := s.active.Table
	axis := t.Direction.Axis()
	s.pending = nil
	s.latest++

	var events []Event
	if presenting {
		s.machine.SetOverride(PresentingGesture)
		events = s.machine.SetState(PresentingGesture)
	} else {
		events = s.machine.SetState(GestureDragging)
	}

	s.drag = &drag{
		sample:     GestureSample{Point: p, Previous: p, Initial: p},
		table:      t,
		offset:     t.CoordinateFor(s.progress) - p.On(axis),
		presenting: presenting,
	}
	return events, nil
}

// UpdateDrag moves the live drag to p and returns what to display.
func (s *Session) UpdateDrag(p geom.Point) (Frame, error) {
	d := s.drag
	if d == nil {
		return Frame{}, ErrNoGesture
	}
	d.sample.Previous, d.sample.Point = d.sample.Point, p

	coord := p.On(d.table.Direction.Axis()) + d.offset
	s.progress = d.table.ProgressFor(coord)
	sample, err := d.table.ValuesAt(s.progress)
	if err != nil {
		return Frame{}, err
	}
	return Frame{Progress: s.progress, Sample: sample, State: s.machine.State()}, nil
}

// Gesture returns the live sample.
func (s *Session) Gesture() (GestureSample, bool) {
	if s.drag == nil {
		return GestureSample{}, false
	}
	return s.drag.sample, true
}

// EndDrag releases the drag with velocity (units per second) and plans the
// animation to the point nearest the projected rest position.
func (s *Session) EndDrag(velocity geom.Point) (Plan, error) {
	d := s.drag
	if d == nil {
		return Plan{}, ErrNoGesture
	}
	s.drag = nil
	d.sample.Velocity = velocity

	t := d.table
	axis := t.Direction.Axis()
	edge := d.sample.Point.Add(offsetPoint(axis, d.offset))
	rest := snap.Project(edge, velocity, s.Projection)

	target := s.index
	if m, ok := t.Closest(rest.On(axis)); ok {
		target = m.Index
	}
	if s.active.Table != t && target >= s.active.Table.Len() {
		target = s.active.Table.Len() - 1
	}

	extent := t.Viewport.Size().On(axis)
	var v float64
	if extent != 0 {
		v = velocity.On(axis) / extent
		if t.Direction.Inverted() {
			v = -v
		}
	}

	s.Logger.Debug().
		Float64("release", edge.On(axis)).
		Float64("projected", rest.On(axis)).
		Int("target", target).
		Msg("Session: drag ended")

	if d.presenting {
		s.machine.ClearOverride()
		if target == 0 {
			return s.plan(0, DismissingGesture, v), nil
		}
		return s.plan(target, PresentingGesture, v), nil
	}
	if target == 0 {
		return s.plan(0, DismissingGesture, v), nil
	}
	return s.plan(target, SnappingFromGestureDragging, v), nil
}

// CancelDrag abandons the drag and returns to the last settled point.
func (s *Session) CancelDrag() (Plan, error) {
	d := s.drag
	if d == nil {
		return Plan{}, ErrNoGesture
	}
	s.drag = nil
	if d.presenting {
		s.machine.ClearOverride()
		return s.plan(0, DismissingGesture, 0), nil
	}
	if s.index == 0 {
		return s.plan(0, DismissingGesture, 0), nil
	}
	return s.plan(s.index, SnappingFromGestureDragging, 0), nil
}

func offsetPoint(axis geom.Axis, v float64) geom.Point {
	if axis == geom.AxisX {
		return geom.Point{X: v}
	}
	return geom.Point{Y: v}
}
