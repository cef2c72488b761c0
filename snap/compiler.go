// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: snap/compiler.go
// Summary: Compiles snap point declarations into an interpolation table.
// Usage: Build a Compiler once per modal, call Compile whenever the layout
// context or the declarations change; the returned Table is immutable.
// Notes: Standard points inherit unset keyframe properties from the previous
// standard point; in-between points are resolved afterwards by
// resolveInBetween and merged back by original index.

package snap

import (
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/framegrace/texelmodal/geom"
	"github.com/framegrace/texelmodal/keyframe"
	"github.com/framegrace/texelmodal/layout"
)

var (
	ErrTooFewSnapPoints   = errors.New("snap: at least two snap points are required")
	ErrMisplacedInBetween = errors.New("snap: in-between point must follow a standard point")
	ErrSnapPointNotFound  = errors.New("snap: snap point not found")
)

// Strategy chooses how a point's percent is derived.
type Strategy uint8

const (
	// PercentByPosition uses the leading edge of the computed rect.
	PercentByPosition Strategy = iota
	// PercentByIndex spaces points evenly by their index.
	PercentByIndex
)

func (s Strategy) String() string {
	if s == PercentByIndex {
		return "index"
	}
	return "position"
}

// ParseStrategy accepts "position" and "index".
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "", "position":
		return PercentByPosition, nil
	case "index":
		return PercentByIndex, nil
	}
	return PercentByPosition, fmt.Errorf("unknown percent strategy %q", s)
}

// DiagnosticKind classifies a non-fatal compile finding.
type DiagnosticKind uint8

const (
	PercentCollision DiagnosticKind = iota
	NonMonotonicPercent
)

func (k DiagnosticKind) String() string {
	if k == NonMonotonicPercent {
		return "non-monotonic percent"
	}
	return "percent collision"
}

// Diagnostic is a table defect that does not stop compilation.
type Diagnostic struct {
	Kind    DiagnosticKind
	Index   int
	Other   int
	Percent float64
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: points %d and %d at %.4f", d.Kind, d.Other, d.Index, d.Percent)
}

// Compiler turns snap point declarations into Tables. The zero value uses
// the reference layout.Engine, bottom-to-top direction, position percents,
// no overshoot, no clamping and a disabled logger.
type Compiler struct {
	Resolver  layout.Resolver
	Direction geom.Direction
	Strategy  Strategy
	Overshoot bool
	Clamp     keyframe.Clamp
	Logger    zerolog.Logger
}

// NewCompiler returns a compiler with keyframe.DefaultClamp.
func NewCompiler(dir geom.Direction) *Compiler {
	return &Compiler{
		Resolver:  layout.Engine{},
		Direction: dir,
		Clamp:     keyframe.DefaultClamp(),
		Logger:    zerolog.Nop(),
	}
}

func (c *Compiler) resolver() layout.Resolver {
	if c.Resolver == nil {
		return layout.Engine{}
	}
	return c.Resolver
}

// Compile builds the interpolation table for points in ctx.
func (c *Compiler) Compile(points []SnapPointConfig, ctx layout.Context) (*Table, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewSnapPoints, len(points))
	}
	if points[0].Mode == ModeInBetween {
		return nil, fmt.Errorf("%w: index 0", ErrMisplacedInBetween)
	}

	var standard []int
	hasInBetween := false
	for i, p := range points {
		if p.Mode == ModeInBetween {
			hasInBetween = true
			continue
		}
		standard = append(standard, i)
	}

	resolved := make([]InterpolationPoint, len(points))
	if err := c.compileStandard(points, standard, ctx, resolved); err != nil {
		return nil, err
	}
	if hasInBetween {
		if err := c.resolveInBetween(points, standard, ctx, resolved); err != nil {
			return nil, err
		}
	}

	t := &Table{
		Points:    resolved,
		Direction: c.Direction,
		Viewport:  ctx.Viewport,
		Overshoot: c.Overshoot,
		Clamp:     c.Clamp,
	}
	t.Diagnostics = c.diagnose(t)
	return t, nil
}

// CompileOverride builds a transient table made of points[:upTo+1]
// followed by custom. The result is tagged with upTo as its override index.
func (c *Compiler) CompileOverride(points []SnapPointConfig, upTo int, custom SnapPointConfig, ctx layout.Context) (ActiveTable, error) {
	if upTo < 0 || upTo >= len(points) {
		return ActiveTable{}, fmt.Errorf("%w: override index %d", ErrSnapPointNotFound, upTo)
	}
	prefix := make([]SnapPointConfig, 0, upTo+2)
	prefix = append(prefix, points[:upTo+1]...)
	custom.Mode = ModeStandard
	if custom.Key.Kind == KeyUnspecified {
		custom.Key = NamedKey("custom")
	}
	prefix = append(prefix, custom)

	oc := *c
	oc.Overshoot = false
	t, err := oc.Compile(prefix, ctx)
	if err != nil {
		return ActiveTable{}, fmt.Errorf("override table: %w", err)
	}
	return OverrideActive(t, upTo), nil
}

func (c *Compiler) compileStandard(points []SnapPointConfig, standard []int, ctx layout.Context, out []InterpolationPoint) error {
	var prev *keyframe.Values
	for _, idx := range standard {
		p, err := c.resolvePoint(points[idx], idx, len(points), prev, true, ctx)
		if err != nil {
			return err
		}
		out[idx] = p
		prev = &out[idx].Values
	}

	// A bare first point inherits forward from the second instead of
	// falling back to type defaults.
	if len(standard) > 1 {
		first, second := standard[0], standard[1]
		fallback := out[second].Values
		p, err := c.resolvePoint(points[first], first, len(points), &fallback, true, ctx)
		if err != nil {
			return err
		}
		out[first] = p
	}
	return nil
}

func (c *Compiler) resolvePoint(cfg SnapPointConfig, idx, total int, fallback *keyframe.Values, allowDefault bool, ctx layout.Context) (InterpolationPoint, error) {
	r := c.resolver()
	rect, err := r.ResolveRect(cfg.Layout, ctx)
	if err != nil {
		return InterpolationPoint{}, fmt.Errorf("snap point %d (%s): %w", idx, cfg.Key, err)
	}
	pad, err := r.ResolvePadding(cfg.Layout, ctx)
	if err != nil {
		return InterpolationPoint{}, fmt.Errorf("snap point %d (%s): %w", idx, cfg.Key, err)
	}

	vals := keyframe.Resolve(cfg.Keyframe, fallback)
	p := InterpolationPoint{
		Values:          vals,
		SnapPointIndex:  idx,
		Key:             cfg.Key,
		ComputedRect:    rect,
		ComputedPadding: pad,
		AllowSnapping:   keyframe.AllowSnapping(cfg.Keyframe, allowDefault),
	}
	if p.Key.Kind == KeyUnspecified {
		p.Key = IndexKey(idx)
	}
	p.ComputedScrollInsets = scrollInsets(vals.ScrollInsets, rect, ctx.Keyboard)
	p.Percent = c.percent(rect, idx, total, ctx.Viewport)
	return p, nil
}

func (c *Compiler) percent(rect geom.Rect, idx, total int, vp geom.Rect) float64 {
	if c.Strategy == PercentByIndex {
		return float64(idx+1) / float64(total)
	}
	return progressOf(c.Direction, c.Direction.LeadingEdge(rect), vp)
}

// progressOf maps an axis coordinate to progress within vp.
func progressOf(d geom.Direction, coord float64, vp geom.Rect) float64 {
	axis := d.Axis()
	extent := vp.Size().On(axis)
	if extent == 0 {
		return 0
	}
	p := (coord - vp.Origin().On(axis)) / extent
	if d.Inverted() {
		p = 1 - p
	}
	return p
}

// scrollInsets grows the bottom inset by however much of rect the
// keyboard covers.
func scrollInsets(base geom.EdgeInsets, rect geom.Rect, kb *geom.Rect) geom.EdgeInsets {
	if kb == nil || kb.MaxX() <= rect.MinX() || kb.MinX() >= rect.MaxX() {
		return base
	}
	if overlap := rect.MaxY() - kb.MinY(); overlap > 0 {
		base.Bottom += math.Min(overlap, rect.Height)
	}
	return base
}

func (c *Compiler) diagnose(t *Table) []Diagnostic {
	var out []Diagnostic
	pts := t.Points
	for i := 1; i < len(pts); i++ {
		for j := 0; j < i; j++ {
			if pts[i].Percent == pts[j].Percent {
				d := Diagnostic{Kind: PercentCollision, Index: i, Other: j, Percent: pts[i].Percent}
				out = append(out, d)
				c.Logger.Warn().
					Int("index", i).
					Int("other", j).
					Float64("percent", d.Percent).
					Msg("Compiler: percent collision")
			}
		}
		if pts[i].Percent < pts[i-1].Percent {
			d := Diagnostic{Kind: NonMonotonicPercent, Index: i, Other: i - 1, Percent: pts[i].Percent}
			out = append(out, d)
			c.Logger.Warn().
				Int("index", i).
				Float64("percent", d.Percent).
				Float64("previous", pts[i-1].Percent).
				Msg("Compiler: percent decreases")
		}
	}
	c.Logger.Debug().
		Int("points", len(pts)).
		Str("direction", t.Direction.String()).
		Int("diagnostics", len(out)).
		Msg("Compiler: table built")
	return out
}
