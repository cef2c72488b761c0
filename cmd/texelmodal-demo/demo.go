// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelmodal-demo/demo.go
// Summary: Wires a modal session, its animator and the detent store to a
// tcell screen.

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/framegrace/texelmodal/anim"
	"github.com/framegrace/texelmodal/config"
	"github.com/framegrace/texelmodal/geom"
	"github.com/framegrace/texelmodal/internal/store"
	"github.com/framegrace/texelmodal/keyframe"
	"github.com/framegrace/texelmodal/layout"
	"github.com/framegrace/texelmodal/modal"
	"github.com/framegrace/texelmodal/snap"
)

const helpLine = " p present  d dismiss  1-9 snap  ↑/↓ step  c custom  x clear  drag with the mouse  q quit "

type demo struct {
	screen  tcell.Screen
	log     zerolog.Logger
	name    string
	opts    anim.Options
	session *modal.Session
	player  *anim.Player
	store   *store.Store

	now     time.Time
	tracker velocityTracker
	sample  snap.Sample
	status  string
	quit    bool
}

func newDemo(screen tcell.Screen, m *config.Modal, st *store.Store, log zerolog.Logger) (*demo, error) {
	m.Compiler.Logger = log
	s := modal.NewSession(m.Compiler, m.Points)
	s.Projection = m.Settings.Projection
	s.Logger = log

	d := &demo{
		screen:  screen,
		log:     log,
		name:    m.Name,
		opts:    m.Settings.Animation,
		session: s,
		store:   st,
	}
	if err := d.layout(); err != nil {
		return nil, err
	}
	d.player = anim.NewPlayer(s, d.opts)
	d.player.Logger = log

	s.Machine().Listen(func(ev modal.Event) {
		if ev.Type != modal.EventStateChanged {
			d.log.Debug().Stringer("event", ev.Type).Stringer("from", ev.From).Stringer("to", ev.To).Msg("Demo: event")
		}
	})
	d.restore()
	return d, nil
}

func (d *demo) viewport() layout.Context {
	w, h := d.screen.Size()
	// The last row is the help line.
	return layout.Context{
		Viewport: geom.Rect{Width: float64(w), Height: float64(max(h-1, 1))},
	}
}

func (d *demo) layout() error {
	if err := d.session.Layout(d.viewport()); err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	smp, err := d.session.Sample()
	if err != nil {
		return err
	}
	d.sample = smp
	return nil
}

// restore points Present at the detent remembered from the last run.
func (d *demo) restore() {
	if d.store == nil {
		return
	}
	det, ok, err := d.store.Load(context.Background(), d.name)
	if err != nil {
		d.log.Warn().Err(err).Msg("Demo: detent lookup failed")
		return
	}
	if !ok {
		return
	}
	if i, ok := store.Restore(d.session.Config(), det); ok {
		d.session.PresentIndex = i
		d.log.Info().Stringer("key", det.Key).Int("index", i).Msg("Demo: restored detent")
	}
}

func (d *demo) play(plan modal.Plan, err error) {
	if err != nil {
		d.status = err.Error()
		return
	}
	d.status = ""
	d.player.Play(plan, d.now)
}

// handleEvent applies one terminal event at time now.
func (d *demo) handleEvent(ev tcell.Event, now time.Time) {
	d.now = now
	switch ev := ev.(type) {
	case *tcell.EventResize:
		d.screen.Sync()
		if err := d.layout(); err != nil {
			d.status = err.Error()
		}
	case *tcell.EventKey:
		d.handleKey(ev)
	case *tcell.EventMouse:
		d.handleMouse(ev)
	}
}

func (d *demo) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEsc, tcell.KeyCtrlC:
		d.quit = true
		return
	}
	if d.session.Dragging() {
		return
	}
	switch ev.Key() {
	case tcell.KeyUp:
		d.step(1)
		return
	case tcell.KeyDown:
		d.step(-1)
		return
	}
	switch r := ev.Rune(); {
	case r == 'q':
		d.quit = true
	case r == 'p':
		d.play(d.session.Present())
	case r == 'd':
		d.play(d.session.Dismiss())
	case r >= '1' && r <= '9':
		d.play(d.session.SnapTo(int(r - '0')))
	case r == 'c':
		d.play(d.session.SnapToCustom(customKeyframe, customLayout))
	case r == 'x':
		if plan, ok := d.session.ClearOverride(); ok {
			d.play(plan, nil)
		}
	}
}

var (
	customKeyframe = &keyframe.Config{
		CornerRadius:    keyframe.Ptr(1.0),
		BackgroundColor: keyframe.Ptr(geom.Opaque(0.19, 0.20, 0.27)),
		BorderWidth:     keyframe.Ptr(1.0),
		BorderColor:     keyframe.Ptr(geom.Opaque(0.54, 0.71, 0.98)),
	}
	customLayout = layout.Spec{
		Width:  layout.Fraction(0.6),
		Height: layout.Fraction(0.5),
		HAlign: layout.AlignCenter,
		VAlign: layout.AlignEnd,
	}
)

// step snaps to the next snappable point in dir, skipping in-betweens.
func (d *demo) step(dir int) {
	pts := d.session.Active().Points()
	for i := d.session.Index() + dir; i > 0 && i < len(pts); i += dir {
		if pts[i].AllowSnapping {
			d.play(d.session.SnapTo(i))
			return
		}
	}
	if dir < 0 {
		d.play(d.session.Dismiss())
	}
}

func (d *demo) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	p := geom.Point{X: float64(x), Y: float64(y)}
	pressed := ev.Buttons()&tcell.Button1 != 0

	switch {
	case pressed && !d.session.Dragging():
		d.beginDrag(p)
	case pressed:
		d.tracker.add(d.now, p)
		f, err := d.session.UpdateDrag(p)
		if err != nil {
			d.status = err.Error()
			return
		}
		d.sample = f.Sample
	case d.session.Dragging():
		d.tracker.add(d.now, p)
		d.play(d.session.EndDrag(d.tracker.velocity(d.now)))
	}
}

// beginDrag grabs the sheet under p. A press on the entry edge of a hidden
// modal drags it in.
func (d *demo) beginDrag(p geom.Point) {
	var err error
	switch {
	case d.session.State().IsHidden():
		if !d.onEntryEdge(p) {
			return
		}
		_, err = d.session.BeginPresentDrag(p)
	case toCells(d.sample.Rect).contains(int(p.X), int(p.Y)):
		_, err = d.session.BeginDrag(p)
	default:
		return
	}
	if err != nil {
		d.status = err.Error()
		return
	}
	d.player.Stop()
	d.tracker.reset()
	d.tracker.add(d.now, p)
}

func (d *demo) onEntryEdge(p geom.Point) bool {
	vp := d.viewport().Viewport
	switch d.session.Config().Direction {
	case geom.TopToBottom:
		return p.Y <= vp.MinY()
	case geom.LeftToRight:
		return p.X <= vp.MinX()
	case geom.RightToLeft:
		return p.X >= vp.MaxX()-1
	default:
		return p.Y >= vp.MaxY()-1
	}
}

// tick advances the animation to now and remembers where it settled.
func (d *demo) tick(now time.Time) {
	d.now = now
	if d.session.Dragging() {
		return
	}
	f, err := d.player.Tick(now)
	if err != nil {
		d.status = err.Error()
		return
	}
	d.sample = f.Sample
	if !f.Done {
		return
	}
	for _, ev := range f.Events {
		d.log.Debug().Stringer("event", ev.Type).Stringer("to", ev.To).Msg("Demo: settled")
	}
	if d.store != nil {
		if err := d.store.Remember(context.Background(), d.name, d.session); err != nil {
			d.log.Warn().Err(err).Msg("Demo: failed to remember detent")
		}
	}
}

func (d *demo) draw() {
	bg := drawBackground(d.screen, d.sample.Values)
	if d.session.State().IsVisible() {
		drawSheet(d.screen, d.sample, bg, d.label())
	}
	w, h := d.screen.Size()
	line := helpLine
	if d.status != "" {
		line = " " + d.status + " "
	}
	style := tcell.StyleDefault.Background(tcellColor(desktopColor)).Foreground(tcellColor(labelColor))
	for x := 0; x < w; x++ {
		d.screen.SetContent(x, h-1, ' ', nil, style)
	}
	drawText(d.screen, 0, h-1, line, style)
	d.screen.Show()
}

func (d *demo) label() string {
	pts := d.session.Active().Points()
	key := "?"
	if i := d.session.Index(); i >= 0 && i < len(pts) {
		key = pts[i].Key.String()
	}
	return fmt.Sprintf("%s · %s · %s · %.2f", d.name, key, d.session.State(), d.sample.Progress)
}
