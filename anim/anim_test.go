// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package anim

import (
	"math"
	"testing"
	"time"

	"github.com/framegrace/texelmodal/geom"
	"github.com/framegrace/texelmodal/layout"
	"github.com/framegrace/texelmodal/modal"
	"github.com/framegrace/texelmodal/snap"
)

func TestTimelineEasesAndRetargets(t *testing.T) {
	tl := NewTimeline[int](0)
	start := time.Unix(0, 0)

	if got := tl.AnimateTo(1, 10, AnimateOptions{Duration: time.Second, Easing: EaseLinear}, start); got != 0 {
		t.Fatalf("start value = %v", got)
	}
	if got := tl.Get(1, start.Add(250*time.Millisecond)); math.Abs(got-2.5) > 1e-9 {
		t.Fatalf("quarter value = %v", got)
	}
	if !tl.IsAnimating(1, start.Add(500*time.Millisecond)) {
		t.Fatalf("should still be animating")
	}

	mid := start.Add(500 * time.Millisecond)
	if got := tl.AnimateTo(1, 0, AnimateOptions{Duration: time.Second, Easing: EaseLinear}, mid); math.Abs(got-5) > 1e-9 {
		t.Fatalf("retarget should start from 5, got %v", got)
	}
	if got := tl.Get(1, mid.Add(2*time.Second)); got != 0 {
		t.Fatalf("end value = %v", got)
	}
	if tl.HasActiveAnimations(mid.Add(2 * time.Second)) {
		t.Fatalf("no animation should be active")
	}
	if got := tl.Get(2, start); got != 0 {
		t.Fatalf("unseen key = %v", got)
	}
}

func TestTimelineZeroDurationJumps(t *testing.T) {
	tl := NewTimeline[string](0)
	now := time.Unix(0, 0)
	if got := tl.AnimateTo("k", 3, AnimateOptions{}, now); got != 3 {
		t.Fatalf("AnimateTo = %v", got)
	}
	if tl.IsAnimating("k", now) {
		t.Fatalf("zero duration should not animate")
	}
}

func TestEasingEndpoints(t *testing.T) {
	for _, name := range EasingNames() {
		fn, err := EasingByName(name)
		if err != nil {
			t.Fatalf("EasingByName(%q): %v", name, err)
		}
		if math.Abs(fn(0)) > 1e-12 || math.Abs(fn(1)-1) > 1e-12 {
			t.Fatalf("%s: f(0)=%v f(1)=%v", name, fn(0), fn(1))
		}
	}
	if _, err := EasingByName("bounce"); err == nil {
		t.Fatalf("expected error for unknown easing")
	}
	if _, err := EasingByName("OUTCUBIC"); err != nil {
		t.Fatalf("lookup should ignore case: %v", err)
	}
}

func TestSpringSettlesOnTarget(t *testing.T) {
	s := NewSpring(60, 6, 1)
	s.Start(0, 0, 1)
	for i := 0; i < 600 && s.Step(); i++ {
	}
	if !s.Settled() || s.Pos != 1 || s.Vel != 0 {
		t.Fatalf("spring did not settle: %+v", s)
	}
	if s.Step() {
		t.Fatalf("settled spring should not move")
	}
}

func newSession(t *testing.T) *modal.Session {
	t.Helper()
	sheet := func(h float64) layout.Fixed {
		return layout.Fixed{Rect: geom.Rect{Y: 600 - h, Width: 400, Height: h}}
	}
	points := snap.BuildSnapPoints([]snap.SnapPointConfig{
		{Layout: sheet(300)},
		{Layout: sheet(600)},
	}, snap.BuildOptions{Direction: geom.BottomToTop})
	s := modal.NewSession(nil, points)
	if err := s.Layout(layout.Context{Viewport: geom.Rect{Width: 400, Height: 600}}); err != nil {
		t.Fatalf("Layout: %v", err)
	}
	return s
}

func TestPlayerEasedCompletesPlan(t *testing.T) {
	s := newSession(t)
	opts := DefaultOptions()
	opts.Easing = EaseLinear
	p := NewPlayer(s, opts)

	plan, err := s.Present()
	if err != nil {
		t.Fatalf("Present: %v", err)
	}
	start := time.Unix(100, 0)
	p.Play(plan, start)

	f, err := p.Tick(start.Add(150 * time.Millisecond))
	if err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if f.Done || math.Abs(f.Progress-0.25) > 1e-9 {
		t.Fatalf("mid frame = %+v", f)
	}
	if math.Abs(f.Sample.Rect.Y-450) > 1e-9 || math.Abs(f.Sample.Rect.Height-300) > 1e-9 {
		t.Fatalf("mid rect = %v", f.Sample.Rect)
	}

	f, err = p.Tick(start.Add(time.Second))
	if err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if !f.Done || f.Progress != 0.5 || s.State() != modal.PresentedProgrammatic {
		t.Fatalf("final frame %+v state %v", f, s.State())
	}
	if p.Playing() {
		t.Fatalf("player should be idle")
	}
}

func TestPlayerSpringCompletesPlan(t *testing.T) {
	s := newSession(t)
	opts := DefaultOptions()
	opts.Curve = CurveSpring
	opts.Damping = 1
	p := NewPlayer(s, opts)

	plan, _ := s.SnapTo(2)
	now := time.Unix(0, 0)
	p.Play(plan, now)

	var f Frame
	for i := 0; i < 2000 && !f.Done; i++ {
		var err error
		if f, err = p.Tick(now); err != nil {
			t.Fatalf("Tick: %v", err)
		}
	}
	if !f.Done || s.Index() != 2 || s.State() != modal.PresentedProgrammatic {
		t.Fatalf("spring plan did not complete: %+v state %v", f, s.State())
	}
}

func TestPlayerSupersededPlan(t *testing.T) {
	s := newSession(t)
	p := NewPlayer(s, DefaultOptions())
	now := time.Unix(0, 0)

	first, _ := s.Present()
	p.Play(first, now)
	second, _ := s.SnapTo(2)
	p.Play(second, now)

	f, _ := p.Tick(now.Add(time.Second))
	if !f.Done || s.Index() != 2 {
		t.Fatalf("latest plan should complete, frame %+v index %d", f, s.Index())
	}
}

func TestPlayerFollowsRelayoutMidPlan(t *testing.T) {
	s := newSession(t)
	opts := DefaultOptions()
	opts.Easing = EaseLinear
	p := NewPlayer(s, opts)

	plan, _ := s.Present()
	start := time.Unix(100, 0)
	p.Play(plan, start)
	if _, err := p.Tick(start.Add(150 * time.Millisecond)); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	// The half sheet now starts 300 cells into an 800 tall viewport.
	if err := s.Layout(layout.Context{Viewport: geom.Rect{Width: 400, Height: 800}}); err != nil {
		t.Fatalf("Layout: %v", err)
	}
	f, err := p.Tick(start.Add(300 * time.Millisecond))
	if err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if f.Done {
		t.Fatalf("retargeted plan finished early: %+v", f)
	}

	f, err = p.Tick(start.Add(time.Second))
	if err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if !f.Done || math.Abs(f.Progress-0.625) > 1e-9 || s.Index() != 1 {
		t.Fatalf("final frame %+v index %d", f, s.Index())
	}
	if math.Abs(f.Sample.Rect.Y-300) > 1e-9 {
		t.Fatalf("settled rect = %v, want Y 300", f.Sample.Rect)
	}
}
