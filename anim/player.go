// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: anim/player.go
// Summary: Plays modal plans frame by frame and completes them on the session.
// Usage: Play each Plan a Session returns, then call Tick once per frame
// and render the returned sample.

package anim

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/framegrace/texelmodal/modal"
	"github.com/framegrace/texelmodal/snap"
)

// Curve selects how progress moves.
type Curve uint8

const (
	CurveEased Curve = iota
	CurveSpring
)

func (c Curve) String() string {
	if c == CurveSpring {
		return "spring"
	}
	return "eased"
}

// ParseCurve accepts "eased" and "spring".
func ParseCurve(s string) (Curve, error) {
	switch strings.ToLower(s) {
	case "", "eased", "ease":
		return CurveEased, nil
	case "spring":
		return CurveSpring, nil
	}
	return CurveEased, fmt.Errorf("unknown animation curve %q", s)
}

// Options configures a Player.
type Options struct {
	Curve    Curve
	Duration time.Duration
	Easing   EasingFunc

	FPS       int
	Frequency float64
	Damping   float64
}

// DefaultOptions is a 300ms out-cubic ease; spring fields are used only
// when Curve is CurveSpring.
func DefaultOptions() Options {
	return Options{
		Curve:     CurveEased,
		Duration:  300 * time.Millisecond,
		Easing:    EaseOutCubic,
		FPS:       60,
		Frequency: 6,
		Damping:   0.8,
	}
}

// Frame is one rendered step.
type Frame struct {
	Progress float64
	Sample   snap.Sample
	// Done is set on the frame that completed the plan; Events holds what
	// the completion emitted.
	Done   bool
	Events []modal.Event
}

const progressKey = "progress"

// Player drives one Session. Safe for use from a render goroutine and an
// input goroutine at once.
type Player struct {
	Logger zerolog.Logger

	mu       sync.Mutex
	session  *modal.Session
	opts     Options
	timeline *Timeline[string]
	spring   *Spring
	plan     *modal.Plan
}

// NewPlayer returns a player for s.
func NewPlayer(s *modal.Session, opts Options) *Player {
	return &Player{
		Logger:   zerolog.Nop(),
		session:  s,
		opts:     opts,
		timeline: NewTimeline[string](s.Progress()),
		spring:   NewSpring(opts.FPS, opts.Frequency, opts.Damping),
	}
}

// Play starts plan, replacing whatever was playing.
func (p *Player) Play(plan modal.Plan, now time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.plan = &plan

	switch p.opts.Curve {
	case CurveSpring:
		p.spring.Start(plan.FromProgress, plan.Velocity, plan.ToProgress)
	default:
		p.timeline.Set(progressKey, plan.FromProgress)
		p.timeline.AnimateTo(progressKey, plan.ToProgress, AnimateOptions{
			Duration: p.opts.Duration,
			Easing:   p.opts.Easing,
		}, now)
	}
	p.Logger.Debug().
		Uint64("plan", plan.ID).
		Float64("from", plan.FromProgress).
		Float64("to", plan.ToProgress).
		Str("curve", p.opts.Curve.String()).
		Msg("Player: play")
}

// Stop abandons the current plan without completing it, as when a drag
// takes over.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.plan = nil
}

// Playing reports whether a plan is in flight.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.plan != nil
}

// Tick advances to now. With nothing playing it returns the session's
// current sample.
func (p *Player) Tick(now time.Time) (Frame, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.plan == nil {
		s, err := p.session.Sample()
		return Frame{Progress: p.session.Progress(), Sample: s}, err
	}

	if cur, ok := p.session.Pending(); ok && cur.ID == p.plan.ID && cur.ToProgress != p.plan.ToProgress {
		p.retarget(cur, now)
	}

	var (
		progress float64
		moving   bool
	)
	switch p.opts.Curve {
	case CurveSpring:
		moving = p.spring.Step()
		progress = p.spring.Pos
	default:
		progress = p.timeline.Get(progressKey, now)
		moving = p.timeline.IsAnimating(progressKey, now)
	}

	p.session.Seek(progress)
	f := Frame{Progress: progress}
	if !moving {
		f.Done = true
		f.Events = p.session.Complete(p.plan.ID)
		f.Progress = p.session.Progress()
		p.plan = nil
	}
	s, err := p.session.Sample()
	if err != nil {
		return Frame{}, err
	}
	f.Sample = s
	return f, nil
}

// retarget follows a plan whose destination moved under a relayout.
func (p *Player) retarget(plan modal.Plan, now time.Time) {
	p.plan = &plan
	switch p.opts.Curve {
	case CurveSpring:
		p.spring.Retarget(plan.ToProgress)
	default:
		p.timeline.AnimateTo(progressKey, plan.ToProgress, AnimateOptions{
			Duration: p.opts.Duration,
			Easing:   p.opts.Easing,
		}, now)
	}
	p.Logger.Debug().
		Uint64("plan", plan.ID).
		Float64("to", plan.ToProgress).
		Msg("Player: retarget")
}
