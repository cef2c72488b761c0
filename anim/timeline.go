// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: anim/timeline.go
// Summary: Thread-safe per-key eased timelines.
// Usage: The Player keys one timeline per modal; the demo keys extra ones
// for backdrop fades.
// Notes: Every call takes the frame time so playback is deterministic.

package anim

import (
	"sync"
	"time"
)

// AnimateOptions configures one transition.
type AnimateOptions struct {
	Duration time.Duration // 0 = jump
	Easing   EasingFunc    // nil = EaseSmoothstep
}

type keyState struct {
	current   float64
	start     float64
	target    float64
	startTime time.Time
	duration  time.Duration
	easing    EasingFunc
}

// Timeline holds independent animations keyed by K.
type Timeline[K comparable] struct {
	mu             sync.Mutex
	states         map[K]*keyState
	defaultEasing  EasingFunc
	defaultInitial float64
}

// NewTimeline returns a timeline whose unseen keys start at initial.
func NewTimeline[K comparable](initial float64) *Timeline[K] {
	return &Timeline[K]{
		states:         make(map[K]*keyState),
		defaultEasing:  EaseSmoothstep,
		defaultInitial: initial,
	}
}

// Set jumps key to v and stops any animation on it.
func (tl *Timeline[K]) Set(key K, v float64) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	tl.states[key] = &keyState{current: v, start: v, target: v, easing: tl.defaultEasing}
}

// AnimateTo starts an animation from the key's value at now towards target
// and returns that starting value. A running animation is retargeted from
// where it currently is.
func (tl *Timeline[K]) AnimateTo(key K, target float64, opts AnimateOptions, now time.Time) float64 {
	tl.mu.Lock()
	defer tl.mu.Unlock()

	state := tl.states[key]
	if state == nil {
		state = &keyState{current: tl.defaultInitial}
		tl.states[key] = state
	} else {
		state.current = tl.computeValue(state, now)
	}

	state.start = state.current
	state.target = target
	state.startTime = now
	state.duration = opts.Duration
	state.easing = opts.Easing
	if state.easing == nil {
		state.easing = tl.defaultEasing
	}
	if opts.Duration <= 0 || state.current == target {
		state.current = target
		state.start = target
	}
	return state.current
}

// Get returns key's value at now.
func (tl *Timeline[K]) Get(key K, now time.Time) float64 {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	state := tl.states[key]
	if state == nil {
		return tl.defaultInitial
	}
	state.current = tl.computeValue(state, now)
	return state.current
}

// Target returns where key is heading.
func (tl *Timeline[K]) Target(key K) float64 {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	if state := tl.states[key]; state != nil {
		return state.target
	}
	return tl.defaultInitial
}

// IsAnimating reports whether key has not reached its target at now.
func (tl *Timeline[K]) IsAnimating(key K, now time.Time) bool {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	state := tl.states[key]
	return state != nil && tl.running(state, now)
}

// HasActiveAnimations reports whether any key is still moving at now.
func (tl *Timeline[K]) HasActiveAnimations(now time.Time) bool {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	for _, state := range tl.states {
		if tl.running(state, now) {
			return true
		}
	}
	return false
}

// Reset forgets key.
func (tl *Timeline[K]) Reset(key K) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	delete(tl.states, key)
}

// must hold tl.mu
func (tl *Timeline[K]) running(state *keyState, now time.Time) bool {
	return state.duration > 0 && now.Sub(state.startTime) < state.duration && state.start != state.target
}

// must hold tl.mu
func (tl *Timeline[K]) computeValue(state *keyState, now time.Time) float64 {
	if state.duration <= 0 {
		return state.target
	}
	if now.Before(state.startTime) {
		return state.start
	}
	elapsed := now.Sub(state.startTime)
	if elapsed >= state.duration {
		return state.target
	}

	t := float64(elapsed) / float64(state.duration)
	easing := state.easing
	if easing == nil {
		easing = tl.defaultEasing
	}
	return state.start + (state.target-state.start)*easing(t)
}
