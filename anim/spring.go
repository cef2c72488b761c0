// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: anim/spring.go
// Summary: Damped spring curve built on harmonica.

package anim

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// SettleEpsilon is the distance and speed below which a spring is at rest.
const SettleEpsilon = 1e-3

// Spring integrates a damped harmonic oscillator at a fixed frame rate.
type Spring struct {
	spring harmonica.Spring

	Pos, Vel, Target float64
	settled          bool
}

// NewSpring returns a spring stepping fps times per second. Damping below 1
// overshoots; 1 is critically damped.
func NewSpring(fps int, frequency, damping float64) *Spring {
	if fps <= 0 {
		fps = 60
	}
	return &Spring{spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping), settled: true}
}

// Start places the spring at pos moving at vel towards target.
func (s *Spring) Start(pos, vel, target float64) {
	s.Pos, s.Vel, s.Target = pos, vel, target
	s.settled = pos == target && vel == 0
}

// Retarget changes the destination and keeps the current motion.
func (s *Spring) Retarget(target float64) {
	s.Target = target
	s.settled = false
}

// Step advances one frame and reports whether the spring is still moving.
func (s *Spring) Step() bool {
	if s.settled {
		return false
	}
	s.Pos, s.Vel = s.spring.Update(s.Pos, s.Vel, s.Target)
	if math.Abs(s.Pos-s.Target) < SettleEpsilon && math.Abs(s.Vel) < SettleEpsilon {
		s.Pos, s.Vel = s.Target, 0
		s.settled = true
	}
	return !s.settled
}

// Settled reports whether the spring is at rest on its target.
func (s *Spring) Settled() bool { return s.settled }
