// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelmodal-demo/velocity.go
// Summary: Estimates release velocity from recent mouse samples.

package main

import (
	"time"

	"github.com/framegrace/texelmodal/geom"
)

const velocityWindow = 100 * time.Millisecond

type sample struct {
	at time.Time
	p  geom.Point
}

// velocityTracker keeps the samples of the last velocityWindow.
type velocityTracker struct {
	samples []sample
}

func (v *velocityTracker) reset() { v.samples = v.samples[:0] }

func (v *velocityTracker) add(at time.Time, p geom.Point) {
	v.samples = append(v.samples, sample{at: at, p: p})
	cut := 0
	for cut < len(v.samples)-2 && at.Sub(v.samples[cut].at) > velocityWindow {
		cut++
	}
	v.samples = v.samples[cut:]
}

// velocity returns units per second between the oldest and newest sample.
// A pointer that stopped before release has no velocity.
func (v *velocityTracker) velocity(now time.Time) geom.Point {
	if len(v.samples) < 2 {
		return geom.Point{}
	}
	first, last := v.samples[0], v.samples[len(v.samples)-1]
	if now.Sub(last.at) > velocityWindow {
		return geom.Point{}
	}
	dt := last.at.Sub(first.at).Seconds()
	if dt <= 0 {
		return geom.Point{}
	}
	d := last.p.Sub(first.p)
	return geom.Point{X: d.X / dt, Y: d.Y / dt}
}
