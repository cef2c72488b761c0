// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: snap/project.go
// Summary: Ballistic projection of a released gesture.

package snap

import (
	"math"

	"github.com/framegrace/texelmodal/geom"
)

// Projection parameters. Velocities are in units per second.
type Projection struct {
	DecelerationRate float64
	VelocityScale    float64
	MaxVelocity      float64
}

// DefaultProjection matches a normal-rate scroll view deceleration.
func DefaultProjection() Projection {
	return Projection{DecelerationRate: 0.998, VelocityScale: 0.5, MaxVelocity: 300}
}

// Displacement returns how far a decelerating release at velocity v
// travels before it stops.
func (p Projection) Displacement(v float64) float64 {
	d := p.DecelerationRate
	if d <= 0 || d >= 1 || v == 0 {
		return 0
	}
	if p.VelocityScale != 0 {
		v *= p.VelocityScale
	}
	speed := math.Abs(v)
	if p.MaxVelocity > 0 && speed > p.MaxVelocity {
		speed = p.MaxVelocity
	}
	return math.Copysign((speed/1000*d)/(1-d), v)
}

// Project estimates where a gesture released at position with velocity
// comes to rest, independently per axis.
func Project(position, velocity geom.Point, p Projection) geom.Point {
	return geom.Point{
		X: position.X + p.Displacement(velocity.X),
		Y: position.Y + p.Displacement(velocity.Y),
	}
}
