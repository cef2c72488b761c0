// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: interp/interp.go
// Summary: Piecewise-linear interpolation with extrapolation and clamping.
// Usage: Value maps an input through matching breakpoint tables; the typed
// wrappers in values.go repeat it per channel.
// Notes: Breakpoint inputs may run in either direction. Knots are exact and
// duplicated knots resolve to the last one in table order.

package interp

import (
	"errors"

	"golang.org/x/exp/constraints"
)

// ErrRangeMismatch is returned when the input and output tables differ in
// length or hold fewer than two breakpoints.
var ErrRangeMismatch = errors.New("interp: input and output ranges must have equal length >= 2")

// Clamp selects which ends of the breakpoint table stop extrapolation.
// Min guards the first breakpoint, Max the last one.
type Clamp struct {
	Min, Max bool
}

var (
	NoClamp   = Clamp{}
	ClampBoth = Clamp{Min: true, Max: true}
	ClampMin  = Clamp{Min: true}
	ClampMax  = Clamp{Max: true}
)

// Lerp returns a + (b-a)*t, exact at t=0 and t=1.
func Lerp[T constraints.Float](a, b, t T) T {
	return a*(1-t) + b*t
}

// Value interpolates x through the breakpoints (in[i], out[i]).
//
// Outside the table the result is extrapolated with the slope of the nearest
// segment unless the matching side of c is set, in which case the boundary
// output is returned verbatim.
func Value[T constraints.Float](x T, in, out []T, c Clamp) (T, error) {
	if len(in) != len(out) || len(in) < 2 {
		return 0, ErrRangeMismatch
	}
	return eval(x, in, out, c), nil
}

// eval is Value without the range check; callers guarantee
// len(in) == len(out) >= 2.
func eval[T constraints.Float](x T, in, out []T, c Clamp) T {
	n := len(in)
	ascending := in[n-1] >= in[0]
	before := func(a, b T) bool {
		if ascending {
			return a < b
		}
		return a > b
	}

	if before(x, in[0]) {
		if c.Min {
			return out[0]
		}
		// mirror the first segment to get a knot ahead of the table
		x0 := in[0] - (in[1] - in[0])
		y0 := out[0] - (out[1] - out[0])
		return segment(x, x0, in[0], y0, out[0])
	}
	if before(in[n-1], x) {
		if c.Max {
			return out[n-1]
		}
		return segment(x, in[n-2], in[n-1], out[n-2], out[n-1])
	}

	for i := n - 1; i >= 0; i-- {
		if x == in[i] {
			return out[i]
		}
	}
	for i := 0; i < n-1; i++ {
		if !before(x, in[i]) && !before(in[i+1], x) {
			return segment(x, in[i], in[i+1], out[i], out[i+1])
		}
	}
	return out[n-1]
}

func segment[T constraints.Float](x, x0, x1, y0, y1 T) T {
	if x1 == x0 {
		return y1
	}
	return Lerp(y0, y1, (x-x0)/(x1-x0))
}

// Segment locates x in the breakpoint table and returns the index of the
// segment start plus the local fraction. Fractions outside 0..1 mean x lies
// beyond the table.
func Segment[T constraints.Float](x T, in []T) (int, T) {
	n := len(in)
	if n < 2 {
		return 0, 0
	}
	ascending := in[n-1] >= in[0]
	for i := 0; i < n-1; i++ {
		lo, hi := in[i], in[i+1]
		if !ascending {
			lo, hi = hi, lo
		}
		if x >= lo && x <= hi {
			if in[i+1] == in[i] {
				return i, 1
			}
			return i, (x - in[i]) / (in[i+1] - in[i])
		}
	}
	if (ascending && x < in[0]) || (!ascending && x > in[0]) {
		if in[1] == in[0] {
			return 0, 0
		}
		return 0, (x - in[0]) / (in[1] - in[0])
	}
	if in[n-1] == in[n-2] {
		return n - 2, 1
	}
	return n - 2, (x - in[n-2]) / (in[n-1] - in[n-2])
}
