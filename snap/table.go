// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: snap/table.go
// Summary: Compiled interpolation table: sampling, progress mapping and
// closest-point resolution.

package snap

import (
	"fmt"
	"math"

	"github.com/framegrace/texelmodal/geom"
	"github.com/framegrace/texelmodal/interp"
	"github.com/framegrace/texelmodal/keyframe"
)

// Table is an immutable, ordered snapshot of interpolation points. Tables
// are replaced wholesale on rebuild, never patched.
//
// Percent measures how far the modal is open, for every direction: the
// undershoot sits at 0 and larger points at larger percents. Viewport
// coordinates are inverted for BottomToTop and RightToLeft to get there, so
// a bottom sheet's percents increase even though its leading edge moves up.
type Table struct {
	Points      []InterpolationPoint
	Direction   geom.Direction
	Viewport    geom.Rect
	Overshoot   bool
	Clamp       keyframe.Clamp
	Diagnostics []Diagnostic
}

// Len returns the number of points.
func (t *Table) Len() int { return len(t.Points) }

// Percents returns the breakpoint inputs in table order.
func (t *Table) Percents() []float64 {
	out := make([]float64, len(t.Points))
	for i, p := range t.Points {
		out[i] = p.Percent
	}
	return out
}

// OvershootIndex returns the index of the overshoot point, or -1.
func (t *Table) OvershootIndex() int {
	if !t.Overshoot || len(t.Points) < 2 {
		return -1
	}
	return len(t.Points) - 1
}

// IndexOf returns the index of the point identified by key.
func (t *Table) IndexOf(key Key) (int, error) {
	for i := len(t.Points) - 1; i >= 0; i-- {
		p := t.Points[i]
		if p.Key == key || (key.Kind == KeyIndex && p.SnapPointIndex == key.Index) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrSnapPointNotFound, key)
}

// ValuesAt interpolates every property at progress. Exact knots return the
// knot's values verbatim; discrete properties take the nearest knot.
func (t *Table) ValuesAt(progress float64) (Sample, error) {
	in := t.Percents()
	src := make([]keyframe.Values, len(t.Points))
	rects := make([]geom.Rect, len(t.Points))
	pads := make([]geom.EdgeInsets, len(t.Points))
	scroll := make([]geom.EdgeInsets, len(t.Points))
	for i, p := range t.Points {
		src[i] = p.Values
		rects[i] = p.ComputedRect
		pads[i] = p.ComputedPadding
		scroll[i] = p.ComputedScrollInsets
	}

	vals, err := keyframe.Interpolate(progress, in, src, t.Clamp)
	if err != nil {
		return Sample{}, err
	}
	s := Sample{Values: vals, Progress: progress}
	if s.Rect, err = interp.Rect(progress, in, rects, t.Clamp.Rect); err != nil {
		return Sample{}, fmt.Errorf("rect: %w", err)
	}
	if s.Padding, err = interp.Insets(progress, in, pads, t.Clamp.Padding); err != nil {
		return Sample{}, fmt.Errorf("padding: %w", err)
	}
	if s.ComputedScrollInsets, err = interp.Insets(progress, in, scroll, t.Clamp.ScrollInsets); err != nil {
		return Sample{}, fmt.Errorf("scroll insets: %w", err)
	}
	return s, nil
}

// ProgressFor maps a coordinate on the direction's axis to progress. Without
// overshoot, progress stops at the last non-overshoot point.
func (t *Table) ProgressFor(coord float64) float64 {
	p := progressOf(t.Direction, coord, t.Viewport)
	if !t.Overshoot {
		if limit, ok := t.maxRestPercent(); ok && p > limit {
			p = limit
		}
	}
	return p
}

// ProgressForPoint is ProgressFor on p's coordinate along the table's axis.
func (t *Table) ProgressForPoint(p geom.Point) float64 {
	return t.ProgressFor(p.On(t.Direction.Axis()))
}

// CoordinateFor is the inverse of ProgressFor without clamping.
func (t *Table) CoordinateFor(progress float64) float64 {
	axis := t.Direction.Axis()
	if t.Direction.Inverted() {
		progress = 1 - progress
	}
	return t.Viewport.Origin().On(axis) + progress*t.Viewport.Size().On(axis)
}

func (t *Table) maxRestPercent() (float64, bool) {
	for i := len(t.Points) - 1; i >= 0; i-- {
		if t.Points[i].Key.Kind != KeyOvershoot {
			return t.Points[i].Percent, true
		}
	}
	return 0, false
}

// Match is the result of a closest-point query.
type Match struct {
	Index    int
	Point    InterpolationPoint
	Distance float64
}

// Closest finds the snapping-enabled point whose leading edge is nearest
// to coord, then applies AdjustIndex. Ties go to the earlier point.
// Every point of t is a candidate; to keep the custom point of an override
// table out, use ActiveTable.Closest with allowOverride false.
func (t *Table) Closest(coord float64) (Match, bool) {
	return t.closestUpTo(coord, len(t.Points)-1)
}

func (t *Table) closestUpTo(coord float64, last int) (Match, bool) {
	best, bestDist := -1, math.Inf(1)
	for i, p := range t.Points[:last+1] {
		if !p.AllowSnapping {
			continue
		}
		if d := math.Abs(coord - t.Direction.LeadingEdge(p.ComputedRect)); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return Match{}, false
	}
	idx := min(t.AdjustIndex(best), last)
	return Match{
		Index:    idx,
		Point:    t.Points[idx],
		Distance: math.Abs(coord - t.Direction.LeadingEdge(t.Points[idx].ComputedRect)),
	}, true
}

// ClosestRect matches r against every point except the undershoot using the
// mean absolute difference of the eight rect features, then applies
// AdjustIndex.
func (t *Table) ClosestRect(r geom.Rect) (Match, bool) {
	best, bestDist := -1, math.Inf(1)
	for i := 1; i < len(t.Points); i++ {
		if d := rectDistance(r, t.Points[i].ComputedRect); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return Match{}, false
	}
	idx := t.AdjustIndex(best)
	return Match{
		Index:    idx,
		Point:    t.Points[idx],
		Distance: rectDistance(r, t.Points[idx].ComputedRect),
	}, true
}

func rectDistance(a, b geom.Rect) float64 {
	fa, fb := a.Features(), b.Features()
	var sum float64
	for i := range fa {
		sum += math.Abs(fa[i] - fb[i])
	}
	return sum / float64(len(fa))
}

// AdjustIndex moves a target off a boundary point that does not allow
// snapping: the undershoot goes to 1, the overshoot to the point before it.
func (t *Table) AdjustIndex(i int) int {
	if len(t.Points) < 2 {
		return i
	}
	if i == 0 && !t.Points[0].AllowSnapping {
		return 1
	}
	if oi := t.OvershootIndex(); oi > 0 && i == oi && !t.Points[oi].AllowSnapping {
		return oi - 1
	}
	return i
}
