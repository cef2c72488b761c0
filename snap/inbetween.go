// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: snap/inbetween.go
// Summary: Derives in-between snap points from their bounding standard points.

package snap

import (
	"fmt"

	"github.com/framegrace/texelmodal/geom"
	"github.com/framegrace/texelmodal/interp"
	"github.com/framegrace/texelmodal/keyframe"
	"github.com/framegrace/texelmodal/layout"
)

// resolveInBetween fills out[i] for every in-between point. Each maximal
// run of in-between points is bounded by the standard point before it and,
// unless the run ends the table, the standard point after it. Resolved
// points are compiled like standard ones, with a layout.Fixed rect and a
// pinned keyframe, and keep their synthetic percent.
func (c *Compiler) resolveInBetween(points []SnapPointConfig, standard []int, ctx layout.Context, out []InterpolationPoint) error {
	for i := 0; i < len(points); {
		if points[i].Mode != ModeInBetween {
			i++
			continue
		}
		start := i - 1
		end := i
		for end < len(points) && points[end].Mode == ModeInBetween {
			end++
		}
		a := out[start]
		for k := i; k < end; k++ {
			var (
				p   resolvedInBetween
				err error
			)
			if end < len(points) {
				p, err = c.between(points[k], k, a, out[end])
			} else {
				p = c.trailing(points[k], k, a, standard, out)
			}
			if err != nil {
				return fmt.Errorf("in-between point %d: %w", k, err)
			}

			kf := keyframe.Pin(p.values)
			kf.AllowSnapping = keyframe.Ptr(keyframe.AllowSnapping(points[k].Keyframe, false))
			cfg := SnapPointConfig{
				Key:      points[k].Key,
				Layout:   layout.Fixed{Rect: p.rect, Padding: p.padding},
				Keyframe: kf,
			}
			pt, err := c.resolvePoint(cfg, k, len(points), nil, false, ctx)
			if err != nil {
				return err
			}
			pt.Percent = p.percent
			out[k] = pt
		}
		i = end
	}
	return nil
}

type resolvedInBetween struct {
	values  keyframe.Values
	rect    geom.Rect
	padding geom.EdgeInsets
	percent float64
}

// between interpolates point k at its index fraction between a and b.
func (c *Compiler) between(cfg SnapPointConfig, k int, a, b InterpolationPoint) (resolvedInBetween, error) {
	ia, ib := float64(a.SnapPointIndex), float64(b.SnapPointIndex)
	t := (float64(k) - ia) / (ib - ia)

	vals, err := keyframe.Between(cfg.Keyframe, t, a.Values, b.Values, c.Clamp)
	if err != nil {
		return resolvedInBetween{}, err
	}
	unit := []float64{0, 1}
	rect, err := interp.Rect(t, unit, []geom.Rect{a.ComputedRect, b.ComputedRect}, c.Clamp.Rect)
	if err != nil {
		return resolvedInBetween{}, err
	}
	pad, err := interp.Insets(t, unit, []geom.EdgeInsets{a.ComputedPadding, b.ComputedPadding}, c.Clamp.Padding)
	if err != nil {
		return resolvedInBetween{}, err
	}
	return resolvedInBetween{
		values:  vals,
		rect:    rect,
		padding: pad,
		percent: interp.Lerp(a.Percent, b.Percent, t),
	}, nil
}

// trailing handles a run with no standard point after it: the point copies
// a and its percent continues the spacing of the last two standard points.
func (c *Compiler) trailing(cfg SnapPointConfig, k int, a InterpolationPoint, standard []int, out []InterpolationPoint) resolvedInBetween {
	percent := a.Percent
	if n := len(standard); n >= 2 {
		prev := out[standard[n-2]]
		step := (a.Percent - prev.Percent) / float64(a.SnapPointIndex-prev.SnapPointIndex)
		percent = a.Percent + step*float64(k-a.SnapPointIndex)
	}
	return resolvedInBetween{
		values:  keyframe.Resolve(cfg.Keyframe, &a.Values),
		rect:    a.ComputedRect,
		padding: a.ComputedPadding,
		percent: percent,
	}
}
