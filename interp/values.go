// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: interp/values.go
// Summary: Per-channel interpolation for colors, sizes, rects, insets and transforms.
// Notes: Each channel carries its own Clamp, so a rect may clamp its height at
// the top of the table while its origin keeps extrapolating.

package interp

import "github.com/framegrace/texelmodal/geom"

// ColorClamp holds one Clamp per RGBA channel.
type ColorClamp struct{ R, G, B, A Clamp }

// SizeClamp holds one Clamp per dimension.
type SizeClamp struct{ Width, Height Clamp }

// RectClamp holds one Clamp per rect component.
type RectClamp struct{ X, Y, Width, Height Clamp }

// InsetsClamp holds one Clamp per edge.
type InsetsClamp struct{ Top, Left, Bottom, Right Clamp }

// TransformClamp holds one Clamp per transform component.
type TransformClamp struct {
	Rotation, ScaleX, ScaleY, ScaleZ   Clamp
	TranslateX, TranslateY, TranslateZ Clamp
	SkewX, SkewY, Perspective          Clamp
}

// UniformColor applies c to every channel.
func UniformColor(c Clamp) ColorClamp { return ColorClamp{c, c, c, c} }

// UniformRect applies c to every component.
func UniformRect(c Clamp) RectClamp { return RectClamp{c, c, c, c} }

// UniformTransform applies c to every component.
func UniformTransform(c Clamp) TransformClamp {
	return TransformClamp{c, c, c, c, c, c, c, c, c, c}
}

func (c TransformClamp) components() [10]Clamp {
	return [10]Clamp{
		c.Rotation, c.ScaleX, c.ScaleY, c.ScaleZ,
		c.TranslateX, c.TranslateY, c.TranslateZ,
		c.SkewX, c.SkewY, c.Perspective,
	}
}

func checkRange(in []float64, n int) error {
	if len(in) != n || len(in) < 2 {
		return ErrRangeMismatch
	}
	return nil
}

// channel interpolates one extracted channel of out. The range must
// already have passed checkRange.
func channel[V any](x float64, in []float64, out []V, get func(V) float64, c Clamp) float64 {
	col := make([]float64, len(out))
	for i, v := range out {
		col[i] = get(v)
	}
	return eval(x, in, col, c)
}

// Color interpolates every RGBA channel independently.
func Color(x float64, in []float64, out []geom.Color, c ColorClamp) (geom.Color, error) {
	if err := checkRange(in, len(out)); err != nil {
		return geom.Color{}, err
	}
	var res geom.Color
	res.R = channel(x, in, out, func(v geom.Color) float64 { return v.R }, c.R)
	res.G = channel(x, in, out, func(v geom.Color) float64 { return v.G }, c.G)
	res.B = channel(x, in, out, func(v geom.Color) float64 { return v.B }, c.B)
	res.A = channel(x, in, out, func(v geom.Color) float64 { return v.A }, c.A)
	return res, nil
}

// Size interpolates width and height independently.
func Size(x float64, in []float64, out []geom.Size, c SizeClamp) (geom.Size, error) {
	if err := checkRange(in, len(out)); err != nil {
		return geom.Size{}, err
	}
	return geom.Size{
		Width:  channel(x, in, out, func(v geom.Size) float64 { return v.Width }, c.Width),
		Height: channel(x, in, out, func(v geom.Size) float64 { return v.Height }, c.Height),
	}, nil
}

// Rect interpolates origin and size components independently.
func Rect(x float64, in []float64, out []geom.Rect, c RectClamp) (geom.Rect, error) {
	if err := checkRange(in, len(out)); err != nil {
		return geom.Rect{}, err
	}
	return geom.Rect{
		X:      channel(x, in, out, func(v geom.Rect) float64 { return v.X }, c.X),
		Y:      channel(x, in, out, func(v geom.Rect) float64 { return v.Y }, c.Y),
		Width:  channel(x, in, out, func(v geom.Rect) float64 { return v.Width }, c.Width),
		Height: channel(x, in, out, func(v geom.Rect) float64 { return v.Height }, c.Height),
	}, nil
}

// Insets interpolates each edge independently.
func Insets(x float64, in []float64, out []geom.EdgeInsets, c InsetsClamp) (geom.EdgeInsets, error) {
	if err := checkRange(in, len(out)); err != nil {
		return geom.EdgeInsets{}, err
	}
	return geom.EdgeInsets{
		Top:    channel(x, in, out, func(v geom.EdgeInsets) float64 { return v.Top }, c.Top),
		Left:   channel(x, in, out, func(v geom.EdgeInsets) float64 { return v.Left }, c.Left),
		Bottom: channel(x, in, out, func(v geom.EdgeInsets) float64 { return v.Bottom }, c.Bottom),
		Right:  channel(x, in, out, func(v geom.EdgeInsets) float64 { return v.Right }, c.Right),
	}, nil
}

// Transform interpolates each transform component independently.
func Transform(x float64, in []float64, out []geom.Transform, c TransformClamp) (geom.Transform, error) {
	if err := checkRange(in, len(out)); err != nil {
		return geom.Transform{}, err
	}
	comps := make([][10]float64, len(out))
	for i, v := range out {
		comps[i] = v.Components()
	}
	clamps := c.components()
	var res [10]float64
	for k := range res {
		res[k] = channel(x, in, comps, func(v [10]float64) float64 { return v[k] }, clamps[k])
	}
	return geom.TransformFrom(res), nil
}
