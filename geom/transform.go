// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: geom/transform.go
// Summary: Decomposed 3D transform whose components interpolate independently.

package geom

// Transform keeps every component separate so each one can be lerped and
// clamped on its own. Rotation is around Z in radians.
type Transform struct {
	Rotation    float64
	ScaleX      float64
	ScaleY      float64
	ScaleZ      float64
	TranslateX  float64
	TranslateY  float64
	TranslateZ  float64
	SkewX       float64
	SkewY       float64
	Perspective float64
}

// Identity is the transform that leaves geometry untouched.
var Identity = Transform{ScaleX: 1, ScaleY: 1, ScaleZ: 1}

// IsIdentity reports whether t equals Identity.
func (t Transform) IsIdentity() bool { return t == Identity }

// Components returns the components in declaration order.
func (t Transform) Components() [10]float64 {
	return [10]float64{
		t.Rotation, t.ScaleX, t.ScaleY, t.ScaleZ,
		t.TranslateX, t.TranslateY, t.TranslateZ,
		t.SkewX, t.SkewY, t.Perspective,
	}
}

// TransformFrom is the inverse of Components.
func TransformFrom(c [10]float64) Transform {
	return Transform{
		Rotation: c[0], ScaleX: c[1], ScaleY: c[2], ScaleZ: c[3],
		TranslateX: c[4], TranslateY: c[5], TranslateZ: c[6],
		SkewX: c[7], SkewY: c[8], Perspective: c[9],
	}
}

// Apply maps r through the 2D part of t: scale about the rect centre, then
// translate. Rotation, skew and perspective are left to the renderer.
func (t Transform) Apply(r Rect) Rect {
	w := r.Width * t.ScaleX
	h := r.Height * t.ScaleY
	return Rect{
		X:      r.MidX() - w/2 + t.TranslateX,
		Y:      r.MidY() - h/2 + t.TranslateY,
		Width:  w,
		Height: h,
	}
}
