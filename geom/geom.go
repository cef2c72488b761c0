// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: geom/geom.go
// Summary: Value types shared by the modal engine: points, sizes, rects, insets.
// Notes: All coordinates are float64 so interpolation never rounds; callers
// snap to cells or pixels at the very last stage.

package geom

import "fmt"

// Point is a location in viewport coordinates.
type Point struct {
	X, Y float64
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// On returns the component of p along axis.
func (p Point) On(axis Axis) float64 {
	if axis == AxisX {
		return p.X
	}
	return p.Y
}

func (p Point) String() string { return fmt.Sprintf("(%.2f,%.2f)", p.X, p.Y) }

// Size is a width/height pair.
type Size struct {
	Width, Height float64
}

// On returns the extent of s along axis.
func (s Size) On(axis Axis) float64 {
	if axis == AxisX {
		return s.Width
	}
	return s.Height
}

// Rect is an axis aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y, Width, Height float64
}

func (r Rect) MinX() float64 { return r.X }
func (r Rect) MidX() float64 { return r.X + r.Width/2 }
func (r Rect) MaxX() float64 { return r.X + r.Width }
func (r Rect) MinY() float64 { return r.Y }
func (r Rect) MidY() float64 { return r.Y + r.Height/2 }
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// Origin returns the top-left corner.
func (r Rect) Origin() Point { return Point{r.X, r.Y} }

// Size returns the rect's size.
func (r Rect) Size() Size { return Size{r.Width, r.Height} }

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Contains reports whether p lies inside r (max edges exclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX() && p.X < r.MaxX() && p.Y >= r.MinY() && p.Y < r.MaxY()
}

// Inset shrinks r by the given insets.
func (r Rect) Inset(in EdgeInsets) Rect {
	return Rect{
		X:      r.X + in.Left,
		Y:      r.Y + in.Top,
		Width:  r.Width - in.Left - in.Right,
		Height: r.Height - in.Top - in.Bottom,
	}
}

// Offset returns r translated by p.
func (r Rect) Offset(p Point) Rect {
	r.X += p.X
	r.Y += p.Y
	return r
}

// Features returns the eight values used for rect-distance matching:
// minX, midX, maxX, width, minY, midY, maxY, height.
func (r Rect) Features() [8]float64 {
	return [8]float64{
		r.MinX(), r.MidX(), r.MaxX(), r.Width,
		r.MinY(), r.MidY(), r.MaxY(), r.Height,
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("[%.2f,%.2f %.2fx%.2f]", r.X, r.Y, r.Width, r.Height)
}

// EdgeInsets are distances inward from each edge.
type EdgeInsets struct {
	Top, Left, Bottom, Right float64
}

// Horizontal returns Left+Right.
func (e EdgeInsets) Horizontal() float64 { return e.Left + e.Right }

// Vertical returns Top+Bottom.
func (e EdgeInsets) Vertical() float64 { return e.Top + e.Bottom }
