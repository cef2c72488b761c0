// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelmodal-demo/render.go
// Summary: Paints an interpolated modal sample onto a tcell screen.

package main

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelmodal/geom"
	"github.com/framegrace/texelmodal/keyframe"
	"github.com/framegrace/texelmodal/snap"
)

var (
	desktopColor = geom.Opaque(0.07, 0.07, 0.11)
	desktopText  = geom.Opaque(0.55, 0.57, 0.68)
	labelColor   = geom.Opaque(0.80, 0.84, 0.96)
)

func tcellColor(c geom.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// cellRect rounds r to whole cells.
type cellRect struct{ x0, y0, x1, y1 int }

func toCells(r geom.Rect) cellRect {
	return cellRect{
		x0: int(math.Round(r.MinX())),
		y0: int(math.Round(r.MinY())),
		x1: int(math.Round(r.MaxX())),
		y1: int(math.Round(r.MaxY())),
	}
}

func (c cellRect) contains(x, y int) bool {
	return x >= c.x0 && x < c.x1 && y >= c.y0 && y < c.y1
}

// isCorner reports whether (x, y) is a rounded-off corner cell.
func (c cellRect) isCorner(x, y int, mask keyframe.CornerMask) bool {
	top, bottom := y == c.y0, y == c.y1-1
	left, right := x == c.x0, x == c.x1-1
	switch {
	case top && left:
		return mask.Has(keyframe.CornerTopLeft)
	case top && right:
		return mask.Has(keyframe.CornerTopRight)
	case bottom && left:
		return mask.Has(keyframe.CornerBottomLeft)
	case bottom && right:
		return mask.Has(keyframe.CornerBottomRight)
	}
	return false
}

// drawBackground fills the screen with the desktop and the backdrop dimming.
func drawBackground(s tcell.Screen, v keyframe.Values) geom.Color {
	w, h := s.Size()
	bg := v.BackdropColor.Over(desktopColor, v.BackdropOpacity)
	style := tcell.StyleDefault.Background(tcellColor(bg)).Foreground(tcellColor(desktopText))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r := ' '
			if (x+y)%8 == 0 {
				r = '·'
			}
			s.SetContent(x, y, r, nil, style)
		}
	}
	return bg
}

// drawSheet paints the sheet body, its border and drag handle, and centers
// label inside it.
func drawSheet(s tcell.Screen, smp snap.Sample, under geom.Color, label string) {
	w, h := s.Size()
	v := smp.Values
	r := toCells(v.Transform.Apply(smp.Rect))
	if r.x1 <= r.x0 || r.y1 <= r.y0 {
		return
	}

	body := v.BackgroundColor.Over(under, v.Opacity*v.BackgroundOpacity)
	border := v.BorderColor.Over(body, v.Opacity)
	rounded := v.CornerRadius >= 1

	for y := max(r.y0, 0); y < min(r.y1, h); y++ {
		for x := max(r.x0, 0); x < min(r.x1, w); x++ {
			if rounded && r.isCorner(x, y, v.MaskedCorners) {
				continue
			}
			ch := ' '
			fg := body
			if v.BorderWidth >= 1 {
				if ch = borderRune(r, x, y); ch != ' ' {
					fg = border
				}
			}
			s.SetContent(x, y, ch, nil, tcell.StyleDefault.Background(tcellColor(body)).Foreground(tcellColor(fg)))
		}
	}

	drawHandle(s, r, v, body)

	if label == "" {
		return
	}
	mid := r.y0 + (r.y1-r.y0)/2
	if mid < 0 || mid >= h {
		return
	}
	avail := r.x1 - r.x0 - 2
	if avail <= 0 {
		return
	}
	label = runewidth.Truncate(label, avail, "…")
	x := r.x0 + (r.x1-r.x0-runewidth.StringWidth(label))/2
	style := tcell.StyleDefault.Background(tcellColor(body)).Foreground(tcellColor(labelColor.Over(body, v.Opacity)))
	drawText(s, x, mid, label, style)
}

func borderRune(r cellRect, x, y int) rune {
	top, bottom := y == r.y0, y == r.y1-1
	left, right := x == r.x0, x == r.x1-1
	switch {
	case top && left:
		return '┌'
	case top && right:
		return '┐'
	case bottom && left:
		return '└'
	case bottom && right:
		return '┘'
	case top || bottom:
		return '─'
	case left || right:
		return '│'
	}
	return ' '
}

// drawHandle draws the grabber on the sheet's first row. Handle sizes are
// authored in points; a cell is taken as 5 points wide.
func drawHandle(s tcell.Screen, r cellRect, v keyframe.Values, body geom.Color) {
	if v.DragHandleOpacity <= 0 || r.y1-r.y0 < 2 {
		return
	}
	width := int(math.Round(v.DragHandleSize.Width / 5))
	width = min(max(width, 3), r.x1-r.x0-2)
	if width <= 0 {
		return
	}
	color := v.DragHandleColor.Over(body, v.DragHandleOpacity*v.Opacity)
	style := tcell.StyleDefault.Background(tcellColor(body)).Foreground(tcellColor(color))
	x0 := r.x0 + (r.x1-r.x0-width)/2
	sw, sh := s.Size()
	if r.y0 < 0 || r.y0 >= sh {
		return
	}
	for x := x0; x < x0+width && x < sw; x++ {
		if x >= 0 {
			s.SetContent(x, r.y0, '━', nil, style)
		}
	}
}

// drawText writes str from (x, y), advancing by each rune's display width.
func drawText(s tcell.Screen, x, y int, str string, style tcell.Style) {
	w, _ := s.Size()
	for _, ch := range str {
		if x >= w {
			return
		}
		if x >= 0 {
			s.SetContent(x, y, ch, nil, style)
		}
		x += runewidth.RuneWidth(ch)
	}
}
