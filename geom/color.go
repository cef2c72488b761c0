// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: geom/color.go
// Summary: RGBA color built on go-colorful with an explicit alpha channel.

package geom

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an sRGB color with alpha. Channels are 0..1 but may leave that
// range while being extrapolated; Clamped brings them back.
type Color struct {
	colorful.Color
	A float64
}

// RGBA builds a color from float channels.
func RGBA(r, g, b, a float64) Color {
	return Color{Color: colorful.Color{R: r, G: g, B: b}, A: a}
}

// Opaque returns an opaque color from float channels.
func Opaque(r, g, b float64) Color { return RGBA(r, g, b, 1) }

var (
	Clear            = RGBA(0, 0, 0, 0)
	Black            = Opaque(0, 0, 0)
	White            = Opaque(1, 1, 1)
	SystemGray       = Opaque(0.56, 0.56, 0.58)
	SystemBackground = White
)

// ParseColor accepts "#rrggbb", "#rrggbbaa" and the literal "clear".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "clear") || strings.EqualFold(s, "transparent") {
		return Clear, nil
	}
	alpha := 1.0
	if len(s) == 9 && s[0] == '#' {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("parse alpha of %q: %w", s, err)
		}
		alpha = float64(a) / 255
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, err
	}
	return Color{Color: c, A: alpha}, nil
}

// Clamped returns the color with every channel limited to 0..1.
func (c Color) Clamped() Color {
	return Color{Color: c.Color.Clamped(), A: clamp01(c.A)}
}

// Hex formats the color as #rrggbbaa.
func (c Color) Hex() string {
	cc := c.Clamped()
	return fmt.Sprintf("%s%02x", cc.Color.Hex(), uint8(cc.A*255+0.5))
}

// RGB255 returns the clamped channels as bytes, ignoring alpha.
func (c Color) RGB255() (r, g, b uint8) {
	return c.Color.Clamped().RGB255()
}

// Over composites c over dst using c's alpha scaled by opacity.
func (c Color) Over(dst Color, opacity float64) Color {
	a := clamp01(c.A * opacity)
	return Color{
		Color: dst.Color.BlendRgb(c.Color, a),
		A:     a + dst.A*(1-a),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
