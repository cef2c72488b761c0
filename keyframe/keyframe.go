// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: keyframe/keyframe.go
// Summary: Sparse per-snap-point keyframes and their resolved counterpart.
// Usage: Authors fill Config with only the properties they care about;
// Resolve walks the inheritance chain to produce a complete Values.

package keyframe

import (
	"fmt"
	"strings"

	"github.com/framegrace/texelmodal/geom"
)

// BlurStyle names a visual-effect material. Blur styles do not interpolate;
// intensity and opacity do.
type BlurStyle uint8

const (
	BlurNone BlurStyle = iota
	BlurExtraLight
	BlurLight
	BlurDark
	BlurRegular
	BlurProminent
)

var blurNames = []string{"none", "extraLight", "light", "dark", "regular", "prominent"}

func (b BlurStyle) String() string {
	if int(b) < len(blurNames) {
		return blurNames[b]
	}
	return fmt.Sprintf("BlurStyle(%d)", uint8(b))
}

// ParseBlurStyle is case-insensitive.
func ParseBlurStyle(s string) (BlurStyle, error) {
	for i, name := range blurNames {
		if strings.EqualFold(name, s) {
			return BlurStyle(i), nil
		}
	}
	return BlurNone, fmt.Errorf("unknown blur style %q", s)
}

// CornerMask selects which corners CornerRadius applies to.
type CornerMask uint8

const (
	CornerTopLeft CornerMask = 1 << iota
	CornerTopRight
	CornerBottomLeft
	CornerBottomRight

	CornersTop    = CornerTopLeft | CornerTopRight
	CornersBottom = CornerBottomLeft | CornerBottomRight
	CornersAll    = CornersTop | CornersBottom
)

// Has reports whether every corner in x is set.
func (m CornerMask) Has(x CornerMask) bool { return m&x == x }

// TapInteraction decides what a tap on the backdrop does.
type TapInteraction uint8

const (
	TapAutomatic TapInteraction = iota
	TapDismiss
	TapPassthrough
	TapIgnore
)

var tapNames = []string{"automatic", "dismiss", "passthrough", "ignore"}

func (t TapInteraction) String() string {
	if int(t) < len(tapNames) {
		return tapNames[t]
	}
	return fmt.Sprintf("TapInteraction(%d)", uint8(t))
}

// ParseTapInteraction is case-insensitive.
func ParseTapInteraction(s string) (TapInteraction, error) {
	for i, name := range tapNames {
		if strings.EqualFold(name, s) {
			return TapInteraction(i), nil
		}
	}
	return TapAutomatic, fmt.Errorf("unknown background tap interaction %q", s)
}

// Config is the sparse, author-supplied keyframe. A nil field means "not
// set here": Resolve takes it from the previous point or from Defaults.
type Config struct {
	ScrollInsets *geom.EdgeInsets

	Rotation    *float64
	ScaleX      *float64
	ScaleY      *float64
	ScaleZ      *float64
	TranslateX  *float64
	TranslateY  *float64
	TranslateZ  *float64
	SkewX       *float64
	SkewY       *float64
	Perspective *float64

	BorderWidth *float64
	BorderColor *geom.Color

	ShadowColor   *geom.Color
	ShadowOffset  *geom.Size
	ShadowOpacity *float64
	ShadowRadius  *float64

	CornerRadius  *float64
	MaskedCorners *CornerMask

	Opacity *float64

	BackgroundColor         *geom.Color
	BackgroundOpacity       *float64
	BackgroundBlurStyle     *BlurStyle
	BackgroundBlurOpacity   *float64
	BackgroundBlurIntensity *float64

	DragHandleSize         *geom.Size
	DragHandleOffset       *float64
	DragHandleColor        *geom.Color
	DragHandleOpacity      *float64
	DragHandleCornerRadius *float64

	BackdropColor         *geom.Color
	BackdropOpacity       *float64
	BackdropBlurStyle     *BlurStyle
	BackdropBlurIntensity *float64

	// AllowSnapping marks the point as a valid gesture-release target.
	AllowSnapping            *bool
	BackgroundTapInteraction *TapInteraction
}

// Values is the fully resolved property set of one interpolation point.
type Values struct {
	ScrollInsets geom.EdgeInsets
	Transform    geom.Transform

	BorderWidth float64
	BorderColor geom.Color

	ShadowColor   geom.Color
	ShadowOffset  geom.Size
	ShadowOpacity float64
	ShadowRadius  float64

	CornerRadius  float64
	MaskedCorners CornerMask

	Opacity float64

	BackgroundColor         geom.Color
	BackgroundOpacity       float64
	BackgroundBlurStyle     BlurStyle
	BackgroundBlurOpacity   float64
	BackgroundBlurIntensity float64

	DragHandleSize         geom.Size
	DragHandleOffset       float64
	DragHandleColor        geom.Color
	DragHandleOpacity      float64
	DragHandleCornerRadius float64

	BackdropColor         geom.Color
	BackdropOpacity       float64
	BackdropBlurStyle     BlurStyle
	BackdropBlurIntensity float64

	BackgroundTapInteraction TapInteraction
}

// Defaults returns the values used when neither a keyframe nor a
// predecessor supplies a property.
func Defaults() Values {
	return Values{
		Transform:                geom.Identity,
		BorderColor:              geom.Clear,
		ShadowColor:              geom.Black,
		ShadowOffset:             geom.Size{},
		CornerRadius:             0,
		MaskedCorners:            CornersAll,
		Opacity:                  1,
		BackgroundColor:          geom.SystemBackground,
		BackgroundOpacity:        1,
		BackgroundBlurStyle:      BlurNone,
		BackgroundBlurOpacity:    1,
		BackgroundBlurIntensity:  1,
		DragHandleSize:           geom.Size{Width: 40, Height: 6},
		DragHandleOffset:         8,
		DragHandleColor:          geom.SystemGray,
		DragHandleOpacity:        0.8,
		DragHandleCornerRadius:   3,
		BackdropColor:            geom.Black,
		BackdropOpacity:          0,
		BackdropBlurStyle:        BlurNone,
		BackdropBlurIntensity:    0,
		BackgroundTapInteraction: TapAutomatic,
	}
}

// Ptr returns a pointer to v; handy for filling a Config literal.
func Ptr[T any](v T) *T { return &v }

// Clone returns a copy of c whose pointers do not alias c's.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := &Config{}
	for _, p := range Properties() {
		p.copyConfig(out, c)
	}
	if c.AllowSnapping != nil {
		out.AllowSnapping = Ptr(*c.AllowSnapping)
	}
	return out
}

// Merge returns base with every property set in over replacing it.
func Merge(base, over *Config) *Config {
	if base == nil {
		return over.Clone()
	}
	out := base.Clone()
	if over == nil {
		return out
	}
	for _, p := range Properties() {
		if p.IsSet(over) {
			p.copyConfig(out, over)
		}
	}
	if over.AllowSnapping != nil {
		out.AllowSnapping = Ptr(*over.AllowSnapping)
	}
	return out
}

// Empty reports whether no property is set.
func (c *Config) Empty() bool {
	if c == nil {
		return true
	}
	if c.AllowSnapping != nil {
		return false
	}
	for _, p := range Properties() {
		if p.IsSet(c) {
			return false
		}
	}
	return true
}
