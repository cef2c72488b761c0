// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: keyframe/properties.go
// Summary: Declarative property table driving inheritance and interpolation.
// Notes: Every keyframe property appears exactly once below as a typed
// (optional accessor, resolved accessor, interpolator) triple. Resolve,
// Between and Interpolate iterate the table instead of repeating per-field
// code, and nothing here uses reflection.

package keyframe

import (
	"fmt"
	"math"

	"github.com/framegrace/texelmodal/geom"
	"github.com/framegrace/texelmodal/interp"
)

// Kind is the interpolator family of a property.
type Kind uint8

const (
	KindScalar Kind = iota
	KindColor
	KindSize
	KindInsets
	// KindDiscrete values never blend; they snap to the nearest knot.
	KindDiscrete
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindColor:
		return "color"
	case KindSize:
		return "size"
	case KindInsets:
		return "insets"
	default:
		return "discrete"
	}
}

// Clamp configures which properties stop extrapolating past the ends of an
// interpolation table. Rect and Padding are consumed by the snap package.
type Clamp struct {
	Rect         interp.RectClamp
	Padding      interp.InsetsClamp
	ScrollInsets interp.InsetsClamp
	Transform    interp.TransformClamp
	// Opacity applies to every opacity-like property.
	Opacity interp.Clamp
	// Radius applies to radii, widths, offsets and blur intensities.
	Radius interp.Clamp
	Color  interp.ColorClamp
	Size   interp.SizeClamp
}

// DefaultClamp keeps opacities and colors inside the authored range and
// stops sizes from going negative below the first point.
func DefaultClamp() Clamp {
	return Clamp{
		Rect:    interp.RectClamp{Width: interp.ClampMin, Height: interp.ClampMin},
		Opacity: interp.ClampBoth,
		Radius:  interp.ClampMin,
		Color:   interp.UniformColor(interp.ClampBoth),
		Size:    interp.SizeClamp{Width: interp.ClampMin, Height: interp.ClampMin},
	}
}

// Property is one row of the property table.
type Property interface {
	Name() string
	Kind() Kind
	IsSet(c *Config) bool

	resolve(dst *Values, c *Config, fallback *Values)
	pin(c *Config, v *Values)
	copyConfig(dst, src *Config)
	interpolate(dst *Values, x float64, in []float64, src []Values, cl Clamp) error
}

type lerpFunc[T any] func(x float64, in []float64, out []T, cl Clamp) (T, error)

type field[T any] struct {
	name string
	kind Kind
	opt  func(*Config) **T
	val  func(*Values) *T
	lerp lerpFunc[T]
}

func (f field[T]) Name() string { return f.name }
func (f field[T]) Kind() Kind   { return f.kind }

func (f field[T]) IsSet(c *Config) bool {
	return c != nil && *f.opt(c) != nil
}

func (f field[T]) resolve(dst *Values, c *Config, fallback *Values) {
	if c != nil {
		if p := *f.opt(c); p != nil {
			*f.val(dst) = *p
			return
		}
	}
	*f.val(dst) = *f.val(fallback)
}

func (f field[T]) pin(c *Config, v *Values) {
	x := *f.val(v)
	*f.opt(c) = &x
}

func (f field[T]) copyConfig(dst, src *Config) {
	if p := *f.opt(src); p != nil {
		x := *p
		*f.opt(dst) = &x
	}
}

func (f field[T]) interpolate(dst *Values, x float64, in []float64, src []Values, cl Clamp) error {
	out := make([]T, len(src))
	for i := range src {
		out[i] = *f.val(&src[i])
	}
	v, err := f.lerp(x, in, out, cl)
	if err != nil {
		return fmt.Errorf("%s: %w", f.name, err)
	}
	*f.val(dst) = v
	return nil
}

func scalar(class func(Clamp) interp.Clamp) lerpFunc[float64] {
	return func(x float64, in []float64, out []float64, cl Clamp) (float64, error) {
		return interp.Value(x, in, out, class(cl))
	}
}

func color(x float64, in []float64, out []geom.Color, cl Clamp) (geom.Color, error) {
	return interp.Color(x, in, out, cl.Color)
}

func size(x float64, in []float64, out []geom.Size, cl Clamp) (geom.Size, error) {
	return interp.Size(x, in, out, cl.Size)
}

func insets(x float64, in []float64, out []geom.EdgeInsets, cl Clamp) (geom.EdgeInsets, error) {
	return interp.Insets(x, in, out, cl.ScrollInsets)
}

// nearest picks the knot closest to x; ties go to the later knot.
func nearest[T any](x float64, in []float64, out []T, _ Clamp) (T, error) {
	var zero T
	if len(in) != len(out) || len(in) < 2 {
		return zero, interp.ErrRangeMismatch
	}
	best, bestDist := 0, math.Inf(1)
	for i := range in {
		if d := math.Abs(x - in[i]); d <= bestDist {
			best, bestDist = i, d
		}
	}
	return out[best], nil
}

func opacity(cl Clamp) interp.Clamp { return cl.Opacity }
func radius(cl Clamp) interp.Clamp  { return cl.Radius }

func floatField(name string, opt func(*Config) **float64, val func(*Values) *float64, class func(Clamp) interp.Clamp) Property {
	return field[float64]{name: name, kind: KindScalar, opt: opt, val: val, lerp: scalar(class)}
}

func colorField(name string, opt func(*Config) **geom.Color, val func(*Values) *geom.Color) Property {
	return field[geom.Color]{name: name, kind: KindColor, opt: opt, val: val, lerp: color}
}

func sizeField(name string, opt func(*Config) **geom.Size, val func(*Values) *geom.Size) Property {
	return field[geom.Size]{name: name, kind: KindSize, opt: opt, val: val, lerp: size}
}

func discreteField[T any](name string, opt func(*Config) **T, val func(*Values) *T) Property {
	return field[T]{name: name, kind: KindDiscrete, opt: opt, val: val, lerp: nearest[T]}
}

var properties = []Property{
	field[geom.EdgeInsets]{
		name: "scrollInsets",
		kind: KindInsets,
		opt:  func(c *Config) **geom.EdgeInsets { return &c.ScrollInsets },
		val:  func(v *Values) *geom.EdgeInsets { return &v.ScrollInsets },
		lerp: insets,
	},

	floatField("rotation", func(c *Config) **float64 { return &c.Rotation }, func(v *Values) *float64 { return &v.Transform.Rotation }, func(cl Clamp) interp.Clamp { return cl.Transform.Rotation }),
	floatField("scaleX", func(c *Config) **float64 { return &c.ScaleX }, func(v *Values) *float64 { return &v.Transform.ScaleX }, func(cl Clamp) interp.Clamp { return cl.Transform.ScaleX }),
	floatField("scaleY", func(c *Config) **float64 { return &c.ScaleY }, func(v *Values) *float64 { return &v.Transform.ScaleY }, func(cl Clamp) interp.Clamp { return cl.Transform.ScaleY }),
	floatField("scaleZ", func(c *Config) **float64 { return &c.ScaleZ }, func(v *Values) *float64 { return &v.Transform.ScaleZ }, func(cl Clamp) interp.Clamp { return cl.Transform.ScaleZ }),
	floatField("translateX", func(c *Config) **float64 { return &c.TranslateX }, func(v *Values) *float64 { return &v.Transform.TranslateX }, func(cl Clamp) interp.Clamp { return cl.Transform.TranslateX }),
	floatField("translateY", func(c *Config) **float64 { return &c.TranslateY }, func(v *Values) *float64 { return &v.Transform.TranslateY }, func(cl Clamp) interp.Clamp { return cl.Transform.TranslateY }),
	floatField("translateZ", func(c *Config) **float64 { return &c.TranslateZ }, func(v *Values) *float64 { return &v.Transform.TranslateZ }, func(cl Clamp) interp.Clamp { return cl.Transform.TranslateZ }),
	floatField("skewX", func(c *Config) **float64 { return &c.SkewX }, func(v *Values) *float64 { return &v.Transform.SkewX }, func(cl Clamp) interp.Clamp { return cl.Transform.SkewX }),
	floatField("skewY", func(c *Config) **float64 { return &c.SkewY }, func(v *Values) *float64 { return &v.Transform.SkewY }, func(cl Clamp) interp.Clamp { return cl.Transform.SkewY }),
	floatField("perspective", func(c *Config) **float64 { return &c.Perspective }, func(v *Values) *float64 { return &v.Transform.Perspective }, func(cl Clamp) interp.Clamp { return cl.Transform.Perspective }),

	floatField("borderWidth", func(c *Config) **float64 { return &c.BorderWidth }, func(v *Values) *float64 { return &v.BorderWidth }, radius),
	colorField("borderColor", func(c *Config) **geom.Color { return &c.BorderColor }, func(v *Values) *geom.Color { return &v.BorderColor }),

	colorField("shadowColor", func(c *Config) **geom.Color { return &c.ShadowColor }, func(v *Values) *geom.Color { return &v.ShadowColor }),
	sizeField("shadowOffset", func(c *Config) **geom.Size { return &c.ShadowOffset }, func(v *Values) *geom.Size { return &v.ShadowOffset }),
	floatField("shadowOpacity", func(c *Config) **float64 { return &c.ShadowOpacity }, func(v *Values) *float64 { return &v.ShadowOpacity }, opacity),
	floatField("shadowRadius", func(c *Config) **float64 { return &c.ShadowRadius }, func(v *Values) *float64 { return &v.ShadowRadius }, radius),

	floatField("cornerRadius", func(c *Config) **float64 { return &c.CornerRadius }, func(v *Values) *float64 { return &v.CornerRadius }, radius),
	discreteField("maskedCorners", func(c *Config) **CornerMask { return &c.MaskedCorners }, func(v *Values) *CornerMask { return &v.MaskedCorners }),

	floatField("opacity", func(c *Config) **float64 { return &c.Opacity }, func(v *Values) *float64 { return &v.Opacity }, opacity),

	colorField("backgroundColor", func(c *Config) **geom.Color { return &c.BackgroundColor }, func(v *Values) *geom.Color { return &v.BackgroundColor }),
	floatField("backgroundOpacity", func(c *Config) **float64 { return &c.BackgroundOpacity }, func(v *Values) *float64 { return &v.BackgroundOpacity }, opacity),
	discreteField("backgroundBlurStyle", func(c *Config) **BlurStyle { return &c.BackgroundBlurStyle }, func(v *Values) *BlurStyle { return &v.BackgroundBlurStyle }),
	floatField("backgroundBlurOpacity", func(c *Config) **float64 { return &c.BackgroundBlurOpacity }, func(v *Values) *float64 { return &v.BackgroundBlurOpacity }, opacity),
	floatField("backgroundBlurIntensity", func(c *Config) **float64 { return &c.BackgroundBlurIntensity }, func(v *Values) *float64 { return &v.BackgroundBlurIntensity }, opacity),

	sizeField("dragHandleSize", func(c *Config) **geom.Size { return &c.DragHandleSize }, func(v *Values) *geom.Size { return &v.DragHandleSize }),
	floatField("dragHandleOffset", func(c *Config) **float64 { return &c.DragHandleOffset }, func(v *Values) *float64 { return &v.DragHandleOffset }, radius),
	colorField("dragHandleColor", func(c *Config) **geom.Color { return &c.DragHandleColor }, func(v *Values) *geom.Color { return &v.DragHandleColor }),
	floatField("dragHandleOpacity", func(c *Config) **float64 { return &c.DragHandleOpacity }, func(v *Values) *float64 { return &v.DragHandleOpacity }, opacity),
	floatField("dragHandleCornerRadius", func(c *Config) **float64 { return &c.DragHandleCornerRadius }, func(v *Values) *float64 { return &v.DragHandleCornerRadius }, radius),

	colorField("backdropColor", func(c *Config) **geom.Color { return &c.BackdropColor }, func(v *Values) *geom.Color { return &v.BackdropColor }),
	floatField("backdropOpacity", func(c *Config) **float64 { return &c.BackdropOpacity }, func(v *Values) *float64 { return &v.BackdropOpacity }, opacity),
	discreteField("backdropBlurStyle", func(c *Config) **BlurStyle { return &c.BackdropBlurStyle }, func(v *Values) *BlurStyle { return &v.BackdropBlurStyle }),
	floatField("backdropBlurIntensity", func(c *Config) **float64 { return &c.BackdropBlurIntensity }, func(v *Values) *float64 { return &v.BackdropBlurIntensity }, opacity),

	discreteField("backgroundTapInteraction", func(c *Config) **TapInteraction { return &c.BackgroundTapInteraction }, func(v *Values) *TapInteraction { return &v.BackgroundTapInteraction }),
}

// Properties returns the property table in declaration order.
func Properties() []Property { return properties }
