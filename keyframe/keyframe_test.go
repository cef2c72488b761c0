// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package keyframe

import (
	"errors"
	"testing"

	"github.com/framegrace/texelmodal/geom"
	"github.com/framegrace/texelmodal/interp"
)

func TestResolveUsesDefaultsWithoutFallback(t *testing.T) {
	got := Resolve(nil, nil)
	if got != Defaults() {
		t.Fatalf("expected defaults, got %+v", got)
	}
	if got.Opacity != 1 || got.CornerRadius != 0 {
		t.Fatalf("unexpected defaults opacity=%v radius=%v", got.Opacity, got.CornerRadius)
	}
	if got.DragHandleColor != geom.SystemGray {
		t.Fatalf("drag handle color = %v", got.DragHandleColor)
	}
}

func TestResolveInheritsFromFallback(t *testing.T) {
	prev := Resolve(&Config{
		Opacity:         Ptr(0.4),
		CornerRadius:    Ptr(12.0),
		BackgroundColor: Ptr(geom.Opaque(0.1, 0.2, 0.3)),
		MaskedCorners:   Ptr(CornersTop),
		ScaleX:          Ptr(0.9),
	}, nil)

	same := Resolve(&Config{}, &prev)
	if same != prev {
		t.Fatalf("empty keyframe should inherit everything:\n got %+v\nwant %+v", same, prev)
	}

	next := Resolve(&Config{Opacity: Ptr(1.0)}, &prev)
	if next.Opacity != 1 {
		t.Fatalf("explicit opacity lost: %v", next.Opacity)
	}
	if next.CornerRadius != 12 || next.MaskedCorners != CornersTop || next.Transform.ScaleX != 0.9 {
		t.Fatalf("inherited values lost: %+v", next)
	}
}

func TestAllowSnappingDefault(t *testing.T) {
	if !AllowSnapping(nil, true) {
		t.Fatalf("nil config should use default")
	}
	if AllowSnapping(&Config{AllowSnapping: Ptr(false)}, true) {
		t.Fatalf("explicit false ignored")
	}
}

func TestBetweenBlendsUnsetContinuousProperties(t *testing.T) {
	a := Resolve(&Config{Opacity: Ptr(0.0), CornerRadius: Ptr(0.0), BackdropBlurStyle: Ptr(BlurDark)}, nil)
	b := Resolve(&Config{Opacity: Ptr(1.0), CornerRadius: Ptr(20.0), BackdropBlurStyle: Ptr(BlurLight)}, &a)

	got, err := Between(&Config{CornerRadius: Ptr(3.0)}, 0.25, a, b, DefaultClamp())
	if err != nil {
		t.Fatalf("Between: %v", err)
	}
	if got.Opacity != 0.25 {
		t.Fatalf("opacity = %v, want 0.25", got.Opacity)
	}
	if got.CornerRadius != 3 {
		t.Fatalf("explicit corner radius overridden: %v", got.CornerRadius)
	}
	if got.BackdropBlurStyle != BlurDark {
		t.Fatalf("discrete property should inherit from start, got %v", got.BackdropBlurStyle)
	}
}

func TestInterpolateDiscreteNearestKnot(t *testing.T) {
	a := Resolve(&Config{MaskedCorners: Ptr(CornersTop)}, nil)
	b := Resolve(&Config{MaskedCorners: Ptr(CornersAll)}, nil)
	in := []float64{0, 1}

	got, err := Interpolate(0.4, in, []Values{a, b}, DefaultClamp())
	if err != nil {
		t.Fatalf("Interpolate: %v", err)
	}
	if got.MaskedCorners != CornersTop {
		t.Fatalf("masked corners = %v, want top", got.MaskedCorners)
	}
	got, _ = Interpolate(0.6, in, []Values{a, b}, DefaultClamp())
	if got.MaskedCorners != CornersAll {
		t.Fatalf("masked corners = %v, want all", got.MaskedCorners)
	}
}

func TestInterpolateClampsOpacity(t *testing.T) {
	a := Resolve(&Config{Opacity: Ptr(0.2)}, nil)
	b := Resolve(&Config{Opacity: Ptr(0.8)}, nil)
	got, err := Interpolate(3, []float64{0, 1}, []Values{a, b}, DefaultClamp())
	if err != nil {
		t.Fatalf("Interpolate: %v", err)
	}
	if got.Opacity != 0.8 {
		t.Fatalf("opacity should clamp at 0.8, got %v", got.Opacity)
	}

	cl := DefaultClamp()
	cl.Opacity = interp.NoClamp
	got, _ = Interpolate(2, []float64{0, 1}, []Values{a, b}, cl)
	if got.Opacity < 1.39 || got.Opacity > 1.41 {
		t.Fatalf("unclamped opacity should extrapolate to 1.4, got %v", got.Opacity)
	}
}

func TestInterpolateRangeMismatch(t *testing.T) {
	_, err := Interpolate(0.5, []float64{0}, []Values{Defaults()}, DefaultClamp())
	if !errors.Is(err, interp.ErrRangeMismatch) {
		t.Fatalf("expected ErrRangeMismatch, got %v", err)
	}
}

func TestPinRoundTrip(t *testing.T) {
	v := Resolve(&Config{Opacity: Ptr(0.3), ShadowRadius: Ptr(4.0)}, nil)
	pinned := Pin(v)
	other := Resolve(&Config{Opacity: Ptr(0.9)}, nil)
	if got := Resolve(pinned, &other); got != v {
		t.Fatalf("pinned config should ignore fallback")
	}
}

func TestMergeCloneEmpty(t *testing.T) {
	base := &Config{Opacity: Ptr(0.5), CornerRadius: Ptr(4.0)}
	over := &Config{CornerRadius: Ptr(8.0), AllowSnapping: Ptr(false)}

	m := Merge(base, over)
	if *m.Opacity != 0.5 || *m.CornerRadius != 8 || *m.AllowSnapping {
		t.Fatalf("unexpected merge result %+v", m)
	}
	*m.Opacity = 0.1
	if *base.Opacity != 0.5 {
		t.Fatalf("merge aliased base")
	}
	if !(&Config{}).Empty() || base.Empty() {
		t.Fatalf("Empty misreports")
	}
	var nilCfg *Config
	if !nilCfg.Empty() || nilCfg.Clone() != nil {
		t.Fatalf("nil config handling")
	}
}

func TestParseEnums(t *testing.T) {
	if b, err := ParseBlurStyle("Prominent"); err != nil || b != BlurProminent {
		t.Fatalf("ParseBlurStyle = %v, %v", b, err)
	}
	if _, err := ParseBlurStyle("foggy"); err == nil {
		t.Fatalf("expected error")
	}
	if ti, err := ParseTapInteraction("passthrough"); err != nil || ti != TapPassthrough {
		t.Fatalf("ParseTapInteraction = %v, %v", ti, err)
	}
}

func TestPropertyTableCoversEveryName(t *testing.T) {
	seen := map[string]bool{}
	for _, p := range Properties() {
		if seen[p.Name()] {
			t.Fatalf("duplicate property %q", p.Name())
		}
		seen[p.Name()] = true
	}
	if len(seen) < 30 {
		t.Fatalf("expected at least 30 properties, got %d", len(seen))
	}
}
