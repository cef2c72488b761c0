// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package layout

import (
	"errors"
	"testing"

	"github.com/framegrace/texelmodal/geom"
)

var phone = Context{
	Viewport: geom.Rect{Width: 400, Height: 800},
	SafeArea: geom.EdgeInsets{Top: 40, Bottom: 20},
}

func TestBottomSheetSpec(t *testing.T) {
	r, err := Engine{}.ResolveRect(Spec{
		VAlign: AlignEnd,
		Width:  Dimension{Kind: Fill},
		Height: Fraction(0.5),
	}, phone)
	if err != nil {
		t.Fatalf("ResolveRect: %v", err)
	}
	want := geom.Rect{X: 0, Y: 400, Width: 400, Height: 400}
	if r != want {
		t.Fatalf("rect = %v, want %v", r, want)
	}
}

func TestSafeAreaAndMargins(t *testing.T) {
	r, _ := Engine{}.ResolveRect(Spec{
		HAlign:          AlignCenter,
		VAlign:          AlignEnd,
		Width:           Points(200),
		Height:          Points(100),
		Margins:         geom.EdgeInsets{Bottom: 10},
		RespectSafeArea: true,
	}, phone)
	want := geom.Rect{X: 100, Y: 670, Width: 200, Height: 100}
	if r != want {
		t.Fatalf("rect = %v, want %v", r, want)
	}
}

func TestAvoidKeyboard(t *testing.T) {
	kb := geom.Rect{Y: 500, Width: 400, Height: 300}
	ctx := phone.WithKeyboard(&kb)
	spec := Spec{VAlign: AlignEnd, Height: Points(200), AvoidKeyboard: true}

	r, _ := Engine{}.ResolveRect(spec, ctx)
	if r.MaxY() != 500 || r.Height != 200 {
		t.Fatalf("sheet should sit on the keyboard, got %v", r)
	}

	spec.AvoidKeyboard = false
	r, _ = Engine{}.ResolveRect(spec, ctx)
	if r.MaxY() != 800 {
		t.Fatalf("keyboard ignored when not avoiding, got %v", r)
	}

	spec.AvoidKeyboard = true
	spec.Height = Fraction(1)
	r, _ = Engine{}.ResolveRect(spec, ctx)
	if r.Y != 0 || r.Height != 500 {
		t.Fatalf("full-height sheet should shrink above keyboard, got %v", r)
	}
}

func TestOffscreenAndOvershoot(t *testing.T) {
	base := Spec{VAlign: AlignEnd, Height: Points(300)}
	r, err := Engine{}.ResolveRect(Offscreen{Base: base, Direction: geom.BottomToTop}, phone)
	if err != nil {
		t.Fatalf("Offscreen: %v", err)
	}
	if r.Y != 800 || r.Height != 300 {
		t.Fatalf("offscreen rect = %v", r)
	}

	r, _ = Engine{}.ResolveRect(Overshoot{Base: base, Direction: geom.BottomToTop, Distance: 40}, phone)
	if r.Y != 460 || r.Height != 340 || r.MaxY() != 800 {
		t.Fatalf("overshoot rect = %v", r)
	}

	side := Spec{HAlign: AlignStart, Width: Points(100)}
	r, _ = Engine{}.ResolveRect(Offscreen{Base: side, Direction: geom.LeftToRight}, phone)
	if r.X != -100 {
		t.Fatalf("left offscreen X = %v", r.X)
	}
}

func TestPaddingAndUnknownExpr(t *testing.T) {
	pad := geom.EdgeInsets{Top: 8}
	p, err := Engine{}.ResolvePadding(Offscreen{Base: Spec{Padding: pad}}, phone)
	if err != nil || p != pad {
		t.Fatalf("padding = %v, %v", p, err)
	}
	_, err = Engine{}.ResolveRect("half", phone)
	if !errors.Is(err, ErrUnknownExpr) {
		t.Fatalf("expected ErrUnknownExpr, got %v", err)
	}
}

func TestParseDimension(t *testing.T) {
	cases := map[string]Dimension{
		"":     {Kind: Fill},
		"fill": {Kind: Fill},
		"50%":  Fraction(0.5),
		"120":  Points(120),
	}
	for in, want := range cases {
		got, err := ParseDimension(in)
		if err != nil || got != want {
			t.Fatalf("ParseDimension(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseDimension("wide"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestContextEqual(t *testing.T) {
	kb := geom.Rect{Y: 1, Width: 2, Height: 3}
	a := phone.WithKeyboard(&kb)
	b := phone.WithKeyboard(&geom.Rect{Y: 1, Width: 2, Height: 3})
	if !a.Equal(b) || a.Equal(phone) || !phone.Equal(phone.WithKeyboard(nil)) {
		t.Fatalf("Context.Equal misbehaves")
	}
}
