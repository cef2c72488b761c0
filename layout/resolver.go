// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: layout/resolver.go
// Summary: Reference Resolver for Spec, Fixed, Offscreen and Overshoot.

package layout

import (
	"fmt"

	"github.com/framegrace/texelmodal/geom"
)

// Engine is the reference Resolver. The zero value is ready to use.
type Engine struct{}

var _ Resolver = Engine{}

// ResolveRect computes the sheet rect for expr.
func (e Engine) ResolveRect(expr Expr, ctx Context) (geom.Rect, error) {
	switch x := expr.(type) {
	case Spec:
		return resolveSpec(x, ctx), nil
	case *Spec:
		return resolveSpec(*x, ctx), nil
	case Fixed:
		return x.Rect, nil
	case Offscreen:
		r, err := e.ResolveRect(x.Base, ctx)
		if err != nil {
			return geom.Rect{}, err
		}
		return offscreen(r, ctx.Viewport, x.Direction), nil
	case Overshoot:
		r, err := e.ResolveRect(x.Base, ctx)
		if err != nil {
			return geom.Rect{}, err
		}
		return overshoot(r, x.Direction, x.Distance), nil
	}
	return geom.Rect{}, fmt.Errorf("%w: %T", ErrUnknownExpr, expr)
}

// ResolvePadding returns the content padding of expr.
func (e Engine) ResolvePadding(expr Expr, ctx Context) (geom.EdgeInsets, error) {
	switch x := expr.(type) {
	case Spec:
		return x.Padding, nil
	case *Spec:
		return x.Padding, nil
	case Fixed:
		return x.Padding, nil
	case Offscreen:
		return e.ResolvePadding(x.Base, ctx)
	case Overshoot:
		return e.ResolvePadding(x.Base, ctx)
	}
	return geom.EdgeInsets{}, fmt.Errorf("%w: %T", ErrUnknownExpr, expr)
}

func resolveSpec(s Spec, ctx Context) geom.Rect {
	box := ctx.Viewport
	if s.RespectSafeArea {
		box = box.Inset(ctx.SafeArea)
	}
	box = box.Inset(s.Margins)

	w := s.Width.Of(box.Width)
	h := s.Height.Of(box.Height)
	r := geom.Rect{
		X:      place(box.X, box.Width, w, s.HAlign),
		Y:      place(box.Y, box.Height, h, s.VAlign),
		Width:  w,
		Height: h,
	}

	if s.AvoidKeyboard && ctx.Keyboard != nil && s.VAlign == AlignEnd {
		kb := *ctx.Keyboard
		if top := kb.MinY() - s.Margins.Bottom; r.MaxY() > top && kb.MaxX() > r.MinX() && kb.MinX() < r.MaxX() {
			r.Y = top - r.Height
			// Shrink rather than push the sheet above the viewport.
			if r.Y < box.Y {
				r.Height -= box.Y - r.Y
				r.Y = box.Y
				if r.Height < 0 {
					r.Height = 0
				}
			}
		}
	}
	return r
}

func place(origin, extent, size float64, a Align) float64 {
	switch a {
	case AlignCenter:
		return origin + (extent-size)/2
	case AlignEnd:
		return origin + extent - size
	default:
		return origin
	}
}

// offscreen pushes r just past the viewport edge the modal enters from.
func offscreen(r, vp geom.Rect, d geom.Direction) geom.Rect {
	switch d {
	case geom.TopToBottom:
		r.Y = vp.MinY() - r.Height
	case geom.LeftToRight:
		r.X = vp.MinX() - r.Width
	case geom.RightToLeft:
		r.X = vp.MaxX()
	default:
		r.Y = vp.MaxY()
	}
	return r
}

func overshoot(r geom.Rect, d geom.Direction, dist float64) geom.Rect {
	switch d {
	case geom.TopToBottom:
		r.Height += dist
	case geom.LeftToRight:
		r.Width += dist
	case geom.RightToLeft:
		r.X -= dist
		r.Width += dist
	default:
		r.Y -= dist
		r.Height += dist
	}
	return r
}
