// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: layout/layout.go
// Summary: Geometry resolver contract and the resolution context.
// Usage: The snap compiler treats expressions as opaque and hands them to a
// Resolver together with a Context.

package layout

import (
	"errors"

	"github.com/framegrace/texelmodal/geom"
)

// ErrUnknownExpr is returned when a resolver does not understand an expression.
var ErrUnknownExpr = errors.New("layout: unknown expression")

// Expr is an opaque layout expression. Only the Resolver interprets it.
type Expr any

// Context bundles everything a resolver may depend on. Keyboard is nil when
// no keyboard is shown.
type Context struct {
	Viewport geom.Rect
	SafeArea geom.EdgeInsets
	Keyboard *geom.Rect
}

// Resolver turns expressions into concrete geometry. Implementations must be
// deterministic for fixed inputs.
type Resolver interface {
	ResolveRect(expr Expr, ctx Context) (geom.Rect, error)
	ResolvePadding(expr Expr, ctx Context) (geom.EdgeInsets, error)
}

// Equal reports whether two contexts would resolve identically.
func (c Context) Equal(o Context) bool {
	if c.Viewport != o.Viewport || c.SafeArea != o.SafeArea {
		return false
	}
	switch {
	case c.Keyboard == nil && o.Keyboard == nil:
		return true
	case c.Keyboard == nil || o.Keyboard == nil:
		return false
	default:
		return *c.Keyboard == *o.Keyboard
	}
}

// WithKeyboard returns a copy of c with the keyboard rect set; a nil or
// empty rect hides the keyboard.
func (c Context) WithKeyboard(r *geom.Rect) Context {
	if r == nil || r.Empty() {
		c.Keyboard = nil
		return c
	}
	k := *r
	c.Keyboard = &k
	return c
}
