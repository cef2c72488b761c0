// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: layout/expr.go
// Summary: Layout expressions understood by the reference resolver.

package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/framegrace/texelmodal/geom"
)

// Align positions a sheet inside its container on one axis.
type Align uint8

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
)

func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignEnd:
		return "end"
	default:
		return "start"
	}
}

// ParseAlign accepts start/center/end as well as the edge names
// top/left/bottom/right.
func ParseAlign(s string) (Align, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "start", "top", "left":
		return AlignStart, nil
	case "center", "middle":
		return AlignCenter, nil
	case "end", "bottom", "right":
		return AlignEnd, nil
	}
	return AlignStart, fmt.Errorf("unknown alignment %q", s)
}

// DimensionKind tells how a Dimension's value is measured.
type DimensionKind uint8

const (
	// Fill takes the whole container extent.
	Fill DimensionKind = iota
	// Percent is a fraction (0..1) of the container extent.
	Percent
	// Absolute is in viewport units.
	Absolute
)

// Dimension is one side length of a layout Spec.
type Dimension struct {
	Kind  DimensionKind
	Value float64
}

// Fraction returns a percentage dimension; 0.5 is half the container.
func Fraction(v float64) Dimension { return Dimension{Kind: Percent, Value: v} }

// Points returns an absolute dimension.
func Points(v float64) Dimension { return Dimension{Kind: Absolute, Value: v} }

// Of resolves d against a container extent.
func (d Dimension) Of(extent float64) float64 {
	switch d.Kind {
	case Percent:
		return extent * d.Value
	case Absolute:
		return d.Value
	default:
		return extent
	}
}

func (d Dimension) String() string {
	switch d.Kind {
	case Percent:
		return strconv.FormatFloat(d.Value*100, 'f', -1, 64) + "%"
	case Absolute:
		return strconv.FormatFloat(d.Value, 'f', -1, 64)
	default:
		return "fill"
	}
}

// ParseDimension reads "fill", "50%" or "120".
func ParseDimension(s string) (Dimension, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "fill") {
		return Dimension{Kind: Fill}, nil
	}
	if pct, ok := strings.CutSuffix(s, "%"); ok {
		v, err := strconv.ParseFloat(strings.TrimSpace(pct), 64)
		if err != nil {
			return Dimension{}, fmt.Errorf("dimension %q: %w", s, err)
		}
		return Fraction(v / 100), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Dimension{}, fmt.Errorf("dimension %q: %w", s, err)
	}
	return Points(v), nil
}

// Spec is the declarative expression most snap points use: a sized box
// aligned inside the viewport minus margins and, optionally, the safe area.
type Spec struct {
	HAlign, VAlign Align
	Width, Height  Dimension
	Margins        geom.EdgeInsets
	Padding        geom.EdgeInsets

	RespectSafeArea bool
	// AvoidKeyboard lifts a bottom-aligned sheet above a visible keyboard.
	AvoidKeyboard bool
}

// Fixed is an already-resolved rect; the snap compiler uses it for
// interpolated in-between points.
type Fixed struct {
	Rect    geom.Rect
	Padding geom.EdgeInsets
}

// Offscreen moves Base fully outside the viewport, on the side the modal
// enters from.
type Offscreen struct {
	Base      Expr
	Direction geom.Direction
}

// Overshoot stretches Base's leading edge by Distance past its resolved
// position.
type Overshoot struct {
	Base      Expr
	Direction geom.Direction
	Distance  float64
}
