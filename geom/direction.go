// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: geom/direction.go
// Summary: Presentation direction and axis selection.

package geom

import (
	"fmt"
	"strings"
)

// Axis selects the horizontal or vertical component of a point or size.
type Axis uint8

const (
	AxisY Axis = iota
	AxisX
)

func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "y"
}

// Direction is the direction a modal travels while it is being presented.
type Direction uint8

const (
	BottomToTop Direction = iota
	TopToBottom
	LeftToRight
	RightToLeft
)

var directionNames = map[Direction]string{
	BottomToTop: "bottomToTop",
	TopToBottom: "topToBottom",
	LeftToRight: "leftToRight",
	RightToLeft: "rightToLeft",
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// ParseDirection accepts the camelCase names as well as kebab/snake variants.
func ParseDirection(s string) (Direction, error) {
	norm := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(s))
	for d, name := range directionNames {
		if strings.ToLower(name) == norm {
			return d, nil
		}
	}
	return BottomToTop, fmt.Errorf("unknown direction %q", s)
}

// Axis returns the axis the modal moves along.
func (d Direction) Axis() Axis {
	switch d {
	case LeftToRight, RightToLeft:
		return AxisX
	default:
		return AxisY
	}
}

// Inverted reports whether raw axis positions must be inverted to obtain progress.
func (d Direction) Inverted() bool {
	return d == BottomToTop || d == RightToLeft
}

// LeadingEdge returns the coordinate of the edge that moves as a modal
// presented in direction d expands.
func (d Direction) LeadingEdge(r Rect) float64 {
	switch d {
	case TopToBottom:
		return r.MaxY()
	case LeftToRight:
		return r.MaxX()
	case RightToLeft:
		return r.MinX()
	default:
		return r.MinY()
	}
}
