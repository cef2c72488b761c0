// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: snap/point.go
// Summary: Snap point declarations and their compiled interpolation points.

package snap

import (
	"fmt"

	"github.com/framegrace/texelmodal/geom"
	"github.com/framegrace/texelmodal/keyframe"
	"github.com/framegrace/texelmodal/layout"
)

// KeyKind tags a Key.
type KeyKind uint8

const (
	KeyUnspecified KeyKind = iota
	KeyIndex
	KeyString
	KeyUndershoot
	KeyOvershoot
)

// Key identifies a snap point across table rebuilds.
type Key struct {
	Kind  KeyKind
	Index int
	Name  string
}

var (
	UndershootKey = Key{Kind: KeyUndershoot}
	OvershootKey  = Key{Kind: KeyOvershoot}
)

// IndexKey returns a key addressing a snap point by position.
func IndexKey(i int) Key { return Key{Kind: KeyIndex, Index: i} }

// NamedKey returns a string key.
func NamedKey(name string) Key { return Key{Kind: KeyString, Name: name} }

func (k Key) String() string {
	switch k.Kind {
	case KeyIndex:
		return fmt.Sprintf("#%d", k.Index)
	case KeyString:
		return k.Name
	case KeyUndershoot:
		return "undershoot"
	case KeyOvershoot:
		return "overshoot"
	default:
		return "unspecified"
	}
}

// ParseKey is the inverse of Key.String.
func ParseKey(s string) Key {
	switch s {
	case "", "unspecified":
		return Key{}
	case "undershoot":
		return UndershootKey
	case "overshoot":
		return OvershootKey
	}
	var i int
	if _, err := fmt.Sscanf(s, "#%d", &i); err == nil {
		return IndexKey(i)
	}
	return NamedKey(s)
}

// Mode says whether a snap point authors its own keyframe or is derived
// from its neighbours.
type Mode uint8

const (
	ModeStandard Mode = iota
	ModeInBetween
)

func (m Mode) String() string {
	if m == ModeInBetween {
		return "inBetween"
	}
	return "standard"
}

// SnapPointConfig declares one rest position. Layout is opaque to this
// package; it is handed to the compiler's layout.Resolver.
type SnapPointConfig struct {
	Key      Key
	Layout   layout.Expr
	Keyframe *keyframe.Config
	Mode     Mode
}

// InterpolationPoint is a fully resolved snap point placed at Percent on
// its table's progress axis.
type InterpolationPoint struct {
	keyframe.Values

	SnapPointIndex int
	Key            Key
	Percent        float64

	ComputedRect         geom.Rect
	ComputedPadding      geom.EdgeInsets
	ComputedScrollInsets geom.EdgeInsets

	AllowSnapping bool
}

// Sample is the property set at an arbitrary progress value.
type Sample struct {
	keyframe.Values

	Progress             float64
	Rect                 geom.Rect
	Padding              geom.EdgeInsets
	ComputedScrollInsets geom.EdgeInsets
}

// Sample returns the point as if sampled exactly at its percent.
func (p InterpolationPoint) Sample() Sample {
	return Sample{
		Values:               p.Values,
		Progress:             p.Percent,
		Rect:                 p.ComputedRect,
		Padding:              p.ComputedPadding,
		ComputedScrollInsets: p.ComputedScrollInsets,
	}
}
