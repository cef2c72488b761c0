// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: anim/easing.go
// Summary: Easing curves for timed progress transitions.

package anim

import (
	"fmt"
	"sort"
	"strings"
)

// EasingFunc maps linear time [0,1] to eased progress [0,1].
type EasingFunc func(t float64) float64

var (
	// EaseLinear - constant speed
	EaseLinear EasingFunc = func(t float64) float64 { return t }

	// EaseSmoothstep - S-curve, the default
	EaseSmoothstep EasingFunc = func(t float64) float64 {
		return t * t * (3.0 - 2.0*t)
	}

	// EaseSmootherstep - S-curve with zero second derivative at both ends
	EaseSmootherstep EasingFunc = func(t float64) float64 {
		return t * t * t * (t*(t*6.0-15.0) + 10.0)
	}

	EaseInQuad EasingFunc = func(t float64) float64 { return t * t }

	EaseOutQuad EasingFunc = func(t float64) float64 { return t * (2.0 - t) }

	EaseInOutQuad EasingFunc = func(t float64) float64 {
		if t < 0.5 {
			return 2.0 * t * t
		}
		return -1.0 + (4.0-2.0*t)*t
	}

	EaseInCubic EasingFunc = func(t float64) float64 { return t * t * t }

	// EaseOutCubic - fast start, long settle; reads well for sheets
	EaseOutCubic EasingFunc = func(t float64) float64 {
		t1 := t - 1.0
		return t1*t1*t1 + 1.0
	}

	EaseInOutCubic EasingFunc = func(t float64) float64 {
		if t < 0.5 {
			return 4.0 * t * t * t
		}
		t1 := 2.0*t - 2.0
		return 1.0 + t1*t1*t1*0.5
	}
)

var easings = map[string]EasingFunc{
	"linear":       EaseLinear,
	"smoothstep":   EaseSmoothstep,
	"smootherstep": EaseSmootherstep,
	"inQuad":       EaseInQuad,
	"outQuad":      EaseOutQuad,
	"inOutQuad":    EaseInOutQuad,
	"inCubic":      EaseInCubic,
	"outCubic":     EaseOutCubic,
	"inOutCubic":   EaseInOutCubic,
}

// EasingByName looks up an easing by its config name, case-insensitively.
func EasingByName(name string) (EasingFunc, error) {
	for k, fn := range easings {
		if strings.EqualFold(k, name) {
			return fn, nil
		}
	}
	return nil, fmt.Errorf("unknown easing %q (have %s)", name, strings.Join(EasingNames(), ", "))
}

// EasingNames returns the known easing names, sorted.
func EasingNames() []string {
	out := make([]string, 0, len(easings))
	for k := range easings {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
