// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: snap/build.go
// Summary: Adds the boundary undershoot/overshoot points around user snap points.

package snap

import (
	"github.com/framegrace/texelmodal/geom"
	"github.com/framegrace/texelmodal/keyframe"
	"github.com/framegrace/texelmodal/layout"
)

// DefaultOvershootDistance is used when BuildOptions.OvershootDistance is 0.
const DefaultOvershootDistance = 24

// BuildOptions controls BuildSnapPoints.
type BuildOptions struct {
	Direction         geom.Direction
	Overshoot         bool
	OvershootDistance float64

	UndershootKeyframe *keyframe.Config
	OvershootKeyframe  *keyframe.Config
}

// BuildSnapPoints returns user wrapped in the boundary points a table needs:
// an undershoot that parks the first layout off-screen and, when enabled, an
// overshoot that stretches the last layout. Boundary points the caller
// already supplied are kept as they are.
func BuildSnapPoints(user []SnapPointConfig, opts BuildOptions) []SnapPointConfig {
	if len(user) == 0 {
		return nil
	}
	out := make([]SnapPointConfig, 0, len(user)+2)

	if user[0].Key.Kind != KeyUndershoot {
		out = append(out, SnapPointConfig{
			Key:      UndershootKey,
			Layout:   layout.Offscreen{Base: user[0].Layout, Direction: opts.Direction},
			Keyframe: opts.UndershootKeyframe.Clone(),
		})
	}
	out = append(out, user...)

	last := user[len(user)-1]
	if opts.Overshoot && last.Key.Kind != KeyOvershoot {
		dist := opts.OvershootDistance
		if dist <= 0 {
			dist = DefaultOvershootDistance
		}
		kf := keyframe.Merge(opts.OvershootKeyframe, nil)
		if kf == nil {
			kf = &keyframe.Config{}
		}
		if kf.AllowSnapping == nil {
			kf.AllowSnapping = keyframe.Ptr(false)
		}
		out = append(out, SnapPointConfig{
			Key:      OvershootKey,
			Layout:   layout.Overshoot{Base: last.Layout, Direction: opts.Direction, Distance: dist},
			Keyframe: kf,
		})
	}

	for i := range out {
		if out[i].Key.Kind == KeyUnspecified {
			out[i].Key = IndexKey(i)
		}
	}
	return out
}
