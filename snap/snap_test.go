// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package snap

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framegrace/texelmodal/geom"
	"github.com/framegrace/texelmodal/keyframe"
	"github.com/framegrace/texelmodal/layout"
)

var tall = layout.Context{Viewport: geom.Rect{Width: 400, Height: 600}}

func sheet(height float64) layout.Fixed {
	return layout.Fixed{Rect: geom.Rect{Y: 600 - height, Width: 400, Height: height}}
}

func threePoints() []SnapPointConfig {
	return []SnapPointConfig{
		{Key: UndershootKey, Layout: sheet(0), Keyframe: &keyframe.Config{Opacity: keyframe.Ptr(0.0)}},
		{Key: NamedKey("half"), Layout: sheet(300), Keyframe: &keyframe.Config{
			Opacity:         keyframe.Ptr(0.5),
			CornerRadius:    keyframe.Ptr(10.0),
			BackgroundColor: keyframe.Ptr(geom.Opaque(0.2, 0.4, 0.6)),
		}},
		{Key: NamedKey("full"), Layout: sheet(600), Keyframe: &keyframe.Config{
			Opacity:       keyframe.Ptr(1.0),
			CornerRadius:  keyframe.Ptr(20.0),
			MaskedCorners: keyframe.Ptr(keyframe.CornersTop),
		}},
	}
}

func TestEndToEndThreePoints(t *testing.T) {
	tbl, err := NewCompiler(geom.BottomToTop).Compile(threePoints(), tall)
	require.NoError(t, err)
	require.Equal(t, 3, tbl.Len())
	assert.Equal(t, []float64{0, 0.5, 1}, tbl.Percents())
	assert.Empty(t, tbl.Diagnostics)

	s, err := tbl.ValuesAt(0.5)
	require.NoError(t, err)
	assert.Equal(t, tbl.Points[1].Sample(), s)

	s, err = tbl.ValuesAt(0.75)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, s.Opacity, 1e-9)
	assert.InDelta(t, 15, s.CornerRadius, 1e-9)
	assert.InDelta(t, 450, s.Rect.Height, 1e-9)
	assert.Equal(t, keyframe.CornersTop, s.MaskedCorners)
}

func TestPercentMonotonicForEveryDirection(t *testing.T) {
	ctx := layout.Context{Viewport: geom.Rect{Width: 800, Height: 600}}
	for _, dir := range []geom.Direction{geom.BottomToTop, geom.TopToBottom, geom.LeftToRight, geom.RightToLeft} {
		var user []SnapPointConfig
		for _, f := range []float64{0.25, 0.5, 1} {
			spec := layout.Spec{Width: layout.Dimension{Kind: layout.Fill}, Height: layout.Dimension{Kind: layout.Fill}}
			switch dir {
			case geom.BottomToTop:
				spec.VAlign, spec.Height = layout.AlignEnd, layout.Fraction(f)
			case geom.TopToBottom:
				spec.VAlign, spec.Height = layout.AlignStart, layout.Fraction(f)
			case geom.LeftToRight:
				spec.HAlign, spec.Width = layout.AlignStart, layout.Fraction(f)
			case geom.RightToLeft:
				spec.HAlign, spec.Width = layout.AlignEnd, layout.Fraction(f)
			}
			user = append(user, SnapPointConfig{Layout: spec})
		}
		points := BuildSnapPoints(user, BuildOptions{Direction: dir, Overshoot: true})
		c := NewCompiler(dir)
		c.Overshoot = true
		tbl, err := c.Compile(points, ctx)
		require.NoError(t, err, dir.String())
		require.Len(t, tbl.Points, 5)

		assert.InDelta(t, 0, tbl.Points[0].Percent, 1e-9, dir.String())
		assert.InDelta(t, 1, tbl.Points[3].Percent, 1e-9, dir.String())
		for i := 1; i < tbl.Len(); i++ {
			assert.GreaterOrEqual(t, tbl.Points[i].Percent, tbl.Points[i-1].Percent, "%s index %d", dir, i)
		}
		assert.Empty(t, tbl.Diagnostics, dir.String())
	}
}

func TestEmptyKeyframeInheritsPrevious(t *testing.T) {
	points := threePoints()
	points = append(points, SnapPointConfig{Layout: layout.Fixed{Rect: geom.Rect{Y: -10, Width: 400, Height: 610}}})
	tbl, err := NewCompiler(geom.BottomToTop).Compile(points, tall)
	require.NoError(t, err)
	assert.Equal(t, tbl.Points[2].Values, tbl.Points[3].Values)
	assert.Equal(t, IndexKey(3), tbl.Points[3].Key)
}

func TestFirstPointInheritsForward(t *testing.T) {
	points := []SnapPointConfig{
		{Layout: sheet(0)},
		{Layout: sheet(300), Keyframe: &keyframe.Config{Opacity: keyframe.Ptr(0.3), CornerRadius: keyframe.Ptr(6.0)}},
	}
	tbl, err := NewCompiler(geom.BottomToTop).Compile(points, tall)
	require.NoError(t, err)
	assert.Equal(t, 0.3, tbl.Points[0].Opacity)
	assert.Equal(t, 6.0, tbl.Points[0].CornerRadius)
	assert.True(t, tbl.Points[0].AllowSnapping)
}

func TestCompileErrors(t *testing.T) {
	c := NewCompiler(geom.BottomToTop)

	_, err := c.Compile([]SnapPointConfig{{Layout: sheet(0)}}, tall)
	require.ErrorIs(t, err, ErrTooFewSnapPoints)

	_, err = c.Compile([]SnapPointConfig{{Mode: ModeInBetween}, {Layout: sheet(0)}}, tall)
	require.ErrorIs(t, err, ErrMisplacedInBetween)

	_, err = c.Compile([]SnapPointConfig{{Layout: sheet(0)}, {Layout: "nonsense"}}, tall)
	require.ErrorIs(t, err, layout.ErrUnknownExpr)
	assert.Contains(t, err.Error(), "snap point 1")
}

func TestPercentCollisionIsDiagnostic(t *testing.T) {
	var buf bytes.Buffer
	c := NewCompiler(geom.BottomToTop)
	c.Logger = zerolog.New(&buf)

	tbl, err := c.Compile([]SnapPointConfig{{Layout: sheet(0)}, {Layout: sheet(300)}, {Layout: sheet(300)}}, tall)
	require.NoError(t, err)
	require.Len(t, tbl.Diagnostics, 1)
	assert.Equal(t, Diagnostic{Kind: PercentCollision, Index: 2, Other: 1, Percent: 0.5}, tbl.Diagnostics[0])
	assert.Contains(t, buf.String(), "Compiler: percent collision")

	// Last writer wins at the colliding percent.
	tbl.Points[2].Opacity = 0.25
	s, err := tbl.ValuesAt(0.5)
	require.NoError(t, err)
	assert.Equal(t, 0.25, s.Opacity)
}

func TestInBetweenInterpolatesBetweenNeighbours(t *testing.T) {
	points := []SnapPointConfig{
		{Key: UndershootKey, Layout: sheet(0)},
		{Layout: sheet(200), Keyframe: &keyframe.Config{
			Opacity:           keyframe.Ptr(0.2),
			CornerRadius:      keyframe.Ptr(0.0),
			BackdropBlurStyle: keyframe.Ptr(keyframe.BlurDark),
		}},
		{Mode: ModeInBetween, Keyframe: &keyframe.Config{CornerRadius: keyframe.Ptr(30.0)}},
		{Mode: ModeInBetween, Keyframe: &keyframe.Config{AllowSnapping: keyframe.Ptr(true)}},
		{Layout: sheet(500), Keyframe: &keyframe.Config{
			Opacity:           keyframe.Ptr(0.8),
			CornerRadius:      keyframe.Ptr(12.0),
			BackdropBlurStyle: keyframe.Ptr(keyframe.BlurLight),
		}},
	}
	tbl, err := NewCompiler(geom.BottomToTop).Compile(points, tall)
	require.NoError(t, err)
	require.Len(t, tbl.Points, 5)

	first := tbl.Points[2]
	assert.Equal(t, 2, first.SnapPointIndex)
	assert.InDelta(t, 1.0/3+(5.0/6-1.0/3)/3, first.Percent, 1e-9)
	assert.InDelta(t, 0.4, first.Opacity, 1e-9)
	assert.Equal(t, 30.0, first.CornerRadius)
	assert.Equal(t, keyframe.BlurDark, first.BackdropBlurStyle)
	assert.InDelta(t, 300, first.ComputedRect.Height, 1e-9)
	assert.InDelta(t, 300, first.ComputedRect.Y, 1e-9)
	assert.False(t, first.AllowSnapping)

	second := tbl.Points[3]
	assert.InDelta(t, 0.6, second.Opacity, 1e-9)
	assert.InDelta(t, 8, second.CornerRadius, 1e-9)
	assert.True(t, second.AllowSnapping)

	for i := 1; i < tbl.Len(); i++ {
		assert.Greater(t, tbl.Points[i].Percent, tbl.Points[i-1].Percent)
	}
	assert.Equal(t, 0.8, tbl.Points[4].Opacity)
}

func TestTrailingInBetweenExtrapolatesPercent(t *testing.T) {
	points := []SnapPointConfig{
		{Layout: sheet(0)},
		{Layout: sheet(300), Keyframe: &keyframe.Config{Opacity: keyframe.Ptr(0.7)}},
		{Mode: ModeInBetween},
	}
	tbl, err := NewCompiler(geom.BottomToTop).Compile(points, tall)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, tbl.Points[2].Percent, 1e-9)
	assert.Equal(t, tbl.Points[1].Values, tbl.Points[2].Values)
	assert.Equal(t, tbl.Points[1].ComputedRect, tbl.Points[2].ComputedRect)
	assert.False(t, tbl.Points[2].AllowSnapping)
}

func TestPercentByIndex(t *testing.T) {
	c := NewCompiler(geom.BottomToTop)
	c.Strategy = PercentByIndex
	base := threePoints()
	points := []SnapPointConfig{base[0], base[1], {Mode: ModeInBetween}, base[2]}
	tbl, err := c.Compile(points, tall)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.25, 0.5, 0.75, 1}, tbl.Percents())
}

func TestProgressFor(t *testing.T) {
	tbl, err := NewCompiler(geom.BottomToTop).Compile(threePoints(), tall)
	require.NoError(t, err)

	assert.InDelta(t, 0.5, tbl.ProgressFor(300), 1e-9)
	assert.InDelta(t, 0.25, tbl.ProgressForPoint(geom.Point{X: 999, Y: 450}), 1e-9)
	assert.Equal(t, 1.0, tbl.ProgressFor(-60), "no overshoot clamps at the last point")
	assert.InDelta(t, 0.1, tbl.ProgressFor(tbl.CoordinateFor(0.1)), 1e-9)

	tbl.Overshoot = true
	tbl.Points[2].Key = OvershootKey
	assert.InDelta(t, 1.1, tbl.ProgressFor(-60), 1e-9)
}

func TestClosestAndAdjustIndex(t *testing.T) {
	points := BuildSnapPoints([]SnapPointConfig{
		{Layout: sheet(300)},
		{Layout: sheet(600)},
	}, BuildOptions{Direction: geom.BottomToTop, Overshoot: true, OvershootDistance: 30})
	points[0].Keyframe = &keyframe.Config{AllowSnapping: keyframe.Ptr(false)}
	c := NewCompiler(geom.BottomToTop)
	c.Overshoot = true
	tbl, err := c.Compile(points, tall)
	require.NoError(t, err)
	require.Equal(t, 3, tbl.OvershootIndex())

	assert.Equal(t, 1, tbl.AdjustIndex(0))
	assert.Equal(t, 2, tbl.AdjustIndex(3))
	assert.Equal(t, 2, tbl.AdjustIndex(2))

	m, ok := tbl.Closest(560)
	require.True(t, ok)
	assert.Equal(t, 1, m.Index, "undershoot disallowed")
	assert.InDelta(t, 260, m.Distance, 1e-9)

	m, ok = tbl.Closest(-100)
	require.True(t, ok)
	assert.Equal(t, 2, m.Index)

	m, ok = tbl.ClosestRect(geom.Rect{Y: -25, Width: 400, Height: 625})
	require.True(t, ok)
	assert.Equal(t, 2, m.Index, "overshoot adjusted down")

	tbl.Points[0].AllowSnapping = true
	assert.Equal(t, 0, tbl.AdjustIndex(0))
	m, _ = tbl.Closest(590)
	assert.Equal(t, 0, m.Index)
}

func TestClosestWithoutSnappablePoints(t *testing.T) {
	tbl := &Table{Points: []InterpolationPoint{{}, {}}}
	_, ok := tbl.Closest(0)
	assert.False(t, ok)
}

func TestBallisticProjection(t *testing.T) {
	got := Project(geom.Point{X: 5, Y: 100}, geom.Point{Y: 600}, DefaultProjection())
	assert.InDelta(t, 249.7, got.Y, 1e-6)
	assert.Equal(t, 5.0, got.X)

	got = Project(geom.Point{Y: 100}, geom.Point{Y: -100}, DefaultProjection())
	assert.InDelta(t, 100-24.95, got.Y, 1e-6)

	assert.Equal(t, 0.0, Projection{DecelerationRate: 1}.Displacement(500))
}

func TestBuildSnapPoints(t *testing.T) {
	user := []SnapPointConfig{{Layout: sheet(300)}, {Key: NamedKey("full"), Layout: sheet(600)}}
	got := BuildSnapPoints(user, BuildOptions{Direction: geom.BottomToTop, Overshoot: true})
	require.Len(t, got, 4)
	assert.Equal(t, UndershootKey, got[0].Key)
	assert.Equal(t, IndexKey(1), got[1].Key)
	assert.Equal(t, NamedKey("full"), got[2].Key)
	assert.Equal(t, OvershootKey, got[3].Key)
	assert.False(t, *got[3].Keyframe.AllowSnapping)
	assert.Equal(t, layout.Overshoot{Base: sheet(600), Direction: geom.BottomToTop, Distance: DefaultOvershootDistance}, got[3].Layout)

	again := BuildSnapPoints(got, BuildOptions{Direction: geom.BottomToTop, Overshoot: true})
	assert.Len(t, again, 4)

	tbl, err := NewCompiler(geom.BottomToTop).Compile(got[:3], tall)
	require.NoError(t, err)
	assert.Equal(t, geom.Rect{Y: 600, Width: 400, Height: 300}, tbl.Points[0].ComputedRect)
	assert.Nil(t, BuildSnapPoints(nil, BuildOptions{}))
}

func TestIndexOf(t *testing.T) {
	tbl, err := NewCompiler(geom.BottomToTop).Compile(threePoints(), tall)
	require.NoError(t, err)

	i, err := tbl.IndexOf(NamedKey("full"))
	require.NoError(t, err)
	assert.Equal(t, 2, i)

	i, err = tbl.IndexOf(IndexKey(1))
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	_, err = tbl.IndexOf(NamedKey("peek"))
	require.ErrorIs(t, err, ErrSnapPointNotFound)
}

func TestCompileOverride(t *testing.T) {
	c := NewCompiler(geom.BottomToTop)
	c.Overshoot = true
	custom := SnapPointConfig{Layout: sheet(450), Keyframe: &keyframe.Config{Opacity: keyframe.Ptr(0.9)}}

	active, err := c.CompileOverride(threePoints(), 1, custom, tall)
	require.NoError(t, err)
	assert.True(t, active.IsOverride())
	assert.Equal(t, 1, active.OverrideIndex)
	assert.Equal(t, 2, active.CustomIndex())
	require.Len(t, active.Points(), 3)
	assert.Equal(t, NamedKey("custom"), active.Points()[2].Key)
	assert.InDelta(t, 0.75, active.Points()[2].Percent, 1e-9)
	assert.Equal(t, 0.9, active.Points()[2].Opacity)
	assert.Equal(t, 10.0, active.Points()[2].CornerRadius, "custom point inherits from the prefix")
	assert.False(t, active.Table.Overshoot)

	assert.True(t, active.ShouldCleanUp(1))
	assert.True(t, active.ShouldCleanUp(0))
	assert.False(t, active.ShouldCleanUp(2))
	assert.False(t, ConfigActive(active.Table).ShouldCleanUp(0))

	m, ok := active.Closest(160, true)
	require.True(t, ok)
	assert.Equal(t, 2, m.Index, "custom point is a candidate")
	m, ok = active.Closest(160, false)
	require.True(t, ok)
	assert.Equal(t, 1, m.Index, "custom point skipped")
	assert.InDelta(t, 140, m.Distance, 1e-9)
	_, ok = ActiveTable{}.Closest(160, true)
	assert.False(t, ok)

	_, err = c.CompileOverride(threePoints(), 5, custom, tall)
	require.ErrorIs(t, err, ErrSnapPointNotFound)
}

func TestKeyRoundTrip(t *testing.T) {
	for _, k := range []Key{{}, UndershootKey, OvershootKey, IndexKey(4), NamedKey("peek")} {
		assert.Equal(t, k, ParseKey(k.String()))
	}
}
