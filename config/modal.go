// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/modal.go
// Summary: Modal definition files (YAML or JSON) and their conversion into
// snap point declarations.
// Usage: LoadModal or ParseModal, then ModalFile.Build with the Settings the
// modal should start from.

package config

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/framegrace/texelmodal/geom"
	"github.com/framegrace/texelmodal/interp"
	"github.com/framegrace/texelmodal/keyframe"
	"github.com/framegrace/texelmodal/layout"
	"github.com/framegrace/texelmodal/snap"
)

// ModalFile is the on-disk description of one modal. Empty fields fall back
// to the Settings passed to Build.
type ModalFile struct {
	Name              string   `yaml:"name"`
	Direction         string   `yaml:"direction"`
	Strategy          string   `yaml:"strategy"`
	Overshoot         *bool    `yaml:"overshoot"`
	OvershootDistance *float64 `yaml:"overshoot_distance"`

	Clamp *ClampFile `yaml:"clamp"`

	Undershoot        *KeyframeFile `yaml:"undershoot"`
	OvershootKeyframe *KeyframeFile `yaml:"overshoot_keyframe"`

	Points []PointFile `yaml:"points"`
}

// PointFile is one user snap point.
type PointFile struct {
	Key      string        `yaml:"key"`
	Mode     string        `yaml:"mode"`
	Layout   *LayoutFile   `yaml:"layout"`
	Keyframe *KeyframeFile `yaml:"keyframe"`
}

// LayoutFile maps onto layout.Spec, or onto layout.Fixed when Rect is set.
type LayoutFile struct {
	Width           DimensionFile `yaml:"width"`
	Height          DimensionFile `yaml:"height"`
	HAlign          string        `yaml:"halign"`
	VAlign          string        `yaml:"valign"`
	Margins         *InsetsFile   `yaml:"margins"`
	Padding         *InsetsFile   `yaml:"padding"`
	RespectSafeArea bool          `yaml:"respect_safe_area"`
	AvoidKeyboard   bool          `yaml:"avoid_keyboard"`

	Rect *RectFile `yaml:"rect"`
}

// ClampFile overrides keyframe.DefaultClamp per property class. Each value
// is one of none, min, max or both.
type ClampFile struct {
	Rect         string `yaml:"rect"`
	Padding      string `yaml:"padding"`
	ScrollInsets string `yaml:"scrollInsets"`
	Transform    string `yaml:"transform"`
	Opacity      string `yaml:"opacity"`
	Radius       string `yaml:"radius"`
	Color        string `yaml:"color"`
	Size         string `yaml:"size"`
}

// KeyframeFile mirrors keyframe.Config with file-friendly types.
type KeyframeFile struct {
	ScrollInsets *InsetsFile `yaml:"scrollInsets"`

	Rotation    *float64 `yaml:"rotation"`
	ScaleX      *float64 `yaml:"scaleX"`
	ScaleY      *float64 `yaml:"scaleY"`
	ScaleZ      *float64 `yaml:"scaleZ"`
	TranslateX  *float64 `yaml:"translateX"`
	TranslateY  *float64 `yaml:"translateY"`
	TranslateZ  *float64 `yaml:"translateZ"`
	SkewX       *float64 `yaml:"skewX"`
	SkewY       *float64 `yaml:"skewY"`
	Perspective *float64 `yaml:"perspective"`

	BorderWidth *float64 `yaml:"borderWidth"`
	BorderColor *string  `yaml:"borderColor"`

	ShadowColor   *string   `yaml:"shadowColor"`
	ShadowOffset  *SizeFile `yaml:"shadowOffset"`
	ShadowOpacity *float64  `yaml:"shadowOpacity"`
	ShadowRadius  *float64  `yaml:"shadowRadius"`

	CornerRadius  *float64     `yaml:"cornerRadius"`
	MaskedCorners *CornersFile `yaml:"maskedCorners"`

	Opacity *float64 `yaml:"opacity"`

	BackgroundColor         *string  `yaml:"backgroundColor"`
	BackgroundOpacity       *float64 `yaml:"backgroundOpacity"`
	BackgroundBlurStyle     *string  `yaml:"backgroundBlurStyle"`
	BackgroundBlurOpacity   *float64 `yaml:"backgroundBlurOpacity"`
	BackgroundBlurIntensity *float64 `yaml:"backgroundBlurIntensity"`

	DragHandleSize         *SizeFile `yaml:"dragHandleSize"`
	DragHandleOffset       *float64  `yaml:"dragHandleOffset"`
	DragHandleColor        *string   `yaml:"dragHandleColor"`
	DragHandleOpacity      *float64  `yaml:"dragHandleOpacity"`
	DragHandleCornerRadius *float64  `yaml:"dragHandleCornerRadius"`

	BackdropColor         *string  `yaml:"backdropColor"`
	BackdropOpacity       *float64 `yaml:"backdropOpacity"`
	BackdropBlurStyle     *string  `yaml:"backdropBlurStyle"`
	BackdropBlurIntensity *float64 `yaml:"backdropBlurIntensity"`

	AllowSnapping            *bool   `yaml:"allowSnapping"`
	BackgroundTapInteraction *string `yaml:"backgroundTapInteraction"`
}

// SizeFile is a width/height pair.
type SizeFile struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// RectFile is an absolute rect.
type RectFile struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// InsetsFile accepts either a mapping of edges or a single number applied
// to all four.
type InsetsFile geom.EdgeInsets

func (in *InsetsFile) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		v, err := strconv.ParseFloat(node.Value, 64)
		if err != nil {
			return fmt.Errorf("line %d: insets: %w", node.Line, err)
		}
		*in = InsetsFile{Top: v, Left: v, Bottom: v, Right: v}
		return nil
	}
	var edges struct {
		Top    float64 `yaml:"top"`
		Left   float64 `yaml:"left"`
		Bottom float64 `yaml:"bottom"`
		Right  float64 `yaml:"right"`
	}
	if err := node.Decode(&edges); err != nil {
		return err
	}
	*in = InsetsFile{Top: edges.Top, Left: edges.Left, Bottom: edges.Bottom, Right: edges.Right}
	return nil
}

// DimensionFile keeps the raw scalar so that 8, "8" and "30%" all work.
type DimensionFile string

func (d *DimensionFile) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: dimension must be a scalar", node.Line)
	}
	*d = DimensionFile(node.Value)
	return nil
}

// CornersFile accepts "all", "top", "bottom", "none", a single corner name
// or a list of them.
type CornersFile keyframe.CornerMask

var cornerNames = map[string]keyframe.CornerMask{
	"none":        0,
	"all":         keyframe.CornersAll,
	"top":         keyframe.CornersTop,
	"bottom":      keyframe.CornersBottom,
	"topleft":     keyframe.CornerTopLeft,
	"topright":    keyframe.CornerTopRight,
	"bottomleft":  keyframe.CornerBottomLeft,
	"bottomright": keyframe.CornerBottomRight,
}

func (c *CornersFile) UnmarshalYAML(node *yaml.Node) error {
	var names []string
	switch node.Kind {
	case yaml.ScalarNode:
		names = []string{node.Value}
	case yaml.SequenceNode:
		if err := node.Decode(&names); err != nil {
			return err
		}
	default:
		return fmt.Errorf("line %d: maskedCorners must be a name or a list", node.Line)
	}
	var mask keyframe.CornerMask
	for _, n := range names {
		m, ok := cornerNames[strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(n))]
		if !ok {
			return fmt.Errorf("line %d: unknown corner %q", node.Line, n)
		}
		mask |= m
	}
	*c = CornersFile(mask)
	return nil
}

// LoadModal reads a modal definition. JSON is accepted as well since it is
// a subset of YAML.
func LoadModal(path string) (*ModalFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := ParseModal(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// ParseModal decodes a modal definition. Unknown keys are rejected so that
// typos in property names do not go unnoticed.
func ParseModal(data []byte) (*ModalFile, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var m ModalFile
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decode modal: %w", err)
	}
	if len(m.Points) == 0 {
		return nil, fmt.Errorf("modal %q has no points", m.Name)
	}
	return &m, nil
}

// Modal is a definition ready to hand to a modal.Session.
type Modal struct {
	Name     string
	Settings Settings
	Compiler *snap.Compiler
	// Points includes the undershoot and, when enabled, overshoot points.
	Points []snap.SnapPointConfig
}

// Build converts the file into snap point declarations, starting from base
// and applying the file's own overrides.
func (m *ModalFile) Build(base Settings) (*Modal, error) {
	s := base
	if m.Direction != "" {
		d, err := geom.ParseDirection(m.Direction)
		if err != nil {
			return nil, err
		}
		s.Direction = d
	}
	if m.Strategy != "" {
		st, err := snap.ParseStrategy(m.Strategy)
		if err != nil {
			return nil, err
		}
		s.Strategy = st
	}
	if m.Overshoot != nil {
		s.Overshoot = *m.Overshoot
	}
	if m.OvershootDistance != nil {
		s.OvershootDistance = *m.OvershootDistance
	}

	compiler := s.Compiler()
	if m.Clamp != nil {
		cl, err := m.Clamp.apply(compiler.Clamp)
		if err != nil {
			return nil, fmt.Errorf("clamp: %w", err)
		}
		compiler.Clamp = cl
	}

	user := make([]snap.SnapPointConfig, 0, len(m.Points))
	for i, p := range m.Points {
		cfg, err := p.snapPoint()
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		user = append(user, cfg)
	}

	opts := s.BuildOptions()
	var err error
	if opts.UndershootKeyframe, err = m.Undershoot.Config(); err != nil {
		return nil, fmt.Errorf("undershoot: %w", err)
	}
	if opts.OvershootKeyframe, err = m.OvershootKeyframe.Config(); err != nil {
		return nil, fmt.Errorf("overshoot_keyframe: %w", err)
	}

	return &Modal{
		Name:     m.Name,
		Settings: s,
		Compiler: compiler,
		Points:   snap.BuildSnapPoints(user, opts),
	}, nil
}

func (p PointFile) snapPoint() (snap.SnapPointConfig, error) {
	out := snap.SnapPointConfig{Key: snap.ParseKey(p.Key)}

	switch strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(p.Mode)) {
	case "", "standard":
		out.Mode = snap.ModeStandard
	case "inbetween":
		out.Mode = snap.ModeInBetween
	default:
		return out, fmt.Errorf("unknown mode %q", p.Mode)
	}

	if p.Layout != nil {
		expr, err := p.Layout.Expr()
		if err != nil {
			return out, err
		}
		out.Layout = expr
	} else if out.Mode == snap.ModeStandard {
		return out, fmt.Errorf("standard point needs a layout")
	}

	kf, err := p.Keyframe.Config()
	if err != nil {
		return out, err
	}
	out.Keyframe = kf
	return out, nil
}

// Expr converts the file form into a layout expression.
func (l *LayoutFile) Expr() (layout.Expr, error) {
	var pad geom.EdgeInsets
	if l.Padding != nil {
		pad = geom.EdgeInsets(*l.Padding)
	}
	if l.Rect != nil {
		return layout.Fixed{
			Rect:    geom.Rect{X: l.Rect.X, Y: l.Rect.Y, Width: l.Rect.Width, Height: l.Rect.Height},
			Padding: pad,
		}, nil
	}

	spec := layout.Spec{
		Padding:         pad,
		RespectSafeArea: l.RespectSafeArea,
		AvoidKeyboard:   l.AvoidKeyboard,
	}
	if l.Margins != nil {
		spec.Margins = geom.EdgeInsets(*l.Margins)
	}
	var err error
	if spec.Width, err = layout.ParseDimension(string(l.Width)); err != nil {
		return nil, fmt.Errorf("width: %w", err)
	}
	if spec.Height, err = layout.ParseDimension(string(l.Height)); err != nil {
		return nil, fmt.Errorf("height: %w", err)
	}
	if spec.HAlign, err = parseAlign(l.HAlign, layout.AlignCenter); err != nil {
		return nil, fmt.Errorf("halign: %w", err)
	}
	if spec.VAlign, err = parseAlign(l.VAlign, layout.AlignEnd); err != nil {
		return nil, fmt.Errorf("valign: %w", err)
	}
	return spec, nil
}

func parseAlign(s string, def layout.Align) (layout.Align, error) {
	if s == "" {
		return def, nil
	}
	return layout.ParseAlign(s)
}

// Config converts the file form into a sparse keyframe. A nil receiver
// yields a nil Config.
func (k *KeyframeFile) Config() (*keyframe.Config, error) {
	if k == nil {
		return nil, nil
	}
	c := &keyframe.Config{
		Rotation:    k.Rotation,
		ScaleX:      k.ScaleX,
		ScaleY:      k.ScaleY,
		ScaleZ:      k.ScaleZ,
		TranslateX:  k.TranslateX,
		TranslateY:  k.TranslateY,
		TranslateZ:  k.TranslateZ,
		SkewX:       k.SkewX,
		SkewY:       k.SkewY,
		Perspective: k.Perspective,

		BorderWidth:   k.BorderWidth,
		ShadowOpacity: k.ShadowOpacity,
		ShadowRadius:  k.ShadowRadius,
		CornerRadius:  k.CornerRadius,
		Opacity:       k.Opacity,

		BackgroundOpacity:       k.BackgroundOpacity,
		BackgroundBlurOpacity:   k.BackgroundBlurOpacity,
		BackgroundBlurIntensity: k.BackgroundBlurIntensity,

		DragHandleOffset:       k.DragHandleOffset,
		DragHandleOpacity:      k.DragHandleOpacity,
		DragHandleCornerRadius: k.DragHandleCornerRadius,

		BackdropOpacity:       k.BackdropOpacity,
		BackdropBlurIntensity: k.BackdropBlurIntensity,

		AllowSnapping: k.AllowSnapping,
	}

	if k.ScrollInsets != nil {
		c.ScrollInsets = keyframe.Ptr(geom.EdgeInsets(*k.ScrollInsets))
	}
	if k.MaskedCorners != nil {
		c.MaskedCorners = keyframe.Ptr(keyframe.CornerMask(*k.MaskedCorners))
	}
	if k.ShadowOffset != nil {
		c.ShadowOffset = &geom.Size{Width: k.ShadowOffset.Width, Height: k.ShadowOffset.Height}
	}
	if k.DragHandleSize != nil {
		c.DragHandleSize = &geom.Size{Width: k.DragHandleSize.Width, Height: k.DragHandleSize.Height}
	}

	colors := []struct {
		name string
		src  *string
		dst  **geom.Color
	}{
		{"borderColor", k.BorderColor, &c.BorderColor},
		{"shadowColor", k.ShadowColor, &c.ShadowColor},
		{"backgroundColor", k.BackgroundColor, &c.BackgroundColor},
		{"dragHandleColor", k.DragHandleColor, &c.DragHandleColor},
		{"backdropColor", k.BackdropColor, &c.BackdropColor},
	}
	for _, col := range colors {
		if col.src == nil {
			continue
		}
		v, err := geom.ParseColor(*col.src)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", col.name, err)
		}
		*col.dst = &v
	}

	blurs := []struct {
		name string
		src  *string
		dst  **keyframe.BlurStyle
	}{
		{"backgroundBlurStyle", k.BackgroundBlurStyle, &c.BackgroundBlurStyle},
		{"backdropBlurStyle", k.BackdropBlurStyle, &c.BackdropBlurStyle},
	}
	for _, b := range blurs {
		if b.src == nil {
			continue
		}
		v, err := keyframe.ParseBlurStyle(*b.src)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", b.name, err)
		}
		*b.dst = &v
	}

	if k.BackgroundTapInteraction != nil {
		v, err := keyframe.ParseTapInteraction(*k.BackgroundTapInteraction)
		if err != nil {
			return nil, err
		}
		c.BackgroundTapInteraction = &v
	}
	return c, nil
}

func (f *ClampFile) apply(base keyframe.Clamp) (keyframe.Clamp, error) {
	out := base
	fields := []struct {
		name string
		val  string
		set  func(interp.Clamp)
	}{
		{"rect", f.Rect, func(c interp.Clamp) { out.Rect = interp.UniformRect(c) }},
		{"padding", f.Padding, func(c interp.Clamp) { out.Padding = interp.InsetsClamp{Top: c, Left: c, Bottom: c, Right: c} }},
		{"scrollInsets", f.ScrollInsets, func(c interp.Clamp) { out.ScrollInsets = interp.InsetsClamp{Top: c, Left: c, Bottom: c, Right: c} }},
		{"transform", f.Transform, func(c interp.Clamp) { out.Transform = interp.UniformTransform(c) }},
		{"opacity", f.Opacity, func(c interp.Clamp) { out.Opacity = c }},
		{"radius", f.Radius, func(c interp.Clamp) { out.Radius = c }},
		{"color", f.Color, func(c interp.Clamp) { out.Color = interp.UniformColor(c) }},
		{"size", f.Size, func(c interp.Clamp) { out.Size = interp.SizeClamp{Width: c, Height: c} }},
	}
	for _, fld := range fields {
		if fld.val == "" {
			continue
		}
		c, err := ParseClamp(fld.val)
		if err != nil {
			return base, fmt.Errorf("%s: %w", fld.name, err)
		}
		fld.set(c)
	}
	return out, nil
}

// ParseClamp accepts none, min, max and both.
func ParseClamp(s string) (interp.Clamp, error) {
	switch strings.ToLower(s) {
	case "none", "":
		return interp.NoClamp, nil
	case "min":
		return interp.ClampMin, nil
	case "max":
		return interp.ClampMax, nil
	case "both":
		return interp.ClampBoth, nil
	}
	return interp.NoClamp, fmt.Errorf("unknown clamp %q", s)
}
