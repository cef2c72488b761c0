// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelmodal-inspect/report.go
// Summary: JSON report of a compiled table, optionally highlighted.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"golang.org/x/term"

	"github.com/framegrace/texelmodal/config"
	"github.com/framegrace/texelmodal/geom"
	"github.com/framegrace/texelmodal/snap"
)

const highlightStyle = "catppuccin-mocha"

type report struct {
	Modal       string            `json:"modal"`
	Direction   string            `json:"direction"`
	Strategy    string            `json:"strategy"`
	Overshoot   bool              `json:"overshoot"`
	Viewport    geom.Rect         `json:"viewport"`
	Points      []pointReport     `json:"points"`
	Diagnostics []string          `json:"diagnostics,omitempty"`
	Sample      *valuesReport     `json:"sample,omitempty"`
	Projection  *projectionReport `json:"projection,omitempty"`
}

type pointReport struct {
	Index         int    `json:"index"`
	Key           string `json:"key"`
	AllowSnapping bool   `json:"allow_snapping"`
	valuesReport
}

type valuesReport struct {
	Percent         float64         `json:"percent"`
	Rect            geom.Rect       `json:"rect"`
	Padding         geom.EdgeInsets `json:"padding"`
	ScrollInsets    geom.EdgeInsets `json:"scroll_insets"`
	Opacity         float64         `json:"opacity"`
	CornerRadius    float64         `json:"corner_radius"`
	BackgroundColor string          `json:"background_color"`
	BackdropColor   string          `json:"backdrop_color"`
	BackdropOpacity float64         `json:"backdrop_opacity"`
	BlurStyle       string          `json:"blur_style"`
	Transform       *geom.Transform `json:"transform,omitempty"`
	Tap             string          `json:"background_tap"`
}

type projectionReport struct {
	Coordinate float64 `json:"coordinate"`
	Velocity   float64 `json:"velocity"`
	Rest       float64 `json:"rest"`
	Progress   float64 `json:"progress"`
	Target     int     `json:"target"`
	TargetKey  string  `json:"target_key"`
}

func newReport(m *config.Modal, tbl *snap.Table) *report {
	rep := &report{
		Modal:     m.Name,
		Direction: tbl.Direction.String(),
		Strategy:  m.Compiler.Strategy.String(),
		Overshoot: tbl.Overshoot,
		Viewport:  tbl.Viewport,
	}
	for i, p := range tbl.Points {
		rep.Points = append(rep.Points, pointReport{
			Index:         i,
			Key:           p.Key.String(),
			AllowSnapping: p.AllowSnapping,
			valuesReport:  values(p.Sample()),
		})
	}
	for _, d := range tbl.Diagnostics {
		rep.Diagnostics = append(rep.Diagnostics, d.String())
	}
	return rep
}

func values(s snap.Sample) valuesReport {
	v := valuesReport{
		Percent:         s.Progress,
		Rect:            s.Rect,
		Padding:         s.Padding,
		ScrollInsets:    s.ComputedScrollInsets,
		Opacity:         s.Opacity,
		CornerRadius:    s.CornerRadius,
		BackgroundColor: s.BackgroundColor.Hex(),
		BackdropColor:   s.BackdropColor.Hex(),
		BackdropOpacity: s.BackdropOpacity,
		BlurStyle:       s.BackgroundBlurStyle.String(),
		Tap:             s.BackgroundTapInteraction.String(),
	}
	if !s.Transform.IsIdentity() {
		t := s.Transform
		v.Transform = &t
	}
	return v
}

func (r *report) addSample(tbl *snap.Table, progress float64) error {
	s, err := tbl.ValuesAt(progress)
	if err != nil {
		return fmt.Errorf("values at %v: %w", progress, err)
	}
	v := values(s)
	r.Sample = &v
	return nil
}

func (r *report) addProjection(tbl *snap.Table, p snap.Projection, coord, velocity float64) {
	axis := tbl.Direction.Axis()
	rest := snap.Project(onAxis(axis, coord), onAxis(axis, velocity), p).On(axis)
	pr := &projectionReport{
		Coordinate: coord,
		Velocity:   velocity,
		Rest:       rest,
		Progress:   tbl.ProgressFor(rest),
		Target:     -1,
	}
	if m, ok := tbl.Closest(rest); ok {
		pr.Target = m.Index
		pr.TargetKey = m.Point.Key.String()
	}
	r.Projection = pr
}

func onAxis(axis geom.Axis, v float64) geom.Point {
	if axis == geom.AxisX {
		return geom.Point{X: v}
	}
	return geom.Point{Y: v}
}

// write prints rep as indented JSON, highlighted when mode asks for it or
// when mode is auto and w is a terminal.
func write(w io.Writer, rep *report, mode string) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if !useColor(w, mode) {
		_, err := w.Write(data)
		return err
	}
	var buf bytes.Buffer
	if err := highlight(&buf, string(data)); err != nil {
		_, err := w.Write(data)
		return err
	}
	_, err = buf.WriteTo(w)
	return err
}

func useColor(w io.Writer, mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func highlight(w io.Writer, src string) error {
	lexer := lexers.Get("json")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)
	style := styles.Get(highlightStyle)
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}
	it, err := lexer.Tokenise(nil, src)
	if err != nil {
		return err
	}
	return formatter.Format(w, style, it)
}
