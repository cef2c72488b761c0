// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func inspect(t *testing.T, args ...string) *report {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	var out, errOut bytes.Buffer
	if err := run(append([]string{"-defaults", "-color", "never"}, args...), &out, &errOut); err != nil {
		t.Fatalf("run: %v (stderr: %s)", err, errOut.String())
	}
	var rep report
	if err := json.Unmarshal(out.Bytes(), &rep); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	return &rep
}

func TestInspectEmbeddedSheet(t *testing.T) {
	rep := inspect(t, "-modal", "sheet", "-w", "80", "-h", "24", "-at", "0.3")

	if rep.Modal != "sheet" || rep.Direction != "bottomToTop" || !rep.Overshoot {
		t.Fatalf("unexpected header %+v", rep)
	}
	if len(rep.Points) != 5 {
		t.Fatalf("expected 5 points, got %d", len(rep.Points))
	}
	keys := []string{"undershoot", "peek", "#2", "full", "overshoot"}
	for i, p := range rep.Points {
		if p.Key != keys[i] {
			t.Fatalf("point %d: expected key %q, got %q", i, keys[i], p.Key)
		}
	}
	if rep.Points[2].AllowSnapping {
		t.Fatalf("in-between point must not allow snapping")
	}

	if rep.Sample == nil {
		t.Fatalf("expected a sample")
	}
	peek := rep.Points[1]
	if math.Abs(rep.Sample.Rect.Y-peek.Rect.Y) > 1e-9 || math.Abs(rep.Sample.Rect.Height-7.2) > 1e-9 {
		t.Fatalf("sample at the peek percent should match peek, got %+v", rep.Sample.Rect)
	}
	if rep.Sample.BackgroundColor != "#1e1e2eff" {
		t.Fatalf("unexpected background %q", rep.Sample.BackgroundColor)
	}
}

func TestInspectProjection(t *testing.T) {
	rep := inspect(t, "-project", "10,-100")
	if rep.Projection == nil {
		t.Fatalf("expected a projection")
	}
	if math.Abs(rep.Projection.Rest-(10-24.95)) > 1e-9 {
		t.Fatalf("unexpected rest %v", rep.Projection.Rest)
	}
	if rep.Projection.TargetKey != "full" {
		t.Fatalf("expected an upward fling to reach full, got %+v", rep.Projection)
	}

	rep = inspect(t, "-project", "10,100")
	if rep.Projection.Target != 0 {
		t.Fatalf("expected a downward fling to dismiss, got %+v", rep.Projection)
	}
}

func TestInspectFileWithSafeArea(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bar.yaml")
	src := `name: bar
direction: topToBottom
overshoot: false
points:
  - key: open
    layout: {height: 4, valign: start, respect_safe_area: true}
`
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	rep := inspect(t, "-f", path, "-safe-area", "2,0,0,0")
	if len(rep.Points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(rep.Points))
	}
	open := rep.Points[1]
	if open.Rect.Y != 2 || open.Rect.Height != 4 {
		t.Fatalf("expected rect below the safe area, got %+v", open.Rect)
	}
	if math.Abs(open.Percent-0.25) > 1e-9 {
		t.Fatalf("expected percent 0.25, got %v", open.Percent)
	}
}

func TestInspectErrors(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cases := [][]string{
		{"-modal", "nope"},
		{"-w", "0"},
		{"-at", "half"},
		{"-project", "10"},
		{"-safe-area", "1,2"},
		{"-f", filepath.Join(t.TempDir(), "missing.yaml")},
	}
	for _, args := range cases {
		var out, errOut bytes.Buffer
		if err := run(append([]string{"-defaults", "-color", "never"}, args...), &out, &errOut); err == nil {
			t.Fatalf("expected error for %s", strings.Join(args, " "))
		}
	}
}

func TestHighlightAddsEscapes(t *testing.T) {
	var buf bytes.Buffer
	if err := highlight(&buf, `{"a": 1}`); err != nil {
		t.Fatalf("highlight: %v", err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("expected ANSI escapes, got %q", buf.String())
	}
	if useColor(&buf, "auto") {
		t.Fatalf("a buffer is never a terminal")
	}
}
