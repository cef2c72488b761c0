// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/framegrace/texelmodal/geom"
	"github.com/framegrace/texelmodal/keyframe"
	"github.com/framegrace/texelmodal/layout"
	"github.com/framegrace/texelmodal/modal"
	"github.com/framegrace/texelmodal/snap"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state", "detents.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sheet(h float64) layout.Fixed {
	return layout.Fixed{Rect: geom.Rect{Y: 600 - h, Width: 400, Height: h}}
}

func sheetPoints() []snap.SnapPointConfig {
	return snap.BuildSnapPoints([]snap.SnapPointConfig{
		{Key: snap.NamedKey("peek"), Layout: sheet(150)},
		{Key: snap.NamedKey("half"), Layout: sheet(300)},
		{Key: snap.NamedKey("full"), Layout: sheet(600), Keyframe: &keyframe.Config{CornerRadius: keyframe.Ptr(0.0)}},
	}, snap.BuildOptions{Direction: geom.BottomToTop})
}

var viewport = layout.Context{Viewport: geom.Rect{Width: 400, Height: 600}}

func TestOpenCreatesDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "detents.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file not created")
	}

	// Reopening an existing database must not fail on the version row.
	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	s.Close()
}

func TestSaveLoadUpsert(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	if _, ok, err := s.Load(ctx, "sheet"); err != nil || ok {
		t.Fatalf("expected no detent, ok=%v err=%v", ok, err)
	}
	if err := s.Save(ctx, "sheet", snap.NamedKey("half"), 0.5); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(ctx, "sheet", snap.IndexKey(3), 1); err != nil {
		t.Fatalf("Save again: %v", err)
	}

	d, ok, err := s.Load(ctx, "sheet")
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	if d.Key != snap.IndexKey(3) || d.Percent != 1 {
		t.Fatalf("expected the second save to win, got %+v", d)
	}
	if d.UpdatedAt.IsZero() {
		t.Fatalf("expected a timestamp")
	}
}

func TestSaveRejectsMissingNames(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	if err := s.Save(ctx, "", snap.NamedKey("a"), 0); err == nil {
		t.Fatalf("expected error for empty modal name")
	}
	if err := s.Save(ctx, "sheet", snap.Key{}, 0); err == nil {
		t.Fatalf("expected error for unspecified key")
	}
}

func TestListAndForget(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	for _, name := range []string{"a", "b"} {
		if err := s.Save(ctx, name, snap.NamedKey("full"), 1); err != nil {
			t.Fatalf("Save %s: %v", name, err)
		}
	}
	all, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 detents, got %d", len(all))
	}
	if err := s.Forget(ctx, "a"); err != nil {
		t.Fatalf("Forget: %v", err)
	}
	all, _ = s.List(ctx)
	if len(all) != 1 || all[0].Modal != "b" {
		t.Fatalf("expected only b to remain, got %+v", all)
	}
}

func TestRestoreByKeyThenPercent(t *testing.T) {
	tbl, err := snap.NewCompiler(geom.BottomToTop).Compile(sheetPoints(), viewport)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	if i, ok := Restore(tbl, Detent{Key: snap.NamedKey("half"), Percent: 0.9}); !ok || i != 2 {
		t.Fatalf("expected key match at 2, got %d ok=%v", i, ok)
	}
	// Unknown key: nearest percent among snappable points (0.25, 0.5, 1).
	if i, ok := Restore(tbl, Detent{Key: snap.NamedKey("gone"), Percent: 0.8}); !ok || i != 3 {
		t.Fatalf("expected percent fallback to 3, got %d ok=%v", i, ok)
	}
	// The undershoot is never a restore target.
	if i, ok := Restore(tbl, Detent{Key: snap.UndershootKey, Percent: 0}); !ok || i != 1 {
		t.Fatalf("expected fallback to the first point, got %d ok=%v", i, ok)
	}
	if _, ok := Restore(nil, Detent{}); ok {
		t.Fatalf("expected no restore without a table")
	}
}

func TestRememberSession(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	s := modal.NewSession(snap.NewCompiler(geom.BottomToTop), sheetPoints())
	if err := s.Layout(viewport); err != nil {
		t.Fatalf("Layout: %v", err)
	}

	// Hidden: nothing to remember.
	if err := st.Remember(ctx, "sheet", s); err != nil {
		t.Fatalf("Remember hidden: %v", err)
	}
	if _, ok, _ := st.Load(ctx, "sheet"); ok {
		t.Fatalf("expected nothing stored while hidden")
	}

	p, err := s.SnapToKey(snap.NamedKey("full"))
	if err != nil {
		t.Fatalf("SnapToKey: %v", err)
	}
	// In flight: still nothing.
	if err := st.Remember(ctx, "sheet", s); err != nil {
		t.Fatalf("Remember animating: %v", err)
	}
	if _, ok, _ := st.Load(ctx, "sheet"); ok {
		t.Fatalf("expected nothing stored while animating")
	}

	s.Complete(p.ID)
	if err := st.Remember(ctx, "sheet", s); err != nil {
		t.Fatalf("Remember: %v", err)
	}
	d, ok, err := st.Load(ctx, "sheet")
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	if d.Key != snap.NamedKey("full") || d.Percent != 1 {
		t.Fatalf("unexpected detent %+v", d)
	}

	// Dismissing keeps the detent for the next presentation.
	p, _ = s.Dismiss()
	s.Complete(p.ID)
	if err := st.Remember(ctx, "sheet", s); err != nil {
		t.Fatalf("Remember dismissed: %v", err)
	}
	if d, _, _ := st.Load(ctx, "sheet"); d.Key != snap.NamedKey("full") {
		t.Fatalf("expected detent to survive dismissal, got %+v", d)
	}
}
