// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/store/detents.go
// Summary: SQLite detent memory: the last settled snap point per modal.
//
// A detent is stored by key rather than by index so that it survives edits
// to the modal definition; the percent is kept as a fallback for keys that
// no longer exist.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/framegrace/texelmodal/modal"
	"github.com/framegrace/texelmodal/snap"
)

// Detent is one remembered rest position.
type Detent struct {
	Modal     string
	Key       snap.Key
	Percent   float64
	UpdatedAt time.Time
}

// Store persists detents. Safe for concurrent use.
type Store struct {
	Logger zerolog.Logger

	db *sql.DB
	mu sync.Mutex
}

const detentSchemaVersion = 1

const detentSchema = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS detents (
    modal      TEXT PRIMARY KEY,
    snap_key   TEXT NOT NULL,
    percent    REAL NOT NULL,
    updated_at INTEGER NOT NULL   -- UnixNano
);
`

// Open creates or opens the database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=busy_timeout(2000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	// One writer; SQLite serializes anyway.
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{Logger: zerolog.Nop(), db: db}, nil
}

func migrate(db *sql.DB) error {
	if _, err := db.Exec(detentSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	var version int
	err := db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = db.Exec("INSERT INTO schema_version (version) VALUES (?)", detentSchemaVersion)
		if err != nil {
			return fmt.Errorf("failed to record schema version: %w", err)
		}
	case err != nil:
		return fmt.Errorf("failed to read schema version: %w", err)
	case version > detentSchemaVersion:
		return fmt.Errorf("detent database version %d is newer than supported %d", version, detentSchemaVersion)
	}
	return nil
}

// Save records key as the rest position of modalName.
func (s *Store) Save(ctx context.Context, modalName string, key snap.Key, percent float64) error {
	if modalName == "" {
		return fmt.Errorf("modal name is required")
	}
	if key.Kind == snap.KeyUnspecified {
		return fmt.Errorf("detent for %q needs a key", modalName)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `
INSERT INTO detents (modal, snap_key, percent, updated_at) VALUES (?, ?, ?, ?)
ON CONFLICT(modal) DO UPDATE SET
    snap_key = excluded.snap_key,
    percent = excluded.percent,
    updated_at = excluded.updated_at`,
		modalName, key.String(), percent, time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("save detent %q: %w", modalName, err)
	}
	s.Logger.Debug().Str("modal", modalName).Stringer("key", key).Float64("percent", percent).Msg("Store: saved detent")
	return nil
}

// Load returns the detent of modalName; ok is false when none is stored.
func (s *Store) Load(ctx context.Context, modalName string) (Detent, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var (
		raw     string
		percent float64
		nanos   int64
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT snap_key, percent, updated_at FROM detents WHERE modal = ?", modalName,
	).Scan(&raw, &percent, &nanos)
	if errors.Is(err, sql.ErrNoRows) {
		return Detent{}, false, nil
	}
	if err != nil {
		return Detent{}, false, fmt.Errorf("load detent %q: %w", modalName, err)
	}
	return Detent{
		Modal:     modalName,
		Key:       snap.ParseKey(raw),
		Percent:   percent,
		UpdatedAt: time.Unix(0, nanos),
	}, true, nil
}

// Forget removes the detent of modalName.
func (s *Store) Forget(ctx context.Context, modalName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.ExecContext(ctx, "DELETE FROM detents WHERE modal = ?", modalName); err != nil {
		return fmt.Errorf("forget detent %q: %w", modalName, err)
	}
	return nil
}

// List returns every detent, most recently updated first.
func (s *Store) List(ctx context.Context) ([]Detent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.db.QueryContext(ctx,
		"SELECT modal, snap_key, percent, updated_at FROM detents ORDER BY updated_at DESC, modal")
	if err != nil {
		return nil, fmt.Errorf("list detents: %w", err)
	}
	defer rows.Close()

	var out []Detent
	for rows.Next() {
		var (
			d     Detent
			raw   string
			nanos int64
		)
		if err := rows.Scan(&d.Modal, &raw, &d.Percent, &nanos); err != nil {
			return nil, err
		}
		d.Key = snap.ParseKey(raw)
		d.UpdatedAt = time.Unix(0, nanos)
		out = append(out, d)
	}
	return out, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// Remember stores where session has settled: the current point when the
// modal is visible and at rest, nothing otherwise. A dismissed modal keeps
// its previous detent so that presenting it again restores it.
func (s *Store) Remember(ctx context.Context, modalName string, session *modal.Session) error {
	st := session.State()
	if !st.IsVisible() || st.IsAnimating() || session.Dragging() {
		return nil
	}
	// Custom points are transient.
	if session.Active().IsOverride() {
		return nil
	}
	pts := session.Active().Points()
	i := session.Index()
	if i <= 0 || i >= len(pts) {
		return nil
	}
	return s.Save(ctx, modalName, pts[i].Key, pts[i].Percent)
}

// Restore finds the table index d refers to: the point with d's key, or
// else the snappable point whose percent is nearest d.Percent. ok is false
// when the table has no usable point.
func Restore(t *snap.Table, d Detent) (int, bool) {
	if t == nil || t.Len() < 2 {
		return 0, false
	}
	if i, err := t.IndexOf(d.Key); err == nil && i > 0 && t.Points[i].AllowSnapping {
		return i, true
	}
	best, bestDist := -1, math.Inf(1)
	for i, p := range t.Points {
		if i == 0 || !p.AllowSnapping {
			continue
		}
		if dist := math.Abs(p.Percent - d.Percent); dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best, best > 0
}
