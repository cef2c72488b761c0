// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: snap/active.go
// Summary: Tagged handle on whichever table currently drives a modal.

package snap

// TableKind tags an ActiveTable.
type TableKind uint8

const (
	ConfigTable TableKind = iota
	OverrideTable
)

func (k TableKind) String() string {
	if k == OverrideTable {
		return "override"
	}
	return "config"
}

// ActiveTable is either the config table or a transient override table
// whose first OverrideIndex+1 points mirror the config table.
type ActiveTable struct {
	Kind          TableKind
	Table         *Table
	OverrideIndex int
}

// ConfigActive wraps the config table.
func ConfigActive(t *Table) ActiveTable {
	return ActiveTable{Kind: ConfigTable, Table: t, OverrideIndex: -1}
}

// OverrideActive wraps an override table.
func OverrideActive(t *Table, overrideIndex int) ActiveTable {
	return ActiveTable{Kind: OverrideTable, Table: t, OverrideIndex: overrideIndex}
}

// IsOverride reports whether the override table is active.
func (a ActiveTable) IsOverride() bool { return a.Kind == OverrideTable }

// Valid reports whether a table is attached.
func (a ActiveTable) Valid() bool { return a.Table != nil && a.Table.Len() > 0 }

// Points returns the active table's points.
func (a ActiveTable) Points() []InterpolationPoint {
	if a.Table == nil {
		return nil
	}
	return a.Table.Points
}

// CustomIndex is the index of the custom point of an override table, or -1.
func (a ActiveTable) CustomIndex() int {
	if !a.IsOverride() {
		return -1
	}
	return a.OverrideIndex + 1
}

// ShouldCleanUp reports whether settling at index releases the override.
func (a ActiveTable) ShouldCleanUp(index int) bool {
	return a.IsOverride() && index <= a.OverrideIndex
}

// Closest resolves coord against the active table. With allowOverride
// false the custom point of an override table is skipped, leaving the
// points it shares with the config table.
func (a ActiveTable) Closest(coord float64, allowOverride bool) (Match, bool) {
	if !a.Valid() {
		return Match{}, false
	}
	if a.IsOverride() && !allowOverride {
		return a.Table.closestUpTo(coord, a.OverrideIndex)
	}
	return a.Table.Closest(coord)
}
