// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: defaults/embedded.go
// Summary: Embedded default configuration and modal definitions.

package defaults

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed texelmodal.json modals/*.yaml
var files embed.FS

// SystemConfig returns the embedded system config JSON.
func SystemConfig() ([]byte, error) {
	return files.ReadFile("texelmodal.json")
}

// Modal returns the embedded YAML definition of the named modal.
func Modal(name string) ([]byte, error) {
	if name == "" {
		return nil, fmt.Errorf("modal name is required")
	}
	return files.ReadFile(path.Join("modals", name+".yaml"))
}

// ModalNames lists the embedded modal definitions, sorted.
func ModalNames() []string {
	entries, err := fs.ReadDir(files, "modals")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".yaml"); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
