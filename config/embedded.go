// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/embedded.go
// Summary: Loads and caches parsed defaults from the embedded files.
// The files in defaults/ are the single source of truth.

package config

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/framegrace/texelmodal/defaults"
)

var (
	embeddedSystemOnce sync.Once
	embeddedSystem     Config
	embeddedSystemErr  error
)

// embeddedSystemDefaults returns the parsed system defaults. The result is
// cached after the first call.
func embeddedSystemDefaults() (Config, error) {
	embeddedSystemOnce.Do(func() {
		data, err := defaults.SystemConfig()
		if err != nil {
			embeddedSystemErr = err
			return
		}
		var cfg Config
		if err := json.Unmarshal(data, &cfg); err != nil {
			embeddedSystemErr = err
			return
		}
		embeddedSystem = cfg
	})
	return embeddedSystem, embeddedSystemErr
}

// defaultSystemConfig returns a clone of the embedded system defaults, or
// nil when they cannot be parsed.
func defaultSystemConfig() Config {
	cfg, err := embeddedSystemDefaults()
	if err != nil || cfg == nil {
		if err != nil {
			logger.Warn().Err(err).Msg("Config: embedded defaults unreadable")
		}
		return nil
	}
	return Clone(cfg)
}

// EmbeddedModal decodes one of the modal definitions shipped with the
// module.
func EmbeddedModal(name string) (*ModalFile, error) {
	data, err := defaults.Modal(name)
	if err != nil {
		return nil, fmt.Errorf("embedded modal %q: %w", name, err)
	}
	return ParseModal(data)
}

// EmbeddedModals lists the names EmbeddedModal accepts.
func EmbeddedModals() []string {
	return defaults.ModalNames()
}
