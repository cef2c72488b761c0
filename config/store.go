// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/store.go
// Summary: Load and reload logic for the config store.

package config

func loadSystemLocked() error {
	path, err := systemConfigPath()
	if err != nil {
		logger.Warn().Err(err).Msg("Config: failed to resolve system config path")
		system = make(Config)
		applySystemDefaults(system)
		return err
	}

	cfg, exists, readErr := readConfig(path)
	if readErr != nil {
		logger.Warn().Err(readErr).Str("path", path).Msg("Config: failed to read system config")
		cfg = make(Config)
	}

	// A missing or empty file is seeded from the embedded defaults so the
	// user has something to edit.
	if !exists || (readErr == nil && len(cfg) == 0) {
		cfg = defaultSystemConfig()
		if cfg == nil {
			cfg = make(Config)
		}
		applySystemDefaults(cfg)
		if err := writeConfig(path, cfg); err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("Config: failed to write default system config")
			if readErr == nil {
				readErr = err
			}
		}
	} else {
		applySystemDefaults(cfg)
	}

	system = cfg
	if readErr == nil && exists {
		logger.Debug().Str("path", path).Msg("Config: loaded system config")
	}
	return readErr
}

func loadProfileLocked(name string) (Config, error) {
	path, err := profileConfigPath(name)
	if err != nil {
		return nil, err
	}
	cfg, exists, err := readConfig(path)
	if err != nil {
		return nil, err
	}
	if !exists || cfg == nil {
		cfg = make(Config)
	} else {
		logger.Debug().Str("profile", name).Str("path", path).Msg("Config: loaded profile")
	}
	applyProfileDefaults(name, cfg)
	return cfg, nil
}
