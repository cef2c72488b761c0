// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: System + profile configuration store for texelmodal.
// Usage: System() holds the engine-wide defaults in texelmodal.json;
// Profile(name) holds per-modal overrides under profiles/<name>.json.

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

const systemConfigName = "texelmodal.json"

// Config stores configuration sections as JSON-compatible data.
type Config map[string]interface{}

// Section stores key/value pairs for a configuration section.
type Section map[string]interface{}

var (
	mu       sync.RWMutex
	once     sync.Once
	system   Config
	profiles map[string]Config
	loadErr  error
	logger   = zerolog.Nop()
)

// SetLogger routes store diagnostics to l.
func SetLogger(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// Err returns the most recent system config load error.
func Err() error {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return loadErr
}

// System returns the system configuration (texelmodal.json).
func System() Config {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return system
}

// Profile returns the overrides for a named modal. Missing profiles are
// empty, not an error, and are not written to disk until SaveProfile.
func Profile(name string) Config {
	if name == "" {
		return nil
	}
	once.Do(initStore)

	mu.RLock()
	cfg := profiles[name]
	mu.RUnlock()
	if cfg != nil {
		return cfg
	}

	mu.Lock()
	defer mu.Unlock()
	if cfg, ok := profiles[name]; ok {
		return cfg
	}
	loaded, err := loadProfileLocked(name)
	if err != nil {
		logger.Warn().Err(err).Str("profile", name).Msg("Config: failed to load profile")
		loaded = make(Config)
	}
	profiles[name] = loaded
	return loaded
}

// Reload refreshes the system config and all cached profiles.
func Reload() error {
	once.Do(initStore)

	mu.Lock()
	defer mu.Unlock()

	loadErr = loadSystemLocked()
	for name := range profiles {
		loaded, err := loadProfileLocked(name)
		if err != nil {
			logger.Warn().Err(err).Str("profile", name).Msg("Config: failed to reload profile")
			continue
		}
		profiles[name] = loaded
	}
	return loadErr
}

// SaveSystem persists the current system config to disk.
func SaveSystem() error {
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	path, err := systemConfigPath()
	if err != nil {
		return err
	}
	return writeConfig(path, system)
}

// SaveProfile persists a named profile to disk.
func SaveProfile(name string) error {
	if name == "" {
		return nil
	}
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	cfg := profiles[name]
	if cfg == nil {
		cfg = make(Config)
		profiles[name] = cfg
	}
	path, err := profileConfigPath(name)
	if err != nil {
		return err
	}
	return writeConfig(path, cfg)
}

// SetSystem replaces the in-memory system config. Missing defaults are
// filled in again so getters keep working.
func SetSystem(cfg Config) {
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	system = Clone(cfg)
	if system == nil {
		system = make(Config)
	}
	applySystemDefaults(system)
}

// SetProfile replaces the in-memory profile for name.
func SetProfile(name string, cfg Config) {
	if name == "" {
		return
	}
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	if cfg == nil {
		cfg = make(Config)
	}
	profiles[name] = Clone(cfg)
}

// Clone returns a copy of the config and its sections. Section values are
// shared.
func Clone(cfg Config) Config {
	if cfg == nil {
		return nil
	}
	clone := make(Config, len(cfg))
	for name, raw := range cfg {
		switch v := raw.(type) {
		case map[string]interface{}:
			clone[name] = cloneSection(v)
		case Section:
			clone[name] = cloneSection(v)
		default:
			clone[name] = v
		}
	}
	return clone
}

// Merge returns base with every section key of over layered on top.
func Merge(base, over Config) Config {
	out := Clone(base)
	if out == nil {
		out = make(Config)
	}
	for name, raw := range over {
		src := over.Section(name)
		if src == nil {
			out[name] = raw
			continue
		}
		dst := out.Section(name)
		if dst == nil {
			out[name] = cloneSection(src)
			continue
		}
		for k, v := range src {
			dst[k] = v
		}
		out[name] = dst
	}
	return out
}

func cloneSection(in map[string]interface{}) Section {
	out := make(Section, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func initStore() {
	mu.Lock()
	defer mu.Unlock()
	system = make(Config)
	profiles = make(map[string]Config)
	loadErr = loadSystemLocked()
}

func readConfig(path string) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, true, err
	}
	return cfg, true, nil
}

func writeConfig(path string, cfg Config) error {
	if cfg == nil {
		cfg = make(Config)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
