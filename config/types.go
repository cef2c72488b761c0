// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/types.go
// Summary: Typed access helpers for config store data.
// Notes: Values may come from JSON (float64, json.Number) or from YAML and
// Go literals (int, int64), so every getter accepts all of them.

package config

import (
	"encoding/json"
	"strconv"
	"time"
)

// Section returns the named section or nil if missing. The empty name
// addresses the top level.
func (c Config) Section(name string) Section {
	if c == nil {
		return nil
	}
	if name == "" {
		return Section(c)
	}
	switch v := c[name].(type) {
	case Section:
		return v
	case map[string]interface{}:
		return Section(v)
	}
	return nil
}

// RegisterDefaults fills missing keys of a section, creating it if needed.
// Existing keys are never overwritten.
func (c Config) RegisterDefaults(name string, defaults Section) {
	if c == nil || defaults == nil {
		return
	}
	target := c.Section(name)
	if target == nil {
		target = make(Section, len(defaults))
		c[name] = target
	}
	for key, value := range defaults {
		if _, ok := target[key]; !ok {
			target[key] = value
		}
	}
}

func (c Config) lookup(section, key string) (interface{}, bool) {
	s := c.Section(section)
	if s == nil {
		return nil, false
	}
	v, ok := s[key]
	return v, ok
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}

// GetString returns the value when it is a string.
func (c Config) GetString(section, key, def string) string {
	if v, ok := c.lookup(section, key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// GetFloat accepts any numeric encoding, including numeric strings.
func (c Config) GetFloat(section, key string, def float64) float64 {
	if v, ok := c.lookup(section, key); ok {
		if f, ok := asFloat(v); ok {
			return f
		}
	}
	return def
}

// GetInt truncates fractional values.
func (c Config) GetInt(section, key string, def int) int {
	if v, ok := c.lookup(section, key); ok {
		if s, isStr := v.(string); isStr {
			if n, err := strconv.Atoi(s); err == nil {
				return n
			}
			return def
		}
		if f, ok := asFloat(v); ok {
			return int(f)
		}
	}
	return def
}

// GetBool treats non-zero numbers as true.
func (c Config) GetBool(section, key string, def bool) bool {
	v, ok := c.lookup(section, key)
	if !ok {
		return def
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		if parsed, err := strconv.ParseBool(b); err == nil {
			return parsed
		}
		return def
	}
	if f, ok := asFloat(v); ok {
		return f != 0
	}
	return def
}

// GetDuration reads a millisecond count, the unit every *_ms key uses.
func (c Config) GetDuration(section, key string, def time.Duration) time.Duration {
	ms := c.GetFloat(section, key, -1)
	if ms < 0 {
		return def
	}
	return time.Duration(ms * float64(time.Millisecond))
}
