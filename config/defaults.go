// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values for the system config and built-in profiles.

package config

func applySystemDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("modal", Section{
		"direction":          "bottomToTop",
		"strategy":           "position",
		"overshoot":          true,
		"overshoot_distance": 24.0,
	})
	cfg.RegisterDefaults("gesture", Section{
		"deceleration_rate": 0.998,
		"velocity_scale":    0.5,
		"max_velocity":      300.0,
	})
	cfg.RegisterDefaults("animation", Section{
		"curve":       "eased",
		"duration_ms": 300,
		"easing":      "outCubic",
		"fps":         60,
		"frequency":   6.0,
		"damping":     0.8,
	})
	cfg.RegisterDefaults("store", Section{
		"enabled": true,
		"path":    "",
	})
}

func applyProfileDefaults(name string, cfg Config) {
	if cfg == nil {
		return
	}
	switch name {
	case "demo":
		// The demo measures in terminal cells.
		cfg.RegisterDefaults("gesture", Section{
			"velocity_scale": 0.5,
			"max_velocity":   40.0,
		})
		cfg.RegisterDefaults("modal", Section{
			"overshoot_distance": 1.0,
		})
	}
}
