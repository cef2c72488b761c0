// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/paths.go
// Summary: Path helpers for texelmodal configuration and state.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func configRoot() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "texelmodal"), nil
}

func systemConfigPath() (string, error) {
	root, err := configRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, systemConfigName), nil
}

func profileConfigPath(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("profile name is required")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid profile name %q", name)
	}
	root, err := configRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "profiles", name+".json"), nil
}

// StorePath returns the detent database location: the store.path setting
// when set, otherwise detents.db next to the system config.
func StorePath(cfg Config) (string, error) {
	if p := cfg.GetString("store", "path", ""); p != "" {
		return p, nil
	}
	root, err := configRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "detents.db"), nil
}
