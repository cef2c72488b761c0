// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/settings.go
// Summary: Typed view over the modal, gesture and animation sections.

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/framegrace/texelmodal/anim"
	"github.com/framegrace/texelmodal/geom"
	"github.com/framegrace/texelmodal/snap"
)

// Settings is the engine configuration a modal starts from before its own
// definition overrides it.
type Settings struct {
	Direction         geom.Direction
	Strategy          snap.Strategy
	Overshoot         bool
	OvershootDistance float64

	Projection snap.Projection
	Animation  anim.Options

	StoreEnabled bool
}

// DefaultSettings mirrors applySystemDefaults.
func DefaultSettings() Settings {
	return Settings{
		Direction:         geom.BottomToTop,
		Strategy:          snap.PercentByPosition,
		Overshoot:         true,
		OvershootDistance: snap.DefaultOvershootDistance,
		Projection:        snap.DefaultProjection(),
		Animation:         anim.DefaultOptions(),
		StoreEnabled:      true,
	}
}

// Decode reads Settings out of cfg. Unknown names keep their default and
// are reported together in the returned error; the Settings are usable
// either way.
func Decode(cfg Config) (Settings, error) {
	s := DefaultSettings()
	var errs []error

	if name := cfg.GetString("modal", "direction", ""); name != "" {
		d, err := geom.ParseDirection(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("modal.direction: %w", err))
		} else {
			s.Direction = d
		}
	}
	if name := cfg.GetString("modal", "strategy", ""); name != "" {
		st, err := snap.ParseStrategy(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("modal.strategy: %w", err))
		} else {
			s.Strategy = st
		}
	}
	s.Overshoot = cfg.GetBool("modal", "overshoot", s.Overshoot)
	s.OvershootDistance = cfg.GetFloat("modal", "overshoot_distance", s.OvershootDistance)

	s.Projection.DecelerationRate = cfg.GetFloat("gesture", "deceleration_rate", s.Projection.DecelerationRate)
	s.Projection.VelocityScale = cfg.GetFloat("gesture", "velocity_scale", s.Projection.VelocityScale)
	s.Projection.MaxVelocity = cfg.GetFloat("gesture", "max_velocity", s.Projection.MaxVelocity)
	if r := s.Projection.DecelerationRate; r <= 0 || r >= 1 {
		errs = append(errs, fmt.Errorf("gesture.deceleration_rate: %v is outside (0,1)", r))
		s.Projection.DecelerationRate = snap.DefaultProjection().DecelerationRate
	}

	if name := cfg.GetString("animation", "curve", ""); name != "" {
		c, err := anim.ParseCurve(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("animation.curve: %w", err))
		} else {
			s.Animation.Curve = c
		}
	}
	if name := cfg.GetString("animation", "easing", ""); name != "" {
		fn, err := anim.EasingByName(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("animation.easing: %w", err))
		} else {
			s.Animation.Easing = fn
		}
	}
	s.Animation.Duration = cfg.GetDuration("animation", "duration_ms", s.Animation.Duration)
	if s.Animation.Duration > 10*time.Second {
		errs = append(errs, fmt.Errorf("animation.duration_ms: %v is too long", s.Animation.Duration))
		s.Animation.Duration = anim.DefaultOptions().Duration
	}
	s.Animation.FPS = cfg.GetInt("animation", "fps", s.Animation.FPS)
	s.Animation.Frequency = cfg.GetFloat("animation", "frequency", s.Animation.Frequency)
	s.Animation.Damping = cfg.GetFloat("animation", "damping", s.Animation.Damping)

	s.StoreEnabled = cfg.GetBool("store", "enabled", s.StoreEnabled)
	return s, errors.Join(errs...)
}

// ProfileSettings decodes the system config with the named profile layered
// on top.
func ProfileSettings(name string) (Settings, error) {
	cfg := System()
	if name != "" {
		cfg = Merge(cfg, Profile(name))
	}
	return Decode(cfg)
}

// Compiler returns a compiler configured from s.
func (s Settings) Compiler() *snap.Compiler {
	c := snap.NewCompiler(s.Direction)
	c.Strategy = s.Strategy
	c.Overshoot = s.Overshoot
	return c
}

// BuildOptions returns the boundary-point options matching s.
func (s Settings) BuildOptions() snap.BuildOptions {
	return snap.BuildOptions{
		Direction:         s.Direction,
		Overshoot:         s.Overshoot,
		OvershootDistance: s.OvershootDistance,
	}
}
