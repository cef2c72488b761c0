// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: keyframe/resolve.go
// Summary: Inheritance, in-between blending and table interpolation over Values.

package keyframe

// Resolve produces a complete property set: every property set on c wins,
// the rest come from fallback, or from Defaults when fallback is nil.
func Resolve(c *Config, fallback *Values) Values {
	if fallback == nil {
		def := Defaults()
		fallback = &def
	}
	var out Values
	for _, p := range properties {
		p.resolve(&out, c, fallback)
	}
	return out
}

// AllowSnapping returns the explicit flag on c or def when unset.
func AllowSnapping(c *Config, def bool) bool {
	if c == nil || c.AllowSnapping == nil {
		return def
	}
	return *c.AllowSnapping
}

// Between blends a and b at fraction t for every continuous property that
// c leaves unset. Properties set on c are taken verbatim; unset discrete
// properties are inherited from a.
func Between(c *Config, t float64, a, b Values, cl Clamp) (Values, error) {
	in := []float64{0, 1}
	src := []Values{a, b}
	var out Values
	for _, p := range properties {
		if p.IsSet(c) || p.Kind() == KindDiscrete {
			p.resolve(&out, c, &a)
			continue
		}
		if err := p.interpolate(&out, t, in, src, cl); err != nil {
			return Values{}, err
		}
	}
	return out, nil
}

// Interpolate evaluates every property at x through the breakpoints
// (in[i], src[i]).
func Interpolate(x float64, in []float64, src []Values, cl Clamp) (Values, error) {
	var out Values
	for _, p := range properties {
		if err := p.interpolate(&out, x, in, src, cl); err != nil {
			return Values{}, err
		}
	}
	return out, nil
}

// Pin returns a Config with every property set from v, so resolving it
// ignores any fallback.
func Pin(v Values) *Config {
	c := &Config{}
	for _, p := range properties {
		p.pin(c, &v)
	}
	return c
}
