// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelmodal-inspect/main.go
// Summary: Compiles a modal definition and prints its interpolation table.
// Usage: texelmodal-inspect -f modal.yaml -w 80 -h 24 [-at 0.5] [-project 20,-900]

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/framegrace/texelmodal/config"
	"github.com/framegrace/texelmodal/geom"
	"github.com/framegrace/texelmodal/layout"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	file     string
	embedded string
	profile  string
	defaults bool

	width, height float64
	safeArea      string
	keyboard      float64

	at      string
	project string
	color   string
	verbose bool
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("texelmodal-inspect", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var o options
	fs.StringVar(&o.file, "f", "", "Modal definition file (YAML or JSON)")
	fs.StringVar(&o.embedded, "modal", "sheet", "Embedded modal to use when -f is not given ("+strings.Join(config.EmbeddedModals(), ", ")+")")
	fs.StringVar(&o.profile, "profile", "", "Config profile layered over the system config")
	fs.BoolVar(&o.defaults, "defaults", false, "Ignore the user config and use built-in settings")
	fs.Float64Var(&o.width, "w", 80, "Viewport width")
	fs.Float64Var(&o.height, "h", 24, "Viewport height")
	fs.StringVar(&o.safeArea, "safe-area", "", "Safe area insets as top,left,bottom,right")
	fs.Float64Var(&o.keyboard, "keyboard", 0, "Height of a keyboard covering the bottom of the viewport")
	fs.StringVar(&o.at, "at", "", "Also print the interpolated values at this progress")
	fs.StringVar(&o.project, "project", "", "Project a gesture release given as coordinate,velocity along the modal axis")
	fs.StringVar(&o.color, "color", "auto", "Highlight output: auto, always or never")
	fs.BoolVar(&o.verbose, "v", false, "Verbose logging")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	level := zerolog.WarnLevel
	if o.verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: o.color == "never"}).
		Level(level).With().Timestamp().Logger()
	config.SetLogger(log)

	settings := config.DefaultSettings()
	if !o.defaults {
		s, err := config.ProfileSettings(o.profile)
		if err != nil {
			log.Warn().Err(err).Msg("Inspect: config has invalid values, using defaults for them")
		}
		settings = s
	}

	var (
		file *config.ModalFile
		err  error
	)
	if o.file != "" {
		file, err = config.LoadModal(o.file)
	} else {
		file, err = config.EmbeddedModal(o.embedded)
	}
	if err != nil {
		return err
	}
	m, err := file.Build(settings)
	if err != nil {
		return fmt.Errorf("build modal: %w", err)
	}
	m.Compiler.Logger = log

	ctx, err := o.context()
	if err != nil {
		return err
	}
	tbl, err := m.Compiler.Compile(m.Points, ctx)
	if err != nil {
		return fmt.Errorf("compile: %w", err)
	}

	rep := newReport(m, tbl)
	if o.at != "" {
		p, err := strconv.ParseFloat(o.at, 64)
		if err != nil {
			return fmt.Errorf("-at: %w", err)
		}
		if err := rep.addSample(tbl, p); err != nil {
			return err
		}
	}
	if o.project != "" {
		coord, vel, err := parsePair(o.project)
		if err != nil {
			return fmt.Errorf("-project: %w", err)
		}
		rep.addProjection(tbl, settings.Projection, coord, vel)
	}

	return write(stdout, rep, o.color)
}

func (o options) context() (layout.Context, error) {
	if o.width <= 0 || o.height <= 0 {
		return layout.Context{}, fmt.Errorf("viewport must be positive, got %vx%v", o.width, o.height)
	}
	ctx := layout.Context{Viewport: geom.Rect{Width: o.width, Height: o.height}}
	if o.safeArea != "" {
		parts := strings.Split(o.safeArea, ",")
		if len(parts) != 4 {
			return ctx, fmt.Errorf("-safe-area wants 4 values, got %d", len(parts))
		}
		var v [4]float64
		for i, s := range parts {
			f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return ctx, fmt.Errorf("-safe-area: %w", err)
			}
			v[i] = f
		}
		ctx.SafeArea = geom.EdgeInsets{Top: v[0], Left: v[1], Bottom: v[2], Right: v[3]}
	}
	if o.keyboard > 0 {
		ctx = ctx.WithKeyboard(&geom.Rect{Y: o.height - o.keyboard, Width: o.width, Height: o.keyboard})
	}
	return ctx, nil
}

func parsePair(s string) (float64, float64, error) {
	a, b, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("want coordinate,velocity, got %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
	if err != nil {
		return 0, 0, err
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(b), 64)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}
