// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelmodal-demo/main.go
// Summary: Terminal demo of an adaptive modal driven by keys and mouse drags.
// Usage: texelmodal-demo [-modal sheet | -f modal.yaml] [-log file] [-fps 60]

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/framegrace/texelmodal/anim"
	"github.com/framegrace/texelmodal/config"
	"github.com/framegrace/texelmodal/internal/store"
)

const profileName = "demo"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet("texelmodal-demo", flag.ContinueOnError)
	file := fs.String("f", "", "Modal definition file (YAML or JSON)")
	embedded := fs.String("modal", "sheet", "Embedded modal to use when -f is not given ("+strings.Join(config.EmbeddedModals(), ", ")+")")
	logPath := fs.String("log", filepath.Join(os.TempDir(), "texelmodal-demo.log"), "Log file (the terminal belongs to the demo)")
	fps := fs.Int("fps", 60, "Frames per second")
	spring := fs.Bool("spring", false, "Animate with a spring instead of the configured curve")
	noStore := fs.Bool("no-store", false, "Do not restore or remember the last snap point")
	verbose := fs.Bool("v", false, "Verbose logging")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if *fps <= 0 {
		return fmt.Errorf("-fps must be positive")
	}

	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()
	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(logFile).Level(level).With().Timestamp().Str("cmd", "texelmodal-demo").Logger()
	config.SetLogger(log)

	cfg := config.Merge(config.System(), config.Profile(profileName))
	settings, err := config.Decode(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("Demo: config has invalid values, using defaults for them")
	}
	if *spring {
		settings.Animation.Curve = anim.CurveSpring
	}
	settings.Animation.FPS = *fps

	var mf *config.ModalFile
	if *file != "" {
		mf, err = config.LoadModal(*file)
	} else {
		mf, err = config.EmbeddedModal(*embedded)
	}
	if err != nil {
		return err
	}
	m, err := mf.Build(settings)
	if err != nil {
		return fmt.Errorf("build modal: %w", err)
	}
	if m.Name == "" {
		m.Name = strings.TrimSuffix(filepath.Base(*file), filepath.Ext(*file))
	}

	var st *store.Store
	if settings.StoreEnabled && !*noStore {
		path, err := config.StorePath(cfg)
		if err == nil {
			st, err = store.Open(path)
		}
		if err != nil {
			log.Warn().Err(err).Msg("Demo: detent store unavailable")
			st = nil
		} else {
			st.Logger = log
			defer st.Close()
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorReset))
	screen.HideCursor()
	screen.EnableMouse(tcell.MouseMotionEvents)

	d, err := newDemo(screen, m, st, log)
	if err != nil {
		return err
	}
	log.Info().Str("modal", m.Name).Int("points", len(m.Points)).Msg("Demo: started")
	return d.loop(time.Second / time.Duration(*fps))
}

func (d *demo) loop(frame time.Duration) error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := d.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	d.now = time.Now()
	d.play(d.session.Present())

	ticker := time.NewTicker(frame)
	defer ticker.Stop()
	for !d.quit {
		select {
		case ev := <-events:
			d.handleEvent(ev, time.Now())
		case now := <-ticker.C:
			d.tick(now)
			d.draw()
		}
	}
	return nil
}
