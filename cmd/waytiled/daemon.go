// Copyright © 2026 Waytile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/waytiled/daemon.go
// Summary: Wires config, logging, the tiling core, the animator, and the
// IPC server together and runs until interrupted.
// Notes: Shutdown fan-out grounded on wm.Shutdown/wm.AnimatorStopper
// (bnema-dumber/internal/app/browser/browser.go's errgroup shutdown
// pattern). Output geometry is a placeholder 1920x1080 single-output
// layout: real multi-monitor discovery belongs to the toolkit integration
// layer, out of scope here (spec.md Non-goals: "toolkit rendering
// backend").

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"waytile/animator"
	"waytile/config"
	"waytile/container"
	"waytile/internal/geom"
	"waytile/ipc"
	"waytile/output"
	"waytile/windowctl"
	"waytile/wm"
	"waytile/workspace"
)

func newLogger(cfg *config.Config, override string) zerolog.Logger {
	level := cfg.Logging.Level
	if override != "" {
		level = override
	}
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}

	var w = os.Stderr
	var logger zerolog.Logger
	if cfg.Logging.Format == "json" {
		logger = zerolog.New(w)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen})
	}
	return logger.Level(parsed).With().Timestamp().Logger()
}

func runDaemon(ctx context.Context) error {
	cfg, err := loadConfig(flagConfigPath)
	if err != nil {
		return err
	}
	log := newLogger(cfg, flagLogLevel)
	log.Info().Str("version", version).Str("commit", commit).Msg("waytiled starting")

	manager := wm.NewManager()
	primary := output.New(geom.Rect{X: 0, Y: 0, W: 1920, H: 1080})
	for _, rule := range cfg.Workspaces {
		key := workspace.Key(rule.Key)
		layout := rule.Layout
		existing := primary.LayoutHintFor
		primary.LayoutHintFor = func(k workspace.Key) output.LayoutHint {
			if k == key {
				return layout
			}
			if existing != nil {
				return existing(k)
			}
			return output.LayoutTiled
		}
	}
	manager.AddOutput(primary)
	manager.FocusWorkspace(1)

	controller := windowctl.NewRecorder()

	anim := animator.New(func(batch animator.Batch) {
		for target, rect := range batch {
			if wm.IsSwitchTarget(target) {
				// Output-strip slides update Output.PositionOffset through
				// their own OnStep callback (wm.AnimateSwitch); they carry
				// no real window to hand SetRectangle.
				continue
			}
			_ = controller.SetRectangle(container.WindowID(target), windowctl.Rect{X: rect.X, Y: rect.Y, W: rect.W, H: rect.H})
		}
	})
	go anim.Run()

	policy := wm.NewPolicy(manager, controller)
	policy.FocusOutput(primary)
	policy.Animator = anim
	policy.Animations = cfg.Animations
	policy.Bindings = cfg.Bindings

	var ipcLog = log.With().Str("component", "ipc").Logger()
	server := ipc.NewServer(policy, ipcLog)
	if flagSocketPath != "" {
		os.Setenv("SWAYSOCK", flagSocketPath)
	}
	if err := server.Start(); err != nil {
		return err
	}
	log.Info().Str("socket", server.Path()).Msg("listening")

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	log.Info().Msg("waytiled shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return wm.Shutdown(shutdownCtx, server, wm.AnimatorStopper{Animator: anim})
}
