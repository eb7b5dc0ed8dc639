// Copyright © 2026 Waytile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/waytiled/root.go
// Summary: Cobra command tree for the waytiled binary.
// Notes: Grounded on bnema-dumber/internal/cli/cmd/root.go's SilenceErrors/
// SilenceUsage rootCmd shape.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagConfigPath string
	flagSocketPath string
	flagLogLevel   string

	rootCmd = &cobra.Command{
		Use:           "waytiled",
		Short:         "An i3-compatible tiling layout daemon",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDaemon(cmd.Context())
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the waytiled version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(version)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "path to the waytile YAML config (default: $XDG_CONFIG_HOME/waytile/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagSocketPath, "socket", "", "override the i3-ipc socket path (default: resolved per SWAYSOCK/XDG_RUNTIME_DIR rules)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "override the configured log level (trace|debug|info|warn|error)")
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command, matching the exit-code convention of
// bnema-dumber's Execute().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
