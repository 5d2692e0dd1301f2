/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	"fmt"
	"os"
	_ "time/tzdata"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/friendsincode/grimnir_planner/internal/config"
	"github.com/friendsincode/grimnir_planner/internal/logging"
	"github.com/friendsincode/grimnir_planner/internal/version"
)

var (
	logger zerolog.Logger
	cfg    *config.Config

	logJSON  bool
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "grimnirplanner",
	Short: "Grimnir Planner - rolling broadcast calendar generator",
	Long: `Grimnir Planner keeps the per-client message calendar up to date.

Each run reads the client table, plans every broadcast slot of the coming
days, merges them with the recent part of the published schedule, fills the
message text from the program catalog and republishes the whole table.`,
	Version:       version.String(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Write JSON log lines instead of console output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads configuration (called by commands that need it)
func loadConfig() error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	opts := logging.Options{JSON: logJSON || cfg.LogJSON, Level: cfg.LogLevel}
	if logLevel != "" {
		opts.Level = logLevel
	}
	logger = logging.SetupWithWriter(cfg.Environment, opts, os.Stderr)
	for _, w := range cfg.LegacyEnvWarnings {
		logger.Warn().Msg(w)
	}
	return nil
}
