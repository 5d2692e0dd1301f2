/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/friendsincode/grimnir_planner/internal/catalog"
	"github.com/friendsincode/grimnir_planner/internal/clock"
	"github.com/friendsincode/grimnir_planner/internal/leadership"
	"github.com/friendsincode/grimnir_planner/internal/models"
	"github.com/friendsincode/grimnir_planner/internal/scheduler"
	"github.com/friendsincode/grimnir_planner/internal/telemetry"
	"github.com/friendsincode/grimnir_planner/internal/version"
)

// Generate flags
var (
	generateDryRun    bool
	generateNow       string
	generateWindow    int
	generateRetention int
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Plan the coming days and republish the schedule",
	Long: `Runs one planning pass: builds the window starting today in the configured
timezone, plans every eligible client slot, keeps the recent part of the
published schedule, fills messages from the catalog and replaces the
schedule table.

Examples:
  grimnirplanner generate
  grimnirplanner generate --dry-run > schedule.csv
  grimnirplanner generate --now 2024-01-03T08:00 --window 7`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "Compute the schedule and print it as CSV without publishing")
	generateCmd.Flags().StringVar(&generateNow, "now", "", "Override the current time (RFC3339, 2006-01-02T15:04 or 2006-01-02, local to the timezone)")
	generateCmd.Flags().IntVar(&generateWindow, "window", 0, "Override the number of days to plan")
	generateCmd.Flags().IntVar(&generateRetention, "retention", -1, "Override the number of past days to keep")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}
	if generateWindow > 0 {
		cfg.WindowDays = generateWindow
	}
	if generateRetention >= 0 {
		cfg.RetentionDays = generateRetention
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loc, _ := clock.LoadLocation(cfg.TimeZone, logger)
	clk, err := clockFor(generateNow, loc)
	if err != nil {
		return err
	}
	aliases, err := catalog.ParseAliases(cfg.CatalogTypeAliases)
	if err != nil {
		return fmt.Errorf("parse catalog type aliases: %w", err)
	}

	runID := uuid.NewString()
	tracerProvider, err := telemetry.InitTracer(ctx, telemetry.TracerConfig{
		ServiceName:    "grimnir-planner",
		ServiceVersion: version.Version,
		RunID:          runID,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.TracingEnabled,
		SampleRate:     cfg.TracingSampleRate,
	}, logger)
	if err != nil {
		return fmt.Errorf("initialize tracer: %w", err)
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown tracer provider")
		}
	}()

	stores, cleanup, err := openStores(ctx)
	defer cleanup()
	if err != nil {
		return err
	}

	var gen scheduler.Generator = scheduler.New(stores, scheduler.Config{
		Location:      loc,
		WindowDays:    cfg.WindowDays,
		RetentionDays: cfg.RetentionDays,
		SlotTypes:     cfg.SlotTypes,
		TypeAliases:   aliases,
		DryRun:        generateDryRun,
		RunID:         runID,
	}, retryPolicy(), clk, logger)

	if cfg.LockEnabled && !generateDryRun {
		lock, err := leadership.NewRunLock(ctx, leadership.LockConfig{
			RedisAddr:     cfg.RedisAddr,
			RedisPassword: cfg.RedisPassword,
			RedisDB:       cfg.RedisDB,
			Key:           cfg.LockKey,
			LeaseDuration: cfg.LockLease,
			InstanceID:    cfg.InstanceID,
		}, logger)
		if err != nil {
			return fmt.Errorf("initialize run lock: %w", err)
		}
		defer lock.Close()
		gen = scheduler.NewLocked(gen, lock, logger)
	}

	report, runErr := gen.Generate(ctx)

	if err := telemetry.Push(context.Background(), cfg.PushgatewayURL, "grimnir_planner", cfg.InstanceID); err != nil {
		logger.Warn().Err(err).Msg("failed to push metrics")
	}
	if runErr != nil {
		return runErr
	}

	if generateDryRun {
		return writeCSV(os.Stdout, report.Rows)
	}
	fmt.Fprintf(os.Stderr, "Published %d rows (%d new, %d kept, %d expired) for %v\n",
		report.Published, report.New, report.Retained, report.Expired, report.Window)
	return nil
}

// clockFor returns a fixed clock when raw is set, the system clock otherwise.
func clockFor(raw string, loc *time.Location) (clock.Clock, error) {
	if raw == "" {
		return clock.System{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return clock.Fixed(t), nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return clock.Fixed(t), nil
		}
	}
	return nil, fmt.Errorf("invalid --now value %q", raw)
}

func writeCSV(out io.Writer, rows []models.ScheduleEntry) error {
	w := csv.NewWriter(out)
	if err := w.Write(models.ScheduleHeader); err != nil {
		return err
	}
	for _, r := range rows {
		if err := w.Write(r.Values()); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
