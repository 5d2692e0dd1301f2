/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/friendsincode/grimnir_planner/internal/catalog"
	"github.com/friendsincode/grimnir_planner/internal/clock"
	"github.com/friendsincode/grimnir_planner/internal/ingest"
	"github.com/friendsincode/grimnir_planner/internal/models"
	"github.com/friendsincode/grimnir_planner/internal/retry"
	"github.com/friendsincode/grimnir_planner/internal/store"
	"github.com/friendsincode/grimnir_planner/internal/telemetry"
)

// Config is fixed for the lifetime of a Service.
type Config struct {
	Location      *time.Location
	WindowDays    int
	RetentionDays int
	SlotTypes     []string
	TypeAliases   catalog.Aliases
	// DryRun computes the table without publishing it.
	DryRun bool
	// RunID tags logs and spans of a run. Empty means a fresh id per run.
	RunID string
}

// Stores groups the three tables a run touches.
type Stores struct {
	Clients  store.ClientStore
	Schedule store.ScheduleStore
	Catalog  store.CatalogStore
}

// Service generates and republishes the broadcast calendar.
type Service struct {
	stores Stores
	cfg    Config
	policy retry.Policy
	clock  clock.Clock
	ingest *ingest.Ingester
	logger zerolog.Logger
}

// New constructs the scheduler service.
func New(stores Stores, cfg Config, policy retry.Policy, clk clock.Clock, logger zerolog.Logger) *Service {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.WindowDays < 1 {
		cfg.WindowDays = 2
	}
	if cfg.RetentionDays < 0 {
		cfg.RetentionDays = 0
	}
	if clk == nil {
		clk = clock.System{}
	}
	logger = logger.With().Str("component", "scheduler").Logger()
	policy.Logger = logger
	return &Service{
		stores: stores,
		cfg:    cfg,
		policy: policy,
		clock:  clk,
		ingest: ingest.New(cfg.SlotTypes, logger),
		logger: logger,
	}
}

// Generate runs one full pass: window, generation, retention, merge, ordering,
// catalog resolution and publish. Any fatal store error aborts the run before
// the schedule is replaced.
func (s *Service) Generate(ctx context.Context) (*Report, error) {
	started := time.Now()
	runID := s.cfg.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	report := newReport(runID, s.clock.Now(), s.cfg.DryRun)
	logger := s.logger.With().Str("run_id", report.RunID).Logger()

	ctx, span := telemetry.StartSpan(ctx, "planner.generate")
	defer span.End()
	telemetry.AddSpanAttributes(span, map[string]any{
		"run_id":         report.RunID,
		"window_days":    s.cfg.WindowDays,
		"retention_days": s.cfg.RetentionDays,
		"dry_run":        s.cfg.DryRun,
	})

	err := s.generate(ctx, report, logger)
	report.Duration = time.Since(started)
	telemetry.RunDuration.Observe(report.Duration.Seconds())

	if err != nil {
		telemetry.RecordError(span, err)
		telemetry.RunsTotal.WithLabelValues("failed").Inc()
		logger.Error().Err(err).Dur("duration", report.Duration).Msg("calendar generation failed")
		return report, err
	}

	outcome := "success"
	if s.cfg.DryRun {
		outcome = "dry_run"
	} else {
		telemetry.LastSuccessTimestamp.SetToCurrentTime()
	}
	telemetry.RunsTotal.WithLabelValues(outcome).Inc()
	report.log(logger)
	return report, nil
}

func (s *Service) generate(ctx context.Context, report *Report, logger zerolog.Logger) error {
	policy := s.policy
	policy.Logger = logger

	window := clock.Window(report.Now, s.cfg.Location, s.cfg.WindowDays)
	today := window[0]
	report.setWindow(window)

	clientRows, err := retry.Value(ctx, policy, "read_clients", s.stores.Clients.ReadClients)
	if err != nil {
		return fmt.Errorf("read clients: %w", err)
	}
	clients, skips := s.ingest.Clients(clientRows)
	report.Clients = len(clients)
	report.addSkips(skips)

	generated := GenerateEntries(clients, window)
	report.Generated = len(generated)
	report.NewByDate = countByDate(generated)
	telemetry.EntriesGenerated.Add(float64(len(generated)))
	if len(generated) == 0 {
		s.explainNoEntries(logger, report, clientRows)
	}

	scheduleRows, err := retry.Value(ctx, policy, "read_schedule", s.stores.Schedule.ReadSchedule)
	if err != nil {
		return fmt.Errorf("read schedule: %w", err)
	}
	persisted := s.ingest.ScheduleEntries(scheduleRows)
	report.Persisted = len(persisted)

	retained, expired, invalid := RetainRecent(persisted, today, s.cfg.RetentionDays)
	report.Retained = len(retained)
	report.Expired = expired
	report.addSkips(invalid)
	for _, sk := range invalid {
		logger.Debug().Str("reason", string(sk.Reason)).Str("client", sk.Subject).Int("row", sk.Row).Msg("persisted row dropped")
	}

	merged, dup := Merge(retained, generated)
	report.Duplicates = dup
	report.New = len(merged) - distinctKeys(retained)
	telemetry.DuplicatesDropped.Add(float64(dup))

	SortChronologically(merged, s.cfg.Location)

	resolver := catalog.NewResolver(s.stores.Catalog, policy, s.cfg.TypeAliases, logger)
	stats, err := resolver.Resolve(ctx, merged)
	if err != nil {
		return fmt.Errorf("resolve catalog: %w", err)
	}
	report.Catalog = stats
	report.TotalByDate = countByDate(merged)
	report.Rows = merged

	if s.cfg.DryRun {
		logger.Info().Int("rows", len(merged)).Msg("dry run, schedule not published")
		return nil
	}
	if err := s.publish(ctx, policy, merged); err != nil {
		return err
	}
	report.Published = len(merged)
	telemetry.EntriesPublished.Set(float64(len(merged)))
	return nil
}

// publish replaces the whole schedule table with rows.
func (s *Service) publish(ctx context.Context, policy retry.Policy, rows []models.ScheduleEntry) error {
	ctx, span := telemetry.StartSpan(ctx, "planner.publish")
	defer span.End()
	telemetry.AddSpanAttributes(span, map[string]any{"rows": len(rows)})

	values := make([][]string, len(rows))
	for i, r := range rows {
		values[i] = r.Values()
	}
	err := policy.Do(ctx, "replace_schedule", func(ctx context.Context) error {
		return s.stores.Schedule.ReplaceSchedule(ctx, models.ScheduleHeader, values)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return fmt.Errorf("publish schedule: %w", err)
	}
	return nil
}

// explainNoEntries logs the most likely reason a run produced nothing new.
func (s *Service) explainNoEntries(logger zerolog.Logger, report *Report, clientRows []store.Row) {
	var reason, action string
	switch {
	case len(clientRows) == 0:
		reason, action = "no_clients", "Add at least one client row to the client table."
	case report.Clients == 0:
		reason, action = "all_clients_skipped", "Check the skip reasons logged above and fix the client rows."
	default:
		reason, action = "no_eligible_day", "Clients start after the window or broadcast on none of its weekdays."
	}
	logger.Warn().
		Str("reason", reason).
		Str("action", action).
		Strs("window", report.Window).
		Msg("no new schedule entries generated")
}

// distinctKeys counts the rows of rows that Merge keeps when they come first.
func distinctKeys(rows []models.ScheduleEntry) int {
	seen := make(map[models.EntryKey]struct{}, len(rows))
	for _, r := range rows {
		seen[r.Key()] = struct{}{}
	}
	return len(seen)
}

func countByDate(rows []models.ScheduleEntry) map[string]int {
	out := make(map[string]int)
	for _, r := range rows {
		out[r.Date]++
	}
	return out
}
