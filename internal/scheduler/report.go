/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package scheduler

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/friendsincode/grimnir_planner/internal/catalog"
	"github.com/friendsincode/grimnir_planner/internal/models"
	"github.com/friendsincode/grimnir_planner/internal/telemetry"
)

// Report summarizes one run. New counts generated rows that survived the
// merge, Duplicates every row the merge dropped.
type Report struct {
	RunID  string
	Now    time.Time
	DryRun bool
	Window []string

	Clients    int
	Generated  int
	Persisted  int
	Retained   int
	Expired    int
	Duplicates int
	New        int
	Published  int
	Catalog    catalog.Stats

	Skips       map[models.SkipReason]int
	SkipDetails []models.Skip
	NewByDate   map[string]int
	TotalByDate map[string]int

	// Rows is the final table in publish order.
	Rows     []models.ScheduleEntry
	Duration time.Duration
}

func newReport(runID string, now time.Time, dryRun bool) *Report {
	return &Report{
		RunID:       runID,
		Now:         now,
		DryRun:      dryRun,
		Skips:       make(map[models.SkipReason]int),
		NewByDate:   map[string]int{},
		TotalByDate: map[string]int{},
	}
}

func (r *Report) setWindow(dates []time.Time) {
	r.Window = make([]string, len(dates))
	for i, d := range dates {
		r.Window[i] = d.Format(models.DateLayout)
	}
}

func (r *Report) addSkips(skips []models.Skip) {
	for _, s := range skips {
		r.Skips[s.Reason]++
		telemetry.SkipsTotal.WithLabelValues(string(s.Reason)).Inc()
	}
	r.SkipDetails = append(r.SkipDetails, skips...)
}

func (r *Report) log(logger zerolog.Logger) {
	skips := zerolog.Dict()
	for reason, n := range r.Skips {
		skips.Int(string(reason), n)
	}
	logger.Info().
		Strs("window", r.Window).
		Int("clients", r.Clients).
		Int("generated", r.Generated).
		Int("retained", r.Retained).
		Int("expired", r.Expired).
		Int("duplicates", r.Duplicates).
		Int("new", r.New).
		Int("published", r.Published).
		Int("catalog_resolved", r.Catalog.Resolved).
		Int("catalog_missed", r.Catalog.Missed).
		Interface("new_by_date", r.NewByDate).
		Interface("total_by_date", r.TotalByDate).
		Dict("skips", skips).
		Bool("dry_run", r.DryRun).
		Dur("duration", r.Duration).
		Msg("calendar updated")
}
