/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Registry holds every planner metric. A dedicated registry keeps Go runtime
// collectors out of the pushed payload.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	// RunsTotal counts generate runs by outcome (success, failed, dry_run, locked).
	RunsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "grimnir_planner_runs_total",
		Help: "Calendar generation runs by outcome.",
	}, []string{"outcome"})

	// RunDuration tracks wall time of a generate run.
	RunDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Name:    "grimnir_planner_run_duration_seconds",
		Help:    "Duration of a calendar generation run.",
		Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120, 300},
	})

	// LastSuccessTimestamp is the unix time of the last successful publish.
	LastSuccessTimestamp = factory.NewGauge(prometheus.GaugeOpts{
		Name: "grimnir_planner_last_success_timestamp_seconds",
		Help: "Unix time of the last successful schedule publish.",
	})

	// EntriesGenerated counts new schedule entries produced before merge.
	EntriesGenerated = factory.NewCounter(prometheus.CounterOpts{
		Name: "grimnir_planner_entries_generated_total",
		Help: "Schedule entries produced by slot expansion.",
	})

	// EntriesPublished is the row count of the last published table.
	EntriesPublished = factory.NewGauge(prometheus.GaugeOpts{
		Name: "grimnir_planner_entries_published",
		Help: "Rows written by the last publish.",
	})

	// DuplicatesDropped counts generated rows discarded by the merge.
	DuplicatesDropped = factory.NewCounter(prometheus.CounterOpts{
		Name: "grimnir_planner_duplicates_dropped_total",
		Help: "Rows dropped because their identity key was already present.",
	})

	// SkipsTotal counts skipped clients and rows by reason.
	SkipsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "grimnir_planner_skips_total",
		Help: "Clients or rows skipped during a run, by reason.",
	}, []string{"reason"})

	// RemoteRetriesTotal counts retried remote calls by operation.
	RemoteRetriesTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "grimnir_planner_remote_retries_total",
		Help: "Transient remote failures that were retried, by operation.",
	}, []string{"operation"})

	// CatalogLookupsTotal counts catalog resolutions by result (hit, miss, kept).
	CatalogLookupsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "grimnir_planner_catalog_lookups_total",
		Help: "Catalog lookups by result.",
	}, []string{"result"})

	// LockStatus is 1 while this instance holds the run lock.
	LockStatus = factory.NewGauge(prometheus.GaugeOpts{
		Name: "grimnir_planner_lock_status",
		Help: "Run lock status (1 = held by this instance).",
	})
)

// Push sends the registry to a Pushgateway. An empty url is a no-op.
func Push(ctx context.Context, url, job, instance string) error {
	if url == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	p := push.New(url, job).Gatherer(Registry)
	if instance != "" {
		p = p.Grouping("instance", instance)
	}
	if err := p.PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	return nil
}

var (
	// DatabaseQueryDuration tracks SQL backend operation latency.
	DatabaseQueryDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "grimnir_planner_database_query_duration_seconds",
		Help:    "Duration of SQL backend operations.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// DatabaseErrorsTotal counts failed SQL backend operations.
	DatabaseErrorsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "grimnir_planner_database_errors_total",
		Help: "Failed SQL backend operations.",
	}, []string{"operation", "table"})
)
