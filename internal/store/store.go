/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package store defines the tables the planner reads and republishes.
//
// Backends exchange rows as raw cell text keyed by header label; parsing and
// normalization happen in the ingest package so every backend behaves alike.
// Backends mark retriable failures with retry.Transient.
package store

import (
	"context"
	"errors"
)

//go:generate mockgen -source=store.go -destination=store_mock.go -package=store

// ErrSegmentNotFound is returned by CatalogStore when a program has no segment.
var ErrSegmentNotFound = errors.New("catalog segment not found")

// Row is one data row: header label -> cell text.
type Row map[string]string

// ClientStore reads the subscriber table.
type ClientStore interface {
	ReadClients(ctx context.Context) ([]Row, error)
}

// ScheduleStore reads and fully replaces the published schedule table.
type ScheduleStore interface {
	ReadSchedule(ctx context.Context) ([]Row, error)
	// ReplaceSchedule clears the table and writes header followed by rows.
	ReplaceSchedule(ctx context.Context, header []string, rows [][]string) error
}

// CatalogStore reads one program's catalog segment.
type CatalogStore interface {
	ReadSegment(ctx context.Context, programID string) ([]Row, error)
}

// RowsFromValues converts a header row plus data rows into Rows. Short rows are
// padded with empty cells; cells beyond the header are dropped. Rows with only
// empty cells are skipped, matching spreadsheet "records" semantics.
func RowsFromValues(header []string, values [][]string) []Row {
	rows := make([]Row, 0, len(values))
	for _, line := range values {
		row := make(Row, len(header))
		empty := true
		for i, h := range header {
			if h == "" {
				continue
			}
			var cell string
			if i < len(line) {
				cell = line[i]
			}
			if cell != "" {
				empty = false
			}
			row[h] = cell
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows
}
