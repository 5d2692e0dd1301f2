/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package scheduler

import (
	"testing"

	"github.com/friendsincode/grimnir_planner/internal/models"
)

func TestRetainRecent(t *testing.T) {
	rows := []models.ScheduleEntry{
		{Client: "a", Date: "2024-01-07"},
		{Client: "b", Date: "2024-01-08"},
		{Client: "c", Date: ""},
		{Client: "d", Date: "2024-01-12"},
	}
	kept, dropped, invalid := RetainRecent(rows, day(2024, 1, 10), 2)

	if len(kept) != 2 || kept[0].Client != "b" || kept[1].Client != "d" {
		t.Fatalf("unexpected kept rows: %+v", kept)
	}
	if dropped != 1 {
		t.Fatalf("expected 1 expired row, got %d", dropped)
	}
	if len(invalid) != 1 || invalid[0].Reason != models.SkipInvalidRowDate || invalid[0].Row != 3 {
		t.Fatalf("unexpected invalid rows: %+v", invalid)
	}
}

func TestRetentionCutoff(t *testing.T) {
	if got := RetentionCutoff(day(2024, 3, 1), 2); got != "2024-02-28" {
		t.Fatalf("cutoff = %s", got)
	}
	if got := RetentionCutoff(day(2024, 3, 1), -3); got != "2024-03-01" {
		t.Fatalf("negative retention should clamp to today, got %s", got)
	}
}
