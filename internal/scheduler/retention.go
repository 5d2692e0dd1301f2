/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package scheduler

import (
	"time"

	"github.com/friendsincode/grimnir_planner/internal/models"
)

// RetentionCutoff is the oldest date kept: today minus retentionDays.
func RetentionCutoff(today time.Time, retentionDays int) string {
	if retentionDays < 0 {
		retentionDays = 0
	}
	return today.AddDate(0, 0, -retentionDays).Format(models.DateLayout)
}

// RetainRecent keeps persisted rows dated on or after the cutoff. Rows without
// a readable date are dropped and reported as invalid_row_date skips.
func RetainRecent(rows []models.ScheduleEntry, today time.Time, retentionDays int) ([]models.ScheduleEntry, int, []models.Skip) {
	cutoff := RetentionCutoff(today, retentionDays)

	kept := make([]models.ScheduleEntry, 0, len(rows))
	dropped := 0
	var invalid []models.Skip
	for i, r := range rows {
		switch {
		case r.Date == "":
			invalid = append(invalid, models.Skip{Reason: models.SkipInvalidRowDate, Subject: r.Client, Row: i + 1})
		case r.Date < cutoff:
			// YYYY-MM-DD compares chronologically as text.
			dropped++
		default:
			kept = append(kept, r)
		}
	}
	return kept, dropped, invalid
}
