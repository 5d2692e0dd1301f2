/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package scheduler

import "github.com/friendsincode/grimnir_planner/internal/models"

// Merge concatenates persisted then generated rows and keeps the first row per
// identity key, so a stored row always wins over its regenerated twin and keeps
// its message and sent marker. It returns the merged rows and how many were
// dropped as duplicates.
func Merge(persisted, generated []models.ScheduleEntry) ([]models.ScheduleEntry, int) {
	seen := make(map[models.EntryKey]struct{}, len(persisted)+len(generated))
	out := make([]models.ScheduleEntry, 0, len(persisted)+len(generated))
	dup := 0

	for _, batch := range [][]models.ScheduleEntry{persisted, generated} {
		for _, e := range batch {
			k := e.Key()
			if _, ok := seen[k]; ok {
				dup++
				continue
			}
			seen[k] = struct{}{}
			out = append(out, e)
		}
	}
	return out, dup
}
