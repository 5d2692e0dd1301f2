/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package scheduler

import (
	"testing"

	"github.com/friendsincode/grimnir_planner/internal/models"
)

func entry(client, date, typ string, adv int) models.ScheduleEntry {
	return models.ScheduleEntry{
		Client: client, ProgramID: "007", Season: 1, ChannelID: "-1001",
		Date: date, Time: "09:00:00", Type: typ, Advancement: adv, Sent: models.NotSent,
	}
}

func TestMergePrefersPersistedRows(t *testing.T) {
	stored := entry("Acme", "2024-01-03", "Conseil", 2)
	stored.Message = "Écrit à la main"
	stored.Sent = "oui"

	// Same identity, different advancement: still the same entry.
	regenerated := entry("Acme", "2024-01-03", "Conseil", 7)
	fresh := entry("Acme", "2024-01-08", "Conseil", 3)

	merged, dup := Merge([]models.ScheduleEntry{stored}, []models.ScheduleEntry{regenerated, fresh})
	if dup != 1 {
		t.Fatalf("expected 1 duplicate, got %d", dup)
	}
	if len(merged) != 2 {
		t.Fatalf("expected 2 rows, got %+v", merged)
	}
	if merged[0].Message != "Écrit à la main" || merged[0].Sent != "oui" || merged[0].Advancement != 2 {
		t.Fatalf("persisted row should win: %+v", merged[0])
	}
	if merged[1].Date != "2024-01-08" {
		t.Fatalf("generated row should follow: %+v", merged[1])
	}
}

func TestMergeLeavesNoDuplicateKeys(t *testing.T) {
	var persisted, generated []models.ScheduleEntry
	for _, d := range []string{"2024-01-01", "2024-01-02", "2024-01-02"} {
		persisted = append(persisted, entry("Acme", d, "Conseil", 1))
	}
	for _, d := range []string{"2024-01-02", "2024-01-03", "2024-01-03"} {
		generated = append(generated, entry("Acme", d, "Conseil", 1))
	}

	merged, dup := Merge(persisted, generated)
	if len(merged)+dup != len(persisted)+len(generated) {
		t.Fatalf("rows lost: %d kept + %d dup != %d", len(merged), dup, len(persisted)+len(generated))
	}
	seen := map[models.EntryKey]bool{}
	for _, m := range merged {
		if seen[m.Key()] {
			t.Fatalf("duplicate key %+v", m.Key())
		}
		seen[m.Key()] = true
	}
	if len(merged) != 3 {
		t.Fatalf("expected 3 distinct rows, got %d", len(merged))
	}
}
