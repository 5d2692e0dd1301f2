/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/friendsincode/grimnir_planner/internal/clock"
	"github.com/friendsincode/grimnir_planner/internal/models"
)

func TestClockFor(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Fatalf("load zone: %v", err)
	}

	clk, err := clockFor("2024-01-03T08:00", loc)
	if err != nil {
		t.Fatalf("clockFor: %v", err)
	}
	if got := clk.Now().UTC(); !got.Equal(time.Date(2024, 1, 3, 7, 0, 0, 0, time.UTC)) {
		t.Fatalf("local time not applied, got %s", got)
	}

	clk, err = clockFor("2024-01-03T23:30:00Z", loc)
	if err != nil {
		t.Fatalf("clockFor: %v", err)
	}
	if today := clock.Today(clk.Now(), loc); today.Day() != 4 {
		t.Fatalf("23:30 UTC is already the 4th in Paris, got %s", today)
	}

	if _, err := clockFor("yesterday", loc); err == nil {
		t.Fatal("expected error for unreadable --now")
	}
	if clk, _ := clockFor("", loc); clk != (clock.System{}) {
		t.Fatalf("empty --now should use the system clock, got %T", clk)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	rows := []models.ScheduleEntry{{
		Client: "Acme", ProgramID: "007", Season: 1, ChannelID: "-1001",
		Date: "2024-01-03", Time: "09:00:00", Type: "Conseil", Advancement: 2,
		Message: "Season 1 - Day 2 : \nConseil : Bois", Format: "texte", Sent: "non",
	}}
	if err := writeCSV(&buf, rows); err != nil {
		t.Fatalf("writeCSV: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, strings.Join(models.ScheduleHeader, ",")+"\n") {
		t.Fatalf("missing header: %q", out)
	}
	if !strings.Contains(out, "\"Season 1 - Day 2 : \nConseil : Bois\"") {
		t.Fatalf("multi-line message should be quoted: %q", out)
	}
}
