/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package scheduler

import (
	"testing"
	"time"

	"github.com/friendsincode/grimnir_planner/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var monWed = models.NewWeekdays(time.Monday, time.Wednesday)

func TestCountAdvancementCountsAllowedDaysFromStart(t *testing.T) {
	// 2024-01-01 is a Monday, so it is broadcast day 1 and Wednesday the 3rd is day 2.
	adv := CountAdvancement(day(2024, 1, 1), monWed, day(2024, 1, 4))
	if adv.Len() != 4 {
		t.Fatalf("expected 4 dates in mapping, got %d", adv.Len())
	}
	want := map[int]int{1: 1, 2: 1, 3: 2, 4: 2}
	for d, n := range want {
		got, ok := adv.At(day(2024, 1, d))
		if !ok || got != n {
			t.Fatalf("Jan %d: got (%d,%v), want %d", d, got, ok, n)
		}
	}
	if _, ok := adv.At(day(2023, 12, 31)); ok {
		t.Fatal("date before start must be outside the mapping")
	}
	if _, ok := adv.At(day(2024, 1, 5)); ok {
		t.Fatal("date after window end must be outside the mapping")
	}
}

func TestCountAdvancementStartingTuesday(t *testing.T) {
	adv := CountAdvancement(day(2024, 1, 2), monWed, day(2024, 1, 4))
	if got, _ := adv.At(day(2024, 1, 3)); got != 1 {
		t.Fatalf("first Wednesday after a Tuesday start should be day 1, got %d", got)
	}
}

func TestCountAdvancementIsMonotonic(t *testing.T) {
	days := models.NewWeekdays(time.Tuesday, time.Saturday)
	start := day(2024, 2, 20)
	end := day(2024, 5, 1)
	adv := CountAdvancement(start, days, end)

	prev := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		n, ok := adv.At(d)
		if !ok {
			t.Fatalf("%s missing from mapping", d.Format(models.DateLayout))
		}
		if n < prev {
			t.Fatalf("count decreased on %s: %d < %d", d.Format(models.DateLayout), n, prev)
		}
		if days.Allows(d.Weekday()) && n != prev+1 {
			t.Fatalf("allowed day %s should increment: %d -> %d", d.Format(models.DateLayout), prev, n)
		}
		if !days.Allows(d.Weekday()) && n != prev {
			t.Fatalf("disallowed day %s should not increment", d.Format(models.DateLayout))
		}
		prev = n
	}
}

func TestCountAdvancementEdges(t *testing.T) {
	if adv := CountAdvancement(day(2024, 3, 1), monWed, day(2024, 2, 28)); adv.Len() != 0 {
		t.Fatalf("start after window end should give an empty mapping, got %d", adv.Len())
	}
	if adv := CountAdvancement(time.Time{}, monWed, day(2024, 2, 28)); adv.Len() != 0 {
		t.Fatal("zero start should give an empty mapping")
	}

	daily := CountAdvancement(day(2024, 1, 30), 0, day(2024, 2, 2))
	if got, _ := daily.At(day(2024, 2, 2)); got != 4 {
		t.Fatalf("empty weekday set is daily, want 4 got %d", got)
	}

	// A start date carrying a time of day still counts its own date.
	late := CountAdvancement(time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC), monWed, day(2024, 1, 1))
	if got, ok := late.At(day(2024, 1, 1)); !ok || got != 1 {
		t.Fatalf("start day should be day 1, got (%d,%v)", got, ok)
	}
}

func TestCountAdvancementHandlesCenturiesOldStart(t *testing.T) {
	daily := models.NewWeekdays(time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday)
	start := day(1700, 1, 1)
	adv := CountAdvancement(start, daily, day(2026, 10, 17))

	want := int(day(2026, 10, 16).Unix()-start.Unix())/86400 + 1
	if adv.Len() != want+1 {
		t.Fatalf("mapping length = %d, want %d", adv.Len(), want+1)
	}
	d1, ok1 := adv.At(day(2026, 10, 16))
	d2, ok2 := adv.At(day(2026, 10, 17))
	if !ok1 || !ok2 {
		t.Fatal("window dates must fall inside the mapping")
	}
	if d1 != want || d2 != want+1 {
		t.Fatalf("got %d,%d want %d,%d", d1, d2, want, want+1)
	}
}
