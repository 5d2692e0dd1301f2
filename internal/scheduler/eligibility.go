/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package scheduler

import (
	"time"

	"github.com/friendsincode/grimnir_planner/internal/clock"
	"github.com/friendsincode/grimnir_planner/internal/models"
)

// Advancement maps every date from a client's start date to the end of the
// window onto the number of broadcast days reached so far.
type Advancement struct {
	start  time.Time
	counts []int
}

// CountAdvancement walks day by day from start to windowEnd, incrementing on
// each allowed weekday and recording the running count for every date,
// allowed or not. A start after windowEnd yields an empty mapping.
//
// The walk always restarts from start so the count is reproducible from the
// client row alone.
func CountAdvancement(start time.Time, days models.Weekdays, windowEnd time.Time) Advancement {
	start = clock.Date(start)
	windowEnd = clock.Date(windowEnd)
	adv := Advancement{start: start}
	if start.IsZero() || start.After(windowEnd) {
		return adv
	}

	n := daysBetween(start, windowEnd) + 1
	adv.counts = make([]int, n)
	count := 0
	for i, d := 0, start; i < n; i, d = i+1, d.AddDate(0, 0, 1) {
		if days.Allows(d.Weekday()) {
			count++
		}
		adv.counts[i] = count
	}
	return adv
}

// At returns the count recorded for date. ok is false outside the mapping.
func (a Advancement) At(date time.Time) (int, bool) {
	if len(a.counts) == 0 {
		return 0, false
	}
	date = clock.Date(date)
	if date.Before(a.start) {
		return 0, false
	}
	i := daysBetween(a.start, date)
	if i >= len(a.counts) {
		return 0, false
	}
	return a.counts[i], true
}

// daysBetween counts calendar days from one UTC midnight to another. It works
// on Unix seconds because time.Duration saturates after about 292 years.
func daysBetween(from, to time.Time) int {
	return int((to.Unix() - from.Unix()) / 86400)
}

// Len is the number of dates in the mapping.
func (a Advancement) Len() int { return len(a.counts) }
