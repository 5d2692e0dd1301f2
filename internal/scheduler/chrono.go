/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package scheduler

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/friendsincode/grimnir_planner/internal/models"
)

const wallLayout = models.DateLayout + " " + models.TimeLayout

// Localize turns a local date and time of day into an instant in loc.
//
// A wall time repeated by a fall-back transition resolves to the earlier
// instant. A wall time skipped by a spring-forward transition resolves to the
// transition itself, the first instant that exists after the gap.
func Localize(date, clockTime string, loc *time.Location) (time.Time, bool) {
	if date == "" || clockTime == "" {
		return time.Time{}, false
	}
	wall, err := time.Parse(wallLayout, date+" "+clockTime)
	if err != nil {
		return time.Time{}, false
	}

	// Transitions are never closer than two days apart, so the offsets in
	// force a day either side cover every reading of the wall time.
	_, offBefore := wall.Add(-24 * time.Hour).In(loc).Zone()
	_, offAfter := wall.Add(24 * time.Hour).In(loc).Zone()

	var best time.Time
	found := false
	for _, off := range []int{offBefore, offAfter} {
		c := wall.Add(-time.Duration(off) * time.Second)
		if !sameWall(c.In(loc), wall) {
			continue
		}
		if !found || c.Before(best) {
			best, found = c, true
		}
	}
	if found {
		return best.In(loc), true
	}

	start, _ := wall.Add(-time.Duration(offBefore) * time.Second).In(loc).ZoneBounds()
	if start.IsZero() {
		return time.Time{}, false
	}
	return start.In(loc), true
}

func sameWall(t, wall time.Time) bool {
	y1, m1, d1 := t.Date()
	y2, m2, d2 := wall.Date()
	return y1 == y2 && m1 == m2 && d1 == d2 &&
		t.Hour() == wall.Hour() && t.Minute() == wall.Minute() && t.Second() == wall.Second()
}

// SortChronologically orders rows in place by (instant, client, type). Rows
// whose date or time cannot be read sort after every dated row; none are
// dropped. The sort is stable, so equal rows keep their merge order.
func SortChronologically(rows []models.ScheduleEntry, loc *time.Location) {
	type keyed struct {
		at    time.Time
		valid bool
		row   models.ScheduleEntry
	}
	tmp := make([]keyed, len(rows))
	for i, r := range rows {
		at, ok := Localize(r.Date, r.Time, loc)
		tmp[i] = keyed{at: at, valid: ok, row: r}
	}

	slices.SortStableFunc(tmp, func(a, b keyed) int {
		switch {
		case a.valid && !b.valid:
			return -1
		case !a.valid && b.valid:
			return 1
		case a.valid && b.valid:
			if c := a.at.Compare(b.at); c != 0 {
				return c
			}
		}
		if c := cmp.Compare(a.row.Client, b.row.Client); c != 0 {
			return c
		}
		return strings.Compare(a.row.Type, b.row.Type)
	})

	for i := range tmp {
		rows[i] = tmp[i].row
	}
}
