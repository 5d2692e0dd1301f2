/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package clock derives the planning window from the current instant.
//
// Calendar dates are carried as time.Time values at UTC midnight so that date
// arithmetic never crosses a daylight-saving transition.
package clock

import (
	"time"

	"github.com/rs/zerolog"
)

// DefaultZone is used when the configured zone cannot be loaded.
const DefaultZone = "Europe/Paris"

// Clock returns the current instant.
type Clock interface {
	Now() time.Time
}

// System is the wall clock.
type System struct{}

// Now implements Clock.
func (System) Now() time.Time { return time.Now() }

// Fixed always returns the same instant. Used for --now and tests.
type Fixed time.Time

// Now implements Clock.
func (f Fixed) Now() time.Time { return time.Time(f) }

// LoadLocation loads the named zone. On failure it logs a warning and returns
// DefaultZone (or UTC if that is also unavailable) with ok=false.
func LoadLocation(name string, logger zerolog.Logger) (*time.Location, bool) {
	if name != "" {
		loc, err := time.LoadLocation(name)
		if err == nil {
			return loc, true
		}
		logger.Warn().Err(err).Str("timezone", name).Str("fallback", DefaultZone).Msg("invalid timezone, falling back to default")
	}
	loc, err := time.LoadLocation(DefaultZone)
	if err != nil {
		logger.Warn().Err(err).Msg("default timezone unavailable, using UTC")
		return time.UTC, false
	}
	return loc, name == ""
}

// Date returns the calendar date of t at UTC midnight.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today is the calendar date of now in loc.
func Today(now time.Time, loc *time.Location) time.Time {
	return Date(now.In(loc))
}

// Window returns n consecutive dates starting with today in loc. n below 1 is
// treated as 1.
func Window(now time.Time, loc *time.Location, n int) []time.Time {
	if n < 1 {
		n = 1
	}
	today := Today(now, loc)
	dates := make([]time.Time, n)
	for i := range dates {
		dates[i] = today.AddDate(0, 0, i)
	}
	return dates
}
