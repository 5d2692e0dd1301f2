/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package models

import (
	"strings"
	"time"
)

// Slot is one message type a client receives per eligible day. Time is
// "HH:MM:SS", or empty when the client has no hour configured for the type.
type Slot struct {
	Type string
	Time string
}

// Weekdays is a set of time.Weekday values. The empty set means every day.
type Weekdays uint8

// NewWeekdays builds a set from days.
func NewWeekdays(days ...time.Weekday) Weekdays {
	var w Weekdays
	for _, d := range days {
		w = w.With(d)
	}
	return w
}

// With returns the set including d.
func (w Weekdays) With(d time.Weekday) Weekdays {
	return w | 1<<uint(d)
}

// Contains reports whether d is explicitly part of the set.
func (w Weekdays) Contains(d time.Weekday) bool {
	return w&(1<<uint(d)) != 0
}

// Allows reports whether d is a broadcast day. An empty set allows every day.
func (w Weekdays) Allows(d time.Weekday) bool {
	return w == 0 || w.Contains(d)
}

// IsDaily reports whether the set is empty.
func (w Weekdays) IsDaily() bool { return w == 0 }

func (w Weekdays) String() string {
	if w == 0 {
		return "daily"
	}
	names := make([]string, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		if w.Contains(d) {
			names = append(names, strings.ToLower(d.String()))
		}
	}
	return strings.Join(names, ",")
}

// Client is a subscriber after ingestion.
type Client struct {
	Name      string
	Theme     string
	ProgramID string // three-digit catalog code
	Season    int
	ChannelID string
	// StartDate is the first broadcast day at UTC midnight, zero when unknown.
	StartDate time.Time
	Weekdays  Weekdays
	Slots     []Slot
}

// HasSlotHours reports whether at least one slot has a configured time.
func (c Client) HasSlotHours() bool {
	for _, s := range c.Slots {
		if s.Time != "" {
			return true
		}
	}
	return false
}
