/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package scheduler

import (
	"strings"
	"time"

	"github.com/friendsincode/grimnir_planner/internal/models"
)

// ExpandSlots emits one entry per configured slot of client on date. Nothing is
// emitted when date is not a broadcast day or lies outside adv.
func ExpandSlots(client models.Client, date time.Time, adv Advancement) []models.ScheduleEntry {
	if !client.Weekdays.Allows(date.Weekday()) {
		return nil
	}
	count, ok := adv.At(date)
	if !ok || count < 1 {
		return nil
	}

	day := date.Format(models.DateLayout)
	var entries []models.ScheduleEntry
	for _, slot := range client.Slots {
		if slot.Time == "" {
			continue
		}
		entries = append(entries, models.ScheduleEntry{
			Client:      client.Name,
			ProgramID:   client.ProgramID,
			Season:      client.Season,
			ChannelID:   client.ChannelID,
			Date:        day,
			Time:        slot.Time,
			Type:        strings.TrimSpace(slot.Type),
			Advancement: count,
			Sent:        models.NotSent,
		})
	}
	return entries
}

// GenerateEntries expands every client over window, in client then date order.
func GenerateEntries(clients []models.Client, window []time.Time) []models.ScheduleEntry {
	if len(window) == 0 {
		return nil
	}
	end := window[len(window)-1]

	var out []models.ScheduleEntry
	for _, c := range clients {
		adv := CountAdvancement(c.StartDate, c.Weekdays, end)
		if adv.Len() == 0 {
			continue
		}
		for _, d := range window {
			out = append(out, ExpandSlots(c, d, adv)...)
		}
	}
	return out
}
