/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package models

import "strconv"

// Wire layouts of the persisted schedule.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"

	// NotSent is the sent marker written on freshly generated rows.
	NotSent = "non"
	// DefaultFormat is used when neither the row nor the catalog names a format.
	DefaultFormat = "texte"
)

// Persisted schedule columns.
const (
	ColClient      = "client"
	ColProgram     = "programme"
	ColSeason      = "saison"
	ColChannel     = "chat_id"
	ColDate        = "date"
	ColTime        = "heure"
	ColType        = "type"
	ColAdvancement = "avancement"
	ColMessage     = "message"
	ColFormat      = "format"
	ColURL         = "url"
	ColSent        = "envoye"
)

// ScheduleHeader is the column order of the published table. It matches the
// sheet consumed by the sender, so it must not be reordered.
var ScheduleHeader = []string{
	ColClient, ColProgram, ColSeason, ColChannel, ColDate, ColTime,
	ColType, ColAdvancement, ColMessage, ColFormat, ColURL, ColSent,
}

// ScheduleEntry is one planned message.
type ScheduleEntry struct {
	Client      string
	ProgramID   string
	Season      int
	ChannelID   string
	Date        string // YYYY-MM-DD, empty when unparsable
	Time        string // HH:MM:SS, empty when unparsable
	Type        string
	Advancement int
	Message     string
	Format      string
	URL         string
	Sent        string
}

// EntryKey identifies a schedule entry. Advancement is deliberately absent:
// two rows for the same slot are the same entry even if their counters differ.
type EntryKey struct {
	Client    string
	ProgramID string
	Season    int
	ChannelID string
	Date      string
	Time      string
	Type      string
}

// Key returns the identity key of e.
func (e ScheduleEntry) Key() EntryKey {
	return EntryKey{
		Client:    e.Client,
		ProgramID: e.ProgramID,
		Season:    e.Season,
		ChannelID: e.ChannelID,
		Date:      e.Date,
		Time:      e.Time,
		Type:      e.Type,
	}
}

// Values renders e in ScheduleHeader order.
func (e ScheduleEntry) Values() []string {
	return []string{
		e.Client,
		e.ProgramID,
		strconv.Itoa(e.Season),
		e.ChannelID,
		e.Date,
		e.Time,
		e.Type,
		strconv.Itoa(e.Advancement),
		e.Message,
		e.Format,
		e.URL,
		e.Sent,
	}
}
