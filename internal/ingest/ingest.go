/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package ingest turns raw store rows into planner models.
package ingest

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/friendsincode/grimnir_planner/internal/models"
	"github.com/friendsincode/grimnir_planner/internal/store"
)

// Ingester normalizes client, schedule and catalog rows.
type Ingester struct {
	slotTypes []string
	logger    zerolog.Logger
}

// New returns an Ingester reading one hour column per slot type, in order.
func New(slotTypes []string, logger zerolog.Logger) *Ingester {
	return &Ingester{
		slotTypes: append([]string(nil), slotTypes...),
		logger:    logger.With().Str("component", "ingest").Logger(),
	}
}

// Clients parses the client table. Rows that cannot be planned are returned
// as skips rather than errors.
func (in *Ingester) Clients(rows []store.Row) ([]models.Client, []models.Skip) {
	clients := make([]models.Client, 0, len(rows))
	var skips []models.Skip

	for i, row := range rows {
		c, reason := in.client(row)
		if reason != "" {
			skip := models.Skip{Reason: reason, Subject: c.Name, Row: i + 1}
			skips = append(skips, skip)
			in.logger.Debug().
				Str("reason", string(reason)).
				Str("client", c.Name).
				Int("row", i+1).
				Msg("client skipped")
			continue
		}
		clients = append(clients, c)
	}
	return clients, skips
}

func (in *Ingester) client(row store.Row) (models.Client, models.SkipReason) {
	c := indexRow(row)
	client := models.Client{
		Name:      c.get(ClientAliases, FieldName),
		Theme:     c.get(ClientAliases, FieldTheme),
		ProgramID: NormalizeProgram(c.get(ClientAliases, FieldProgram)),
		Season:    NormalizeSeason(c.get(ClientAliases, FieldSeason)),
		ChannelID: NormalizeChannel(c.get(ClientAliases, FieldChannel)),
	}
	if client.Name == "" {
		return client, models.SkipEmptyName
	}
	if client.ChannelID == "" {
		return client, models.SkipEmptyChannel
	}

	start, ok := ParseDate(c.get(ClientAliases, FieldStart))
	if !ok {
		return client, models.SkipInvalidStartDate
	}
	client.StartDate = start

	days, unknown, err := ParseWeekdays(c.get(ClientAliases, FieldWeekdays))
	if err != nil {
		return client, models.SkipInvalidWeekdays
	}
	if len(unknown) > 0 {
		in.logger.Warn().
			Str("client", client.Name).
			Strs("unknown", unknown).
			Msg("ignoring unknown weekday names")
	}
	client.Weekdays = days

	client.Slots = make([]models.Slot, 0, len(in.slotTypes))
	for _, t := range in.slotTypes {
		raw, _ := c.first(SlotHourLabels(t))
		hour := NormalizeTime(raw)
		if hour == "" && strings.TrimSpace(raw) != "" {
			in.logger.Warn().
				Str("client", client.Name).
				Str("type", t).
				Str("value", raw).
				Msg("unreadable slot hour, slot disabled")
		}
		client.Slots = append(client.Slots, models.Slot{Type: t, Time: hour})
	}
	if !client.HasSlotHours() {
		return client, models.SkipNoSlotHours
	}
	return client, ""
}

// ScheduleEntries parses persisted schedule rows, normalizing the identity
// columns the same way generated rows are built so that formatting drift in
// the stored table cannot defeat deduplication. Unreadable dates and times
// become empty strings; the caller decides what to do with them.
func (in *Ingester) ScheduleEntries(rows []store.Row) []models.ScheduleEntry {
	entries := make([]models.ScheduleEntry, 0, len(rows))
	for _, row := range rows {
		c := indexRow(row)
		entries = append(entries, models.ScheduleEntry{
			Client:      c.get(ScheduleAliases, FieldName),
			ProgramID:   NormalizeProgram(c.get(ScheduleAliases, FieldProgram)),
			Season:      NormalizeSeason(c.get(ScheduleAliases, FieldSeason)),
			ChannelID:   NormalizeChannel(c.get(ScheduleAliases, FieldChannel)),
			Date:        NormalizeDate(c.get(ScheduleAliases, FieldDate)),
			Time:        NormalizeTime(c.get(ScheduleAliases, FieldTime)),
			Type:        c.get(ScheduleAliases, FieldType),
			Advancement: NormalizeAdvancement(c.get(ScheduleAliases, FieldAdvancement)),
			Message:     rawCell(c, ScheduleAliases, FieldMessage),
			Format:      c.get(ScheduleAliases, FieldFormat),
			URL:         rawCell(c, ScheduleAliases, FieldURL),
			Sent:        c.get(ScheduleAliases, FieldSent),
		})
	}
	return entries
}

// CatalogEntries parses one program's catalog segment. Unreadable season and
// day cells default to 1.
func CatalogEntries(programID string, rows []store.Row) []models.CatalogEntry {
	entries := make([]models.CatalogEntry, 0, len(rows))
	for _, row := range rows {
		c := indexRow(row)
		entries = append(entries, models.CatalogEntry{
			ProgramID: programID,
			Season:    NormalizeSeason(c.get(CatalogAliases, FieldSeason)),
			Day:       NormalizeAdvancement(c.get(CatalogAliases, FieldDay)),
			Type:      c.get(CatalogAliases, FieldType),
			Phrase:    rawCell(c, CatalogAliases, FieldPhrase),
			Format:    c.get(CatalogAliases, FieldFormat),
			URL:       rawCell(c, CatalogAliases, FieldURL),
		})
	}
	return entries
}

// rawCell returns the cell untrimmed; authored content is copied verbatim.
func rawCell(c cells, t AliasTable, f Field) string {
	v, _ := c.first(t[f])
	return v
}
