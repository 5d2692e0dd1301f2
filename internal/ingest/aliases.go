/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package ingest

import (
	"strings"

	"github.com/friendsincode/grimnir_planner/internal/store"
	"github.com/friendsincode/grimnir_planner/internal/textnorm"
)

// Field is a logical input column.
type Field string

const (
	FieldName     Field = "name"
	FieldTheme    Field = "theme"
	FieldChannel  Field = "channel"
	FieldProgram  Field = "program"
	FieldSeason   Field = "season"
	FieldStart    Field = "start_date"
	FieldWeekdays Field = "weekdays"

	FieldDate        Field = "date"
	FieldTime        Field = "time"
	FieldType        Field = "type"
	FieldAdvancement Field = "advancement"
	FieldMessage     Field = "message"
	FieldFormat      Field = "format"
	FieldURL         Field = "url"
	FieldSent        Field = "sent"

	FieldDay    Field = "day"
	FieldPhrase Field = "phrase"
)

// AliasTable maps a field to the header labels that may carry it, in
// preference order. Labels are compared folded (case, accents, underscores).
type AliasTable map[Field][]string

// ClientAliases covers the French sheet headers and their English variants.
var ClientAliases = AliasTable{
	FieldName:     {"Client", "Nom", "Nom Client", "Name", "Client Name"},
	FieldTheme:    {"Thème", "Thématique", "Theme", "Topic"},
	FieldChannel:  {"Canal ID", "Canal", "Chat ID", "Channel ID", "Channel"},
	FieldProgram:  {"Programme", "Code Programme", "Program", "Program ID"},
	FieldSeason:   {"Saison", "Season"},
	FieldStart:    {"Date de Démarrage", "Date de Début", "Démarrage", "Start Date", "Start"},
	FieldWeekdays: {"Jours de Diffusion", "Jours", "Broadcast Days", "Weekdays", "Days"},
}

// ScheduleAliases covers the persisted schedule columns.
var ScheduleAliases = AliasTable{
	FieldName:        {"client"},
	FieldProgram:     {"programme", "program"},
	FieldSeason:      {"saison", "season"},
	FieldChannel:     {"chat_id", "channel_id", "canal id"},
	FieldDate:        {"date"},
	FieldTime:        {"heure", "time", "hour"},
	FieldType:        {"type"},
	FieldAdvancement: {"avancement", "advancement", "jour", "day"},
	FieldMessage:     {"message"},
	FieldFormat:      {"format"},
	FieldURL:         {"url"},
	FieldSent:        {"envoye", "envoyé", "sent"},
}

// CatalogAliases covers catalog segment columns.
var CatalogAliases = AliasTable{
	FieldSeason: {"Saison", "Season"},
	FieldDay:    {"Jour", "Day"},
	FieldType:   {"Type"},
	FieldPhrase: {"Phrase", "Message", "Texte", "Text"},
	FieldFormat: {"Format"},
	FieldURL:    {"Url", "Lien", "Link"},
}

// SlotHourLabels lists the header labels that may carry the hour of a slot type.
func SlotHourLabels(slotType string) []string {
	return []string{
		"Heure " + slotType,
		"Heure de " + slotType,
		"Hour " + slotType,
		slotType + " Hour",
		slotType,
	}
}

func headerKey(label string) string {
	return textnorm.Fold(strings.NewReplacer("_", " ", "-", " ").Replace(label))
}

// cells is a row indexed by folded header label.
type cells map[string]string

func indexRow(row store.Row) cells {
	c := make(cells, len(row))
	for k, v := range row {
		key := headerKey(k)
		if _, dup := c[key]; dup && v == "" {
			continue
		}
		c[key] = v
	}
	return c
}

func (c cells) first(labels []string) (string, bool) {
	for _, l := range labels {
		if v, ok := c[headerKey(l)]; ok {
			return v, true
		}
	}
	return "", false
}

func (c cells) get(t AliasTable, f Field) string {
	v, _ := c.first(t[f])
	return strings.TrimSpace(v)
}
