/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package ingest

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/friendsincode/grimnir_planner/internal/models"
	"github.com/friendsincode/grimnir_planner/internal/store"
)

var slotTypes = []string{"Conseil", "Aphorisme", "Réflexion"}

func TestClientsNormalizesSheetRow(t *testing.T) {
	in := New(slotTypes, zerolog.Nop())
	rows := []store.Row{{
		"Client":             " Acme ",
		"Thème":              "Sommeil",
		"Canal ID":           "-100200300.0",
		"Programme":          "7",
		"Saison":             "2",
		"Date de Démarrage":  "01/01/2024",
		"Jours de Diffusion": "lundi, mercredi",
		"Heure Conseil":      "9h",
		"Heure Aphorisme":    "",
		"Heure Réflexion":    "18:30",
	}}

	clients, skips := in.Clients(rows)
	if len(skips) != 0 {
		t.Fatalf("unexpected skips %v", skips)
	}
	if len(clients) != 1 {
		t.Fatalf("got %d clients", len(clients))
	}
	c := clients[0]
	if c.Name != "Acme" || c.ProgramID != "007" || c.Season != 2 || c.ChannelID != "-100200300" {
		t.Fatalf("unexpected client %+v", c)
	}
	if !c.StartDate.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("start date = %v", c.StartDate)
	}
	if c.Weekdays != models.NewWeekdays(time.Monday, time.Wednesday) {
		t.Fatalf("weekdays = %s", c.Weekdays)
	}
	want := []models.Slot{{Type: "Conseil", Time: "09:00:00"}, {Type: "Aphorisme", Time: ""}, {Type: "Réflexion", Time: "18:30:00"}}
	for i, s := range want {
		if c.Slots[i] != s {
			t.Fatalf("slot %d = %+v, want %+v", i, c.Slots[i], s)
		}
	}
}

func TestClientsAcceptsEnglishAndUnaccentedHeaders(t *testing.T) {
	in := New(slotTypes, zerolog.Nop())
	rows := []store.Row{{
		"name":             "Beta",
		"channel_id":       "55",
		"program":          "12",
		"start date":       "2024-02-01",
		"weekdays":         "",
		"Heure Reflexion":  "07:00",
		"heure de conseil": "08:00",
	}}
	clients, skips := in.Clients(rows)
	if len(skips) != 0 || len(clients) != 1 {
		t.Fatalf("clients %v skips %v", clients, skips)
	}
	c := clients[0]
	if c.Season != 1 || !c.Weekdays.IsDaily() {
		t.Fatalf("defaults not applied: %+v", c)
	}
	if c.Slots[0].Time != "08:00:00" || c.Slots[2].Time != "07:00:00" {
		t.Fatalf("slots = %+v", c.Slots)
	}
}

func TestClientsReportsSkipReasons(t *testing.T) {
	in := New(slotTypes, zerolog.Nop())
	base := func() store.Row {
		return store.Row{
			"Client": "X", "Canal ID": "1", "Programme": "1",
			"Date de Démarrage": "01/01/2024", "Heure Conseil": "09:00",
		}
	}
	noName := base()
	noName["Client"] = "  "
	noChannel := base()
	noChannel["Canal ID"] = ""
	badStart := base()
	badStart["Date de Démarrage"] = "bientôt"
	badDays := base()
	badDays["Jours de Diffusion"] = "jamais"
	noHours := base()
	noHours["Heure Conseil"] = "n/a"

	_, skips := in.Clients([]store.Row{noName, noChannel, badStart, badDays, noHours, base()})
	want := []models.SkipReason{
		models.SkipEmptyName,
		models.SkipEmptyChannel,
		models.SkipInvalidStartDate,
		models.SkipInvalidWeekdays,
		models.SkipNoSlotHours,
	}
	if len(skips) != len(want) {
		t.Fatalf("got %d skips, want %d: %v", len(skips), len(want), skips)
	}
	for i, r := range want {
		if skips[i].Reason != r || skips[i].Row != i+1 {
			t.Fatalf("skip %d = %+v, want reason %s", i, skips[i], r)
		}
	}
}

func TestScheduleEntriesNormalizesIdentityColumns(t *testing.T) {
	in := New(slotTypes, zerolog.Nop())
	rows := []store.Row{{
		"client": "Acme", "programme": "7", "saison": "2", "chat_id": "42.0",
		"date": "2024-01-03", "heure": "9:00", "type": " Conseil ", "avancement": "3",
		"message": "Bonjour ", "format": "Texte", "url": "", "envoye": "oui",
	}, {
		"client": "Acme", "date": "hier", "heure": "??",
	}}
	entries := in.ScheduleEntries(rows)
	if len(entries) != 2 {
		t.Fatalf("got %d entries", len(entries))
	}
	e := entries[0]
	if e.ProgramID != "007" || e.ChannelID != "42" || e.Time != "09:00:00" || e.Type != "Conseil" || e.Advancement != 3 {
		t.Fatalf("unexpected entry %+v", e)
	}
	if e.Message != "Bonjour " || e.Sent != "oui" {
		t.Fatalf("content not preserved: %+v", e)
	}
	if entries[1].Date != "" || entries[1].Time != "" {
		t.Fatalf("unreadable cells should be empty: %+v", entries[1])
	}
}

func TestCatalogEntriesDefaults(t *testing.T) {
	entries := CatalogEntries("007", []store.Row{
		{"Saison": "2", "Jour": "5", "Type": "3-Réflexion", "Phrase": "Respire.", "Format": " Image ", "Url": "https://x/y.png"},
		{"Saison": "", "Jour": "n/a", "Type": "1-Aphorisme", "Phrase": "Rien."},
	})
	if entries[0].Season != 2 || entries[0].Day != 5 || entries[0].Format != "Image" || entries[0].URL != "https://x/y.png" {
		t.Fatalf("unexpected %+v", entries[0])
	}
	if entries[1].Season != 1 || entries[1].Day != 1 {
		t.Fatalf("defaults not applied %+v", entries[1])
	}
}
