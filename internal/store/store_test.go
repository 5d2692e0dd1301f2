/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package store

import "testing"

func TestRowsFromValuesPadsAndSkipsBlankLines(t *testing.T) {
	header := []string{"client", "programme", "", "saison"}
	values := [][]string{
		{"Acme", "7"},
		{"", "", "", ""},
		{"Beta", "12", "ignored", "2", "extra"},
	}

	rows := RowsFromValues(header, values)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0]["saison"] != "" || rows[0]["programme"] != "7" {
		t.Fatalf("unexpected first row %v", rows[0])
	}
	if _, ok := rows[1][""]; ok {
		t.Fatal("blank header columns must be dropped")
	}
	if rows[1]["saison"] != "2" {
		t.Fatalf("unexpected second row %v", rows[1])
	}
}
