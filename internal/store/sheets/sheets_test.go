/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package sheets

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/api/googleapi"

	"github.com/friendsincode/grimnir_planner/internal/models"
	"github.com/friendsincode/grimnir_planner/internal/retry"
	"github.com/friendsincode/grimnir_planner/internal/store"
)

type call struct {
	op     string
	sheet  string
	rng    string
	values [][]any
}

type fakeValues struct {
	tabs  map[string][][]any
	errs  map[string]error
	calls []call
}

func (f *fakeValues) Get(_ context.Context, id, rng string) ([][]any, error) {
	f.calls = append(f.calls, call{op: "get", sheet: id, rng: rng})
	if err := f.errs[rng]; err != nil {
		return nil, err
	}
	return f.tabs[rng], nil
}

func (f *fakeValues) Update(_ context.Context, id, rng string, values [][]any) error {
	f.calls = append(f.calls, call{op: "update", sheet: id, rng: rng, values: values})
	return f.errs["update"]
}

func (f *fakeValues) Clear(_ context.Context, id, rng string) error {
	f.calls = append(f.calls, call{op: "clear", sheet: id, rng: rng})
	return f.errs["clear"]
}

var testConfig = Config{
	ClientsSpreadsheetID:  "clients",
	ClientsSheet:          "Clients",
	ScheduleSpreadsheetID: "planning",
	ScheduleSheet:         "Planning",
	CatalogSpreadsheetID:  "programs",
}

func TestReadClientsConvertsCells(t *testing.T) {
	api := &fakeValues{tabs: map[string][][]any{
		"'Clients'": {
			{"Client", " Canal ID ", "Saison"},
			{"Acme", float64(-1001), float64(2)},
			{},
			{"Short"},
		},
	}}
	s := newStore(api, testConfig, zerolog.Nop())

	rows, err := s.ReadClients(context.Background())
	if err != nil {
		t.Fatalf("read clients: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows (blank row skipped), got %d: %v", len(rows), rows)
	}
	if rows[0]["Canal ID"] != "-1001" || rows[0]["Saison"] != "2" {
		t.Fatalf("unexpected row: %v", rows[0])
	}
	if rows[1]["Client"] != "Short" || rows[1]["Saison"] != "" {
		t.Fatalf("short row not padded: %v", rows[1])
	}
}

func TestReplaceScheduleWritesThenTrims(t *testing.T) {
	api := &fakeValues{}
	s := newStore(api, testConfig, zerolog.Nop())

	rows := [][]string{
		{"Acme", "007", "1", "-1001", "2024-01-01", "08:00:00", "Conseil", "1", "m", "texte", "", "non"},
	}
	if err := s.ReplaceSchedule(context.Background(), models.ScheduleHeader, rows); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if len(api.calls) != 3 {
		t.Fatalf("expected update then two clears, got %+v", api.calls)
	}
	update, clear, side := api.calls[0], api.calls[1], api.calls[2]
	if update.op != "update" || update.sheet != "planning" || update.rng != "'Planning'!A1" {
		t.Fatalf("unexpected update call: %+v", update)
	}
	if len(update.values) != 2 || update.values[0][0] != "client" || update.values[1][3] != "-1001" {
		t.Fatalf("unexpected written values: %v", update.values)
	}
	if clear.op != "clear" || clear.rng != "'Planning'!A3:ZZ" {
		t.Fatalf("unexpected clear call: %+v", clear)
	}
	// Cells right of the 12 schedule columns, e.g. a manual notes column.
	if side.op != "clear" || side.rng != "'Planning'!M1:ZZ2" {
		t.Fatalf("unexpected column clear call: %+v", side)
	}
}

func TestColumnName(t *testing.T) {
	for n, want := range map[int]string{1: "A", 12: "L", 13: "M", 26: "Z", 27: "AA", 702: "ZZ"} {
		if got := columnName(n); got != want {
			t.Fatalf("columnName(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestReplaceScheduleQuotaErrorIsTransient(t *testing.T) {
	quota := &googleapi.Error{
		Code:   http.StatusTooManyRequests,
		Header: http.Header{"Retry-After": []string{"7"}},
	}
	api := &fakeValues{errs: map[string]error{"update": quota}}
	s := newStore(api, testConfig, zerolog.Nop())

	err := s.ReplaceSchedule(context.Background(), models.ScheduleHeader, nil)
	if !retry.IsTransient(err) {
		t.Fatalf("expected transient error, got %v", err)
	}
	var hint retry.RetryAfterError
	if !errors.As(err, &hint) || hint.RetryAfter() != 7*time.Second {
		t.Fatalf("expected 7s retry hint, got %v", err)
	}
	if len(api.calls) != 1 {
		t.Fatalf("clear must not run after a failed write: %+v", api.calls)
	}
}

func TestReadSegmentMissingTab(t *testing.T) {
	api := &fakeValues{
		tabs: map[string][][]any{
			"'007'": {{"Saison", "Jour", "Type", "Phrase"}, {"1", "1", "Conseil", "Bois"}},
		},
		errs: map[string]error{
			"'999'": &googleapi.Error{Code: http.StatusBadRequest, Message: "Unable to parse range: '999'"},
			"'500'": &googleapi.Error{Code: http.StatusForbidden, Message: "The caller does not have permission"},
		},
	}
	s := newStore(api, testConfig, zerolog.Nop())
	ctx := context.Background()

	rows, err := s.ReadSegment(ctx, "007")
	if err != nil || len(rows) != 1 || rows[0]["Phrase"] != "Bois" {
		t.Fatalf("read segment: rows=%v err=%v", rows, err)
	}
	if api.calls[0].sheet != "programs" {
		t.Fatalf("segment read from wrong workbook: %+v", api.calls[0])
	}

	if _, err := s.ReadSegment(ctx, "999"); !errors.Is(err, store.ErrSegmentNotFound) {
		t.Fatalf("expected ErrSegmentNotFound, got %v", err)
	}
	_, err = s.ReadSegment(ctx, "500")
	if err == nil || errors.Is(err, store.ErrSegmentNotFound) || retry.IsTransient(err) {
		t.Fatalf("permission error must be fatal, got %v", err)
	}
}

func TestClassify(t *testing.T) {
	for _, code := range []int{429, 500, 502, 503, 504} {
		if !retry.IsTransient(classify(&googleapi.Error{Code: code})) {
			t.Fatalf("code %d should be transient", code)
		}
	}
	for _, code := range []int{400, 401, 403, 404} {
		if retry.IsTransient(classify(&googleapi.Error{Code: code})) {
			t.Fatalf("code %d should be fatal", code)
		}
	}
}

func TestA1QuotesTabNames(t *testing.T) {
	if got := a1("Rock'n Roll", "A1"); got != "'Rock''n Roll'!A1" {
		t.Fatalf("a1 = %q", got)
	}
}
