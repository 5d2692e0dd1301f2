/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package sheets keeps the planner tables in Google Sheets workbooks.
//
// The catalog workbook holds one tab per program code.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/friendsincode/grimnir_planner/internal/retry"
	"github.com/friendsincode/grimnir_planner/internal/store"
)

// Config names the workbooks and tabs.
type Config struct {
	CredentialsFile       string
	ClientsSpreadsheetID  string
	ClientsSheet          string
	ScheduleSpreadsheetID string
	ScheduleSheet         string
	CatalogSpreadsheetID  string
}

// valuesAPI is the subset of the Sheets values endpoint the store uses.
type valuesAPI interface {
	Get(ctx context.Context, spreadsheetID, rng string) ([][]any, error)
	Update(ctx context.Context, spreadsheetID, rng string, values [][]any) error
	Clear(ctx context.Context, spreadsheetID, rng string) error
}

// Store implements the store interfaces on top of spreadsheet tabs.
type Store struct {
	api    valuesAPI
	cfg    Config
	logger zerolog.Logger
}

var (
	_ store.ClientStore   = (*Store)(nil)
	_ store.ScheduleStore = (*Store)(nil)
	_ store.CatalogStore  = (*Store)(nil)
)

// New authenticates with a service account key file and returns a Store.
func New(ctx context.Context, cfg Config, logger zerolog.Logger) (*Store, error) {
	opts := []option.ClientOption{option.WithScopes(sheetsapi.SpreadsheetsScope)}
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	svc, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return newStore(serviceAPI{svc: svc}, cfg, logger), nil
}

func newStore(api valuesAPI, cfg Config, logger zerolog.Logger) *Store {
	return &Store{
		api:    api,
		cfg:    cfg,
		logger: logger.With().Str("component", "sheets_store").Logger(),
	}
}

// ReadClients returns the client tab as header-keyed rows.
func (s *Store) ReadClients(ctx context.Context) ([]store.Row, error) {
	return s.readTable(ctx, s.cfg.ClientsSpreadsheetID, s.cfg.ClientsSheet)
}

// ReadSchedule returns the published schedule tab.
func (s *Store) ReadSchedule(ctx context.Context) ([]store.Row, error) {
	return s.readTable(ctx, s.cfg.ScheduleSpreadsheetID, s.cfg.ScheduleSheet)
}

// ReplaceSchedule overwrites the schedule tab from A1, then clears whatever
// remains below the new last row and right of the header's last column.
func (s *Store) ReplaceSchedule(ctx context.Context, header []string, rows [][]string) error {
	values := make([][]any, 0, len(rows)+1)
	values = append(values, toCells(header))
	for _, line := range rows {
		values = append(values, toCells(line))
	}

	tab := s.cfg.ScheduleSheet
	if err := s.api.Update(ctx, s.cfg.ScheduleSpreadsheetID, a1(tab, "A1"), values); err != nil {
		return classify(fmt.Errorf("write %s: %w", tab, err))
	}
	tail := fmt.Sprintf("A%d:ZZ", len(values)+1)
	if err := s.api.Clear(ctx, s.cfg.ScheduleSpreadsheetID, a1(tab, tail)); err != nil {
		return classify(fmt.Errorf("clear %s tail: %w", tab, err))
	}
	side := fmt.Sprintf("%s1:ZZ%d", columnName(len(header)+1), len(values))
	if err := s.api.Clear(ctx, s.cfg.ScheduleSpreadsheetID, a1(tab, side)); err != nil {
		return classify(fmt.Errorf("clear %s columns: %w", tab, err))
	}
	s.logger.Debug().Str("sheet", tab).Int("rows", len(rows)).Msg("schedule sheet replaced")
	return nil
}

// columnName converts a 1-based column index to its A1 letters.
func columnName(n int) string {
	name := ""
	for n > 0 {
		n--
		name = string(rune('A'+n%26)) + name
		n /= 26
	}
	return name
}

// ReadSegment reads the tab named after the program code.
func (s *Store) ReadSegment(ctx context.Context, programID string) ([]store.Row, error) {
	rows, err := s.readTable(ctx, s.cfg.CatalogSpreadsheetID, programID)
	if err != nil {
		if isMissingRange(err) {
			return nil, fmt.Errorf("program %s: %w", programID, store.ErrSegmentNotFound)
		}
		return nil, err
	}
	return rows, nil
}

func (s *Store) readTable(ctx context.Context, spreadsheetID, tab string) ([]store.Row, error) {
	values, err := s.api.Get(ctx, spreadsheetID, a1(tab, ""))
	if err != nil {
		return nil, classify(fmt.Errorf("read %s: %w", tab, err))
	}
	if len(values) == 0 {
		return nil, nil
	}
	header := make([]string, len(values[0]))
	for i, v := range values[0] {
		header[i] = strings.TrimSpace(cellString(v))
	}
	lines := make([][]string, 0, len(values)-1)
	for _, raw := range values[1:] {
		line := make([]string, len(raw))
		for i, v := range raw {
			line[i] = cellString(v)
		}
		lines = append(lines, line)
	}
	return store.RowsFromValues(header, lines), nil
}

// a1 builds an A1 range on a quoted tab name.
func a1(tab, cells string) string {
	quoted := "'" + strings.ReplaceAll(tab, "'", "''") + "'"
	if cells == "" {
		return quoted
	}
	return quoted + "!" + cells
}

func toCells(line []string) []any {
	out := make([]any, len(line))
	for i, v := range line {
		out[i] = v
	}
	return out
}

func cellString(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(c)
	default:
		return fmt.Sprint(c)
	}
}

// classify marks quota and server errors, and network timeouts, as retriable.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway,
			http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			if after, ok := retryAfter(gerr.Header); ok {
				return retry.RetryAfter(err, after)
			}
			return retry.Transient(err)
		}
		return err
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return retry.Transient(err)
	}
	return err
}

func retryAfter(h http.Header) (time.Duration, bool) {
	if h == nil {
		return 0, false
	}
	v := strings.TrimSpace(h.Get("Retry-After"))
	if v == "" {
		return 0, false
	}
	if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second, true
	}
	if at, err := http.ParseTime(v); err == nil {
		if d := time.Until(at); d > 0 {
			return d, true
		}
	}
	return 0, false
}

// isMissingRange reports the 400 the API returns for a tab that does not exist.
func isMissingRange(err error) bool {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) || gerr.Code != http.StatusBadRequest {
		return false
	}
	return strings.Contains(gerr.Message, "Unable to parse range")
}

type serviceAPI struct {
	svc *sheetsapi.Service
}

func (a serviceAPI) Get(ctx context.Context, spreadsheetID, rng string) ([][]any, error) {
	resp, err := a.svc.Spreadsheets.Values.Get(spreadsheetID, rng).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	values := make([][]any, len(resp.Values))
	for i, row := range resp.Values {
		values[i] = []any(row)
	}
	return values, nil
}

func (a serviceAPI) Update(ctx context.Context, spreadsheetID, rng string, values [][]any) error {
	body := &sheetsapi.ValueRange{Values: make([][]interface{}, len(values))}
	for i, row := range values {
		body.Values[i] = row
	}
	_, err := a.svc.Spreadsheets.Values.Update(spreadsheetID, rng, body).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	return err
}

func (a serviceAPI) Clear(ctx context.Context, spreadsheetID, rng string) error {
	_, err := a.svc.Spreadsheets.Values.Clear(spreadsheetID, rng, &sheetsapi.ClearValuesRequest{}).
		Context(ctx).
		Do()
	return err
}
