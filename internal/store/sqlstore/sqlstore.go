/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package sqlstore keeps the planner tables in a SQL database through gorm.
package sqlstore

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/friendsincode/grimnir_planner/internal/models"
	"github.com/friendsincode/grimnir_planner/internal/retry"
	"github.com/friendsincode/grimnir_planner/internal/store"
)

// Client table labels emitted by ReadClients. They match the spreadsheet
// headers so ingestion treats both backends alike.
const (
	labelName     = "Client"
	labelTheme    = "Thème"
	labelChannel  = "Canal ID"
	labelProgram  = "Programme"
	labelSeason   = "Saison"
	labelStart    = "Date de Démarrage"
	labelWeekdays = "Jours de Diffusion"
)

const insertBatchSize = 200

// Store implements store.ClientStore, store.ScheduleStore and store.CatalogStore.
type Store struct {
	db *gorm.DB
}

var (
	_ store.ClientStore   = (*Store)(nil)
	_ store.ScheduleStore = (*Store)(nil)
	_ store.CatalogStore  = (*Store)(nil)
)

// New wraps an open database handle.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// ReadClients returns one row per client, with one "Heure <type>" cell per slot.
func (s *Store) ReadClients(ctx context.Context) ([]store.Row, error) {
	var records []models.ClientRecord
	err := s.db.WithContext(ctx).
		Preload("Slots").
		Order("id ASC").
		Find(&records).Error
	if err != nil {
		return nil, classify(fmt.Errorf("load clients: %w", err))
	}

	rows := make([]store.Row, 0, len(records))
	for _, rec := range records {
		row := store.Row{
			labelName:     rec.Name,
			labelTheme:    rec.Theme,
			labelChannel:  rec.ChannelID,
			labelProgram:  rec.Program,
			labelSeason:   rec.Season,
			labelStart:    rec.StartDate,
			labelWeekdays: rec.Weekdays,
		}
		for _, slot := range rec.Slots {
			row["Heure "+slot.Type] = slot.Hour
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReadSchedule returns the published schedule in publish order.
func (s *Store) ReadSchedule(ctx context.Context) ([]store.Row, error) {
	var records []models.ScheduleRow
	err := s.db.WithContext(ctx).
		Order("position ASC").
		Order("id ASC").
		Find(&records).Error
	if err != nil {
		return nil, classify(fmt.Errorf("load schedule: %w", err))
	}

	rows := make([]store.Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, store.Row{
			models.ColClient:      rec.Client,
			models.ColProgram:     rec.Program,
			models.ColSeason:      rec.Season,
			models.ColChannel:     rec.ChatID,
			models.ColDate:        rec.Date,
			models.ColTime:        rec.Hour,
			models.ColType:        rec.Type,
			models.ColAdvancement: rec.Advancement,
			models.ColMessage:     rec.Message,
			models.ColFormat:      rec.Format,
			models.ColURL:         rec.URL,
			models.ColSent:        rec.Sent,
		})
	}
	return rows, nil
}

// ReplaceSchedule swaps the whole table inside one transaction, so readers
// never observe a partially written schedule.
func (s *Store) ReplaceSchedule(ctx context.Context, header []string, rows [][]string) error {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	cell := func(line []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(line) {
			return ""
		}
		return line[i]
	}

	records := make([]models.ScheduleRow, 0, len(rows))
	for pos, line := range rows {
		records = append(records, models.ScheduleRow{
			Position:    pos,
			Client:      cell(line, models.ColClient),
			Program:     cell(line, models.ColProgram),
			Season:      cell(line, models.ColSeason),
			ChatID:      cell(line, models.ColChannel),
			Date:        cell(line, models.ColDate),
			Hour:        cell(line, models.ColTime),
			Type:        cell(line, models.ColType),
			Advancement: cell(line, models.ColAdvancement),
			Message:     cell(line, models.ColMessage),
			Format:      cell(line, models.ColFormat),
			URL:         cell(line, models.ColURL),
			Sent:        cell(line, models.ColSent),
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.ScheduleRow{}).Error; err != nil {
			return fmt.Errorf("clear schedule: %w", err)
		}
		if len(records) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(&records, insertBatchSize).Error; err != nil {
			return fmt.Errorf("insert schedule: %w", err)
		}
		return nil
	})
	return classify(err)
}

// ReadSegment returns the catalog rows of one program in authoring order.
func (s *Store) ReadSegment(ctx context.Context, programID string) ([]store.Row, error) {
	var records []models.CatalogRow
	err := s.db.WithContext(ctx).
		Where("program = ?", programID).
		Order("position ASC").
		Order("id ASC").
		Find(&records).Error
	if err != nil {
		return nil, classify(fmt.Errorf("load catalog %s: %w", programID, err))
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("program %s: %w", programID, store.ErrSegmentNotFound)
	}

	rows := make([]store.Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, store.Row{
			models.CatalogColSeason: rec.Season,
			models.CatalogColDay:    rec.Day,
			models.CatalogColType:   rec.Type,
			models.CatalogColPhrase: rec.Phrase,
			models.CatalogColFormat: rec.Format,
			models.CatalogColURL:    rec.URL,
		})
	}
	return rows, nil
}

// SaveClient inserts or updates a client together with its slots.
func (s *Store) SaveClient(ctx context.Context, rec *models.ClientRecord) error {
	return classify(s.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(rec).Error)
}

// SaveSegment replaces the catalog rows of one program.
func (s *Store) SaveSegment(ctx context.Context, programID string, rows []models.CatalogRow) error {
	for i := range rows {
		rows[i].ID = 0
		rows[i].Program = programID
		rows[i].Position = i
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("program = ?", programID).Delete(&models.CatalogRow{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(&rows, insertBatchSize).Error
	})
	if err != nil {
		return classify(fmt.Errorf("save catalog %s: %w", programID, err))
	}
	return nil
}

// classify marks connection-level failures as retriable.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, context.DeadlineExceeded) {
		return retry.Transient(err)
	}
	return err
}
