/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/friendsincode/grimnir_planner/internal/config"
	"github.com/friendsincode/grimnir_planner/internal/db"
	"github.com/friendsincode/grimnir_planner/internal/retry"
	"github.com/friendsincode/grimnir_planner/internal/scheduler"
	"github.com/friendsincode/grimnir_planner/internal/store/objectstore"
	"github.com/friendsincode/grimnir_planner/internal/store/sheets"
	"github.com/friendsincode/grimnir_planner/internal/store/sqlstore"
)

// openStores connects the configured backends. The returned cleanup closes
// whatever was opened.
func openStores(ctx context.Context) (scheduler.Stores, func(), error) {
	var (
		stores   scheduler.Stores
		database *gorm.DB
		sheet    *sheets.Store
		err      error
	)
	cleanup := func() {
		if database != nil {
			if err := db.Close(database); err != nil {
				logger.Error().Err(err).Msg("failed to close database")
			}
		}
	}

	if cfg.UsesSQL() {
		database, err = db.Connect(cfg)
		if err != nil {
			return stores, cleanup, fmt.Errorf("connect database: %w", err)
		}
	}
	if cfg.StoreBackend == config.StoreSheets || cfg.CatalogBackend == config.StoreSheets {
		sheet, err = sheets.New(ctx, sheets.Config{
			CredentialsFile:       cfg.GoogleCredentialsFile,
			ClientsSpreadsheetID:  cfg.ClientsSpreadsheetID,
			ClientsSheet:          cfg.ClientsSheet,
			ScheduleSpreadsheetID: cfg.ScheduleSpreadsheetID,
			ScheduleSheet:         cfg.ScheduleSheet,
			CatalogSpreadsheetID:  cfg.CatalogSpreadsheetID,
		}, logger)
		if err != nil {
			return stores, cleanup, err
		}
	}

	switch cfg.StoreBackend {
	case config.StoreSQL:
		rows := sqlstore.New(database)
		stores.Clients, stores.Schedule = rows, rows
	default:
		stores.Clients, stores.Schedule = sheet, sheet
	}

	switch cfg.CatalogBackend {
	case config.StoreSQL:
		stores.Catalog = sqlstore.New(database)
	case config.StoreS3:
		objects, err := objectstore.New(ctx, objectstore.Config{
			Bucket:          cfg.S3Bucket,
			Prefix:          cfg.S3Prefix,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			UsePathStyle:    cfg.S3UsePathStyle,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
		}, logger)
		if err != nil {
			return stores, cleanup, err
		}
		stores.Catalog = objects
	default:
		stores.Catalog = sheet
	}
	return stores, cleanup, nil
}

func retryPolicy() retry.Policy {
	return retry.Policy{
		MaxAttempts: cfg.RetryMaxAttempts,
		Base:        cfg.RetryBase,
		MaxDelay:    cfg.RetryMaxDelay,
		Jitter:      cfg.RetryJitter,
		Logger:      logger,
	}
}
