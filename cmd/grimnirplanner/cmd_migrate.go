/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/friendsincode/grimnir_planner/internal/db"
	"github.com/friendsincode/grimnir_planner/internal/ingest"
	"github.com/friendsincode/grimnir_planner/internal/models"
	"github.com/friendsincode/grimnir_planner/internal/store/objectstore"
	"github.com/friendsincode/grimnir_planner/internal/store/sqlstore"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the planner tables in the SQL database",
	RunE:  runMigrate,
}

var importCatalogCmd = &cobra.Command{
	Use:   "import-catalog <program> <file.csv>",
	Short: "Replace one program's catalog segment in the SQL database from a CSV file",
	Long: `Loads a catalog CSV (Saison, Jour, Type, Phrase, Format, Url) into the SQL
catalog table, replacing any rows already stored for the program.

Examples:
  grimnirplanner import-catalog 007 programme-007.csv`,
	Args: cobra.ExactArgs(2),
	RunE: runImportCatalog,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(importCatalogCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}
	database, err := connectSQL()
	if err != nil {
		return err
	}
	defer db.Close(database)

	if err := db.Migrate(database); err != nil {
		return err
	}
	logger.Info().Str("backend", string(cfg.DBBackend)).Msg("database migrated")
	return nil
}

func runImportCatalog(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}
	programID, path := ingest.NormalizeProgram(args[0]), args[1]

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read catalog: %w", err)
	}
	parsed, err := objectstore.ParseCSV(data)
	if err != nil {
		return fmt.Errorf("parse catalog: %w", err)
	}

	rows := make([]models.CatalogRow, 0, len(parsed))
	for _, r := range parsed {
		rows = append(rows, models.CatalogRow{
			Season: r[models.CatalogColSeason],
			Day:    r[models.CatalogColDay],
			Type:   r[models.CatalogColType],
			Phrase: r[models.CatalogColPhrase],
			Format: r[models.CatalogColFormat],
			URL:    r[models.CatalogColURL],
		})
	}

	database, err := connectSQL()
	if err != nil {
		return err
	}
	defer db.Close(database)

	if err := sqlstore.New(database).SaveSegment(context.Background(), programID, rows); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d catalog rows for program %s\n", len(rows), programID)
	return nil
}

func connectSQL() (*gorm.DB, error) {
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("PLANNER_DB_DSN must be set")
	}
	database, err := db.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return database, nil
}
