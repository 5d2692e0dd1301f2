/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package models

// Catalog segment columns, as authored in the programs workbook.
const (
	CatalogColSeason = "Saison"
	CatalogColDay    = "Jour"
	CatalogColType   = "Type"
	CatalogColPhrase = "Phrase"
	CatalogColFormat = "Format"
	CatalogColURL    = "Url"
)

// CatalogHeader is the column order of a catalog segment.
var CatalogHeader = []string{
	CatalogColSeason, CatalogColDay, CatalogColType,
	CatalogColPhrase, CatalogColFormat, CatalogColURL,
}

// CatalogEntry is one authored phrase for (program, season, day, type).
type CatalogEntry struct {
	ProgramID string
	Season    int
	Day       int
	Type      string
	Phrase    string
	Format    string
	URL       string
}
