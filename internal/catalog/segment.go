/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package catalog

import "github.com/friendsincode/grimnir_planner/internal/models"

type lookupKey struct {
	season int
	day    int
	typ    string
}

// Segment is one program's catalog, indexed for lookup.
type Segment struct {
	ProgramID string
	entries   []models.CatalogEntry
	index     map[lookupKey]int
	aliases   Aliases
}

// NewSegment indexes entries. When several entries share a key the first wins.
func NewSegment(programID string, entries []models.CatalogEntry, aliases Aliases) *Segment {
	s := &Segment{
		ProgramID: programID,
		entries:   entries,
		index:     make(map[lookupKey]int, len(entries)),
		aliases:   aliases,
	}
	for i, e := range entries {
		k := lookupKey{season: e.Season, day: e.Day, typ: aliases.Key(e.Type)}
		if _, ok := s.index[k]; !ok {
			s.index[k] = i
		}
	}
	return s
}

// Lookup finds the entry for (season, day, type). Type labels match after case
// folding, accent stripping, ordinal prefix removal and alias mapping.
func (s *Segment) Lookup(season, day int, typ string) (models.CatalogEntry, bool) {
	if s == nil {
		return models.CatalogEntry{}, false
	}
	i, ok := s.index[lookupKey{season: season, day: day, typ: s.aliases.Key(typ)}]
	if !ok {
		return models.CatalogEntry{}, false
	}
	return s.entries[i], true
}

// Len is the number of catalog entries.
func (s *Segment) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}
