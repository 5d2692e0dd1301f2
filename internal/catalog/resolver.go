/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package catalog fills schedule entries with authored content.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/friendsincode/grimnir_planner/internal/ingest"
	"github.com/friendsincode/grimnir_planner/internal/models"
	"github.com/friendsincode/grimnir_planner/internal/retry"
	"github.com/friendsincode/grimnir_planner/internal/store"
	"github.com/friendsincode/grimnir_planner/internal/telemetry"
)

// Stats counts resolution outcomes for one pass.
type Stats struct {
	Resolved int // message filled from the catalog
	Missed   int // no catalog entry, left empty
	Kept     int // message already present, left untouched
	Segments int // segments loaded from the store
}

// Resolver resolves rows against catalog segments. Segments are cached for the
// lifetime of the Resolver, which is one run; a new Resolver sees fresh content.
type Resolver struct {
	store   store.CatalogStore
	policy  retry.Policy
	aliases Aliases
	logger  zerolog.Logger

	segments map[string]*Segment
}

// NewResolver constructs a resolver for one run.
func NewResolver(st store.CatalogStore, policy retry.Policy, aliases Aliases, logger zerolog.Logger) *Resolver {
	return &Resolver{
		store:    st,
		policy:   policy,
		aliases:  aliases,
		logger:   logger.With().Str("component", "catalog").Logger(),
		segments: make(map[string]*Segment),
	}
}

// Segment returns the cached segment for programID, reading it on first use.
// A program without a segment yields an empty segment, not an error.
func (r *Resolver) Segment(ctx context.Context, programID string) (*Segment, error) {
	if seg, ok := r.segments[programID]; ok {
		return seg, nil
	}

	ctx, span := telemetry.StartSpan(ctx, "catalog.read_segment")
	defer span.End()
	telemetry.AddSpanAttributes(span, map[string]any{"program_id": programID})

	rows, err := retry.Value(ctx, r.policy, "read_catalog", func(ctx context.Context) ([]store.Row, error) {
		return r.store.ReadSegment(ctx, programID)
	})
	switch {
	case errors.Is(err, store.ErrSegmentNotFound):
		r.logger.Warn().Str("program_id", programID).Msg("no catalog segment for program")
		rows = nil
	case err != nil:
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("read catalog segment %s: %w", programID, err)
	}

	seg := NewSegment(programID, ingest.CatalogEntries(programID, rows), r.aliases)
	r.segments[programID] = seg
	r.logger.Debug().Str("program_id", programID).Int("entries", seg.Len()).Msg("catalog segment loaded")
	return seg, nil
}

// Resolve fills message, format and url in place. Rows that already carry a
// message are never rewritten; only their format is normalized. Misses leave
// the message empty with the default format.
func (r *Resolver) Resolve(ctx context.Context, rows []models.ScheduleEntry) (Stats, error) {
	var st Stats
	for i := range rows {
		row := &rows[i]
		if strings.TrimSpace(row.Message) != "" {
			row.Format = NormalizeFormat(row.Format)
			st.Kept++
			continue
		}

		loaded := len(r.segments)
		seg, err := r.Segment(ctx, row.ProgramID)
		if err != nil {
			return st, err
		}
		st.Segments += len(r.segments) - loaded

		entry, ok := seg.Lookup(row.Season, row.Advancement, row.Type)
		if !ok {
			row.Message, row.Format, row.URL = "", models.DefaultFormat, ""
			st.Missed++
			r.logger.Debug().
				Str("client", row.Client).
				Str("program_id", row.ProgramID).
				Int("season", row.Season).
				Int("day", row.Advancement).
				Str("type", row.Type).
				Msg("no catalog entry")
			continue
		}
		row.Message = ComposeMessage(row.Season, row.Advancement, row.Type, entry.Phrase)
		row.Format = NormalizeFormat(entry.Format)
		row.URL = entry.URL
		st.Resolved++
	}

	telemetry.CatalogLookupsTotal.WithLabelValues("hit").Add(float64(st.Resolved))
	telemetry.CatalogLookupsTotal.WithLabelValues("miss").Add(float64(st.Missed))
	telemetry.CatalogLookupsTotal.WithLabelValues("kept").Add(float64(st.Kept))
	return st, nil
}

// ComposeMessage renders the published message text.
func ComposeMessage(season, day int, typ, phrase string) string {
	return fmt.Sprintf("Season %d - Day %d : \n%s : %s", season, day, typ, phrase)
}

// NormalizeFormat lowercases and trims a format, defaulting to "texte".
func NormalizeFormat(format string) string {
	f := strings.ToLower(strings.TrimSpace(format))
	if f == "" {
		return models.DefaultFormat
	}
	return f
}
