/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package models

// SkipReason names why a client or persisted row was left out of a run.
type SkipReason string

const (
	SkipEmptyName        SkipReason = "empty_name"
	SkipEmptyChannel     SkipReason = "empty_channel"
	SkipInvalidStartDate SkipReason = "invalid_start_date"
	SkipInvalidWeekdays  SkipReason = "invalid_weekdays"
	SkipNoSlotHours      SkipReason = "no_slot_hours"
	SkipInvalidRowDate   SkipReason = "invalid_row_date"
)

// Skip records one excluded input. Row is the 1-based data row number in its
// source table, 0 when unknown.
type Skip struct {
	Reason  SkipReason
	Subject string
	Row     int
}
