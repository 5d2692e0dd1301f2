/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package models

import "time"

// The SQL backend stores cell text exactly as a spreadsheet would, so rows
// from either backend go through the same ingestion.

// ClientRecord is a row of the client table.
type ClientRecord struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"index"`
	Theme     string
	Program   string `gorm:"type:varchar(16)"`
	Season    string `gorm:"type:varchar(16)"`
	ChannelID string `gorm:"type:varchar(64)"`
	StartDate string `gorm:"type:varchar(32)"`
	Weekdays  string
	Slots     []ClientSlotRecord `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName sets the table name.
func (ClientRecord) TableName() string { return "planner_clients" }

// ClientSlotRecord is the configured hour of one message type for a client.
type ClientSlotRecord struct {
	ID       uint   `gorm:"primaryKey"`
	ClientID uint   `gorm:"uniqueIndex:idx_client_slot_type"`
	Type     string `gorm:"uniqueIndex:idx_client_slot_type;type:varchar(64)"`
	Hour     string `gorm:"type:varchar(16)"`
}

// TableName sets the table name.
func (ClientSlotRecord) TableName() string { return "planner_client_slots" }

// ScheduleRow is one published schedule line. Position keeps publish order.
type ScheduleRow struct {
	ID          uint `gorm:"primaryKey"`
	Position    int  `gorm:"index"`
	Client      string
	Program     string `gorm:"type:varchar(16)"`
	Season      string `gorm:"type:varchar(16)"`
	ChatID      string `gorm:"type:varchar(64)"`
	Date        string `gorm:"type:varchar(32);index"`
	Hour        string `gorm:"type:varchar(16)"`
	Type        string `gorm:"type:varchar(64)"`
	Advancement string `gorm:"type:varchar(16)"`
	Message     string `gorm:"type:text"`
	Format      string `gorm:"type:varchar(32)"`
	URL         string `gorm:"type:text"`
	Sent        string `gorm:"type:varchar(16)"`
}

// TableName sets the table name.
func (ScheduleRow) TableName() string { return "planner_schedule" }

// CatalogRow is one line of a program's catalog segment.
type CatalogRow struct {
	ID       uint   `gorm:"primaryKey"`
	Program  string `gorm:"type:varchar(16);index"`
	Position int
	Season   string `gorm:"type:varchar(16)"`
	Day      string `gorm:"type:varchar(16)"`
	Type     string `gorm:"type:varchar(64)"`
	Phrase   string `gorm:"type:text"`
	Format   string `gorm:"type:varchar(32)"`
	URL      string `gorm:"type:text"`
}

// TableName sets the table name.
func (CatalogRow) TableName() string { return "planner_catalog" }

// AllModels lists every table managed by migrations.
func AllModels() []any {
	return []any{
		&ClientRecord{},
		&ClientSlotRecord{},
		&ScheduleRow{},
		&CatalogRow{},
	}
}
