// field.go
//
// A scalable, high performance drop-in replacement for the agri-monitor nextjs data service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of fieldwise.
// fieldwise is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// fieldwise is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with fieldwise.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package models

import (
	"time"
)

// Field represents a user-owned plot of land under monitoring.
// Two fields with the same name under one owner are permitted.
type Field struct {
	ID             uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         uint64          `gorm:"not null;index" json:"userId"`
	Name           string          `gorm:"size:255;not null" json:"name"`
	Location       string          `gorm:"size:255" json:"location"`
	Description    string          `gorm:"size:1024" json:"description"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
	DaywiseData    []DaywiseData   `gorm:"foreignKey:FieldID" json:"daywiseData"`
	DaywiseResults []DaywiseResult `gorm:"foreignKey:FieldID" json:"daywiseResults"`
	FinalResults   []FinalResult   `gorm:"foreignKey:FieldID" json:"finalResults"`
}

// DaywiseResult holds a per-day derived result set for a field.
// No write path populates it; the listing contract exposes it as an empty collection.
type DaywiseResult struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	FieldID   uint64    `gorm:"not null;index" json:"fieldId"`
	Date      time.Time `gorm:"type:date;not null" json:"date"`
	Payload   JSON      `gorm:"type:json" json:"payload"`
	CreatedAt time.Time `json:"createdAt"`
}

// FinalResult holds a season-final derived result set for a field.
// Structurally present only; nothing in the service writes it.
type FinalResult struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	FieldID   uint64    `gorm:"not null;index" json:"fieldId"`
	Label     string    `gorm:"size:255" json:"label"`
	Payload   JSON      `gorm:"type:json" json:"payload"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName overrides the table name for Field
func (Field) TableName() string {
	return "fields"
}

// TableName overrides the table name for DaywiseResult
func (DaywiseResult) TableName() string {
	return "daywise_results"
}

// TableName overrides the table name for FinalResult
func (FinalResult) TableName() string {
	return "final_results"
}
