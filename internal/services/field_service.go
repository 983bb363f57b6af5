// field_service.go
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

package services

import (
	"github.com/localnerve/fieldwise/internal/models"
	"gorm.io/gorm"
)

// CreateField persists a new field for its owner. Field names are not unique;
// two "North Farm" rows under one user are fine.
func CreateField(db *gorm.DB, field *models.Field) error {
	if err := db.Create(field).Error; err != nil {
		return err
	}
	normalizeField(field)
	return nil
}

// ListFields returns all fields owned by a user, each with its nested daywise
// data (images attached, most recent day first) and the derived result
// collections. The result collections have no write path yet, so they come
// back as empty arrays.
func ListFields(db *gorm.DB, userID uint64) ([]models.Field, error) {
	var fields []models.Field

	err := db.Where("user_id = ?", userID).
		Preload("DaywiseData", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("date DESC")
		}).
		Preload("DaywiseData.Images").
		Preload("DaywiseResults").
		Preload("FinalResults").
		Find(&fields).Error
	if err != nil {
		return nil, err
	}

	for i := range fields {
		normalizeField(&fields[i])
	}

	return fields, nil
}

// normalizeField replaces nil association slices with empty ones so the wire
// format always carries arrays, matching the nextjs responses.
func normalizeField(field *models.Field) {
	if field.DaywiseData == nil {
		field.DaywiseData = []models.DaywiseData{}
	}
	for j := range field.DaywiseData {
		if field.DaywiseData[j].Images == nil {
			field.DaywiseData[j].Images = []models.DaywiseImage{}
		}
	}
	if field.DaywiseResults == nil {
		field.DaywiseResults = []models.DaywiseResult{}
	}
	if field.FinalResults == nil {
		field.FinalResults = []models.FinalResult{}
	}
}
