// daywise_service.go
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
	"errors"

	"github.com/localnerve/fieldwise/internal/models"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// ErrDuplicateDate signals that a daywise record already exists for the
// submitted (fieldId, date) pair. Terminal for the request; the caller picks
// a different date.
var ErrDuplicateDate = errors.New("entry already exists for this date")

// CreateDaywiseData persists one daywise record plus its images in a single
// transaction. Image rows are created in imageURLs order with the caption left
// empty. There is deliberately no existence pre-check: two concurrent
// submissions for the same (fieldId, date) both reach the insert and the
// unique index decides the winner, so exactly one gets ErrDuplicateDate.
func CreateDaywiseData(db *gorm.DB, entry *models.DaywiseData, imageURLs []string) error {
	entry.Images = make([]models.DaywiseImage, 0, len(imageURLs))
	for _, url := range imageURLs {
		entry.Images = append(entry.Images, models.DaywiseImage{URL: url})
	}

	if err := db.Create(entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateDate
		}
		return err
	}

	return nil
}

// ListDaywiseData returns all daywise records for a field with images
// attached, most recent day first.
func ListDaywiseData(db *gorm.DB, fieldID uint64) ([]models.DaywiseData, error) {
	var entries []models.DaywiseData

	query := db.Preload("Images").
		Where("field_id = ?", fieldID).
		Order("date DESC")

	// The composite unique index already covers this scan on MySQL/MariaDB.
	if db.Dialector.Name() == "mysql" {
		query = query.Clauses(hints.UseIndex("uidx_field_date"))
	}

	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}

	for i := range entries {
		if entries[i].Images == nil {
			entries[i].Images = []models.DaywiseImage{}
		}
	}

	return entries, nil
}
