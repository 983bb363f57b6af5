// daywise.go
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

// DaywiseData is one day's sensor/observation snapshot for a field.
// The composite unique index on (field_id, date) is the source of truth
// for the one-record-per-field-per-day rule; inserts race on it directly.
// Sensor columns are pointers so omitted readings round-trip as JSON null.
type DaywiseData struct {
	ID                 uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	FieldID            uint64         `gorm:"not null;uniqueIndex:uidx_field_date" json:"fieldId"`
	Date               time.Time      `gorm:"type:date;not null;uniqueIndex:uidx_field_date" json:"date"`
	SoilMoisture       *float64       `json:"soilMoisture"`
	SoilTemperature    *float64       `json:"soilTemperature"`
	SoilPH             *float64       `json:"soilPH"`
	SoilEC             *float64       `json:"soilEC"`
	NutrientN          *float64       `json:"nutrientN"`
	NutrientP          *float64       `json:"nutrientP"`
	NutrientK          *float64       `json:"nutrientK"`
	AirTemperature     *float64       `json:"airTemperature"`
	Humidity           *float64       `json:"humidity"`
	Rainfall           *float64       `json:"rainfall"`
	LeafWetness        *float64       `json:"leafWetness"`
	CanopyTemperature  *float64       `json:"canopyTemperature"`
	Evapotranspiration *float64       `json:"evapotranspiration"`
	SolarPAR           *float64       `json:"solarPAR"`
	Notes              *string        `gorm:"size:2048" json:"notes"`
	CreatedAt          time.Time      `json:"createdAt"`
	Images             []DaywiseImage `gorm:"foreignKey:DaywiseDataID" json:"images"`
}

// DaywiseImage is a photo attached to a daywise record. Rows are created
// only as part of a daywise write, never standalone.
type DaywiseImage struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	DaywiseDataID uint64    `gorm:"not null;index" json:"daywiseDataId"`
	URL           string    `gorm:"size:1024;not null" json:"url"`
	Caption       *string   `gorm:"size:512" json:"caption"`
	CreatedAt     time.Time `json:"createdAt"`
}

// TableName overrides the table name for DaywiseData
func (DaywiseData) TableName() string {
	return "daywise_data"
}

// TableName overrides the table name for DaywiseImage
func (DaywiseImage) TableName() string {
	return "daywise_images"
}
