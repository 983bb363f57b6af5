// data.go
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

package helpers

import (
	"testing"
	"time"

	"github.com/localnerve/fieldwise/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateTestUser creates a user with a bcrypt-hashed password
func CreateTestUser(t *testing.T, db *gorm.DB, fullName, username, email, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	user := models.User{
		FullName: fullName,
		Username: username,
		Email:    email,
		Password: string(hash),
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return &user
}

// CreateTestField creates a field for a user
func CreateTestField(t *testing.T, db *gorm.DB, userID uint64, name, location string) *models.Field {
	t.Helper()
	field := models.Field{
		UserID:   userID,
		Name:     name,
		Location: location,
	}
	if err := db.Create(&field).Error; err != nil {
		t.Fatalf("Failed to create field: %v", err)
	}
	return &field
}

// CreateTestDaywiseData creates a daywise record for a field on a calendar date
func CreateTestDaywiseData(t *testing.T, db *gorm.DB, fieldID uint64, date string, sensors map[string]float64) *models.DaywiseData {
	t.Helper()
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		t.Fatalf("Bad test date %s: %v", date, err)
	}

	entry := models.DaywiseData{
		FieldID: fieldID,
		Date:    day,
	}
	for name, value := range sensors {
		v := value
		switch name {
		case "soilMoisture":
			entry.SoilMoisture = &v
		case "soilTemperature":
			entry.SoilTemperature = &v
		case "soilPH":
			entry.SoilPH = &v
		case "airTemperature":
			entry.AirTemperature = &v
		case "humidity":
			entry.Humidity = &v
		case "rainfall":
			entry.Rainfall = &v
		default:
			t.Fatalf("Unknown sensor %s in test fixture", name)
		}
	}
	if err := db.Create(&entry).Error; err != nil {
		t.Fatalf("Failed to create daywise data: %v", err)
	}
	return &entry
}
