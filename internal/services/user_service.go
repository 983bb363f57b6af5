// user_service.go
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
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrUsernameTaken and ErrEmailTaken map to the legacy plain-text signup
	// rejections. The unique indexes on users remain the backstop either way.
	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email id already exists")

	// ErrInvalidCredentials covers both unknown username and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// CreateUser hashes the password and inserts the user row. The lookups give
// the caller a field-specific message; a losing race still fails on the unique
// index and is reported as a username conflict.
func CreateUser(db *gorm.DB, user *models.User, plainPassword string) error {
	var existing models.User
	err := db.Where("username = ?", user.Username).First(&existing).Error
	if err == nil {
		return ErrUsernameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	err = db.Where("email = ?", user.Email).First(&existing).Error
	if err == nil {
		return ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plainPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)

	if err := db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUsernameTaken
		}
		return err
	}
	user.Fields = []models.Field{}

	return nil
}

// Authenticate verifies a username/password pair and returns the matching
// user row.
func Authenticate(db *gorm.DB, username, password string) (*models.User, error) {
	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// GetUserProjection fetches a user by primary key with the nested field list
// (each field carrying its daywise data and result stubs). Returns (nil, nil)
// when the user does not exist; callers render that as a null-user result,
// never an error.
func GetUserProjection(db *gorm.DB, userID uint64) (*models.User, error) {
	var user models.User
	err := db.Preload("Fields", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("id ASC")
	}).
		Preload("Fields.DaywiseData", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("date DESC")
		}).
		Preload("Fields.DaywiseData.Images").
		Preload("Fields.DaywiseResults").
		Preload("Fields.FinalResults").
		First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if user.Fields == nil {
		user.Fields = []models.Field{}
	}
	for i := range user.Fields {
		normalizeField(&user.Fields[i])
	}

	return &user, nil
}
