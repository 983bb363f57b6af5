// fields.go
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

package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/fieldwise/internal/models"
	"github.com/localnerve/fieldwise/internal/services"
	"github.com/localnerve/fieldwise/internal/types"
	"github.com/localnerve/fieldwise/internal/utils"
	"gorm.io/gorm"
)

// FieldHandler handles field routes
type FieldHandler struct {
	DB *gorm.DB
}

type fieldRequest struct {
	UserID      types.FlexUint64 `json:"userId"`
	Name        string           `json:"name"`
	Location    string           `json:"location"`
	Description string           `json:"description"`
}

// CreateField handles POST /api/fields
// @Summary Create a field
// @Description Create a field for a user; location and description are optional
// @Tags Fields
// @Accept json
// @Produce json
// @Param body body fieldRequest true "Field"
// @Success 201 {object} models.Field
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /fields [post]
func (h *FieldHandler) CreateField(c *fiber.Ctx) error {
	var req fieldRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "fields.validation.input")
	}

	if req.UserID == 0 || req.Name == "" {
		return utils.ErrorResponse(c, "userId and name are required", fiber.StatusBadRequest, "fields.validation.input")
	}

	field := models.Field{
		UserID:      req.UserID.Uint64(),
		Name:        req.Name,
		Location:    req.Location,
		Description: req.Description,
	}

	if err := services.CreateField(h.DB, &field); err != nil {
		log.Printf("Error creating field: %v", err)
		return utils.ErrorResponse(c, "Failed to create field", fiber.StatusInternalServerError, "createField")
	}

	return c.Status(fiber.StatusCreated).JSON(field)
}

// ListFields handles GET /api/fields?userId=ID
// @Summary List fields for a user
// @Description List all fields owned by a user with nested daywise data and derived result sets
// @Tags Fields
// @Accept json
// @Produce json
// @Param userId query int true "User ID"
// @Success 200 {array} models.Field
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /fields [get]
func (h *FieldHandler) ListFields(c *fiber.Ctx) error {
	userID, err := parseQueryID(c, "userId")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "fields.validation.query")
	}

	fields, err := services.ListFields(h.DB, userID)
	if err != nil {
		log.Printf("Error fetching fields: %v", err)
		return utils.ErrorResponse(c, "Failed to fetch fields", fiber.StatusInternalServerError, "listFields")
	}

	return c.Status(fiber.StatusOK).JSON(fields)
}
