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

package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/fieldwise/internal/models"
	"github.com/localnerve/fieldwise/internal/services"
	"github.com/localnerve/fieldwise/internal/types"
	"github.com/localnerve/fieldwise/internal/utils"
	"gorm.io/gorm"
)

// DaywiseHandler handles daywise record routes
type DaywiseHandler struct {
	DB *gorm.DB
}

// daywiseRequest is the ingestion payload. fieldId tolerates string or number;
// every sensor reading is individually optional.
type daywiseRequest struct {
	FieldID            types.FlexUint64       `json:"fieldId"`
	Date               string                 `json:"date"`
	Notes              *string                `json:"notes"`
	ImageURLs          types.FlexList[string] `json:"imageUrls"`
	SoilMoisture       *float64               `json:"soilMoisture"`
	SoilTemperature    *float64               `json:"soilTemperature"`
	SoilPH             *float64               `json:"soilPH"`
	SoilEC             *float64               `json:"soilEC"`
	NutrientN          *float64               `json:"nutrientN"`
	NutrientP          *float64               `json:"nutrientP"`
	NutrientK          *float64               `json:"nutrientK"`
	AirTemperature     *float64               `json:"airTemperature"`
	Humidity           *float64               `json:"humidity"`
	Rainfall           *float64               `json:"rainfall"`
	LeafWetness        *float64               `json:"leafWetness"`
	CanopyTemperature  *float64               `json:"canopyTemperature"`
	Evapotranspiration *float64               `json:"evapotranspiration"`
	SolarPAR           *float64               `json:"solarPAR"`
}

// CreateDaywiseData handles POST /api/daywise-data
// @Summary Create a daywise record
// @Description Create one sensor/observation record for a field and calendar day, with optional images
// @Tags DaywiseData
// @Accept json
// @Produce json
// @Param body body daywiseRequest true "Daywise record"
// @Success 201 {object} models.DaywiseData
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /daywise-data [post]
func (h *DaywiseHandler) CreateDaywiseData(c *fiber.Ctx) error {
	var req daywiseRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "daywise.validation.input")
	}

	if req.FieldID == 0 || req.Date == "" {
		return utils.ErrorResponse(c, "fieldId and date are required", fiber.StatusBadRequest, "daywise.validation.input")
	}

	date, err := parseCalendarDate(req.Date)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "daywise.validation.date")
	}

	entry := models.DaywiseData{
		FieldID:            req.FieldID.Uint64(),
		Date:               date,
		Notes:              req.Notes,
		SoilMoisture:       req.SoilMoisture,
		SoilTemperature:    req.SoilTemperature,
		SoilPH:             req.SoilPH,
		SoilEC:             req.SoilEC,
		NutrientN:          req.NutrientN,
		NutrientP:          req.NutrientP,
		NutrientK:          req.NutrientK,
		AirTemperature:     req.AirTemperature,
		Humidity:           req.Humidity,
		Rainfall:           req.Rainfall,
		LeafWetness:        req.LeafWetness,
		CanopyTemperature:  req.CanopyTemperature,
		Evapotranspiration: req.Evapotranspiration,
		SolarPAR:           req.SolarPAR,
	}

	if err := services.CreateDaywiseData(h.DB, &entry, req.ImageURLs.Slice()); err != nil {
		if errors.Is(err, services.ErrDuplicateDate) {
			return utils.ConflictResponse(c, "Entry already exists for this date")
		}
		log.Printf("Error creating daywise data: %v", err)
		return utils.ErrorResponse(c, "Failed to create daywise data", fiber.StatusInternalServerError, "createDaywiseData")
	}

	return c.Status(fiber.StatusCreated).JSON(entry)
}

// ListDaywiseData handles GET /api/daywise-data?fieldId=ID
// @Summary List daywise records for a field
// @Description List all daywise records with images, most recent day first
// @Tags DaywiseData
// @Accept json
// @Produce json
// @Param fieldId query int true "Field ID"
// @Success 200 {array} models.DaywiseData
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /daywise-data [get]
func (h *DaywiseHandler) ListDaywiseData(c *fiber.Ctx) error {
	fieldID, err := parseQueryID(c, "fieldId")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "daywise.validation.query")
	}

	entries, err := services.ListDaywiseData(h.DB, fieldID)
	if err != nil {
		log.Printf("Error fetching daywise data: %v", err)
		return utils.ErrorResponse(c, "Failed to fetch daywise data", fiber.StatusInternalServerError, "listDaywiseData")
	}

	return c.Status(fiber.StatusOK).JSON(entries)
}
