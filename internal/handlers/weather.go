package handlers

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/fieldwise/internal/services"
	"github.com/localnerve/fieldwise/internal/utils"
)

// WeatherHandler proxies current-conditions lookups for the dashboard
type WeatherHandler struct {
	Service *services.WeatherService
}

// GetWeather handles GET /api/weather?q=...
// @Summary Current weather for a location
// @Description Proxy to the upstream weather API with a short in-process cache
// @Tags Weather
// @Produce json
// @Param q query string true "Location name"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /weather [get]
func (h *WeatherHandler) GetWeather(c *fiber.Ctx) error {
	location := c.Query("q")
	if location == "" {
		return utils.ErrorResponse(c, "location required (q param)", fiber.StatusBadRequest, "weather.validation.query")
	}

	data, fromCache, err := h.Service.Current(location)
	if err != nil {
		if errors.Is(err, services.ErrWeatherKeyMissing) {
			return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "weather.config")
		}
		var upstream *services.WeatherUpstreamError
		if errors.As(err, &upstream) {
			// Forward the upstream status and error body verbatim
			return c.Status(upstream.StatusCode).JSON(fiber.Map{"error": json.RawMessage(upstream.Body)})
		}
		log.Printf("Error fetching weather: %v", err)
		return utils.ErrorResponse(c, "Failed to fetch weather", fiber.StatusInternalServerError, "getWeather")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"fromCache": fromCache,
		"data":      json.RawMessage(data),
	})
}
