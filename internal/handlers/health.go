package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/fieldwise/internal/config"
	"github.com/localnerve/fieldwise/internal/services"
	"gorm.io/gorm"
)

// HealthHandler exposes the health check over HTTP
type HealthHandler struct {
	Cfg *config.Config
	DB  *gorm.DB
}

// GetHealth handles GET /api/health
// @Summary Service health
// @Description Database and weather collaborator reachability
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *HealthHandler) GetHealth(c *fiber.Ctx) error {
	result := services.HealthCheck(h.Cfg, h.DB)
	status := fiber.StatusOK
	if result.Status != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}
