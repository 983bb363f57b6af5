package services

import (
	"fmt"
	"log"

	"github.com/localnerve/fieldwise/internal/config"
	"github.com/localnerve/fieldwise/internal/utils"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	WeatherAPI   string            `json:"weatherApi"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// HealthCheck performs a comprehensive health check of the service
func HealthCheck(cfg *config.Config, db *gorm.DB) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	// Check database connectivity
	sqlDB, err := db.DB()
	if err != nil {
		result.Status = "unhealthy"
		result.Database = "error"
		result.Details["database_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database connection error: %v", err)
		log.Printf("Health check failed - database connection: %v", err)
	} else {
		if err := sqlDB.Ping(); err != nil {
			result.Status = "unhealthy"
			result.Database = "unreachable"
			result.Details["database_ping_error"] = err.Error()
			result.ErrorMessage = fmt.Sprintf("Database ping failed: %v", err)
			log.Printf("Health check failed - database ping: %v", err)
		} else {
			result.Database = "ok"
			result.Details["database_type"] = cfg.DBType
			result.Details["database_name"] = cfg.DBDatabase
		}
	}

	// Check the weather collaborator. A degraded weather upstream does not
	// take the service down; field and daywise writes still work.
	if err := utils.PingWeatherAPI(cfg.WeatherAPIURL); err != nil {
		result.WeatherAPI = "unreachable"
		result.Details["weather_api_error"] = err.Error()
		log.Printf("Health check - weather API unreachable: %v", err)
	} else {
		result.WeatherAPI = "ok"
		result.Details["weather_api_url"] = cfg.WeatherAPIURL
	}

	if result.Status == "healthy" {
		log.Println("Health check passed - all systems operational")
	}

	return result
}
