// main.go
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

package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/joho/godotenv"
	"github.com/localnerve/fieldwise/internal/config"
	"github.com/localnerve/fieldwise/internal/database"
	"github.com/localnerve/fieldwise/internal/handlers"
	"github.com/localnerve/fieldwise/internal/middleware"
	"github.com/localnerve/fieldwise/internal/services"
	"github.com/localnerve/fieldwise/internal/types"

	_ "github.com/localnerve/fieldwise/docs/api" // Swagger docs
)

// @title Fieldwise API
// @version 1.0.0
// @description Go Fiber data service for daywise agricultural field monitoring
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/localnerve/fieldwise
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name fieldwise_session

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler:          customErrorHandler,
		DisableStartupMessage: false,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("fieldwise")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Uploaded daywise images are public static assets
	app.Static("/uploads", cfg.UploadDir)

	// API routes under /api
	api := app.Group("/api")

	// Version middleware
	api.Use(middleware.VersionMiddleware())

	// Create handlers
	authHandler := &handlers.AuthHandler{DB: db, JWTSecret: []byte(cfg.JWTSecret), SessionMaxAge: cfg.SessionMaxAge}
	fieldHandler := &handlers.FieldHandler{DB: db}
	daywiseHandler := &handlers.DaywiseHandler{DB: db}
	weatherHandler := &handlers.WeatherHandler{Service: services.NewWeatherService(cfg)}
	uploadHandler := &handlers.UploadHandler{Dir: cfg.UploadDir}
	healthHandler := &handlers.HealthHandler{Cfg: cfg, DB: db}

	// Auth routes
	api.Post("/auth/signup", authHandler.Signup)
	api.Post("/auth/signin", authHandler.Signin)
	api.Post("/auth/signout", authHandler.Signout)
	api.Get("/auth/session", authHandler.GetSession)

	// Field routes
	api.Post("/fields", fieldHandler.CreateField)
	api.Get("/fields", fieldHandler.ListFields)

	// Daywise data routes
	api.Post("/daywise-data", daywiseHandler.CreateDaywiseData)
	api.Get("/daywise-data", daywiseHandler.ListDaywiseData)

	// Collaborators
	api.Get("/weather", weatherHandler.GetWeather)
	api.Post("/upload", middleware.AuthUser([]byte(cfg.JWTSecret)), uploadHandler.Upload)

	// Health
	api.Get("/health", healthHandler.GetHealth)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	// Check if it's a Fiber error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Check if it's one of ours
	var customErr *types.CustomError
	if errors.As(err, &customErr) {
		code = customErr.Code
		message = customErr.Message
		errorType = customErr.Type
	}

	envelope := fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	}
	if code == fiber.StatusConflict {
		envelope["conflict"] = true
		envelope["type"] = "conflict"
	}

	return c.Status(code).JSON(envelope)
}
