package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"os"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/fieldwise/internal/config"
	"github.com/localnerve/fieldwise/internal/database"
	"github.com/localnerve/fieldwise/internal/handlers"
	"github.com/localnerve/fieldwise/internal/models"
	"github.com/localnerve/fieldwise/internal/services"
	"github.com/localnerve/fieldwise/tests/helpers"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// TestWithMariaDB tests the service with a real MariaDB container
func TestWithMariaDB(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	// Start MariaDB container
	mariadbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        os.Getenv("DB_IMAGE"),
			ExposedPorts: []string{"3306/tcp"},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": "rootpass",
				"MYSQL_DATABASE":      "testdb",
				"MYSQL_USER":          "testuser",
				"MYSQL_PASSWORD":      "testpass",
			},
			WaitingFor: wait.ForLog("ready for connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start MariaDB container: %v", err)
	}
	defer func() {
		if err := mariadbContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate MariaDB container: %v", err)
		}
	}()

	// Get container host and port
	host, err := mariadbContainer.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := mariadbContainer.MappedPort(ctx, "3306")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	// Create config
	cfg := &config.Config{
		DBType:            "mysql",
		DBHost:            host,
		DBPort:            port.Port(),
		DBDatabase:        "testdb",
		DBUser:            "testuser",
		DBPassword:        "testpass",
		DBConnectionLimit: 5,
	}

	// Wait for database to be ready
	time.Sleep(5 * time.Second)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run migrations
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	// Run tests
	t.Run("SignupFieldDaywiseFlow", func(t *testing.T) {
		testSignupFieldDaywiseFlow(t, db)
	})

	t.Run("DuplicateDateRace", func(t *testing.T) {
		testDuplicateDateRace(t, db)
	})

	t.Run("ListOrdering", func(t *testing.T) {
		testListOrdering(t, db)
	})
}

// testSignupFieldDaywiseFlow exercises the full write path through the HTTP
// handlers: signup, create a field, post a daywise record, reject the duplicate.
func testSignupFieldDaywiseFlow(t *testing.T, db *gorm.DB) {
	app := fiber.New()
	authHandler := &handlers.AuthHandler{DB: db, JWTSecret: []byte("integration-secret"), SessionMaxAge: time.Hour}
	fieldHandler := &handlers.FieldHandler{DB: db}
	daywiseHandler := &handlers.DaywiseHandler{DB: db}
	app.Post("/api/auth/signup", authHandler.Signup)
	app.Post("/api/fields", fieldHandler.CreateField)
	app.Post("/api/daywise-data", daywiseHandler.CreateDaywiseData)
	app.Get("/api/daywise-data", daywiseHandler.ListDaywiseData)

	// Signup
	body, _ := json.Marshal(map[string]string{
		"fullName": "Flow Farmer",
		"username": "flowfarmer",
		"email":    "flow@example.com",
		"password": helpers.GeneratePassword(),
	})
	req := httptest.NewRequest("POST", "/api/auth/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute signup: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	var user models.User
	helpers.ParseJSON(t, resp, &user)
	if user.ID == 0 {
		t.Fatal("Expected a persisted user id")
	}

	// Create field
	body, _ = json.Marshal(map[string]interface{}{
		"userId": user.ID,
		"name":   "North Paddock",
	})
	req = httptest.NewRequest("POST", "/api/fields", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute field create: %v", err)
	}
	helpers.AssertStatus(t, resp, 201)

	var field models.Field
	helpers.ParseJSON(t, resp, &field)
	if field.ID == 0 {
		t.Fatal("Expected a persisted field id")
	}

	// Post a daywise record
	body, _ = json.Marshal(map[string]interface{}{
		"fieldId":      field.ID,
		"date":         "2026-03-15",
		"soilMoisture": 31.5,
		"imageUrls":    []string{"/uploads/a.jpg"},
	})
	req = httptest.NewRequest("POST", "/api/daywise-data", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute daywise create: %v", err)
	}
	helpers.AssertStatus(t, resp, 201)

	// Same field, same date again -> 409
	req = httptest.NewRequest("POST", "/api/daywise-data", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute duplicate daywise create: %v", err)
	}
	helpers.AssertStatus(t, resp, 409)

	// Listing returns the single record with its image
	req = httptest.NewRequest("GET", "/api/daywise-data?fieldId="+strconv.FormatUint(field.ID, 10), nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute daywise list: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	var entries []models.DaywiseData
	helpers.ParseJSON(t, resp, &entries)
	if len(entries) != 1 {
		t.Fatalf("Expected 1 daywise entry, got %d", len(entries))
	}
	if len(entries[0].Images) != 1 {
		t.Errorf("Expected 1 image on the entry, got %d", len(entries[0].Images))
	}
}

// testDuplicateDateRace hammers the same (field, date) from concurrent
// writers against a real unique index; exactly one insert may win.
func testDuplicateDateRace(t *testing.T, db *gorm.DB) {
	user := helpers.CreateTestUser(t, db, "Race Farmer", "racefarmer", "race@example.com", helpers.GeneratePassword())
	field := helpers.CreateTestField(t, db, user.ID, "Race Paddock", "")

	day, _ := time.Parse("2006-01-02", "2026-04-01")

	const writers = 8
	var wg sync.WaitGroup
	results := make([]error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			moisture := float64(n)
			entry := &models.DaywiseData{
				FieldID:      field.ID,
				Date:         day,
				SoilMoisture: &moisture,
			}
			results[n] = services.CreateDaywiseData(db, entry, nil)
		}(i)
	}
	wg.Wait()

	var wins, losses int
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, services.ErrDuplicateDate):
			losses++
		default:
			t.Errorf("Unexpected error from concurrent create: %v", err)
		}
	}
	if wins != 1 {
		t.Errorf("Expected exactly 1 winning insert, got %d", wins)
	}
	if losses != writers-1 {
		t.Errorf("Expected %d duplicate rejections, got %d", writers-1, losses)
	}
}

// testListOrdering verifies newest-first ordering of the daywise listing
func testListOrdering(t *testing.T, db *gorm.DB) {
	user := helpers.CreateTestUser(t, db, "Order Farmer", "orderfarmer", "order@example.com", helpers.GeneratePassword())
	field := helpers.CreateTestField(t, db, user.ID, "Order Paddock", "")

	helpers.CreateTestDaywiseData(t, db, field.ID, "2026-05-01", map[string]float64{"soilMoisture": 10})
	helpers.CreateTestDaywiseData(t, db, field.ID, "2026-05-03", map[string]float64{"soilMoisture": 30})
	helpers.CreateTestDaywiseData(t, db, field.ID, "2026-05-02", map[string]float64{"soilMoisture": 20})

	entries, err := services.ListDaywiseData(db, field.ID)
	if err != nil {
		t.Fatalf("Failed to list daywise data: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Date.After(entries[i-1].Date) {
			t.Errorf("Entries not in newest-first order: %v before %v", entries[i-1].Date, entries[i].Date)
		}
	}
}

// TestHealthCheck tests the health check functionality
func TestHealthCheck(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	// Start MariaDB container
	mariadbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        os.Getenv("DB_IMAGE"),
			ExposedPorts: []string{"3306/tcp"},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": "rootpass",
				"MYSQL_DATABASE":      "testdb",
				"MYSQL_USER":          "testuser",
				"MYSQL_PASSWORD":      "testpass",
			},
			WaitingFor: wait.ForLog("ready for connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start MariaDB container: %v", err)
	}
	defer func() {
		if err := mariadbContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate MariaDB container: %v", err)
		}
	}()

	host, err := mariadbContainer.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := mariadbContainer.MappedPort(ctx, "3306")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	cfg := &config.Config{
		DBType:        "mysql",
		DBHost:        host,
		DBPort:        port.Port(),
		DBDatabase:    "testdb",
		DBUser:        "testuser",
		DBPassword:    "testpass",
		WeatherAPIURL: "http://localhost:9999", // Non-existent upstream
	}

	time.Sleep(5 * time.Second)

	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run health check
	result := services.HealthCheck(cfg, db)

	// Database should be healthy
	if result.Database != "ok" {
		t.Errorf("Expected database to be ok, got: %s", result.Database)
	}

	// Weather API should be unreachable
	if result.WeatherAPI != "unreachable" {
		t.Errorf("Expected weather API to be unreachable, got: %s", result.WeatherAPI)
	}

	// A dead weather upstream degrades but does not fail the service
	if result.Status != "healthy" {
		t.Errorf("Expected status to be healthy, got: %s", result.Status)
	}
}
