package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/fieldwise/internal/handlers"
	"github.com/localnerve/fieldwise/internal/models"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	// Auto-migrate models
	err = db.AutoMigrate(
		&models.User{},
		&models.Field{},
		&models.DaywiseData{},
		&models.DaywiseImage{},
		&models.DaywiseResult{},
		&models.FinalResult{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// seedUserAndField inserts a user with one field and returns the field id
func seedUserAndField(t *testing.T, db *gorm.DB) uint64 {
	user := models.User{
		FullName: "Test Farmer",
		Username: "testfarmer",
		Email:    "farmer@example.com",
		Password: "hashed",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	field := models.Field{
		UserID: user.ID,
		Name:   "Test Field",
	}
	if err := db.Create(&field).Error; err != nil {
		t.Fatalf("Failed to create field: %v", err)
	}
	return field.ID
}

// TestCreateDaywiseData tests the POST /api/daywise-data endpoint
func TestCreateDaywiseData(t *testing.T) {
	db := setupTestDB(t)
	fieldID := seedUserAndField(t, db)

	app := fiber.New()
	handler := &handlers.DaywiseHandler{DB: db}
	app.Post("/api/daywise-data", handler.CreateDaywiseData)
	app.Get("/api/daywise-data", handler.ListDaywiseData)

	reqBody := map[string]interface{}{
		"fieldId":      fieldID,
		"date":         "2026-06-01",
		"soilMoisture": 28.4,
		"soilPH":       6.8,
		"notes":        "after irrigation",
		"imageUrls":    []string{"/uploads/one.jpg", "/uploads/two.jpg"},
	}
	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest("POST", "/api/daywise-data", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}

	if resp.StatusCode != 201 {
		t.Fatalf("Expected status 201, got %d", resp.StatusCode)
	}

	var result models.DaywiseData
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if result.ID == 0 {
		t.Error("Expected persisted id in response")
	}
	if result.SoilMoisture == nil || *result.SoilMoisture != 28.4 {
		t.Error("Expected soilMoisture to round-trip")
	}
	if result.Rainfall != nil {
		t.Error("Expected omitted rainfall to stay null")
	}
	if len(result.Images) != 2 {
		t.Errorf("Expected 2 images, got %d", len(result.Images))
	}
	if len(result.Images) == 2 && result.Images[0].URL != "/uploads/one.jpg" {
		t.Error("Expected images in submitted order")
	}

	// Re-fetch by fieldId reproduces the submitted values, nulls included
	req = httptest.NewRequest("GET", "/api/daywise-data?fieldId="+itoa(fieldID), nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	var fetched []models.DaywiseData
	if err := json.NewDecoder(resp.Body).Decode(&fetched); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(fetched) != 1 {
		t.Fatalf("Expected 1 entry on re-fetch, got %d", len(fetched))
	}
	if fetched[0].SoilMoisture == nil || *fetched[0].SoilMoisture != 28.4 {
		t.Error("Expected soilMoisture to survive the round trip")
	}
	if fetched[0].SoilPH == nil || *fetched[0].SoilPH != 6.8 {
		t.Error("Expected soilPH to survive the round trip")
	}
	if fetched[0].Rainfall != nil {
		t.Error("Expected omitted rainfall to stay null after re-fetch")
	}
	if fetched[0].Notes == nil || *fetched[0].Notes != "after irrigation" {
		t.Error("Expected notes to survive the round trip")
	}
}

// TestCreateDaywiseDataStringFieldID tests that fieldId tolerates a string value
func TestCreateDaywiseDataStringFieldID(t *testing.T) {
	db := setupTestDB(t)
	fieldID := seedUserAndField(t, db)

	app := fiber.New()
	handler := &handlers.DaywiseHandler{DB: db}
	app.Post("/api/daywise-data", handler.CreateDaywiseData)

	body := []byte(`{"fieldId":"` + itoa(fieldID) + `","date":"2026-06-02"}`)
	req := httptest.NewRequest("POST", "/api/daywise-data", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}

	if resp.StatusCode != 201 {
		t.Errorf("Expected status 201 for string fieldId, got %d", resp.StatusCode)
	}
}

// TestCreateDaywiseDataValidation tests required-field rejection
func TestCreateDaywiseDataValidation(t *testing.T) {
	db := setupTestDB(t)

	app := fiber.New()
	handler := &handlers.DaywiseHandler{DB: db}
	app.Post("/api/daywise-data", handler.CreateDaywiseData)

	cases := []string{
		`{"date":"2026-06-01"}`,
		`{"fieldId":1}`,
		`{"fieldId":1,"date":"not-a-date"}`,
	}
	for _, body := range cases {
		req := httptest.NewRequest("POST", "/api/daywise-data", bytes.NewReader([]byte(body)))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("Failed to execute request: %v", err)
		}
		if resp.StatusCode != 400 {
			t.Errorf("Expected status 400 for %s, got %d", body, resp.StatusCode)
		}
	}

	// Rejected submissions persist nothing
	var count int64
	if err := db.Model(&models.DaywiseData{}).Count(&count).Error; err != nil {
		t.Fatalf("Failed to count rows: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected no persisted rows after rejections, got %d", count)
	}
}

// TestDuplicateDateConflict tests the one-record-per-field-per-day rule
func TestDuplicateDateConflict(t *testing.T) {
	db := setupTestDB(t)
	fieldID := seedUserAndField(t, db)

	app := fiber.New()
	handler := &handlers.DaywiseHandler{DB: db}
	app.Post("/api/daywise-data", handler.CreateDaywiseData)

	reqBody := map[string]interface{}{
		"fieldId": fieldID,
		"date":    "2026-06-03",
	}
	body, _ := json.Marshal(reqBody)

	req := httptest.NewRequest("POST", "/api/daywise-data", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Fatalf("Expected status 201 on first insert, got %d", resp.StatusCode)
	}

	// Same field and date again, different reading
	reqBody["soilMoisture"] = 12.0
	body, _ = json.Marshal(reqBody)
	req = httptest.NewRequest("POST", "/api/daywise-data", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}

	// Should return 409 Conflict
	if resp.StatusCode != 409 {
		t.Fatalf("Expected status 409 (duplicate date), got %d", resp.StatusCode)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if result["message"] != "Entry already exists for this date" {
		t.Errorf("Unexpected conflict message: %v", result["message"])
	}
	if result["conflict"] != true {
		t.Error("Expected conflict=true in response")
	}

	// Different date on the same field is fine
	reqBody["date"] = "2026-06-04"
	body, _ = json.Marshal(reqBody)
	req = httptest.NewRequest("POST", "/api/daywise-data", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Errorf("Expected status 201 for a new date, got %d", resp.StatusCode)
	}
}

// TestListDaywiseData tests the GET /api/daywise-data endpoint
func TestListDaywiseData(t *testing.T) {
	db := setupTestDB(t)
	fieldID := seedUserAndField(t, db)

	app := fiber.New()
	handler := &handlers.DaywiseHandler{DB: db}
	app.Post("/api/daywise-data", handler.CreateDaywiseData)
	app.Get("/api/daywise-data", handler.ListDaywiseData)

	for _, day := range []string{"2026-06-01", "2026-06-05", "2026-06-03"} {
		body, _ := json.Marshal(map[string]interface{}{"fieldId": fieldID, "date": day})
		req := httptest.NewRequest("POST", "/api/daywise-data", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("Failed to execute request: %v", err)
		}
		if resp.StatusCode != 201 {
			t.Fatalf("Expected status 201 seeding %s, got %d", day, resp.StatusCode)
		}
	}

	req := httptest.NewRequest("GET", "/api/daywise-data?fieldId="+itoa(fieldID), nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var entries []models.DaywiseData
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Date.After(entries[i-1].Date) {
			t.Error("Expected entries in most-recent-first order")
		}
	}
	// Images preloaded as empty array, not null
	if entries[0].Images == nil {
		t.Error("Expected non-nil images slice")
	}
}

// TestListDaywiseDataUnknownField tests the empty-list contract
func TestListDaywiseDataUnknownField(t *testing.T) {
	db := setupTestDB(t)

	app := fiber.New()
	handler := &handlers.DaywiseHandler{DB: db}
	app.Get("/api/daywise-data", handler.ListDaywiseData)

	req := httptest.NewRequest("GET", "/api/daywise-data?fieldId=9999", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200 for unknown field, got %d", resp.StatusCode)
	}

	var entries []models.DaywiseData
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected empty list, got %d entries", len(entries))
	}

	// Missing fieldId -> 400
	req = httptest.NewRequest("GET", "/api/daywise-data", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("Expected status 400 without fieldId, got %d", resp.StatusCode)
	}
}

// TestCreateField tests the POST /api/fields endpoint
func TestCreateField(t *testing.T) {
	db := setupTestDB(t)

	user := models.User{FullName: "F", Username: "f", Email: "f@example.com", Password: "x"}
	db.Create(&user)

	app := fiber.New()
	handler := &handlers.FieldHandler{DB: db}
	app.Post("/api/fields", handler.CreateField)

	body, _ := json.Marshal(map[string]interface{}{
		"userId":   user.ID,
		"name":     "South Field",
		"location": "Riverside",
	})
	req := httptest.NewRequest("POST", "/api/fields", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Fatalf("Expected status 201, got %d", resp.StatusCode)
	}

	var field models.Field
	if err := json.NewDecoder(resp.Body).Decode(&field); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if field.ID == 0 {
		t.Error("Expected persisted field id")
	}

	// Duplicate field names under the same owner are allowed
	req = httptest.NewRequest("POST", "/api/fields", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Errorf("Expected status 201 for same-name field, got %d", resp.StatusCode)
	}

	// Missing name -> 400
	body, _ = json.Marshal(map[string]interface{}{"userId": user.ID})
	req = httptest.NewRequest("POST", "/api/fields", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("Expected status 400 without name, got %d", resp.StatusCode)
	}
}

// TestListFields tests the GET /api/fields endpoint
func TestListFields(t *testing.T) {
	db := setupTestDB(t)
	fieldID := seedUserAndField(t, db)

	var field models.Field
	db.First(&field, fieldID)

	app := fiber.New()
	handler := &handlers.FieldHandler{DB: db}
	app.Get("/api/fields", handler.ListFields)

	req := httptest.NewRequest("GET", "/api/fields?userId="+itoa(field.UserID), nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var result []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("Expected 1 field, got %d", len(result))
	}

	// Stubbed result collections present as empty arrays, never null
	for _, key := range []string{"daywiseData", "daywiseResults", "finalResults"} {
		value, present := result[0][key]
		if !present {
			t.Errorf("Expected %s key in field listing", key)
			continue
		}
		list, ok := value.([]interface{})
		if !ok {
			t.Errorf("Expected %s to be an array, got %T", key, value)
			continue
		}
		if len(list) != 0 {
			t.Errorf("Expected %s to be empty, got %d items", key, len(list))
		}
	}
}

func itoa(v uint64) string {
	return strconv.FormatUint(v, 10)
}
