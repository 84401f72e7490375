package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"farewatch/internal/db/repositories"
	"farewatch/internal/models/dtos"
	"farewatch/internal/models/entities"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestRepo(t *testing.T) *repositories.ObservationRepository {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&entities.FareObservation{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return repositories.NewObservationRepository(db)
}

func TestRecordObservationHandler(t *testing.T) {
	repo := setupTestRepo(t)
	handler := RecordObservationHandler(repo)

	body := `{"airline":"JetBlue Airways","origin":"jfk","destination":"lax","departureDate":"2024-04-12","price":189}`
	req := httptest.NewRequest("POST", "/api/v1/observations", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp dtos.APIResponse[entities.FareObservation]
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Status != "success" {
		t.Errorf("Expected success status, got %s", resp.Status)
	}
	if resp.Data.Origin != "JFK" {
		t.Errorf("Expected uppercased origin JFK, got %s", resp.Data.Origin)
	}
	if resp.Data.ID == "" {
		t.Error("Expected assigned observation ID")
	}
}

func TestRecordObservationHandler_ValidationFailure(t *testing.T) {
	repo := setupTestRepo(t)
	handler := RecordObservationHandler(repo)

	body := `{"airline":"JetBlue Airways","origin":"JFK","destination":"LAX","price":0}`
	req := httptest.NewRequest("POST", "/api/v1/observations", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Expected 422, got %d", w.Code)
	}

	var resp dtos.APIResponse[any]
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Status != "error" {
		t.Errorf("Expected error status, got %s", resp.Status)
	}
}

func TestRecordObservationHandler_BadJSON(t *testing.T) {
	handler := RecordObservationHandler(setupTestRepo(t))

	req := httptest.NewRequest("POST", "/api/v1/observations", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	handler(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
}

func TestObservationHistoryHandler_RouteFilter(t *testing.T) {
	repo := setupTestRepo(t)

	record := RecordObservationHandler(repo)
	for _, body := range []string{
		`{"airline":"JetBlue Airways","origin":"JFK","destination":"LAX","price":189}`,
		`{"airline":"JSX","origin":"BUR","destination":"LAS","price":249}`,
	} {
		w := httptest.NewRecorder()
		record(w, httptest.NewRequest("POST", "/api/v1/observations", strings.NewReader(body)))
		if w.Code != http.StatusCreated {
			t.Fatalf("Seed write failed: %d %s", w.Code, w.Body.String())
		}
	}

	handler := ObservationHistoryHandler(repo)

	req := httptest.NewRequest("GET", "/api/v1/observations?origin=jfk&destination=lax", nil)
	w := httptest.NewRecorder()
	handler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp dtos.APIResponse[[]entities.FareObservation]
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(*resp.Data) != 1 {
		t.Fatalf("Expected 1 observation for JFK-LAX, got %d", len(*resp.Data))
	}
	if (*resp.Data)[0].Airline != "JetBlue Airways" {
		t.Errorf("Expected JetBlue Airways, got %s", (*resp.Data)[0].Airline)
	}

	// Filter applies only when both airports are supplied
	req = httptest.NewRequest("GET", "/api/v1/observations?origin=jfk", nil)
	w = httptest.NewRecorder()
	handler(w, req)

	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(*resp.Data) != 2 {
		t.Errorf("Expected unfiltered history with 2 rows, got %d", len(*resp.Data))
	}
}
