package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	HealthHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var response HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode health response: %v", err)
	}
	if response.Status != "healthy" {
		t.Errorf("Expected status healthy, got %s", response.Status)
	}
	if response.GoVersion == "" {
		t.Error("Expected a go version in the response")
	}
}

func TestHealthRejectsPost(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	rec := httptest.NewRecorder()

	HealthHandler(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", rec.Code)
	}
}

func TestVersionHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	rec := httptest.NewRecorder()

	VersionHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var response VersionResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode version response: %v", err)
	}
	if response.Version == "" {
		t.Error("Expected a version string")
	}
}

func TestStatusHandlerMissingHash(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()

	JobStatusHandler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 without a hash, got %d", rec.Code)
	}
}

func TestStatusHandlerUnknownHash(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/status?hash=nope", nil)
	rec := httptest.NewRecorder()

	JobStatusHandler(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for an unknown hash, got %d", rec.Code)
	}
}

func TestCancelHandlerWrongMethod(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/cancel?hash=x", nil)
	rec := httptest.NewRecorder()

	CancelJobHandler(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", rec.Code)
	}
}

func TestCancelHandlerUnknownHash(t *testing.T) {
	req := httptest.NewRequest(http.MethodDelete, "/cancel?hash=unknown", nil)
	rec := httptest.NewRecorder()

	CancelJobHandler(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for an unknown hash, got %d", rec.Code)
	}
}
