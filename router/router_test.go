// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/mitv-server/models"
	"github.com/danielhkuo/mitv-server/testutil"
	"github.com/danielhkuo/mitv-server/uploads"
)

func newTestRouter(t *testing.T) *http.ServeMux {
	t.Helper()

	db := testutil.SetupTestDB(t)
	files, err := uploads.New(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create upload store: %v", err)
	}
	return NewRouter(db, testutil.GetTestConfig(), files)
}

func TestHealthEndpoint(t *testing.T) {
	mux := newTestRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	mux := newTestRouter(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "mitv-server API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestRouteExistence(t *testing.T) {
	mux := newTestRouter(t)

	// Every route should be registered: none of these may 404 or 405
	routes := []struct {
		method string
		path   string
	}{
		{"POST", "/api/auth/login"},
		{"POST", "/api/reseller/activate"},
		{"POST", "/api/reseller/deactivate"},
		{"POST", "/api/reseller/uploadM3U"},
		{"GET", "/api/reseller/users"},
		{"GET", "/api/checkDevice"},
	}

	for _, route := range routes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			req := httptest.NewRequest(route.method, route.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code == http.StatusNotFound || w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s not registered (status %d)", route.method, route.path, w.Code)
			}
		})
	}
}

func TestResellerRoutesRequireToken(t *testing.T) {
	mux := newTestRouter(t)

	routes := []struct {
		method string
		path   string
	}{
		{"POST", "/api/reseller/activate"},
		{"POST", "/api/reseller/deactivate"},
		{"POST", "/api/reseller/uploadM3U"},
		{"GET", "/api/reseller/users"},
	}

	for _, route := range routes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			req := httptest.NewRequest(route.method, route.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("Expected 401 without token, got %d", w.Code)
			}

			var resp models.ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode error body: %v", err)
			}
			if resp.Error != "No token" {
				t.Errorf("Expected error 'No token', got '%s'", resp.Error)
			}
		})
	}
}

func TestCheckDeviceIsPublic(t *testing.T) {
	db := testutil.SetupTestDB(t)
	files, err := uploads.New(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create upload store: %v", err)
	}
	mux := NewRouter(db, testutil.GetTestConfig(), files)

	testutil.InsertTestDevice(t, db, "AA:BB", true, time.Now().AddDate(0, 0, 5))

	req := httptest.NewRequest("GET", "/api/checkDevice?mac=AA:BB", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200 without auth, got %d. Body: %s", w.Code, w.Body.String())
	}

	var resp models.CheckDeviceResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !resp.Active {
		t.Error("Expected active=true")
	}
}
