// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/mitv-server/cliparse"
	"github.com/danielhkuo/mitv-server/operators"
	"github.com/danielhkuo/mitv-server/session"
	"github.com/danielhkuo/mitv-server/store"
)

// SetupTestDB opens a fresh SQLite-backed store in a per-test temp dir and
// creates the full schema. The store is closed automatically at cleanup.
func SetupTestDB(t *testing.T) *store.DB {
	t.Helper()

	db, err := store.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.CreateSchema(context.Background()); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return db
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3000,
		DatabaseType: "sqlite",
		TokenSecret:  "test-secret",
		UploadDir:    "uploads",
	}
}

// SeedOperator creates an operator with the given credentials and returns
// a valid bearer token for it.
func SeedOperator(t *testing.T, db *store.DB, username, password string) string {
	t.Helper()

	ops := operators.NewStore(db)
	if err := ops.Create(context.Background(), username, password); err != nil {
		t.Fatalf("Failed to create test operator: %v", err)
	}

	issuer := session.NewIssuer(ops, GetTestConfig().TokenSecret)
	token, err := issuer.Login(context.Background(), username, password)
	if err != nil {
		t.Fatalf("Failed to log in test operator: %v", err)
	}
	return token
}

// InsertTestDevice writes a device row directly, bypassing the ledger, so
// tests can set up arbitrary stored state (stale flags, past expiries).
func InsertTestDevice(t *testing.T, db *store.DB, mac string, active bool, expiresAt time.Time) {
	t.Helper()

	_, err := db.Execute(context.Background(), `
		INSERT INTO devices (mac, password, m3u_url, active, expires_at) VALUES (?, ?, ?, ?, ?)
	`, mac, "device-pass", "http://example.com/list.m3u", active, expiresAt.UTC().Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to insert test device: %v", err)
	}
}

// CountRows returns the number of rows in a table.
func CountRows(t *testing.T, db *store.DB, table string) int {
	t.Helper()

	var n int
	if err := db.FetchOne(context.Background(), "SELECT COUNT(*) FROM "+table, nil, &n); err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}
	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
