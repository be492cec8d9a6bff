// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/mitv-server/operators"
	"github.com/danielhkuo/mitv-server/store"
)

// setupIssuer builds an issuer over a throwaway SQLite store with one
// known operator. testutil depends on this package, so helpers live here.
func setupIssuer(t *testing.T, secret string) *Issuer {
	t.Helper()

	db, err := store.Open("sqlite", filepath.Join(t.TempDir(), "session_test.db"))
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.CreateSchema(context.Background()); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	ops := operators.NewStore(db)
	if err := ops.Create(context.Background(), "reseller1", "hunter2"); err != nil {
		t.Fatalf("Failed to create test operator: %v", err)
	}

	return NewIssuer(ops, secret)
}

func TestLoginAndVerify(t *testing.T) {
	iss := setupIssuer(t, "test-secret")

	token, err := iss.Login(context.Background(), "reseller1", "hunter2")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if token == "" {
		t.Fatal("Login() returned empty token")
	}

	claims, err := iss.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.Username != "reseller1" {
		t.Errorf("claims.Username = %q, want %q", claims.Username, "reseller1")
	}
	if claims.OperatorID == 0 {
		t.Error("claims.OperatorID = 0, want the operator's row id")
	}

	// 7-day validity window
	ttl := claims.ExpiresAt.Time.Sub(claims.IssuedAt.Time)
	if ttl != TokenTTL {
		t.Errorf("token TTL = %v, want %v", ttl, TokenTTL)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	iss := setupIssuer(t, "test-secret")

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"unknown username", "ghost", "hunter2"},
		{"wrong password", "reseller1", "wrong"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := iss.Login(context.Background(), tt.username, tt.password)
			// Both paths must return the exact same error so callers
			// cannot enumerate usernames
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	iss := setupIssuer(t, "test-secret")

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"truncated jwt", "eyJhbGciOiJIUzI1NiJ9.e30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := iss.Verify(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Verify(%q) error = %v, want ErrInvalidToken", tt.token, err)
			}
		})
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	iss := setupIssuer(t, "secret-a")
	token, err := iss.Login(context.Background(), "reseller1", "hunter2")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	other := setupIssuer(t, "secret-b")
	if _, err := other.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() with wrong secret error = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	iss := setupIssuer(t, "test-secret")

	// Mint a token 8 days in the past so the 7-day TTL has elapsed
	iss.now = func() time.Time { return time.Now().Add(-8 * 24 * time.Hour) }
	token, err := iss.Login(context.Background(), "reseller1", "hunter2")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	iss.now = time.Now
	if _, err := iss.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() of expired token error = %v, want ErrInvalidToken", err)
	}
}
