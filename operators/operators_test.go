// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package operators

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/danielhkuo/mitv-server/store"
)

// setupStore opens a throwaway SQLite store. testutil depends on this
// package, so the helpers live here instead.
func setupStore(t *testing.T) (*Store, *store.DB) {
	t.Helper()

	db, err := store.Open("sqlite", filepath.Join(t.TempDir(), "operators_test.db"))
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.CreateSchema(context.Background()); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return NewStore(db), db
}

func countOperators(t *testing.T, db *store.DB) int {
	t.Helper()
	var n int
	if err := db.FetchOne(context.Background(), "SELECT COUNT(*) FROM resellers", nil, &n); err != nil {
		t.Fatalf("Failed to count operators: %v", err)
	}
	return n
}

func TestEnsureDefaultIdempotent(t *testing.T) {
	ops, db := setupStore(t)
	ctx := context.Background()

	// N calls must leave exactly one default operator row
	for i := 0; i < 3; i++ {
		if err := ops.EnsureDefault(ctx); err != nil {
			t.Fatalf("EnsureDefault() call %d error = %v", i+1, err)
		}
	}

	if n := countOperators(t, db); n != 1 {
		t.Errorf("Expected exactly 1 operator row, got %d", n)
	}
}

func TestEnsureDefaultSeedsWorkingCredentials(t *testing.T) {
	ops, _ := setupStore(t)
	ctx := context.Background()

	if err := ops.EnsureDefault(ctx); err != nil {
		t.Fatalf("EnsureDefault() error = %v", err)
	}

	op, err := ops.FindByUsername(ctx, DefaultUsername)
	if err != nil {
		t.Fatalf("FindByUsername(%q) error = %v", DefaultUsername, err)
	}
	if op.ID == 0 {
		t.Error("Expected seeded operator to have a nonzero id")
	}
	if op.PasswordHash == "admin" {
		t.Error("Default password stored in the clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte("admin")); err != nil {
		t.Errorf("Seeded hash does not verify the default password: %v", err)
	}
}

func TestCreateAndFind(t *testing.T) {
	ops, _ := setupStore(t)
	ctx := context.Background()

	if err := ops.Create(ctx, "carlos", "s3cret"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	op, err := ops.FindByUsername(ctx, "carlos")
	if err != nil {
		t.Fatalf("FindByUsername() error = %v", err)
	}
	if op.Username != "carlos" {
		t.Errorf("Username = %q, want %q", op.Username, "carlos")
	}
	if op.PasswordHash == "s3cret" {
		t.Error("Password stored in the clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte("s3cret")); err != nil {
		t.Errorf("Stored hash does not verify the password: %v", err)
	}
}

func TestFindByUsernameNotFound(t *testing.T) {
	ops, _ := setupStore(t)

	_, err := ops.FindByUsername(context.Background(), "nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("FindByUsername() error = %v, want ErrNotFound", err)
	}
}

func TestFindByUsernameCaseSensitive(t *testing.T) {
	ops, _ := setupStore(t)
	ctx := context.Background()

	if err := ops.Create(ctx, "Carlos", "pw"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Lookups are exact; no normalization
	if _, err := ops.FindByUsername(ctx, "carlos"); !errors.Is(err, ErrNotFound) {
		t.Errorf("FindByUsername(lowercase) error = %v, want ErrNotFound", err)
	}
	if _, err := ops.FindByUsername(ctx, "Carlos"); err != nil {
		t.Errorf("FindByUsername(exact) error = %v, want nil", err)
	}
}
