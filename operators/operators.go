// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package operators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/danielhkuo/mitv-server/store"
)

const (
	// DefaultUsername is the operator seeded on first boot.
	DefaultUsername = "admin"
	// defaultPassword must be changed in any real deployment; main logs a
	// warning when the seed runs.
	defaultPassword = "admin"

	bcryptCost = 10
)

// ErrNotFound is returned when no operator has the requested username.
var ErrNotFound = errors.New("operator not found")

// Operator is one row of the resellers table.
type Operator struct {
	ID           int64
	Username     string
	PasswordHash string
}

// Store reads and writes operator credentials. Passwords are stored as
// bcrypt hashes, never in the clear.
type Store struct {
	db *store.DB
}

func NewStore(db *store.DB) *Store {
	return &Store{db: db}
}

// FindByUsername looks up an operator. The match is exact and
// case-sensitive; no normalization is applied.
func (s *Store) FindByUsername(ctx context.Context, username string) (*Operator, error) {
	var op Operator
	err := s.db.FetchOne(ctx, `
		SELECT id, username, password_hash FROM resellers WHERE username = ?
	`, []any{username}, &op.ID, &op.Username, &op.PasswordHash)
	if errors.Is(err, store.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("look up operator %q: %w", username, err)
	}
	return &op, nil
}

// Create inserts a new operator with a bcrypt-hashed password.
func (s *Store) Create(ctx context.Context, username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if _, err := s.db.Execute(ctx, `
		INSERT INTO resellers (username, password_hash) VALUES (?, ?)
	`, username, string(hash)); err != nil {
		return fmt.Errorf("insert operator %q: %w", username, err)
	}
	return nil
}

// EnsureDefault seeds the well-known admin operator if it does not exist
// yet. Runs on every boot; after the first one it finds the row and no-ops.
func (s *Store) EnsureDefault(ctx context.Context) error {
	_, err := s.FindByUsername(ctx, DefaultUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}

	if err := s.Create(ctx, DefaultUsername, defaultPassword); err != nil {
		return fmt.Errorf("seed default operator: %w", err)
	}
	slog.Warn("default operator created, change its password", "username", DefaultUsername)
	return nil
}
