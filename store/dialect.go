// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

// Dialect hides everything backend-specific: the registered driver name,
// placeholder syntax, schema DDL, and connection-pool tuning. Nothing
// outside this package may depend on which dialect is active.
type Dialect interface {
	Name() string
	Driver() string
	// Rebind translates ordinal `?` placeholders into the backend's
	// native syntax.
	Rebind(query string) string
	// Schema returns the idempotent DDL for this backend.
	Schema() string
	// Configure applies the backend's concurrency contract to the pool.
	Configure(conn *sql.DB)
}

func dialectFor(name string) (Dialect, error) {
	switch name {
	case "sqlite", "":
		return sqliteDialect{}, nil
	case "postgres":
		return postgresDialect{}, nil
	}
	return nil, fmt.Errorf("unknown database type %q (want sqlite or postgres)", name)
}

type sqliteDialect struct{}

func (sqliteDialect) Name() string   { return "sqlite" }
func (sqliteDialect) Driver() string { return "sqlite" }

// Rebind is the identity for SQLite; `?` is already its native placeholder.
func (sqliteDialect) Rebind(query string) string { return query }

func (sqliteDialect) Schema() string { return sqliteSchema }

// Configure limits the pool to one connection: SQLite serializes writers,
// and a single shared connection avoids SQLITE_BUSY under load.
func (sqliteDialect) Configure(conn *sql.DB) {
	conn.SetMaxOpenConns(1)
}

type postgresDialect struct{}

func (postgresDialect) Name() string   { return "postgres" }
func (postgresDialect) Driver() string { return "postgres" }

// Rebind rewrites each `?` to $1, $2, ... Question marks inside
// single-quoted literals are left alone.
func (postgresDialect) Rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	inLiteral := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inLiteral = !inLiteral
			b.WriteByte(c)
		case c == '?' && !inLiteral:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func (postgresDialect) Schema() string { return postgresSchema }

func (postgresDialect) Configure(conn *sql.DB) {
	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)
}

// expires_at is an RFC 3339 UTC instant stored as TEXT in both engines so
// the ledger reads and compares it identically regardless of backend.

const sqliteSchema = `
-- Reseller operators
CREATE TABLE IF NOT EXISTS resellers (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL
);

-- Device activation records
CREATE TABLE IF NOT EXISTS devices (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    mac TEXT NOT NULL UNIQUE,
    m3u_url TEXT,
    password TEXT,
    active INTEGER NOT NULL DEFAULT 0,
    expires_at TEXT
);

CREATE INDEX IF NOT EXISTS idx_devices_mac ON devices(mac);
`

const postgresSchema = `
-- Reseller operators
CREATE TABLE IF NOT EXISTS resellers (
    id SERIAL PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL
);

-- Device activation records
CREATE TABLE IF NOT EXISTS devices (
    id SERIAL PRIMARY KEY,
    mac TEXT NOT NULL UNIQUE,
    m3u_url TEXT,
    password TEXT,
    active BOOLEAN NOT NULL DEFAULT FALSE,
    expires_at TEXT
);

CREATE INDEX IF NOT EXISTS idx_devices_mac ON devices(mac);
`
