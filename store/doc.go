// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the persistence abstraction over the two interchangeable
backends: embedded SQLite (modernc.org/sqlite, single-file deployments) and
PostgreSQL (lib/pq, multi-instance deployments).

# The Three Verbs

Every caller uses the same contract regardless of backend:

	n, err := db.Execute(ctx, "UPDATE devices SET active = ? WHERE mac = ?", false, mac)
	err := db.FetchOne(ctx, "SELECT id FROM resellers WHERE username = ?", []any{name}, &id)
	err := db.FetchAll(ctx, "SELECT ... ORDER BY id DESC", nil, func(rows *sql.Rows) error { ... })

Statements are written with ordinal `?` placeholders; the active dialect
rebinds them to its native syntax ($1, $2, ... for Postgres) before
execution. Business logic never branches on the backend.

# Backend Selection

The backend is chosen exactly once, at startup:

	db, err := store.Open("sqlite", "data.db")
	db, err := store.Open("postgres", "postgres://...")

Open failures are fatal: the process must not start with a broken store.

# Schema

CreateSchema runs the dialect's DDL on every boot; all statements use
IF NOT EXISTS so reruns are no-ops. The expires_at column holds RFC 3339
UTC strings in both engines so expiry comparisons behave identically.

# Timeouts

Every call carries a bounded timeout. A timed-out or dropped connection
surfaces as ErrUnavailable, which callers treat as retryable.
*/
package store
