// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"time"

	// Both backends register themselves with database/sql; Open picks one
	// by dialect name.
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

var (
	// ErrNoRows is returned by FetchOne when the query matches nothing.
	ErrNoRows = sql.ErrNoRows

	// ErrUnavailable marks connection-level failures (timeouts, dropped
	// connections). Callers may retry; handlers map it to 503.
	ErrUnavailable = errors.New("store unavailable")
)

// queryTimeout bounds every single store call. Operations are single
// round-trips, so anything slower than this is a stuck backend.
const queryTimeout = 5 * time.Second

// DB is the single shared handle to the activation store. All reads and
// writes from every component go through its three verbs; only the dialect
// knows which engine is underneath.
type DB struct {
	conn    *sql.DB
	dialect Dialect
}

// Open connects to the backend selected by dbType ("sqlite" or "postgres")
// and verifies the connection. A failure here is fatal to startup: the
// caller must not continue without a working store.
func Open(dbType, url string) (*DB, error) {
	dialect, err := dialectFor(dbType)
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open(dialect.Driver(), url)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", dialect.Name(), err)
	}
	dialect.Configure(conn)

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping %s store: %w: %v", dialect.Name(), ErrUnavailable, err)
	}

	return &DB{conn: conn, dialect: dialect}, nil
}

// Close releases the underlying connection pool.
func (d *DB) Close() error {
	return d.conn.Close()
}

// Backend reports the active dialect name (for logs only; business logic
// must never branch on it).
func (d *DB) Backend() string {
	return d.dialect.Name()
}

// CreateSchema creates all tables for the active backend.
// Safe to call on every boot - uses IF NOT EXISTS.
func (d *DB) CreateSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	if _, err := d.conn.ExecContext(ctx, d.dialect.Schema()); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Execute runs a statement written with ordinal `?` placeholders and
// returns the number of rows affected.
func (d *DB) Execute(ctx context.Context, query string, args ...any) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := d.conn.ExecContext(ctx, d.dialect.Rebind(query), args...)
	if err != nil {
		return 0, wrapErr(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, wrapErr(err)
	}
	return affected, nil
}

// FetchOne runs a query expected to match at most one row and scans it into
// dest. Returns ErrNoRows when nothing matches.
func (d *DB) FetchOne(ctx context.Context, query string, args []any, dest ...any) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := d.conn.QueryRowContext(ctx, d.dialect.Rebind(query), args...).Scan(dest...)
	return wrapErr(err)
}

// FetchAll runs a query and invokes scan once per result row, in the order
// the backend returned them.
func (d *DB) FetchAll(ctx context.Context, query string, args []any, scan func(rows *sql.Rows) error) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := d.conn.QueryContext(ctx, d.dialect.Rebind(query), args...)
	if err != nil {
		return wrapErr(err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return wrapErr(rows.Err())
}

// wrapErr tags connection-level failures as ErrUnavailable so callers can
// distinguish "retry later" from a real fault. Timeouts, dropped connections
// and network errors (a backend that went down after boot surfaces as a dial
// failure) all qualify. ErrNoRows passes through.
func wrapErr(err error) error {
	if err == nil || errors.Is(err, sql.ErrNoRows) {
		return err
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}
