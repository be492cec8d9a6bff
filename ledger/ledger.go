// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/mitv-server/models"
	"github.com/danielhkuo/mitv-server/store"
)

var (
	// ErrInvalidDuration rejects non-positive activation durations.
	ErrInvalidDuration = errors.New("duration must be a positive number of days")
	// ErrNotFound is returned when an operation targets a MAC that was
	// never activated.
	ErrNotFound = errors.New("device not found")
)

// Status is the answer to "is this device currently usable". Active is the
// effective predicate (stored flag AND unexpired), computed at read time.
type Status struct {
	Active    bool
	M3UURL    *string
	ExpiresAt *time.Time
}

// Ledger owns the device activation records. There is at most one record
// per MAC; activation overwrites it in place and deactivation flips the
// flag without deleting anything.
type Ledger struct {
	db *store.DB

	// now is read once per operation so every comparison within a call
	// sees the same instant. Tests swap it for a fixed clock.
	now func() time.Time
}

func New(db *store.DB) *Ledger {
	return &Ledger{db: db, now: time.Now}
}

// Activate creates or fully renews the record for mac and returns the new
// expiry. An existing record is overwritten outright: password, playlist,
// flag and expiry are all replaced, so re-activating an expired or
// deactivated device starts a fresh window from now.
func (l *Ledger) Activate(ctx context.Context, mac, password string, durationDays int, m3uURL string) (time.Time, error) {
	if durationDays <= 0 {
		return time.Time{}, ErrInvalidDuration
	}

	expires := l.now().UTC().AddDate(0, 0, durationDays)
	stamp := expires.Format(time.RFC3339)

	affected, err := l.db.Execute(ctx, `
		UPDATE devices SET password = ?, m3u_url = ?, active = ?, expires_at = ? WHERE mac = ?
	`, password, m3uURL, true, stamp, mac)
	if err != nil {
		return time.Time{}, fmt.Errorf("renew device %s: %w", mac, err)
	}

	if affected == 0 {
		if _, err := l.db.Execute(ctx, `
			INSERT INTO devices (mac, password, m3u_url, active, expires_at) VALUES (?, ?, ?, ?, ?)
		`, mac, password, m3uURL, true, stamp); err != nil {
			return time.Time{}, fmt.Errorf("insert device %s: %w", mac, err)
		}
	}

	return expires, nil
}

// Deactivate flips the active flag off. The record must exist: a missing
// row returns ErrNotFound instead of silently succeeding, so a typo'd MAC
// is visible to the operator.
func (l *Ledger) Deactivate(ctx context.Context, mac string) error {
	affected, err := l.db.Execute(ctx, `
		UPDATE devices SET active = ? WHERE mac = ?
	`, false, mac)
	if err != nil {
		return fmt.Errorf("deactivate device %s: %w", mac, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Status reports whether mac is effectively active right now. The expiry
// always wins over a stale stored flag. A never-activated MAC is simply
// inactive, not an error.
func (l *Ledger) Status(ctx context.Context, mac string) (Status, error) {
	var (
		active  bool
		m3u     sql.NullString
		expires sql.NullString
	)
	err := l.db.FetchOne(ctx, `
		SELECT active, m3u_url, expires_at FROM devices WHERE mac = ?
	`, []any{mac}, &active, &m3u, &expires)
	if errors.Is(err, store.ErrNoRows) {
		return Status{}, nil
	}
	if err != nil {
		return Status{}, fmt.Errorf("look up device %s: %w", mac, err)
	}

	var st Status
	// An empty playlist means none was configured; report it as absent.
	if m3u.Valid && m3u.String != "" {
		st.M3UURL = &m3u.String
	}
	if expires.Valid {
		t, err := time.Parse(time.RFC3339, expires.String)
		if err != nil {
			return Status{}, fmt.Errorf("parse expiry for %s: %w", mac, err)
		}
		st.ExpiresAt = &t
		st.Active = active && t.After(l.now())
	}
	return st, nil
}

// ListAll returns every device record, newest insertion first, for the
// reseller dashboard.
func (l *Ledger) ListAll(ctx context.Context) ([]models.DeviceSummary, error) {
	devices := []models.DeviceSummary{}

	err := l.db.FetchAll(ctx, `
		SELECT mac, m3u_url, active, expires_at FROM devices ORDER BY id DESC
	`, nil, func(rows *sql.Rows) error {
		var (
			d       models.DeviceSummary
			m3u     sql.NullString
			expires sql.NullString
		)
		if err := rows.Scan(&d.MAC, &m3u, &d.Active, &expires); err != nil {
			return err
		}
		if m3u.Valid && m3u.String != "" {
			d.M3UURL = &m3u.String
		}
		if expires.Valid {
			t, err := time.Parse(time.RFC3339, expires.String)
			if err != nil {
				return err
			}
			d.ExpiresAt = &t
		}
		devices = append(devices, d)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	return devices, nil
}
