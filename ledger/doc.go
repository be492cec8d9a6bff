// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger holds the device activation state and its lifecycle rules.

# State Model

A device (identified by MAC) is in one of four derived states, never stored
as an enum:

  - never activated: no row
  - active: row with active=true and expiry in the future
  - expired: row with active=true but expiry in the past
  - deactivated: row with active=false

# Operations

	expires, err := led.Activate(ctx, mac, password, days, m3uURL)
	err := led.Deactivate(ctx, mac)
	st, err := led.Status(ctx, mac)
	devices, err := led.ListAll(ctx)

Activate is a full overwrite, not a merge: re-activating a device replaces
password, playlist, flag and expiry in one shot. Deactivate requires the
row to exist and returns ErrNotFound otherwise. Status computes the
effective-active predicate at read time, so an unexpired flag never
overrides a past expiry.

Concurrent activations of the same MAC race at the row level and the last
write wins; the store's own transactional guarantees are the only
serialization. That is accepted behavior, not a bug.
*/
package ledger
