// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package operators is the credential store for reseller accounts.

Operators live in the resellers table with a bcrypt password hash.
Lookups are exact, case-sensitive username matches:

	op, err := ops.FindByUsername(ctx, "admin")

# Default Operator

On first boot EnsureDefault seeds the well-known admin/admin account so a
fresh install is reachable. The call is idempotent: every later boot finds
the row and does nothing. Production deployments are expected to change
that password immediately; the seed logs a warning to that effect.
*/
package operators
