// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session issues and verifies the bearer tokens that gate every
mutating reseller operation.

# Login

	token, err := issuer.Login(ctx, username, password)

Credentials are checked against the operator store's bcrypt hashes. An
unknown username and a wrong password return the same ErrInvalidCredentials,
and both paths perform exactly one bcrypt comparison so response timing
does not reveal which check failed.

# Tokens

Tokens are HS256-signed JWTs valid for seven days, carrying the operator's
numeric id and username. There is no refresh or rotation; an expired token
means the operator logs in again.

	claims, err := issuer.Verify(token)

Verify returns ErrInvalidToken for anything that is not a currently valid
token signed with this server's secret.
*/
package session
