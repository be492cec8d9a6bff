// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP request handlers for the MiTV
activation API.

# Handler Types

Each handler is a struct with its dependencies injected via constructor:

  - AuthHandler: operator login, minting bearer tokens
  - ResellerHandler: activate, deactivate, list devices, upload playlists
  - CheckHandler: the unauthenticated device-status poll

# Auth Boundary

Reseller operations are mounted behind middleware.RequireAuth, so by the
time a handler runs the bearer token has already been verified and the
operator claims are in the request context. Handlers only do field
validation, delegate to the ledger, and map its errors to HTTP statuses:

	400 ValidationError   (missing mac, bad duration, malformed JSON)
	401 InvalidCredentials / InvalidToken
	404 NotFound          (deactivate on a never-activated MAC)
	503 StoreUnavailable  (retryable backend failure)
	500 anything else, message scrubbed

# Device Check

GET /api/checkDevice is deliberately unauthenticated; it exposes only the
effective-active verdict, the playlist URL and the expiry.
*/
package handlers
