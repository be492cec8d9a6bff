// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the JSON request and response types for the MiTV
activation API.

# Conventions

Request fields use snake_case JSON tags matching the panel's payloads
(mac, duration_days, m3u_url). Nullable columns (m3u_url, expires_at)
surface as pointers so absent values serialize as JSON null rather than
zero values.

Timestamps marshal as RFC 3339 instants, the same representation the
store persists.

# Error Shape

Every non-2xx response carries:

	{"error": "message"}

Auth failures use the fixed strings "No token" and "Token inválido" that
the set-top-box panel matches on.
*/
package models
