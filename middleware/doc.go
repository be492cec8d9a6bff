// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Bearer Auth

RequireAuth wraps every mutating reseller handler:

	mux.HandleFunc("POST /api/reseller/activate",
		middleware.WithLogging(middleware.RequireAuth(issuer, h.Activate)))

A missing Authorization header returns 401 {"error":"No token"}; anything
the session issuer rejects returns 401 {"error":"Token inválido"}. On
success the operator claims land in the request context:

	claims, ok := middleware.OperatorFromContext(r.Context())

# JSON Helpers

JSONResponse and ErrorResponse write JSON bodies with the right headers;
ParseJSONBody decodes request bodies.

# Logging and CORS

WithLogging logs request start/completion with method, path and duration.
CORS allows the admin panel's cross-origin requests and answers preflight.
*/
package middleware
