// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the MiTV activation server.

The server issues and enforces time-limited activation records for set-top
boxes identified by MAC address, managed by authenticated reseller
operators. Devices never talk to it directly; a polling client asks
/api/checkDevice whether a box is currently active.

# Starting the Server

The server runs on embedded SQLite out of the box:

	go run main.go

or against PostgreSQL:

	DATABASE_URL=postgres://... go run main.go

# Configuration

  - PORT (-p): server port (default: 3000)
  - DATABASE_URL (-d): postgres URL or sqlite file path (default: data.db)
  - DATABASE_TYPE (-t): sqlite or postgres (inferred when unset)
  - APP_SECRET (-secret): bearer-token signing secret
  - UPLOAD_DIR (-uploads): playlist storage directory (default: uploads)

A .env file in the working directory is loaded if present.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - store: the persistence abstraction over both database backends
  - ledger: device activation state and lifecycle rules
  - operators: reseller credential store
  - session: login and bearer-token issuance/verification
  - handlers: HTTP request handlers (auth, reseller, device check)
  - uploads: playlist blob storage
  - router: route definitions using Go 1.22+ routing
  - middleware: auth guard, CORS, logging, JSON helpers
  - models: request/response types
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
