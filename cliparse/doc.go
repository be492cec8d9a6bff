// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

CLI flags take precedence over environment variables:

  - -p / PORT: server port (default 3000)
  - -d / DATABASE_URL: postgres URL or sqlite file path (default data.db)
  - -t / DATABASE_TYPE: sqlite or postgres; when unset, postgres is
    inferred from a configured DATABASE_URL, sqlite otherwise
  - -secret / APP_SECRET: token signing secret
  - -uploads / UPLOAD_DIR: playlist upload directory (default uploads)

The token secret falls back to the well-known deployment default; main
logs a warning when that happens rather than refusing to start, since a
fresh install must come up with admin/admin anyway.
*/
package cliparse
