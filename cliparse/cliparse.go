package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

// DefaultTokenSecret matches the original deployment default. main warns
// loudly when it is still in use.
const DefaultTokenSecret = "CAMBIA_ESTA_CLAVE"

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	TokenSecret  string
	UploadDir    string
}

// ParseFlags validates flags and fills in env-var and default fallbacks
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("mitv-server", flag.ContinueOnError)

	// Network and storage config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (postgres) or file path (sqlite)")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.UploadDir, "uploads", "", "Directory for uploaded playlists")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.TokenSecret, "secret", "", "Token signing secret (prefer APP_SECRET env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3000 // default
		}
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
	}
	if cfg.DatabaseType == "" {
		// Postgres when a server URL is configured, embedded SQLite otherwise
		if cfg.DatabaseURL != "" {
			cfg.DatabaseType = "postgres"
		} else {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "data.db"
	}

	if cfg.TokenSecret == "" {
		cfg.TokenSecret = os.Getenv("APP_SECRET")
	}
	if cfg.TokenSecret == "" {
		cfg.TokenSecret = DefaultTokenSecret
	}

	if cfg.UploadDir == "" {
		cfg.UploadDir = os.Getenv("UPLOAD_DIR")
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "uploads"
	}

	return cfg, nil
}
