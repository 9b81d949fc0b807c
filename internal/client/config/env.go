package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvBaseURL        = "WITTER_BASE_URL"
	EnvRequestTimeout = "WITTER_REQUEST_TIMEOUT"
	EnvDatabasePath   = "WITTER_DB_PATH"
)

// parseEnv overlays cfg with values from the environment. A .env file in
// the working directory is loaded first if present; variables already set
// in the process environment win over the file.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(EnvRequestTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if v := os.Getenv(EnvDatabasePath); v != "" {
		cfg.DatabasePath = v
	}
}
