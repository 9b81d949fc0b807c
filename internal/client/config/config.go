package config

import "time"

// Config holds runtime settings for the Witter CLI.
//
// Fields:
//   - BaseURL: base URL of the backend REST API.
//   - RequestTimeout: per-request timeout for API calls.
//   - DatabasePath: path to the local sqlite file holding session state.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	DatabasePath   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
	c.DatabasePath = "witter.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), the environment, and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
