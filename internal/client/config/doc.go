// Package config loads runtime configuration for the Witter CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables, optionally from a .env file (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend REST API
//	-t int      request timeout (seconds)
//	-f string   path to the local database file
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "10s" or integer nanoseconds:
//
//	{
//	  "base_url": "http://127.0.0.1:8080",
//	  "request_timeout": "10s",
//	  "database_path": "witter.db"
//	}
//
// Primary API
//
//   - type Config                     — holds BaseURL, RequestTimeout and DatabasePath
//   - func LoadConfig() *Config       — builds Config by applying defaults, JSON, env, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
package config
