// Package config loads server configuration from the environment, with
// optional .env file support for local development.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs to start.
type Config struct {
	// DBPath is the SQLite database file location.
	DBPath string

	// BindAddr is the host:port the HTTP server listens on.
	BindAddr string
}

// Load reads configuration from environment variables. A .env file in the
// working directory is loaded first if present (non-fatal if missing).
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DBPath:   getEnvDefault("DB_PATH", "./data/grouptab.db"),
		BindAddr: getEnvDefault("BIND_ADDR", "0.0.0.0:8080"),
	}
}

func getEnvDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
