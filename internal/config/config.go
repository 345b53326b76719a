package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds application configuration resolved from the environment
type Config struct {
	// StorageType selects the storage backend: "memory", "file" or "redis"
	StorageType string
	// DataDir is where the file backend keeps its JSON blobs
	DataDir string
	// RedisURL is the connection URL for the redis backend
	RedisURL string

	// Logging
	LogLevel  string // "debug", "info", "warn", "error"
	LogFormat string // "text" or "json"
}

// Load resolves configuration from a .env file (if present) and the
// environment. Missing values fall back to defaults suitable for a single
// workstation: file storage under the user's home directory.
func Load() *Config {
	// Best effort; absence of a .env file is the normal case
	_ = godotenv.Load()

	return &Config{
		StorageType: envString("LAUNDRYDESK_STORAGE", "file"),
		DataDir:     envString("LAUNDRYDESK_DATA_DIR", defaultDataDir()),
		RedisURL:    envString("LAUNDRYDESK_REDIS_URL", "redis://localhost:6379"),
		LogLevel:    envString("LAUNDRYDESK_LOG_LEVEL", "info"),
		LogFormat:   envString("LAUNDRYDESK_LOG_FORMAT", "text"),
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".laundrydesk"
	}
	return filepath.Join(home, ".laundrydesk")
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
