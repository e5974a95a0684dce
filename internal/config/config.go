package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	DBPath    string
	RateLimit int // Requests per minute per IP
}

// Load reads configuration from a .env file (when present) and the
// environment, falling back to defaults.
func Load() *Config {
	// Missing .env is fine; env vars still apply
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/photos/photos.db"
	}

	rateLimit := 120
	if v := os.Getenv("RATE_LIMIT_PER_MIN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			rateLimit = n
		}
	}

	return &Config{
		Port:      port,
		DBPath:    dbPath,
		RateLimit: rateLimit,
	}
}
