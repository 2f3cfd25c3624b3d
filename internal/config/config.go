package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings, read once at startup and treated as
// immutable. The JWT secret lives here so token handling never reaches into
// process environment on its own.
type Config struct {
	Port      string
	DBPath    string
	LogLevel  string
	JWTSecret string
	TokenTTL  time.Duration

	// Requests per minute allowed on register/login, per client IP.
	AuthRateLimit int
}

// Load reads configuration from the environment, honoring a .env file when
// present. OHANA_JWT_SECRET is required.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("OHANA_PORT", "8080"),
		DBPath:        getEnv("OHANA_DB_PATH", "ohana.db"),
		LogLevel:      getEnv("OHANA_LOG_LEVEL", "info"),
		JWTSecret:     os.Getenv("OHANA_JWT_SECRET"),
		TokenTTL:      getEnvDuration("OHANA_TOKEN_TTL", 24*time.Hour),
		AuthRateLimit: getEnvInt("OHANA_AUTH_RATE_LIMIT", 10),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("required environment variable OHANA_JWT_SECRET is not set")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
