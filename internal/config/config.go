// Package config loads the application configuration from the
// environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/workielk/workie-api/internal/db"
)

// Config holds the runtime configuration for the API server
type Config struct {
	ListenAddr string
	DB         db.Options
}

// Load reads the configuration from the environment. A .env file is
// loaded first when present.
func Load() (*Config, error) {
	// Missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	port, err := intEnv("DB_PORT", db.DefaultPort)
	if err != nil {
		return nil, err
	}

	return &Config{
		ListenAddr: GetEnv("LISTEN_ADDR", ":8080"),
		DB: db.Options{
			Host:     GetEnv("DB_HOST", db.DefaultHost),
			User:     GetEnv("DB_USER", db.DefaultUser),
			Password: GetEnv("DB_PASSWORD", db.DefaultPassword),
			DBName:   GetEnv("DB_NAME", db.DefaultDBName),
			Port:     port,
		},
	}, nil
}

// GetEnv retrieves the value of an environment variable with a
// fallback value if not set
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
