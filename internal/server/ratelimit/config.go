package ratelimit

import (
	"os"
	"strconv"
	"time"
)

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	Limit           int           // Maximum requests per window (also burst capacity)
	Window          time.Duration // Time window
	CleanupInterval time.Duration // How often idle client buckets are dropped
}

// DefaultConfig returns the configuration used when nothing is set in the
// environment.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		Limit:           1000,
		Window:          time.Minute,
		CleanupInterval: 5 * time.Minute,
	}
}

// LoadConfig loads rate limiting configuration from environment variables,
// falling back to defaults for anything unset.
func LoadConfig() *Config {
	cfg := DefaultConfig()

	cfg.Enabled = getEnvBool("RATE_LIMIT_ENABLED", cfg.Enabled)
	if !cfg.Enabled {
		return cfg
	}

	cfg.Limit = getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", cfg.Limit)
	cfg.Window = getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", cfg.Window)
	cfg.CleanupInterval = getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", cfg.CleanupInterval)
	return cfg
}

func getEnvBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return value
}
