// Package config loads and validates service configuration from the
// environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/msundar/receipt-processor/internal/points"
)

// Config holds everything the server needs to start. Values come from the
// environment (a .env file is loaded at process start if present); the serve
// command may override the port via its flag.
type Config struct {
	// Port the HTTP server listens on.
	Port int `validate:"gte=1,lte=65535"`

	// Ruleset selects the scoring variant: "standard" or "extended".
	// Extended adds the g-description bonus and duplicate rejection.
	Ruleset points.Ruleset `validate:"oneof=standard extended"`
}

// FromEnv builds a Config from environment variables, applying defaults for
// anything unset: PORT (default 8080) and RECEIPT_RULESET (default
// "standard").
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:    8080,
		Ruleset: points.RulesetStandard,
	}

	if raw := os.Getenv("PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("config error: PORT must be an integer, got %q", raw)
		}
		cfg.Port = port
	}

	if raw := os.Getenv("RECEIPT_RULESET"); raw != "" {
		cfg.Ruleset = points.Ruleset(raw)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}
