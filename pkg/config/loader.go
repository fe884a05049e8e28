package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Load parses environment variables into the provided struct.
// The struct should use `env` tags to define mappings.
//
// Example:
//
//	type Config struct {
//	    Port          int    `env:"THEME_HTTP_PORT" envDefault:"8000"`
//	    StaticBaseURL string `env:"STATIC_BASE_URL" envDefault:"http://localhost:8000/static"`
//	}
func Load(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}
