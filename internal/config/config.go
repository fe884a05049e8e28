package config

import (
	"fmt"
	"strings"
	"time"

	pkgconfig "github.com/darwin-elegiga/backend-theme/pkg/config"
)

// Config holds all configuration for the theme service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"THEME_HTTP_PORT" envDefault:"8000"`

	// Asset URLs. StaticBaseURL prefixes every relative asset path in a
	// brand configuration; FontCSSBaseURL prefixes the generated fonts.css
	// endpoint and defaults to StaticBaseURL with a trailing /static
	// stripped.
	StaticBaseURL  string `env:"STATIC_BASE_URL" envDefault:"http://localhost:8000/static"`
	FontCSSBaseURL string `env:"FONT_CSS_BASE_URL" envDefault:""`

	// Brand catalog and static asset locations
	BrandsConfigPath string `env:"BRANDS_CONFIG_PATH" envDefault:"config/brands.json"`
	StaticDir        string `env:"STATIC_DIR" envDefault:"static"`

	// Theme cache. CACHE_TTL is plain integer seconds.
	EnableCache     bool   `env:"ENABLE_CACHE" envDefault:"true"`
	CacheTTLSeconds int    `env:"CACHE_TTL" envDefault:"3600"`
	CacheBackend    string `env:"CACHE_BACKEND" envDefault:"memory"`

	// Redis (only used when CACHE_BACKEND=redis)
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Verification API for access code resolution; empty disables it.
	VerificationAPIURL string `env:"VERIFICATION_API_URL" envDefault:""`

	// CORS
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`

	// Tracing
	TracingEnabled  bool    `env:"OTEL_TRACES_ENABLED" envDefault:"false"`
	OTLPEndpoint    string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	TraceSampleRate float64 `env:"OTEL_TRACES_SAMPLE_RATE" envDefault:"1.0"`

	// pprof endpoints are only reachable from these CIDRs; empty disables.
	PprofAllowedCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"" envSeparator:","`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load theme config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validate theme config: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.CacheBackend != "memory" && c.CacheBackend != "redis" {
		return fmt.Errorf("CACHE_BACKEND must be memory or redis, got %q", c.CacheBackend)
	}
	if c.CacheTTLSeconds < 0 {
		return fmt.Errorf("CACHE_TTL must not be negative, got %d", c.CacheTTLSeconds)
	}
	if c.StaticBaseURL == "" {
		return fmt.Errorf("STATIC_BASE_URL must not be empty")
	}
	return nil
}

// CacheTTL returns the theme cache lifetime as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// FontCSSBase returns the effective base URL for generated stylesheet URLs:
// the explicit FONT_CSS_BASE_URL, or StaticBaseURL without its /static
// suffix.
func (c *Config) FontCSSBase() string {
	if c.FontCSSBaseURL != "" {
		return c.FontCSSBaseURL
	}
	base := strings.TrimRight(c.StaticBaseURL, "/")
	return strings.TrimSuffix(base, "/static")
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
