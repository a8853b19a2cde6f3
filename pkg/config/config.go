package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/joho/godotenv"
)

// Environment name constants used in ENVIRONMENT config field.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTesting     = "testing"
)

// Config holds all configuration for the application
type Config struct {
	// HTTP
	Addr string `conf:"default::8080,env:ADDR"`

	// Order endpoint the form submits to
	OrderEndpoint  string        `conf:"default:http://localhost:9009/api/order,env:ORDER_ENDPOINT"`
	GatewayTimeout time.Duration `conf:"default:10s,env:GATEWAY_TIMEOUT"`

	// Redis; empty disables the draft cache and the Redis session store
	RedisURL string        `conf:"env:REDIS_URL"`
	DraftTTL time.Duration `conf:"default:30m,env:DRAFT_TTL"`

	// Application
	LogLevel    string `conf:"default:info,env:LOG_LEVEL"`
	Environment string `conf:"default:development,enum:development|testing|production,env:ENVIRONMENT"`

	// Session
	SessionAuthKey       string `conf:"default:dev-auth-key-32-bytes-long!!!,env:SESSION_AUTH_KEY,noprint"`
	SessionEncryptionKey string `conf:"default:dev-encryption-key-32-bytes!!,env:SESSION_ENCRYPTION_KEY,noprint"`

	// CORS: comma-separated list of allowed origins; use * to allow all (dev only)
	CORSAllowedOrigins string `conf:"default:*,env:CORS_ALLOWED_ORIGINS"`

	// Observability
	ServiceName    string `conf:"default:pizzaorder,env:SERVICE_NAME"`
	ServiceVersion string `conf:"default:dev,env:SERVICE_VERSION"`
	OtelEndpoint   string `conf:"env:OTEL_ENDPOINT"`
	SentryDSN      string `conf:"env:SENTRY_DSN,noprint"`
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	var cfg Config
	_ = godotenv.Load()
	if _, err := conf.Parse("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.OrderEndpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("ORDER_ENDPOINT must be an absolute http(s) URL, got %q", c.OrderEndpoint)
	}
	if c.GatewayTimeout < 0 {
		return fmt.Errorf("GATEWAY_TIMEOUT must not be negative")
	}
	return nil
}

// RedisEnabled reports whether a Redis URL was configured.
func (c *Config) RedisEnabled() bool {
	return strings.TrimSpace(c.RedisURL) != ""
}

// ValidateForProduction enforces security requirements when ENVIRONMENT=production.
// Returns an error if any critical settings are missing or unsafe.
// No-ops for non-production environments.
func ValidateForProduction(cfg *Config) error {
	if cfg.Environment != EnvProduction {
		return nil
	}

	var errs []string

	if len(cfg.SessionAuthKey) < 32 {
		errs = append(errs, fmt.Sprintf(
			"SESSION_AUTH_KEY must be at least 32 bytes (got %d); generate with: openssl rand -base64 32",
			len(cfg.SessionAuthKey),
		))
	}

	if len(cfg.SessionEncryptionKey) < 16 {
		errs = append(errs, fmt.Sprintf(
			"SESSION_ENCRYPTION_KEY must be at least 16 bytes (got %d); generate with: openssl rand -base64 16",
			len(cfg.SessionEncryptionKey),
		))
	}

	if cfg.LogLevel == "debug" {
		errs = append(errs, "LOG_LEVEL must not be 'debug' in production (may leak sensitive data)")
	}

	if strings.HasPrefix(cfg.OrderEndpoint, "http://localhost") {
		errs = append(errs, "ORDER_ENDPOINT must not point at localhost in production")
	}

	if len(errs) == 0 {
		return nil
	}

	return fmt.Errorf("production config validation failed: %s", strings.Join(errs, "; "))
}
