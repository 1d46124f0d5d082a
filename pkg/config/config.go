package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/ardanlabs/conf/v3"
	"github.com/joho/godotenv"
)

// Environment name constants used in ENVIRONMENT config field.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTesting     = "testing"
)

// Store driver names used in STORE_DRIVER config field.
const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

// Config holds all configuration for the application
type Config struct {
	// HTTP
	Port      string `conf:"default:3000,env:PORT"`
	StaticDir string `conf:"default:public,env:STATIC_DIR"`
	// ProbeHost is the host the healthcheck binary dials; the port is Port.
	ProbeHost string `conf:"default:localhost,env:PROBE_HOST"`

	// Store
	StoreDriver   string `conf:"default:mongo,enum:mongo|memory,env:STORE_DRIVER"`
	MongoURI      string `conf:"default:mongodb://localhost:27017,env:MONGO_URI,noprint"`
	MongoDatabase string `conf:"default:items,env:MONGO_DATABASE"`

	// Redis: leave empty to run without the item read cache
	RedisURL string `conf:"env:REDIS_URL"`

	// Application. Development mode is opt-in: it enables the dev greeting and
	// unmasked 500 bodies.
	LogLevel    string `conf:"default:info,env:LOG_LEVEL"`
	Environment string `conf:"default:production,enum:development|testing|production,env:ENVIRONMENT"`

	// CORS: comma-separated list of allowed origins; use * to allow all (dev only)
	CORSAllowedOrigins string `conf:"default:http://localhost:3000,env:CORS_ALLOWED_ORIGINS"`

	// Observability
	ServiceName    string `conf:"default:itemtracker,env:SERVICE_NAME"`
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

	return &cfg, nil
}

// ListenAddr is the address the API server binds to.
func (c *Config) ListenAddr() string {
	return ":" + c.Port
}

// HealthcheckURL is the liveness URL the healthcheck binary probes.
func (c *Config) HealthcheckURL() string {
	return "http://" + net.JoinHostPort(c.ProbeHost, c.Port) + "/healthcheck"
}

// ValidateForProduction enforces safety requirements when ENVIRONMENT=production.
// No-ops for non-production environments.
func ValidateForProduction(cfg *Config) error {
	if cfg.Environment != EnvProduction {
		return nil
	}

	var errs []string

	if cfg.StoreDriver == StoreMemory {
		errs = append(errs, "STORE_DRIVER must not be 'memory' in production (items are lost on restart)")
	}

	if strings.TrimSpace(cfg.CORSAllowedOrigins) == "*" {
		errs = append(errs, "CORS_ALLOWED_ORIGINS must list explicit origins in production")
	}

	if cfg.LogLevel == "debug" {
		errs = append(errs, "LOG_LEVEL must not be 'debug' in production (may leak sensitive data)")
	}

	if len(errs) == 0 {
		return nil
	}

	return fmt.Errorf("production config validation failed: %s", strings.Join(errs, "; "))
}
