package config

import (
	"fmt"
	"os"
)

// Store drivers.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config holds application configuration
type Config struct {
	StoreDriver     string
	DatabaseURL     string
	ServerPort      string
	FrontendURL     string
	AuthEnabled     bool
	TokenSecret     string
	RedisURL        string
	RateLimit       string
	EnableHSTS      bool
	OTELEnabled     bool
	OTELEndpoint    string
	ServerDebugMode bool
}

// Load loads configuration from environment variables.
// Authentication is a deployment-level toggle: a single deployment either runs
// multi-user with token auth or single-tenant without it, never both.
func Load() (*Config, error) {
	cfg := &Config{
		StoreDriver:     getEnv("STORE_DRIVER", StoreDriverPostgres),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:3000"),
		AuthEnabled:     getEnvBool("AUTH_ENABLED", false),
		TokenSecret:     getEnv("TOKEN_SECRET", ""),
		RedisURL:        getEnv("REDIS_URL", ""),
		RateLimit:       getEnv("RATE_LIMIT", "100-M"),
		EnableHSTS:      getEnvBool("ENABLE_HSTS", false),
		OTELEnabled:     getEnvBool("OTEL_ENABLED", false),
		OTELEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		ServerDebugMode: getEnvBool("SERVER_DEBUG_MODE", false),
	}

	switch cfg.StoreDriver {
	case StoreDriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when STORE_DRIVER is %q", StoreDriverPostgres)
		}
	case StoreDriverMemory:
		// No external store needed
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q (must be %q or %q)", cfg.StoreDriver, StoreDriverPostgres, StoreDriverMemory)
	}

	if cfg.AuthEnabled && cfg.TokenSecret == "" {
		return nil, fmt.Errorf("TOKEN_SECRET is required when AUTH_ENABLED is set")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}
