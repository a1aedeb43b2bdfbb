package config

import (
	"testing"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		"STORE_DRIVER", "DATABASE_URL", "SERVER_PORT", "FRONTEND_URL",
		"AUTH_ENABLED", "TOKEN_SECRET", "REDIS_URL", "RATE_LIMIT",
		"ENABLE_HSTS", "OTEL_ENABLED", "OTEL_EXPORTER_OTLP_ENDPOINT",
		"SERVER_DEBUG_MODE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("STORE_DRIVER", StoreDriverMemory)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.ServerPort != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.ServerPort)
	}
	if cfg.FrontendURL != "http://localhost:3000" {
		t.Errorf("Expected default frontend URL, got %s", cfg.FrontendURL)
	}
	if cfg.AuthEnabled {
		t.Error("Expected auth disabled by default")
	}
	if cfg.RateLimit != "100-M" {
		t.Errorf("Expected default rate limit 100-M, got %s", cfg.RateLimit)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
	}{
		{
			name:    "postgres driver without database url",
			env:     map[string]string{"STORE_DRIVER": StoreDriverPostgres},
			wantErr: true,
		},
		{
			name: "postgres driver with database url",
			env: map[string]string{
				"STORE_DRIVER": StoreDriverPostgres,
				"DATABASE_URL": "postgres://localhost/todos",
			},
		},
		{
			name: "memory driver needs no database url",
			env:  map[string]string{"STORE_DRIVER": StoreDriverMemory},
		},
		{
			name:    "unknown driver",
			env:     map[string]string{"STORE_DRIVER": "sqlite"},
			wantErr: true,
		},
		{
			name: "auth enabled without secret",
			env: map[string]string{
				"STORE_DRIVER": StoreDriverMemory,
				"AUTH_ENABLED": "true",
			},
			wantErr: true,
		},
		{
			name: "auth enabled with secret",
			env: map[string]string{
				"STORE_DRIVER": StoreDriverMemory,
				"AUTH_ENABLED": "true",
				"TOKEN_SECRET": "s3cret",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			_, err := Load()
			if tt.wantErr && err == nil {
				t.Error("Expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"1", true},
		{"yes", true},
		{"false", false},
		{"0", false},
		{"nope", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("TEST_BOOL_KEY", tt.value)
			if got := getEnvBool("TEST_BOOL_KEY", false); got != tt.want {
				t.Errorf("getEnvBool(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
