package config

import (
	"os"
	"strings"
	"testing"
)

func TestHealthcheckURL(t *testing.T) {
	cfg := &Config{ProbeHost: "localhost", Port: "3000"}
	if got := cfg.HealthcheckURL(); got != "http://localhost:3000/healthcheck" {
		t.Errorf("got %q", got)
	}
	if got := cfg.ListenAddr(); got != ":3000" {
		t.Errorf("ListenAddr: got %q", got)
	}
}

func TestValidateForProduction(t *testing.T) {
	t.Run("non-production is a no-op", func(t *testing.T) {
		cfg := &Config{Environment: EnvDevelopment, StoreDriver: StoreMemory, CORSAllowedOrigins: "*", LogLevel: "debug"}
		if err := ValidateForProduction(cfg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("safe production config passes", func(t *testing.T) {
		cfg := &Config{Environment: EnvProduction, StoreDriver: StoreMongo, CORSAllowedOrigins: "https://app.example.com", LogLevel: "info"}
		if err := ValidateForProduction(cfg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("collects every violation", func(t *testing.T) {
		cfg := &Config{Environment: EnvProduction, StoreDriver: StoreMemory, CORSAllowedOrigins: "*", LogLevel: "debug"}
		err := ValidateForProduction(cfg)
		if err == nil {
			t.Fatal("expected error")
		}
		for _, want := range []string{"STORE_DRIVER", "CORS_ALLOWED_ORIGINS", "LOG_LEVEL"} {
			if !strings.Contains(err.Error(), want) {
				t.Errorf("expected %q in error: %v", want, err)
			}
		}
	})
}

func TestLoad_DefaultsToProduction(t *testing.T) {
	for _, key := range []string{"ENVIRONMENT", "CORS_ALLOWED_ORIGINS", "STORE_DRIVER", "LOG_LEVEL"} {
		if _, ok := os.LookupEnv(key); ok {
			t.Skipf("%s is set in the environment", key)
		}
	}
	args := os.Args
	os.Args = []string{"itemtracker"}
	t.Cleanup(func() { os.Args = args })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Environment != EnvProduction {
		t.Fatalf("Environment = %q, want %q", cfg.Environment, EnvProduction)
	}
	if err := ValidateForProduction(cfg); err != nil {
		t.Fatalf("defaults must pass production validation: %v", err)
	}
}
