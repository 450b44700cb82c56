package config

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Port:               "8081",
		ShutdownTimeout:    30 * time.Second,
		SeedFile:           "./data/seed_expenses.yaml",
		DefaultFilterYear:  "2020",
		FilterYears:        []string{"2022", "2021", "2020", "2019"},
		LogLevel:           "info",
		RateLimitPerMinute: 60,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid config",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "empty seed file is allowed",
			mutate:  func(c *Config) { c.SeedFile = "" },
			wantErr: false,
		},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range low",
			mutate:      func(c *Config) { c.Port = "0" },
			wantErr:     true,
			errorString: "invalid port 0: must be between 1 and 65535",
		},
		{
			name:        "invalid port - out of range high",
			mutate:      func(c *Config) { c.Port = "70000" },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "invalid default filter year",
			mutate:      func(c *Config) { c.DefaultFilterYear = "20" },
			wantErr:     true,
			errorString: "invalid default filter year '20'",
		},
		{
			name:        "negative filter year",
			mutate:      func(c *Config) { c.DefaultFilterYear = "-202" },
			wantErr:     true,
			errorString: "invalid default filter year '-202'",
		},
		{
			name:        "empty filter years",
			mutate:      func(c *Config) { c.FilterYears = nil },
			wantErr:     true,
			errorString: "filter years cannot be empty",
		},
		{
			name:        "invalid filter year in list",
			mutate:      func(c *Config) { c.FilterYears = []string{"2021", "next"} },
			wantErr:     true,
			errorString: "invalid filter year 'next'",
		},
		{
			name:        "invalid log level",
			mutate:      func(c *Config) { c.LogLevel = "loud" },
			wantErr:     true,
			errorString: "invalid log level 'loud'",
		},
		{
			name:        "rate limit too low",
			mutate:      func(c *Config) { c.RateLimitPerMinute = 0 },
			wantErr:     true,
			errorString: "invalid rate limit 0: must be at least 1",
		},
		{
			name:        "rate limit too high",
			mutate:      func(c *Config) { c.RateLimitPerMinute = 20000 },
			wantErr:     true,
			errorString: "invalid rate limit 20000: must be at most 10000",
		},
		{
			name:        "shutdown timeout too short",
			mutate:      func(c *Config) { c.ShutdownTimeout = 500 * time.Millisecond },
			wantErr:     true,
			errorString: "invalid shutdown timeout 500ms: must be at least 1 second",
		},
		{
			name:        "shutdown timeout too long",
			mutate:      func(c *Config) { c.ShutdownTimeout = time.Hour },
			wantErr:     true,
			errorString: "invalid shutdown timeout 1h0m0s: must be at most 5 minutes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Config.Validate() error = nil, wantErr %v", tt.wantErr)
					return
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("Config.Validate() error = %v, want error containing %v", err.Error(), tt.errorString)
				}
			} else if err != nil {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ValidateAggregatesErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Port = "abc"
	cfg.LogLevel = "loud"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "invalid port") || !strings.Contains(err.Error(), "invalid log level") {
		t.Fatalf("expected both errors, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	keys := []string{"PORT", "SHUTDOWN_TIMEOUT", "SEED_FILE", "DEFAULT_FILTER_YEAR", "FILTER_YEARS", "LOG_LEVEL", "RATE_LIMIT_PER_MINUTE"}

	t.Run("default values", func(t *testing.T) {
		for _, k := range keys {
			t.Setenv(k, "")
		}
		cfg := Load()

		if cfg.Port != "8081" {
			t.Errorf("Load() Port = %v, want 8081", cfg.Port)
		}
		if cfg.SeedFile != "./data/seed_expenses.yaml" {
			t.Errorf("Load() SeedFile = %v", cfg.SeedFile)
		}
		if cfg.DefaultFilterYear != "2020" {
			t.Errorf("Load() DefaultFilterYear = %v, want 2020", cfg.DefaultFilterYear)
		}
		if !reflect.DeepEqual(cfg.FilterYears, []string{"2022", "2021", "2020", "2019"}) {
			t.Errorf("Load() FilterYears = %v", cfg.FilterYears)
		}
		if cfg.RateLimitPerMinute != 60 || cfg.ShutdownTimeout != 30*time.Second || cfg.LogLevel != "info" {
			t.Errorf("Load() unexpected defaults: %+v", cfg)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("defaults should validate: %v", err)
		}
	})

	t.Run("custom values", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("SHUTDOWN_TIMEOUT", "5s")
		t.Setenv("DEFAULT_FILTER_YEAR", "2021")
		t.Setenv("FILTER_YEARS", " 2021, ,2020 ")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("RATE_LIMIT_PER_MINUTE", "5")
		cfg := Load()

		if cfg.Port != "9090" || cfg.ShutdownTimeout != 5*time.Second || cfg.DefaultFilterYear != "2021" {
			t.Errorf("Load() unexpected values: %+v", cfg)
		}
		if !reflect.DeepEqual(cfg.FilterYears, []string{"2021", "2020"}) {
			t.Errorf("Load() FilterYears = %v", cfg.FilterYears)
		}
		if cfg.LogLevel != "debug" || cfg.RateLimitPerMinute != 5 {
			t.Errorf("Load() unexpected values: %+v", cfg)
		}
	})

	t.Run("invalid numbers fall back to defaults", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_PER_MINUTE", "many")
		t.Setenv("SHUTDOWN_TIMEOUT", "soon")
		t.Setenv("FILTER_YEARS", " , ")
		cfg := Load()
		if cfg.RateLimitPerMinute != 60 || cfg.ShutdownTimeout != 30*time.Second {
			t.Errorf("expected defaults, got %+v", cfg)
		}
		if len(cfg.FilterYears) != 4 {
			t.Errorf("expected default years, got %v", cfg.FilterYears)
		}
	})
}
