package config

import (
	"strings"
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name: "empty airline name",
			mutate: func(cfg *Config) {
				cfg.AirlineName = ""
			},
			wantErr: "airline name",
		},
		{
			name: "empty base url",
			mutate: func(cfg *Config) {
				cfg.BaseURL = ""
			},
			wantErr: "base URL",
		},
		{
			name: "url without host",
			mutate: func(cfg *Config) {
				cfg.BaseURL = "http://"
			},
			wantErr: "base URL",
		},
		{
			name: "zero reviews per page",
			mutate: func(cfg *Config) {
				cfg.ReviewsPerPage = 0
			},
			wantErr: "reviews per page",
		},
		{
			name: "negative timeout",
			mutate: func(cfg *Config) {
				cfg.Timeout = -1 * time.Second
			},
			wantErr: "timeout",
		},
		{
			name: "empty user agent",
			mutate: func(cfg *Config) {
				cfg.UserAgent = ""
			},
			wantErr: "user agent",
		},
		{
			name: "negative cache size",
			mutate: func(cfg *Config) {
				cfg.CacheSize = -1
			},
			wantErr: "cache size",
		},
		{
			name: "unknown data type",
			mutate: func(cfg *Config) {
				cfg.DataType = "parquet"
			},
			wantErr: "data type",
		},
		{
			name: "empty bucket",
			mutate: func(cfg *Config) {
				cfg.Bucket = ""
			},
			wantErr: "bucket",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestEnvInt(t *testing.T) {
	t.Setenv("REVIEWS_TEST_INT", "42")
	value, ok, err := EnvInt("REVIEWS_TEST_INT")
	if err != nil || !ok || value != 42 {
		t.Fatalf("EnvInt = (%d, %v, %v), want (42, true, nil)", value, ok, err)
	}

	if _, ok, _ := EnvInt("REVIEWS_TEST_UNSET"); ok {
		t.Fatalf("unset variable should report ok=false")
	}

	t.Setenv("REVIEWS_TEST_INT", "not-a-number")
	if _, _, err := EnvInt("REVIEWS_TEST_INT"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	t.Setenv("AIRLINE_NAME", "British Airways")
	t.Setenv("AWS_DEFAULT_REGION", "eu-west-2")
	t.Setenv("SCRAPER_TIMEOUT_MS", "2500")

	cfg := Load()

	if cfg.AirlineName != "British Airways" {
		t.Fatalf("airline = %q, want %q", cfg.AirlineName, "British Airways")
	}
	if cfg.Region != "eu-west-2" {
		t.Fatalf("region = %q, want %q", cfg.Region, "eu-west-2")
	}
	if cfg.Timeout != 2500*time.Millisecond {
		t.Fatalf("timeout = %v, want 2.5s", cfg.Timeout)
	}
}
