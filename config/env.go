package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Load reads a .env file when present and returns the default
// configuration with environment overrides applied. Store credentials
// follow the usual AWS variable names.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using process environment")
	}

	cfg := DefaultConfig()

	if value, ok := EnvString("AIRLINE_NAME"); ok {
		cfg.AirlineName = value
	}
	if value, ok := EnvString("REVIEWS_BASE_URL"); ok {
		cfg.BaseURL = value
	}
	if value, ok := EnvString("REVIEWS_BUCKET"); ok {
		cfg.Bucket = value
	}
	if value, ok := EnvString("REVIEWS_DATA_TYPE"); ok {
		cfg.DataType = value
	}
	if value, ok := EnvString("AWS_DEFAULT_REGION"); ok {
		cfg.Region = value
	}
	if value, ok := EnvString("AWS_ACCESS_KEY_ID"); ok {
		cfg.StoreAccessKey = value
	}
	if value, ok := EnvString("AWS_SECRET_ACCESS_KEY"); ok {
		cfg.StoreSecretKey = value
	}
	if value, ok := EnvString("S3_ENDPOINT"); ok {
		cfg.StoreEndpoint = value
	}
	if value, ok := EnvString("SCRAPER_METRICS_ADDR"); ok {
		cfg.MetricsAddr = value
	}
	if value, ok, err := EnvInt("SCRAPER_TIMEOUT_MS"); err != nil {
		slog.Warn("invalid SCRAPER_TIMEOUT_MS, keeping default", "error", err)
	} else if ok {
		cfg.Timeout = time.Duration(value) * time.Millisecond
	}
	if value, ok, err := EnvInt("SCRAPER_CACHE_SIZE"); err != nil {
		slog.Warn("invalid SCRAPER_CACHE_SIZE, keeping default", "error", err)
	} else if ok {
		cfg.CacheSize = value
	}

	return cfg
}

// EnvString returns the value of an environment variable and whether it
// was set to something non-empty.
func EnvString(key string) (string, bool) {
	value := os.Getenv(key)
	return value, value != ""
}

// EnvInt parses an integer environment variable. The second return
// value reports whether the variable was set at all.
func EnvInt(key string) (int, bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, false, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, true, fmt.Errorf("parse %s=%q: %w", key, raw, err)
	}
	return value, true, nil
}
