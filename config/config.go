package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config holds scraper and loader configuration.
type Config struct {
	AirlineName    string
	BaseURL        string
	ReviewsPerPage int
	Timeout        time.Duration
	UserAgent      string
	CacheSize      int
	MetricsAddr    string

	Bucket         string
	DataType       string // raw or tf
	Region         string
	StoreEndpoint  string
	StoreAccessKey string
	StoreSecretKey string
	StoreSecure    bool

	Verbose bool
}

// DefaultConfig returns conservative defaults for the review site.
func DefaultConfig() *Config {
	return &Config{
		AirlineName:    "Air India",
		BaseURL:        "https://www.airlinequality.com",
		ReviewsPerPage: 10,
		Timeout:        15 * time.Second,
		UserAgent:      "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/117.0.0.0 Safari/537.36",
		CacheSize:      256,
		MetricsAddr:    "",
		Bucket:         "airlines-reviews",
		DataType:       "raw",
		Region:         "us-east-1",
		StoreEndpoint:  "s3.amazonaws.com",
		StoreSecure:    true,
		Verbose:        false,
	}
}

// Validate ensures all configuration values are coherent.
func (c *Config) Validate() error {
	if c.AirlineName == "" {
		return fmt.Errorf("airline name cannot be empty")
	}

	parsedURL, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("base URL must include a host")
	}

	if c.ReviewsPerPage <= 0 {
		return fmt.Errorf("reviews per page must be positive")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.UserAgent == "" {
		return fmt.Errorf("user agent cannot be empty")
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cache size cannot be negative")
	}
	if c.DataType != "raw" && c.DataType != "tf" {
		return fmt.Errorf("data type must be raw or tf")
	}
	if c.Bucket == "" {
		return fmt.Errorf("bucket cannot be empty")
	}

	return nil
}
