// Package config loads service settings from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// Default provider endpoints. Both services are public and unauthenticated.
const (
	DefaultOverpassURL  = "https://overpass-api.de/api/interpreter"
	DefaultOpenMeteoURL = "https://api.open-meteo.com/v1/forecast"
)

// Config holds all service settings.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	ShutdownTimeout time.Duration

	OpenAI    OpenAIConfig
	Overpass  ProviderConfig
	OpenMeteo ProviderConfig
}

// OpenAIConfig holds text-generation settings.
type OpenAIConfig struct {
	APIKey string
	Model  string
}

// ProviderConfig holds the endpoint and per-call timeout of an upstream
// HTTP provider.
type ProviderConfig struct {
	URL     string
	Timeout time.Duration
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	providerTimeout, err := parseDuration("PROVIDER_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		ShutdownTimeout: shutdownTimeout,
		OpenAI: OpenAIConfig{
			APIKey: os.Getenv("OPENAI_API_KEY"),
			Model:  envOrDefault("OPENAI_MODEL", "gpt-5-nano"),
		},
		Overpass: ProviderConfig{
			URL:     envOrDefault("OVERPASS_URL", DefaultOverpassURL),
			Timeout: providerTimeout,
		},
		OpenMeteo: ProviderConfig{
			URL:     envOrDefault("OPENMETEO_URL", DefaultOpenMeteoURL),
			Timeout: providerTimeout,
		},
	}

	if cfg.OpenAI.APIKey == "" {
		return nil, errors.New("OPENAI_API_KEY is required")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}
