package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// DefaultBaseURL is the bundle endpoint used when RESOURCE_BASE_URL is unset.
const DefaultBaseURL = "http://1499.dk/bw"

// Config holds all application configuration.
type Config struct {
	Identity IdentityConfig
	Resource ResourceConfig
	HTTP     HTTPConfig
	Logging  LogConfig
	Metrics  MetricsConfig
}

// IdentityConfig names the application for per-app directory derivation.
type IdentityConfig struct {
	Organization   string `envconfig:"ORG_NAME"`
	Domain         string `envconfig:"ORG_DOMAIN"`
	Application    string `envconfig:"APP_NAME"`
	Version        string `envconfig:"APP_VERSION"`
	IncludeVersion bool   `envconfig:"STORE_VERSION_PATH" default:"false"`
}

// ResourceConfig holds bundle endpoint and storage settings.
type ResourceConfig struct {
	BaseURL string `envconfig:"RESOURCE_BASE_URL" default:"http://1499.dk/bw"`
	// DataDir overrides the directory bundles are persisted to.
	// Empty means the resolved application data path.
	DataDir string `envconfig:"RESOURCE_DATA_DIR"`
}

// HTTPConfig holds fetch client settings. Zero values mean no timeout,
// no retries and no rate limit.
type HTTPConfig struct {
	Timeout   time.Duration `envconfig:"HTTP_TIMEOUT" default:"0s"`
	Retries   int           `envconfig:"HTTP_RETRIES" default:"0"`
	RateLimit float64       `envconfig:"HTTP_RATE_LIMIT" default:"0"`
	UserAgent string        `envconfig:"HTTP_USER_AGENT" default:"assetkit/1.0"`

	// Headers are sent with every fetch, as "Name:value,Name2:value2".
	Headers map[string]string `envconfig:"HTTP_HEADERS"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// MetricsConfig holds the Prometheus listener address. Empty disables it.
type MetricsConfig struct {
	Address string `envconfig:"METRICS_ADDR"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Resource: ResourceConfig{
			BaseURL: DefaultBaseURL,
		},
		HTTP: HTTPConfig{
			UserAgent: "assetkit/1.0",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}
