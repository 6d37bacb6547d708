package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Identity config
	assert.Empty(t, cfg.Identity.Organization)
	assert.Empty(t, cfg.Identity.Application)
	assert.False(t, cfg.Identity.IncludeVersion)

	// Resource config
	assert.Equal(t, DefaultBaseURL, cfg.Resource.BaseURL)
	assert.Empty(t, cfg.Resource.DataDir)

	// HTTP config
	assert.Equal(t, time.Duration(0), cfg.HTTP.Timeout)
	assert.Equal(t, 0, cfg.HTTP.Retries)
	assert.Equal(t, 0.0, cfg.HTTP.RateLimit)
	assert.Equal(t, "assetkit/1.0", cfg.HTTP.UserAgent)

	// Logging config
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	// Metrics config
	assert.Empty(t, cfg.Metrics.Address)
}

func TestLoadOrDefault(t *testing.T) {
	// Should return default when no env vars set
	cfg := LoadOrDefault()

	assert.NotNil(t, cfg)
	assert.Equal(t, DefaultBaseURL, cfg.Resource.BaseURL)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"ORG_NAME":           "Acme",
		"ORG_DOMAIN":         "acme.example",
		"APP_NAME":           "viewer",
		"APP_VERSION":        "2.1",
		"STORE_VERSION_PATH": "true",
		"RESOURCE_BASE_URL":  "https://bundles.acme.example",
		"RESOURCE_DATA_DIR":  "/var/lib/viewer",
		"HTTP_TIMEOUT":       "15s",
		"HTTP_RETRIES":       "2",
		"HTTP_RATE_LIMIT":    "5",
		"HTTP_USER_AGENT":    "viewer/2.1",
		"HTTP_HEADERS":       "X-Bundle-Channel:beta,X-Tenant:acme",
		"LOG_LEVEL":          "debug",
		"LOG_DEV":            "true",
		"METRICS_ADDR":       ":9090",
	}

	for key, value := range envVars {
		err := os.Setenv(key, value)
		require.NoError(t, err)
		defer os.Unsetenv(key)
	}

	cfg, err := Load()
	require.NoError(t, err)

	// Verify identity config
	assert.Equal(t, "Acme", cfg.Identity.Organization)
	assert.Equal(t, "acme.example", cfg.Identity.Domain)
	assert.Equal(t, "viewer", cfg.Identity.Application)
	assert.Equal(t, "2.1", cfg.Identity.Version)
	assert.True(t, cfg.Identity.IncludeVersion)

	// Verify resource config
	assert.Equal(t, "https://bundles.acme.example", cfg.Resource.BaseURL)
	assert.Equal(t, "/var/lib/viewer", cfg.Resource.DataDir)

	// Verify HTTP config
	assert.Equal(t, 15*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, 2, cfg.HTTP.Retries)
	assert.Equal(t, 5.0, cfg.HTTP.RateLimit)
	assert.Equal(t, "viewer/2.1", cfg.HTTP.UserAgent)
	assert.Equal(t, map[string]string{"X-Bundle-Channel": "beta", "X-Tenant": "acme"}, cfg.HTTP.Headers)

	// Verify logging config
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)

	assert.Equal(t, ":9090", cfg.Metrics.Address)
}

func TestLoadWithPartialEnvironmentVariables(t *testing.T) {
	err := os.Setenv("APP_NAME", "viewer")
	require.NoError(t, err)
	defer os.Unsetenv("APP_NAME")

	err = os.Setenv("LOG_LEVEL", "warn")
	require.NoError(t, err)
	defer os.Unsetenv("LOG_LEVEL")

	cfg, err := Load()
	require.NoError(t, err)

	// Verify overridden values
	assert.Equal(t, "viewer", cfg.Identity.Application)
	assert.Equal(t, "warn", cfg.Logging.Level)

	// Verify default values still apply
	assert.Equal(t, DefaultBaseURL, cfg.Resource.BaseURL)
	assert.Equal(t, time.Duration(0), cfg.HTTP.Timeout)
	assert.Empty(t, cfg.Identity.Organization)
}

func TestLoadInvalidDuration(t *testing.T) {
	err := os.Setenv("HTTP_TIMEOUT", "soon")
	require.NoError(t, err)
	defer os.Unsetenv("HTTP_TIMEOUT")

	_, err = Load()
	assert.Error(t, err)

	// LoadOrDefault falls back instead of failing
	cfg := LoadOrDefault()
	assert.Equal(t, time.Duration(0), cfg.HTTP.Timeout)
	assert.Equal(t, DefaultBaseURL, cfg.Resource.BaseURL)
}

func TestHTTPConfig(t *testing.T) {
	tests := []struct {
		name        string
		retries     string
		rateLimit   string
		wantRetries int
		wantRate    float64
	}{
		{
			name:        "default values",
			wantRetries: 0,
			wantRate:    0,
		},
		{
			name:        "custom retries",
			retries:     "3",
			wantRetries: 3,
		},
		{
			name:      "custom rate limit",
			rateLimit: "0.5",
			wantRate:  0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Unsetenv("HTTP_RETRIES")
			os.Unsetenv("HTTP_RATE_LIMIT")

			if tt.retries != "" {
				err := os.Setenv("HTTP_RETRIES", tt.retries)
				require.NoError(t, err)
				defer os.Unsetenv("HTTP_RETRIES")
			}
			if tt.rateLimit != "" {
				err := os.Setenv("HTTP_RATE_LIMIT", tt.rateLimit)
				require.NoError(t, err)
				defer os.Unsetenv("HTTP_RATE_LIMIT")
			}

			cfg := LoadOrDefault()

			assert.Equal(t, tt.wantRetries, cfg.HTTP.Retries)
			assert.Equal(t, tt.wantRate, cfg.HTTP.RateLimit)
		})
	}
}
