// Package config provides 12-factor configuration management for assetkit.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Identity: organization/application names used to derive per-app directories
//   - Resource: bundle endpoint base URL and local bundle directory
//   - HTTP: fetch client timeout, retries, rate limit and user agent
//   - Logging: Log level and output format
//   - Metrics: optional Prometheus listener
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Fetching bundles from %s\n", cfg.Resource.BaseURL)
//
// Environment Variables:
//   - ORG_NAME, ORG_DOMAIN, APP_NAME, APP_VERSION, STORE_VERSION_PATH
//   - RESOURCE_BASE_URL, RESOURCE_DATA_DIR
//   - HTTP_TIMEOUT, HTTP_RETRIES, HTTP_RATE_LIMIT, HTTP_USER_AGENT
//   - LOG_LEVEL, LOG_DEV
//   - METRICS_ADDR
package config
