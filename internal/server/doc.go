// Package server assembles the assetkit components from configuration.
//
// It orchestrates:
//   - zap logging from LOG_LEVEL / LOG_DEV
//   - the path store over the XDG base directories
//   - the bundle namespace seeded with the compiled-in assets
//   - the resource fetcher and its HTTP client
//   - the script runtime
//   - a Prometheus registry, optionally served on /metrics
//
// Lifecycle:
//  1. Load configuration from the environment
//  2. New wires every component
//  3. RunScript and/or ServeMetrics
//  4. Close on shutdown
package server
