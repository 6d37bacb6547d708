// Package main is the assetkit command line tool.
//
// It resolves the per-application data, cache and config directories,
// runs scripts that copy files and fetch resource bundles, and can expose
// fetch metrics for Prometheus.
//
// Configuration:
//   - Environment variables (ORG_NAME, APP_NAME, RESOURCE_BASE_URL, ...)
//   - CLI flags (override env vars)
//
// Usage:
//
//	# Show where the app keeps its files
//	APP_NAME=viewer ./assetkit -paths
//
//	# Fetch the default bundles
//	./assetkit -run res://scripts/bootstrap.js
//
//	# Run a script and keep serving metrics
//	./assetkit -run setup.js -metrics :9090
package main
