/*
Package monitoring provides Prometheus metrics for resource bundle fetching.

# Overview

Metrics are registered on a caller supplied prometheus.Registerer so tests
and embedders can use their own registry. A nil *Metrics records nothing.

# Metrics

- assetkit_fetches_total{outcome}: fetches by outcome (loaded, status, network, persist, register, invalid)
- assetkit_fetch_duration_seconds: fetch latency
- assetkit_fetch_size_bytes: size of successfully loaded bundles
- assetkit_bundles_mounted: bundles currently registered in the namespace
- assetkit_unloads_total{status}: unload attempts

# Usage

	reg := prometheus.NewRegistry()
	metrics := monitoring.NewMetrics(reg)

	timer := monitoring.NewTimer(metrics)
	// ... fetch ...
	timer.Stop(monitoring.OutcomeLoaded, len(body))

# Metrics Endpoint

	mux.Handle("/metrics", monitoring.Handler(reg))
*/
package monitoring
