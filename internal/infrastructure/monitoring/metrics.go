package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Fetch outcomes used as the "outcome" label.
const (
	OutcomeLoaded   = "loaded"
	OutcomeStatus   = "status"
	OutcomeNetwork  = "network"
	OutcomePersist  = "persist"
	OutcomeRegister = "register"
	OutcomeInvalid  = "invalid"
)

// Metrics holds the fetcher's Prometheus metrics. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	// Fetch metrics
	FetchesTotal  *prometheus.CounterVec
	FetchDuration prometheus.Histogram
	FetchBytes    prometheus.Histogram

	// Namespace metrics
	BundlesMounted prometheus.Gauge
	UnloadsTotal   *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		FetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assetkit_fetches_total",
				Help: "Total number of resource bundle fetches by outcome",
			},
			[]string{"outcome"},
		),
		FetchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "assetkit_fetch_duration_seconds",
				Help:    "Resource bundle fetch duration in seconds",
				Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
		),
		FetchBytes: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "assetkit_fetch_size_bytes",
				Help:    "Size of fetched resource bundles in bytes",
				Buckets: []float64{1000, 10000, 100000, 1000000, 10000000, 100000000},
			},
		),
		BundlesMounted: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "assetkit_bundles_mounted",
				Help: "Number of resource bundles currently mounted",
			},
		),
		UnloadsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assetkit_unloads_total",
				Help: "Total number of resource bundle unloads by status",
			},
			[]string{"status"},
		),
	}
}

// RecordFetch records a finished fetch
func (m *Metrics) RecordFetch(outcome string, duration time.Duration, size int) {
	if m == nil {
		return
	}
	m.FetchesTotal.WithLabelValues(outcome).Inc()
	m.FetchDuration.Observe(duration.Seconds())
	if outcome == OutcomeLoaded {
		m.FetchBytes.Observe(float64(size))
	}
}

// RecordUnload records an unload attempt
func (m *Metrics) RecordUnload(err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.UnloadsTotal.WithLabelValues(status).Inc()
}

// SetBundlesMounted sets the number of mounted bundles
func (m *Metrics) SetBundlesMounted(count int) {
	if m == nil {
		return
	}
	m.BundlesMounted.Set(float64(count))
}

// Timer measures a fetch
type Timer struct {
	start   time.Time
	metrics *Metrics
}

// NewTimer creates a new timer
func NewTimer(metrics *Metrics) *Timer {
	return &Timer{start: time.Now(), metrics: metrics}
}

// Stop stops the timer and records the fetch
func (t *Timer) Stop(outcome string, size int) {
	t.metrics.RecordFetch(outcome, time.Since(t.start), size)
}

// Handler serves the metrics gathered by g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
