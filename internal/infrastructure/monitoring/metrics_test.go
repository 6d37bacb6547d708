package monitoring

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordFetch(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.RecordFetch(OutcomeLoaded, 20*time.Millisecond, 2048)
	m.RecordFetch(OutcomeLoaded, 10*time.Millisecond, 1024)
	m.RecordFetch(OutcomeStatus, 5*time.Millisecond, 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.FetchesTotal.WithLabelValues(OutcomeLoaded)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchesTotal.WithLabelValues(OutcomeStatus)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.FetchesTotal.WithLabelValues(OutcomeNetwork)))

	// Only loaded bundles contribute a size sample
	count, err := testutil.GatherAndCount(reg, "assetkit_fetch_size_bytes")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRecordUnload(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.RecordUnload(nil)
	m.RecordUnload(errors.New("not mounted"))
	m.RecordUnload(nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.UnloadsTotal.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UnloadsTotal.WithLabelValues("error")))
}

func TestBundlesMounted(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.SetBundlesMounted(3)
	assert.Equal(t, 3.0, testutil.ToFloat64(m.BundlesMounted))

	m.SetBundlesMounted(0)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.BundlesMounted))
}

func TestTimer(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	timer := NewTimer(m)
	timer.Stop(OutcomeNetwork, 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchesTotal.WithLabelValues(OutcomeNetwork)))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordFetch(OutcomeLoaded, time.Second, 10)
		m.RecordUnload(nil)
		m.SetBundlesMounted(1)
		NewTimer(m).Stop(OutcomeLoaded, 10)
	})
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetrics(reg)

	assert.Panics(t, func() { NewMetrics(reg) })
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	m.RecordFetch(OutcomeLoaded, time.Millisecond, 10)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `assetkit_fetches_total{outcome="loaded"} 1`))
	assert.True(t, strings.Contains(body, "assetkit_bundles_mounted 0"))
}
