package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goteo/foundation/core/kernel"
	"github.com/goteo/foundation/core/metrics"
)

func TestHandler(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	m.IncCookieNotice()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "normalizer_cookie_notices_total")
	assert.Contains(t, body, "go_goroutines")
}

func TestCounters(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	m.IncRedirect(metrics.ReasonHTTPS)
	m.IncRedirect(metrics.ReasonHTTPS)
	m.IncRedirect(metrics.ReasonLanguage)
	m.IncSession(metrics.SessionNew)
	m.IncShadowBanner()
	m.IncCacheFlush()

	expected := `
# HELP normalizer_redirects_total Redirects issued while normalizing requests, by reason
# TYPE normalizer_redirects_total counter
normalizer_redirects_total{reason="https"} 2
normalizer_redirects_total{reason="language"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "normalizer_redirects_total"))
}

func TestNilMetrics(t *testing.T) {
	t.Parallel()

	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.IncRedirect(metrics.ReasonHTTPS)
		m.IncSession(metrics.SessionResumed)
		m.IncCookieNotice()
		m.IncShadowBanner()
		m.IncCacheFlush()
		m.Subscribe(kernel.New(nil))
	})
	assert.Nil(t, m.Registry())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubscribe(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	k := kernel.New(kernel.Named("home", "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})))
	m.Subscribe(k)

	k.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", nil))
	k.SubRequest(httptest.NewRequest(http.MethodGet, "/", nil))

	expected := `
# HELP http_requests_total Total HTTP requests by method, route, and status
# TYPE http_requests_total counter
http_requests_total{method="POST",route="home",status="201"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "http_requests_total"))
	n, err := testutil.GatherAndCount(m.Registry(), "http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
