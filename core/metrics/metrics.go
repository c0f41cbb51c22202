// Package metrics exposes Prometheus collectors for HTTP traffic and request
// normalization decisions.
//
// All methods are safe on a nil *Metrics, so components can treat metrics as optional.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goteo/foundation/core/kernel"
)

// Redirect reasons.
const (
	ReasonHTTPS    = "https"
	ReasonLanguage = "language"
)

// Session start outcomes.
const (
	SessionNew     = "new"
	SessionResumed = "resumed"
	SessionExpired = "expired"
)

const attrStarted = "_metrics_started"

type Metrics struct {
	reg     *prometheus.Registry
	handler http.Handler

	reqTotal      *prometheus.CounterVec
	reqDur        *prometheus.HistogramVec
	redirects     *prometheus.CounterVec
	sessions      *prometheus.CounterVec
	cookieNotices prometheus.Counter
	shadowBanners prometheus.Counter
	cacheFlushes  prometheus.Counter
}

// New returns a fresh registry with Go and process collectors plus the
// application metrics. Labels are bounded (method, route name, status).
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		reqTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method, route, and status",
		}, []string{"method", "route", "status"}),
		reqDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Request latency by method and route",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"method", "route"}),
		redirects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "normalizer_redirects_total",
			Help: "Redirects issued while normalizing requests, by reason",
		}, []string{"reason"}),
		sessions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "normalizer_sessions_total",
			Help: "Sessions started by outcome (new, resumed, expired)",
		}, []string{"outcome"}),
		cookieNotices: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "normalizer_cookie_notices_total",
			Help: "Cookie consent notices shown to new browsers",
		}),
		shadowBanners: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "normalizer_shadow_banners_total",
			Help: "User shadowing banners injected into HTML responses",
		}),
		cacheFlushes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "normalizer_cache_flushes_total",
			Help: "Cache flushes requested through the cleancache flag",
		}),
	}
	reg.MustRegister(
		m.reqTotal,
		m.reqDur,
		m.redirects,
		m.sessions,
		m.cookieNotices,
		m.shadowBanners,
		m.cacheFlushes,
	)

	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
	m.reg = reg
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.reg
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return m.handler
}

func (m *Metrics) IncRedirect(reason string) {
	if m == nil {
		return
	}
	m.redirects.WithLabelValues(reason).Inc()
}

func (m *Metrics) IncSession(outcome string) {
	if m == nil {
		return
	}
	m.sessions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncCookieNotice() {
	if m == nil {
		return
	}
	m.cookieNotices.Inc()
}

func (m *Metrics) IncShadowBanner() {
	if m == nil {
		return
	}
	m.shadowBanners.Inc()
}

func (m *Metrics) IncCacheFlush() {
	if m == nil {
		return
	}
	m.cacheFlushes.Inc()
}

// Subscribe records request totals and latency for main requests.
// The request listener runs first and the response listener last, so the
// measurement spans every other listener.
func (m *Metrics) Subscribe(k *kernel.Kernel) {
	if m == nil {
		return
	}
	k.AddRequestListener(1000, func(ev *kernel.RequestEvent) {
		ev.Request.SetAttribute(attrStarted, time.Now())
	})
	k.AddResponseListener(-1000, func(ev *kernel.ResponseEvent) {
		if !ev.IsMainRequest() {
			return
		}
		route, _ := ev.Request.Attribute(kernel.AttrRoute).(string)
		if route == "" {
			route = "unmatched"
		}
		method := ev.Request.Method()

		m.reqTotal.WithLabelValues(method, route, strconv.Itoa(ev.Response.StatusCode)).Inc()
		if started, ok := ev.Request.Attribute(attrStarted).(time.Time); ok {
			m.reqDur.WithLabelValues(method, route).Observe(time.Since(started).Seconds())
		}
	})
}
