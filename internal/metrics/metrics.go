// Package metrics exposes Prometheus collectors for the HTTP API and the calculators.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"aws-cost-calc/core/types"
)

const (
	RequestsCollectorName     = "awscostcalc_http_requests_total"
	LatencyCollectorName      = "awscostcalc_http_request_duration_milliseconds"
	CalculationsCollectorName = "awscostcalc_calculations_total"
	PeriodsCollectorName      = "awscostcalc_projection_periods"
)

// Calculation outcomes
const (
	OutcomeSuccess = "success"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

var latencyBuckets = []float64{1, 5, 25, 100, 500, 1000}

// Metrics owns a private registry so several servers can coexist in one process
type Metrics struct {
	registry *prometheus.Registry

	requests     *prometheus.CounterVec
	latency      *prometheus.HistogramVec
	calculations *prometheus.CounterVec
	periods      prometheus.Histogram
}

// New creates and registers every collector for the named service
func New(service string) *Metrics {
	labels := prometheus.Labels{"service": service}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        RequestsCollectorName,
			Help:        "Number of HTTP requests partitioned by status code, method and HTTP path.",
			ConstLabels: labels,
		}, []string{"code", "method", "path"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        LatencyCollectorName,
			Help:        "Time spent on the request partitioned by status code, method and HTTP path.",
			ConstLabels: labels,
			Buckets:     latencyBuckets,
		}, []string{"code", "method", "path"}),
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        CalculationsCollectorName,
			Help:        "Number of calculations partitioned by calculator and outcome.",
			ConstLabels: labels,
		}, []string{"calculator", "outcome"}),
		periods: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        PeriodsCollectorName,
			Help:        "Number of periods requested per archive projection.",
			ConstLabels: labels,
			Buckets:     []float64{1, 12, 36, 60, 120, 600, 1200},
		}),
	}

	m.registry.MustRegister(
		m.requests,
		m.latency,
		m.calculations,
		m.periods,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware counts requests and their latency by route pattern
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		path := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			path = rctx.RoutePattern()
		}
		code := strconv.Itoa(ww.Status())
		m.requests.WithLabelValues(code, r.Method, path).Inc()
		m.latency.WithLabelValues(code, r.Method, path).Observe(float64(time.Since(start).Milliseconds()))
	}
	return http.HandlerFunc(fn)
}

// ObserveCalculation counts one calculator run
func (m *Metrics) ObserveCalculation(calculator types.Calculator, outcome string) {
	m.calculations.WithLabelValues(string(calculator), outcome).Inc()
}

// ObservePeriods records the length of a projection
func (m *Metrics) ObservePeriods(n int) {
	m.periods.Observe(float64(n))
}
