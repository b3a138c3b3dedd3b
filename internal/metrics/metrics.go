// Package metrics holds the Prometheus registry and instrumentation
// helpers.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Business metrics
	analysesTotal     *prometheus.CounterVec
	analysisDuration  prometheus.Histogram
	conflictsTotal    *prometheus.CounterVec
	collectorRequests *prometheus.CounterVec
	llmRequests       *prometheus.CounterVec
	llmTokens         *prometheus.CounterVec
	watchlistSymbols  prometheus.Gauge
}

// NewRegistry creates a metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
		),

		analysesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "confluence_analyses_total",
				Help: "Total number of analyses completed",
			},
			[]string{"recommendation"},
		),
		analysisDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "confluence_analysis_duration_seconds",
				Help:    "Analysis duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		conflictsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "confluence_conflicts_total",
				Help: "Total number of technical/fundamental conflicts detected",
			},
			[]string{"type"},
		),
		collectorRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "confluence_collector_requests_total",
				Help: "Total number of collector fetches",
			},
			[]string{"collector", "status"},
		),
		llmRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "confluence_llm_requests_total",
				Help: "Total number of LLM requests",
			},
			[]string{"provider", "status"},
		),
		llmTokens: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "confluence_llm_tokens_total",
				Help: "Total LLM tokens consumed",
			},
			[]string{"provider", "direction"},
		),
		watchlistSymbols: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "confluence_watchlist_symbols",
				Help: "Number of symbols in the watchlist",
			},
		),
	}

	reg.MustRegister(
		r.httpRequestsTotal,
		r.httpRequestDuration,
		r.httpRequestsInFlight,
		r.analysesTotal,
		r.analysisDuration,
		r.conflictsTotal,
		r.collectorRequests,
		r.llmRequests,
		r.llmTokens,
		r.watchlistSymbols,
	)

	return r
}

// RecordRequest records metrics for an HTTP request.
func (r *Registry) RecordRequest(method, path string, status int, duration float64) {
	r.httpRequestsTotal.WithLabelValues(method, path, statusToString(status)).Inc()
	r.httpRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// InFlightInc increments in-flight requests.
func (r *Registry) InFlightInc() {
	r.httpRequestsInFlight.Inc()
}

// InFlightDec decrements in-flight requests.
func (r *Registry) InFlightDec() {
	r.httpRequestsInFlight.Dec()
}

// RecordAnalysis records a completed analysis.
func (r *Registry) RecordAnalysis(recommendation string, duration float64) {
	r.analysesTotal.WithLabelValues(recommendation).Inc()
	r.analysisDuration.Observe(duration)
}

// RecordConflict records a detected conflict.
func (r *Registry) RecordConflict(conflictType string) {
	r.conflictsTotal.WithLabelValues(conflictType).Inc()
}

// RecordCollectorRequest records a collector fetch outcome.
func (r *Registry) RecordCollectorRequest(collector, status string) {
	r.collectorRequests.WithLabelValues(collector, status).Inc()
}

// RecordLLMRequest records an LLM call and its token usage.
func (r *Registry) RecordLLMRequest(provider, status string, inputTokens, outputTokens int) {
	r.llmRequests.WithLabelValues(provider, status).Inc()
	r.llmTokens.WithLabelValues(provider, "input").Add(float64(inputTokens))
	r.llmTokens.WithLabelValues(provider, "output").Add(float64(outputTokens))
}

// SetWatchlistSize sets the watchlist size.
func (r *Registry) SetWatchlistSize(size int) {
	r.watchlistSymbols.Set(float64(size))
}

func statusToString(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
