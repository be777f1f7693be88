// Package monitoring exposes Prometheus metrics for the HTTP surface
// and the chat-completions client.
package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the application's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	llmCalls     *prometheus.CounterVec
	llmDuration  prometheus.Histogram
}

// NewMetrics creates and registers the collectors on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mealforge",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "mealforge",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		llmCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mealforge",
			Name:      "llm_calls_total",
			Help:      "Chat completion calls by outcome.",
		}, []string{"outcome"}),
		llmDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mealforge",
			Name:      "llm_call_duration_seconds",
			Help:      "Chat completion latency.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 45},
		}),
	}

	registry.MustRegister(m.httpRequests, m.httpDuration, m.llmCalls, m.llmDuration)
	return m
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(method, route, status string, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// ObserveLLMCall records one chat completion attempt.
func (m *Metrics) ObserveLLMCall(outcome string, elapsed time.Duration) {
	m.llmCalls.WithLabelValues(outcome).Inc()
	m.llmDuration.Observe(elapsed.Seconds())
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
