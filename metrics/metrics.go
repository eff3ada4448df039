// Package metrics provides Prometheus metrics for the quote service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// QuoteRequestsTotal is a counter of quote requests by route type.
	QuoteRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quote_requests_total",
			Help: "Total number of quote requests",
		},
		[]string{"route", "status"},
	)

	// ProviderRequestsTotal is a counter of upstream provider calls.
	ProviderRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_requests_total",
			Help: "Total number of upstream aggregator requests",
		},
		[]string{"provider", "status"},
	)

	// ProviderRequestDuration is a histogram of upstream provider latencies.
	ProviderRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "provider_request_duration_seconds",
			Help:    "Upstream aggregator request latencies",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"provider"},
	)

	// SimulatedFallbacksTotal is a counter of responses served entirely
	// from the simulated quote because every provider failed.
	SimulatedFallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "simulated_fallbacks_total",
			Help: "Total number of quote requests answered only by the simulated fallback",
		},
		[]string{"route"},
	)
)

// Init registers all metrics with the default Prometheus registry.
func Init() {
	prometheus.MustRegister(
		QuoteRequestsTotal,
		ProviderRequestsTotal,
		ProviderRequestDuration,
		SimulatedFallbacksTotal,
	)
}
