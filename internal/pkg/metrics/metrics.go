package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "balance_resolver"

var (
	// BalanceLookups counts resolver calls by network and outcome ("ok" or the error kind).
	BalanceLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "balance_lookups_total",
		Help:      "Balance lookups by network and outcome.",
	}, []string{"network", "outcome"})

	// BalanceLookupDuration observes the end-to-end latency of a lookup including the price call.
	BalanceLookupDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "balance_lookup_duration_seconds",
		Help:      "Latency of balance lookups.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
	}, []string{"network"})

	// AddressValidations counts validator calls by network, mode and verdict.
	AddressValidations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "address_validations_total",
		Help:      "Address validations by network, mode and verdict.",
	}, []string{"network", "mode", "valid"})

	// RateLimitedRequests counts API requests rejected by the per-client limiter.
	RateLimitedRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_rate_limited_requests_total",
		Help:      "API requests rejected by the per-client rate limiter.",
	})

	registerOnce sync.Once
)

// MustRegisterMetrics registers all collectors with the default registry. Safe to call more than once.
func MustRegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(BalanceLookups, BalanceLookupDuration, AddressValidations, RateLimitedRequests)
	})
}

// ObserveLookup records one finished lookup.
func ObserveLookup(network, outcome string, started time.Time) {
	BalanceLookups.WithLabelValues(network, outcome).Inc()
	BalanceLookupDuration.WithLabelValues(network).Observe(time.Since(started).Seconds())
}
