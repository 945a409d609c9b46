// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Generation outcomes
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

var (
	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "architect_generations_total",
			Help: "Total number of prompt-to-script generations",
		},
		[]string{"outcome"},
	)

	GenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "architect_generation_duration_seconds",
			Help:    "Duration of extraction plus synthesis in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
	)

	FeaturesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "architect_features_total",
			Help: "Specification values produced by successful generations",
		},
		[]string{"field", "value"},
	)

	ScriptBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "architect_script_bytes",
			Help:    "Size of generated scripts in bytes",
			Buckets: prometheus.ExponentialBuckets(4096, 2, 10),
		},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "architect_http_requests_total",
			Help: "Total number of HTTP requests by route and status code",
		},
		[]string{"method", "route", "status"},
	)

	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "architect_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
		[]string{"route"},
	)
)
