package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Request outcomes
const (
	OutcomeSuccess        = "success"
	OutcomeTransportError = "transport_error"
	OutcomeHTTPError      = "http_error"
	OutcomeParseError     = "parse_error"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dappier_client",
			Name:      "requests_total",
			Help:      "Dappier API requests by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dappier_client",
			Name:      "request_duration_seconds",
			Help:      "Round trip latency of Dappier API requests.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)
