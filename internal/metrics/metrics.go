package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Analysis outcomes.
const (
	OutcomeSuccess       = "success"
	OutcomeMissingInput  = "missing_input"
	OutcomeEmptyResponse = "empty_response"
	OutcomeParseFailure  = "parse_failure"
)

var (
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "symptom_analyses_total",
			Help: "Total number of symptom analyses by outcome",
		},
		[]string{"outcome"},
	)

	CompletionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "symptom_completion_duration_seconds",
			Help:    "Duration of completion provider calls in seconds",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 8),
		},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by path and method",
		},
		[]string{"path", "method"},
	)

	SessionStoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_store_errors_total",
			Help: "Total number of session result store failures by operation",
		},
		[]string{"op"},
	)
)
