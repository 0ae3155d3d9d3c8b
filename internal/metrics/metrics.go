package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ExplanationsTotal counts explanation requests, labeled by status.
	ExplanationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "word_explainer_explanations_total",
		Help: "The total number of explanation requests",
	}, []string{"status"}) // status: success, error

	// LLMRequestDuration measures the time taken by a single completion call.
	LLMRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "word_explainer_llm_request_duration_seconds",
		Help:    "Time taken by one completion request",
		Buckets: prometheus.DefBuckets,
	}, []string{"backend", "result"}) // result: success, or the error kind

	// MissingSections counts replies that lacked a section.
	MissingSections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "word_explainer_missing_sections_total",
		Help: "The total number of replies missing a labeled section",
	}, []string{"section"}) // section: definition, mnemonic, example

	// HTTPRequests counts requests to the explain endpoint, labeled by status code.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "word_explainer_http_requests_total",
		Help: "The total number of explain HTTP requests",
	}, []string{"status"})
)
