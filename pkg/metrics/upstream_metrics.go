// Package metrics provides Prometheus metrics for outbound calls to the translation and
// language-model services.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Upstream call metrics
var (
	// upstreamCallsTotal records the total number of outbound calls.
	// Labels:
	//   - service: Call stage (e.g., "translation", "composer")
	//   - provider: Backend name (e.g., "google", "anthropic", "gemini", "openai")
	//   - status: Call status ("success" or "error")
	upstreamCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_calls_total",
			Help: "Total number of outbound calls to translation and language-model services",
		},
		[]string{"service", "provider", "status"},
	)

	// upstreamCallDuration records the duration of outbound calls.
	// Buckets: 0.1s .. 120s, model calls for long transcripts take tens of seconds.
	upstreamCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_call_duration_seconds",
			Help:    "Duration of outbound calls in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"service", "provider"},
	)
)

func init() {
	prometheus.MustRegister(upstreamCallsTotal)
	prometheus.MustRegister(upstreamCallDuration)
}

// RecordUpstreamCall records a finished outbound call.
// Parameters:
//   - service: Call stage (e.g., "translation", "composer")
//   - provider: Backend name
//   - err: Call error, nil on success
func RecordUpstreamCall(service, provider string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	upstreamCallsTotal.WithLabelValues(service, provider, status).Inc()
}

// RecordUpstreamDuration records the duration of an outbound call in seconds.
func RecordUpstreamDuration(service, provider string, durationSeconds float64) {
	upstreamCallDuration.WithLabelValues(service, provider).Observe(durationSeconds)
}
