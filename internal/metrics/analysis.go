package metrics

import "github.com/prometheus/client_golang/prometheus"

// Text-analysis Prometheus metrics.
var (
	AnalysisRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reelsearch",
			Name:      "analysis_requests_total",
			Help:      "Total number of text-analysis requests",
		},
		[]string{"driver", "status"},
	)

	AnalysisRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "reelsearch",
			Name:      "analysis_request_duration_seconds",
			Help:      "Text-analysis request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"driver"},
	)

	AnalysisErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reelsearch",
			Name:      "analysis_errors_total",
			Help:      "Total text-analysis errors",
		},
		[]string{"driver", "error_type"},
	)

	AnalysisTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reelsearch",
			Name:      "analysis_tokens_total",
			Help:      "Total tokens returned by text analysis",
		},
		[]string{"driver"},
	)
)

var analysisMetricsRegistered bool

// RegisterAnalysisMetrics registers Prometheus analysis metrics. Must be
// called once from main.
func RegisterAnalysisMetrics() {
	if analysisMetricsRegistered {
		return
	}
	prometheus.MustRegister(AnalysisRequestsTotal)
	prometheus.MustRegister(AnalysisRequestDuration)
	prometheus.MustRegister(AnalysisErrorsTotal)
	prometheus.MustRegister(AnalysisTokensTotal)
	analysisMetricsRegistered = true
}
