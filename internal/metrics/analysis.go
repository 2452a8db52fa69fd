package metrics

import "github.com/prometheus/client_golang/prometheus"

// Analysis provider Prometheus metrics.
var (
	AnalysisRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "analysis_requests_total",
			Help:      "Total number of analysis provider requests",
		},
		[]string{"provider", "model", "status"},
	)

	AnalysisRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "analysis_request_duration_seconds",
			Help:      "Analysis provider request duration in seconds",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
		},
		[]string{"provider", "model"},
	)

	AnalysisTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "analysis_tokens_total",
			Help:      "Total analysis tokens consumed",
		},
		[]string{"provider", "model", "type"},
	)

	AnalysisErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "analysis_errors_total",
			Help:      "Total analysis provider errors",
		},
		[]string{"provider", "model", "error_type"},
	)

	AnalysisBudgetTokensRemaining = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "analysis_budget_tokens_remaining",
			Help:      "Remaining analysis token budget",
		},
		[]string{"provider", "period"},
	)

	AnalysisCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "analysis_cache_total",
			Help:      "Analysis report cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var analysisMetricsRegistered bool

// RegisterAnalysisMetrics registers the analysis metrics. Must be called once from main.
func RegisterAnalysisMetrics() {
	if analysisMetricsRegistered {
		return
	}
	prometheus.MustRegister(
		AnalysisRequestsTotal,
		AnalysisRequestDuration,
		AnalysisTokensTotal,
		AnalysisErrorsTotal,
		AnalysisBudgetTokensRemaining,
		AnalysisCacheTotal,
	)
	analysisMetricsRegistered = true
}
