package metrics

import "github.com/prometheus/client_golang/prometheus"

// Tender filtering metrics.
var (
	TenderFilterResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "tender_filter_results",
			Help:      "Number of tenders returned by a filtered listing",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		},
	)

	TendersStored = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "tenders_stored",
			Help:      "Number of tenders seen by the last full listing",
		},
	)
)

var tenderMetricsRegistered bool

// RegisterTenderMetrics registers the tender metrics. Must be called once from main.
func RegisterTenderMetrics() {
	if tenderMetricsRegistered {
		return
	}
	prometheus.MustRegister(TenderFilterResults, TendersStored)
	tenderMetricsRegistered = true
}
