package metrics

import "github.com/prometheus/client_golang/prometheus"

// Catalog Prometheus metrics.
var (
	CatalogSearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "catalogd",
			Name:      "catalog_searches_total",
			Help:      "Total number of catalog searches",
		},
		[]string{"kind", "status"}, // kind: "text" / "browse" / "featured" / "similar"
	)

	CatalogSearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "catalogd",
			Name:      "catalog_search_duration_seconds",
			Help:      "Catalog search duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"kind"},
	)

	RankRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "catalogd",
			Name:      "rank_requests_total",
			Help:      "Total number of personalization ranking requests",
		},
		[]string{"status"},
	)

	RankCandidates = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "catalogd",
			Name:      "rank_candidates",
			Help:      "Candidate set size per ranking request",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 200},
		},
	)
)

var catalogMetricsRegistered bool

// RegisterCatalogMetrics registers Prometheus catalog metrics. Must be called once from main.
func RegisterCatalogMetrics() {
	if catalogMetricsRegistered {
		return
	}
	prometheus.MustRegister(CatalogSearchesTotal)
	prometheus.MustRegister(CatalogSearchDuration)
	prometheus.MustRegister(RankRequestsTotal)
	prometheus.MustRegister(RankCandidates)
	catalogMetricsRegistered = true
}
