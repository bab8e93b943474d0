package metrics

import "github.com/prometheus/client_golang/prometheus"

// Clustering pass Prometheus metrics.
var (
	ClusteringPassesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clusterkraf",
			Name:      "clustering_passes_total",
			Help:      "Total number of clustering passes",
		},
		[]string{"status"}, // "ok" / "error"
	)

	ClusteringPassDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "clusterkraf",
			Name:      "clustering_pass_duration_seconds",
			Help:      "Clustering pass duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	ClusteringInputPoints = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "clusterkraf",
			Name:      "clustering_input_points",
			Help:      "Input points per clustering pass",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		},
	)

	ClusteringClusterPoints = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "clusterkraf",
			Name:      "clustering_cluster_points",
			Help:      "Cluster points produced per clustering pass",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		},
	)

	ClusteringTransitionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "clusterkraf",
			Name:      "clustering_transitions_total",
			Help:      "Total transition cluster points built",
		},
	)
)

var clusteringMetricsRegistered bool

// RegisterClusteringMetrics registers Prometheus clustering metrics. Must be called once from main.
func RegisterClusteringMetrics() {
	if clusteringMetricsRegistered {
		return
	}
	prometheus.MustRegister(ClusteringPassesTotal)
	prometheus.MustRegister(ClusteringPassDuration)
	prometheus.MustRegister(ClusteringInputPoints)
	prometheus.MustRegister(ClusteringClusterPoints)
	prometheus.MustRegister(ClusteringTransitionsTotal)
	clusteringMetricsRegistered = true
}
