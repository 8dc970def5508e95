// Package metrics holds Prometheus collectors for the external capability
// calls (embedding and generation) and the embedding cache.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	CapabilityRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "agroguide",
			Name:      "capability_requests_total",
			Help:      "Total embedding/generation capability requests",
		},
		[]string{"capability", "model", "status"},
	)

	CapabilityRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "agroguide",
			Name:      "capability_request_duration_seconds",
			Help:      "Capability request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"capability", "model"},
	)

	CapabilityTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "agroguide",
			Name:      "capability_tokens_total",
			Help:      "Total tokens consumed by capability calls",
		},
		[]string{"capability", "model", "type"},
	)

	EmbeddingCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "agroguide",
			Name:      "embedding_cache_total",
			Help:      "Embedding cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var registered bool

// Register registers all capability metrics. Must be called once from main.
func Register() {
	if registered {
		return
	}
	prometheus.MustRegister(CapabilityRequestsTotal)
	prometheus.MustRegister(CapabilityRequestDuration)
	prometheus.MustRegister(CapabilityTokensTotal)
	prometheus.MustRegister(EmbeddingCacheTotal)
	registered = true
}
