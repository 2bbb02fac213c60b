package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the recommendation HTTP handler
	RecommendationLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "pricing_recommend_latency_seconds",
		Help:    "Latency of pricing recommendation handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of recommendation requests served
	RecommendationRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pricing_recommend_requests_total",
		Help: "Total number of pricing recommendation requests",
	})

	CacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pricing_recommendation_cache_hits_total",
		Help: "Recommendation batches served from the redis cache",
	})

	CacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pricing_recommendation_cache_misses_total",
		Help: "Recommendation batches recomputed on cache miss",
	})
)

func Init() {
	prometheus.MustRegister(
		RecommendationLatency,
		RecommendationRequests,
		CacheHits,
		CacheMisses,
	)
}
