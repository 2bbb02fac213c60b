package pricing

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RecommendationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricing_recommendations_total",
			Help: "Count of price recommendations by tier and whether the margin floor clamped the price.",
		},
		[]string{"tier", "floor_applied"},
	)

	ModelTrainingSeconds = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "pricing_model_training_seconds",
			Help: "Wall time of the last adjustment-model training run.",
		},
	)
)

func init() {
	prometheus.MustRegister(RecommendationsTotal, ModelTrainingSeconds)
}
