// Package metrics defines the Prometheus instrumentation for the prediction
// service.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	PredictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "diapredict",
			Name:      "predictions_total",
			Help:      "Total number of prediction requests",
		},
		[]string{"status"}, // "ok" / "missing_field" / "invalid_number"
	)

	PredictionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "diapredict",
			Name:      "prediction_duration_seconds",
			Help:      "Prediction request duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)

	CacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "diapredict",
			Name:      "prediction_cache_total",
			Help:      "Prediction cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var registered bool

// Register registers the prediction metrics. Must be called once from main.
func Register() {
	if registered {
		return
	}
	prometheus.MustRegister(PredictionsTotal)
	prometheus.MustRegister(PredictionDuration)
	prometheus.MustRegister(CacheTotal)
	registered = true
}
