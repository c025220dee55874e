package inference

import "github.com/prometheus/client_golang/prometheus"

var (
	lockWaitSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "llamagate",
			Subsystem: "inference",
			Name:      "lock_wait_seconds",
			Help:      "Time spent waiting for the model lock",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		},
		[]string{"op"},
	)

	generationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "llamagate",
			Subsystem: "inference",
			Name:      "generation_seconds",
			Help:      "Duration of single model generations",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
		},
	)

	modelLoaded = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "llamagate",
			Subsystem: "inference",
			Name:      "model_loaded",
			Help:      "1 while a model handle is loaded",
		},
	)
)

func init() {
	prometheus.MustRegister(lockWaitSeconds, generationSeconds, modelLoaded)
}
