package pipeline

import "github.com/prometheus/client_golang/prometheus"

var (
	attemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "llamagate",
			Subsystem: "pipeline",
			Name:      "attempts_total",
			Help:      "Generation attempts by validation outcome",
		},
		[]string{"outcome"},
	)

	retriesExhaustedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "llamagate",
			Subsystem: "pipeline",
			Name:      "retries_exhausted_total",
			Help:      "Requests that hit the attempt ceiling",
		},
	)
)

// Attempt outcome labels.
const (
	outcomeValid        = "valid"
	outcomeDegenerate   = "degenerate"
	outcomeParseFailure = "parse_failure"
)

func init() {
	prometheus.MustRegister(attemptsTotal, retriesExhaustedTotal)
}
