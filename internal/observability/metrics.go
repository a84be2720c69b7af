// Package observability exposes Prometheus instrumentation for the metric
// engine.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	evaluationsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "performance",
		Subsystem: "engine",
		Name:      "evaluations_total",
		Help:      "Number of activity evaluations, by discipline and outcome.",
	}, []string{"discipline", "outcome"})

	metricsComputedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "performance",
		Subsystem: "engine",
		Name:      "metrics_computed_total",
		Help:      "Number of individual metric values produced.",
	}, []string{"discipline"})

	metricsSkippedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "performance",
		Subsystem: "engine",
		Name:      "metrics_skipped_total",
		Help:      "Number of metrics skipped as inapplicable to the activity.",
	}, []string{"discipline"})

	evaluationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "performance",
		Subsystem: "engine",
		Name:      "evaluation_duration_seconds",
		Help:      "Wall time spent evaluating one activity.",
		Buckets:   prometheus.ExponentialBuckets(1e-5, 10, 7),
	})
)

func init() {
	prometheus.MustRegister(evaluationsCounter, metricsComputedCounter, metricsSkippedCounter, evaluationDuration)
}

// RecordEvaluation updates engine counters after one activity evaluation.
func RecordEvaluation(discipline string, computed, skipped int, elapsed time.Duration, ok bool) {
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	evaluationsCounter.WithLabelValues(discipline, outcome).Inc()
	metricsComputedCounter.WithLabelValues(discipline).Add(float64(computed))
	metricsSkippedCounter.WithLabelValues(discipline).Add(float64(skipped))
	evaluationDuration.Observe(elapsed.Seconds())
}
