// Package metrics holds the Prometheus collectors shared by the solver and
// the HTTP server. Collectors register on the default registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheLookups counts pattern cache reads by outcome: hit, miss, skipped.
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "solver_pattern_cache_lookups_total",
		Help: "Pattern cache lookups by outcome.",
	}, []string{"outcome"})

	MatrixBuildSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "solver_matrix_build_seconds",
		Help:    "Time spent generating the pattern matrix.",
		Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
	})

	MatrixWords = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "solver_matrix_words",
		Help: "Number of words on each side of the active pattern matrix.",
	})

	RecommendSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "solver_recommend_seconds",
		Help:    "Latency of best-choice and top-words scans.",
		Buckets: prometheus.ExponentialBuckets(0.0005, 4, 9),
	}, []string{"kind"})

	StepsApplied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "solver_steps_applied_total",
		Help: "Feedback steps applied to solver sessions.",
	})
)
