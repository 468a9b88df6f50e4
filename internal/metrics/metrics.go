// Package metrics exposes Prometheus instrumentation and runtime memory
// snapshots for the permutation test runner.
package metrics

import (
	"math/big"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RunsTotal counts completed permutation test runs by outcome.
	RunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "permcalc_runs_total",
		Help: "Completed permutation test runs, labeled by outcome.",
	}, []string{"outcome"})

	// PermutationsEvaluated counts permutations evaluated across all runs.
	PermutationsEvaluated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "permcalc_permutations_evaluated_total",
		Help: "Total permutations evaluated across all runs.",
	})

	// RunDuration observes the wall-clock duration of the parallel phase.
	RunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "permcalc_run_duration_seconds",
		Help:    "Wall-clock duration of the parallel evaluation phase.",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
	})

	// ActiveRuns tracks permutation tests currently in flight.
	ActiveRuns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "permcalc_active_runs",
		Help: "Permutation test runs currently executing.",
	})

	// Workers records the worker count of the most recent run.
	Workers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "permcalc_workers",
		Help: "Worker count used by the most recent run.",
	})
)

// ObserveRun records the metrics for one completed run. The permutation
// count is a big integer; past float64 precision the counter increment is
// approximate, which is acceptable for telemetry.
func ObserveRun(nperms *big.Int, duration time.Duration, workers int) {
	f, _ := new(big.Float).SetInt(nperms).Float64()
	PermutationsEvaluated.Add(f)
	RunDuration.Observe(duration.Seconds())
	Workers.Set(float64(workers))
	RunsTotal.WithLabelValues("success").Inc()
}

// ObserveFailure records a failed run.
func ObserveFailure() {
	RunsTotal.WithLabelValues("failure").Inc()
}
