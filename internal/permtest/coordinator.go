package permtest

import (
	"context"
	"io"
	"math/big"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/mverhaeg/permcalc/internal/errors"
	"github.com/mverhaeg/permcalc/internal/logging"
	"github.com/mverhaeg/permcalc/internal/metrics"
	"github.com/mverhaeg/permcalc/internal/perm"
	"github.com/mverhaeg/permcalc/internal/progress"
	"github.com/mverhaeg/permcalc/internal/sysmon"
)

// tracerName identifies this package's spans.
const tracerName = "github.com/mverhaeg/permcalc/internal/permtest"

// Run performs a permutation test of samples x and y.
//
// It computes the observed statistic T = mean(x) - mean(y), determines the
// permutation budget (n! capped by opts.MaxPermutations), partitions the
// budget into one contiguous slice per worker, evaluates the slices
// concurrently, and reduces the partial results into the p-value and the
// maximal permuted statistic.
//
// The first W-1 slices run on their own goroutines; the calling goroutine
// evaluates the final slice itself, which guarantees forward progress with
// any worker budget and spawns one fewer goroutine than the worker count.
// The first worker error cancels the remaining workers and is returned as a
// single ComputationError; invalid input is rejected before any dispatch.
//
// reporter may be nil, in which case progress updates are silently drained.
func Run(ctx context.Context, x, y []float64, opts Options, reporter ProgressReporter, out io.Writer) (*Result, error) {
	if err := validateSample("x", x); err != nil {
		return nil, err
	}
	if err := validateSample("y", y); err != nil {
		return nil, err
	}
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	// Observed values: combined observation vector, design vector, T.
	nx, ny := len(x), len(y)
	obs := make([]float64, 0, nx+ny)
	obs = append(obs, x...)
	obs = append(obs, y...)
	design := buildDesign(nx, ny)
	obsT := observedStatistic(x, y)

	workers := clampWorkers(opts.MaxWorkers)

	// Permutation budget: the full space capped to the configured maximum.
	nall := perm.Factorial(nx + ny)
	nperms := new(big.Int).Set(nall)
	if opts.MaxPermutations > 0 {
		if capped := big.NewInt(opts.MaxPermutations); capped.Cmp(nall) < 0 {
			nperms.Set(capped)
		}
	}

	slices := planSlices(design, nall, nperms, workers)

	ctx, span := otel.Tracer(tracerName).Start(ctx, "permtest.Run", trace.WithAttributes(
		attribute.Int("n", nx+ny),
		attribute.Int("workers", workers),
		attribute.Bool("two_tailed", opts.TwoTailed),
		attribute.String("nperms", nperms.String()),
	))
	defer span.End()

	metrics.ActiveRuns.Inc()
	defer metrics.ActiveRuns.Dec()

	if reporter == nil {
		reporter = NullProgressReporter{}
	}
	progressChan := make(chan progress.Update, workers*ProgressBufferMultiplier)
	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, workers, out)

	// Dispatch all but the last slice; evaluate the last one here. Each
	// worker sends exactly one partial result; a failed worker sends none
	// and cancels the rest through the group context.
	partials := make(chan partialResult, workers)
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < workers-1; i++ {
		sl := slices[i]
		emit := emitProgress(progressChan, i)
		g.Go(func() error {
			pr, err := runSlice(gctx, sl, obs, obsT, opts.TwoTailed, emit)
			if err != nil {
				return err
			}
			partials <- pr
			return nil
		})
	}

	pr, inlineErr := runSlice(gctx, slices[workers-1], obs, obsT, opts.TwoTailed, emitProgress(progressChan, workers-1))
	if inlineErr == nil {
		partials <- pr
	}

	groupErr := g.Wait()
	elapsed := time.Since(start)

	close(progressChan)
	displayWg.Wait()

	if err := firstError(inlineErr, groupErr); err != nil {
		metrics.ObserveFailure()
		span.RecordError(err)
		return nil, apperrors.ComputationError{Cause: err}
	}

	// Reduce. Exactly workers partials are pending; max and sum are
	// order-independent. The zero seed carries the workers' TMax floor.
	close(partials)
	maxT := 0.0
	var overT uint64
	for p := range partials {
		overT += p.overT
		if p.maxT > maxT {
			maxT = p.maxT
		}
	}

	pValue, _ := new(big.Float).Quo(
		new(big.Float).SetUint64(overT),
		new(big.Float).SetInt(nperms),
	).Float64()

	if opts.Logger != nil {
		opts.Logger.Info("performed permutations",
			logging.String("count", nperms.String()),
			logging.Float64("seconds", elapsed.Seconds()),
			logging.Int("workers", workers),
		)
	}
	metrics.ObserveRun(nperms, elapsed, workers)
	span.SetAttributes(attribute.Float64("p_value", pValue))

	return &Result{
		T:        obsT,
		P:        pValue,
		NPerms:   nperms,
		TMax:     maxT,
		Duration: elapsed,
		Workers:  workers,
	}, nil
}

// clampWorkers resolves the configured worker bound against the host:
// 0 means all logical cores, larger values are clamped down, and smaller
// positive values are respected as a hard ceiling.
func clampWorkers(maxWorkers int) int {
	cores := sysmon.LogicalCores()
	if maxWorkers == 0 || maxWorkers > cores {
		return cores
	}
	return maxWorkers
}

// emitProgress returns a callback that forwards a worker's progress sample
// to the shared channel without ever blocking the worker's hot loop.
func emitProgress(ch chan<- progress.Update, workerIndex int) progress.Callback {
	return func(value float64) {
		select {
		case ch <- progress.Update{WorkerIndex: workerIndex, Value: value}:
		default:
		}
	}
}

// firstError returns the inline worker's error if any, else the group's.
func firstError(inlineErr, groupErr error) error {
	if inlineErr != nil {
		return inlineErr
	}
	return groupErr
}
