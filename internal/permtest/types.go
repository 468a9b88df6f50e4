package permtest

import (
	"math/big"
	"time"

	"github.com/mverhaeg/permcalc/internal/logging"
)

// ProgressBufferMultiplier defines the buffer size multiplier for the
// progress channel. A larger buffer reduces the likelihood of blocking
// worker goroutines when the display is slow to consume updates.
const ProgressBufferMultiplier = 5

// Options configures a permutation test run.
type Options struct {
	// TwoTailed selects the two-sided tail rule: a permutation counts as at
	// least as extreme when |stat| >= |observed|. When false, the one-sided
	// rule stat >= observed applies.
	TwoTailed bool

	// MaxPermutations caps the number of permutations evaluated. Zero means
	// uncapped: the full factorial space is enumerated. Negative values are
	// rejected. The factorial space is astronomically large for even modest
	// samples, so callers should always cap in practice.
	MaxPermutations int64

	// MaxWorkers bounds the parallel worker count. Zero means all logical
	// CPUs; values above the host's logical CPU count are clamped down; a
	// value of exactly 1 forces fully sequential execution with no
	// goroutines spawned. Negative values are rejected.
	MaxWorkers int

	// Logger, when non-nil, receives the post-run diagnostic line with the
	// permutation count and elapsed wall-clock time. It never affects the
	// returned values.
	Logger logging.Logger
}

// DefaultOptions returns the canonical configuration: two-tailed, uncapped,
// all logical CPUs.
func DefaultOptions() Options {
	return Options{TwoTailed: true}
}

// Result is the outcome of one permutation test run.
type Result struct {
	// T is the observed statistic: mean(x) - mean(y).
	T float64
	// P is the proportion of evaluated permutations whose statistic was at
	// least as extreme as T under the chosen tail rule.
	P float64
	// NPerms is the number of permutations actually evaluated.
	NPerms *big.Int
	// TMax is the maximal permuted statistic across all evaluated
	// permutations, floored at zero (see runSlice).
	TMax float64
	// Duration is the wall-clock time of the parallel phase.
	Duration time.Duration
	// Workers is the worker count the run executed with.
	Workers int
}

// Slice identifies a contiguous, disjoint range [Start, End) of the
// lexicographic permutation enumeration order, together with the design
// vector being permuted. Each slice is evaluated by exactly one worker.
type Slice struct {
	// Design is the binary group labeling: 0 marks sample x positions,
	// 1 marks sample y positions. Shared read-only by all workers.
	Design []uint8
	// Start is the first permutation rank of the range (inclusive).
	Start *big.Int
	// End is the rank one past the range (exclusive).
	End *big.Int
}

// Count returns the number of permutations in the slice.
func (s Slice) Count() *big.Int {
	return new(big.Int).Sub(s.End, s.Start)
}

// partialResult is the accumulator one worker delivers for its slice:
// the local maximum statistic and the count of permutations meeting the
// tail rule. It is consumed exactly once by the reducer.
type partialResult struct {
	maxT  float64
	overT uint64
}
