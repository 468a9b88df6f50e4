package permtest

import (
	"context"
	"math"
	"math/big"

	"github.com/mverhaeg/permcalc/internal/perm"
	"github.com/mverhaeg/permcalc/internal/progress"
)

// checkInterval is the permutation cadence at which a worker polls for
// cancellation and emits a progress sample. Polling per permutation would
// dominate the cheap statistic computation.
const checkInterval = 4096

// runSlice evaluates one slice of the permutation space and returns the
// partial result: the local maximum statistic and the count of permutations
// at least as extreme as obsT under the tail rule.
//
// The worker owns its enumeration cursor and accumulator exclusively; the
// observation and design vectors are shared read-only. Enumeration
// exhaustion is the normal termination signal, not an error. The only error
// paths are a malformed slice (caller contract violation) and context
// cancellation, which aborts the slice so a failed run cannot block the
// coordinator's join forever.
//
// The local maximum is seeded at zero, not negative infinity: a slice whose
// every statistic is negative reports zero. The floor is carried through to
// the reduced result on purpose, for compatibility with the established
// behavior of this test (see DESIGN.md).
func runSlice(ctx context.Context, sl Slice, obs []float64, obsT float64, twoTailed bool, onProgress progress.Callback) (partialResult, error) {
	var pr partialResult

	count := sl.Count()
	if count.Sign() <= 0 {
		reportDone(onProgress)
		return pr, nil
	}

	enum, err := perm.NewEnumerator(len(obs), sl.Start)
	if err != nil {
		return pr, err
	}

	// The group sizes are invariant under relabeling, so both means reduce
	// to running sums over one total.
	var nA int
	var sumAll float64
	for i, v := range obs {
		if sl.Design[i] == 0 {
			nA++
		}
		sumAll += v
	}
	fnA := float64(nA)
	fnB := float64(len(obs) - nA)
	absObsT := math.Abs(obsT)

	total, _ := new(big.Float).SetInt(count).Float64()
	remaining := new(big.Int).Set(count)
	one := big.NewInt(1)
	var done uint64

	for remaining.Sign() > 0 {
		var sumA float64
		for j, pj := range enum.Current() {
			if sl.Design[pj] == 0 {
				sumA += obs[j]
			}
		}
		stat := sumA/fnA - (sumAll-sumA)/fnB

		if twoTailed {
			if math.Abs(stat) >= absObsT {
				pr.overT++
			}
		} else if stat >= obsT {
			pr.overT++
		}
		if stat > pr.maxT {
			pr.maxT = stat
		}

		done++
		remaining.Sub(remaining, one)

		if done%checkInterval == 0 {
			select {
			case <-ctx.Done():
				return partialResult{}, ctx.Err()
			default:
			}
			if onProgress != nil {
				onProgress(float64(done) / total)
			}
		}

		if remaining.Sign() > 0 && !enum.Next() {
			// End of the enumeration order: normal end-of-slice.
			break
		}
	}

	reportDone(onProgress)
	return pr, nil
}

// reportDone emits the terminal progress sample.
func reportDone(onProgress progress.Callback) {
	if onProgress != nil {
		onProgress(1.0)
	}
}
