package permtest

import "math/big"

// planSlices partitions the capped permutation budget nperms across workers
// deterministically. nall is the uncapped space size (n!), nperms <= nall is
// the number of permutations to evaluate.
//
// The per-worker budget is floor(nperms/W). When the cap leaves the
// per-worker stride over the uncapped space (floor(nall/W)) larger than the
// budget, each slice starts at its stride offset i*floor(nall/W), so a
// capped run samples spread-out regions of the full permutation order
// instead of only its lexicographic prefix. The division remainder is
// spread one permutation each over the first nperms mod W slices, keeping
// all slices pairwise disjoint and inside [0, nall).
//
// Without a binding cap the strides coincide with the budgets and the
// slices tile [0, nperms) contiguously, the last one absorbing the
// remainder and ending exactly at nperms.
func planSlices(design []uint8, nall, nperms *big.Int, workers int) []Slice {
	w := big.NewInt(int64(workers))

	slices := make([]Slice, 0, workers)
	if workers == 1 {
		slices = append(slices, Slice{Design: design, Start: big.NewInt(0), End: new(big.Int).Set(nperms)})
		return slices
	}

	size := new(big.Int).Quo(nperms, w)   // per-worker budget
	stride := new(big.Int).Quo(nall, w)   // per-worker stride over the uncapped space

	if stride.Cmp(size) == 0 {
		// No spreading needed: contiguous tiling of [0, nperms), remainder
		// absorbed by the final slice.
		for i := 0; i < workers-1; i++ {
			start := new(big.Int).Mul(big.NewInt(int64(i)), size)
			end := new(big.Int).Add(start, size)
			slices = append(slices, Slice{Design: design, Start: start, End: end})
		}
		lastStart := new(big.Int).Mul(big.NewInt(int64(workers-1)), size)
		slices = append(slices, Slice{Design: design, Start: lastStart, End: new(big.Int).Set(nperms)})
		return slices
	}

	// Spread placement. rem < W extra permutations go one each to the first
	// slices; every budget stays <= stride, so ranges cannot collide and the
	// last range ends at or before nall.
	rem := new(big.Int).Mod(nperms, w)
	for i := 0; i < workers; i++ {
		start := new(big.Int).Mul(big.NewInt(int64(i)), stride)
		budget := new(big.Int).Set(size)
		if big.NewInt(int64(i)).Cmp(rem) < 0 {
			budget.Add(budget, big.NewInt(1))
		}
		end := new(big.Int).Add(start, budget)
		slices = append(slices, Slice{Design: design, Start: start, End: end})
	}
	return slices
}
