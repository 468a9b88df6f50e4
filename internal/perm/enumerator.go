package perm

import (
	"fmt"
	"math/big"
)

// Enumerator walks the permutations of the index set [0, n) in lexicographic
// order, the canonical ordering of the permutation index space. It is lazy
// and forward-only: construction positions it on an arbitrary rank, Next
// advances one permutation at a time, and running off the last permutation
// is reported as normal exhaustion, never as an error.
//
// An Enumerator is not safe for concurrent use. Every worker must own its
// own instance; advancing a shared one from two goroutines would silently
// shrink the range each of them sees.
type Enumerator struct {
	idx       []int
	exhausted bool
}

// NewEnumerator creates an enumerator positioned on the permutation with the
// given rank in lexicographic order. It requires n > 0 and 0 <= rank < n!.
//
// The starting permutation is recovered from the rank through the factorial
// number system (Lehmer code), so positioning on a distant rank costs O(n²)
// regardless of how astronomically large the rank is. A linear skip from
// rank zero would be unusable: worker offsets are spread over the uncapped
// permutation space, which grows factorially.
func NewEnumerator(n int, rank *big.Int) (*Enumerator, error) {
	if n <= 0 {
		return nil, fmt.Errorf("perm: n must be positive, got %d", n)
	}
	if rank == nil || rank.Sign() < 0 {
		return nil, fmt.Errorf("perm: rank must be non-negative, got %v", rank)
	}

	facts := factorialTable(n)
	if rank.Cmp(facts[n]) >= 0 {
		return nil, fmt.Errorf("perm: rank %v out of range [0, %d!)", rank, n)
	}

	avail := make([]int, n)
	for i := range avail {
		avail[i] = i
	}

	idx := make([]int, 0, n)
	r := new(big.Int).Set(rank)
	rem := new(big.Int)
	digit := new(big.Int)
	for i := n - 1; i >= 0; i-- {
		digit.DivMod(r, facts[i], rem)
		r, rem = rem, r
		d := int(digit.Int64()) // digit < n, always fits
		idx = append(idx, avail[d])
		avail = append(avail[:d], avail[d+1:]...)
	}

	return &Enumerator{idx: idx}, nil
}

// Current returns the permutation the enumerator is positioned on. The
// returned slice is owned by the enumerator and overwritten by Next; callers
// that need to retain it must copy.
func (e *Enumerator) Current() []int {
	return e.idx
}

// Next advances to the next permutation in lexicographic order. It returns
// false once the enumerator has been advanced past the last permutation;
// exhaustion is the normal end-of-range signal.
func (e *Enumerator) Next() bool {
	if e.exhausted {
		return false
	}

	idx := e.idx
	n := len(idx)

	// Longest non-increasing suffix; its predecessor is the pivot.
	k := n - 2
	for k >= 0 && idx[k] >= idx[k+1] {
		k--
	}
	if k < 0 {
		e.exhausted = true
		return false
	}

	// Rightmost successor of the pivot within the suffix.
	l := n - 1
	for idx[l] <= idx[k] {
		l--
	}
	idx[k], idx[l] = idx[l], idx[k]

	// Reverse the suffix to restore ascending order.
	for i, j := k+1, n-1; i < j; i, j = i+1, j-1 {
		idx[i], idx[j] = idx[j], idx[i]
	}

	return true
}
