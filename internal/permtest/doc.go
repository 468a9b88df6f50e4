// Package permtest implements a permutation test of two samples: it computes
// the difference-of-means statistic, enumerates a deterministic slice of the
// label permutation space in parallel, and reduces the per-worker partial
// results into a p-value and the maximal permuted statistic.
//
// The coordinator partitions the (possibly capped) permutation index space
// into one contiguous slice per worker, dispatches all but the last slice to
// goroutines, evaluates the last slice on the calling goroutine, and joins
// before reducing. Workers share the observation and design vectors read-only
// and own their enumeration cursors exclusively.
package permtest
