// Package progress defines the progress reporting types shared between the
// permutation workers and the presentation layer.
package progress

// Update carries one progress sample from a worker.
// Value is the fraction of the worker's slice evaluated so far, in [0, 1].
type Update struct {
	// WorkerIndex identifies the reporting worker (0-based).
	WorkerIndex int
	// Value is the normalized progress of that worker's slice.
	Value float64
}

// Callback receives the normalized progress of a single worker's slice.
// Implementations must be cheap; workers call it from their hot loop.
type Callback func(value float64)
