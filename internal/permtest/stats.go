package permtest

import (
	"math"

	apperrors "github.com/mverhaeg/permcalc/internal/errors"
)

// buildDesign constructs the design vector for nx observations of sample x
// followed by ny observations of sample y: nx zeros then ny ones.
func buildDesign(nx, ny int) []uint8 {
	design := make([]uint8, nx+ny)
	for i := nx; i < nx+ny; i++ {
		design[i] = 1
	}
	return design
}

// mean returns the arithmetic mean of v. Callers guarantee v is non-empty.
func mean(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x
	}
	return sum / float64(len(v))
}

// observedStatistic computes the T statistic of the unpermuted labeling:
// the difference of sample means.
func observedStatistic(x, y []float64) float64 {
	return mean(x) - mean(y)
}

// validateSample rejects empty samples and non-finite values before any work
// is dispatched.
func validateSample(field string, v []float64) error {
	if len(v) == 0 {
		return apperrors.NewValidationError(field, "sample must not be empty")
	}
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return apperrors.NewValidationError(field, "value at index %d is not finite", i)
		}
	}
	return nil
}

// validateOptions rejects non-positive caps and worker counts. Zero values
// mean "unset" and are allowed.
func validateOptions(opts Options) error {
	if opts.MaxPermutations < 0 {
		return apperrors.NewValidationError("MaxPermutations", "must be positive, got %d", opts.MaxPermutations)
	}
	if opts.MaxWorkers < 0 {
		return apperrors.NewValidationError("MaxWorkers", "must be positive, got %d", opts.MaxWorkers)
	}
	return nil
}
