// Package format provides small display formatting helpers shared by the CLI
// and logging output.
package format

import (
	"fmt"
	"math/big"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatExecutionDuration formats a time.Duration for display.
// It shows microseconds for durations less than a millisecond, milliseconds
// for durations less than a second, and the default string representation
// otherwise. This approach provides a more human-readable output for short
// durations.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// FormatBytes renders a byte count with a binary unit suffix (KiB, MiB, ...).
func FormatBytes(b uint64) string {
	return humanize.IBytes(b)
}

// FormatPermutationCount renders a permutation count with thousands
// separators. The factorial of even a modest sample size exceeds a machine
// word, so counts are carried as big integers end to end.
func FormatPermutationCount(n *big.Int) string {
	if n == nil {
		return "0"
	}
	return humanize.BigComma(new(big.Int).Set(n))
}
