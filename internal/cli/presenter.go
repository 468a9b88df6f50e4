package cli

import (
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/mverhaeg/permcalc/internal/config"
	"github.com/mverhaeg/permcalc/internal/format"
	"github.com/mverhaeg/permcalc/internal/metrics"
	"github.com/mverhaeg/permcalc/internal/permtest"
	"github.com/mverhaeg/permcalc/internal/progress"
	"github.com/mverhaeg/permcalc/internal/ui"
)

// CLIProgressReporter implements permtest.ProgressReporter for CLI output.
// It wraps the DisplayProgress function to provide a spinner and progress bar
// display while the workers evaluate their slices.
type CLIProgressReporter struct{}

// Verify that CLIProgressReporter implements permtest.ProgressReporter.
var _ permtest.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar for the ongoing run.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, numWorkers int, out io.Writer) {
	DisplayProgress(wg, progressChan, numWorkers, out)
}

// CLIResultPresenter provides formatted, colorized output for test results
// in the command-line interface.
type CLIResultPresenter struct{}

// PresentResult displays the final test result: the observed statistic, the
// p-value, the number of permutations evaluated, the maximal permuted
// statistic, and run timing. Verbose mode appends memory statistics.
func (CLIResultPresenter) PresentResult(res *permtest.Result, verbose bool, out io.Writer) {
	fmt.Fprintf(out, "\n--- Permutation Test Result ---\n")
	fmt.Fprintf(out, "Observed statistic T:    %s%g%s\n",
		ui.ColorPrimary(), res.T, ui.ColorReset())
	fmt.Fprintf(out, "p-value:                 %s%.6g%s\n",
		ui.Bold(), res.P, ui.ColorReset())
	fmt.Fprintf(out, "Permutations evaluated:  %s%s%s\n",
		ui.ColorInfo(), format.FormatPermutationCount(res.NPerms), ui.ColorReset())
	fmt.Fprintf(out, "Max permuted statistic:  %s%g%s\n",
		ui.ColorInfo(), res.TMax, ui.ColorReset())
	fmt.Fprintf(out, "Workers:                 %s%d%s\n",
		ui.ColorSecondary(), res.Workers, ui.ColorReset())
	fmt.Fprintf(out, "Duration:                %s%s%s\n",
		ui.ColorWarning(), format.FormatExecutionDuration(res.Duration), ui.ColorReset())

	if verbose {
		DisplayMemoryStats(metrics.SnapshotMemory(), out)
	}
}

// FormatDuration formats a duration for display using the standard duration
// formatting.
func (CLIResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// PrintRunConfig displays the current run configuration to the user. It
// shows the sample sizes, the permutation cap, the tail rule, and the
// execution environment.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintRunConfig(cfg config.AppConfig, out io.Writer) {
	tail := "two-tailed"
	if cfg.OneTailed {
		tail = "one-tailed"
	}
	capDesc := "exhaustive"
	if cfg.MaxPerms > 0 {
		capDesc = fmt.Sprintf("capped at %d", cfg.MaxPerms)
	}
	fmt.Fprintf(out, "--- Run Configuration ---\n")
	fmt.Fprintf(out, "Testing %s%d%s vs %s%d%s observations (%s, %s) with a timeout of %s%s%s.\n",
		ui.ColorPrimary(), len(cfg.X), ui.ColorReset(),
		ui.ColorPrimary(), len(cfg.Y), ui.ColorReset(),
		tail, capDesc,
		ui.ColorWarning(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorInfo(), runtime.NumCPU(), ui.ColorReset(),
		ui.ColorInfo(), runtime.Version(), ui.ColorReset())
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}

// DisplayMemoryStats shows memory statistics after a run.
func DisplayMemoryStats(snap metrics.MemorySnapshot, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Heap in use:  %s\n", format.FormatBytes(snap.HeapAlloc))
	fmt.Fprintf(out, "  System:       %s\n", format.FormatBytes(snap.Sys))
	fmt.Fprintf(out, "  Heap objects: %d\n", snap.HeapObjects)
	fmt.Fprintf(out, "  GC cycles:    %d\n", snap.NumGC)
}
