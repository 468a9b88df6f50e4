// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//     Examples: [FormatQuietResult].
//
//   - Write* functions write data to files on the filesystem.
//     They handle file creation, directory setup, and error handling.
//     Examples: [WriteResultToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mverhaeg/permcalc/internal/permtest"
	"github.com/mverhaeg/permcalc/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Quiet mode suppresses verbose output.
	Quiet bool
	// Verbose appends memory statistics to the result display.
	Verbose bool
}

// WriteResultToFile writes a test result to a file.
//
// Parameters:
//   - res: The permutation test result.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultToFile(res *permtest.Result, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	// Ensure directory exists
	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	// Write header
	fmt.Fprintf(file, "# Permutation Test Result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Permutations: %s\n", res.NPerms.String())
	fmt.Fprintf(file, "# Workers: %d\n", res.Workers)
	fmt.Fprintf(file, "# Duration: %s\n", res.Duration)
	fmt.Fprintf(file, "\n")

	// Write result
	fmt.Fprintf(file, "T = %g\n", res.T)
	fmt.Fprintf(file, "p = %g\n", res.P)
	fmt.Fprintf(file, "Tmax = %g\n", res.TMax)

	return nil
}

// FormatQuietResult formats a result for quiet mode output.
// Returns a single-line result suitable for scripting: the observed
// statistic, the p-value, the permutation count, and the maximal permuted
// statistic, space-separated.
//
// Parameters:
//   - res: The permutation test result.
//
// Returns:
//   - string: The formatted result string.
func FormatQuietResult(res *permtest.Result) string {
	return fmt.Sprintf("%g %g %s %g", res.T, res.P, res.NPerms.String(), res.TMax)
}

// DisplayQuietResult outputs a result in quiet mode (minimal output).
//
// Parameters:
//   - out: The output writer.
//   - res: The permutation test result.
func DisplayQuietResult(out io.Writer, res *permtest.Result) {
	fmt.Fprintln(out, FormatQuietResult(res))
}

// DisplayResultWithConfig displays a result with the given output
// configuration. This is a unified function that handles all output modes.
//
// Parameters:
//   - out: The output writer.
//   - res: The permutation test result.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if file output fails.
func DisplayResultWithConfig(out io.Writer, res *permtest.Result, config OutputConfig) error {
	// Handle quiet mode
	if config.Quiet {
		DisplayQuietResult(out, res)
	} else {
		CLIResultPresenter{}.PresentResult(res, config.Verbose, out)
	}

	// Save to file if requested
	if config.OutputFile != "" {
		if err := WriteResultToFile(res, config); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ui.ColorSuccess(), ui.ColorInfo(), config.OutputFile, ui.ColorReset())
		}
	}

	return nil
}
