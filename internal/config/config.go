// Package config defines the application configuration and its three-level
// resolution: CLI flags take precedence over environment variables, which
// take precedence over built-in defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/mverhaeg/permcalc/internal/errors"
)

// EnvPrefix is prepended to every environment variable the application reads.
const EnvPrefix = "PERMCALC_"

// Default configuration values.
const (
	// DefaultTimeout bounds a single run. The permutation space grows
	// factorially, so an unbounded run on a large sample would never finish.
	DefaultTimeout = 5 * time.Minute
	// DefaultMaxPerms caps the number of permutations evaluated by default.
	// Zero disables the cap and enumerates the full factorial space.
	DefaultMaxPerms = 1_000_000
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	// X is the first sample.
	X []float64
	// Y is the second sample.
	Y []float64
	// OneTailed selects the one-sided tail rule. The default is two-sided.
	OneTailed bool
	// MaxPerms caps the number of permutations evaluated (0 = exhaustive).
	MaxPerms int64
	// MaxWorkers bounds the parallel worker count (0 = all logical CPUs).
	MaxWorkers int
	// Timeout is the maximum wall-clock duration of a run.
	Timeout time.Duration
	// Quiet suppresses all output except the single result line.
	Quiet bool
	// Verbose appends memory statistics to the result display.
	Verbose bool
	// NoColor disables ANSI color output.
	NoColor bool
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// MetricsAddr is the listen address of the metrics HTTP server
	// (empty to disable it).
	MetricsAddr string
}

// ParseConfig parses command-line arguments into an AppConfig, applying
// environment variable overrides for any flag not explicitly set.
//
// Parameters:
//   - programName: The program name used in usage output.
//   - args: The command-line arguments (without the program name).
//   - errWriter: The writer for flag parsing errors and usage output.
//
// Returns:
//   - AppConfig: The resolved configuration.
//   - error: flag.ErrHelp when help was requested, or a ConfigError for
//     invalid values.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	cfg := AppConfig{
		MaxPerms: DefaultMaxPerms,
		Timeout:  DefaultTimeout,
	}

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	var xList, yList string
	fs.StringVar(&xList, "x", "", "first sample as comma-separated values (required)")
	fs.StringVar(&yList, "y", "", "second sample as comma-separated values (required)")
	fs.BoolVar(&cfg.OneTailed, "one-tailed", false, "use the one-sided tail rule instead of two-sided")
	fs.Int64Var(&cfg.MaxPerms, "max-perms", cfg.MaxPerms, "maximum permutations to evaluate (0 = exhaustive)")
	fs.IntVar(&cfg.MaxWorkers, "workers", 0, "parallel worker count (0 = all logical CPUs)")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "maximum run duration")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "single-line output for scripting")
	fs.BoolVar(&cfg.Quiet, "q", false, "single-line output for scripting (shorthand)")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "show memory statistics after the run")
	fs.BoolVar(&cfg.Verbose, "v", false, "show memory statistics after the run (shorthand)")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "disable colored output")
	fs.StringVar(&cfg.OutputFile, "output", "", "write the result to this file")
	fs.StringVar(&cfg.OutputFile, "o", "", "write the result to this file (shorthand)")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "listen address for the metrics HTTP server (empty = disabled)")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	applyEnvOverrides(&cfg, &xList, &yList, fs)

	var err error
	if cfg.X, err = parseFloatList(xList); err != nil {
		return AppConfig{}, apperrors.NewConfigError("invalid -x: %v", err)
	}
	if cfg.Y, err = parseFloatList(yList); err != nil {
		return AppConfig{}, apperrors.NewConfigError("invalid -y: %v", err)
	}

	if err := validateConfig(cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// parseFloatList parses a comma-separated list of floating point values.
func parseFloatList(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	values := make([]float64, 0, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("element %d (%q) is not a number", i, strings.TrimSpace(part))
		}
		values = append(values, v)
	}
	return values, nil
}

// validateConfig rejects configurations the run could not execute.
func validateConfig(cfg AppConfig) error {
	if len(cfg.X) == 0 {
		return apperrors.NewConfigError("the -x sample is required")
	}
	if len(cfg.Y) == 0 {
		return apperrors.NewConfigError("the -y sample is required")
	}
	if cfg.MaxPerms < 0 {
		return apperrors.NewConfigError("-max-perms must not be negative, got %d", cfg.MaxPerms)
	}
	if cfg.MaxWorkers < 0 {
		return apperrors.NewConfigError("-workers must not be negative, got %d", cfg.MaxWorkers)
	}
	if cfg.Timeout <= 0 {
		return apperrors.NewConfigError("-timeout must be positive, got %s", cfg.Timeout)
	}
	return nil
}
