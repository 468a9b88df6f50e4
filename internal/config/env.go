// This file contains environment variable utilities for configuration override.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// isFlagSet checks if a flag was explicitly set on the command line.
// This is used to determine whether to apply environment variable overrides.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
// This is useful for aliased flags where either the short or long form may be used.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// overrideTarget bundles the configuration with the raw sample strings, which
// are parsed only after all overrides have been applied.
type overrideTarget struct {
	cfg *AppConfig
	x   *string
	y   *string
}

// envOverride declares a single environment variable override.
// Each entry maps an env key (without the PERMCALC_ prefix) to the CLI flag
// name(s) it corresponds to and a function that applies the env value.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(t *overrideTarget, v string)
}

// envOverrides is the declarative table of all environment variable overrides.
var envOverrides = []envOverride{
	// Sample overrides
	{"X", []string{"x"}, func(t *overrideTarget, v string) {
		*t.x = v
	}},
	{"Y", []string{"y"}, func(t *overrideTarget, v string) {
		*t.y = v
	}},

	// Numeric overrides
	{"MAX_PERMS", []string{"max-perms"}, func(t *overrideTarget, v string) {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			t.cfg.MaxPerms = parsed
		}
	}},
	{"WORKERS", []string{"workers"}, func(t *overrideTarget, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			t.cfg.MaxWorkers = parsed
		}
	}},

	// Duration overrides
	{"TIMEOUT", []string{"timeout"}, func(t *overrideTarget, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			t.cfg.Timeout = parsed
		}
	}},

	// String overrides
	{"OUTPUT", []string{"output", "o"}, func(t *overrideTarget, v string) {
		t.cfg.OutputFile = v
	}},
	{"METRICS_ADDR", []string{"metrics-addr"}, func(t *overrideTarget, v string) {
		t.cfg.MetricsAddr = v
	}},

	// Boolean overrides
	{"ONE_TAILED", []string{"one-tailed"}, func(t *overrideTarget, v string) {
		t.cfg.OneTailed = parseBoolEnv(v, t.cfg.OneTailed)
	}},
	{"QUIET", []string{"quiet", "q"}, func(t *overrideTarget, v string) {
		t.cfg.Quiet = parseBoolEnv(v, t.cfg.Quiet)
	}},
	{"VERBOSE", []string{"v", "verbose"}, func(t *overrideTarget, v string) {
		t.cfg.Verbose = parseBoolEnv(v, t.cfg.Verbose)
	}},
	{"NO_COLOR", []string{"no-color"}, func(t *overrideTarget, v string) {
		t.cfg.NoColor = parseBoolEnv(v, t.cfg.NoColor)
	}},
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// Returns defaultVal if the value is not recognized.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// This implements the priority: CLI flags > Environment variables > Defaults.
//
// Supported environment variables (all prefixed with PERMCALC_):
//   - X, Y, MAX_PERMS, WORKERS, TIMEOUT, OUTPUT, METRICS_ADDR,
//     ONE_TAILED, QUIET, VERBOSE, NO_COLOR
func applyEnvOverrides(cfg *AppConfig, xList, yList *string, fs *flag.FlagSet) {
	target := &overrideTarget{cfg: cfg, x: xList, y: yList}
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(target, val)
		}
	}
}
