package app

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"runtime"
)

// Version is the application version, overridable at build time with
// -ldflags "-X github.com/mverhaeg/permcalc/internal/app.Version=...".
var Version = "0.3.0"

// HasVersionFlag reports whether the arguments request the version.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--version" || arg == "-version" {
			return true
		}
	}
	return false
}

// PrintVersion writes the version banner.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "permcalc version %s (%s)\n", Version, runtime.Version())
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
