package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/mverhaeg/permcalc/internal/cli"
	apperrors "github.com/mverhaeg/permcalc/internal/errors"
	"github.com/mverhaeg/permcalc/internal/logging"
	"github.com/mverhaeg/permcalc/internal/permtest"
	"github.com/mverhaeg/permcalc/internal/server"
	"github.com/mverhaeg/permcalc/internal/sysmon"
	"github.com/mverhaeg/permcalc/internal/ui"
)

// metricsShutdownTimeout bounds the graceful shutdown of the metrics server.
const metricsShutdownTimeout = 2 * time.Second

// runTest orchestrates one permutation test run: optional metrics server,
// lifecycle (timeout + signals), progress display, execution, and output.
func (a *Application) runTest(ctx context.Context, out io.Writer) int {
	// Metrics server runs for the lifetime of the process when configured.
	if a.Config.MetricsAddr != "" {
		srv := server.New(a.Config.MetricsAddr, a.Logger)
		go func() {
			if err := srv.Start(); err != nil {
				a.Logger.Error("metrics server failed", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	// Setup lifecycle (timeout + signals)
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	if !a.Config.Quiet {
		cli.PrintRunConfig(a.Config, out)
		sys := sysmon.Sample()
		a.Logger.Debug("system load before run",
			logging.Float64("cpu_percent", sys.CPUPercent),
			logging.Float64("mem_percent", sys.MemPercent))
	}

	// Choose progress reporter based on quiet mode
	var reporter permtest.ProgressReporter
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
		reporter = permtest.NullProgressReporter{}
	} else {
		reporter = cli.CLIProgressReporter{}
	}

	opts := permtest.Options{
		TwoTailed:       !a.Config.OneTailed,
		MaxPermutations: a.Config.MaxPerms,
		MaxWorkers:      a.Config.MaxWorkers,
	}
	if !a.Config.Quiet {
		opts.Logger = a.Logger
	}

	res, err := permtest.Run(ctx, a.Config.X, a.Config.Y, opts, reporter, progressOut)
	if err != nil {
		return a.handleRunError(err, out)
	}

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
	}
	if err := cli.DisplayResultWithConfig(out, res, outputCfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// handleRunError maps a run failure to a user message and exit code.
func (a *Application) handleRunError(err error, out io.Writer) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(out, "%sRun timed out after %s.%s\n",
			ui.ColorError(), a.Config.Timeout, ui.ColorReset())
		return apperrors.ExitErrorTimeout

	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "%sRun canceled.%s\n", ui.ColorError(), ui.ColorReset())
		return apperrors.ExitErrorCanceled
	}

	var verr apperrors.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprintf(a.ErrWriter, "Invalid input: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
	return apperrors.ExitErrorGeneric
}
