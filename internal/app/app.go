// Package app wires configuration, the CLI surface, and the permutation test
// engine into a runnable application.
package app

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/mverhaeg/permcalc/internal/config"
	"github.com/mverhaeg/permcalc/internal/logging"
	"github.com/mverhaeg/permcalc/internal/ui"
)

// Application represents the permcalc application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	Logger    logging.Logger
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithLogger sets a custom logger for the application.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}

	programName := "permcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	app.Config = cfg
	if app.Logger == nil {
		app.Logger = logging.NewDefaultLogger()
	}
	return app, nil
}

// Run executes the permutation test with the configured options and returns
// the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Quiet {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	ui.InitTheme(a.Config.NoColor)

	return a.runTest(ctx, out)
}
