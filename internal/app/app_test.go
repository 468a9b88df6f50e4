package app

import (
	"bytes"
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	apperrors "github.com/mverhaeg/permcalc/internal/errors"
	"github.com/mverhaeg/permcalc/internal/logging"
)

func discardLogger() logging.Logger {
	return logging.NewStdLoggerAdapter(log.New(io.Discard, "", 0))
}

func TestNew(t *testing.T) {
	t.Run("valid arguments", func(t *testing.T) {
		a, err := New([]string{"permcalc", "-x", "1,2", "-y", "3,4"}, io.Discard)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(a.Config.X) != 2 || len(a.Config.Y) != 2 {
			t.Errorf("unexpected samples: %v / %v", a.Config.X, a.Config.Y)
		}
		if a.Logger == nil {
			t.Error("expected a default logger")
		}
	})

	t.Run("missing sample is rejected", func(t *testing.T) {
		if _, err := New([]string{"permcalc", "-x", "1,2"}, io.Discard); err == nil {
			t.Fatal("expected a configuration error")
		}
	})

	t.Run("help is surfaced as flag.ErrHelp", func(t *testing.T) {
		_, err := New([]string{"permcalc", "-h"}, io.Discard)
		if !IsHelpError(err) {
			t.Fatalf("expected help error, got %v", err)
		}
	})
}

func TestRunQuietEndToEnd(t *testing.T) {
	a, err := New([]string{"permcalc", "-x", "1,2", "-y", "3,4", "-q", "-max-perms", "0", "-no-color"},
		io.Discard, WithLogger(discardLogger()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf bytes.Buffer
	code := a.Run(context.Background(), &buf)

	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, want %d (output: %s)", code, apperrors.ExitSuccess, buf.String())
	}
	got := strings.TrimSpace(buf.String())
	want := "-2 0.3333333333333333 24 2"
	if got != want {
		t.Errorf("quiet output = %q, want %q", got, want)
	}
}

func TestRunWritesOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.txt")
	a, err := New([]string{"permcalc", "-x", "1,2", "-y", "3,4", "-q", "-max-perms", "0", "-o", path},
		io.Discard, WithLogger(discardLogger()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if code := a.Run(context.Background(), io.Discard); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, apperrors.ExitSuccess)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output file: %v", err)
	}
	if !strings.Contains(string(data), "p = 0.3333333333333333") {
		t.Errorf("output file should contain the p-value, got:\n%s", data)
	}
}

func TestHandleRunError(t *testing.T) {
	a := &Application{ErrWriter: io.Discard, Logger: discardLogger()}
	a.Config.Timeout = time.Second

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"timeout", context.DeadlineExceeded, apperrors.ExitErrorTimeout},
		{"canceled", context.Canceled, apperrors.ExitErrorCanceled},
		{"wrapped cancellation", apperrors.ComputationError{Cause: context.Canceled}, apperrors.ExitErrorCanceled},
		{"validation", apperrors.NewValidationError("x", "sample must not be empty"), apperrors.ExitErrorConfig},
		{"generic", apperrors.ComputationError{Cause: io.ErrUnexpectedEOF}, apperrors.ExitErrorGeneric},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := a.handleRunError(tc.err, io.Discard); got != tc.want {
				t.Errorf("exit code = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestHasVersionFlag(t *testing.T) {
	if !HasVersionFlag([]string{"--version"}) || !HasVersionFlag([]string{"-version"}) {
		t.Error("expected version flag to be detected")
	}
	if HasVersionFlag([]string{"-x", "1"}) {
		t.Error("expected no version flag")
	}
}

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	PrintVersion(&buf)
	if !strings.Contains(buf.String(), Version) {
		t.Errorf("version banner %q should contain %q", buf.String(), Version)
	}
}
