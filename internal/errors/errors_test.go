package apperrors

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

// TestConfigError tests ConfigError creation and formatting.
func TestConfigError(t *testing.T) {
	tests := []struct {
		name   string
		format string
		args   []any
		want   string
	}{
		{
			name:   "plain message",
			format: "invalid flag",
			want:   "invalid flag",
		},
		{
			name:   "formatted message",
			format: "invalid value %d for %s",
			args:   []any{-3, "--max-workers"},
			want:   "invalid value -3 for --max-workers",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewConfigError(tt.format, tt.args...)
			if err.Error() != tt.want {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.want)
			}

			var cfgErr ConfigError
			if !errors.As(err, &cfgErr) {
				t.Error("errors.As should match ConfigError")
			}
		})
	}
}

// TestValidationError tests ValidationError creation and formatting.
func TestValidationError(t *testing.T) {
	err := NewValidationError("x", "must not be empty")

	want := `validation error for "x": must not be empty`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	var valErr ValidationError
	if !errors.As(err, &valErr) {
		t.Fatal("errors.As should match ValidationError")
	}
	if valErr.Field != "x" {
		t.Errorf("Field = %q, want %q", valErr.Field, "x")
	}
}

// TestComputationError tests cause preservation and unwrapping.
func TestComputationError(t *testing.T) {
	cause := errors.New("worker crashed")
	err := ComputationError{Cause: cause}

	if err.Error() != "worker crashed" {
		t.Errorf("Error() = %q, want %q", err.Error(), "worker crashed")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if errors.Unwrap(err) != cause {
		t.Error("Unwrap should return the original cause")
	}
}

// TestComputationError_WrapsContextError verifies that a context cancellation
// buried inside a ComputationError is still detectable.
func TestComputationError_WrapsContextError(t *testing.T) {
	err := ComputationError{Cause: context.Canceled}

	if !IsContextError(err) {
		t.Error("IsContextError should see through ComputationError")
	}
}

// TestTimeoutError tests the timeout error message.
func TestTimeoutError(t *testing.T) {
	err := TimeoutError{Operation: "permutation test", Limit: 5 * time.Minute}

	want := `operation "permutation test" timed out after 5m0s`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

// TestWrapError tests error wrapping behavior.
func TestWrapError(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		if got := WrapError(nil, "context"); got != nil {
			t.Errorf("WrapError(nil) = %v, want nil", got)
		}
	})

	t.Run("wrapped error preserves chain", func(t *testing.T) {
		base := errors.New("base failure")
		wrapped := WrapError(base, "slice %d", 2)

		if !errors.Is(wrapped, base) {
			t.Error("errors.Is should find the base error")
		}
		want := "slice 2: base failure"
		if wrapped.Error() != want {
			t.Errorf("Error() = %q, want %q", wrapped.Error(), want)
		}
	})

	t.Run("double wrapping preserves chain", func(t *testing.T) {
		base := errors.New("root")
		wrapped := WrapError(WrapError(base, "inner"), "outer")

		if !errors.Is(wrapped, base) {
			t.Error("errors.Is should find the root through two layers")
		}
	})
}

// TestIsContextError tests context error detection.
func TestIsContextError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"canceled", context.Canceled, true},
		{"deadline exceeded", context.DeadlineExceeded, true},
		{"wrapped canceled", fmt.Errorf("run: %w", context.Canceled), true},
		{"other error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsContextError(tt.err); got != tt.want {
				t.Errorf("IsContextError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
