package permtest

import (
	"errors"
	"math"
	"testing"

	apperrors "github.com/mverhaeg/permcalc/internal/errors"
)

func TestBuildDesign(t *testing.T) {
	got := buildDesign(3, 2)
	want := []uint8{0, 0, 0, 1, 1}
	if len(got) != len(want) {
		t.Fatalf("expected length %d, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %d, got %d", i, want[i], got[i])
		}
	}
}

func TestObservedStatistic(t *testing.T) {
	tests := []struct {
		name string
		x, y []float64
		want float64
	}{
		{"simple negative", []float64{1, 2}, []float64{3, 4}, -2},
		{"simple positive", []float64{4, 5, 6}, []float64{1, 2, 3}, 3},
		{"identical samples", []float64{2, 2}, []float64{2, 2, 2}, 0},
		{"unequal sizes", []float64{1, 2, 3}, []float64{10}, -8},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := observedStatistic(tc.x, tc.y)
			if math.Abs(got-tc.want) > 1e-12 {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestValidateSample(t *testing.T) {
	tests := []struct {
		name    string
		v       []float64
		wantErr bool
	}{
		{"valid", []float64{1, 2, 3}, false},
		{"empty", nil, true},
		{"nan", []float64{1, math.NaN()}, true},
		{"positive infinity", []float64{math.Inf(1)}, true},
		{"negative infinity", []float64{1, math.Inf(-1), 2}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validateSample("x", tc.v)
			if tc.wantErr {
				var verr apperrors.ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("expected ValidationError, got %v", err)
				}
				if verr.Field != "x" {
					t.Errorf("expected field %q, got %q", "x", verr.Field)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateOptions(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"defaults", DefaultOptions(), false},
		{"capped", Options{MaxPermutations: 1000, MaxWorkers: 4}, false},
		{"negative cap", Options{MaxPermutations: -1}, true},
		{"negative workers", Options{MaxWorkers: -2}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validateOptions(tc.opts)
			if tc.wantErr {
				var verr apperrors.ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("expected ValidationError, got %v", err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
