package cli

import (
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/briandowns/spinner"
	"github.com/golang/mock/gomock"

	"github.com/mverhaeg/permcalc/internal/cli/mocks"
	"github.com/mverhaeg/permcalc/internal/progress"
)

func TestProgressBar(t *testing.T) {
	tests := []struct {
		name     string
		progress float64
		length   int
		filled   int
	}{
		{"empty", 0.0, 10, 0},
		{"half", 0.5, 10, 5},
		{"full", 1.0, 10, 10},
		{"overflow clamps to full", 1.5, 10, 10},
		{"negative clamps to empty", -0.3, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := progressBar(tt.progress, tt.length)
			if got := strings.Count(bar, "█"); got != tt.filled {
				t.Errorf("expected %d filled cells, got %d in %q", tt.filled, got, bar)
			}
			if got := strings.Count(bar, "░"); got != tt.length-tt.filled {
				t.Errorf("expected %d empty cells, got %d in %q", tt.length-tt.filled, got, bar)
			}
		})
	}
}

func TestProgressState(t *testing.T) {
	ps := NewProgressState(4)

	ps.Update(0, 1.0)
	ps.Update(1, 0.5)
	ps.Update(2, 0.5)

	if avg := ps.CalculateAverage(); avg != 0.5 {
		t.Errorf("expected average 0.5, got %v", avg)
	}

	// Out-of-range indices are ignored.
	ps.Update(-1, 1.0)
	ps.Update(4, 1.0)
	if avg := ps.CalculateAverage(); avg != 0.5 {
		t.Errorf("expected average unchanged at 0.5, got %v", avg)
	}
}

func TestProgressStateEmpty(t *testing.T) {
	ps := NewProgressState(0)
	if avg := ps.CalculateAverage(); avg != 0.0 {
		t.Errorf("expected 0.0 for zero workers, got %v", avg)
	}
}

func TestDisplayProgressDrivesSpinner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSpinner := mocks.NewMockSpinner(ctrl)
	mockSpinner.EXPECT().Start().Times(1)
	mockSpinner.EXPECT().Stop().Times(1)
	mockSpinner.EXPECT().UpdateSuffix(gomock.Any()).MinTimes(1)

	orig := newSpinner
	newSpinner = func(options ...spinner.Option) Spinner { return mockSpinner }
	defer func() { newSpinner = orig }()

	ch := make(chan progress.Update, 4)
	var wg sync.WaitGroup
	wg.Add(1)
	go DisplayProgress(&wg, ch, 2, io.Discard)

	ch <- progress.Update{WorkerIndex: 0, Value: 0.5}
	ch <- progress.Update{WorkerIndex: 1, Value: 1.0}
	close(ch)
	wg.Wait()
}

func TestProgressSuffixContainsPercentage(t *testing.T) {
	suffix := progressSuffix(0.25)
	if !strings.Contains(suffix, "25.0%") {
		t.Errorf("expected percentage in suffix, got %q", suffix)
	}
	if !strings.Contains(suffix, "Evaluating permutations") {
		t.Errorf("expected label in suffix, got %q", suffix)
	}
}
