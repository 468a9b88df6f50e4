package permtest

import (
	"io"
	"sync"

	"github.com/mverhaeg/permcalc/internal/progress"
)

// ProgressReporter defines the interface for displaying evaluation progress.
// It decouples the coordinator from the presentation layer: implementations
// handle the visual representation (spinner, progress bar, nothing at all)
// while the coordinator focuses on dispatching and reducing the workers.
type ProgressReporter interface {
	// DisplayProgress consumes progress updates from the channel until it is
	// closed. It must be called in its own goroutine and must signal wg when
	// the channel has been drained.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, numWorkers int, out io.Writer)
}

// ProgressReporterFunc adapts a function to the ProgressReporter interface.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan progress.Update, numWorkers int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, numWorkers int, out io.Writer) {
	f(wg, progressChan, numWorkers, out)
}

// NullProgressReporter drains the progress channel without displaying
// anything. Used in quiet mode and in tests.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, _ int, _ io.Writer) {
	defer wg.Done()
	for range progressChan {
		// Drain silently.
	}
}
