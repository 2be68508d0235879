package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/harmcalc/internal/harmonic"
	"github.com/agbru/harmcalc/internal/progress"
)

// SummationResult encapsulates the outcome of a single engine run.
// It serves as the shared domain type between orchestration and
// presentation layers.
type SummationResult struct {
	// Name is the engine name (e.g. "Single precision (float32)").
	Name string
	// Label is the short engine label used in the result block ("Float", "Double").
	Label string
	// Report holds the directed sums and their difference. Zero value if Err is set.
	Report harmonic.Report
	// Duration is the time taken to complete both directed sums.
	Duration time.Duration
	// Err contains any error that occurred during the run.
	Err error
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	Terms   uint64
	Verbose bool
	Details bool
}

// ProgressReporter defines the interface for displaying summation progress.
// It decouples the orchestration layer from the presentation layer:
// implementations handle the visual representation (spinner, TUI bridge)
// while orchestration focuses on coordinating the engines.
type ProgressReporter interface {
	// DisplayProgress consumes progress updates until progressChan is
	// closed, then signals wg. It must be started in its own goroutine.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, numEngines int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan progress.Update, numEngines int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, numEngines int, out io.Writer) {
	f(wg, progressChan, numEngines, out)
}

// NullProgressReporter drains the progress channel without displaying
// anything. Used for quiet mode and tests.
type NullProgressReporter struct{}

// DisplayProgress drains the channel silently.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, _ int, _ io.Writer) {
	defer wg.Done()
	for range progressChan {
	}
}

// ResultPresenter defines the interface for presenting summation results,
// allowing different output formats (CLI, TUI) without modifying the
// analysis logic.
type ResultPresenter interface {
	// PresentComparisonTable displays the engine comparison table.
	PresentComparisonTable(results []SummationResult, out io.Writer)

	// PresentSummary displays the final result block (and any detail
	// sections enabled by opts).
	PresentSummary(results []SummationResult, opts PresentationOptions, out io.Writer)
}

// ErrorHandler maps run errors to process exit codes.
type ErrorHandler interface {
	HandleError(err error, elapsed time.Duration, out io.Writer) int
}
