package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/harmcalc/internal/format"
	"github.com/agbru/harmcalc/internal/orchestration"
	"github.com/agbru/harmcalc/internal/progress"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the progress bar.
	// 200ms keeps terminal writes cheap without visible stutter.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// It decouples DisplayProgress from a specific spinner implementation,
// which keeps the progress loop testable without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }
func (rs *realSpinner) Stop()  { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Suffix = suffix
}

// newSpinner is a hook that tests replace to observe the progress loop.
var newSpinner = func(options ...spinner.Option) Spinner {
	// Same interval as ProgressRefreshRate to synchronize redraws
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress consumes progress updates from the engines and renders a
// consolidated spinner with an average progress bar. It runs until
// progressChan is closed and then signals wg.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, numEngines int, out io.Writer) {
	defer wg.Done()

	aggregator := orchestration.NewProgressAggregator(numEngines)
	if aggregator == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	sp := newSpinner(spinner.WithWriter(out))
	sp.UpdateSuffix(fmt.Sprintf("  %s   0.00%%", progressBar(0, ProgressBarWidth)))
	sp.Start()
	defer sp.Stop()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	start := time.Now()
	var average float64
	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				sp.UpdateSuffix(fmt.Sprintf("  %s 100.00%%", progressBar(1.0, ProgressBarWidth)))
				return
			}
			average = aggregator.Update(update)
		case <-ticker.C:
			sp.UpdateSuffix(fmt.Sprintf("  %s %6.2f%% ETA: %s",
				progressBar(average, ProgressBarWidth), average*100,
				format.FormatETA(estimateETA(start, average))))
		}
	}
}

// maxETA caps the remaining-time estimate; early samples at near-zero
// progress would otherwise extrapolate to absurd horizons.
const maxETA = 24 * time.Hour

// estimateETA extrapolates the remaining run time from the elapsed time and
// the normalized progress so far. Returns 0 when there is no progress yet.
func estimateETA(start time.Time, progress float64) time.Duration {
	if progress <= 0 || progress >= 1 {
		return 0
	}
	elapsed := time.Since(start)
	eta := time.Duration(float64(elapsed) * (1 - progress) / progress)
	if eta > maxETA {
		return maxETA
	}
	return eta
}

// progressBar generates a textual progress bar of the given width for a
// normalized progress value.
func progressBar(progress float64, length int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}
