package orchestration

import (
	"context"
	"io"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/harmcalc/internal/errors"
	"github.com/agbru/harmcalc/internal/harmonic"
	"github.com/agbru/harmcalc/internal/progress"
)

// ProgressBufferMultiplier defines the buffer size multiplier for the
// progress channel. A larger buffer reduces the likelihood of dropped
// updates when the UI is slow to consume them.
const ProgressBufferMultiplier = 16

// tracerName identifies this package's OTel tracer. Spans are no-ops unless
// the embedding process installs a global tracer provider.
const tracerName = "github.com/agbru/harmcalc/internal/orchestration"

// ExecuteSummations orchestrates the concurrent execution of one or more
// summation engines.
//
// It manages the lifecycle of the engine goroutines, collects their results,
// and coordinates the display of progress updates. Engine failures are
// captured per-result rather than aborting the group, so a timeout in one
// precision class still yields results from the others that finished.
func ExecuteSummations(ctx context.Context, engines []harmonic.Engine, terms uint64, progressReporter ProgressReporter, out io.Writer) []SummationResult {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]SummationResult, len(engines))
	progressChan := make(chan progress.Update, len(engines)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(engines), out)

	tracer := otel.Tracer(tracerName)

	for i, eng := range engines {
		idx, engine := i, eng
		g.Go(func() error {
			ctx, span := tracer.Start(ctx, "harmonic.sum",
				trace.WithAttributes(
					attribute.String("engine", engine.Name()),
					attribute.Int64("terms", int64(terms)),
				))
			defer span.End()

			startTime := time.Now()
			report, err := engine.Sum(ctx, progressChan, idx, terms)
			if err != nil {
				span.RecordError(err)
				err = apperrors.SummationError{Engine: engine.Name(), Cause: err}
			}
			results[idx] = SummationResult{
				Name:     engine.Name(),
				Label:    engine.Label(),
				Report:   report,
				Duration: time.Since(startTime),
				Err:      err,
			}
			return nil
		})
	}

	g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// ProgressAggregator tracks per-engine progress and exposes the average,
// which both the CLI spinner and the TUI use as the consolidated value.
type ProgressAggregator struct {
	progresses []float64
}

// NewProgressAggregator creates an aggregator for numEngines engines.
// Returns nil if numEngines <= 0.
func NewProgressAggregator(numEngines int) *ProgressAggregator {
	if numEngines <= 0 {
		return nil
	}
	return &ProgressAggregator{progresses: make([]float64, numEngines)}
}

// Update records an update and returns the new average progress.
func (a *ProgressAggregator) Update(u progress.Update) float64 {
	if u.EngineIndex >= 0 && u.EngineIndex < len(a.progresses) {
		a.progresses[u.EngineIndex] = u.Value
	}
	return a.CalculateAverage()
}

// CalculateAverage returns the mean progress across all engines.
func (a *ProgressAggregator) CalculateAverage() float64 {
	var total float64
	for _, p := range a.progresses {
		total += p
	}
	return total / float64(len(a.progresses))
}

// DrainChannel reads all updates from the channel without processing.
func DrainChannel(progressChan <-chan progress.Update) {
	for range progressChan {
	}
}
