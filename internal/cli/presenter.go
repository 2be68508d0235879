package cli

import (
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	apperrors "github.com/agbru/harmcalc/internal/errors"
	"github.com/agbru/harmcalc/internal/format"
	"github.com/agbru/harmcalc/internal/harmonic"
	"github.com/agbru/harmcalc/internal/orchestration"
	"github.com/agbru/harmcalc/internal/progress"
	"github.com/agbru/harmcalc/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter for CLI
// output. It wraps the DisplayProgress function to provide a spinner and
// progress bar display during summations.
type CLIProgressReporter struct{}

// Verify that CLIProgressReporter implements orchestration.ProgressReporter.
var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar for ongoing summations.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, numEngines int, out io.Writer) {
	DisplayProgress(wg, progressChan, numEngines, out)
}

// CLIColorProvider exposes the active theme's colors to the error handler.
type CLIColorProvider struct{}

func (CLIColorProvider) Red() string    { return ui.ColorRed() }
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }

// CLIResultPresenter implements orchestration.ResultPresenter for CLI output.
// It provides formatted, colorized output for summation results in the
// command-line interface.
type CLIResultPresenter struct{}

// Verify interface compliance.
var (
	_ orchestration.ResultPresenter = CLIResultPresenter{}
	_ orchestration.ErrorHandler    = CLIResultPresenter{}
)

// PresentComparisonTable displays the engine comparison table with
// engine names, durations, and status in a formatted tabular layout.
// Uses manual padding to correctly handle ANSI color codes.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.SummationResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	// Find the maximum engine name width for proper alignment
	maxNameLen := 6     // "Engine" header length
	maxDurationLen := 8 // "Duration" header length
	for _, res := range results {
		if len(res.Name) > maxNameLen {
			maxNameLen = len(res.Name)
		}
		duration := format.FormatExecutionDuration(res.Duration)
		if res.Duration == 0 {
			duration = "< 1µs"
		}
		if len(duration) > maxDurationLen {
			maxDurationLen = len(duration)
		}
	}

	// Print header with proper padding
	fmt.Fprintf(out, "%sEngine%s%s   %sDuration%s%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxNameLen-6),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxDurationLen-8),
		ui.ColorUnderline(), ui.ColorReset())

	// Print each result row
	for _, res := range results {
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		} else {
			status = fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
		}
		duration := format.FormatExecutionDuration(res.Duration)
		if res.Duration == 0 {
			duration = "< 1µs"
		}
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(), padRight("", maxNameLen-len(res.Name)),
			ui.ColorYellow(), duration, ui.ColorReset(), padRight("", maxDurationLen-len(duration)),
			status)
	}
}

// padRight returns s followed by spaces up to the given extra length.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// PresentSummary displays the final result block, plus the exact reference
// and error breakdown in verbose mode and the compensated summation section
// in details mode.
func (p CLIResultPresenter) PresentSummary(results []orchestration.SummationResult, opts orchestration.PresentationOptions, out io.Writer) {
	fmt.Fprintf(out, "\n--- Result ---\n")
	DisplayResultBlock(out, results)

	if opts.Verbose {
		presentReferenceErrors(results, opts.Terms, out)
	}
	if opts.Details {
		presentCompensatedSums(opts.Terms, out)
	}
}

// presentReferenceErrors prints the exact reference value and the absolute
// error of each directed sum against it.
func presentReferenceErrors(results []orchestration.SummationResult, terms uint64, out io.Writer) {
	reference := orchestration.ReferenceValue(terms)
	fmt.Fprintf(out, "\n--- Accuracy vs Exact Reference ---\n")
	fmt.Fprintf(out, "H(%s) = %s%v%s\n",
		format.FormatTerms(terms), ui.ColorCyan(), reference, ui.ColorReset())
	for _, res := range sortForDisplay(results) {
		fmt.Fprintf(out, "%s forward error:  %s%.3e%s\n",
			res.Label, ui.ColorYellow(), math.Abs(res.Report.Forward-reference), ui.ColorReset())
		fmt.Fprintf(out, "%s backward error: %s%.3e%s\n",
			res.Label, ui.ColorYellow(), math.Abs(res.Report.Backward-reference), ui.ColorReset())
	}
}

// presentCompensatedSums recomputes both precisions with Kahan compensation
// to show how much of the order sensitivity plain accumulation loses.
func presentCompensatedSums(terms uint64, out io.Writer) {
	fwd32 := harmonic.SumSingleKahan(terms, harmonic.Ascending)
	bwd32 := harmonic.SumSingleKahan(terms, harmonic.Descending)
	fwd64 := harmonic.SumDoubleKahan(terms, harmonic.Ascending)
	bwd64 := harmonic.SumDoubleKahan(terms, harmonic.Descending)

	fmt.Fprintf(out, "\n--- Compensated Summation (Kahan) ---\n")
	fmt.Fprintf(out, "Float forward: %s, Float backward: %s\n",
		format.FormatAccumulator(float64(fwd32), 32), format.FormatAccumulator(float64(bwd32), 32))
	fmt.Fprintf(out, "Double forward: %s, Double backward: %s\n",
		format.FormatAccumulator(fwd64, 64), format.FormatAccumulator(bwd64, 64))
	fmt.Fprintf(out, "Float difference: %s\n", format.FormatAccumulator(float64(fwd32-bwd32), 32))
	fmt.Fprintf(out, "Double difference: %s\n", format.FormatAccumulator(fwd64-bwd64, 64))
}

// HandleError maps summation errors to an appropriate exit code.
func (CLIResultPresenter) HandleError(err error, elapsed time.Duration, out io.Writer) int {
	return apperrors.HandleSummationError(err, elapsed, out, CLIColorProvider{})
}

// DisplayMemoryStats shows memory statistics after a summation run.
func DisplayMemoryStats(heapAlloc, totalAlloc uint64, numGC uint32, pauseTotalNs uint64, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Peak heap:       %s\n", format.FormatBytes(heapAlloc))
	fmt.Fprintf(out, "  Total allocated: %s\n", format.FormatBytes(totalAlloc))
	fmt.Fprintf(out, "  GC cycles:       %d\n", numGC)
	if pauseTotalNs > 0 {
		fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(pauseTotalNs)/1e6)
	} else {
		fmt.Fprintf(out, "  GC pause total:  0ms\n")
	}
}
