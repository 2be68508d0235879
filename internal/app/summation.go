package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/agbru/harmcalc/internal/cli"
	apperrors "github.com/agbru/harmcalc/internal/errors"
	"github.com/agbru/harmcalc/internal/metrics"
	"github.com/agbru/harmcalc/internal/orchestration"
)

// runSummation orchestrates the execution of the CLI summation command.
func (a *Application) runSummation(ctx context.Context, out io.Writer) int {
	// Setup lifecycle (timeout + signals)
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	// Get engines to run
	enginesToRun := orchestration.GetEnginesToRun(a.Config.Algo, a.Factory)

	// Skip verbose output in quiet mode
	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(enginesToRun, out)
	}

	// Choose progress reporter based on quiet mode
	var progressReporter orchestration.ProgressReporter
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
		progressReporter = orchestration.NullProgressReporter{}
	} else {
		progressReporter = cli.CLIProgressReporter{}
	}

	collector := metrics.NewMemoryCollector()
	memBefore := collector.Snapshot()

	start := time.Now()
	results := orchestration.ExecuteSummations(ctx, enginesToRun, a.Config.Terms, progressReporter, progressOut)
	elapsed := time.Since(start)

	// Build output config for the CLI options
	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
	}

	exitCode := a.analyzeResultsWithOutput(results, outputCfg, elapsed, out)

	if a.Config.Details && !a.Config.Quiet {
		d := collector.Snapshot().Delta(memBefore)
		cli.DisplayMemoryStats(d.HeapAlloc, d.TotalAlloc, d.NumGC, d.PauseTotalNs, out)
	}

	return exitCode
}

func (a *Application) analyzeResultsWithOutput(results []orchestration.SummationResult, outputCfg cli.OutputConfig, elapsed time.Duration, out io.Writer) int {
	// Quiet mode prints only the bare result block when every engine
	// produced a sum; failures fall through to the full analysis so the
	// error surface stays visible.
	if outputCfg.Quiet && allSucceeded(results) {
		if err := cli.DisplayResultWithConfig(out, results, a.Config.Terms, elapsed, a.Config.Algo, outputCfg); err != nil {
			return apperrors.ExitErrorGeneric
		}
		return apperrors.ExitSuccess
	}

	presOpts := orchestration.PresentationOptions{
		Terms:   a.Config.Terms,
		Verbose: a.Config.Verbose,
		Details: a.Config.Details,
	}
	exitCode := orchestration.AnalyzeSummationResults(results, presOpts, cli.CLIResultPresenter{}, cli.CLIResultPresenter{}, out)

	// Handle file output for non-quiet mode
	if exitCode == apperrors.ExitSuccess && outputCfg.OutputFile != "" {
		if err := cli.DisplayResultWithConfig(out, results, a.Config.Terms, elapsed, a.Config.Algo, outputCfg); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
	}

	return exitCode
}

func allSucceeded(results []orchestration.SummationResult) bool {
	if len(results) == 0 {
		return false
	}
	for i := range results {
		if results[i].Err != nil {
			return false
		}
	}
	return true
}
