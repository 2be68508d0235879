// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResultBlock], [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//     Examples: [FormatResultBlock].
//
//   - Write* functions write data to files on the filesystem.
//     They handle file creation, directory setup, and error handling.
//     Examples: [WriteResultToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/agbru/harmcalc/internal/orchestration"
	"github.com/agbru/harmcalc/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Quiet mode suppresses verbose output.
	Quiet bool
	// Verbose adds the exact reference value and per-order errors.
	Verbose bool
}

// sortForDisplay orders successful results by ascending accumulator width,
// so the float32 lines always precede the float64 lines.
func sortForDisplay(results []orchestration.SummationResult) []orchestration.SummationResult {
	ordered := make([]orchestration.SummationResult, 0, len(results))
	for _, res := range results {
		if res.Err == nil {
			ordered = append(ordered, res)
		}
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Report.Bits < ordered[j].Report.Bits
	})
	return ordered
}

// FormatResultBlock renders the canonical result block: one line per engine
// with both directed sums, followed by one difference line per engine.
//
//	Float forward: 5.187378, Float backward: 5.187377
//	Double forward: 5.187377517639621, Double backward: 5.1873775176396215
//	Float difference: 9.5367431640625e-07
//	Double difference: -8.881784197001252e-16
func FormatResultBlock(results []orchestration.SummationResult) string {
	ordered := sortForDisplay(results)
	var b strings.Builder
	for _, res := range ordered {
		fmt.Fprintf(&b, "%s forward: %s, %s backward: %s\n",
			res.Label, res.Report.FormatForward(), res.Label, res.Report.FormatBackward())
	}
	for _, res := range ordered {
		fmt.Fprintf(&b, "%s difference: %s\n", res.Label, res.Report.FormatDifference())
	}
	return b.String()
}

// DisplayResultBlock writes the result block to out.
func DisplayResultBlock(out io.Writer, results []orchestration.SummationResult) {
	fmt.Fprint(out, FormatResultBlock(results))
}

// DisplayQuietResult outputs the bare result block with no decoration,
// suitable for scripting.
func DisplayQuietResult(out io.Writer, results []orchestration.SummationResult) {
	DisplayResultBlock(out, results)
}

// WriteResultToFile writes the result block to a file with a commented
// metadata header.
func WriteResultToFile(results []orchestration.SummationResult, terms uint64, duration time.Duration, algo string, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	// Ensure directory exists
	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "# Harmonic Series Summation Result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Engines: %s\n", algo)
	fmt.Fprintf(file, "# Terms: %d\n", terms)
	fmt.Fprintf(file, "# Duration: %s\n", duration)
	fmt.Fprintf(file, "\n")

	fmt.Fprint(file, FormatResultBlock(results))

	return nil
}

// DisplayResultWithConfig displays results according to the given output
// configuration and saves them to a file if requested. This is the unified
// entry point that handles all output modes.
func DisplayResultWithConfig(out io.Writer, results []orchestration.SummationResult, terms uint64, duration time.Duration, algo string, config OutputConfig) error {
	if config.Quiet {
		DisplayQuietResult(out, results)
	}

	if config.OutputFile != "" {
		if err := WriteResultToFile(results, terms, duration, algo, config); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
		}
	}

	return nil
}
