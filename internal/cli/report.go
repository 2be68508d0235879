package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/harmcalc/internal/config"
	"github.com/agbru/harmcalc/internal/format"
	"github.com/agbru/harmcalc/internal/harmonic"
	"github.com/agbru/harmcalc/internal/ui"
)

// PrintExecutionConfig displays the current execution configuration: the
// series length, the timeout, and environment details.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Summing %sH(%s)%s in both directions with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), format.FormatTerms(cfg.Terms), ui.ColorReset(),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(),
		ui.ColorCyan(), runtime.Version(), ui.ColorReset())
}

// PrintExecutionMode displays the execution mode (single precision class vs
// side-by-side comparison).
func PrintExecutionMode(engines []harmonic.Engine, out io.Writer) {
	var modeDesc string
	if len(engines) > 1 {
		modeDesc = "Parallel comparison of both precision classes"
	} else {
		modeDesc = fmt.Sprintf("Single run with the %s%s%s engine",
			ui.ColorGreen(), engines[0].Name(), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
