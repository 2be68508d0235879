// Package config handles command-line flag parsing, environment variable
// overrides, and validation of the application configuration.
//
// Priority order: CLI flags > environment variables > defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/harmcalc/internal/errors"
	"github.com/agbru/harmcalc/internal/harmonic"
)

// EnvPrefix is the prefix for all environment variable overrides.
const EnvPrefix = "HARMCALC_"

// DefaultTimeout bounds a summation run unless overridden.
const DefaultTimeout = 1 * time.Minute

// AppConfig holds the complete runtime configuration of the application.
type AppConfig struct {
	// Terms is the number of harmonic series terms to sum.
	Terms uint64
	// Algo selects the precision engine: an engine key or "all".
	Algo string
	// Timeout bounds the total execution time.
	Timeout time.Duration
	// Verbose adds the exact reference value and per-order errors.
	Verbose bool
	// Details shows compensated sums and memory statistics.
	Details bool
	// Quiet restricts output to the bare result block.
	Quiet bool
	// OutputFile is the path to save the result (empty for none).
	OutputFile string
	// TUI launches the interactive terminal explorer.
	TUI bool
	// ServeAddr runs the HTTP API server on the given address (empty for none).
	ServeAddr string
	// NoColor disables ANSI colors.
	NoColor bool
	// CompletionShell generates a completion script for the named shell.
	CompletionShell string
}

// ParseConfig parses command-line arguments and environment variables into
// an AppConfig. availableAlgos lists the valid engine keys for --algo
// validation and for the usage text.
//
// Returns flag.ErrHelp when -h/--help was requested; any other error is a
// configuration error.
func ParseConfig(programName string, args []string, errWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	cfg := AppConfig{
		Terms:   harmonic.DefaultTerms,
		Algo:    "all",
		Timeout: DefaultTimeout,
	}

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	fs.Uint64Var(&cfg.Terms, "n", cfg.Terms, "Number of harmonic terms to sum")
	fs.Uint64Var(&cfg.Terms, "terms", cfg.Terms, "Number of harmonic terms to sum (long form of -n)")
	fs.StringVar(&cfg.Algo, "algo", cfg.Algo, fmt.Sprintf("Precision engine to run: %s, or 'all'", strings.Join(availableAlgos, ", ")))
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Maximum execution time (e.g. 30s, 5m)")
	fs.BoolVar(&cfg.Verbose, "v", false, "Show exact reference and per-order errors")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Show exact reference and per-order errors (long form of -v)")
	fs.BoolVar(&cfg.Details, "d", false, "Show compensated sums and memory details")
	fs.BoolVar(&cfg.Details, "details", false, "Show compensated sums and memory details (long form of -d)")
	fs.BoolVar(&cfg.Quiet, "q", false, "Quiet mode: print only the result block")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Quiet mode (long form of -q)")
	fs.StringVar(&cfg.OutputFile, "o", "", "Save the result block to a file")
	fs.StringVar(&cfg.OutputFile, "output", "", "Save the result block to a file (long form of -o)")
	fs.BoolVar(&cfg.TUI, "tui", false, "Launch the interactive terminal interface")
	fs.StringVar(&cfg.ServeAddr, "serve", "", "Run the HTTP API server on the given address (e.g. :8080)")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output")
	fs.StringVar(&cfg.CompletionShell, "completion", "", "Generate a completion script: bash, zsh, fish, powershell")

	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [options]\n\n", programName)
		fmt.Fprintf(errWriter, "Sums the harmonic series 1/1 + 1/2 + ... + 1/n in ascending and\n")
		fmt.Fprintf(errWriter, "descending order at two floating-point precisions and reports how\n")
		fmt.Fprintf(errWriter, "much the traversal order changes the result.\n\n")
		fmt.Fprintf(errWriter, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(errWriter, "\nEnvironment variables (%s*) override defaults but not flags.\n", EnvPrefix)
	}

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	applyEnvOverrides(&cfg, fs)

	if err := validate(cfg, availableAlgos); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// validate checks configuration invariants after flag and env resolution.
func validate(cfg AppConfig, availableAlgos []string) error {
	if cfg.Terms < harmonic.MinTerms || cfg.Terms > harmonic.MaxTerms {
		return apperrors.NewConfigError("invalid term count %d: must be between %d and %d",
			cfg.Terms, harmonic.MinTerms, harmonic.MaxTerms)
	}
	if cfg.Algo != "all" && !slices.Contains(availableAlgos, cfg.Algo) {
		return apperrors.NewConfigError("unknown engine %q: valid values are %s, all",
			cfg.Algo, strings.Join(availableAlgos, ", "))
	}
	if cfg.Timeout <= 0 {
		return apperrors.NewConfigError("invalid timeout %s: must be positive", cfg.Timeout)
	}
	if cfg.TUI && cfg.ServeAddr != "" {
		return apperrors.NewConfigError("--tui and --serve are mutually exclusive")
	}
	if cfg.CompletionShell != "" {
		switch cfg.CompletionShell {
		case "bash", "zsh", "fish", "powershell", "ps":
		default:
			return apperrors.NewConfigError("unsupported completion shell %q", cfg.CompletionShell)
		}
	}
	return nil
}
