package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies ANSI escape sequences for error presentation.
// The CLI layer implements it against the active theme; passing a provider
// keeps this package free of any dependency on presentation code.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// HandleSummationError maps an error from a summation run to a process exit
// code, writing a themed diagnostic to out. The elapsed duration is included
// in timeout diagnostics to show how long the run was allowed to execute.
func HandleSummationError(err error, elapsed time.Duration, out io.Writer, colors ColorProvider) int {
	switch {
	case err == nil:
		return ExitSuccess

	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(out, "\n%sTimeout:%s the summation did not complete within %s%s%s.\n",
			colors.Red(), colors.Reset(), colors.Yellow(), elapsed, colors.Reset())
		return ExitErrorTimeout

	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "\n%sCanceled:%s the summation was interrupted.\n",
			colors.Red(), colors.Reset())
		return ExitErrorCanceled
	}

	var mismatchErr MismatchError
	if errors.As(err, &mismatchErr) {
		fmt.Fprintf(out, "\n%sMismatch:%s %v\n", colors.Red(), colors.Reset(), err)
		return ExitErrorMismatch
	}

	var configErr ConfigError
	var validationErr ValidationError
	if errors.As(err, &configErr) || errors.As(err, &validationErr) {
		fmt.Fprintf(out, "\n%sConfiguration error:%s %v\n", colors.Red(), colors.Reset(), err)
		return ExitErrorConfig
	}

	fmt.Fprintf(out, "\n%sError:%s %v\n", colors.Red(), colors.Reset(), err)
	return ExitErrorGeneric
}
