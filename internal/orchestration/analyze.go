package orchestration

import (
	"fmt"
	"io"
	"math"
	"sort"

	apperrors "github.com/agbru/harmcalc/internal/errors"
	"github.com/agbru/harmcalc/internal/exact"
	"github.com/agbru/harmcalc/internal/harmonic"
)

// ReferenceValue returns the best available float64 approximation of H(n):
// exact rational arithmetic up to exact.MaxTerms, compensated float64
// summation beyond that bound.
func ReferenceValue(terms uint64) float64 {
	if terms <= exact.MaxTerms {
		if r, err := exact.Harmonic(terms); err == nil {
			return r.Float64()
		}
	}
	return harmonic.SumDoubleKahan(terms, harmonic.Ascending)
}

// accumulationTolerance returns the worst-case absolute rounding bound for a
// plain left-to-right accumulation of n harmonic terms at the given
// precision: n additions, each contributing at most eps/2 of the running
// sum, with the sum bounded by H(n).
func accumulationTolerance(terms uint64, bits int, reference float64) float64 {
	eps := math.Ldexp(1, -52) // binary64 unit roundoff * 2
	if bits == 32 {
		eps = math.Ldexp(1, -23)
	}
	tol := eps / 2 * float64(terms) * reference
	if tol < 1e-12 {
		tol = 1e-12
	}
	return tol
}

// AnalyzeSummationResults processes the results from the engines and
// generates the summary report.
//
// It sorts the results (successes first, then by execution time), validates
// every successful sum against the exact harmonic reference, renders the
// comparison table and the final result block through the presenter, and
// returns the process exit code.
func AnalyzeSummationResults(results []SummationResult, opts PresentationOptions, presenter ResultPresenter, errHandler ErrorHandler, out io.Writer) int {
	sort.Slice(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstError error
	successCount := 0
	for i := range results {
		if results[i].Err != nil {
			if firstError == nil {
				firstError = results[i].Err
			}
		} else {
			successCount++
		}
	}

	presenter.PresentComparisonTable(results, out)

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No engine could complete the summation.\n")
		return errHandler.HandleError(firstError, 0, out)
	}

	// Validate each successful engine against the exact reference. A sum
	// outside the worst-case accumulation bound for its precision means the
	// kernel computed something other than the harmonic series.
	reference := ReferenceValue(opts.Terms)
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		tol := accumulationTolerance(opts.Terms, res.Report.Bits, reference)
		if math.Abs(res.Report.Forward-reference) > tol || math.Abs(res.Report.Backward-reference) > tol {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! A sum deviates from the exact reference beyond its precision bound.\n")
			mismatch := apperrors.MismatchError{Engine: res.Name, Got: res.Report.Forward, Want: reference}
			return errHandler.HandleError(mismatch, 0, out)
		}
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All sums are within their precision bounds of H(%d).\n", opts.Terms)
	presenter.PresentSummary(results, opts, out)
	return apperrors.ExitSuccess
}
