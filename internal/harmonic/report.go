package harmonic

import "github.com/agbru/harmcalc/internal/format"

// Report holds the outcome of one engine run: both directed sums and their
// difference, widened to float64 for transport. Bits records the native
// accumulator width so presentation can format values at the precision they
// were computed in.
type Report struct {
	// Terms is the number of series terms accumulated.
	Terms uint64
	// Forward is the ascending-order sum.
	Forward float64
	// Backward is the descending-order sum.
	Backward float64
	// Difference is Forward - Backward, computed in the native precision
	// before widening. For float32 engines this is a float32 subtraction.
	Difference float64
	// Bits is the accumulator width: 32 or 64.
	Bits int
}

// FormatForward renders the forward sum at the native precision.
func (r Report) FormatForward() string {
	return format.FormatAccumulator(r.Forward, r.Bits)
}

// FormatBackward renders the backward sum at the native precision.
func (r Report) FormatBackward() string {
	return format.FormatAccumulator(r.Backward, r.Bits)
}

// FormatDifference renders the difference at the native precision.
func (r Report) FormatDifference() string {
	return format.FormatAccumulator(r.Difference, r.Bits)
}

// OrderSensitive reports whether the two traversal orders produced
// different sums.
func (r Report) OrderSensitive() bool {
	return r.Difference != 0
}
