package harmonic

import (
	"context"

	"github.com/agbru/harmcalc/internal/progress"
)

// Direction selects the traversal order of the series terms.
type Direction int

const (
	// Ascending accumulates 1/1, 1/2, ..., 1/n (largest terms first).
	Ascending Direction = iota
	// Descending accumulates 1/n, 1/(n-1), ..., 1/1 (smallest terms first).
	Descending
)

// String returns the direction name.
func (d Direction) String() string {
	if d == Descending {
		return "descending"
	}
	return "ascending"
}

// checkpoint handles the periodic bookkeeping of a kernel loop: context
// cancellation and progress reporting every progress.ReportInterval terms.
// done is the number of terms accumulated so far.
func checkpoint(ctx context.Context, done, total uint64, cb progress.Callback) error {
	if done&(progress.ReportInterval-1) != 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if cb != nil {
		cb(float64(done) / float64(total))
	}
	return nil
}

// SumSingle accumulates the first n harmonic terms in float32, traversing in
// the given direction. Every term is computed and added in float32; nothing
// is widened. cb may be nil. The only possible error is ctx cancellation.
func SumSingle(ctx context.Context, n uint64, dir Direction, cb progress.Callback) (float32, error) {
	var sum float32
	if dir == Ascending {
		for k := uint64(1); k <= n; k++ {
			sum += 1 / float32(k)
			if err := checkpoint(ctx, k, n, cb); err != nil {
				return 0, err
			}
		}
	} else {
		for k := n; k >= 1; k-- {
			sum += 1 / float32(k)
			if err := checkpoint(ctx, n-k+1, n, cb); err != nil {
				return 0, err
			}
		}
	}
	if cb != nil {
		cb(1.0)
	}
	return sum, nil
}

// SumDouble accumulates the first n harmonic terms in float64, traversing in
// the given direction. cb may be nil. The only possible error is ctx
// cancellation.
func SumDouble(ctx context.Context, n uint64, dir Direction, cb progress.Callback) (float64, error) {
	var sum float64
	if dir == Ascending {
		for k := uint64(1); k <= n; k++ {
			sum += 1 / float64(k)
			if err := checkpoint(ctx, k, n, cb); err != nil {
				return 0, err
			}
		}
	} else {
		for k := n; k >= 1; k-- {
			sum += 1 / float64(k)
			if err := checkpoint(ctx, n-k+1, n, cb); err != nil {
				return 0, err
			}
		}
	}
	if cb != nil {
		cb(1.0)
	}
	return sum, nil
}

// SumSingleKahan accumulates the first n harmonic terms in float32 using
// Kahan compensated summation. The compensation term absorbs the rounding
// error of each addition, which removes the order sensitivity that the plain
// float32 kernel demonstrates.
func SumSingleKahan(n uint64, dir Direction) float32 {
	var sum, comp float32
	add := func(term float32) {
		y := term - comp
		t := sum + y
		comp = (t - sum) - y
		sum = t
	}
	if dir == Ascending {
		for k := uint64(1); k <= n; k++ {
			add(1 / float32(k))
		}
	} else {
		for k := n; k >= 1; k-- {
			add(1 / float32(k))
		}
	}
	return sum
}

// SumDoubleKahan is the float64 counterpart of SumSingleKahan.
func SumDoubleKahan(n uint64, dir Direction) float64 {
	var sum, comp float64
	add := func(term float64) {
		y := term - comp
		t := sum + y
		comp = (t - sum) - y
		sum = t
	}
	if dir == Ascending {
		for k := uint64(1); k <= n; k++ {
			add(1 / float64(k))
		}
	} else {
		for k := n; k >= 1; k-- {
			add(1 / float64(k))
		}
	}
	return sum
}
