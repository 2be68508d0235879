// Package exact computes harmonic numbers H(n) with exact rational
// arithmetic, providing the reference values against which the
// floating-point engines are validated.
//
// Arithmetic uses GMP-backed big integers; the numerator and denominator of
// H(n) grow roughly like n!, so exact evaluation is bounded by MaxTerms.
// Callers needing a reference beyond that bound fall back to compensated
// float64 summation, whose error is negligible at the tolerances involved.
package exact

import (
	"fmt"

	"github.com/ncw/gmp"
)

// MaxTerms bounds exact evaluation. At 10^4 terms the unreduced denominator
// has ~36000 decimal digits, which GMP handles in well under a second;
// beyond that the cost stops being worth it for a reference value.
const MaxTerms uint64 = 10_000

// refShift is the binary fixed-point shift used to convert the exact
// fraction to float64. H(MaxTerms) < 16 = 2^4, so the shifted quotient
// stays below 2^61 and fits in an int64.
const refShift = 57

// Rational is a harmonic number as an exact fraction Num/Den.
type Rational struct {
	Num *gmp.Int
	Den *gmp.Int
}

// Harmonic computes H(n) = 1/1 + 1/2 + ... + 1/n exactly.
// It returns an error when n is zero or exceeds MaxTerms.
func Harmonic(n uint64) (Rational, error) {
	if n == 0 {
		return Rational{}, fmt.Errorf("harmonic number undefined for n=0")
	}
	if n > MaxTerms {
		return Rational{}, fmt.Errorf("exact evaluation capped at %d terms (requested %d)", MaxTerms, n)
	}

	// p/q + 1/k = (p*k + q) / (q*k)
	num := gmp.NewInt(0)
	den := gmp.NewInt(1)
	k := new(gmp.Int)
	for i := uint64(1); i <= n; i++ {
		k.SetInt64(int64(i))
		num.Mul(num, k)
		num.Add(num, den)
		den.Mul(den, k)
	}

	r := Rational{Num: num, Den: den}
	r.reduce()
	return r, nil
}

// reduce divides out the greatest common divisor of Num and Den.
func (r Rational) reduce() {
	g := new(gmp.Int).GCD(nil, nil, r.Num, r.Den)
	if g.Cmp(gmp.NewInt(1)) > 0 {
		r.Num.Quo(r.Num, g)
		r.Den.Quo(r.Den, g)
	}
}

// Float64 converts the fraction to float64 via fixed-point division.
// The quotient is evaluated with refShift extra fraction bits, so the
// result is within a fraction of an ulp of the correctly rounded value.
func (r Rational) Float64() float64 {
	if r.Num == nil || r.Den == nil || r.Den.Sign() == 0 {
		return 0
	}
	scaled := new(gmp.Int).Lsh(r.Num, refShift)
	scaled.Quo(scaled, r.Den)
	return float64(scaled.Int64()) / float64(uint64(1)<<refShift)
}

// String renders the fraction as "num/den".
func (r Rational) String() string {
	if r.Num == nil || r.Den == nil {
		return "0/1"
	}
	return r.Num.String() + "/" + r.Den.String()
}
