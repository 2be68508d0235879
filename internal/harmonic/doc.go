// Package harmonic implements the harmonic series summation kernels and the
// precision-class engines built on them.
//
// The harmonic series 1/1 + 1/2 + ... + 1/n is the classic demonstration of
// floating-point summation order sensitivity: addition is not associative
// under IEEE-754 rounding, so accumulating the terms in ascending order
// (large terms first) and descending order (small terms first) produces
// measurably different sums in float32, while float64 keeps the two within a
// few ulps of each other.
//
// Kernels are plain accumulation loops; each precision class (binary32,
// binary64) is exposed as an Engine that computes both traversal orders and
// reports the native-precision difference.
package harmonic
