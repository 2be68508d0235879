package harmonic

// DefaultTerms is the canonical term count of the demonstration. One hundred
// terms are enough for the float32 forward and backward sums to differ by
// exactly 2^-20 while the float64 sums still agree to ~15 significant digits.
const DefaultTerms uint64 = 100

// MinTerms is the smallest accepted term count.
const MinTerms uint64 = 1

// MaxTerms bounds the term count. A billion float64 additions complete in a
// few seconds; beyond that the float32 accumulator has long since stagnated
// (1/k underflows against the running sum) and the demonstration adds nothing.
const MaxTerms uint64 = 1_000_000_000
