package shared

import "math"

// Tolerance absorbs floating-point rounding when comparing debit and credit
// totals. Differences at or below this value count as equal.
const Tolerance = 0.01

// WithinTolerance reports whether two monetary totals match.
func WithinTolerance(a, b float64) bool {
	return math.Abs(a-b) <= Tolerance
}
