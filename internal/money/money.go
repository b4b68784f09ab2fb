// Package money holds the arithmetic helpers shared by every component that
// touches currency. All amounts flow through shopspring/decimal; float64 only
// exists at the JSON boundary.
package money

import "github.com/shopspring/decimal"

// Epsilon is the tolerance used by every "sums must match" check in the system.
// Amounts arrive as decimal strings typed into UI fields and round-trip through
// JSON, so exact equality is too strict.
var Epsilon = decimal.New(1, -2) // 0.01

// Round2 rounds to 2 decimal places, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// NearlyEqual reports whether |a−b| ≤ Epsilon.
func NearlyEqual(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(Epsilon)
}

// Clamp constrains d to the closed interval [lo, hi].
func Clamp(d, lo, hi decimal.Decimal) decimal.Decimal {
	if d.LessThan(lo) {
		return lo
	}
	if d.GreaterThan(hi) {
		return hi
	}
	return d
}

// Cents converts an amount to integer cents after rounding to 2 decimals.
// Split math works in cents so share sums reconstruct totals exactly.
func Cents(d decimal.Decimal) int64 {
	return d.Round(2).Mul(decimal.NewFromInt(100)).IntPart()
}

// FromCents converts integer cents back to a decimal amount.
func FromCents(c int64) decimal.Decimal {
	return decimal.New(c, -2)
}
