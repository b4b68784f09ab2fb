package checkout

import (
	"github.com/shopspring/decimal"

	"saborpos/internal/money"
)

// Bill splitting bounds. Upper bound keeps the terminal UI sane, it is not a
// systems limit.
const (
	MinSplitWays = 2
	MaxSplitWays = 10
)

// EqualSplit divides total into n shares. The math runs in integer cents; the
// remainder cents go one apiece to the first shares, so sum(shares)
// reconstructs the total exactly and no two shares differ by more than one
// cent.
func EqualSplit(total decimal.Decimal, n int) ([]decimal.Decimal, error) {
	if n < MinSplitWays || n > MaxSplitWays {
		return nil, ErrInvalidSplitCount
	}
	cents := money.Cents(total)
	base := cents / int64(n)
	remainder := cents % int64(n)

	shares := make([]decimal.Decimal, n)
	for i := range shares {
		c := base
		if int64(i) < remainder {
			c++
		}
		shares[i] = money.FromCents(c)
	}
	return shares, nil
}

// ValidateCustomSplit checks operator-entered shares against the total. The
// shares must reconstruct the total within the standard tolerance; otherwise
// confirming the split is rejected, never silently accepted.
func ValidateCustomSplit(total decimal.Decimal, shares []decimal.Decimal) error {
	if len(shares) < MinSplitWays || len(shares) > MaxSplitWays {
		return ErrInvalidSplitCount
	}
	sum := decimal.Zero
	for _, s := range shares {
		if !s.IsPositive() {
			return ErrSplitMismatch
		}
		sum = sum.Add(s)
	}
	if !money.NearlyEqual(sum, total) {
		return ErrSplitMismatch
	}
	return nil
}
