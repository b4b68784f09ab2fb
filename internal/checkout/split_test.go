package checkout

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqualSplitExactReconstruction(t *testing.T) {
	// 100.00 / 3 → 33.34 + 33.33 + 33.33
	shares, err := EqualSplit(dec("100.00"), 3)
	require.NoError(t, err)
	require.Len(t, shares, 3)

	assert.True(t, dec("33.34").Equal(shares[0]), "got %s", shares[0])
	assert.True(t, dec("33.33").Equal(shares[1]))
	assert.True(t, dec("33.33").Equal(shares[2]))

	sum := decimal.Zero
	for _, s := range shares {
		sum = sum.Add(s)
	}
	assert.True(t, dec("100.00").Equal(sum))
}

func TestEqualSplitEvenDivision(t *testing.T) {
	shares, err := EqualSplit(dec("46.62"), 2)
	require.NoError(t, err)
	assert.True(t, dec("23.31").Equal(shares[0]))
	assert.True(t, dec("23.31").Equal(shares[1]))
}

func TestEqualSplitSharesDifferByAtMostOneCent(t *testing.T) {
	shares, err := EqualSplit(dec("0.07"), 10)
	require.NoError(t, err)

	sum := decimal.Zero
	min, max := shares[0], shares[0]
	for _, s := range shares {
		sum = sum.Add(s)
		if s.LessThan(min) {
			min = s
		}
		if s.GreaterThan(max) {
			max = s
		}
	}
	assert.True(t, dec("0.07").Equal(sum))
	assert.True(t, max.Sub(min).LessThanOrEqual(dec("0.01")))
}

func TestEqualSplitWaysBounds(t *testing.T) {
	_, err := EqualSplit(dec("100.00"), 1)
	assert.ErrorIs(t, err, ErrInvalidSplitCount)

	_, err = EqualSplit(dec("100.00"), 11)
	assert.ErrorIs(t, err, ErrInvalidSplitCount)
}

func TestValidateCustomSplit(t *testing.T) {
	total := dec("100.00")

	assert.NoError(t, ValidateCustomSplit(total, []decimal.Decimal{dec("60.00"), dec("40.00")}))

	// Within the one-cent tolerance.
	assert.NoError(t, ValidateCustomSplit(total, []decimal.Decimal{dec("60.00"), dec("40.01")}))

	// Sum off by more than the tolerance.
	assert.ErrorIs(t, ValidateCustomSplit(total, []decimal.Decimal{dec("60.00"), dec("30.00")}), ErrSplitMismatch)

	// Non-positive share.
	assert.ErrorIs(t, ValidateCustomSplit(total, []decimal.Decimal{dec("100.00"), dec("0")}), ErrSplitMismatch)

	// Count bounds.
	assert.ErrorIs(t, ValidateCustomSplit(total, []decimal.Decimal{dec("100.00")}), ErrInvalidSplitCount)
}
