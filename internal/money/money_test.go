package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestRound2(t *testing.T) {
	assert.True(t, dec("19.28").Equal(Round2(dec("19.2783"))))
	assert.True(t, dec("19.28").Equal(Round2(dec("19.275"))))
	assert.True(t, dec("5.18").Equal(Round2(dec("5.18"))))
	assert.True(t, decimal.Zero.Equal(Round2(decimal.Zero)))
}

func TestNearlyEqual(t *testing.T) {
	assert.True(t, NearlyEqual(dec("100.00"), dec("100.00")))
	assert.True(t, NearlyEqual(dec("100.00"), dec("100.01")))
	assert.True(t, NearlyEqual(dec("100.01"), dec("100.00")))
	assert.False(t, NearlyEqual(dec("100.00"), dec("100.02")))
}

func TestClamp(t *testing.T) {
	lo, hi := decimal.Zero, dec("100")
	assert.True(t, dec("50").Equal(Clamp(dec("50"), lo, hi)))
	assert.True(t, lo.Equal(Clamp(dec("-3"), lo, hi)))
	assert.True(t, hi.Equal(Clamp(dec("120"), lo, hi)))
}

func TestCentsRoundTrip(t *testing.T) {
	assert.Equal(t, int64(10000), Cents(dec("100.00")))
	assert.Equal(t, int64(3333), Cents(dec("33.33")))
	assert.True(t, dec("33.33").Equal(FromCents(3333)))
	assert.True(t, dec("0.01").Equal(FromCents(1)))
}
