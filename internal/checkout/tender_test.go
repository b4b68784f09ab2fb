package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSingleCashWithChange(t *testing.T) {
	change, err := ValidateSingle(dec("46.62"), PaymentCash, decPtr("50.00"))
	require.NoError(t, err)
	assert.True(t, dec("3.38").Equal(change), "got %s", change)
}

func TestValidateSingleCashInsufficient(t *testing.T) {
	_, err := ValidateSingle(dec("46.62"), PaymentCash, decPtr("40.00"))
	assert.ErrorIs(t, err, ErrInsufficientChangeAmount)
}

func TestValidateSingleNonCashIgnoresChangeFor(t *testing.T) {
	change, err := ValidateSingle(dec("46.62"), PaymentPix, decPtr("50.00"))
	require.NoError(t, err)
	assert.True(t, change.IsZero())
}

func TestValidateSingleRejectsMixedMethod(t *testing.T) {
	_, err := ValidateSingle(dec("46.62"), PaymentMixed, nil)
	assert.ErrorIs(t, err, ErrInvalidTenderAmount)
}

func TestValidateMixedMatchingSum(t *testing.T) {
	tenders := []Tender{
		{Method: PaymentCash, Amount: dec("20.00")},
		{Method: PaymentCreditCard, Amount: dec("26.62")},
	}
	assert.NoError(t, ValidateMixed(dec("46.62"), tenders))
}

func TestValidateMixedSumMismatch(t *testing.T) {
	tenders := []Tender{
		{Method: PaymentCash, Amount: dec("20.00")},
		{Method: PaymentCreditCard, Amount: dec("20.00")},
	}
	assert.ErrorIs(t, ValidateMixed(dec("46.62"), tenders), ErrMixedTenderMismatch)
}

func TestValidateMixedWithinTolerance(t *testing.T) {
	tenders := []Tender{
		{Method: PaymentCash, Amount: dec("20.00")},
		{Method: PaymentPix, Amount: dec("26.61")},
	}
	assert.NoError(t, ValidateMixed(dec("46.62"), tenders))
}

func TestValidateMixedRejectsBadEntries(t *testing.T) {
	assert.ErrorIs(t, ValidateMixed(dec("10.00"), nil), ErrMixedTenderMismatch)

	tooMany := make([]Tender, MaxMixedTenders+1)
	for i := range tooMany {
		tooMany[i] = Tender{Method: PaymentCash, Amount: dec("1.00")}
	}
	assert.ErrorIs(t, ValidateMixed(dec("6.00"), tooMany), ErrMixedTenderMismatch)

	assert.ErrorIs(t, ValidateMixed(dec("10.00"), []Tender{
		{Method: PaymentCash, Amount: dec("10.00")},
		{Method: PaymentMixed, Amount: dec("0.00")},
	}), ErrInvalidTenderAmount)

	assert.ErrorIs(t, ValidateMixed(dec("10.00"), []Tender{
		{Method: PaymentCash, Amount: dec("11.00")},
		{Method: PaymentPix, Amount: dec("-1.00")},
	}), ErrInvalidTenderAmount)
}

func TestRemainderTender(t *testing.T) {
	existing := []Tender{{Method: PaymentCreditCard, Amount: dec("20.00")}}
	next := RemainderTender(dec("46.62"), existing)
	assert.Equal(t, PaymentCash, next.Method)
	assert.True(t, dec("26.62").Equal(next.Amount))

	// Over-allocated: remainder floors at zero.
	over := RemainderTender(dec("10.00"), []Tender{{Method: PaymentCash, Amount: dec("15.00")}})
	assert.True(t, over.Amount.IsZero())
}
