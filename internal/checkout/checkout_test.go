package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutTotalAfterDiscount(t *testing.T) {
	chk := New()
	require.NoError(t, chk.Cart.AddItem(unitProduct("burger", "25.90"), 2, nil))

	chk.SetDiscount(DiscountPercentage, dec("10"))

	assert.True(t, dec("51.80").Equal(chk.Cart.Subtotal()))
	assert.True(t, dec("5.18").Equal(chk.DiscountAmount()))
	assert.True(t, dec("46.62").Equal(chk.Total()))
}

func TestCheckoutValidatePayment(t *testing.T) {
	chk := New()
	require.NoError(t, chk.Cart.AddItem(unitProduct("burger", "25.90"), 2, nil))
	chk.SetDiscount(DiscountPercentage, dec("10"))

	chk.SetTenders([]Tender{
		{Method: PaymentCash, Amount: dec("20.00")},
		{Method: PaymentCreditCard, Amount: dec("26.62")},
	})
	assert.NoError(t, chk.ValidatePayment())

	chk.SetTenders([]Tender{{Method: PaymentCash, Amount: dec("20.00")}})
	assert.ErrorIs(t, chk.ValidatePayment(), ErrMixedTenderMismatch)
}

func TestCheckoutNextTender(t *testing.T) {
	chk := New()
	require.NoError(t, chk.Cart.AddItem(unitProduct("burger", "25.90"), 2, nil))
	chk.SetTenders([]Tender{{Method: PaymentPix, Amount: dec("30.00")}})

	next := chk.NextTender()
	assert.Equal(t, PaymentCash, next.Method)
	assert.True(t, dec("21.80").Equal(next.Amount))
}

func TestCheckoutClearResetsEverything(t *testing.T) {
	chk := New()
	require.NoError(t, chk.Cart.AddItem(unitProduct("burger", "25.90"), 1, nil))
	chk.SetDiscount(DiscountPercentage, dec("10"))
	chk.SetTenders([]Tender{{Method: PaymentCash, Amount: dec("23.31")}})

	chk.Clear()

	assert.True(t, chk.Cart.Empty())
	assert.Equal(t, DiscountNone, chk.Discount().Type)
	assert.Nil(t, chk.Tenders())
	assert.True(t, chk.Total().IsZero())
}
