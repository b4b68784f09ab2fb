package checkout

import (
	"testing"

	"saborpos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func unitProduct(name, price string) *model.Product {
	return &model.Product{
		ID:        uuid.New(),
		Code:      "U-" + name,
		Name:      name,
		UnitPrice: decPtr(price),
		Active:    true,
	}
}

func weighableProduct(name, pricePerGram string) *model.Product {
	return &model.Product{
		ID:           uuid.New(),
		Code:         "W-" + name,
		Name:         name,
		PricePerGram: decPtr(pricePerGram),
		Active:       true,
	}
}

func TestAddItemUnitPricing(t *testing.T) {
	cart := NewCart()
	burger := unitProduct("burger", "25.90")

	require.NoError(t, cart.AddItem(burger, 2, nil))

	require.Len(t, cart.Lines(), 1)
	assert.True(t, dec("51.80").Equal(cart.Subtotal()), "got %s", cart.Subtotal())
}

func TestAddItemMergesSameProduct(t *testing.T) {
	cart := NewCart()
	burger := unitProduct("burger", "25.90")

	require.NoError(t, cart.AddItem(burger, 1, nil))
	require.NoError(t, cart.AddItem(burger, 1, nil))

	require.Len(t, cart.Lines(), 1)
	assert.Equal(t, 2, cart.Lines()[0].Quantity)
	assert.True(t, dec("51.80").Equal(cart.Subtotal()))
}

func TestAddItemWeighablePricing(t *testing.T) {
	cart := NewCart()
	salad := weighableProduct("salad-bar", "0.0359")

	// 0.537 kg × 1000 × 0.0359/g = 19.2783 → 19.28
	require.NoError(t, cart.AddItem(salad, 0, decPtr("0.537")))

	assert.True(t, dec("19.28").Equal(cart.Subtotal()), "got %s", cart.Subtotal())
}

func TestAddItemRejectsBadQuantities(t *testing.T) {
	cart := NewCart()

	assert.ErrorIs(t, cart.AddItem(unitProduct("burger", "25.90"), 0, nil), ErrInvalidQuantity)
	assert.ErrorIs(t, cart.AddItem(unitProduct("soda", "8.00"), -1, nil), ErrInvalidQuantity)
	assert.ErrorIs(t, cart.AddItem(weighableProduct("salad", "0.0359"), 0, nil), ErrInvalidQuantity)
	assert.ErrorIs(t, cart.AddItem(weighableProduct("salad", "0.0359"), 0, decPtr("0")), ErrInvalidQuantity)
	assert.True(t, cart.Empty())
}

func TestSetLineDiscountFloorsAtZero(t *testing.T) {
	cart := NewCart()
	soda := unitProduct("soda", "8.00")
	require.NoError(t, cart.AddItem(soda, 1, nil))

	// Discount larger than the line base: subtotal floors at zero.
	require.NoError(t, cart.SetLineDiscount(soda.ID, dec("10.00")))
	assert.True(t, cart.Subtotal().IsZero())

	require.NoError(t, cart.SetLineDiscount(soda.ID, dec("3.00")))
	assert.True(t, dec("5.00").Equal(cart.Subtotal()))
}

func TestUpdateQuantity(t *testing.T) {
	cart := NewCart()
	burger := unitProduct("burger", "25.90")
	require.NoError(t, cart.AddItem(burger, 2, nil))

	require.NoError(t, cart.UpdateQuantity(burger.ID, 3))
	assert.True(t, dec("77.70").Equal(cart.Subtotal()))

	// Zero removes the line.
	require.NoError(t, cart.UpdateQuantity(burger.ID, 0))
	assert.True(t, cart.Empty())

	assert.ErrorIs(t, cart.UpdateQuantity(burger.ID, 1), ErrInvalidQuantity)
}

func TestUpdateQuantityRejectsWeighableLine(t *testing.T) {
	cart := NewCart()
	salad := weighableProduct("salad", "0.0359")
	require.NoError(t, cart.AddItem(salad, 0, decPtr("0.250")))

	assert.ErrorIs(t, cart.UpdateQuantity(salad.ID, 2), ErrInvalidQuantity)
}

func TestUpdateWeight(t *testing.T) {
	cart := NewCart()
	salad := weighableProduct("salad", "0.0359")
	require.NoError(t, cart.AddItem(salad, 0, decPtr("0.250")))

	require.NoError(t, cart.UpdateWeight(salad.ID, dec("0.537")))
	assert.True(t, dec("19.28").Equal(cart.Subtotal()))

	require.NoError(t, cart.UpdateWeight(salad.ID, decimal.Zero))
	assert.True(t, cart.Empty())
}

func TestRemoveItemAbsentIsNoop(t *testing.T) {
	cart := NewCart()
	require.NoError(t, cart.AddItem(unitProduct("burger", "25.90"), 1, nil))

	cart.RemoveItem(uuid.New())
	assert.Len(t, cart.Lines(), 1)
}

func TestEmptyCartSubtotalIsZero(t *testing.T) {
	cart := NewCart()
	assert.True(t, cart.Empty())
	assert.True(t, cart.Subtotal().IsZero())
}
