package checkout

import (
	"github.com/shopspring/decimal"

	"saborpos/internal/money"
)

// DiscountType tags the single cart-level discount.
type DiscountType string

const (
	DiscountNone       DiscountType = "none"
	DiscountPercentage DiscountType = "percentage"
	DiscountAmount     DiscountType = "amount"
)

var hundred = decimal.NewFromInt(100)

// Discount is a cart-level reduction. Out-of-range values are clamped, not
// rejected: percentages to [0,100], amounts to ≥ 0.
type Discount struct {
	Type  DiscountType
	Value decimal.Decimal
}

// NewDiscount normalizes the raw type/value pair from the UI.
func NewDiscount(t DiscountType, value decimal.Decimal) Discount {
	switch t {
	case DiscountPercentage:
		return Discount{Type: t, Value: money.Clamp(value, decimal.Zero, hundred)}
	case DiscountAmount:
		if value.IsNegative() {
			value = decimal.Zero
		}
		return Discount{Type: t, Value: value}
	default:
		return Discount{Type: DiscountNone, Value: decimal.Zero}
	}
}

// Amount resolves the discount against a subtotal. The result is always in
// [0, subtotal] — a discount can never push the total negative.
func (d Discount) Amount(subtotal decimal.Decimal) decimal.Decimal {
	switch d.Type {
	case DiscountPercentage:
		return money.Round2(subtotal.Mul(d.Value).Div(hundred))
	case DiscountAmount:
		if d.Value.GreaterThan(subtotal) {
			return subtotal
		}
		return money.Round2(d.Value)
	default:
		return decimal.Zero
	}
}

// Total applies the discount: max(0, subtotal − Amount(subtotal)).
func (d Discount) Total(subtotal decimal.Decimal) decimal.Decimal {
	total := subtotal.Sub(d.Amount(subtotal))
	if total.IsNegative() {
		return decimal.Zero
	}
	return money.Round2(total)
}
