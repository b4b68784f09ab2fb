package checkout

import (
	"github.com/shopspring/decimal"
)

// Checkout ties one transaction's cart, discount and payment state together.
// The three share a lifecycle: clearing the cart also resets the pending
// discount and tenders.
type Checkout struct {
	Cart     *Cart
	discount Discount
	tenders  []Tender
}

func New() *Checkout {
	return &Checkout{Cart: NewCart(), discount: NewDiscount(DiscountNone, decimal.Zero)}
}

// SetDiscount replaces the cart-level discount.
func (c *Checkout) SetDiscount(t DiscountType, value decimal.Decimal) {
	c.discount = NewDiscount(t, value)
}

func (c *Checkout) Discount() Discount { return c.discount }

// DiscountAmount resolves the current discount against the cart subtotal.
func (c *Checkout) DiscountAmount() decimal.Decimal {
	return c.discount.Amount(c.Cart.Subtotal())
}

// Total is the amount due after the cart-level discount.
func (c *Checkout) Total() decimal.Decimal {
	return c.discount.Total(c.Cart.Subtotal())
}

// SetTenders replaces the pending mixed-tender entries.
func (c *Checkout) SetTenders(tenders []Tender) { c.tenders = tenders }

func (c *Checkout) Tenders() []Tender { return c.tenders }

// ValidatePayment checks the pending tenders against the current total.
func (c *Checkout) ValidatePayment() error {
	return ValidateMixed(c.Total(), c.tenders)
}

// NextTender suggests the amount for a new blank tender entry.
func (c *Checkout) NextTender() Tender {
	return RemainderTender(c.Total(), c.tenders)
}

// Clear resets the whole transaction: lines, discount and tenders.
func (c *Checkout) Clear() {
	c.Cart.Clear()
	c.discount = NewDiscount(DiscountNone, decimal.Zero)
	c.tenders = nil
}
