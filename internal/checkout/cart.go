// Package checkout implements the transaction computation engine: cart
// pricing, cart-level discounts, bill splitting and tender validation.
// Everything here is pure in-memory computation — persistence happens only
// after all validations pass.
package checkout

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"saborpos/internal/model"
	"saborpos/internal/money"
)

var gramsPerKg = decimal.NewFromInt(1000)

// Line is one cart position. A cart holds at most one line per product —
// adding the same product again merges quantities or weights.
type Line struct {
	ProductID    uuid.UUID
	ProductCode  string
	ProductName  string
	Quantity     int
	WeightKg     decimal.Decimal
	UnitPrice    *decimal.Decimal
	PricePerGram *decimal.Decimal
	Discount     decimal.Decimal
	Subtotal     decimal.Decimal
}

func (l *Line) weighable() bool { return l.PricePerGram != nil }

// recompute applies the line invariant: subtotal = max(0, base − discount),
// where base is quantity×unitPrice or weightKg×1000×pricePerGram.
func (l *Line) recompute() {
	var base decimal.Decimal
	if l.weighable() {
		base = l.WeightKg.Mul(gramsPerKg).Mul(*l.PricePerGram)
	} else if l.UnitPrice != nil {
		base = l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
	}
	sub := money.Round2(base).Sub(l.Discount)
	if sub.IsNegative() {
		sub = decimal.Zero
	}
	l.Subtotal = money.Round2(sub)
}

// Cart accumulates the current transaction's lines. It is single-operator UI
// state: no locking, no sharing across terminals.
type Cart struct {
	lines []*Line
	index map[uuid.UUID]*Line
}

func NewCart() *Cart {
	return &Cart{index: make(map[uuid.UUID]*Line)}
}

// AddItem puts a product in the cart, merging with an existing line for the
// same product. Unit products need quantity ≥ 1; weighable products need a
// positive weight — anything else is ErrInvalidQuantity.
func (c *Cart) AddItem(p *model.Product, quantity int, weightKg *decimal.Decimal) error {
	if p.Weighable() {
		if weightKg == nil || !weightKg.IsPositive() {
			return ErrInvalidQuantity
		}
	} else {
		if quantity < 1 {
			return ErrInvalidQuantity
		}
	}

	line, ok := c.index[p.ID]
	if !ok {
		line = &Line{
			ProductID:    p.ID,
			ProductCode:  p.Code,
			ProductName:  p.Name,
			UnitPrice:    p.UnitPrice,
			PricePerGram: p.PricePerGram,
		}
		c.lines = append(c.lines, line)
		c.index[p.ID] = line
	}

	if p.Weighable() {
		line.WeightKg = line.WeightKg.Add(*weightKg)
	} else {
		line.Quantity += quantity
	}
	line.recompute()
	return nil
}

// SetLineDiscount attaches a fixed-amount discount to a line. The line
// subtotal never goes below zero.
func (c *Cart) SetLineDiscount(productID uuid.UUID, amount decimal.Decimal) error {
	line, ok := c.index[productID]
	if !ok {
		return ErrInvalidQuantity
	}
	if amount.IsNegative() {
		return ErrInvalidQuantity
	}
	line.Discount = amount
	line.recompute()
	return nil
}

// RemoveItem drops a line. Removing a product that is not in the cart is a
// no-op, matching how the terminal UI behaves.
func (c *Cart) RemoveItem(productID uuid.UUID) {
	if _, ok := c.index[productID]; !ok {
		return
	}
	delete(c.index, productID)
	for i, l := range c.lines {
		if l.ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			break
		}
	}
}

// UpdateQuantity sets a unit line's quantity. Zero removes the line.
func (c *Cart) UpdateQuantity(productID uuid.UUID, quantity int) error {
	line, ok := c.index[productID]
	if !ok {
		return ErrInvalidQuantity
	}
	if line.weighable() || quantity < 0 {
		return ErrInvalidQuantity
	}
	if quantity == 0 {
		c.RemoveItem(productID)
		return nil
	}
	line.Quantity = quantity
	line.recompute()
	return nil
}

// UpdateWeight sets a weighable line's weight in kilograms. Zero removes the
// line.
func (c *Cart) UpdateWeight(productID uuid.UUID, weightKg decimal.Decimal) error {
	line, ok := c.index[productID]
	if !ok {
		return ErrInvalidQuantity
	}
	if !line.weighable() || weightKg.IsNegative() {
		return ErrInvalidQuantity
	}
	if weightKg.IsZero() {
		c.RemoveItem(productID)
		return nil
	}
	line.WeightKg = weightKg
	line.recompute()
	return nil
}

// Lines returns the cart lines in insertion order.
func (c *Cart) Lines() []*Line { return c.lines }

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool { return len(c.lines) == 0 }

// Subtotal sums all line subtotals. An empty cart totals zero.
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.lines {
		sum = sum.Add(l.Subtotal)
	}
	return sum
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
	c.index = make(map[uuid.UUID]*Line)
}
