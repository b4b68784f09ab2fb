package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry sold at the terminal. Exactly one pricing mode is
// active per product: UnitPrice for counted items, PricePerGram for weighable
// ones (self-service buffet, bulk goods). Catalog management lives in the
// back-office system; this service only reads products.
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code        string    `gorm:"uniqueIndex;not null"`
	Name        string    `gorm:"index;not null"`
	Description *string
	// UnitPrice is set for unit-priced products, nil for weighable ones.
	UnitPrice *decimal.Decimal `gorm:"type:decimal(10,2)"`
	// PricePerGram is set for weighable products, nil for unit-priced ones.
	PricePerGram *decimal.Decimal `gorm:"type:decimal(10,4)"`
	Active       bool             `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Weighable reports whether the product is priced by weight.
func (p *Product) Weighable() bool { return p.PricePerGram != nil }
