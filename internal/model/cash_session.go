package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashSession is one open/close cycle of a store's physical drawer.
// Status: "open" | "closed". A store has many sequential sessions but never
// two open at once — enforced by the open-session lookup on open.
type CashSession struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StoreID    uuid.UUID `gorm:"type:uuid;index;not null"`
	OperatorID uuid.UUID `gorm:"type:uuid;index;not null"`

	OpeningAmount decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	ClosingAmount *decimal.Decimal `gorm:"type:decimal(12,2)"`
	// Difference = counted − expected, recorded at close.
	Difference *decimal.Decimal `gorm:"type:decimal(12,2)"`
	// VarianceClass: "falta" | "sobra" | "exato"
	VarianceClass *string `gorm:"type:varchar(10)"`
	Justification *string

	Status   string `gorm:"type:varchar(10);not null;default:'open'"`
	OpenedAt time.Time
	ClosedAt *time.Time

	Entries []CashEntry `gorm:"foreignKey:CashSessionID"`
}

// Open reports whether the session still accepts entries.
func (s *CashSession) Open() bool { return s.Status == "open" }

// CashEntry is an append-only line in the session ledger. Amount is always
// positive; direction is carried by Type ("income" | "expense"), not by sign.
// Cancellations create inverse entries — rows are never updated or deleted.
type CashEntry struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CashSessionID uuid.UUID `gorm:"type:uuid;index;not null"`
	Type          string    `gorm:"type:varchar(10);not null"`
	Method        string    `gorm:"type:varchar(20);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Description   string          `gorm:"not null"`
	// ReferenceID links sale-derived entries to their Sale.
	ReferenceID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time
}

// SaleDerived reports whether the entry was produced by recording a sale, as
// opposed to a manual deposit or expense.
func (e *CashEntry) SaleDerived() bool { return e.ReferenceID != nil }
