package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is written once at checkout confirmation and never mutated afterwards,
// except for the explicit cancellation fields. Cancelling a sale does not
// delete it — the drawer is balanced with inverse cash entries instead.
type Sale struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TicketNumber  int       `gorm:"uniqueIndex;not null"`
	CashSessionID uuid.UUID `gorm:"type:uuid;index;not null"`
	OperatorID    uuid.UUID `gorm:"type:uuid;not null"`

	Subtotal           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DiscountAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DiscountPercentage decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	TotalAmount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	// PaymentType: "cash" | "pix" | "credit_card" | "debit_card" | "voucher" | "mixed"
	PaymentType string `gorm:"type:varchar(20);not null"`
	// ChangeAmount is non-zero only for cash sales where the customer handed
	// over more than the total.
	ChangeAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	IsCancelled  bool `gorm:"not null;default:false"`
	CancelledAt  *time.Time
	CancelReason *string

	CreatedAt time.Time

	Items   []SaleItem   `gorm:"foreignKey:SaleID"`
	Tenders []SaleTender `gorm:"foreignKey:SaleID"`

	Operator *User `gorm:"foreignKey:OperatorID"`
}

// SaleItem snapshots the product code/name/price at the moment of sale, so the
// record stays meaningful after catalog edits. Quantity is used for unit
// products, WeightKg for weighable ones — never both.
type SaleItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID      uuid.UUID `gorm:"type:uuid;index;not null"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null"`
	ProductCode string    `gorm:"not null"`
	ProductName string    `gorm:"not null"`

	Quantity     int              `gorm:"not null;default:0"`
	WeightKg     *decimal.Decimal `gorm:"type:decimal(8,3)"`
	UnitPrice    *decimal.Decimal `gorm:"type:decimal(10,2)"`
	PricePerGram *decimal.Decimal `gorm:"type:decimal(10,4)"`

	DiscountAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// SaleTender is one payment instrument applied toward a sale's total. Single-
// tender sales have exactly one row; mixed sales have up to five, in the order
// the operator entered them.
type SaleTender struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	Position int             `gorm:"not null;default:0"`
	Method   string          `gorm:"type:varchar(20);not null"`
	Amount   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}
