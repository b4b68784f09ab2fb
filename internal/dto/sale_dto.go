package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type SaleItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	// Quantity applies to unit products; WeightKg to weighable ones. The
	// checkout engine enforces the mode match — the validator only bounds.
	Quantity int              `json:"quantity"   validate:"min=0"`
	WeightKg *decimal.Decimal `json:"weight_kg"`
	Discount decimal.Decimal  `json:"discount"   validate:"min=0"`
}

type DiscountRequest struct {
	Type  string          `json:"type"  validate:"required,oneof=none percentage amount"`
	Value decimal.Decimal `json:"value" validate:"min=0"`
}

type TenderRequest struct {
	Method string          `json:"method" validate:"required,oneof=cash pix credit_card debit_card voucher"`
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

type PaymentRequest struct {
	Method string `json:"method" validate:"required,oneof=cash pix credit_card debit_card voucher mixed"`
	// ChangeFor is the cash the customer handed over (cash method only).
	ChangeFor *decimal.Decimal `json:"change_for"`
	// Tenders carries the breakdown when Method is "mixed".
	Tenders []TenderRequest `json:"tenders" validate:"omitempty,max=5,dive"`
}

type RegisterSaleRequest struct {
	CashSessionID string            `json:"cash_session_id" validate:"required,uuid"`
	Items         []SaleItemRequest `json:"items"           validate:"required,min=1,dive"`
	Discount      *DiscountRequest  `json:"discount"`
	Payment       PaymentRequest    `json:"payment"         validate:"required"`
	// CustomerEmail: optional — when present, the receipt worker mails the PDF.
	CustomerEmail *string `json:"customer_email" validate:"omitempty,email"`
}

type CancelSaleRequest struct {
	Reason string `json:"reason" validate:"required,min=5"`
}

// SplitPreviewRequest asks for an equal split of Ways shares, or validation of
// operator-entered Shares when Mode is "custom".
type SplitPreviewRequest struct {
	Mode   string            `json:"mode"   validate:"required,oneof=equal custom"`
	Total  decimal.Decimal   `json:"total"  validate:"required"`
	Ways   int               `json:"ways"   validate:"omitempty,min=2,max=10"`
	Shares []decimal.Decimal `json:"shares" validate:"omitempty,min=2,max=10"`
}

// SaleFilter is bound from the query string of GET /v1/sales.
type SaleFilter struct {
	Date   string `form:"date"`                      // YYYY-MM-DD; empty = today
	Status string `form:"status,default=completed"`  // completed | cancelled | all
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SaleItemResponse struct {
	ProductCode  string           `json:"product_code"`
	ProductName  string           `json:"product_name"`
	Quantity     int              `json:"quantity"`
	WeightKg     *decimal.Decimal `json:"weight_kg,omitempty"`
	UnitPrice    *decimal.Decimal `json:"unit_price,omitempty"`
	PricePerGram *decimal.Decimal `json:"price_per_gram,omitempty"`
	Discount     decimal.Decimal  `json:"discount_amount"`
	Subtotal     decimal.Decimal  `json:"subtotal"`
}

type SaleResponse struct {
	ID                 string             `json:"id"`
	TicketNumber       int                `json:"ticket_number"`
	CashSessionID      string             `json:"cash_session_id"`
	Items              []SaleItemResponse `json:"items"`
	Subtotal           decimal.Decimal    `json:"subtotal"`
	DiscountAmount     decimal.Decimal    `json:"discount_amount"`
	DiscountPercentage decimal.Decimal    `json:"discount_percentage"`
	TotalAmount        decimal.Decimal    `json:"total_amount"`
	PaymentType        string             `json:"payment_type"`
	Tenders            []TenderRequest    `json:"tenders"`
	ChangeAmount       decimal.Decimal    `json:"change_amount"`
	IsCancelled        bool               `json:"is_cancelled"`
	CancelReason       *string            `json:"cancel_reason,omitempty"`
	CreatedAt          string             `json:"created_at"`
}

type SaleListResponse struct {
	Data  []SaleResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

type SplitPreviewResponse struct {
	Mode     string            `json:"mode"`
	Total    decimal.Decimal   `json:"total"`
	Shares   []decimal.Decimal `json:"shares"`
	ShareSum decimal.Decimal   `json:"share_sum"`
}
