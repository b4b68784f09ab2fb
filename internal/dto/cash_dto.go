package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type OpenSessionRequest struct {
	StoreID       string          `json:"store_id"       validate:"required,uuid"`
	OpeningAmount decimal.Decimal `json:"opening_amount" validate:"min=0"`
}

type CashEntryRequest struct {
	CashSessionID string          `json:"cash_session_id" validate:"required,uuid"`
	Type          string          `json:"type"            validate:"required,oneof=income expense"`
	Method        string          `json:"method"          validate:"required,oneof=cash pix credit_card debit_card voucher"`
	Amount        decimal.Decimal `json:"amount"          validate:"required,gt=0"`
	Description   string          `json:"description"     validate:"required,min=3"`
}

type ClosePreviewRequest struct {
	CashSessionID string          `json:"cash_session_id" validate:"required,uuid"`
	CountedAmount decimal.Decimal `json:"counted_amount"  validate:"min=0"`
}

type CloseSessionRequest struct {
	CashSessionID string          `json:"cash_session_id" validate:"required,uuid"`
	CountedAmount decimal.Decimal `json:"counted_amount"  validate:"min=0"`
	Justification *string         `json:"justification"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// CashSummaryResponse is recomputed from the entry log on every request, never
// cached. SalesTotal and OtherIncomeTotal aggregate every payment method;
// ExpectedBalance is strictly cash-scoped — only physical cash reaches the
// drawer.
type CashSummaryResponse struct {
	SalesTotal       decimal.Decimal            `json:"sales_total"`
	OtherIncomeTotal decimal.Decimal            `json:"other_income_total"`
	TotalExpense     decimal.Decimal            `json:"total_expense"`
	ExpectedBalance  decimal.Decimal            `json:"expected_balance"`
	IncomeByMethod   map[string]decimal.Decimal `json:"income_by_method"`
}

// VarianceResponse compares the operator's count against the ledger.
// Classification: "falta" (short) | "sobra" (over) | "exato".
type VarianceResponse struct {
	ExpectedBalance       decimal.Decimal `json:"expected_balance"`
	CountedAmount         decimal.Decimal `json:"counted_amount"`
	Difference            decimal.Decimal `json:"difference"`
	Classification        string          `json:"classification"`
	JustificationRequired bool            `json:"justification_required"`
}

type SessionReportResponse struct {
	CashSessionID string              `json:"cash_session_id"`
	StoreID       string              `json:"store_id"`
	OperatorID    string              `json:"operator_id"`
	OpeningAmount decimal.Decimal     `json:"opening_amount"`
	Summary       CashSummaryResponse `json:"summary"`
	Status        string              `json:"status"`
	ClosingAmount *decimal.Decimal    `json:"closing_amount,omitempty"`
	Variance      *VarianceResponse   `json:"variance,omitempty"`
	Justification *string             `json:"justification,omitempty"`
	OpenedAt      string              `json:"opened_at"`
	ClosedAt      *string             `json:"closed_at,omitempty"`
}

type CashEntryResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Method      string          `json:"method"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	ReferenceID *string         `json:"reference_id,omitempty"`
	CreatedAt   string          `json:"created_at"`
}
