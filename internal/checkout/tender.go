package checkout

import (
	"github.com/shopspring/decimal"

	"saborpos/internal/money"
)

// PaymentMethod enumerates how a sale (or part of one) is paid.
type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "cash"
	PaymentPix        PaymentMethod = "pix"
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentDebitCard  PaymentMethod = "debit_card"
	PaymentVoucher    PaymentMethod = "voucher"
	// PaymentMixed marks a sale paid with more than one tender; it never
	// appears on an individual tender entry.
	PaymentMixed PaymentMethod = "mixed"
)

// MaxMixedTenders caps the entries of a mixed payment.
const MaxMixedTenders = 5

// Tender is one payment instrument and amount applied toward a total.
type Tender struct {
	Method PaymentMethod
	Amount decimal.Decimal
}

// singleMethod reports whether m is a valid method for an individual tender.
func singleMethod(m PaymentMethod) bool {
	switch m {
	case PaymentCash, PaymentPix, PaymentCreditCard, PaymentDebitCard, PaymentVoucher:
		return true
	}
	return false
}

// ValidateSingle confirms a single-tender payment and returns the change due.
// changeFor is the cash amount the customer handed over; it is only meaningful
// for cash and must cover the total. For every other method change is zero.
func ValidateSingle(total decimal.Decimal, method PaymentMethod, changeFor *decimal.Decimal) (decimal.Decimal, error) {
	if !singleMethod(method) {
		return decimal.Zero, ErrInvalidTenderAmount
	}
	if method != PaymentCash || changeFor == nil {
		return decimal.Zero, nil
	}
	if changeFor.LessThan(total) {
		return decimal.Zero, ErrInsufficientChangeAmount
	}
	return money.Round2(changeFor.Sub(total)), nil
}

// ValidateMixed confirms a mixed-tender breakdown: every entry positive with a
// valid method, at most MaxMixedTenders entries, and the amounts summing to
// the total within tolerance.
func ValidateMixed(total decimal.Decimal, tenders []Tender) error {
	if len(tenders) == 0 || len(tenders) > MaxMixedTenders {
		return ErrMixedTenderMismatch
	}
	sum := decimal.Zero
	for _, t := range tenders {
		if !singleMethod(t.Method) {
			return ErrInvalidTenderAmount
		}
		if !t.Amount.IsPositive() {
			return ErrInvalidTenderAmount
		}
		sum = sum.Add(t.Amount)
	}
	if !money.NearlyEqual(sum, total) {
		return ErrMixedTenderMismatch
	}
	return nil
}

// RemainderTender pre-fills a new mixed-tender entry with the unallocated
// balance so the operator does not do the arithmetic. Defaults to cash; the
// operator can overwrite both fields.
func RemainderTender(total decimal.Decimal, existing []Tender) Tender {
	allocated := decimal.Zero
	for _, t := range existing {
		allocated = allocated.Add(t.Amount)
	}
	remaining := money.Round2(total.Sub(allocated))
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	return Tender{Method: PaymentCash, Amount: remaining}
}
