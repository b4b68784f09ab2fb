package checkout

import "errors"

// Validation errors raised by the checkout engines. All of them are resolved
// before any persistence call is attempted — a failed validation leaves the
// cart exactly as it was.
var (
	ErrInvalidQuantity          = errors.New("invalid quantity or weight for the product's pricing mode")
	ErrInvalidSplitCount        = errors.New("bill can only be split between 2 and 10 payers")
	ErrSplitMismatch            = errors.New("sum of split shares does not match the total")
	ErrMixedTenderMismatch      = errors.New("sum of tender amounts does not match the total")
	ErrInvalidTenderAmount      = errors.New("tender amount must be greater than zero")
	ErrInsufficientChangeAmount = errors.New("cash received is less than the total due")
)
