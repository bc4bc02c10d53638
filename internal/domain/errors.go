package domain

import "errors"

var (
	ErrMalformedRequest    = errors.New("malformed request")
	ErrProductNotFound     = errors.New("product not found")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrTotalMismatch       = errors.New("total price mismatch")
	ErrInvalidQuantity     = errors.New("quantity must be positive")
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	ErrUnknownGrade        = errors.New("unknown grade")
)
