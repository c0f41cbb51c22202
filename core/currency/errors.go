package currency

import "errors"

var (
	// ErrUnknownCurrency is returned when a code is not an ISO 4217 currency.
	ErrUnknownCurrency = errors.New("unknown currency")
	// ErrDefaultNotEnabled is returned when the default currency is not in the enabled set.
	ErrDefaultNotEnabled = errors.New("default currency is not enabled")
)
