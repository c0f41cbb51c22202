// Package currency holds the set of currencies the platform accepts and
// resolves user-provided codes against it.
//
// Unknown or malformed codes never fail a request: Get degrades to the default
// currency, so whatever a Registry returns is always a known currency.
//
//	reg, err := currency.New(currency.WithDefault("EUR"))
//	reg.Get("usd").ID    // "USD"
//	reg.Get("XYZ").ID    // "EUR"
//	reg.Current("GBP").ID // stored preference, validated
//
//	code, ok := currency.ExtractFromAmount("100USD") // "USD", true
package currency
