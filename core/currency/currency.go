package currency

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/text/currency"
)

// Currency is an accepted currency.
type Currency struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

var known = map[string]Currency{
	"EUR": {ID: "EUR", Name: "Euro", Symbol: "€"},
	"USD": {ID: "USD", Name: "U.S. Dollar", Symbol: "$"},
	"GBP": {ID: "GBP", Name: "British Pound", Symbol: "£"},
	"CHF": {ID: "CHF", Name: "Swiss Franc", Symbol: "CHF"},
	"MXN": {ID: "MXN", Name: "Mexican Peso", Symbol: "MX$"},
	"ARS": {ID: "ARS", Name: "Argentine Peso", Symbol: "AR$"},
	"BRL": {ID: "BRL", Name: "Brazilian Real", Symbol: "R$"},
}

// Registry is the set of enabled currencies. It is immutable and safe for concurrent use.
type Registry struct {
	enabled map[string]Currency
	order   []string
	def     string
}

// Option configures a Registry.
type Option func(*Registry) error

// WithCurrencies enables the given ISO 4217 codes, replacing the stock set.
func WithCurrencies(codes ...string) Option {
	return func(r *Registry) error {
		enabled := make(map[string]Currency, len(codes))
		order := make([]string, 0, len(codes))
		for _, code := range codes {
			c, err := lookup(code)
			if err != nil {
				return err
			}
			if _, dup := enabled[c.ID]; dup {
				continue
			}
			enabled[c.ID] = c
			order = append(order, c.ID)
		}
		if len(enabled) > 0 {
			r.enabled = enabled
			r.order = order
		}
		return nil
	}
}

// WithDefault sets the default currency.
func WithDefault(code string) Option {
	return func(r *Registry) error {
		c, err := lookup(code)
		if err != nil {
			return err
		}
		r.def = c.ID
		return nil
	}
}

// New creates a registry. Without options it enables EUR, USD and GBP with EUR as default.
func New(opts ...Option) (*Registry, error) {
	r := &Registry{def: "EUR"}
	if err := WithCurrencies("EUR", "USD", "GBP")(r); err != nil {
		return nil, err
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	if _, ok := r.enabled[r.def]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrDefaultNotEnabled, r.def)
	}
	return r, nil
}

// Default returns the default currency.
func (r *Registry) Default() Currency {
	return r.enabled[r.def]
}

// All returns the enabled currencies in configuration order.
func (r *Registry) All() []Currency {
	out := make([]Currency, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.enabled[id])
	}
	return out
}

// Exists reports whether code is enabled.
func (r *Registry) Exists(code string) bool {
	_, ok := r.enabled[normalize(code)]
	return ok
}

// Get returns the enabled currency for code, or the default one.
func (r *Registry) Get(code string) Currency {
	if c, ok := r.enabled[normalize(code)]; ok {
		return c
	}
	return r.Default()
}

// Current returns the currency in use given a previously stored preference,
// falling back to the default.
func (r *Registry) Current(stored string) Currency {
	return r.Get(stored)
}

// Codes returns the enabled currency codes.
func (r *Registry) Codes() []string {
	return slices.Clone(r.order)
}

// amountPattern splits an amount into a numeric prefix and a trailing code.
var amountPattern = regexp.MustCompile(`^\s*[+-]?\d*(?:[.,]\d+)?\s*(.*)$`)

// ExtractFromAmount returns the non-numeric suffix of an amount such as "100USD".
// It reports false when the amount carries no suffix.
func ExtractFromAmount(amount string) (string, bool) {
	m := amountPattern.FindStringSubmatch(amount)
	if m == nil {
		return "", false
	}
	code := strings.TrimSpace(m[1])
	return code, code != ""
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func lookup(code string) (Currency, error) {
	unit, err := currency.ParseISO(normalize(code))
	if err != nil {
		return Currency{}, fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
	}
	id := unit.String()
	if c, ok := known[id]; ok {
		return c, nil
	}
	return Currency{ID: id, Name: id, Symbol: id}, nil
}
