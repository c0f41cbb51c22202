package currency

// Config lists the enabled currencies.
type Config struct {
	Currencies []string `env:"CURRENCIES" envSeparator:"," envDefault:"EUR,USD,GBP"`
	Default    string   `env:"CURRENCY_DEFAULT" envDefault:"EUR"`
}

// DefaultConfig returns the stock currency set.
func DefaultConfig() Config {
	return Config{
		Currencies: []string{"EUR", "USD", "GBP"},
		Default:    "EUR",
	}
}

// NewFromConfig creates a Registry from configuration.
func NewFromConfig(cfg Config) (*Registry, error) {
	opts := []Option{WithCurrencies(cfg.Currencies...)}
	if cfg.Default != "" {
		opts = append(opts, WithDefault(cfg.Default))
	}
	return New(opts...)
}
