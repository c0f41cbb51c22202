package currency_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goteo/foundation/core/currency"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		reg, err := currency.New()
		require.NoError(t, err)
		assert.Equal(t, "EUR", reg.Default().ID)
		assert.Equal(t, []string{"EUR", "USD", "GBP"}, reg.Codes())
		assert.Equal(t, "£", reg.Get("GBP").Symbol)
	})

	t.Run("custom set", func(t *testing.T) {
		t.Parallel()
		reg, err := currency.New(currency.WithCurrencies("usd", "CHF", "USD"), currency.WithDefault("CHF"))
		require.NoError(t, err)
		assert.Equal(t, []string{"USD", "CHF"}, reg.Codes())
		assert.Equal(t, "CHF", reg.Default().ID)
		assert.Len(t, reg.All(), 2)
	})

	t.Run("currency without metadata", func(t *testing.T) {
		t.Parallel()
		reg, err := currency.New(currency.WithCurrencies("EUR", "JPY"))
		require.NoError(t, err)
		assert.Equal(t, currency.Currency{ID: "JPY", Name: "JPY", Symbol: "JPY"}, reg.Get("JPY"))
	})

	t.Run("unknown code", func(t *testing.T) {
		t.Parallel()
		_, err := currency.New(currency.WithCurrencies("EUR", "XYZ1"))
		assert.ErrorIs(t, err, currency.ErrUnknownCurrency)
	})

	t.Run("default must be enabled", func(t *testing.T) {
		t.Parallel()
		_, err := currency.New(currency.WithDefault("CHF"))
		assert.ErrorIs(t, err, currency.ErrDefaultNotEnabled)
	})
}

func TestGet(t *testing.T) {
	t.Parallel()

	reg, err := currency.New()
	require.NoError(t, err)

	assert.Equal(t, "USD", reg.Get("USD").ID)
	assert.Equal(t, "USD", reg.Get(" usd ").ID)
	assert.Equal(t, "EUR", reg.Get("CHF").ID, "known but disabled falls back")
	assert.Equal(t, "EUR", reg.Get("not-a-currency").ID)
	assert.Equal(t, "EUR", reg.Get("").ID)

	assert.True(t, reg.Exists("gbp"))
	assert.False(t, reg.Exists("CHF"))

	assert.Equal(t, "GBP", reg.Current("GBP").ID)
	assert.Equal(t, "EUR", reg.Current("").ID)
}

func TestExtractFromAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		amount string
		code   string
		ok     bool
	}{
		{"100USD", "USD", true},
		{"100", "", false},
		{"", "", false},
		{"USD", "USD", true},
		{"-5EUR", "EUR", true},
		{"10.50GBP", "GBP", true},
		{"10,50 gbp", "gbp", true},
		{"100 USD", "USD", true},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			t.Parallel()
			code, ok := currency.ExtractFromAmount(tt.amount)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	reg, err := currency.NewFromConfig(currency.Config{Currencies: []string{"EUR", "MXN"}, Default: "MXN"})
	require.NoError(t, err)
	assert.Equal(t, "MXN", reg.Default().ID)
	assert.Equal(t, "MX$", reg.Default().Symbol)

	reg, err = currency.NewFromConfig(currency.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "EUR", reg.Default().ID)
}
