package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goteo/foundation/core/config"
)

type normalizerConfig struct {
	Env         string        `env:"TEST_CFG_APP_ENV" envDefault:"development"`
	SessionTime time.Duration `env:"TEST_CFG_SESSION_TIME" envDefault:"1h"`
	Proxies     []string      `env:"TEST_CFG_PROXIES" envSeparator:","`
	SSL         bool          `env:"TEST_CFG_SSL" envDefault:"false"`
}

type requiredConfig struct {
	Secret string `env:"TEST_CFG_REQUIRED_SECRET,required"`
}

func TestLoad(t *testing.T) {
	t.Run("parses environment with defaults", func(t *testing.T) {
		config.Reset()
		t.Setenv("TEST_CFG_APP_ENV", "real")
		t.Setenv("TEST_CFG_PROXIES", "10.0.0.1,10.0.0.2")
		t.Setenv("TEST_CFG_SSL", "true")

		var cfg normalizerConfig
		require.NoError(t, config.Load(&cfg))

		assert.Equal(t, "real", cfg.Env)
		assert.Equal(t, time.Hour, cfg.SessionTime)
		assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.Proxies)
		assert.True(t, cfg.SSL)
	})

	t.Run("caches per type", func(t *testing.T) {
		config.Reset()
		t.Setenv("TEST_CFG_APP_ENV", "first")

		var first normalizerConfig
		require.NoError(t, config.Load(&first))

		t.Setenv("TEST_CFG_APP_ENV", "second")

		var second normalizerConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, "first", second.Env)

		config.Reset()
		var third normalizerConfig
		require.NoError(t, config.Load(&third))
		assert.Equal(t, "second", third.Env)
	})

	t.Run("reports missing required values", func(t *testing.T) {
		config.Reset()

		var cfg requiredConfig
		err := config.Load(&cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "TEST_CFG_REQUIRED_SECRET")
	})

	t.Run("nil destination", func(t *testing.T) {
		var cfg *normalizerConfig
		require.ErrorIs(t, config.Load(cfg), config.ErrNilConfig)
	})
}

func TestMustLoad(t *testing.T) {
	config.Reset()

	assert.Panics(t, func() {
		var cfg requiredConfig
		config.MustLoad(&cfg)
	})
}
