package main

import (
	"github.com/goteo/foundation/core/cache"
	"github.com/goteo/foundation/core/cookie"
	"github.com/goteo/foundation/core/currency"
	"github.com/goteo/foundation/core/i18n"
	"github.com/goteo/foundation/core/server"
	"github.com/goteo/foundation/core/session"
	"github.com/goteo/foundation/core/view"
	"github.com/goteo/foundation/integration/database/redis"
	"github.com/goteo/foundation/middleware"
)

// Config is the full process configuration, read from the environment.
type Config struct {
	AppName      string `env:"APP_NAME" envDefault:"goteo"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	RedisEnabled bool   `env:"REDIS_ENABLED" envDefault:"false"`

	Normalizer middleware.NormalizerConfig
	Server     server.Config
	Session    session.Config
	Cookie     cookie.Config
	I18n       i18n.Config
	Currency   currency.Config
	Cache      cache.Config
	Redis      redis.Config
	Theme      view.Themes
}

// defaultConfig mirrors the envDefault tags; COOKIE_SECRETS has no default.
func defaultConfig() Config {
	return Config{
		AppName:    "goteo",
		LogLevel:   "info",
		Normalizer: middleware.DefaultConfig(),
		Server:     server.DefaultConfig(),
		Session:    session.DefaultConfig(),
		Cookie:     cookie.DefaultConfig(),
		I18n:       i18n.DefaultConfig(),
		Currency:   currency.DefaultConfig(),
		Cache:      cache.DefaultConfig(),
		Redis:      redis.DefaultConfig(),
		Theme:      view.Themes{Default: view.ThemeDefault},
	}
}
