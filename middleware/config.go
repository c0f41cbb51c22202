package middleware

import "time"

// NormalizerConfig holds the RequestNormalizer settings.
type NormalizerConfig struct {
	// Env qualifies the session cookie name: goteo-<env>.
	Env string `env:"APP_ENV" envDefault:"local"`
	// SessionTime is the idle session lifetime.
	SessionTime time.Duration `env:"SESSION_TIME" envDefault:"1h"`
	// TrustedProxies lists IPs or CIDRs allowed to set X-Forwarded-* headers.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
	// URLLang serves each language on its own subdomain.
	URLLang bool `env:"URL_LANG" envDefault:"false"`
	// SSL redirects logged-in users to HTTPS.
	SSL bool `env:"SSL" envDefault:"false"`
	// CookieNoticeName is the cookie remembering the consent notice was shown.
	CookieNoticeName string `env:"COOKIE_NOTICE_NAME" envDefault:"goteo_cookies"`
	// CookieNoticeMaxAge is how long the consent cookie lives.
	CookieNoticeMaxAge time.Duration `env:"COOKIE_NOTICE_MAX_AGE" envDefault:"8760h"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() NormalizerConfig {
	return NormalizerConfig{
		Env:                "local",
		SessionTime:        time.Hour,
		CookieNoticeName:   "goteo_cookies",
		CookieNoticeMaxAge: 365 * 24 * time.Hour,
	}
}

// SessionName returns the environment-qualified session name.
func (c NormalizerConfig) SessionName() string {
	return "goteo-" + c.Env
}
