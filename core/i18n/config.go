package i18n

// Config lists the languages the site is served in.
type Config struct {
	Default   string   `env:"APP_LANG" envDefault:"es"`
	Languages []string `env:"LANGUAGES" envSeparator:"," envDefault:"es,en,ca,fr,de,it,pt,eu,gl,nl,el,pl"`
}

// DefaultConfig returns the stock language set.
func DefaultConfig() Config {
	return Config{
		Default:   DefaultLang,
		Languages: []string{"es", "en", "ca", "fr", "de", "it", "pt", "eu", "gl", "nl", "el", "pl"},
	}
}

// NewFromConfig creates an I18n from configuration plus extra options
// (translations, missing key handler).
func NewFromConfig(cfg Config, opts ...Option) (*I18n, error) {
	base := make([]Option, 0, len(opts)+2)
	if cfg.Default != "" {
		base = append(base, WithDefaultLanguage(cfg.Default))
	}
	base = append(base, WithLanguages(cfg.Languages...))
	return New(append(base, opts...)...)
}
