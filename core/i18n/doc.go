// Package i18n provides translations and request language resolution.
//
// An I18n instance is immutable after construction and safe for concurrent use.
// Translations are looked up in O(1) by language, namespace and dot-notation
// key, falling back to the default language and finally to the key itself.
//
// # Basic Usage
//
//	languages, err := i18n.New(
//		i18n.WithDefaultLanguage("es"),
//		i18n.WithLanguages("es", "en", "ca"),
//		i18n.WithTranslations("en", "messages", map[string]any{
//			"session-expired": "Your session has expired",
//			"greeting":        "Hello, %{name}!",
//		}),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	languages.T("en", "messages", "greeting", i18n.M{"name": "Ada"})
//	// "Hello, Ada!"
//
// # Translation Files
//
// WithTranslationsFS loads YAML files laid out as <lang>/<namespace>.yaml:
//
//	//go:embed translations
//	var translations embed.FS
//
//	sub, _ := fs.Sub(translations, "translations")
//	languages, err := i18n.New(i18n.WithTranslationsFS(sub))
//
// Nested YAML maps become dot-notation keys ("errors.not_found").
//
// # Resolving the Request Language
//
// Resolve picks a supported language from request signals in this order:
// the "lang" query parameter, a language subdomain (ca.goteo.org), the
// language stored in the session, the Accept-Language header. When none
// matches, the default language is returned.
//
//	lang := languages.Resolve(i18n.Signals{
//		Query:          r.URL.Query().Get("lang"),
//		Host:           r.Host,
//		Stored:         storedLang,
//		AcceptLanguage: r.Header.Get("Accept-Language"),
//	})
//
// Accept-Language matching uses golang.org/x/text/language, so "en-US" matches
// a configured "en".
//
// # Translator
//
// A Translator binds a language and namespace. Place it in the request context
// so handlers translate without knowing the language:
//
//	ctx = i18n.WithTranslator(ctx, languages.Translator(lang, "messages"))
//	i18n.T(ctx, "session-expired")
//
// # Placeholders
//
// Placeholders use the %{name} syntax and are filled from i18n.M maps.
// Unknown placeholders are left untouched.
package i18n
