package i18n

import "context"

// Translator provides a simplified translation interface with a fixed language and namespace context.
type Translator struct {
	i18n      *I18n
	language  string
	namespace string
}

// NewTranslator creates a new Translator with the specified language and namespace context.
func NewTranslator(i18n *I18n, language, namespace string) *Translator {
	if i18n == nil {
		panic("localization service is not provided")
	}
	if language == "" {
		language = i18n.DefaultLanguage()
	}
	return &Translator{
		i18n:      i18n,
		language:  language,
		namespace: namespace,
	}
}

// T translates a key using the translator's language and namespace context.
func (t *Translator) T(key string, placeholders ...M) string {
	return t.i18n.T(t.language, t.namespace, key, placeholders...)
}

// Language returns the current language context of the translator.
func (t *Translator) Language() string {
	return t.language
}

// Namespace returns the current namespace context of the translator.
func (t *Translator) Namespace() string {
	return t.namespace
}

type translatorKey struct{}

// WithTranslator returns a context carrying t.
func WithTranslator(ctx context.Context, t *Translator) context.Context {
	return context.WithValue(ctx, translatorKey{}, t)
}

// TranslatorFromContext returns the translator stored in ctx.
func TranslatorFromContext(ctx context.Context) (*Translator, bool) {
	t, ok := ctx.Value(translatorKey{}).(*Translator)
	return t, ok && t != nil
}

// T translates key with the translator found in ctx, returning key when there is none.
func T(ctx context.Context, key string, placeholders ...M) string {
	t, ok := TranslatorFromContext(ctx)
	if !ok {
		return key
	}
	return t.T(key, placeholders...)
}
