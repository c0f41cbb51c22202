package i18n

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"path"
	"slices"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// DefaultLang is the default language code used when no default language is specified.
const DefaultLang = "es"

var (
	// ErrEmptyLanguage is returned when a language code is empty.
	ErrEmptyLanguage = errors.New("language cannot be empty")
	// ErrInvalidLanguage is returned when a language code is not a valid BCP 47 tag.
	ErrInvalidLanguage = errors.New("invalid language code")
	// ErrEmptyNamespace is returned when translations are loaded without a namespace.
	ErrEmptyNamespace = errors.New("namespace cannot be empty")
	// ErrLoadTranslations is returned when translation files cannot be read or parsed.
	ErrLoadTranslations = errors.New("failed to load translations")
)

// I18n holds translations and the set of languages the site is served in.
// It is immutable after creation, making it safe for concurrent use.
type I18n struct {
	// Key format: "lang:namespace:key.path"
	translations map[string]string

	defaultLang string
	languages   []string
	matcher     language.Matcher

	missingKeyHandler func(lang, namespace, key string)
}

// Option configures the I18n instance during construction.
type Option func(*I18n) error

// New creates a new I18n instance with the given options.
func New(opts ...Option) (*I18n, error) {
	i := &I18n{
		translations: make(map[string]string),
		defaultLang:  DefaultLang,
	}

	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	i.languages = orderLanguages(i.defaultLang, i.languages)

	tags := make([]language.Tag, 0, len(i.languages))
	for _, l := range i.languages {
		tags = append(tags, language.Make(l))
	}
	i.matcher = language.NewMatcher(tags)

	return i, nil
}

// WithDefaultLanguage sets the default/fallback language.
func WithDefaultLanguage(lang string) Option {
	return func(i *I18n) error {
		code, err := Canonicalize(lang)
		if err != nil {
			return err
		}
		i.defaultLang = code
		return nil
	}
}

// WithLanguages sets the supported languages. The default language is always
// included and placed first; the rest keep their given order.
func WithLanguages(langs ...string) Option {
	return func(i *I18n) error {
		for _, l := range langs {
			if strings.TrimSpace(l) == "" {
				continue
			}
			code, err := Canonicalize(l)
			if err != nil {
				return err
			}
			i.languages = append(i.languages, code)
		}
		return nil
	}
}

// WithMissingKeyHandler sets a handler called when a key is missing in both
// the requested and the default language.
func WithMissingKeyHandler(handler func(lang, namespace, key string)) Option {
	return func(i *I18n) error {
		i.missingKeyHandler = handler
		return nil
	}
}

// WithTranslations loads translations for a specific language and namespace.
// Nested maps are flattened into dot-notation keys.
func WithTranslations(lang, namespace string, translations map[string]any) Option {
	return func(i *I18n) error {
		code, err := Canonicalize(lang)
		if err != nil {
			return err
		}
		if namespace == "" {
			return ErrEmptyNamespace
		}

		for key, value := range flattenTranslations(translations, "") {
			i.translations[buildKey(code, namespace, key)] = value
		}
		return nil
	}
}

// WithTranslationsFS loads every "<lang>/<namespace>.yaml" file found in fsys.
func WithTranslationsFS(fsys fs.FS) Option {
	return func(i *I18n) error {
		files, err := fs.Glob(fsys, "*/*.yaml")
		if err != nil {
			return errors.Join(ErrLoadTranslations, err)
		}

		for _, file := range files {
			data, err := fs.ReadFile(fsys, file)
			if err != nil {
				return errors.Join(ErrLoadTranslations, err)
			}

			var tree map[string]any
			if err := yaml.Unmarshal(data, &tree); err != nil {
				return errors.Join(ErrLoadTranslations, fmt.Errorf("%s: %w", file, err))
			}

			lang := path.Dir(file)
			namespace := strings.TrimSuffix(path.Base(file), ".yaml")
			if err := WithTranslations(lang, namespace, tree)(i); err != nil {
				return errors.Join(ErrLoadTranslations, fmt.Errorf("%s: %w", file, err))
			}
		}
		return nil
	}
}

// T retrieves a translation for the given language, namespace, and key.
// Placeholders in the translation are replaced with values from the provided maps.
// Falls back to the default language, then to the key itself.
func (i *I18n) T(lang, namespace, key string, placeholders ...M) string {
	if translation, ok := i.translations[buildKey(lang, namespace, key)]; ok {
		return replacePlaceholdersWithMerge(translation, placeholders...)
	}

	if lang != i.defaultLang {
		if translation, ok := i.translations[buildKey(i.defaultLang, namespace, key)]; ok {
			return replacePlaceholdersWithMerge(translation, placeholders...)
		}
	}

	if i.missingKeyHandler != nil {
		i.missingKeyHandler(lang, namespace, key)
	}

	return key
}

// Languages returns the supported languages, default first.
func (i *I18n) Languages() []string {
	return slices.Clone(i.languages)
}

// DefaultLanguage returns the platform language.
func (i *I18n) DefaultLanguage() string {
	return i.defaultLang
}

// Exists reports whether code is a supported language.
func (i *I18n) Exists(code string) bool {
	if code == "" {
		return false
	}
	return slices.Contains(i.languages, strings.ToLower(code))
}

// Translator returns a translator bound to lang and namespace.
// Unsupported languages fall back to the default language.
func (i *I18n) Translator(lang, namespace string) *Translator {
	if !i.Exists(lang) {
		lang = i.defaultLang
	}
	return NewTranslator(i, lang, namespace)
}

// Canonicalize validates a BCP 47 language code and returns it in lower case.
func Canonicalize(code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", ErrEmptyLanguage
	}
	tag, err := language.Parse(code)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidLanguage, code, err)
	}
	return strings.ToLower(tag.String()), nil
}

// orderLanguages returns langs deduplicated with def first.
func orderLanguages(def string, langs []string) []string {
	out := make([]string, 0, len(langs)+1)
	out = append(out, def)
	for _, l := range langs {
		if !slices.Contains(out, l) {
			out = append(out, l)
		}
	}
	return out
}

// buildKey creates a composite key for the translations map.
func buildKey(lang, namespace, key string) string {
	return lang + ":" + namespace + ":" + key
}

// flattenTranslations recursively flattens a nested map into dot-notation keys.
func flattenTranslations(data map[string]any, prefix string) map[string]string {
	result := make(map[string]string)

	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			result[fullKey] = v
		case map[string]any:
			maps.Copy(result, flattenTranslations(v, fullKey))
		case map[string]string:
			for subKey, subVal := range v {
				result[fullKey+"."+subKey] = subVal
			}
		case nil:
			result[fullKey] = ""
		default:
			result[fullKey] = fmt.Sprintf("%v", v)
		}
	}

	return result
}

// replacePlaceholdersWithMerge replaces placeholders in a template with values from multiple maps.
func replacePlaceholdersWithMerge(template string, placeholders ...M) string {
	if len(placeholders) == 0 {
		return template
	}

	merged := make(M)
	for _, p := range placeholders {
		maps.Copy(merged, p)
	}

	return ReplacePlaceholders(template, merged)
}
