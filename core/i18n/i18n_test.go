package i18n_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goteo/foundation/core/i18n"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("creates instance with defaults", func(t *testing.T) {
		t.Parallel()
		in, err := i18n.New()
		require.NoError(t, err)
		assert.Equal(t, i18n.DefaultLang, in.DefaultLanguage())
		assert.Equal(t, []string{i18n.DefaultLang}, in.Languages())
	})

	t.Run("default language comes first", func(t *testing.T) {
		t.Parallel()
		in, err := i18n.New(
			i18n.WithDefaultLanguage("ca"),
			i18n.WithLanguages("en", "ES", "ca", "en"),
		)
		require.NoError(t, err)
		assert.Equal(t, []string{"ca", "en", "es"}, in.Languages())
	})

	t.Run("rejects empty default language", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.New(i18n.WithDefaultLanguage(""))
		assert.ErrorIs(t, err, i18n.ErrEmptyLanguage)
	})

	t.Run("rejects malformed language", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.New(i18n.WithLanguages("not a language"))
		assert.ErrorIs(t, err, i18n.ErrInvalidLanguage)
	})

	t.Run("rejects empty namespace", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.New(i18n.WithTranslations("en", "", map[string]any{"a": "b"}))
		assert.ErrorIs(t, err, i18n.ErrEmptyNamespace)
	})
}

func TestT(t *testing.T) {
	t.Parallel()

	var missing []string
	in, err := i18n.New(
		i18n.WithDefaultLanguage("es"),
		i18n.WithLanguages("en"),
		i18n.WithTranslations("es", "messages", map[string]any{
			"session-expired": "Tu sesión ha caducado",
			"only-default":    "Solo en castellano",
		}),
		i18n.WithTranslations("en", "messages", map[string]any{
			"session-expired": "Your session has expired",
			"greeting":        "Hello, %{name}!",
			"errors": map[string]any{
				"not_found": "Not found",
			},
		}),
		i18n.WithMissingKeyHandler(func(lang, namespace, key string) {
			missing = append(missing, lang+":"+namespace+":"+key)
		}),
	)
	require.NoError(t, err)

	assert.Equal(t, "Your session has expired", in.T("en", "messages", "session-expired"))
	assert.Equal(t, "Tu sesión ha caducado", in.T("es", "messages", "session-expired"))
	assert.Equal(t, "Hello, Ada!", in.T("en", "messages", "greeting", i18n.M{"name": "Ada"}))
	assert.Equal(t, "Not found", in.T("en", "messages", "errors.not_found"))
	assert.Equal(t, "Solo en castellano", in.T("en", "messages", "only-default"))
	assert.Equal(t, "nope", in.T("en", "messages", "nope"))
	assert.Equal(t, []string{"en:messages:nope"}, missing)
}

func TestWithTranslationsFS(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"en/messages.yaml": {Data: []byte("message-cookies: We use cookies\nerrors:\n  gone: Gone\n")},
		"ca/messages.yaml": {Data: []byte("message-cookies: Fem servir galetes\n")},
		"README.md":        {Data: []byte("ignored")},
	}

	in, err := i18n.New(i18n.WithLanguages("en", "ca"), i18n.WithTranslationsFS(fsys))
	require.NoError(t, err)

	assert.Equal(t, "We use cookies", in.T("en", "messages", "message-cookies"))
	assert.Equal(t, "Fem servir galetes", in.T("ca", "messages", "message-cookies"))
	assert.Equal(t, "Gone", in.T("en", "messages", "errors.gone"))

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()
		broken := fstest.MapFS{"en/messages.yaml": {Data: []byte("a: [unclosed")}}
		_, err := i18n.New(i18n.WithTranslationsFS(broken))
		assert.ErrorIs(t, err, i18n.ErrLoadTranslations)
	})
}

func TestExistsAndTranslator(t *testing.T) {
	t.Parallel()

	in, err := i18n.New(
		i18n.WithLanguages("es", "en"),
		i18n.WithTranslations("en", "messages", map[string]any{"hi": "Hi"}),
	)
	require.NoError(t, err)

	assert.True(t, in.Exists("en"))
	assert.True(t, in.Exists("EN"))
	assert.False(t, in.Exists("fr"))
	assert.False(t, in.Exists(""))

	tr := in.Translator("en", "messages")
	assert.Equal(t, "en", tr.Language())
	assert.Equal(t, "messages", tr.Namespace())
	assert.Equal(t, "Hi", tr.T("hi"))

	assert.Equal(t, "es", in.Translator("fr", "messages").Language())
}

func TestCanonicalize(t *testing.T) {
	t.Parallel()

	code, err := i18n.Canonicalize(" pt-BR ")
	require.NoError(t, err)
	assert.Equal(t, "pt-br", code)

	_, err = i18n.Canonicalize("")
	assert.ErrorIs(t, err, i18n.ErrEmptyLanguage)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	in, err := i18n.NewFromConfig(i18n.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "es", in.DefaultLanguage())
	assert.True(t, in.Exists("ca"))
	assert.True(t, in.Exists("eu"))
}
