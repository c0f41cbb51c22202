package middleware_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/goteo/foundation/core/view"
	"github.com/goteo/foundation/middleware"
)

func TestInjectShadowBanner(t *testing.T) {
	t.Parallel()

	t.Run("after the header anchor", func(t *testing.T) {
		t.Parallel()
		body := []byte(`<body><div id="header"><h1>Goteo</h1></div></body>`)

		out, ok := middleware.InjectShadowBanner(body, middleware.AnchorDefault, "Alice")
		assert.True(t, ok)
		assert.Equal(t,
			`<body><div id="header"><div class="user-shadowing-bar">Back to <a href="/user/logout">Alice</a></div><h1>Goteo</h1></div></body>`,
			string(out))
	})

	t.Run("only the first anchor", func(t *testing.T) {
		t.Parallel()
		body := []byte(`<div id="header"></div><div id="header"></div>`)

		out, ok := middleware.InjectShadowBanner(body, middleware.AnchorDefault, "Alice")
		assert.True(t, ok)
		assert.Equal(t, 1, strings.Count(string(out), "Back to"))
	})

	t.Run("missing anchor leaves body untouched", func(t *testing.T) {
		t.Parallel()
		body := []byte(`<body><main></main></body>`)

		out, ok := middleware.InjectShadowBanner(body, middleware.AnchorDefault, "Alice")
		assert.False(t, ok)
		assert.Equal(t, body, out)
	})

	t.Run("name is escaped", func(t *testing.T) {
		t.Parallel()
		assert.Contains(t, middleware.ShadowBanner(`<script>`), "Back to <a href=\"/user/logout\">&lt;script&gt;</a>")
	})
}

func TestBannerAnchor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, middleware.AnchorDefault, middleware.BannerAnchor(view.ThemeDefault))
	assert.Equal(t, middleware.AnchorResponsive, middleware.BannerAnchor(view.ThemeResponsive))
	assert.Equal(t, middleware.AnchorDefault, middleware.BannerAnchor("unknown"))
}

