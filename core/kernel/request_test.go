package kernel_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goteo/foundation/core/kernel"
	"github.com/goteo/foundation/pkg/clientip"
)

func TestRequestQueryIsACopy(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/discover?lang=ca&page=2", nil)
	req := kernel.NewRequest(r, kernel.MainRequest)

	req.Query().Del("lang")

	assert.Equal(t, "page=2", req.Query().Encode())
	assert.Equal(t, "ca", req.HTTP().URL.Query().Get("lang"))
	assert.Equal(t, "/discover", req.Path())
}

func TestRequestFromContext(t *testing.T) {
	t.Parallel()

	req := kernel.NewRequest(httptest.NewRequest(http.MethodGet, "/", nil), kernel.SubRequest)

	got, ok := kernel.RequestFromContext(req.Context())
	require.True(t, ok)
	assert.Same(t, req, got)
	assert.False(t, got.IsMain())

	_, ok = kernel.RequestFromContext(context.Background())
	assert.False(t, ok)
}

func TestRequestWithValue(t *testing.T) {
	t.Parallel()

	type key struct{}
	req := kernel.NewRequest(httptest.NewRequest(http.MethodGet, "/", nil), kernel.MainRequest)
	req.WithValue(key{}, "v")

	assert.Equal(t, "v", req.HTTP().Context().Value(key{}))
	got, ok := kernel.RequestFromContext(req.Context())
	require.True(t, ok)
	assert.Same(t, req, got)
}

func TestRequestSchemeAndHost(t *testing.T) {
	t.Parallel()

	newReq := func() *http.Request {
		r := httptest.NewRequest(http.MethodGet, "http://goteo.org/", nil)
		r.RemoteAddr = "10.0.0.1:1234"
		r.Header.Set("X-Forwarded-Proto", "https")
		r.Header.Set("X-Forwarded-Host", "ES.goteo.org")
		r.Header.Set("X-Forwarded-For", "203.0.113.9")
		return r
	}

	t.Run("untrusted", func(t *testing.T) {
		t.Parallel()
		req := kernel.NewRequest(newReq(), kernel.MainRequest)
		assert.Equal(t, "http", req.Scheme())
		assert.False(t, req.IsSecure())
		assert.Equal(t, "goteo.org", req.Host())
		assert.Equal(t, "10.0.0.1", req.ClientIP())
	})

	t.Run("trusted proxy", func(t *testing.T) {
		t.Parallel()
		trust, err := clientip.ParseTrust([]string{"10.0.0.0/8"})
		require.NoError(t, err)

		req := kernel.NewRequest(newReq(), kernel.MainRequest)
		req.SetTrustedProxies(trust)
		assert.Equal(t, "https", req.Scheme())
		assert.True(t, req.IsSecure())
		assert.Equal(t, "es.goteo.org", req.Host())
		assert.Equal(t, "203.0.113.9", req.ClientIP())
	})
}

func TestRequestIsXMLHttpRequest(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, kernel.NewRequest(r, kernel.MainRequest).IsXMLHttpRequest())

	r.Header.Set("X-Requested-With", "XMLHttpRequest")
	assert.True(t, kernel.NewRequest(r, kernel.MainRequest).IsXMLHttpRequest())
}
