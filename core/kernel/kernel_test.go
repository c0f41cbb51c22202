package kernel_test

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goteo/foundation/core/kernel"
)

func textHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(body))
	})
}

func TestKernelListenerOrder(t *testing.T) {
	t.Parallel()

	var calls []string
	k := kernel.New(textHandler("ok"))
	k.AddRequestListener(0, func(*kernel.RequestEvent) { calls = append(calls, "zero-a") })
	k.AddRequestListener(100, func(*kernel.RequestEvent) { calls = append(calls, "hundred") })
	k.AddRequestListener(0, func(*kernel.RequestEvent) { calls = append(calls, "zero-b") })
	k.AddRequestListener(-10, func(*kernel.RequestEvent) { calls = append(calls, "negative") })
	k.AddResponseListener(-50, func(*kernel.ResponseEvent) { calls = append(calls, "response-low") })
	k.AddResponseListener(10, func(*kernel.ResponseEvent) { calls = append(calls, "response-high") })

	rec := httptest.NewRecorder()
	k.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.Equal(t, []string{"hundred", "zero-a", "zero-b", "negative", "response-high", "response-low"}, calls)
}

func TestKernelShortCircuit(t *testing.T) {
	t.Parallel()

	routed := false
	laterListener := false
	responseListener := false

	k := kernel.New(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { routed = true }))
	k.AddRequestListener(10, func(ev *kernel.RequestEvent) {
		http.SetCookie(ev.Writer(), &http.Cookie{Name: "goteo_cookies", Value: "ok"})
		ev.SetResponse(kernel.NewRedirect("https://es.goteo.org/", http.StatusFound))
	})
	k.AddRequestListener(0, func(*kernel.RequestEvent) { laterListener = true })
	k.AddResponseListener(0, func(ev *kernel.ResponseEvent) {
		responseListener = true
		assert.True(t, ev.Response.IsRedirect())
	})

	rec := httptest.NewRecorder()
	k.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.False(t, routed)
	assert.False(t, laterListener)
	assert.True(t, responseListener)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://es.goteo.org/", rec.Header().Get("Location"))
	assert.Contains(t, rec.Header().Get("Set-Cookie"), "goteo_cookies=ok")
}

func TestKernelCookiesFromListenerReachRoutedResponse(t *testing.T) {
	t.Parallel()

	k := kernel.New(textHandler("<html></html>"))
	k.AddRequestListener(0, func(ev *kernel.RequestEvent) {
		http.SetCookie(ev.Writer(), &http.Cookie{Name: "a", Value: "1"})
	})

	rec := httptest.NewRecorder()
	k.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Len(t, rec.Result().Cookies(), 1)
	assert.Equal(t, "a", rec.Result().Cookies()[0].Name)
}

func TestKernelResponseListenerRewritesBody(t *testing.T) {
	t.Parallel()

	k := kernel.New(textHandler("<body>hi</body>"))
	k.AddResponseListener(0, func(ev *kernel.ResponseEvent) {
		if !ev.Response.IsHTML() {
			return
		}
		body := strings.Replace(string(ev.Response.Body()), "<body>", "<body><b>banner</b>", 1)
		ev.Response.SetBody([]byte(body))
	})

	rec := httptest.NewRecorder()
	k.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	want := "<body><b>banner</b>hi</body>"
	assert.Equal(t, want, rec.Body.String())
	assert.Equal(t, strconv.Itoa(len(want)), rec.Header().Get("Content-Length"))
}

func TestKernelSubRequest(t *testing.T) {
	t.Parallel()

	var seen []bool
	k := kernel.New(textHandler("fragment"))
	k.AddRequestListener(0, func(ev *kernel.RequestEvent) { seen = append(seen, ev.IsMainRequest()) })
	k.AddResponseListener(0, func(ev *kernel.ResponseEvent) { seen = append(seen, ev.IsMainRequest()) })

	resp := k.SubRequest(httptest.NewRequest(http.MethodGet, "/fragment", nil))

	assert.Equal(t, []bool{false, false}, seen)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "fragment", string(resp.Body()))
}

func TestKernelRecoversFromPanics(t *testing.T) {
	t.Parallel()

	k := kernel.New(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Partial", "yes")
		_, _ = w.Write([]byte("half"))
		panic("boom")
	}))

	var status int
	k.AddResponseListener(0, func(ev *kernel.ResponseEvent) { status = ev.Response.StatusCode })

	rec := httptest.NewRecorder()
	k.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Partial"))
	assert.Equal(t, "Internal Server Error", rec.Body.String())
}

func TestKernelDetectsContentType(t *testing.T) {
	t.Parallel()

	k := kernel.New(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<!DOCTYPE html><html></html>"))
	}))

	resp := k.Handle(httptest.NewRequest(http.MethodGet, "/", nil), kernel.MainRequest)
	assert.True(t, resp.IsHTML())
}

func TestKernelStatusFromHandler(t *testing.T) {
	t.Parallel()

	k := kernel.New(http.NotFoundHandler())
	rec := httptest.NewRecorder()
	k.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

type subscriber struct{ registered bool }

func (s *subscriber) Subscribe(k *kernel.Kernel) {
	s.registered = true
	k.AddRequestListener(0, func(ev *kernel.RequestEvent) {
		ev.SetResponse(kernel.NewResponse(http.StatusTeapot, nil))
	})
}

func TestKernelRegister(t *testing.T) {
	t.Parallel()

	s := &subscriber{}
	k := kernel.New(nil)
	k.Register(s)

	rec := httptest.NewRecorder()
	k.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.True(t, s.registered)
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestNamed(t *testing.T) {
	t.Parallel()

	var route, controller any
	h := kernel.Named("project", "ProjectController::indexAction", http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	k := kernel.New(h)
	k.AddResponseListener(0, func(ev *kernel.ResponseEvent) {
		route = ev.Request.Attribute(kernel.AttrRoute)
		controller = ev.Request.Attribute(kernel.AttrController)
	})
	k.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/project/x", nil))

	assert.Equal(t, "project", route)
	assert.Equal(t, "ProjectController::indexAction", controller)
}
