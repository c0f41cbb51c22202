package kernel

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/goteo/foundation/pkg/clientip"
)

// RequestType distinguishes the outermost request from internally dispatched ones.
type RequestType int

const (
	MainRequest RequestType = iota
	SubRequest
)

// Attribute keys filled by routing.
const (
	AttrRoute      = "_route"
	AttrController = "_controller"
)

type requestKey struct{}

// Request wraps an incoming *http.Request with a mutable query bag, routing
// attributes and proxy-aware scheme/host resolution.
type Request struct {
	raw        *http.Request
	query      url.Values
	attributes map[string]any
	typ        RequestType
	trust      clientip.Trust
}

// NewRequest wraps r. The returned Request is reachable from the wrapped
// request's context through RequestFromContext.
func NewRequest(r *http.Request, typ RequestType) *Request {
	req := &Request{
		query:      r.URL.Query(),
		attributes: make(map[string]any),
		typ:        typ,
	}
	req.raw = r.WithContext(context.WithValue(r.Context(), requestKey{}, req))
	return req
}

// RequestFromContext returns the kernel request handling ctx.
func RequestFromContext(ctx context.Context) (*Request, bool) {
	req, ok := ctx.Value(requestKey{}).(*Request)
	return req, ok
}

// HTTP returns the underlying request, carrying every value added with WithValue.
func (r *Request) HTTP() *http.Request {
	return r.raw
}

// Context returns the request context.
func (r *Request) Context() context.Context {
	return r.raw.Context()
}

// WithValue stores a value in the request context.
func (r *Request) WithValue(key, val any) {
	r.raw = r.raw.WithContext(context.WithValue(r.raw.Context(), key, val))
}

// SetContext replaces the request context. Listeners use it to hand values
// to the handler and to later listeners.
func (r *Request) SetContext(ctx context.Context) {
	r.raw = r.raw.WithContext(ctx)
}

// Type reports whether this is a main or sub-request.
func (r *Request) Type() RequestType {
	return r.typ
}

// IsMain reports whether this is the outermost request.
func (r *Request) IsMain() bool {
	return r.typ == MainRequest
}

// Method returns the HTTP method.
func (r *Request) Method() string {
	return r.raw.Method
}

// Path returns the URL path, "/" when empty.
func (r *Request) Path() string {
	if r.raw.URL.Path == "" {
		return "/"
	}
	return r.raw.URL.Path
}

// Query returns the query parameters. The map is a copy owned by the Request
// and may be modified by listeners; the raw URL is left untouched.
func (r *Request) Query() url.Values {
	return r.query
}

// Header returns the request headers.
func (r *Request) Header() http.Header {
	return r.raw.Header
}

// SetTrustedProxies makes Scheme, Host, IsSecure and ClientIP honor forwarding
// headers sent by the given proxies.
func (r *Request) SetTrustedProxies(trust clientip.Trust) {
	r.trust = trust
}

// Scheme returns "http" or "https".
func (r *Request) Scheme() string {
	return r.trust.Scheme(r.raw)
}

// Host returns the host the client addressed, including a non-default port.
func (r *Request) Host() string {
	return r.trust.Host(r.raw)
}

// IsSecure reports whether the client used HTTPS.
func (r *Request) IsSecure() bool {
	return r.Scheme() == "https"
}

// ClientIP returns the client address.
func (r *Request) ClientIP() string {
	return r.trust.IP(r.raw)
}

// IsXMLHttpRequest reports whether the request was sent by a script.
func (r *Request) IsXMLHttpRequest() bool {
	return strings.EqualFold(r.raw.Header.Get("X-Requested-With"), "XMLHttpRequest")
}

// Attribute returns a routing attribute.
func (r *Request) Attribute(key string) any {
	return r.attributes[key]
}

// SetAttribute sets a routing attribute.
func (r *Request) SetAttribute(key string, val any) {
	r.attributes[key] = val
}
