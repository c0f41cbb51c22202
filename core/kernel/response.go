package kernel

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"
)

// Response is a fully buffered HTTP response that listeners may rewrite
// before it is sent.
type Response struct {
	StatusCode int
	header     http.Header
	body       bytes.Buffer
}

// NewResponse creates a response with the given status and body.
func NewResponse(status int, body []byte) *Response {
	resp := &Response{
		StatusCode: status,
		header:     make(http.Header),
	}
	resp.body.Write(body)
	return resp
}

// NewRedirect creates a redirect response to url.
func NewRedirect(url string, status int) *Response {
	resp := NewResponse(status, nil)
	resp.header.Set("Location", url)
	return resp
}

// Header returns the response headers.
func (r *Response) Header() http.Header {
	return r.header
}

// Body returns the buffered body. The slice is valid until the next modification.
func (r *Response) Body() []byte {
	return r.body.Bytes()
}

// SetBody replaces the body.
func (r *Response) SetBody(b []byte) {
	r.body.Reset()
	r.body.Write(b)
}

// ContentType returns the Content-Type header.
func (r *Response) ContentType() string {
	return r.header.Get("Content-Type")
}

// IsHTML reports whether the response declares an HTML body.
func (r *Response) IsHTML() bool {
	return strings.Contains(strings.ToLower(r.ContentType()), "text/html")
}

// IsRedirect reports whether the response is a 3xx with a Location header.
func (r *Response) IsRedirect() bool {
	return r.StatusCode >= 300 && r.StatusCode < 400 && r.header.Get("Location") != ""
}

// WriteTo sends the response to w.
func (r *Response) WriteTo(w http.ResponseWriter) error {
	dst := w.Header()
	for k, v := range r.header {
		dst[k] = v
	}
	if r.body.Len() > 0 && dst.Get("Content-Length") == "" {
		dst.Set("Content-Length", strconv.Itoa(r.body.Len()))
	}

	status := r.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)

	if r.body.Len() == 0 {
		return nil
	}
	_, err := w.Write(r.body.Bytes())
	return err
}

// reset clears status, body and entity headers, keeping cookies.
func (r *Response) reset(status int) {
	cookies := r.header.Values("Set-Cookie")
	r.header = make(http.Header)
	for _, c := range cookies {
		r.header.Add("Set-Cookie", c)
	}
	r.body.Reset()
	r.StatusCode = status
}

// mergeHeaders copies headers from src into r without overriding ones r already has.
// Set-Cookie values are always appended.
func (r *Response) mergeHeaders(src http.Header) {
	for k, vs := range src {
		if k == "Set-Cookie" {
			for _, v := range vs {
				r.header.Add(k, v)
			}
			continue
		}
		if _, ok := r.header[k]; !ok {
			r.header[k] = vs
		}
	}
}

// bufferedWriter is the http.ResponseWriter handed to handlers; it fills a Response.
type bufferedWriter struct {
	resp        *Response
	wroteHeader bool
}

func (w *bufferedWriter) Header() http.Header {
	return w.resp.header
}

func (w *bufferedWriter) WriteHeader(status int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true
	w.resp.StatusCode = status
}

func (w *bufferedWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.resp.body.Write(b)
}
