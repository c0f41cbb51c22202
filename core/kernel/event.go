package kernel

import "net/http"

// RequestEvent is dispatched before routing.
type RequestEvent struct {
	Request *Request

	writer   *bufferedWriter
	response *Response
}

// IsMainRequest reports whether the event belongs to the outermost request.
func (e *RequestEvent) IsMainRequest() bool {
	return e.Request.IsMain()
}

// Writer returns a writer for response headers such as cookies. Headers set here
// end up on the response that is finally sent. Listeners must not write a body
// through it; use SetResponse instead.
func (e *RequestEvent) Writer() http.ResponseWriter {
	return e.writer
}

// SetResponse answers the request, skipping remaining request listeners and routing.
func (e *RequestEvent) SetResponse(resp *Response) {
	e.response = resp
}

// Response returns the response set by a listener, if any.
func (e *RequestEvent) Response() *Response {
	return e.response
}

// HasResponse reports whether a listener answered the request.
func (e *RequestEvent) HasResponse() bool {
	return e.response != nil
}

// ResponseEvent is dispatched after a response has been produced.
type ResponseEvent struct {
	Request  *Request
	Response *Response
}

// IsMainRequest reports whether the event belongs to the outermost request.
func (e *ResponseEvent) IsMainRequest() bool {
	return e.Request.IsMain()
}
