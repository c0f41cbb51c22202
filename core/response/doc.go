// Package response provides small constructors for HTTP responses.
//
// A Response is a function that writes itself; HandlerFunc turns a function
// returning one into an http.Handler:
//
//	r.Method(http.MethodGet, "/", response.HandlerFunc(func(r *http.Request) response.Response {
//		return response.HTML("<html>...</html>")
//	}))
//
// Failing responses are rendered as 500 Internal Server Error.
package response
