package health

import (
	"net/http"

	"github.com/goteo/foundation/core/response"
)

// Liveness indicates if the service process is running.
// Always returns "ALIVE" with 200 OK. No dependency checks.
//
// Example:
//
//	r.Method(http.MethodGet, "/health/live", health.Liveness())
func Liveness() http.Handler {
	return response.HandlerFunc(func(*http.Request) response.Response {
		return response.String("ALIVE")
	})
}

// NoContent returns HTTP 204 without body. Ideal for high-frequency checks.
func NoContent() http.Handler {
	return response.HandlerFunc(func(*http.Request) response.Response {
		return response.NoContent()
	})
}
