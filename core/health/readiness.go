package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/goteo/foundation/core/logger"
	"github.com/goteo/foundation/core/response"
)

// Readiness verifies all service dependencies are functioning.
// Returns "READY" if all checks pass, 503 Service Unavailable if any fail.
//
// Example:
//
//	r.Method(http.MethodGet, "/health/ready", health.Readiness(log, redis.Healthcheck(client)))
func Readiness(log *slog.Logger, fn ...func(context.Context) error) http.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return response.HandlerFunc(func(r *http.Request) response.Response {
		ctx := r.Context()
		for _, f := range fn {
			if err := f(ctx); err != nil {
				log.ErrorContext(ctx, "Readiness check failed", logger.Component("health"), logger.Error(err))
				return response.StringWithStatus(http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			}
		}
		return response.String("READY")
	})
}
