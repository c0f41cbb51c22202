// Package health provides HTTP handlers for service health monitoring.
//
// Handlers:
//   - Liveness: Process is running (no dependency checks)
//   - Readiness: All dependencies are available
//   - NoContent: Returns 204 for minimal overhead
//
// Usage:
//
//	r.Method(http.MethodGet, "/health/live", health.Liveness())
//	r.Method(http.MethodGet, "/health/ready", health.Readiness(log, redis.Healthcheck(client)))
//	r.Method(http.MethodGet, "/ping", health.NoContent())
//
// Dependency checks must follow func(context.Context) error signature:
//
//	func checkCache(ctx context.Context) error {
//		return client.Ping(ctx).Err()
//	}
package health
