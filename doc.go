// Package foundation is the request front of the Goteo web platform. Every
// page request passes through an event-driven kernel whose listeners start
// the visitor's session, resolve language and currency, show the cookie
// notice, enforce HTTPS and language subdomains, and finally log the request
// and mark shadowed sessions in the rendered page.
//
// # Package Organization
//
//   - Core: the kernel and the services its listeners depend on
//   - Middleware: kernel listeners, the request normalizer among them
//   - Utilities: standalone helpers
//   - Integrations: external service clients
//
// # Core Packages
//
// github.com/goteo/foundation/core/kernel
// Request and response events dispatched around an http.Handler, with
// priority-ordered listeners, short-circuit responses and sub-requests.
//
// github.com/goteo/foundation/core/session
// Server-side sessions kept in memory or Redis, with login, shadowing and
// expiry detection.
//
// github.com/goteo/foundation/core/cookie
// Plain and HMAC-signed cookies with secret rotation.
//
// github.com/goteo/foundation/core/i18n
// YAML translations per language and namespace, and language resolution from
// query, host, session and Accept-Language.
//
// github.com/goteo/foundation/core/currency
// The registry of supported currencies and the default one.
//
// github.com/goteo/foundation/core/cache
// Flushable caches backed by an in-process LRU or Redis.
//
// github.com/goteo/foundation/core/flash
// Per-session messages shown on the next rendered page.
//
// github.com/goteo/foundation/core/view
// Theme selection carried on the request context.
//
// github.com/goteo/foundation/core/response
// Handlers that return their response as a value.
//
// github.com/goteo/foundation/core/metrics
// Prometheus counters for requests and normalizer decisions.
//
// github.com/goteo/foundation/core/health
// Liveness and readiness probes.
//
// github.com/goteo/foundation/core/server
// HTTP server with graceful shutdown and optional TLS.
//
// github.com/goteo/foundation/core/config
// Environment configuration with .env support.
//
// github.com/goteo/foundation/core/logger
// slog construction and shared attribute helpers.
//
// # Middleware
//
// github.com/goteo/foundation/middleware
// The request normalizer, request IDs and security headers.
//
// # Utilities
//
// github.com/goteo/foundation/pkg/clientip
// Client address, scheme and host behind trusted proxies.
//
// # Integrations
//
// github.com/goteo/foundation/integration/database/redis
// Redis connection with retries and a health check.
package foundation
