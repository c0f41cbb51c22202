// Package middleware holds the kernel listeners every page goes through.
//
// RequestNormalizer is the core of the package. Before routing it:
//   - starts or resumes the goteo-<env> session
//   - flushes caches on ?cleancache
//   - settles the currency (currency param, then amount suffix, then session)
//   - resolves the language and puts a translator in the request context
//   - sets the goteo_cookies consent cookie once, with a flash notice
//   - redirects to the canonical scheme://host (HTTPS for logged-in users,
//     language subdomains when URL_LANG is on)
//
// After the response it logs a "Request" record for HTML pages and injects a
// "Back to NAME" bar while an administrator shadows a user.
//
// Payment gateway callbacks under /invest/notify/ skip the session entirely.
//
//	k := kernel.New(router)
//	k.Register(
//		middleware.NewRequestID(middleware.RequestIDConfig{}),
//		normalizer,
//		middleware.NewSecurityHeaders(middleware.BalancedSecurity),
//	)
//
// ComputeRedirectTarget and InjectShadowBanner are pure and usable on their own.
package middleware
