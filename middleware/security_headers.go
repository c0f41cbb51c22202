package middleware

import (
	"maps"

	"github.com/goteo/foundation/core/kernel"
)

// SecurityHeadersPriority runs after the normalizer has produced the final body.
const SecurityHeadersPriority = -100

// SecurityHeadersConfig configures the security headers listener.
type SecurityHeadersConfig struct {
	// Skip defines a function to skip the listener for specific requests
	Skip func(req *kernel.Request) bool

	ContentTypeOptions      string
	FrameOptions            string
	StrictTransportSecurity string
	ContentSecurityPolicy   string
	ReferrerPolicy          string
	PermissionsPolicy       string
	CrossOriginOpenerPolicy string

	// CustomHeaders allows adding additional custom security headers
	CustomHeaders map[string]string

	// IsDevelopment disables HSTS
	IsDevelopment bool
}

// BalancedSecurity suits pages embedding third-party widgets and inline scripts.
var BalancedSecurity = SecurityHeadersConfig{
	ContentTypeOptions:      "nosniff",
	FrameOptions:            "SAMEORIGIN",
	StrictTransportSecurity: "max-age=31536000; includeSubDomains",
	ReferrerPolicy:          "strict-origin-when-cross-origin",
	PermissionsPolicy:       "geolocation=(), microphone=(), camera=()",
	CrossOriginOpenerPolicy: "same-origin-allow-popups",
}

// SecurityHeaders sets security headers on main responses.
// HSTS is only sent over HTTPS.
type SecurityHeaders struct {
	skip    func(req *kernel.Request) bool
	headers map[string]string
	hsts    string
}

// NewSecurityHeaders creates the listener from cfg.
func NewSecurityHeaders(cfg SecurityHeadersConfig) *SecurityHeaders {
	h := &SecurityHeaders{skip: cfg.Skip, headers: make(map[string]string)}
	if !cfg.IsDevelopment {
		h.hsts = cfg.StrictTransportSecurity
	}

	set := func(key, value string) {
		if value != "" {
			h.headers[key] = value
		}
	}
	set("X-Content-Type-Options", cfg.ContentTypeOptions)
	set("X-Frame-Options", cfg.FrameOptions)
	set("Content-Security-Policy", cfg.ContentSecurityPolicy)
	set("Referrer-Policy", cfg.ReferrerPolicy)
	set("Permissions-Policy", cfg.PermissionsPolicy)
	set("Cross-Origin-Opener-Policy", cfg.CrossOriginOpenerPolicy)
	maps.Copy(h.headers, cfg.CustomHeaders)
	return h
}

// Subscribe registers the listener on k.
func (h *SecurityHeaders) Subscribe(k *kernel.Kernel) {
	k.AddResponseListener(SecurityHeadersPriority, h.OnResponse)
}

// OnResponse applies the headers.
func (h *SecurityHeaders) OnResponse(ev *kernel.ResponseEvent) {
	if !ev.IsMainRequest() || (h.skip != nil && h.skip(ev.Request)) {
		return
	}
	header := ev.Response.Header()
	for key, value := range h.headers {
		header.Set(key, value)
	}
	if h.hsts != "" && ev.Request.IsSecure() {
		header.Set("Strict-Transport-Security", h.hsts)
	}
}
