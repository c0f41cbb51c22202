// Package cookie provides HTTP cookie management with HMAC signing and key
// rotation.
//
// # Basic Usage
//
//	manager, err := cookie.New([]string{"your-32-char-secret-key-here!!!!"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Set a plain cookie
//	err = manager.Set(w, r, "goteo_cookies", "ok", cookie.WithMaxAge(365*24*3600))
//
//	// Check or read it back
//	if !manager.Exists(r, "goteo_cookies") { ... }
//	value, err := manager.Get(r, "goteo_cookies")
//
//	// Delete a cookie
//	manager.Delete(w, "goteo_cookies")
//
// # Signed Cookies
//
// Signed cookies carry the value together with an HMAC-SHA256 signature, so a
// client can read but not forge them. Session identifiers are stored this way.
//
//	err := manager.SetSigned(w, r, "goteo-real", sessionID)
//
//	sessionID, err := manager.GetSigned(r, "goteo-real")
//	if errors.Is(err, cookie.ErrInvalidSignature) {
//		// Cookie was tampered with
//	}
//
// # Key Rotation
//
// Pass several secrets: the first signs new cookies, every secret is accepted
// when verifying, so old cookies survive a key change.
//
//	manager, err := cookie.New([]string{newSecret, oldSecret})
//
// # Configuration
//
//	var cfg cookie.Config
//	config.MustLoad(&cfg)
//	manager, err := cookie.NewFromConfig(cfg)
//
// Environment variables: COOKIE_SECRETS (comma separated, required), COOKIE_PATH,
// COOKIE_DOMAIN, COOKIE_MAX_AGE, COOKIE_SECURE, COOKIE_HTTP_ONLY,
// COOKIE_SAME_SITE and COOKIE_MAX_SIZE.
//
// # Size Limit
//
// Set returns ErrCookieTooLarge when the serialized cookie exceeds the
// configured maximum (4096 bytes by default).
package cookie
