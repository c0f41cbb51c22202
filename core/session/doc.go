// Package session provides server-side sessions keyed by a signed cookie.
//
// A Session holds JSON-encoded values, the logged-in user and its start and
// expiry times. Every change is written through to a Store: MemoryStore for a
// single process or RedisStore for a shared deployment.
//
// # Usage
//
//	cookies, _ := cookie.New([]string{secret})
//	manager := session.NewManager(session.NewMemoryStore(), cookies)
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//		sess, err := manager.Start(w, r, "goteo-real", time.Hour)
//		if err != nil {
//			http.Error(w, "session error", http.StatusInternalServerError)
//			return
//		}
//
//		sess.OnExpire(func() {
//			// the browser came back after its previous session expired
//		})
//
//		_ = sess.Store(r.Context(), session.KeyCurrency, "EUR")
//		_ = sess.Renew(r.Context())
//
//		var currency string
//		sess.Get(session.KeyCurrency, &currency)
//	}
//
// # Expiry
//
// Sessions expire after their idle TTL. Renew pushes the expiry forward.
// When a browser presents an authentic cookie whose session is gone or expired,
// Start creates a new session and OnExpire callbacks registered on it fire
// immediately.
//
// # Shadowing
//
// An administrator can view the site as another user with Shadow. ShadowedBy
// reports who is shadowing; Logout ends it.
//
// # Context
//
// WithSession and FromContext carry the session through request contexts.
package session
