package kernel

import "net/http"

// Named annotates requests reaching h with a route name and a
// "Controller::action" descriptor, exposed as AttrRoute and AttrController.
func Named(route, controller string, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if req, ok := RequestFromContext(r.Context()); ok {
			req.SetAttribute(AttrRoute, route)
			if controller != "" {
				req.SetAttribute(AttrController, controller)
			}
		}
		h.ServeHTTP(w, r)
	})
}

// NamedFunc is Named for handler functions.
func NamedFunc(route, controller string, fn http.HandlerFunc) http.Handler {
	return Named(route, controller, fn)
}
