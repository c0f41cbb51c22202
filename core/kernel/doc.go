// Package kernel runs the request/response lifecycle of the application and lets
// listeners hook into it.
//
// Every request passes through three stages:
//
//  1. Request listeners run in priority order (higher first). A listener may
//     answer the request itself with RequestEvent.SetResponse, which skips the
//     remaining request listeners and routing.
//  2. Otherwise the wrapped http.Handler (the router) produces a response into a
//     buffer, so nothing reaches the client yet.
//  3. Response listeners run in priority order and may rewrite status, headers
//     or body before the response is written.
//
// Requests handled directly by ServeHTTP are main requests. Requests dispatched
// internally with SubRequest (fragments, error pages) go through the same
// listeners but report IsMain() == false, so listeners can ignore them.
//
// # Usage
//
//	r := chi.NewRouter()
//	r.Method(http.MethodGet, "/", kernel.Named("home", "HomeController::indexAction", homeHandler))
//
//	k := kernel.New(r, kernel.WithLogger(log))
//	k.AddRequestListener(0, func(ev *kernel.RequestEvent) {
//		if ev.Request.Path() == "/old" {
//			ev.SetResponse(kernel.NewRedirect("/new", http.StatusMovedPermanently))
//		}
//	})
//	k.Register(normalizer) // anything implementing Subscriber
//
//	http.ListenAndServe(":8080", k)
//
// Headers written through RequestEvent.Writer (cookies, typically) are kept on
// whichever response is finally sent, including a short-circuit response.
//
// Listeners must be registered before the kernel starts serving.
package kernel
