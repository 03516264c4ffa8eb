// Package navmux implements a client-side navigation router: it maps
// navigations inside a browser tab (or any host with a History surface)
// to ordered chains of handlers with Express-style next() continuation.
//
// # Router
//
// Create a router, register routes, and start it:
//
//	r := navmux.New(navmux.WithHistory(navhistory.NewBrowser()))
//	r.Use(navmux.HandlerFunc(logNavigation))
//	r.Get("/users/:id", navmux.HandlerFunc(showUser))
//	if err := r.Start(ctx, navmux.StartOptions{}); err != nil {
//	    return err
//	}
//	r.Navigate(ctx, "/users/42", navmux.NavigateOptions{})
//
// Start dispatches the current location without adding a history entry
// and subscribes to back/forward navigation. Navigate dispatches the
// target, records it as the current location, and pushes a history entry.
// Navigating to the current location again is a no-op.
//
// # Templates
//
// Route templates support named parameters, splats, and optional groups:
//
//	/users/:id          matches /users/42, Params["id"] == "42"
//	/files/*rest        matches /files/a/b/c, Params["rest"] == "a/b/c"
//	/docs(/:section)    matches /docs and /docs/intro
//
// A template must match the whole dispatch path. A trailing query string
// is allowed and is parsed into Request.Query. Routes are tried in
// registration order and the first match wins.
//
// # Handlers
//
// Global handlers registered with Use run before the handlers of the
// matched route. Get appends route handlers; UsePath inserts them in
// front of the route's existing handlers:
//
//	r.UsePath("/admin", navmux.HandlerFunc(requireLogin)) // runs first
//	r.Get("/admin", navmux.HandlerFunc(showAdmin))
//
// A handler passes control on by calling next. Returning without calling
// next, or calling res.End, stops the chain:
//
//	func requireLogin(req *navmux.Request, res *navmux.Response, next navmux.Next) error {
//	    if !loggedIn() {
//	        res.NotAllowed()
//	        res.End()
//	        return nil
//	    }
//	    return next()
//	}
//
// Handlers run one at a time, in order. Errors returned by handlers are
// returned to the caller of Navigate or Dispatch unchanged.
//
// # Error Handlers
//
// After the chain, a terminal error set on the response is passed to an
// error handler chosen by ErrorKey: an ErrorTag or string selects the
// handler registered under it, other errors select "exception", and
// anything else selects "default". Unmatched paths select "notfound".
// When no handler exists for a key the "default" handler is used, and
// when there is no "default" handler the error is dropped.
//
//	r.HandleError(navmux.KeyNotFound, func(err any, req *navmux.Request, res *navmux.Response) {
//	    render404(req.Path)
//	})
//
// # Hash Mode
//
// WithHashMode (or StartOptions.UseHashes) matches routes against the URL
// fragment: with the document at /app, navigating to "/users/1" leads to
// /app#/users/1 and the route "/users/:id" matches.
package navmux
