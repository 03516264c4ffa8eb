// Package navhandlers provides reusable navigation middleware for the
// navmux router.
//
// Every constructor returns a navmux.Handler that is registered with
// Router.Use (for all routes) or Router.Get and Router.UsePath (for one
// route). Handlers registered with Use do not run for unmatched paths.
//
// # Request ID Middleware
//
// RequestIDMiddleware assigns every navigation an ID, stores it in
// Request.ID and in the request context:
//
//	r.Use(navhandlers.RequestIDMiddleware(navhandlers.RequestIDConfig{
//	    GenerateFunc: navhandlers.GenerateUUIDv7,
//	}))
//
// # Recovery Middleware
//
// RecoveryMiddleware turns a panic in a downstream handler into a
// *PanicError set on the response and ends it. The router then passes the
// error to the "exception" error handler:
//
//	r.Use(navhandlers.RecoveryMiddleware(navhandlers.RecoveryConfig{}))
//	r.HandleError(navmux.KeyException, showCrashPage)
//
// # Logging Middleware
//
// LoggingMiddleware writes one slog record per dispatched navigation with
// the path, route template, duration, and the error key of a terminal
// response error.
//
// # Metrics Middleware
//
// NewMetrics registers Prometheus collectors and returns a handler that
// counts navigations and observes their duration by route template:
//
//	m, err := navhandlers.NewMetrics(navhandlers.MetricsConfig{Namespace: "shop"})
//	if err != nil {
//	    return err
//	}
//	r.Use(m)
//
// # Tracing Middleware
//
// TracingMiddleware starts an OpenTelemetry span per navigation and
// replaces the request context with the span context, so handlers can
// start child spans from req.Context().
package navhandlers
