package navmux

import (
	"log/slog"

	"go.uber.org/atomic"
)

// Option configures a Router.
type Option func(*Router)

// WithHistory sets the history the router reads its location from and
// pushes entries to. Without a history the router dispatches against
// http://localhost/ and never pushes entries.
func WithHistory(h History) Option {
	return func(r *Router) {
		r.history = h
	}
}

// WithHashMode makes the router match routes against the URL fragment
// instead of the path.
func WithHashMode(enabled bool) Option {
	return func(r *Router) {
		r.hashMode = enabled
	}
}

// WithErrorHandlers merges handlers into the router's error handlers.
func WithErrorHandlers(handlers ErrorHandlers) Option {
	return func(r *Router) {
		r.errorHandlers = r.errorHandlers.merge(handlers)
	}
}

// WithHistoryCounter makes the router number its history entries with c
// instead of the process-wide counter.
func WithHistoryCounter(c *atomic.Uint64) Option {
	return func(r *Router) {
		if c != nil {
			r.counter = c
		}
	}
}

// WithLogger sets the logger for dispatch diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithRequestFactory replaces the constructor used for requests.
func WithRequestFactory(f RequestFactory) Option {
	return func(r *Router) {
		if f != nil {
			r.newRequest = f
		}
	}
}

// WithResponseFactory replaces the constructor used for responses.
func WithResponseFactory(f ResponseFactory) Option {
	return func(r *Router) {
		if f != nil {
			r.newResponse = f
		}
	}
}

// WithRouteFactory replaces the constructor used for routes.
func WithRouteFactory(f RouteFactory) Option {
	return func(r *Router) {
		if f != nil {
			r.newRoute = f
		}
	}
}

// StartOptions configures Router.Start.
type StartOptions struct {
	// NoTrigger skips the initial navigation to the current location.
	NoTrigger bool

	// UseHashes, when set, overrides the router's hash mode.
	UseHashes *bool

	// ErrorHandlers are merged into the router's error handlers, or
	// replace them when ReplaceErrorHandlers is set.
	ErrorHandlers ErrorHandlers

	// ReplaceErrorHandlers replaces the error handlers instead of
	// merging ErrorHandlers into them.
	ReplaceErrorHandlers bool

	// State is attached to the request of the initial navigation.
	State any
}

// NavigateOptions configures Router.Navigate.
type NavigateOptions struct {
	// NoTrigger records the new location without dispatching it.
	NoTrigger bool

	// NoPushState skips adding a history entry.
	NoPushState bool

	// State is attached to the request.
	State any
}
