package navmux

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"go.uber.org/atomic"
)

// Router maps navigations to handler chains.
//
// A router starts stopped. Routes and handlers may be registered at any
// time; Navigate only works between Start and Stop. Dispatch works in
// either state and never touches history.
type Router struct {
	mu            sync.RWMutex
	table         *RouteTable
	globals       []Handler
	errorHandlers ErrorHandlers
	hashMode      bool
	current       string
	unsubscribe   func()

	started atomic.Bool
	counter *atomic.Uint64

	history     History
	logger      *slog.Logger
	newRequest  RequestFactory
	newResponse ResponseFactory
	newRoute    RouteFactory
}

// New returns a stopped router.
func New(opts ...Option) *Router {
	r := &Router{
		table:         NewRouteTable(),
		errorHandlers: ErrorHandlers{},
		counter:       &historyCounter,
		logger:        slog.New(slog.DiscardHandler),
		newRequest:    NewRequest,
		newResponse:   NewResponse,
		newRoute:      NewRoute,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// --- Lifecycle ---

// Start applies opts, navigates to the current location without
// pushing a history entry, and subscribes to back/forward navigation.
// With opts.NoTrigger the current location is recorded but not
// dispatched. If the initial navigation fails the router is left stopped
// with its previous hash mode and error handlers.
func (r *Router) Start(ctx context.Context, opts StartOptions) error {
	if !r.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	r.mu.Lock()
	prevHashMode, prevErrorHandlers := r.hashMode, r.errorHandlers
	if opts.UseHashes != nil {
		r.hashMode = *opts.UseHashes
	}
	if opts.ErrorHandlers != nil || opts.ReplaceErrorHandlers {
		if opts.ReplaceErrorHandlers {
			r.errorHandlers = ErrorHandlers{}.merge(opts.ErrorHandlers)
		} else {
			r.errorHandlers = r.errorHandlers.merge(opts.ErrorHandlers)
		}
	}
	r.mu.Unlock()

	_, err := r.NavigateURL(ctx, r.location(), NavigateOptions{
		NoTrigger:   opts.NoTrigger,
		NoPushState: true,
		State:       opts.State,
	})
	if err != nil {
		r.mu.Lock()
		r.hashMode, r.errorHandlers = prevHashMode, prevErrorHandlers
		r.mu.Unlock()
		r.started.Store(false)
		return err
	}

	if r.history != nil {
		cancel := r.history.Subscribe(r.onPopState)
		r.mu.Lock()
		r.unsubscribe = cancel
		r.mu.Unlock()
	}

	r.logger.Debug("navmux: router started", "hashMode", r.isHashMode())
	return nil
}

// Stop detaches the router from history. Stopping a stopped router is
// a no-op.
func (r *Router) Stop() {
	r.started.Store(false)

	r.mu.Lock()
	cancel := r.unsubscribe
	r.unsubscribe = nil
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// IsStarted reports whether the router is started.
func (r *Router) IsStarted() bool {
	return r.started.Load()
}

// onPopState re-navigates to the restored location.
func (r *Router) onPopState(u *url.URL, state any) {
	if u == nil {
		u = r.location()
	}
	_, err := r.NavigateURL(context.Background(), u, NavigateOptions{
		NoPushState: true,
		State:       state,
	})
	switch {
	case errors.Is(err, ErrNotStarted):
		r.logger.Debug("navmux: popstate ignored, router stopped")
	case err != nil:
		r.logger.Error("navmux: popstate navigation failed", "error", err)
	}
}

// --- Registration ---

// Use appends global handlers. They run before the handlers of every
// matched route.
func (r *Router) Use(handlers ...Handler) {
	mustHandlers(handlers)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.globals = append(r.globals, handlers...)
}

// UsePath inserts handlers in front of the handlers registered for path.
func (r *Router) UsePath(path string, handlers ...Handler) error {
	return r.Add(path, handlers, true)
}

// Get appends handlers to the handlers registered for path.
func (r *Router) Get(path string, handlers ...Handler) error {
	return r.Add(path, handlers, false)
}

// Add registers handlers for path, creating the route on first use.
// With unshift the handlers go in front of the existing ones.
func (r *Router) Add(path string, handlers []Handler, unshift bool) error {
	mustHandlers(handlers)

	key, err := TemplateKey(path)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	route := r.table.Get(key)
	if route == nil {
		m, err := Compile(key)
		if err != nil {
			return err
		}
		route = r.newRoute(key, m)
		if err := r.table.Add(route); err != nil {
			return err
		}
	}
	route.add(handlers, unshift)
	return nil
}

// Remove deletes the route registered for path and returns it, or nil
// when there is none.
func (r *Router) Remove(path string) *Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.table.Remove(path)
}

// RemoveHandler removes h from the route registered for path.
func (r *Router) RemoveHandler(path string, h Handler) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	route := r.table.Get(path)
	if route == nil {
		return false
	}
	return route.removeHandler(h)
}

// RemoveGlobal removes a global handler.
func (r *Router) RemoveGlobal(h Handler) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := make([]Handler, 0, len(r.globals))
	removed := false
	for _, g := range r.globals {
		if sameHandler(g, h) {
			removed = true
			continue
		}
		kept = append(kept, g)
	}
	r.globals = kept
	return removed
}

// Has reports whether a route is registered for path.
func (r *Router) Has(path string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.table.Has(path)
}

// Route returns the route registered for path, or nil.
func (r *Router) Route(path string) *Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.table.Get(path)
}

// Routes returns the registered routes in matching order.
func (r *Router) Routes() []*Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.table.Routes()
}

// HandleError registers fn for the error key.
func (r *Router) HandleError(key string, fn ErrorHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errorHandlers = r.errorHandlers.merge(ErrorHandlers{key: fn})
}

// --- Navigation ---

// Navigate normalizes target and navigates to it.
//
// Navigating to the current location is a no-op that returns false.
// Otherwise the target is dispatched (unless opts.NoTrigger), becomes the
// current location, and gets a history entry (unless opts.NoPushState).
// An empty target means the current document location.
func (r *Router) Navigate(ctx context.Context, target string, opts NavigateOptions) (bool, error) {
	if !r.started.Load() {
		return false, ErrNotStarted
	}
	u, err := Normalize(target, r.location(), r.isHashMode())
	if err != nil {
		return false, err
	}
	return r.navigate(ctx, u, opts)
}

// NavigateURL is Navigate for an already parsed URL.
func (r *Router) NavigateURL(ctx context.Context, target *url.URL, opts NavigateOptions) (bool, error) {
	if !r.started.Load() {
		return false, ErrNotStarted
	}
	u, err := NormalizeURL(target)
	if err != nil {
		return false, err
	}
	return r.navigate(ctx, u, opts)
}

func (r *Router) navigate(ctx context.Context, u *url.URL, opts NavigateOptions) (bool, error) {
	href := u.String()

	r.mu.RLock()
	same := strings.EqualFold(href, r.current)
	r.mu.RUnlock()
	if same {
		return false, nil
	}

	if !opts.NoTrigger {
		if _, err := r.dispatch(ctx, u, opts.State); err != nil {
			return false, err
		}
	}

	r.mu.Lock()
	r.current = strings.ToLower(href)
	r.mu.Unlock()

	if !opts.NoPushState && r.history != nil {
		state := HistoryState{Counter: r.counter.Inc()}
		if err := r.history.PushState(state, u); err != nil {
			return true, fmt.Errorf("navmux: push state: %w", err)
		}
	}
	return true, nil
}

// Current returns the current location, lowercased. It is empty until
// the first navigation.
func (r *Router) Current() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Dispatch normalizes target and runs it through the route table and
// handler chain without touching history or the current location.
//
// The returned error is a handler failure or a context error. Terminal
// response errors (not found, not allowed, errors set with SetError) go
// to the error handlers instead and are visible through Response.Err.
func (r *Router) Dispatch(ctx context.Context, target string, state any) (*Response, error) {
	u, err := Normalize(target, r.location(), r.isHashMode())
	if err != nil {
		return nil, err
	}
	return r.dispatch(ctx, u, state)
}

func (r *Router) dispatch(ctx context.Context, u *url.URL, state any) (*Response, error) {
	r.mu.RLock()
	hashMode := r.hashMode
	path := DispatchPath(u, hashMode)
	route, params := r.table.Match(path)
	var handlers []Handler
	if route != nil {
		handlers = make([]Handler, 0, len(r.globals)+len(route.handlers))
		handlers = append(handlers, r.globals...)
		handlers = append(handlers, route.handlers...)
	}
	errorHandlers := r.errorHandlers
	r.mu.RUnlock()

	req := r.newRequest(ctx, u, path, parseQuery(rawQuery(u, hashMode)), state)
	res := r.newResponse(req)

	if route == nil {
		r.logger.Debug("navmux: no route matched", "path", path)
		res.NotFound()
		r.dispatchError(errorHandlers, req, res)
		return res, nil
	}

	req.route = route
	if req.Params == nil {
		req.Params = make(map[string]string, len(params))
	}
	for k, v := range params {
		req.Params[k] = v
	}

	r.logger.Debug("navmux: dispatch", "path", path, "route", route.Template(), "handlers", len(handlers))

	if err := runChain(req, res, handlers); err != nil {
		return res, err
	}

	if res.Err() != nil {
		r.dispatchError(errorHandlers, req, res)
	}
	return res, nil
}

func (r *Router) dispatchError(handlers ErrorHandlers, req *Request, res *Response) {
	if !handlers.Dispatch(res.Err(), req, res) {
		r.logger.Debug("navmux: unhandled error dropped", "path", req.Path, "key", ErrorKey(res.Err()))
	}
}

// --- State helpers ---

func (r *Router) location() *url.URL {
	if r.history != nil {
		if u := r.history.Location(); u != nil {
			return u
		}
	}
	u := *defaultBase
	return &u
}

func (r *Router) isHashMode() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.hashMode
}
