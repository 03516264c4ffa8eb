package navmux

import "fmt"

// Route is a compiled template and the handlers registered for it.
type Route struct {
	template string
	matcher  *Matcher
	handlers []Handler
}

// RouteFactory builds the Route for a newly registered template.
type RouteFactory func(template string, m *Matcher) *Route

// NewRoute is the default RouteFactory.
func NewRoute(template string, m *Matcher) *Route {
	return &Route{
		template: template,
		matcher:  m,
	}
}

// Template returns the normalized template the route is registered under.
func (r *Route) Template() string {
	return r.template
}

// Matcher returns the compiled template.
func (r *Route) Matcher() *Matcher {
	return r.matcher
}

// Handlers returns a copy of the route's handlers in invocation order.
func (r *Route) Handlers() []Handler {
	out := make([]Handler, len(r.handlers))
	copy(out, r.handlers)
	return out
}

// add appends handlers, or inserts them in front of the existing ones
// when unshift is set. Their relative order is kept either way.
func (r *Route) add(handlers []Handler, unshift bool) {
	if unshift {
		r.handlers = append(append(make([]Handler, 0, len(handlers)+len(r.handlers)), handlers...), r.handlers...)
		return
	}
	r.handlers = append(r.handlers, handlers...)
}

// removeHandler drops every occurrence of h and reports whether any
// was found.
func (r *Route) removeHandler(h Handler) bool {
	kept := r.handlers[:0]
	removed := false
	for _, existing := range r.handlers {
		if sameHandler(existing, h) {
			removed = true
			continue
		}
		kept = append(kept, existing)
	}
	for i := len(kept); i < len(r.handlers); i++ {
		r.handlers[i] = nil
	}
	r.handlers = kept
	return removed
}

// RouteTable is an ordered set of routes keyed by normalized template.
// Matching walks the routes in registration order and the first match
// wins. RouteTable is not safe for concurrent use; Router guards it.
type RouteTable struct {
	routes []*Route
	index  map[string]*Route
}

// NewRouteTable returns an empty route table.
func NewRouteTable() *RouteTable {
	return &RouteTable{index: make(map[string]*Route)}
}

// Add appends route. It fails if the route's template is already present.
func (t *RouteTable) Add(route *Route) error {
	key, err := TemplateKey(route.Template())
	if err != nil {
		return err
	}
	if _, ok := t.index[key]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateRoute, key)
	}
	t.index[key] = route
	t.routes = append(t.routes, route)
	return nil
}

// Get returns the route registered under template, or nil.
func (t *RouteTable) Get(template string) *Route {
	key, err := TemplateKey(template)
	if err != nil {
		return nil
	}
	return t.index[key]
}

// Has reports whether a route is registered under template.
func (t *RouteTable) Has(template string) bool {
	return t.Get(template) != nil
}

// Remove deletes the route registered under template and returns it.
// It returns nil when there is no such route.
func (t *RouteTable) Remove(template string) *Route {
	route := t.Get(template)
	if route == nil {
		return nil
	}
	t.RemoveRoute(route)
	return route
}

// RemoveRoute deletes route and reports whether it was present.
func (t *RouteTable) RemoveRoute(route *Route) bool {
	for i, r := range t.routes {
		if r != route {
			continue
		}
		t.routes = append(t.routes[:i:i], t.routes[i+1:]...)
		for k, v := range t.index {
			if v == route {
				delete(t.index, k)
			}
		}
		return true
	}
	return false
}

// Routes returns the routes in registration order.
func (t *RouteTable) Routes() []*Route {
	out := make([]*Route, len(t.routes))
	copy(out, t.routes)
	return out
}

// Len returns the number of routes.
func (t *RouteTable) Len() int {
	return len(t.routes)
}

// Match returns the first route whose matcher accepts path, together
// with the extracted parameters.
func (t *RouteTable) Match(path string) (*Route, map[string]string) {
	for _, route := range t.routes {
		if route.matcher == nil {
			continue
		}
		if params, ok := route.matcher.Params(path); ok {
			return route, params
		}
	}
	return nil, nil
}
