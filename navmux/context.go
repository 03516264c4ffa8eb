package navmux

import (
	"context"
	"net/url"
)

// Request describes one dispatch attempt.
type Request struct {
	// URL is the canonical navigation target.
	URL *url.URL

	// Path is the dispatch path the route was matched against.
	Path string

	// Params holds the route parameters, filled in before the chain runs.
	Params map[string]string

	// Query holds the parsed query string of the dispatch path.
	Query Query

	// State is the payload supplied by the caller of Navigate or by the
	// history entry restored on back/forward navigation.
	State any

	// ID identifies the navigation. It is empty unless a handler such as
	// navhandlers.RequestID assigns one.
	ID string

	ctx   context.Context
	route *Route
}

// RequestFactory builds the Request for a dispatch.
type RequestFactory func(ctx context.Context, u *url.URL, path string, query Query, state any) *Request

// NewRequest is the default RequestFactory.
func NewRequest(ctx context.Context, u *url.URL, path string, query Query, state any) *Request {
	if ctx == nil {
		ctx = context.Background()
	}
	if query == nil {
		query = Query{}
	}
	return &Request{
		URL:    u,
		Path:   path,
		Params: map[string]string{},
		Query:  query,
		State:  state,
		ctx:    ctx,
	}
}

// Context returns the request's context. It is never nil.
func (r *Request) Context() context.Context {
	if r.ctx == nil {
		return context.Background()
	}
	return r.ctx
}

// SetContext replaces the request's context. Handlers use it to pass
// values such as trace spans to the handlers after them.
func (r *Request) SetContext(ctx context.Context) {
	if ctx == nil {
		panic("navmux: nil context")
	}
	r.ctx = ctx
}

// Param returns the route parameter name, or "" when it is absent.
func (r *Request) Param(name string) string {
	return r.Params[name]
}

// Route returns the matched route. It is nil while dispatching a path
// that matched no route.
func (r *Request) Route() *Route {
	return r.route
}

// Response collects the outcome of a dispatch.
type Response struct {
	// Locals carries data between handlers of one chain.
	Locals map[string]any

	req   *Request
	ended bool
	err   any
}

// ResponseFactory builds the Response for a Request.
type ResponseFactory func(req *Request) *Response

// NewResponse is the default ResponseFactory.
func NewResponse(req *Request) *Response {
	return &Response{
		Locals: map[string]any{},
		req:    req,
	}
}

// Request returns the request this response belongs to.
func (r *Response) Request() *Request {
	return r.req
}

// End stops the chain. Handlers after the current one are not invoked,
// even if the current handler calls next.
func (r *Response) End() {
	r.ended = true
}

// Ended reports whether End has been called.
func (r *Response) Ended() bool {
	return r.ended
}

// SetError records the terminal error. After the chain finishes the
// error is passed to the error handler chosen by ErrorKey. It does not
// end the response.
func (r *Response) SetError(v any) {
	r.err = v
}

// Err returns the terminal error, or nil.
func (r *Response) Err() any {
	return r.err
}

// NotFound sets the terminal error to TagNotFound.
func (r *Response) NotFound() {
	r.SetError(TagNotFound)
}

// NotAllowed sets the terminal error to TagNotAllowed.
func (r *Response) NotAllowed() {
	r.SetError(TagNotAllowed)
}
