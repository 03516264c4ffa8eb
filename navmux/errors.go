package navmux

import "errors"

// ErrAlreadyStarted is returned by Start when the router is already running.
var ErrAlreadyStarted = errors.New("navmux: router already started")

// ErrNotStarted is returned by Navigate when the router has not been started.
var ErrNotStarted = errors.New("navmux: router not started")

// ErrInvalidURL is returned when a navigation target cannot be parsed.
var ErrInvalidURL = errors.New("navmux: invalid url")

// ErrMalformedPattern is returned when a route template does not compile
// into a valid regular expression.
var ErrMalformedPattern = errors.New("navmux: malformed route pattern")

// ErrDuplicateRoute is returned by RouteTable.Add when a route with the
// same normalized template is already registered.
var ErrDuplicateRoute = errors.New("navmux: route already registered")

// Error handler keys.
const (
	KeyNotFound   = "notfound"
	KeyNotAllowed = "notallowed"
	KeyException  = "exception"
	KeyDefault    = "default"
)

// ErrorTag is a named terminal error. A response whose error is (or wraps)
// an ErrorTag is dispatched to the error handler registered under the tag.
type ErrorTag string

// Error implements the error interface.
func (t ErrorTag) Error() string {
	return string(t)
}

// Predefined tags set by Response.NotFound and Response.NotAllowed.
const (
	TagNotFound   ErrorTag = KeyNotFound
	TagNotAllowed ErrorTag = KeyNotAllowed
)

// ErrorHandler handles a terminal response error.
type ErrorHandler func(err any, req *Request, res *Response)

// ErrorHandlers maps error keys to their handlers.
type ErrorHandlers map[string]ErrorHandler

// ErrorKey maps a terminal error value to an error handler key:
//   - an ErrorTag, or an error wrapping one, maps to the tag
//   - any other error maps to KeyException
//   - a string maps to itself
//   - anything else maps to KeyDefault
func ErrorKey(v any) string {
	switch e := v.(type) {
	case ErrorTag:
		return string(e)
	case string:
		return e
	case error:
		var tag ErrorTag
		if errors.As(e, &tag) {
			return string(tag)
		}
		return KeyException
	default:
		return KeyDefault
	}
}

// Lookup resolves the handler for err, falling back to the KeyDefault
// handler when no handler is registered under the error's own key.
func (h ErrorHandlers) Lookup(err any) (ErrorHandler, bool) {
	key := ErrorKey(err)
	if fn, ok := h[key]; ok && fn != nil {
		return fn, true
	}
	if key != KeyDefault {
		if fn, ok := h[KeyDefault]; ok && fn != nil {
			return fn, true
		}
	}
	return nil, false
}

// Dispatch invokes the handler resolved for err. It reports whether a
// handler ran; errors without a handler are dropped.
func (h ErrorHandlers) Dispatch(err any, req *Request, res *Response) bool {
	fn, ok := h.Lookup(err)
	if !ok {
		return false
	}
	fn(err, req, res)
	return true
}

// merge returns a new map holding h overlaid with other.
func (h ErrorHandlers) merge(other ErrorHandlers) ErrorHandlers {
	out := make(ErrorHandlers, len(h)+len(other))
	for k, v := range h {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}
