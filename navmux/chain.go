package navmux

import "reflect"

// Next continues the chain with the following handler. It returns the
// error of the rest of the chain.
type Next func() error

// Handler is a navigation middleware. A handler calls next to pass
// control on; returning without calling next stops the chain.
type Handler interface {
	ServeNavigation(req *Request, res *Response, next Next) error
}

// HandlerFunc adapts an ordinary function to the Handler interface.
type HandlerFunc func(req *Request, res *Response, next Next) error

// ServeNavigation calls f(req, res, next).
func (f HandlerFunc) ServeNavigation(req *Request, res *Response, next Next) error {
	return f(req, res, next)
}

// runChain runs handlers in order, giving each a next continuation that
// runs the one after it. The last continuation is a no-op.
//
// Before each handler the chain stops if the response has ended or the
// request context is done. A handler error is returned as is and the
// remaining handlers do not run.
func runChain(req *Request, res *Response, handlers []Handler) error {
	var step func(i int) error
	step = func(i int) error {
		if res.Ended() || i >= len(handlers) {
			return nil
		}
		if err := req.Context().Err(); err != nil {
			return err
		}
		return handlers[i].ServeNavigation(req, res, func() error {
			return step(i + 1)
		})
	}
	return step(0)
}

// sameHandler reports whether a and b are the same handler. Comparable
// handlers compare with ==. Function handlers compare by code pointer,
// so two closures created from the same function literal are equal.
func sameHandler(a, b Handler) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Comparable() {
		return a == b
	}
	if ta.Kind() == reflect.Func {
		return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
	}
	return false
}

func mustHandlers(handlers []Handler) {
	for _, h := range handlers {
		if h == nil {
			panic("navmux: nil handler")
		}
	}
}
