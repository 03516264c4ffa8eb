package navhandlers

import (
	"fmt"

	"github.com/vitalvas/navkit/navmux"
)

// PanicError is set on the response when RecoveryMiddleware recovers a
// panic. It is an error, so the router dispatches it under
// navmux.KeyException.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("navhandlers: panic: %v", e.Value)
}

// RecoveryConfig configures the Recovery middleware behaviour.
type RecoveryConfig struct {
	// LogFunc is an optional callback invoked with the request and the
	// recovered value when a panic occurs. When nil, no logging is performed.
	LogFunc func(req *navmux.Request, err any)
}

// RecoveryMiddleware returns a middleware that recovers from panics in
// downstream handlers. When a panic occurs it sets a *PanicError on the
// response, ends the response, and optionally invokes LogFunc.
func RecoveryMiddleware(cfg RecoveryConfig) navmux.Handler {
	return navmux.HandlerFunc(func(req *navmux.Request, res *navmux.Response, next navmux.Next) (err error) {
		defer func() {
			if v := recover(); v != nil {
				if cfg.LogFunc != nil {
					cfg.LogFunc(req, v)
				}

				res.SetError(&PanicError{Value: v})
				res.End()
				err = nil
			}
		}()

		return next()
	})
}
