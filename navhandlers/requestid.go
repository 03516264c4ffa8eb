package navhandlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/vitalvas/navkit/navmux"
)

type requestIDKey struct{}

// RequestIDFromContext returns the navigation ID stored in the context by
// RequestIDMiddleware. Returns an empty string if no ID is present.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}

	return ""
}

// RequestIDConfig configures the Request ID middleware behaviour.
type RequestIDConfig struct {
	// GenerateFunc is an optional callback that returns a new unique ID.
	// Defaults to GenerateUUIDv4.
	GenerateFunc func(req *navmux.Request) string

	// TrustIncoming, when true, keeps an ID already present on the
	// request (set by a request factory, for example) instead of
	// generating a new one.
	TrustIncoming bool
}

// RequestIDMiddleware returns a middleware that assigns an ID to every
// navigation. The ID is set on Request.ID and stored in the request
// context.
func RequestIDMiddleware(cfg RequestIDConfig) navmux.Handler {
	generate := cfg.GenerateFunc
	if generate == nil {
		generate = GenerateUUIDv4
	}

	trustIncoming := cfg.TrustIncoming

	return navmux.HandlerFunc(func(req *navmux.Request, _ *navmux.Response, next navmux.Next) error {
		id := ""
		if trustIncoming {
			id = req.ID
		}

		if id == "" {
			id = generate(req)
		}

		if id != "" {
			req.ID = id
			req.SetContext(context.WithValue(req.Context(), requestIDKey{}, id))
		}

		return next()
	})
}

// GenerateUUIDv4 returns a new UUID v4 string.
//
// Spec reference: https://www.rfc-editor.org/rfc/rfc9562#section-5.4
func GenerateUUIDv4(_ *navmux.Request) string {
	return uuid.New().String()
}

// GenerateUUIDv7 returns a new UUID v7 string. UUIDs are time-ordered:
// IDs generated later sort lexicographically after earlier ones.
//
// Spec reference: https://www.rfc-editor.org/rfc/rfc9562#section-5.7
func GenerateUUIDv7(_ *navmux.Request) string {
	return uuid.Must(uuid.NewV7()).String()
}
