package navhandlers

import (
	"log/slog"
	"time"

	"github.com/vitalvas/navkit/navmux"
)

// LoggingConfig configures the Logging middleware.
type LoggingConfig struct {
	// Logger receives the records. Defaults to slog.Default().
	Logger *slog.Logger

	// Level is used for successful navigations. Failed navigations are
	// always logged at error level and terminal response errors at warn.
	Level slog.Level
}

// LoggingMiddleware returns a middleware that logs every navigation after
// the rest of the chain has run.
func LoggingMiddleware(cfg LoggingConfig) navmux.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	level := cfg.Level

	return navmux.HandlerFunc(func(req *navmux.Request, res *navmux.Response, next navmux.Next) error {
		start := time.Now()
		err := next()

		attrs := []slog.Attr{
			slog.String("path", req.Path),
			slog.String("route", routeLabel(req)),
			slog.Duration("duration", time.Since(start)),
		}
		if req.ID != "" {
			attrs = append(attrs, slog.String("id", req.ID))
		}

		switch {
		case err != nil:
			attrs = append(attrs, slog.Any("error", err))
			logger.LogAttrs(req.Context(), slog.LevelError, "navigation failed", attrs...)
		case res.Err() != nil:
			attrs = append(attrs, slog.String("key", navmux.ErrorKey(res.Err())))
			logger.LogAttrs(req.Context(), slog.LevelWarn, "navigation rejected", attrs...)
		default:
			logger.LogAttrs(req.Context(), level, "navigation", attrs...)
		}

		return err
	})
}

// routeLabel returns the template of the matched route, or "" when the
// request was not routed.
func routeLabel(req *navmux.Request) string {
	if route := req.Route(); route != nil {
		return route.Template()
	}
	return ""
}
