package navhandlers

import (
	"fmt"

	"github.com/vitalvas/navkit/navmux"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultTracerName = "github.com/vitalvas/navkit"

// TracingConfig configures the OpenTelemetry middleware.
type TracingConfig struct {
	// TracerName is the name of the tracer. Defaults to the module path.
	TracerName string

	// TracerProvider supplies the tracer. Defaults to the global
	// provider returned by otel.GetTracerProvider.
	TracerProvider trace.TracerProvider

	// Attributes extracts custom span attributes from the request.
	Attributes func(req *navmux.Request) []attribute.KeyValue
}

// TracingMiddleware returns a middleware that wraps the rest of the chain
// in a span named after the matched route. The request context is
// replaced with the span context.
//
// Handler errors are recorded on the span. A terminal response error sets
// the span status to Error with the error key as description.
func TracingMiddleware(cfg TracingConfig) navmux.Handler {
	name := cfg.TracerName
	if name == "" {
		name = defaultTracerName
	}

	provider := cfg.TracerProvider
	if provider == nil {
		provider = otel.GetTracerProvider()
	}
	tracer := provider.Tracer(name)

	return navmux.HandlerFunc(func(req *navmux.Request, res *navmux.Response, next navmux.Next) error {
		route := routeLabel(req)

		attrs := []attribute.KeyValue{
			attribute.String("navkit.path", req.Path),
			attribute.String("navkit.route", route),
		}
		if req.ID != "" {
			attrs = append(attrs, attribute.String("navkit.id", req.ID))
		}
		if cfg.Attributes != nil {
			attrs = append(attrs, cfg.Attributes(req)...)
		}

		ctx, span := tracer.Start(req.Context(), fmt.Sprintf("navigate %s", route),
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(attrs...),
		)
		defer span.End()

		req.SetContext(ctx)

		err := next()

		switch {
		case err != nil:
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		case res.Err() != nil:
			key := navmux.ErrorKey(res.Err())
			span.SetAttributes(attribute.String("navkit.error_key", key))
			span.SetStatus(codes.Error, key)
		default:
			span.SetStatus(codes.Ok, "")
		}

		return err
	})
}

// SpanFromRequest returns the span started by TracingMiddleware, or a
// non-recording span when there is none.
func SpanFromRequest(req *navmux.Request) trace.Span {
	return trace.SpanFromContext(req.Context())
}
