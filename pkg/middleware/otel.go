package middleware

import (
	"context"
	"time"

	"github.com/vango-dev/routematch/pkg/router"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name.
const defaultTracerName = "github.com/vango-dev/routematch"

// Span attribute keys.
const (
	AttrURL      = attribute.Key("route.url")
	AttrName     = attribute.Key("route.name")
	AttrPattern  = attribute.Key("route.pattern")
	AttrCaptures = attribute.Key("route.captures")
	AttrMatched  = attribute.Key("route.matched")
)

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer.
	TracerName string

	// TracerProvider supplies the tracer. Defaults to the global provider.
	TracerProvider trace.TracerProvider

	// IncludeCaptures records captured values as a span attribute.
	// Captured values are user input and may contain sensitive data.
	// Enabled by default.
	IncludeCaptures bool

	// Filter determines which URLs to trace.
	// Return true to trace, false to skip.
	// If nil, every resolution is traced.
	Filter func(ctx context.Context, url string) bool

	// AttributeExtractor adds custom attributes for a successful match.
	AttributeExtractor func(result *router.MatchResult) []attribute.KeyValue

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

// WithIncludeCaptures enables/disables recording captured values.
func WithIncludeCaptures(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludeCaptures = include
	}
}

// WithResolveFilter sets a filter function for URLs.
func WithResolveFilter(filter func(ctx context.Context, url string) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(result *router.MatchResult) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// defaultOTelConfig returns the default OpenTelemetry configuration.
func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName:      defaultTracerName,
		IncludeCaptures: true,
	}
}

// OpenTelemetry creates middleware that traces every resolution.
//
// The middleware:
//   - Creates a span per resolution carrying the URL
//   - Passes the span context to the rest of the chain
//   - Names the span after the matched route and records its captures
//   - Sets an error status when no route matches
//
// Example:
//
//	r := router.NewRouter(
//	    router.WithMiddleware(
//	        middleware.OpenTelemetry(
//	            middleware.WithTracerName("my-app"),
//	            middleware.WithIncludeCaptures(false),
//	        ),
//	    ),
//	)
//
// Without WithTracerProvider the global provider is used. Configure it in
// main() before starting the server:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
func OpenTelemetry(opts ...OTelOption) router.Middleware {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}

	if config.TracerProvider != nil {
		config.tracer = config.TracerProvider.Tracer(config.TracerName)
	} else {
		config.tracer = otel.Tracer(config.TracerName)
	}

	return router.MiddlewareFunc(func(ctx context.Context, url string, next router.Resolver) (*router.MatchResult, bool) {
		if config.Filter != nil && !config.Filter(ctx, url) {
			return next(ctx, url)
		}

		spanCtx, span := config.tracer.Start(
			ctx,
			"route.resolve",
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(AttrURL.String(url)),
			trace.WithTimestamp(time.Now()),
		)
		defer span.End()

		result, ok := next(spanCtx, url)
		span.SetAttributes(AttrMatched.Bool(ok))

		if !ok {
			span.SetStatus(codes.Error, "no route matched")
			return result, ok
		}

		span.SetName("route.resolve " + result.Route.Name)
		span.SetAttributes(
			AttrName.String(result.Route.Name),
			AttrPattern.String(result.Route.Pattern),
		)
		if config.IncludeCaptures {
			span.SetAttributes(AttrCaptures.StringSlice(captureStrings(result)))
		}
		if config.AttributeExtractor != nil {
			span.SetAttributes(config.AttributeExtractor(result)...)
		}
		span.SetStatus(codes.Ok, "")

		return result, ok
	})
}

// captureStrings renders captures as "key=value" in pattern order.
func captureStrings(result *router.MatchResult) []string {
	out := make([]string, 0, result.Captures.Len())
	for k, v := range result.Captures.All() {
		out = append(out, k+"="+v)
	}
	return out
}

// SpanFromContext retrieves the resolution span from the context.
// Returns nil if no span is available.
//
// Example:
//
//	mw := router.MiddlewareFunc(func(ctx context.Context, url string, next router.Resolver) (*router.MatchResult, bool) {
//	    if span := middleware.SpanFromContext(ctx); span != nil {
//	        span.AddEvent("tenant lookup")
//	    }
//	    return next(ctx, url)
//	})
func SpanFromContext(ctx context.Context) trace.Span {
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return nil
	}
	return span
}
