package middleware

import (
	"context"
	"testing"

	"github.com/vango-dev/routematch/pkg/router"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecorder() (*tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	sr := tracetest.NewSpanRecorder()
	return sr, sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
}

func spanAttrs(span sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	attrs := make(map[attribute.Key]attribute.Value)
	for _, kv := range span.Attributes() {
		attrs[kv.Key] = kv.Value
	}
	return attrs
}

func TestOpenTelemetryMiddleware_MatchedSpan(t *testing.T) {
	sr, tp := newRecorder()

	r := newRouter(t, router.WithMiddleware(OpenTelemetry(
		WithTracerProvider(tp),
		WithAttributeExtractor(func(result *router.MatchResult) []attribute.KeyValue {
			return []attribute.KeyValue{attribute.Int("test.captures", result.Captures.Len())}
		}),
	)))

	if _, ok := r.Resolve(context.Background(), "/user/42/posts/7"); !ok {
		t.Fatal("Resolve() ok = false")
	}

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	span := spans[0]

	if span.Name() != "route.resolve user" {
		t.Errorf("span name = %q, want %q", span.Name(), "route.resolve user")
	}
	if span.Status().Code != codes.Ok {
		t.Errorf("status = %v, want Ok", span.Status().Code)
	}

	attrs := spanAttrs(span)
	if got := attrs[AttrURL].AsString(); got != "/user/42/posts/7" {
		t.Errorf("%s = %q", AttrURL, got)
	}
	if got := attrs[AttrName].AsString(); got != "user" {
		t.Errorf("%s = %q, want user", AttrName, got)
	}
	if got := attrs[AttrPattern].AsString(); got != "/user/{id}(/posts/{post})" {
		t.Errorf("%s = %q", AttrPattern, got)
	}
	if got := attrs[AttrCaptures].AsStringSlice(); len(got) != 2 || got[0] != "id=42" || got[1] != "post=7" {
		t.Errorf("%s = %v, want [id=42 post=7]", AttrCaptures, got)
	}
	if !attrs[AttrMatched].AsBool() {
		t.Errorf("%s = false", AttrMatched)
	}
	if got := attrs["test.captures"].AsInt64(); got != 2 {
		t.Errorf("test.captures = %d, want 2", got)
	}
}

func TestOpenTelemetryMiddleware_UnmatchedSpan(t *testing.T) {
	sr, tp := newRecorder()

	r := newRouter(t, router.WithMiddleware(OpenTelemetry(WithTracerProvider(tp))))
	if _, ok := r.Resolve(context.Background(), "/nope"); ok {
		t.Fatal("Resolve(/nope) ok = true")
	}

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Status().Code != codes.Error {
		t.Errorf("status = %v, want Error", spans[0].Status().Code)
	}
	attrs := spanAttrs(spans[0])
	if attrs[AttrMatched].AsBool() {
		t.Errorf("%s = true", AttrMatched)
	}
	if _, ok := attrs[AttrName]; ok {
		t.Errorf("%s set on a miss", AttrName)
	}
}

func TestOpenTelemetryMiddleware_WithoutCaptures(t *testing.T) {
	sr, tp := newRecorder()

	r := newRouter(t, router.WithMiddleware(OpenTelemetry(WithTracerProvider(tp), WithIncludeCaptures(false))))
	r.Resolve(context.Background(), "/user/secret")

	if _, ok := spanAttrs(sr.Ended()[0])[AttrCaptures]; ok {
		t.Errorf("%s recorded with captures disabled", AttrCaptures)
	}
}

func TestOpenTelemetryMiddleware_SpanVisibleDownstream(t *testing.T) {
	sr, tp := newRecorder()

	var seen bool
	probe := router.MiddlewareFunc(func(ctx context.Context, url string, next router.Resolver) (*router.MatchResult, bool) {
		if span := SpanFromContext(ctx); span != nil {
			seen = true
			span.AddEvent("probe")
		}
		return next(ctx, url)
	})

	r := newRouter(t, router.WithMiddleware(OpenTelemetry(WithTracerProvider(tp)), probe))
	r.Resolve(context.Background(), "/about")

	if !seen {
		t.Fatal("SpanFromContext() = nil inside the traced chain")
	}
	if events := sr.Ended()[0].Events(); len(events) != 1 || events[0].Name != "probe" {
		t.Errorf("events = %v, want [probe]", events)
	}
}

func TestOpenTelemetryMiddleware_FilterSkipsTracing(t *testing.T) {
	sr, tp := newRecorder()

	nextCalled := false
	probe := router.MiddlewareFunc(func(ctx context.Context, url string, next router.Resolver) (*router.MatchResult, bool) {
		nextCalled = true
		if SpanFromContext(ctx) != nil {
			t.Error("expected no span when filter skips tracing")
		}
		return next(ctx, url)
	})

	r := newRouter(t, router.WithMiddleware(
		OpenTelemetry(
			WithTracerProvider(tp),
			WithResolveFilter(func(ctx context.Context, url string) bool { return url != "/healthz" }),
		),
		probe,
	))
	r.Resolve(context.Background(), "/healthz")

	if !nextCalled {
		t.Fatal("expected next to be called")
	}
	if n := len(sr.Ended()); n != 0 {
		t.Errorf("got %d spans, want 0", n)
	}
}

func TestSpanFromContext_NoSpan(t *testing.T) {
	if SpanFromContext(context.Background()) != nil {
		t.Fatal("expected nil span when no span is in the context")
	}
}
