// Package middleware provides observability middleware for route resolution.
//
// This package includes:
//   - OpenTelemetry tracing middleware
//   - Prometheus metrics middleware
//
// Both wrap router.Resolver, so they observe Router.Resolve calls as well
// as requests served through Router.ServeHTTP.
//
// # OpenTelemetry Middleware
//
// The OpenTelemetry middleware opens one span per resolution. The span is
// named after the matched route and carries the URL, route name, pattern
// and captured values.
//
//	r := router.NewRouter(
//	    router.WithMiddleware(
//	        middleware.OpenTelemetry(),
//	    ),
//	)
//
// Configure with options:
//
//	middleware.OpenTelemetry(
//	    middleware.WithTracerName("my-app"),
//	    middleware.WithIncludeCaptures(false),
//	    middleware.WithResolveFilter(func(ctx context.Context, url string) bool {
//	        return url != "/healthz"
//	    }),
//	)
//
// # Prometheus Metrics
//
// The Prometheus middleware collects:
//   - routematch_resolutions_total: Resolutions by route and status
//   - routematch_resolve_duration_seconds: Resolution duration histogram
//   - routematch_compile_errors_total: Rejected patterns by error code
//   - routematch_routes: Size of the route table
//
//	r := router.NewRouter(
//	    router.WithMiddleware(
//	        middleware.Prometheus(),
//	    ),
//	)
//
// Then expose metrics:
//
//	http.Handle("/metrics", promhttp.Handler())
//
// # Context Propagation
//
// Middleware placed after OpenTelemetry in the chain receives the span in
// its context:
//
//	if span := middleware.SpanFromContext(ctx); span != nil {
//	    span.AddEvent("cache miss")
//	}
package middleware
