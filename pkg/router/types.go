package router

import (
	"context"
	"net/http"

	"github.com/vango-dev/routematch/pkg/matcher"
	"github.com/vango-dev/routematch/pkg/pattern"
)

// Route is a named pattern, compiled once at registration.
type Route struct {
	// Name identifies the route for reverse routing.
	Name string

	// Pattern is the source text the route was declared with.
	Pattern string

	// Tokens is the compiled matcher token sequence.
	Tokens []pattern.MatcherToken

	// Handler serves requests that resolve to this route. It may be nil
	// for routes used only for resolution and URL building.
	Handler http.Handler
}

// Match matches url against the route alone.
func (r *Route) Match(url string) (matcher.Captures, bool) {
	return matcher.Match(r.Tokens, url)
}

// Keys returns the capture keys of the route in pattern order.
func (r *Route) Keys() []string {
	return pattern.Keys(r.Tokens)
}

// MatchResult is the outcome of a successful resolution.
type MatchResult struct {
	// Route is the first route, in declaration order, that matched.
	Route *Route

	// Captures holds the captured values in pattern order.
	Captures matcher.Captures

	// URL is the input the route was matched against.
	URL string
}

// Resolver maps a URL to the route it selects.
type Resolver func(ctx context.Context, url string) (*MatchResult, bool)

// Middleware wraps route resolution.
type Middleware interface {
	Handle(ctx context.Context, url string, next Resolver) (*MatchResult, bool)
}

// MiddlewareFunc adapts a function to the Middleware interface.
type MiddlewareFunc func(ctx context.Context, url string, next Resolver) (*MatchResult, bool)

// Handle implements Middleware.
func (f MiddlewareFunc) Handle(ctx context.Context, url string, next Resolver) (*MatchResult, bool) {
	return f(ctx, url, next)
}
