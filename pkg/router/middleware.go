package router

import "context"

// ComposeMiddleware builds a resolver chain from middleware and a final
// resolver and runs it for url. Middleware runs in order (first to last),
// with the resolver at the end.
func ComposeMiddleware(ctx context.Context, url string, mw []Middleware, resolve Resolver) (*MatchResult, bool) {
	if len(mw) == 0 {
		return resolve(ctx, url)
	}

	// Build chain from end to start
	chain := resolve
	for i := len(mw) - 1; i >= 0; i-- {
		m := mw[i]
		next := chain
		chain = func(ctx context.Context, url string) (*MatchResult, bool) {
			return m.Handle(ctx, url, next)
		}
	}

	return chain(ctx, url)
}

// Chain creates a middleware that combines multiple middleware in order.
func Chain(middleware ...Middleware) Middleware {
	return MiddlewareFunc(func(ctx context.Context, url string, next Resolver) (*MatchResult, bool) {
		return ComposeMiddleware(ctx, url, middleware, next)
	})
}

// Skip bypasses mw when condition is true.
func Skip(condition func(ctx context.Context, url string) bool, mw Middleware) Middleware {
	return MiddlewareFunc(func(ctx context.Context, url string, next Resolver) (*MatchResult, bool) {
		if condition(ctx, url) {
			return next(ctx, url)
		}
		return mw.Handle(ctx, url, next)
	})
}

// Only runs mw only when condition is true.
func Only(condition func(ctx context.Context, url string) bool, mw Middleware) Middleware {
	return MiddlewareFunc(func(ctx context.Context, url string, next Resolver) (*MatchResult, bool) {
		if !condition(ctx, url) {
			return next(ctx, url)
		}
		return mw.Handle(ctx, url, next)
	})
}
