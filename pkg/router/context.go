package router

import (
	"context"

	"github.com/vango-dev/routematch/pkg/matcher"
)

type matchKey struct{}

// WithMatch returns a copy of ctx carrying result.
func WithMatch(ctx context.Context, result *MatchResult) context.Context {
	return context.WithValue(ctx, matchKey{}, result)
}

// MatchFromContext returns the match result stored by ServeHTTP.
func MatchFromContext(ctx context.Context) (*MatchResult, bool) {
	result, ok := ctx.Value(matchKey{}).(*MatchResult)
	return result, ok && result != nil
}

// CapturesFromContext returns the captures of the resolved route, or an
// empty Captures outside a routed request.
func CapturesFromContext(ctx context.Context) matcher.Captures {
	if result, ok := MatchFromContext(ctx); ok {
		return result.Captures
	}
	return matcher.Captures{}
}
