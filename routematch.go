// Package routematch provides the public API for compiling route patterns,
// matching URLs against them and dispatching over a route table.
//
// This is the recommended import for most applications:
//
//	import "github.com/vango-dev/routematch"
//
// Usage:
//
//	tokens, err := routematch.Compile("/user/{id}(/posts/{post})")
//	caps, ok := routematch.Match(tokens, "/user/42/posts/7")
//	// caps.Get("id") == "42", caps.Get("post") == "7"
//
//	r, err := routematch.Load(".") // routes from routematch.json
//	r.HandleFunc("user", showUser)
//	http.ListenAndServe(":8080", r)
package routematch

import (
	"github.com/vango-dev/routematch/pkg/matcher"
	"github.com/vango-dev/routematch/pkg/pattern"
	"github.com/vango-dev/routematch/pkg/router"
)

// =============================================================================
// Patterns (re-export from pkg/pattern)
// =============================================================================

// MatcherToken is one element of a compiled pattern.
type MatcherToken = pattern.MatcherToken

// ParseError reports where and why a pattern was rejected.
type ParseError = pattern.ParseError

// Option configures pattern compilation.
type Option = pattern.Option

// Compile parses and optimizes a route pattern.
var Compile = pattern.Compile

// MustCompile is like Compile but panics on error.
var MustCompile = pattern.MustCompile

// WithTrailingSlash controls the optional trailing "/" appended to path
// patterns ending in a literal or an optional group.
var WithTrailingSlash = pattern.WithTrailingSlash

// WithMaxDepth limits optional-section nesting.
var WithMaxDepth = pattern.WithMaxDepth

// =============================================================================
// Matching (re-export from pkg/matcher)
// =============================================================================

// Captures holds captured values in pattern order.
type Captures = matcher.Captures

// Match matches input against a compiled pattern.
var Match = matcher.Match

// Expand fills a compiled pattern with capture values.
var Expand = matcher.Expand

// =============================================================================
// Routing (re-export from pkg/router)
// =============================================================================

// Router dispatches over an ordered route table.
type Router = router.Router

// Route is a named, compiled pattern.
type Route = router.Route

// MatchResult is the outcome of a successful resolution.
type MatchResult = router.MatchResult

// NewRouter creates an empty router.
var NewRouter = router.NewRouter

// CapturesFromContext returns the captures of the route serving a request.
var CapturesFromContext = router.CapturesFromContext

// Bind populates a struct from captures using `capture` tags.
var Bind = router.Bind
