package router

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/vango-dev/routematch/internal/errors"
	"github.com/vango-dev/routematch/pkg/matcher"
	"github.com/vango-dev/routematch/pkg/pattern"
	"github.com/vango-dev/routematch/pkg/routepath"
)

// Router holds an ordered route table. Routes are tried in the order they
// were added and the first match wins.
type Router struct {
	mu         sync.RWMutex
	routes     []*Route
	byName     map[string]*Route
	middleware []Middleware

	cache       *pattern.Cache
	patternOpts []pattern.Option
	collapse    bool
	notFound    http.Handler
	logger      *slog.Logger
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the logger used for resolution and registration events.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithPatternOptions sets the options patterns are compiled with.
// Ignored when a cache is configured, since the cache carries its own.
func WithPatternOptions(opts ...pattern.Option) Option {
	return func(r *Router) {
		r.patternOpts = append(r.patternOpts, opts...)
	}
}

// WithCache compiles patterns through a shared cache.
func WithCache(cache *pattern.Cache) Option {
	return func(r *Router) {
		r.cache = cache
	}
}

// WithCollapseSlashes cleans the path of every URL before matching:
// repeated slashes are merged and dot segments resolved.
func WithCollapseSlashes(enabled bool) Option {
	return func(r *Router) {
		r.collapse = enabled
	}
}

// WithNotFound sets the handler ServeHTTP uses when no route matches.
func WithNotFound(h http.Handler) Option {
	return func(r *Router) {
		r.notFound = h
	}
}

// WithMiddleware appends resolution middleware.
func WithMiddleware(mw ...Middleware) Option {
	return func(r *Router) {
		r.middleware = append(r.middleware, mw...)
	}
}

// NewRouter creates a new router.
func NewRouter(opts ...Option) *Router {
	r := &Router{
		byName:   make(map[string]*Route),
		notFound: http.NotFoundHandler(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Add compiles pattern and appends it to the route table under name.
// Compile failures are returned as coded errors wrapping the
// *pattern.ParseError; a name already in use is rejected.
func (r *Router) Add(name, pat string, handler http.Handler) error {
	tokens, err := r.compile(pat)
	if err != nil {
		re := errors.FromPatternError(err).WithRoute(name)
		r.logger.Warn("route pattern rejected",
			slog.String("route", name),
			slog.String("pattern", pat),
			slog.String("code", re.Code),
			slog.Any("error", err))
		return re
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[name]; exists {
		return errors.New("E203").
			WithRoute(name).
			WithDetail("A route named " + name + " is already registered")
	}

	route := &Route{
		Name:    name,
		Pattern: pat,
		Tokens:  tokens,
		Handler: handler,
	}
	r.routes = append(r.routes, route)
	r.byName[name] = route

	r.logger.Debug("route added",
		slog.String("route", name),
		slog.String("pattern", pat),
		slog.String("tokens", pattern.Format(tokens)))
	return nil
}

// MustAdd is like Add but panics on error.
func (r *Router) MustAdd(name, pat string, handler http.Handler) {
	if err := r.Add(name, pat, handler); err != nil {
		panic(err)
	}
}

// Handle sets the handler of an existing route. Routes declared in
// configuration are added without handlers and bound here.
func (r *Router) Handle(name string, handler http.Handler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	old, ok := r.byName[name]
	if !ok {
		return errors.New("E204").
			WithRoute(name).
			WithDetail("No route named " + name + " is registered")
	}

	route := *old
	route.Handler = handler

	// Copy on write: resolvers may be iterating the current slice.
	routes := make([]*Route, len(r.routes))
	for i, rt := range r.routes {
		if rt == old {
			rt = &route
		}
		routes[i] = rt
	}
	r.routes = routes
	r.byName[name] = &route
	return nil
}

// HandleFunc is like Handle for a handler function.
func (r *Router) HandleFunc(name string, fn http.HandlerFunc) error {
	return r.Handle(name, fn)
}

// Use appends resolution middleware.
func (r *Router) Use(mw ...Middleware) {
	r.mu.Lock()
	r.middleware = append(r.middleware, mw...)
	r.mu.Unlock()
}

func (r *Router) compile(pat string) ([]pattern.MatcherToken, error) {
	if r.cache != nil {
		return r.cache.Compile(pat)
	}
	return pattern.Compile(pat, r.patternOpts...)
}

// Routes returns the route table in declaration order.
func (r *Router) Routes() []*Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	routes := make([]*Route, len(r.routes))
	copy(routes, r.routes)
	return routes
}

// Route returns the route registered under name.
func (r *Router) Route(name string) (*Route, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	route, ok := r.byName[name]
	return route, ok
}

// Resolve returns the first route, in declaration order, whose pattern
// matches url, running the middleware chain around the lookup. A URL the
// router cannot clean (with slash collapsing enabled) never resolves.
func (r *Router) Resolve(ctx context.Context, url string) (*MatchResult, bool) {
	input, err := r.prepare(routepath.Split(url))
	if err != nil {
		r.logger.Debug("url rejected", slog.String("url", url), slog.Any("error", err))
		return nil, false
	}
	return r.resolveChain(ctx, input)
}

func (r *Router) resolveChain(ctx context.Context, input string) (*MatchResult, bool) {
	r.mu.RLock()
	mw := r.middleware
	r.mu.RUnlock()
	return ComposeMiddleware(ctx, input, mw, r.lookup)
}

// lookup is the innermost resolver.
func (r *Router) lookup(ctx context.Context, url string) (*MatchResult, bool) {
	r.mu.RLock()
	routes := r.routes
	r.mu.RUnlock()

	for _, route := range routes {
		if caps, ok := matcher.Match(route.Tokens, url); ok {
			r.logger.Debug("route resolved",
				slog.String("url", url),
				slog.String("route", route.Name),
				slog.Int("captures", caps.Len()))
			return &MatchResult{Route: route, Captures: caps, URL: url}, true
		}
	}

	r.logger.Debug("no route matched", slog.String("url", url), slog.Int("routes", len(routes)))
	return nil, false
}

func (r *Router) prepare(parts routepath.Parts) (string, error) {
	if r.collapse {
		cleaned, err := routepath.Clean(parts.Path)
		if err != nil {
			return "", err
		}
		parts.Path = cleaned
	}
	return parts.String(), nil
}

// URL builds the URL of the named route from capture values.
func (r *Router) URL(name string, values map[string]string) (string, error) {
	route, ok := r.Route(name)
	if !ok {
		return "", errors.New("E204").
			WithRoute(name).
			WithDetail("No route named " + name + " is registered")
	}

	url, err := matcher.Expand(route.Tokens, values)
	if err != nil {
		return "", errors.FromExpandError(err).WithRoute(name)
	}
	return url, nil
}

// ServeHTTP resolves the request URL and dispatches to the route handler.
// The match result is available to the handler via MatchFromContext and
// CapturesFromContext.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	input, err := r.prepare(routepath.FromURL(req.URL))
	if err != nil {
		r.logger.Debug("request path rejected",
			slog.String("path", req.URL.EscapedPath()),
			slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	result, ok := r.resolveChain(req.Context(), input)
	if !ok {
		r.notFound.ServeHTTP(w, req)
		return
	}
	if result.Route.Handler == nil {
		http.Error(w, http.StatusText(http.StatusNotImplemented), http.StatusNotImplemented)
		return
	}

	result.Route.Handler.ServeHTTP(w, req.WithContext(WithMatch(req.Context(), result)))
}
