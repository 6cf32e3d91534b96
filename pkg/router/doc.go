// Package router dispatches URLs over an ordered table of named route
// patterns.
//
// Routes are compiled once when added and tried in declaration order at
// resolution time. The first pattern that matches the whole URL wins, so
// more specific routes should be added before general ones.
//
// # Usage
//
//	r := router.NewRouter(router.WithLogger(logger))
//	r.MustAdd("post", "/blog/{slug}", postHandler)
//	r.MustAdd("user", "/user/{id}(/posts/{post})", userHandler)
//	r.MustAdd("files", "/files/{*:path}", filesHandler)
//
//	result, ok := r.Resolve(ctx, "/user/42/posts/7")
//	// result.Route.Name == "user"
//	// result.Captures.Get("post") == "7"
//
//	url, err := r.URL("post", map[string]string{"slug": "hello"})
//	// url == "/blog/hello"
//
// # HTTP
//
// Router implements http.Handler. Handlers read their captures with
// CapturesFromContext and can bind them to a struct:
//
//	type userParams struct {
//	    ID   int  `capture:"id"`
//	    Post *int `capture:"post"`
//	}
//
//	func userHandler(w http.ResponseWriter, req *http.Request) {
//	    var p userParams
//	    if err := router.Bind(router.CapturesFromContext(req.Context()), &p); err != nil {
//	        http.Error(w, err.Error(), http.StatusBadRequest)
//	        return
//	    }
//	}
//
// # Middleware
//
// Middleware wraps resolution rather than request handling, so it sees
// every Resolve call as well as every request served:
//
//	r.Use(router.MiddlewareFunc(func(ctx context.Context, url string, next router.Resolver) (*router.MatchResult, bool) {
//	    result, ok := next(ctx, url)
//	    if !ok {
//	        log.Printf("miss: %s", url)
//	    }
//	    return result, ok
//	}))
package router
