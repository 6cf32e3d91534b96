package router

import (
	"context"
	"fmt"
	"testing"
)

// BenchmarkResolveStatic benchmarks resolving a literal route.
func BenchmarkResolveStatic(b *testing.B) {
	r := NewRouter(WithLogger(quietLogger()))
	for _, p := range []string{"/", "/about", "/contact", "/pricing", "/features"} {
		r.MustAdd(p, p, nil)
	}

	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Resolve(ctx, "/pricing")
	}
}

// BenchmarkResolveCaptures benchmarks a route with an optional section.
func BenchmarkResolveCaptures(b *testing.B) {
	r := NewRouter(WithLogger(quietLogger()))
	r.MustAdd("user", "/users/{user}/posts/{post}(/comments/{comment})", nil)

	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Resolve(ctx, "/users/123/posts/456/comments/789")
	}
}

// BenchmarkResolveManyRoutes benchmarks a miss against a large table,
// the worst case for declaration-order dispatch.
func BenchmarkResolveManyRoutes(b *testing.B) {
	for _, n := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("routes=%d", n), func(b *testing.B) {
			r := NewRouter(WithLogger(quietLogger()))
			for i := 0; i < n; i++ {
				r.MustAdd(fmt.Sprintf("r%d", i), fmt.Sprintf("/section%d/{id}", i), nil)
			}

			ctx := context.Background()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				r.Resolve(ctx, "/missing/1")
			}
		})
	}
}

// BenchmarkURL benchmarks reverse routing.
func BenchmarkURL(b *testing.B) {
	r := NewRouter(WithLogger(quietLogger()))
	r.MustAdd("post", "/blog/{year}/{slug}", nil)
	values := map[string]string{"year": "2024", "slug": "hello"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = r.URL("post", values)
	}
}
