package pattern

import "strconv"

// DefaultMaxDepth is the default limit on optional-group nesting.
const DefaultMaxDepth = 32

// Option configures pattern compilation.
type Option func(*options)

type options struct {
	trailingSlash bool
	maxDepth      int
}

func newOptions(opts []Option) options {
	o := options{
		trailingSlash: true,
		maxDepth:      DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// key identifies the option set for caching.
func (o options) key() string {
	return strconv.FormatBool(o.trailingSlash) + ":" + strconv.Itoa(o.maxDepth)
}

// WithTrailingSlash controls whether a path pattern ending in a literal or
// an optional group also matches the same input with one trailing "/".
// Enabled by default.
func WithTrailingSlash(enabled bool) Option {
	return func(o *options) {
		o.trailingSlash = enabled
	}
}

// WithMaxDepth limits how deeply optional groups may nest. Zero or a
// negative value removes the limit, which should only be done for trusted
// patterns.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}
