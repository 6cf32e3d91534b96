package pattern

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of compiled patterns kept by NewCache when
// no size is given.
const DefaultCacheSize = 256

// Cache memoizes Compile. It is safe for concurrent use; the returned
// sequences are shared and must not be modified.
type Cache struct {
	entries *lru.Cache[string, []MatcherToken]
	opts    []Option
}

// NewCache creates a cache holding up to size compiled patterns, each
// compiled with opts.
func NewCache(size int, opts ...Option) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	entries, err := lru.New[string, []MatcherToken](size)
	if err != nil {
		return nil, err
	}
	return &Cache{entries: entries, opts: opts}, nil
}

// Compile returns the compiled form of pattern, compiling it on a miss.
// Compilation errors are not cached.
func (c *Cache) Compile(pattern string) ([]MatcherToken, error) {
	key := newOptions(c.opts).key() + "\x00" + pattern
	if tokens, ok := c.entries.Get(key); ok {
		return tokens, nil
	}
	tokens, err := Compile(pattern, c.opts...)
	if err != nil {
		return nil, err
	}
	c.entries.Add(key, tokens)
	return tokens, nil
}

// Len returns the number of cached patterns.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Purge drops every cached pattern.
func (c *Cache) Purge() {
	c.entries.Purge()
}
