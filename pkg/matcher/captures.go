package matcher

import "iter"

// Entry is one captured key and value.
type Entry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Captures is the ordered result of a successful match. Keys appear in the
// order their captures appear in the pattern. Unnamed captures are keyed by
// their position among the unnamed captures ("0", "1", ...).
type Captures struct {
	entries []Entry
}

// Get returns the value stored under key, or "" if there is none.
func (c Captures) Get(key string) string {
	v, _ := c.Lookup(key)
	return v
}

// Lookup returns the value stored under key and whether it was present.
func (c Captures) Lookup(key string) (string, bool) {
	for _, e := range c.entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// Len returns the number of captured values.
func (c Captures) Len() int {
	return len(c.entries)
}

// Keys returns the captured keys in order.
func (c Captures) Keys() []string {
	keys := make([]string, len(c.entries))
	for i, e := range c.entries {
		keys[i] = e.Key
	}
	return keys
}

// Entries returns a copy of the captured entries in order.
func (c Captures) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// All iterates over the captured entries in order.
func (c Captures) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, e := range c.entries {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// Map returns the captures as an unordered map.
func (c Captures) Map() map[string]string {
	m := make(map[string]string, len(c.entries))
	for _, e := range c.entries {
		m[e.Key] = e.Value
	}
	return m
}

// set stores value under key. A key that is already present keeps its
// position and takes the new value.
func (c *Captures) set(key, value string) {
	for i := range c.entries {
		if c.entries[i].Key == key {
			c.entries[i].Value = value
			return
		}
	}
	c.entries = append(c.entries, Entry{Key: key, Value: value})
}

// merge appends the entries of other.
func (c *Captures) merge(other Captures) {
	for _, e := range other.entries {
		c.set(e.Key, e.Value)
	}
}

// NewCaptures builds a Captures from entries, mainly for tests and for
// callers that assemble captures by hand.
func NewCaptures(entries ...Entry) Captures {
	var c Captures
	for _, e := range entries {
		c.set(e.Key, e.Value)
	}
	return c
}
