// Package routepath splits and cleans request URLs before they are matched
// against route patterns.
package routepath

import (
	"net/url"
	"strings"
)

// Parts is a URL reduced to what route patterns match against. Values are
// kept as they appear on the wire; nothing is decoded.
type Parts struct {
	// Path is the escaped path.
	Path string

	// Query is the raw query without the leading "?".
	Query string

	// Fragment is the raw fragment without the leading "#".
	Fragment string

	// HasQuery is set when a "?" was present, even with an empty query.
	HasQuery bool

	// HasFragment is set when a "#" was present, even with an empty fragment.
	HasFragment bool
}

// Split separates a raw "path?query#fragment" string. The fragment starts at
// the first "#" and the query at the first "?" before it.
func Split(raw string) Parts {
	var p Parts
	raw, p.Fragment, p.HasFragment = strings.Cut(raw, "#")
	p.Path, p.Query, p.HasQuery = strings.Cut(raw, "?")
	return p
}

// FromURL extracts the matchable parts of u. An empty path becomes "/".
func FromURL(u *url.URL) Parts {
	p := Parts{
		Path:        u.EscapedPath(),
		Query:       u.RawQuery,
		HasQuery:    u.ForceQuery || u.RawQuery != "",
		Fragment:    u.EscapedFragment(),
		HasFragment: u.Fragment != "",
	}
	if p.Path == "" {
		p.Path = "/"
	}
	return p
}

// String reassembles the parts into the string the matcher consumes.
func (p Parts) String() string {
	n := len(p.Path) + len(p.Query) + len(p.Fragment) + 2
	var b strings.Builder
	b.Grow(n)
	b.WriteString(p.Path)
	if p.HasQuery {
		b.WriteByte('?')
		b.WriteString(p.Query)
	}
	if p.HasFragment {
		b.WriteByte('#')
		b.WriteString(p.Fragment)
	}
	return b.String()
}
