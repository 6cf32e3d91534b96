package pattern

import (
	"strconv"
	"strings"
)

// VariantKind identifies what a {...} placeholder captures.
type VariantKind uint8

const (
	// Unnamed is {}: one segment, positional key.
	Unnamed VariantKind = iota
	// ManyUnnamed is {*}: all remaining segments, positional key.
	ManyUnnamed
	// Named is {name}: one segment under name.
	Named
	// ManyNamed is {*:name}: all remaining segments under name.
	ManyNamed
	// NumberedUnnamed is {n}: exactly n segments, positional key.
	NumberedUnnamed
	// NumberedNamed is {n:name}: exactly n segments under name.
	NumberedNamed
)

// String returns the kind name.
func (k VariantKind) String() string {
	switch k {
	case Unnamed:
		return "unnamed"
	case ManyUnnamed:
		return "many_unnamed"
	case Named:
		return "named"
	case ManyNamed:
		return "many_named"
	case NumberedUnnamed:
		return "numbered_unnamed"
	case NumberedNamed:
		return "numbered_named"
	default:
		return "unknown"
	}
}

// CaptureVariant describes the shape of a capture.
type CaptureVariant struct {
	Kind VariantKind

	// Name is set for Named, ManyNamed and NumberedNamed.
	Name string

	// Sections is the segment count for the numbered kinds.
	Sections int
}

// IsNamed reports whether the variant carries a name.
func (v CaptureVariant) IsNamed() bool {
	return v.Kind == Named || v.Kind == ManyNamed || v.Kind == NumberedNamed
}

// IsMany reports whether the variant spans all remaining segments.
func (v CaptureVariant) IsMany() bool {
	return v.Kind == ManyUnnamed || v.Kind == ManyNamed
}

// IsNumbered reports whether the variant takes a fixed segment count.
func (v CaptureVariant) IsNumbered() bool {
	return v.Kind == NumberedUnnamed || v.Kind == NumberedNamed
}

// Capture is a placeholder together with its optional exact-match whitelist.
type Capture struct {
	CaptureVariant

	// Index is the ordinal of an unnamed capture among the unnamed
	// captures of its pattern. It is the capture's key when unnamed.
	Index int

	// Allowed, when non-nil, lists the only values the capture accepts.
	Allowed []string
}

// Key returns the key the captured value is stored under.
func (c Capture) Key() string {
	if c.IsNamed() {
		return c.Name
	}
	return strconv.Itoa(c.Index)
}

// Accepts reports whether value satisfies the whitelist.
func (c Capture) Accepts(value string) bool {
	if c.Allowed == nil {
		return true
	}
	for _, a := range c.Allowed {
		if a == value {
			return true
		}
	}
	return false
}

// String renders the capture in pattern syntax.
func (c Capture) String() string {
	var b strings.Builder
	b.WriteByte('{')
	switch c.Kind {
	case ManyUnnamed:
		b.WriteByte('*')
	case Named:
		b.WriteString(c.Name)
	case ManyNamed:
		b.WriteString("*:")
		b.WriteString(c.Name)
	case NumberedUnnamed:
		b.WriteString(strconv.Itoa(c.Sections))
	case NumberedNamed:
		b.WriteString(strconv.Itoa(c.Sections))
		b.WriteByte(':')
		b.WriteString(c.Name)
	}
	if c.Allowed != nil {
		b.WriteByte('(')
		b.WriteString(strings.Join(c.Allowed, "|"))
		b.WriteByte(')')
	}
	b.WriteByte('}')
	return b.String()
}

// TokenKind identifies a raw parser token.
type TokenKind uint8

const (
	// Separator is "/".
	Separator TokenKind = iota
	// Exact is a literal run that must match exactly.
	Exact
	// CaptureToken is a {...} placeholder.
	CaptureToken
	// QueryBegin is "?".
	QueryBegin
	// QuerySeparator is "&".
	QuerySeparator
	// QueryCapture is ident=value inside the query section.
	QueryCapture
	// FragmentBegin is "#".
	FragmentBegin
	// Optional is a parenthesized group.
	Optional
)

// Token is one element of a parsed pattern.
//
// Which fields are meaningful depends on Kind:
//   - Exact: Literal
//   - CaptureToken: Capture
//   - QueryCapture: Ident, and either Capture or Literal for the value
//   - Optional: Inner
type Token struct {
	Kind    TokenKind
	Literal string
	Ident   string
	Capture *Capture
	Inner   []Token
}

// text returns the literal text of a literal-class token.
func (t Token) text() string {
	switch t.Kind {
	case Separator:
		return "/"
	case Exact:
		return t.Literal
	case QueryBegin:
		return "?"
	case QuerySeparator:
		return "&"
	case FragmentBegin:
		return "#"
	}
	return ""
}

// isLiteral reports whether the token can be folded into a Match run.
func (t Token) isLiteral() bool {
	switch t.Kind {
	case Separator, Exact, QueryBegin, QuerySeparator, FragmentBegin:
		return true
	}
	return false
}

// String renders the token in pattern syntax.
func (t Token) String() string {
	switch t.Kind {
	case CaptureToken:
		return t.Capture.String()
	case QueryCapture:
		if t.Capture != nil {
			return t.Ident + "=" + t.Capture.String()
		}
		return t.Ident + "=" + t.Literal
	case Optional:
		var b strings.Builder
		b.WriteByte('(')
		for _, inner := range t.Inner {
			b.WriteString(inner.String())
		}
		b.WriteByte(')')
		return b.String()
	}
	return t.text()
}

// MatcherKind identifies an optimized token.
type MatcherKind uint8

const (
	// Match is a literal that the input must start with.
	Match MatcherKind = iota
	// CaptureMatch extracts a value.
	CaptureMatch
	// OptionalMatch is a group that may be absent from the input.
	OptionalMatch
)

// MatcherToken is one element of a compiled pattern.
// Sequences of MatcherToken are immutable once compiled and may be shared
// between goroutines.
type MatcherToken struct {
	Kind    MatcherKind
	Literal string
	Capture Capture
	Inner   []MatcherToken
}

// Lit returns a Match token.
func Lit(s string) MatcherToken {
	return MatcherToken{Kind: Match, Literal: s}
}

// Cap returns a Capture token.
func Cap(c Capture) MatcherToken {
	return MatcherToken{Kind: CaptureMatch, Capture: c}
}

// Opt returns an Optional token wrapping inner.
func Opt(inner ...MatcherToken) MatcherToken {
	return MatcherToken{Kind: OptionalMatch, Inner: inner}
}

// String renders the token in pattern syntax.
func (t MatcherToken) String() string {
	switch t.Kind {
	case Match:
		return t.Literal
	case CaptureMatch:
		return t.Capture.String()
	case OptionalMatch:
		return "(" + Format(t.Inner) + ")"
	}
	return ""
}

// Format renders a compiled sequence in pattern syntax.
func Format(tokens []MatcherToken) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.String())
	}
	return b.String()
}

// Keys returns the capture keys of a compiled sequence in pattern order,
// descending into optional groups.
func Keys(tokens []MatcherToken) []string {
	var keys []string
	var walk func([]MatcherToken)
	walk = func(ts []MatcherToken) {
		for _, t := range ts {
			switch t.Kind {
			case CaptureMatch:
				keys = append(keys, t.Capture.Key())
			case OptionalMatch:
				walk(t.Inner)
			}
		}
	}
	walk(tokens)
	return keys
}
