package pattern

import "strings"

// Optimize folds a parsed token sequence into matcher tokens.
//
// Adjacent literal tokens are merged into a single Match. Query terms
// contribute "ident=" to the surrounding literal run. Optional groups are
// optimized recursively. When appendSlash is set and the sequence ends in
// a literal or an optional group, outside any query or fragment, an
// optional "/" is appended so "/user" also matches "/user/". A trailing
// capture gets no slash, and neither does a group ending in "/" or in a
// many capture. The flag only applies to the outermost level.
func Optimize(tokens []Token, appendSlash bool) []MatcherToken {
	var (
		optimized       []MatcherToken
		run             strings.Builder
		queryOrFragment bool
	)

	flush := func() {
		if run.Len() > 0 {
			optimized = append(optimized, Lit(run.String()))
			run.Reset()
		}
	}

	for _, t := range tokens {
		switch t.Kind {
		case QueryBegin, FragmentBegin:
			queryOrFragment = true
			run.WriteString(t.text())
		case Separator, QuerySeparator, Exact:
			run.WriteString(t.text())
		case CaptureToken:
			flush()
			optimized = append(optimized, Cap(*t.Capture))
		case QueryCapture:
			queryOrFragment = true
			run.WriteString(t.Ident)
			run.WriteByte('=')
			if t.Capture != nil {
				flush()
				optimized = append(optimized, Cap(*t.Capture))
			} else {
				run.WriteString(t.Literal)
			}
		case Optional:
			flush()
			optimized = append(optimized, Opt(Optimize(t.Inner, false)...))
			if hasQueryOrFragment(t.Inner) {
				queryOrFragment = true
			}
		}
	}
	flush()

	if appendSlash && !queryOrFragment && wantsSlash(optimized) {
		optimized = append(optimized, Opt(Lit("/")))
	}
	return optimized
}

// wantsSlash reports whether an optional "/" belongs after tokens: they end
// in a literal other than "/", or in an optional group. A group that ends in
// "/" already allows it, and a many capture at the end of a group would
// swallow it.
func wantsSlash(tokens []MatcherToken) bool {
	if len(tokens) == 0 {
		return false
	}
	switch last := tokens[len(tokens)-1]; last.Kind {
	case Match:
		return !strings.HasSuffix(last.Literal, "/")
	case OptionalMatch:
		return !endsIn(last.Inner, func(t MatcherToken) bool {
			if t.Kind == CaptureMatch {
				return t.Capture.IsMany()
			}
			return strings.HasSuffix(t.Literal, "/")
		})
	}
	return false
}

// endsIn reports whether the last token of tokens satisfies pred, looking
// into trailing optional groups.
func endsIn(tokens []MatcherToken, pred func(MatcherToken) bool) bool {
	if len(tokens) == 0 {
		return false
	}
	last := tokens[len(tokens)-1]
	if last.Kind == OptionalMatch {
		return endsIn(last.Inner, pred)
	}
	return pred(last)
}

// hasQueryOrFragment reports whether a raw sequence opens a query or
// fragment section at any depth.
func hasQueryOrFragment(tokens []Token) bool {
	for _, t := range tokens {
		switch t.Kind {
		case QueryBegin, FragmentBegin, QueryCapture:
			return true
		case Optional:
			if hasQueryOrFragment(t.Inner) {
				return true
			}
		}
	}
	return false
}

// Coalesce merges adjacent Match tokens at every nesting level and drops
// empty ones. Optimized sequences are already coalesced, so applying it to
// the output of Optimize returns an equal sequence.
func Coalesce(tokens []MatcherToken) []MatcherToken {
	out := make([]MatcherToken, 0, len(tokens))
	for _, t := range tokens {
		switch t.Kind {
		case Match:
			if t.Literal == "" {
				continue
			}
			if n := len(out); n > 0 && out[n-1].Kind == Match {
				out[n-1].Literal += t.Literal
				continue
			}
			out = append(out, t)
		case OptionalMatch:
			out = append(out, Opt(Coalesce(t.Inner)...))
		default:
			out = append(out, t)
		}
	}
	return out
}

// Compile parses and optimizes a pattern. The result is immutable and may
// be cached and shared.
func Compile(pattern string, opts ...Option) ([]MatcherToken, error) {
	o := newOptions(opts)
	tokens, err := Parse(pattern, opts...)
	if err != nil {
		return nil, err
	}
	compiled := Optimize(tokens, o.trailingSlash)
	if err := checkDelimiters(pattern, compiled, nil); err != nil {
		return nil, err
	}
	return compiled, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(pattern string, opts ...Option) []MatcherToken {
	tokens, err := Compile(pattern, opts...)
	if err != nil {
		panic(err)
	}
	return tokens
}
