package matcher

import (
	"strings"

	"github.com/vango-dev/routematch/pkg/pattern"
)

// Match matches input against a compiled sequence. The whole input must be
// consumed. It returns the captured values in pattern order.
//
// Match only reads tokens and is safe to call concurrently on a shared
// sequence.
func Match(tokens []pattern.MatcherToken, input string) (Captures, bool) {
	var caps Captures
	rest, ok := sequence(tokens, input, nil, &caps)
	if !ok || rest != "" {
		return Captures{}, false
	}
	return caps, true
}

// Matches reports whether input matches tokens.
func Matches(tokens []pattern.MatcherToken, input string) bool {
	_, ok := Match(tokens, input)
	return ok
}

// sequence matches tokens against a prefix of input and returns the
// unconsumed remainder. outer holds the continuations of the enclosing
// sequences, innermost first, for delimiter lookup.
func sequence(tokens []pattern.MatcherToken, input string, outer [][]pattern.MatcherToken, caps *Captures) (string, bool) {
	rest := input
	for i, t := range tokens {
		switch t.Kind {
		case pattern.Match:
			if !strings.HasPrefix(rest, t.Literal) {
				return "", false
			}
			rest = rest[len(t.Literal):]

		case pattern.CaptureMatch:
			stack := continuation(tokens[i+1:], outer)
			value, ok := capture(t.Capture, rest, stack)
			if !ok {
				return "", false
			}
			caps.set(t.Capture.Key(), value)
			rest = rest[len(value):]

		case pattern.OptionalMatch:
			var inner Captures
			stack := continuation(tokens[i+1:], outer)
			if remaining, ok := sequence(t.Inner, rest, stack, &inner); ok {
				rest = remaining
				caps.merge(inner)
			}
		}
	}
	return rest, true
}

func continuation(next []pattern.MatcherToken, outer [][]pattern.MatcherToken) [][]pattern.MatcherToken {
	stack := make([][]pattern.MatcherToken, 0, len(outer)+1)
	stack = append(stack, next)
	return append(stack, outer...)
}

// capture extracts the value of c from the start of rest.
func capture(c pattern.Capture, rest string, stack [][]pattern.MatcherToken) (string, bool) {
	if c.IsNumbered() {
		value, ok := segments(c.Sections, rest, stack)
		if !ok || !c.Accepts(value) {
			return "", false
		}
		return value, true
	}

	end, found := nextDelimiters(stack).window(rest)
	if !found {
		return "", false
	}
	value := rest[:end]
	if !c.IsMany() && strings.Contains(value, "/") {
		return "", false
	}
	if !c.Accepts(value) {
		return "", false
	}
	return value, true
}

// segments takes exactly n non-empty "/"-separated segments from the start
// of rest. The last segment ends at the next "/" or at the next delimiter,
// whichever comes first.
func segments(n int, rest string, stack [][]pattern.MatcherToken) (string, bool) {
	pos := 0
	for i := 1; i < n; i++ {
		slash := strings.IndexByte(rest[pos:], '/')
		if slash <= 0 {
			return "", false
		}
		pos += slash + 1
	}

	last := rest[pos:]
	end, found := nextDelimiters(stack).window(last)
	if slash := strings.IndexByte(last, '/'); slash >= 0 && (!found || slash < end) {
		end, found = slash, true
	}
	if !found || end == 0 {
		return "", false
	}
	return rest[:pos+end], true
}
