package pattern

import "strings"

// checkDelimiters rejects captures whose extent the matcher could not
// determine: a capture must be followed by a literal, by optional groups
// that each contain a literal, or by the end of the pattern. Numbered
// captures count segments and need no delimiter.
//
// outer holds the continuations of the enclosing levels, innermost first.
func checkDelimiters(pattern string, tokens []MatcherToken, outer [][]MatcherToken) error {
	for i, t := range tokens {
		switch t.Kind {
		case CaptureMatch:
			if t.Capture.IsNumbered() {
				continue
			}
			stack := append([][]MatcherToken{tokens[i+1:]}, outer...)
			if !delimited(stack) {
				offset := strings.Index(pattern, t.Capture.String())
				if offset < 0 {
					offset = 0
				}
				return &ParseError{
					Pattern: pattern,
					Offset:  offset,
					Context: "capture",
					Message: "capture " + t.Capture.String() + " must be followed by a literal",
					Err:     ErrAdjacentCaptures,
				}
			}
		case OptionalMatch:
			stack := append([][]MatcherToken{tokens[i+1:]}, outer...)
			if err := checkDelimiters(pattern, t.Inner, stack); err != nil {
				return err
			}
		}
	}
	return nil
}

func delimited(stack [][]MatcherToken) bool {
	for _, seq := range stack {
		for _, t := range seq {
			switch t.Kind {
			case Match:
				return true
			case CaptureMatch:
				return false
			case OptionalMatch:
				if _, ok := FirstLiteral(t.Inner); !ok {
					return false
				}
			}
		}
	}
	return true
}

// FirstLiteral returns the literal a sequence starts with. A leading
// optional group is searched for its own leading literal. A sequence that
// starts with a capture has none.
func FirstLiteral(tokens []MatcherToken) (string, bool) {
	if len(tokens) == 0 {
		return "", false
	}
	switch t := tokens[0]; t.Kind {
	case Match:
		return t.Literal, true
	case OptionalMatch:
		return FirstLiteral(t.Inner)
	}
	return "", false
}
