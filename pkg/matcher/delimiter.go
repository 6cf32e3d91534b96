package matcher

import (
	"strings"

	"github.com/vango-dev/routematch/pkg/pattern"
)

// delimiters is the set of literals that may end a capture.
type delimiters struct {
	literals []string

	// toEnd allows the capture to run to the end of the input. It is set
	// when the search crossed an optional group, since that group may be
	// absent, or when no literal follows the capture at all.
	toEnd bool
}

// nextDelimiters scans forward from a capture. stack holds the rest of the
// capture's own sequence followed by the rest of each enclosing sequence,
// innermost first, so a capture at the tail of an optional group is
// delimited by whatever follows the group.
func nextDelimiters(stack [][]pattern.MatcherToken) delimiters {
	var d delimiters
	for _, seq := range stack {
		for _, t := range seq {
			switch t.Kind {
			case pattern.Match:
				if t.Literal == "" {
					continue
				}
				d.literals = append(d.literals, t.Literal)
				return d
			case pattern.OptionalMatch:
				if s, ok := pattern.FirstLiteral(t.Inner); ok && s != "" {
					d.literals = append(d.literals, s)
				}
				d.toEnd = true
			case pattern.CaptureMatch:
				return d
			}
		}
	}
	d.toEnd = true
	return d
}

// window returns how many bytes of rest a capture may consume: up to the
// earliest occurrence of any delimiter, or all of rest when toEnd is set
// and no delimiter occurs.
func (d delimiters) window(rest string) (int, bool) {
	end := -1
	for _, lit := range d.literals {
		if i := strings.Index(rest, lit); i >= 0 && (end < 0 || i < end) {
			end = i
		}
	}
	if end >= 0 {
		return end, true
	}
	if d.toEnd {
		return len(rest), true
	}
	return 0, false
}
