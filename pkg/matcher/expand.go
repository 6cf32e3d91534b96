package matcher

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/vango-dev/routematch/pkg/pattern"
)

// Expansion errors.
var (
	ErrMissingValue    = errors.New("missing capture value")
	ErrValueNotAllowed = errors.New("value not in capture whitelist")
	ErrInvalidValue    = errors.New("value does not fit capture")
)

// ExpandError reports the capture that could not be filled.
type ExpandError struct {
	Key   string
	Value string
	Err   error
}

func (e *ExpandError) Error() string {
	if errors.Is(e.Err, ErrMissingValue) {
		return fmt.Sprintf("capture %q: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("capture %q = %q: %v", e.Key, e.Value, e.Err)
}

func (e *ExpandError) Unwrap() error {
	return e.Err
}

// Expand builds the URL a compiled sequence matches for the given values.
//
// Every capture outside optional groups needs a value. An optional group
// is written when all of its own captures have values and at least one
// capture inside it does; otherwise it is left out. Values are written
// as given, without escaping. When no value contains a literal that
// follows its capture, matching the result yields the same values.
func Expand(tokens []pattern.MatcherToken, values map[string]string) (string, error) {
	var b strings.Builder
	if _, err := expand(&b, tokens, values); err != nil {
		return "", err
	}
	return b.String(), nil
}

// expand writes tokens to b and returns how many captures were filled.
func expand(b *strings.Builder, tokens []pattern.MatcherToken, values map[string]string) (int, error) {
	filled := 0
	for _, t := range tokens {
		switch t.Kind {
		case pattern.Match:
			b.WriteString(t.Literal)

		case pattern.CaptureMatch:
			key := t.Capture.Key()
			value, ok := values[key]
			if !ok {
				return filled, &ExpandError{Key: key, Err: ErrMissingValue}
			}
			if err := fits(t.Capture, value); err != nil {
				return filled, &ExpandError{Key: key, Value: value, Err: err}
			}
			b.WriteString(value)
			filled++

		case pattern.OptionalMatch:
			var inner strings.Builder
			n, err := expand(&inner, t.Inner, values)
			switch {
			case errors.Is(err, ErrMissingValue):
				// Group left out.
			case err != nil:
				return filled, err
			case n > 0:
				b.WriteString(inner.String())
				filled += n
			}
		}
	}
	return filled, nil
}

func fits(c pattern.Capture, value string) error {
	if !c.Accepts(value) {
		return ErrValueNotAllowed
	}
	switch {
	case c.IsNumbered():
		parts := strings.Split(value, "/")
		if len(parts) != c.Sections || slices.Contains(parts, "") {
			return ErrInvalidValue
		}
	case c.IsMany():
	default:
		if strings.Contains(value, "/") {
			return ErrInvalidValue
		}
	}
	return nil
}
