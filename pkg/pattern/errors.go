package pattern

import (
	"errors"
	"fmt"
)

// Pattern compilation errors.
var (
	ErrEmptyPattern     = errors.New("empty pattern")
	ErrDuplicateCapture = errors.New("duplicate capture name")
	ErrAdjacentCaptures = errors.New("capture is not delimited from the following capture")
	ErrTooDeep          = errors.New("optional groups nested too deeply")
	ErrSyntax           = errors.New("invalid pattern syntax")
)

// ParseError reports where and in which sub-grammar a pattern failed to
// compile.
type ParseError struct {
	// Pattern is the full pattern string.
	Pattern string

	// Offset is the byte offset of the unconsumed input.
	Offset int

	// Context names the grammar rule that failed ("capture", "query", ...).
	Context string

	// Message is a short description of the failure.
	Message string

	// Err is one of the package sentinel errors.
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at offset %d in %q: %s", e.Context, e.Offset, e.Pattern, e.Message)
}

// Unwrap returns the sentinel error for errors.Is support.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Remaining returns the unconsumed part of the pattern.
func (e *ParseError) Remaining() string {
	if e.Offset < 0 || e.Offset > len(e.Pattern) {
		return ""
	}
	return e.Pattern[e.Offset:]
}
