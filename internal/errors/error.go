package errors

import (
	"errors"
	"fmt"

	"github.com/vango-dev/routematch/pkg/matcher"
	"github.com/vango-dev/routematch/pkg/pattern"
)

// Category represents the type of error.
type Category string

const (
	CategoryPattern Category = "pattern"
	CategoryRoute   Category = "route"
	CategoryExpand  Category = "expand"
	CategoryConfig  Category = "config"
	CategoryCLI     Category = "cli"
)

// Location points into a route pattern.
type Location struct {
	// Route is the name the pattern was registered under, if any.
	Route string

	// Pattern is the full pattern text.
	Pattern string

	// Offset is the byte offset of the failure within Pattern.
	Offset int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Route != "" {
		return fmt.Sprintf("%s:%d", l.Route, l.Offset)
	}
	return fmt.Sprintf("%q:%d", l.Pattern, l.Offset)
}

// RouteError is a structured error with pattern location, suggestions, and
// documentation.
type RouteError struct {
	// Code is a unique error identifier (e.g., "E200").
	Code string

	// Category is the error type (pattern, route, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is the pattern position where the error occurred.
	Location *Location

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Example is a pattern showing the correct approach.
	Example string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *RouteError) Error() string {
	msg := e.Message
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, msg)
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *RouteError) Unwrap() error {
	return e.Wrapped
}

// WithPattern records the pattern and the offset of the failure.
func (e *RouteError) WithPattern(pattern string, offset int) *RouteError {
	if e.Location == nil {
		e.Location = &Location{}
	}
	e.Location.Pattern = pattern
	e.Location.Offset = offset
	return e
}

// WithRoute records the route name the pattern belongs to.
func (e *RouteError) WithRoute(name string) *RouteError {
	if e.Location == nil {
		e.Location = &Location{}
	}
	e.Location.Route = name
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *RouteError) WithSuggestion(s string) *RouteError {
	e.Suggestion = s
	return e
}

// WithExample adds a pattern example to the error.
func (e *RouteError) WithExample(ex string) *RouteError {
	e.Example = ex
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *RouteError) WithDetail(d string) *RouteError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *RouteError) Wrap(err error) *RouteError {
	e.Wrapped = err
	return e
}

// New creates a RouteError from a registered error code.
func New(code string) *RouteError {
	template, ok := registry[code]
	if !ok {
		return &RouteError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &RouteError{
		Code:       code,
		Category:   template.Category,
		Message:    template.Message,
		Detail:     template.Detail,
		Suggestion: template.Suggestion,
		DocURL:     template.DocURL,
	}
}

// Newf creates a new RouteError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *RouteError {
	return &RouteError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a RouteError.
func FromError(err error, code string) *RouteError {
	if err == nil {
		return nil
	}
	var re *RouteError
	if errors.As(err, &re) {
		return re
	}
	return New(code).Wrap(err)
}

// FromPatternError converts a pattern compilation error, picking the code
// from the failure kind and carrying over the position.
func FromPatternError(err error) *RouteError {
	if err == nil {
		return nil
	}
	var re *RouteError
	if errors.As(err, &re) {
		return re
	}

	code := "E200"
	switch {
	case errors.Is(err, pattern.ErrDuplicateCapture):
		code = "E201"
	case errors.Is(err, pattern.ErrTooDeep):
		code = "E202"
	case errors.Is(err, pattern.ErrAdjacentCaptures):
		code = "E206"
	case errors.Is(err, pattern.ErrEmptyPattern):
		code = "E207"
	}

	e := New(code).Wrap(err)
	var perr *pattern.ParseError
	if errors.As(err, &perr) {
		e.WithPattern(perr.Pattern, perr.Offset)
	}
	return e
}

// FromExpandError converts a URL expansion error.
func FromExpandError(err error) *RouteError {
	if err == nil {
		return nil
	}
	var re *RouteError
	if errors.As(err, &re) {
		return re
	}
	code := "E205"
	if errors.Is(err, matcher.ErrValueNotAllowed) || errors.Is(err, matcher.ErrInvalidValue) {
		code = "E208"
	}
	return New(code).Wrap(err)
}
