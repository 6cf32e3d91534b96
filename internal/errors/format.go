package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// ANSI color codes for terminal output.
const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorBlue  = "\033[34m"
	colorCyan  = "\033[36m"
	colorWhite = "\033[37m"
	colorGray  = "\033[90m"
	colorBold  = "\033[1m"
)

// colorEnabled controls whether ANSI colors are used.
var colorEnabled = true

// DisableColors disables ANSI color output.
func DisableColors() {
	colorEnabled = false
}

// EnableColors enables ANSI color output.
func EnableColors() {
	colorEnabled = true
}

// color wraps text in ANSI color codes if colors are enabled.
func color(code, text string) string {
	if !colorEnabled {
		return text
	}
	return code + text + colorReset
}

func red(text string) string   { return color(colorRed, text) }
func blue(text string) string  { return color(colorBlue, text) }
func cyan(text string) string  { return color(colorCyan, text) }
func white(text string) string { return color(colorWhite, text) }
func gray(text string) string  { return color(colorGray, text) }
func bold(text string) string  { return color(colorBold, text) }

// Format returns a formatted error message for terminal display.
//
// The failing pattern, when known, is printed with a caret under the
// offset the parser stopped at.
func (e *RouteError) Format() string {
	var b strings.Builder
	line := func(indent int, parts ...string) {
		b.WriteString(strings.Repeat(" ", indent))
		for _, p := range parts {
			b.WriteString(p)
		}
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	if e.Code != "" {
		line(0, red(bold("ERROR ")), white(bold(e.Code+": ")), white(e.Message))
	} else {
		line(0, red(bold("ERROR: ")), white(e.Message))
	}
	b.WriteByte('\n')

	if loc := e.Location; loc != nil {
		if loc.Route != "" {
			line(2, cyan("route "+loc.Route))
			b.WriteByte('\n')
		}
		if loc.Pattern != "" {
			line(2, red("→ "), loc.Pattern)
			line(4+caretColumn(loc.Pattern, loc.Offset), red("^"))
			b.WriteByte('\n')
		}
	}

	if e.Wrapped != nil {
		line(2, gray(e.Wrapped.Error()))
		b.WriteByte('\n')
	}

	if e.Detail != "" {
		for _, l := range wrapText(e.Detail, 70) {
			line(2, l)
		}
		b.WriteByte('\n')
	}

	if e.Suggestion != "" {
		line(2, cyan("Hint: "), e.Suggestion)
		b.WriteByte('\n')
	}

	if e.Example != "" {
		line(2, cyan("Example:"))
		for _, l := range strings.Split(e.Example, "\n") {
			line(4, l)
		}
		b.WriteByte('\n')
	}

	if e.DocURL != "" {
		line(2, gray("Learn more: "), blue(e.DocURL))
	}

	return b.String()
}

// FormatCompact returns a compact single-line error format.
func (e *RouteError) FormatCompact() string {
	var b strings.Builder

	if e.Location != nil {
		b.WriteString(e.Location.String())
		b.WriteString(": ")
	}

	if e.Code != "" {
		b.WriteString(e.Code)
		b.WriteString(": ")
	}

	b.WriteString(e.Message)

	return b.String()
}

// jsonError is the wire form of a RouteError.
type jsonError struct {
	Code       string        `json:"code,omitempty"`
	Category   Category      `json:"category"`
	Message    string        `json:"message"`
	Detail     string        `json:"detail,omitempty"`
	Location   *jsonLocation `json:"location,omitempty"`
	Cause      string        `json:"cause,omitempty"`
	Suggestion string        `json:"suggestion,omitempty"`
	DocURL     string        `json:"docUrl,omitempty"`
}

type jsonLocation struct {
	Route   string `json:"route"`
	Pattern string `json:"pattern"`
	Offset  int    `json:"offset"`
}

// FormatJSON returns the error as a JSON object.
func (e *RouteError) FormatJSON() string {
	out := jsonError{
		Code:       e.Code,
		Category:   e.Category,
		Message:    e.Message,
		Detail:     e.Detail,
		Suggestion: e.Suggestion,
		DocURL:     e.DocURL,
	}
	if e.Location != nil {
		out.Location = &jsonLocation{
			Route:   e.Location.Route,
			Pattern: e.Location.Pattern,
			Offset:  e.Location.Offset,
		}
	}
	if e.Wrapped != nil {
		out.Cause = e.Wrapped.Error()
	}

	var b strings.Builder
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return fmt.Sprintf(`{"message":%q}`, e.Message)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// wrapText wraps text to the specified width.
func wrapText(text string, width int) []string {
	if text == "" {
		return nil
	}
	if len(text) <= width {
		return []string{text}
	}

	var lines []string
	words := strings.Fields(text)
	var current strings.Builder

	for _, word := range words {
		if current.Len()+len(word)+1 > width {
			if current.Len() > 0 {
				lines = append(lines, current.String())
				current.Reset()
			}
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}

	if current.Len() > 0 {
		lines = append(lines, current.String())
	}

	return lines
}

// caretColumn converts a byte offset into a rune column.
func caretColumn(pattern string, offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(pattern) {
		offset = len(pattern)
	}
	return utf8.RuneCountInString(pattern[:offset])
}

// PrintError prints a formatted error to w.
func PrintError(w io.Writer, err error) {
	var re *RouteError
	if errors.As(err, &re) {
		fmt.Fprint(w, re.Format())
	} else {
		fmt.Fprintf(w, "\n%s %s\n\n", red(bold("ERROR:")), err.Error())
	}
}

