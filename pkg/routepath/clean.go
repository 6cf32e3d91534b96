package routepath

import (
	"errors"
	"net/url"
	"strings"
)

// Path cleaning errors.
var (
	ErrBackslashInPath       = errors.New("path contains backslash")
	ErrNullByteInPath        = errors.New("path contains null byte")
	ErrInvalidPercentEscape  = errors.New("invalid percent escape sequence")
	ErrPathEscapesRoot       = errors.New("path escapes root via ..")
	ErrEncodedSlashInSegment = errors.New("encoded slash (%2F) in single-segment value")
)

// Clean normalizes a request path before matching:
//   - Ensure a leading "/"
//   - Collapse multiple slashes (/blog//post → /blog/post)
//   - Remove "." segments (/blog/./post → /blog/post)
//   - Resolve ".." segments (/blog/../other → /other)
//
// A trailing slash is kept, since patterns decide whether it matters.
//
// The following inputs are rejected with an error:
//   - Paths containing backslash (\)
//   - Paths containing NUL byte (%00)
//   - Invalid percent-escapes (e.g., %GG, %2)
//   - ".." that would escape root (e.g., /../secret)
func Clean(path string) (string, error) {
	if path == "" {
		return "/", nil
	}

	// SECURITY: Reject backslash.
	if strings.Contains(path, "\\") {
		return "", ErrBackslashInPath
	}

	// SECURITY: Reject NUL byte (both literal and encoded).
	if strings.Contains(path, "\x00") || strings.Contains(strings.ToUpper(path), "%00") {
		return "", ErrNullByteInPath
	}

	if strings.Contains(path, "%") {
		if err := validatePercentEscapes(path); err != nil {
			return "", err
		}
	}

	trailing := strings.HasSuffix(path, "/")

	var result []string
	for _, seg := range strings.Split(path, "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(result) == 0 {
				// SECURITY: ".." escapes root.
				return "", ErrPathEscapesRoot
			}
			result = result[:len(result)-1]
		default:
			result = append(result, seg)
		}
	}

	if len(result) == 0 {
		return "/", nil
	}
	cleaned := "/" + strings.Join(result, "/")
	if trailing {
		cleaned += "/"
	}
	return cleaned, nil
}

// validatePercentEscapes checks that all percent-escapes are valid.
// Valid escapes are %XX where X is a hex digit (0-9, a-f, A-F).
func validatePercentEscapes(path string) error {
	i := 0
	for i < len(path) {
		if path[i] == '%' {
			if i+2 >= len(path) {
				return ErrInvalidPercentEscape
			}
			if !isHexDigit(path[i+1]) || !isHexDigit(path[i+2]) {
				return ErrInvalidPercentEscape
			}
			i += 3
		} else {
			i++
		}
	}
	return nil
}

// isHexDigit returns true if c is a valid hex digit.
func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// DecodeSegment decodes a captured value. When many is false the value
// came from a single-segment capture, and a decoded "/" (%2F in the input)
// is rejected as a path smuggling attempt.
func DecodeSegment(segment string, many bool) (string, error) {
	decoded, err := url.PathUnescape(segment)
	if err != nil {
		return "", ErrInvalidPercentEscape
	}

	// SECURITY: reject %2F outside multi-segment captures.
	if !many && strings.Contains(decoded, "/") {
		return "", ErrEncodedSlashInSegment
	}

	return decoded, nil
}

// DecodePathSegments splits a multi-segment value on "/" and decodes each
// segment individually.
func DecodePathSegments(path string) ([]string, error) {
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return nil, nil
	}

	segments := strings.Split(path, "/")
	result := make([]string, 0, len(segments))

	for _, seg := range segments {
		decoded, err := url.PathUnescape(seg)
		if err != nil {
			return nil, ErrInvalidPercentEscape
		}
		result = append(result, decoded)
	}

	return result, nil
}
