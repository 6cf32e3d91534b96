package pattern

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// invalidIdentChars may not appear in capture names or query keys.
	invalidIdentChars = " -*/+#?&^@%$'\"`~;,.|\\{}[]()<>=\t\n"

	// invalidExactChars may not appear in literal runs.
	invalidExactChars = " /?&#=\t\n()|[]{}"
)

// parser holds the state of one pattern parse. Each rule consumes a prefix
// of the remaining input and either succeeds or records a failure and
// rewinds to where it started.
type parser struct {
	input    string
	pos      int
	depth    int
	maxDepth int

	// unnamed counts unnamed captures seen so far; it becomes Capture.Index.
	unnamed int
	// names lists capture names seen so far, in order.
	names []string

	// furthest is the failure recorded at the largest offset. Later
	// failures at the same offset replace it unless it is pinned.
	furthest *ParseError
	pinned   bool
	// fatal aborts the parse regardless of remaining alternatives.
	fatal *ParseError
}

// state is a rewind point.
type state struct {
	pos     int
	unnamed int
	names   int
}

func newParser(input string, maxDepth int) *parser {
	return &parser{input: input, maxDepth: maxDepth}
}

func (p *parser) mark() state {
	return state{pos: p.pos, unnamed: p.unnamed, names: len(p.names)}
}

func (p *parser) reset(s state) {
	p.pos = s.pos
	p.unnamed = s.unnamed
	p.names = p.names[:s.names]
}

func (p *parser) rest() string {
	return p.input[p.pos:]
}

func (p *parser) eof() bool {
	return p.pos >= len(p.input)
}

// fail records a recoverable failure at the current offset.
func (p *parser) fail(context, message string) {
	p.failAt(p.pos, context, message)
}

func (p *parser) failAt(offset int, context, message string) {
	if p.furthest != nil && (p.furthest.Offset > offset || p.pinned && p.furthest.Offset == offset) {
		return
	}
	p.pinned = false
	p.furthest = &ParseError{
		Pattern: p.input,
		Offset:  offset,
		Context: context,
		Message: message,
		Err:     ErrSyntax,
	}
}

// pin records a failure that outranks every other failure at the same
// offset.
func (p *parser) pin(offset int, context, message string) {
	if p.furthest != nil && p.furthest.Offset > offset {
		return
	}
	p.pinned = false
	p.failAt(offset, context, message)
	p.pinned = true
}

// abort records an unrecoverable failure.
func (p *parser) abort(offset int, context, message string, err error) {
	if p.fatal != nil {
		return
	}
	p.fatal = &ParseError{
		Pattern: p.input,
		Offset:  offset,
		Context: context,
		Message: message,
		Err:     err,
	}
}

func (p *parser) aborted() bool {
	return p.fatal != nil
}

// peek returns the next rune without consuming it.
func (p *parser) peek() (rune, bool) {
	if p.eof() {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(p.rest())
	return r, true
}

// char consumes c if it is next.
func (p *parser) char(c byte, context string) bool {
	if !p.eof() && p.input[p.pos] == c {
		p.pos++
		return true
	}
	p.fail(context, "expected '"+string(c)+"'")
	return false
}

// tag consumes s if the input starts with it.
func (p *parser) tag(s, context string) bool {
	if strings.HasPrefix(p.rest(), s) {
		p.pos += len(s)
		return true
	}
	p.fail(context, "expected \""+s+"\"")
	return false
}

// isNot consumes a maximal non-empty run of runes not contained in invalid.
func (p *parser) isNot(invalid, context string) (string, bool) {
	start := p.pos
	for !p.eof() {
		r, size := utf8.DecodeRuneInString(p.rest())
		if strings.ContainsRune(invalid, r) || unicode.IsSpace(r) {
			break
		}
		p.pos += size
	}
	if p.pos == start {
		p.fail(context, "expected at least one valid character")
		return "", false
	}
	return p.input[start:p.pos], true
}

// validIdent consumes a capture name or query key. The first rune must not
// be a digit; digits are reserved for numbered captures.
func (p *parser) validIdent() (string, bool) {
	r, ok := p.peek()
	if !ok {
		p.fail("valid ident", "unexpected end of pattern")
		return "", false
	}
	if r >= '0' && r <= '9' {
		p.fail("valid ident", "identifier may not start with a digit")
		return "", false
	}
	return p.isNot(invalidIdentChars, "valid ident")
}

// validExact consumes a literal run that is matched byte-for-byte later.
func (p *parser) validExact() (string, bool) {
	return p.isNot(invalidExactChars, "valid exact match")
}

// digits consumes a non-empty run of ASCII digits.
func (p *parser) digits() (string, bool) {
	start := p.pos
	for !p.eof() && p.input[p.pos] >= '0' && p.input[p.pos] <= '9' {
		p.pos++
	}
	if p.pos == start {
		p.fail("capture", "expected digits")
		return "", false
	}
	return p.input[start:p.pos], true
}

// captureVariant parses the inside of a capture. Alternatives are tried
// from most to least specific.
func (p *parser) captureVariant() (CaptureVariant, bool) {
	start := p.mark()

	if r, ok := p.peek(); ok && (r == '}' || r == '(') {
		return CaptureVariant{Kind: Unnamed}, true
	}

	if p.tag("*:", "capture") {
		if name, ok := p.validIdent(); ok {
			return CaptureVariant{Kind: ManyNamed, Name: name}, true
		}
		p.reset(start)
	}

	if p.char('*', "capture") {
		return CaptureVariant{Kind: ManyUnnamed}, true
	}

	if name, ok := p.validIdent(); ok {
		return CaptureVariant{Kind: Named, Name: name}, true
	}

	if num, ok := p.digits(); ok {
		numEnd := p.mark()
		if p.char(':', "capture") {
			if name, ok := p.validIdent(); ok {
				n, ok := p.sections(num, start.pos)
				return CaptureVariant{Kind: NumberedNamed, Name: name, Sections: n}, ok
			}
		}
		p.reset(numEnd)
		n, ok := p.sections(num, start.pos)
		return CaptureVariant{Kind: NumberedUnnamed, Sections: n}, ok
	}

	p.reset(start)
	return CaptureVariant{}, false
}

// sections converts a numbered capture count.
func (p *parser) sections(num string, offset int) (int, bool) {
	n, err := strconv.Atoi(num)
	if err != nil {
		p.abort(offset, "capture", "segment count out of range", ErrSyntax)
		return 0, false
	}
	if n == 0 {
		p.abort(offset, "capture", "segment count must be at least 1", ErrSyntax)
		return 0, false
	}
	return n, true
}

// allowedMatches parses "(a|b|c)".
func (p *parser) allowedMatches() ([]string, bool) {
	start := p.mark()
	if !p.char('(', "capture") {
		return nil, false
	}
	var allowed []string
	for {
		s, ok := p.validExact()
		if !ok {
			p.reset(start)
			return nil, false
		}
		allowed = append(allowed, s)
		if p.char('|', "capture") {
			continue
		}
		break
	}
	if !p.char(')', "capture") {
		p.reset(start)
		return nil, false
	}
	return allowed, true
}

// capture parses "{variant}" or "{variant(a|b)}".
func (p *parser) capture() (*Capture, bool) {
	start := p.mark()
	if !p.char('{', "capture") {
		return nil, false
	}
	variant, ok := p.captureVariant()
	if !ok {
		p.reset(start)
		return nil, false
	}
	c := &Capture{CaptureVariant: variant}

	if r, ok := p.peek(); ok && r == '(' {
		allowed, ok := p.allowedMatches()
		if !ok {
			p.reset(start)
			return nil, false
		}
		c.Allowed = allowed
	}

	if !p.char('}', "capture") {
		p.reset(start)
		return nil, false
	}

	if c.IsNamed() {
		for _, name := range p.names {
			if name == c.Name {
				p.abort(start.pos, "capture", "capture name \""+c.Name+"\" is used more than once", ErrDuplicateCapture)
				return nil, false
			}
		}
		p.names = append(p.names, c.Name)
	} else {
		c.Index = p.unnamed
		p.unnamed++
	}
	return c, true
}

// captureOrExact parses a capture or a literal run.
func (p *parser) captureOrExact() (Token, bool) {
	if c, ok := p.capture(); ok {
		return Token{Kind: CaptureToken, Capture: c}, true
	}
	if p.aborted() {
		return Token{}, false
	}
	if s, ok := p.validExact(); ok {
		return Token{Kind: Exact, Literal: s}, true
	}
	return Token{}, false
}
