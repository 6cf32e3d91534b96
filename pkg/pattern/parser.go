package pattern

// Parse tokenizes a route pattern.
//
// The whole pattern must be consumed; a pattern containing any text that
// no rule accepts fails with a *ParseError describing the furthest point
// the parser reached.
func Parse(pattern string, opts ...Option) ([]Token, error) {
	o := newOptions(opts)
	p := newParser(pattern, o.maxDepth)

	tokens, ok := p.route()
	if p.fatal != nil {
		return nil, p.fatal
	}
	if !ok {
		if p.furthest == nil {
			p.fail("route", "unexpected input")
		}
		return nil, p.furthest
	}
	return tokens, nil
}

// route := path? query? fragment? EOF
func (p *parser) route() ([]Token, bool) {
	if p.input == "" {
		p.abort(0, "route", "pattern is empty", ErrEmptyPattern)
		return nil, false
	}

	var tokens []Token
	if path, ok := p.path(); ok {
		tokens = append(tokens, path...)
	}
	if p.aborted() {
		return nil, false
	}
	if query, ok := p.query(); ok {
		tokens = append(tokens, query...)
	}
	if p.aborted() {
		return nil, false
	}
	if fragment, ok := p.fragment(); ok {
		tokens = append(tokens, fragment...)
	}
	if p.aborted() {
		return nil, false
	}

	if !p.eof() {
		p.fail("route", "unexpected input")
		return nil, false
	}
	return tokens, true
}

// path := part+
func (p *parser) path() ([]Token, bool) {
	tokens := p.parts()
	if p.aborted() || len(tokens) == 0 {
		return nil, false
	}
	return tokens, true
}

// parts := part*
func (p *parser) parts() []Token {
	var tokens []Token
	for !p.aborted() {
		t, ok := p.part()
		if !ok {
			break
		}
		tokens = append(tokens, t)
	}
	return tokens
}

// part := "/" | capture | exact | "(" path ")"
func (p *parser) part() (Token, bool) {
	if p.char('/', "path") {
		return Token{Kind: Separator}, true
	}
	if t, ok := p.captureOrExact(); ok {
		return t, true
	}
	if p.aborted() {
		return Token{}, false
	}
	return p.optional("optional", p.path)
}

// optional parses "(" inner ")" into an Optional token.
func (p *parser) optional(context string, inner func() ([]Token, bool)) (Token, bool) {
	start := p.mark()
	if !p.char('(', context) {
		return Token{}, false
	}

	p.depth++
	defer func() { p.depth-- }()
	if p.maxDepth > 0 && p.depth > p.maxDepth {
		p.abort(start.pos, "optional", "optional groups nested too deeply", ErrTooDeep)
		return Token{}, false
	}
	if !p.eof() && p.input[p.pos] == ')' {
		p.pin(p.pos, "optional", "empty optional group")
		p.reset(start)
		return Token{}, false
	}

	tokens, ok := inner()
	if !ok || p.aborted() {
		p.reset(start)
		return Token{}, false
	}
	if !p.char(')', context) {
		p.reset(start)
		return Token{}, false
	}
	return Token{Kind: Optional, Inner: tokens}, true
}

// fragment := "(" fragmentBody ")" | fragmentBody
func (p *parser) fragment() ([]Token, bool) {
	if tokens, ok := p.fragmentBody(); ok {
		return tokens, true
	}
	if p.aborted() {
		return nil, false
	}
	if opt, ok := p.optional("fragment", p.fragmentBody); ok {
		return []Token{opt}, true
	}
	return nil, false
}

// fragmentBody := "#" part*
func (p *parser) fragmentBody() ([]Token, bool) {
	if !p.char('#', "fragment") {
		return nil, false
	}
	tokens := []Token{{Kind: FragmentBegin}}
	tokens = append(tokens, p.parts()...)
	if p.aborted() {
		return nil, false
	}
	return tokens, true
}
