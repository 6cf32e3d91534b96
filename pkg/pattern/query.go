package pattern

// query := "(" queryBody ")" | queryBody
//
// The unwrapped form is tried first so that "?a=b" is never read as an
// optional group.
func (p *parser) query() ([]Token, bool) {
	if tokens, ok := p.queryBody(); ok {
		return tokens, true
	}
	if p.aborted() {
		return nil, false
	}
	if opt, ok := p.optional("query", p.queryBody); ok {
		return []Token{opt}, true
	}
	return nil, false
}

// queryBody := "?" ( item rest | optItem+ )
func (p *parser) queryBody() ([]Token, bool) {
	start := p.mark()
	if !p.char('?', "query") {
		return nil, false
	}
	tokens := []Token{{Kind: QueryBegin}}

	if item, ok := p.queryItem(); ok {
		tokens = append(tokens, item)
		tokens = append(tokens, p.queryRest()...)
		if p.aborted() {
			return nil, false
		}
		return tokens, true
	}
	if p.aborted() {
		return nil, false
	}

	// Every query term is optional: "?(a=b)(&c=d)".
	var opts []Token
	for !p.aborted() {
		first := len(opts) == 0
		opt, ok := p.optional("query", func() ([]Token, bool) {
			return p.optionalQueryItem(!first)
		})
		if !ok {
			break
		}
		opts = append(opts, opt)
	}
	if p.aborted() {
		return nil, false
	}
	if len(opts) == 0 {
		p.reset(start)
		return nil, false
	}
	return append(tokens, opts...), true
}

// queryRest := ("&" item)* optRest*
//
// Once an optional group has been read no mandatory term may follow; the
// route rule rejects the leftover input.
func (p *parser) queryRest() []Token {
	var tokens []Token
	for !p.aborted() {
		pair, ok := p.separatedItem()
		if !ok {
			break
		}
		tokens = append(tokens, pair...)
	}
	for !p.aborted() {
		opt, ok := p.optional("query", p.separatedItems)
		if !ok {
			break
		}
		tokens = append(tokens, opt)
	}
	return tokens
}

// separatedItems := ("&" item)+
func (p *parser) separatedItems() ([]Token, bool) {
	var tokens []Token
	for !p.aborted() {
		pair, ok := p.separatedItem()
		if !ok {
			break
		}
		tokens = append(tokens, pair...)
	}
	if p.aborted() || len(tokens) == 0 {
		return nil, false
	}
	return tokens, true
}

// separatedItem := "&" item
func (p *parser) separatedItem() ([]Token, bool) {
	start := p.mark()
	if !p.char('&', "query") {
		return nil, false
	}
	item, ok := p.queryItem()
	if !ok {
		p.reset(start)
		return nil, false
	}
	return []Token{{Kind: QuerySeparator}, item}, true
}

// optionalQueryItem := ["&"] item, the separator being allowed only after
// the first optional term.
func (p *parser) optionalQueryItem(allowSeparator bool) ([]Token, bool) {
	if allowSeparator {
		if pair, ok := p.separatedItem(); ok {
			return pair, true
		}
		if p.aborted() {
			return nil, false
		}
	}
	item, ok := p.queryItem()
	if !ok {
		return nil, false
	}
	return []Token{item}, true
}

// queryItem := ident "=" (capture | exact)
func (p *parser) queryItem() (Token, bool) {
	start := p.mark()
	ident, ok := p.validIdent()
	if !ok {
		return Token{}, false
	}
	if !p.char('=', "query") {
		p.reset(start)
		return Token{}, false
	}
	value, ok := p.captureOrExact()
	if !ok {
		p.reset(start)
		return Token{}, false
	}

	t := Token{Kind: QueryCapture, Ident: ident}
	if value.Kind == CaptureToken {
		t.Capture = value.Capture
	} else {
		t.Literal = value.Literal
	}
	return t, true
}
