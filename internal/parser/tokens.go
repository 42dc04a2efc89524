package parser

import (
	"github.com/corvid-lang/corvid/internal/lexer"
)

// advance moves the cursor to the next token. It is a no-op once the stream
// is exhausted.
func (p *Parser) advance() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

// current returns the token under the cursor, or false at end of input.
func (p *Parser) current() (lexer.Token, bool) {
	return p.peekAt(0)
}

// peekAt returns the token offset positions past the cursor without moving it.
func (p *Parser) peekAt(offset int) (lexer.Token, bool) {
	i := p.pos + offset
	if offset < 0 || i >= len(p.tokens) {
		return lexer.Token{}, false
	}
	return p.tokens[i], true
}

// Pos returns the index of the next token to be consumed.
func (p *Parser) Pos() int {
	return p.pos
}

// endSpan is the zero-width span just past the last token, used to locate
// errors about input that ended too early.
func (p *Parser) endSpan() lexer.SourceSpan {
	if len(p.tokens) == 0 {
		start := lexer.Position{Line: 1, Column: 1}
		return lexer.SourceSpan{Start: start, End: start}
	}
	end := p.tokens[len(p.tokens)-1].Span.End
	return lexer.SourceSpan{Start: end, End: end}
}

// expect consumes the current token if it has kind. Otherwise it reports a
// missing token and leaves the cursor in place.
func (p *Parser) expect(kind lexer.TokenKind) (lexer.Token, error) {
	tok, ok := p.current()
	if !ok {
		return lexer.Token{}, p.errorAt(ErrMissingToken, nil, p.endSpan(), "expected '%s', found end of input", kind)
	}
	if tok.Kind != kind {
		return lexer.Token{}, p.errorAt(ErrMissingToken, &tok, tok.Span, "expected '%s', found %s", kind, describe(tok))
	}
	p.advance()
	return tok, nil
}
