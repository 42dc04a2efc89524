package parser

import (
	"github.com/corvid-lang/corvid/internal/ast"
	"github.com/corvid-lang/corvid/internal/lexer"
)

type (
	prefixParseFn func() (ast.Expr, error)
	infixParseFn  func(ast.Expr) (ast.Expr, error)
)

type Option func(*options)

type options struct {
	filename   string
	tracer     Tracer
	requireEnd bool
}

// WithFilename configures the parser to attribute all emitted errors to the provided filename.
func WithFilename(name string) Option {
	return func(o *options) {
		o.filename = name
	}
}

// WithTracer reports every expression the parser enters and leaves to t.
func WithTracer(t Tracer) Option {
	return func(o *options) {
		if t != nil {
			o.tracer = t
		}
	}
}

// WithRequireEnd makes ParseExpression reject tokens left over after the
// expression. Without it the trailing tokens are ignored.
func WithRequireEnd() Option {
	return func(o *options) {
		o.requireEnd = true
	}
}

// Parser implements a Pratt-style precedence-climbing parser over a token
// slice it borrows from the caller.
// Invariants:
//   - Cursor: pos is the only mutable state and only grows, via advance. It
//     never runs past len(tokens); pos == len(tokens) means the stream is
//     exhausted.
//   - Dispatch: prefixFns/infixFns are filled once in New and never change.
//     Every kind with a binding power above BindingNone has an infix entry.
//   - Errors: the first failure aborts the parse. No partial tree escapes.
type Parser struct {
	tokens []lexer.Token
	pos    int

	filename   string
	tracer     Tracer
	requireEnd bool

	prefixFns map[lexer.TokenKind]prefixParseFn
	infixFns  map[lexer.TokenKind]infixParseFn
}

// New returns a parser positioned at the first of tokens.
func New(tokens []lexer.Token, opts ...Option) *Parser {
	cfg := options{tracer: discardTracer{}}
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &Parser{
		tokens:     tokens,
		filename:   cfg.filename,
		tracer:     cfg.tracer,
		requireEnd: cfg.requireEnd,
		prefixFns:  make(map[lexer.TokenKind]prefixParseFn),
		infixFns:   make(map[lexer.TokenKind]infixParseFn),
	}

	p.registerPrefix(lexer.INTEGER, p.parseIntegerLiteral)
	p.registerPrefix(lexer.FLOAT, p.parseFloatLiteral)
	p.registerPrefix(lexer.LITERALSTRING, p.parseStringLiteral)
	p.registerPrefix(lexer.LPAREN, p.parseGroupedExpr)

	for kind := range bindingPowers {
		p.registerInfix(kind, p.parseBinaryExpr)
	}

	return p
}

// ParseExpression parses one expression from tokens starting at the lowest
// binding power. This is the entry point drivers call after lexer.Tokenize.
// Any error is a *ParseError.
func ParseExpression(tokens []lexer.Token, opts ...Option) (ast.Expr, error) {
	p := New(tokens, opts...)

	expr, err := p.ParseExpression(BindingNone)
	if err != nil {
		return nil, err
	}

	if p.requireEnd {
		if tok, ok := p.current(); ok {
			return nil, p.errorAt(ErrUnexpectedToken, &tok, tok.Span, "unexpected %s after expression", describe(tok))
		}
	}

	return expr, nil
}

func (p *Parser) registerPrefix(kind lexer.TokenKind, fn prefixParseFn) {
	p.prefixFns[kind] = fn
}

func (p *Parser) registerInfix(kind lexer.TokenKind, fn infixParseFn) {
	p.infixFns[kind] = fn
}

// lookupPrefix finds the handler for a token opening an expression.
func (p *Parser) lookupPrefix(kind lexer.TokenKind) (prefixParseFn, error) {
	if fn, ok := p.prefixFns[kind]; ok {
		return fn, nil
	}
	return nil, &LookupError{Table: "prefix", Kind: kind}
}

// lookupInfix finds the handler for a token continuing an expression.
func (p *Parser) lookupInfix(kind lexer.TokenKind) (infixParseFn, error) {
	if fn, ok := p.infixFns[kind]; ok {
		return fn, nil
	}
	return nil, &LookupError{Table: "infix", Kind: kind}
}
