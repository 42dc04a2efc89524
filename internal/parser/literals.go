package parser

import (
	"math/big"
	"strconv"

	"github.com/corvid-lang/corvid/internal/ast"
)

// parseIntegerLiteral converts the current INTEGER token into a 128-bit
// signed literal.
func (p *Parser) parseIntegerLiteral() (ast.Expr, error) {
	tok, _ := p.current()
	p.advance()

	v, ok := new(big.Int).SetString(tok.Value, 10)
	if !ok {
		return nil, p.errorAt(ErrInvalidExpression, &tok, tok.Span, "failed to parse integer literal %s", tok.Value)
	}
	if !ast.FitsInt128(v) {
		return nil, p.errorAt(ErrInvalidExpression, &tok, tok.Span, "integer literal %s does not fit in 128 bits", tok.Value)
	}

	return ast.NewLiteralExpr(ast.IntValue{V: v}, tok.Span), nil
}

func (p *Parser) parseFloatLiteral() (ast.Expr, error) {
	tok, _ := p.current()
	p.advance()

	v, err := strconv.ParseFloat(tok.Value, 64)
	if err != nil {
		return nil, p.errorAt(ErrInvalidExpression, &tok, tok.Span, "float literal %s is out of range", tok.Value)
	}

	return ast.NewLiteralExpr(ast.FloatValue(v), tok.Span), nil
}

// parseStringLiteral strips the quotes the lexer keeps in the token value.
func (p *Parser) parseStringLiteral() (ast.Expr, error) {
	tok, _ := p.current()
	p.advance()

	text := tok.Value
	if len(text) >= 2 {
		text = text[1 : len(text)-1]
	}

	return ast.NewLiteralExpr(ast.StrValue(text), tok.Span), nil
}
