package parser

import (
	"github.com/corvid-lang/corvid/internal/ast"
	"github.com/corvid-lang/corvid/internal/lexer"
)

// ParseExpression parses an expression whose operators all bind tighter than
// minBP. It parses one primary expression, then keeps folding infix operators
// into the left operand until the stream ends or the next operator cannot
// bind at this level. Right operands are parsed at the operator's own
// binding power, which makes operators of equal rank group to the left.
func (p *Parser) ParseExpression(minBP BindingPower) (ast.Expr, error) {
	rule := "expression(" + minBP.String() + ")"
	p.tracer.Enter(rule)
	defer p.tracer.Leave(rule)

	left, err := p.parsePrimary()
	if err != nil {
		p.tracer.Error(rule, err)
		return nil, err
	}

	for {
		tok, ok := p.current()
		if !ok {
			break
		}

		if minBP >= BindingPowerOf(tok.Kind) {
			break
		}

		infix, err := p.lookupInfix(tok.Kind)
		if err != nil {
			err = p.wrapError(ErrLookup, &tok, err, "no infix handler for %s", describe(tok))
			p.tracer.Error(rule, err)
			return nil, err
		}

		left, err = infix(left)
		if err != nil {
			p.tracer.Error(rule, err)
			return nil, err
		}
	}

	return left, nil
}

// parsePrimary dispatches the token at the cursor to its prefix handler.
func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok, ok := p.current()
	if !ok {
		return nil, p.errorAt(ErrUnexpectedToken, nil, p.endSpan(), "expected a primary expression, found end of input")
	}

	prefix, err := p.lookupPrefix(tok.Kind)
	if err != nil {
		return nil, p.wrapError(ErrUnsupportedPrimary, &tok, err, "unsupported primary expression %s", describe(tok))
	}

	return prefix()
}

// parseBinaryExpr consumes the operator under the cursor and parses its
// right operand.
func (p *Parser) parseBinaryExpr(left ast.Expr) (ast.Expr, error) {
	opTok, ok := p.current()
	if !ok {
		return nil, p.errorAt(ErrMissingToken, nil, p.endSpan(), "expected a binary operator, found end of input")
	}

	op, ok := ast.BinaryOpFromToken(opTok.Kind)
	if !ok {
		return nil, p.errorAt(ErrUnexpectedToken, &opTok, opTok.Span, "expected a binary operator, found %s", describe(opTok))
	}

	p.advance()

	right, err := p.ParseExpression(BindingPowerOf(opTok.Kind))
	if err != nil {
		return nil, err
	}

	return ast.NewBinaryExpr(left, op, right), nil
}

// parseGroupedExpr parses '(' expression ')'. The parentheses only steer
// grouping; the inner expression is returned as is.
func (p *Parser) parseGroupedExpr() (ast.Expr, error) {
	p.advance() // '('

	expr, err := p.ParseExpression(BindingNone)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}

	return expr, nil
}
