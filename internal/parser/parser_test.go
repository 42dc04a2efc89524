package parser_test

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/corvid-lang/corvid/internal/ast"
	"github.com/corvid-lang/corvid/internal/diag"
	"github.com/corvid-lang/corvid/internal/lexer"
	"github.com/corvid-lang/corvid/internal/parser"
)

func tokenize(t *testing.T, src string) []lexer.Token {
	t.Helper()

	tokens, err := lexer.Tokenize(src, "test.cv")
	if err != nil {
		t.Fatalf("Tokenize(%q) failed: %v", src, err)
	}
	return tokens
}

func parseExpr(t *testing.T, src string, opts ...parser.Option) ast.Expr {
	t.Helper()

	expr, err := parser.ParseExpression(tokenize(t, src), opts...)
	if err != nil {
		t.Fatalf("ParseExpression(%q) failed: %v", src, err)
	}
	return expr
}

func parseError(t *testing.T, src string, opts ...parser.Option) *parser.ParseError {
	t.Helper()

	expr, err := parser.ParseExpression(tokenize(t, src), opts...)
	if err == nil {
		t.Fatalf("ParseExpression(%q): expected an error, got %s", src, ast.Format(expr))
	}
	if expr != nil {
		t.Fatalf("ParseExpression(%q): expected no tree alongside the error", src)
	}

	var perr *parser.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *parser.ParseError, got %T", err)
	}
	return perr
}

func assertInt(t *testing.T, expr ast.Expr, want int64) {
	t.Helper()

	lit, ok := expr.(*ast.LiteralExpr)
	if !ok {
		t.Fatalf("expected *ast.LiteralExpr, got %T", expr)
	}
	v, ok := lit.Value.(ast.IntValue)
	if !ok {
		t.Fatalf("expected ast.IntValue, got %T", lit.Value)
	}
	if v.V.Cmp(big.NewInt(want)) != 0 {
		t.Fatalf("expected %d, got %s", want, v.V)
	}
}

func TestParseMultiplicationBindsTighterThanAddition(t *testing.T) {
	expr := parseExpr(t, "1+2*3")

	root, ok := expr.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected *ast.BinaryExpr, got %T", expr)
	}
	if root.Op != ast.Add {
		t.Fatalf("expected root op Add, got %s", root.Op)
	}
	assertInt(t, root.Left, 1)

	right, ok := root.Right.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected right operand to be *ast.BinaryExpr, got %T", root.Right)
	}
	if right.Op != ast.Mul {
		t.Fatalf("expected right op Mul, got %s", right.Op)
	}
	assertInt(t, right.Left, 2)
	assertInt(t, right.Right, 3)
}

func TestParsePrecedenceAndAssociativity(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"42", "42"},
		{"1*2+3", "(+ (* 1 2) 3)"},
		{"1-2-3", "(- (- 1 2) 3)"},
		{"8/4/2", "(/ (/ 8 4) 2)"},
		{"10 % 3 * 2", "(* (% 10 3) 2)"},
		{"1 + 2 * 3 - 4", "(- (+ 1 (* 2 3)) 4)"},
		{"1+2|3&4", "(| (+ 1 2) (& 3 4))"},
		{"1|2|3", "(| (| 1 2) 3)"},
		{"1 & 2 | 3 & 4", "(| (& 1 2) (& 3 4))"},
		{"1 < 2 + 3", "(< 1 (+ 2 3))"},
		{"1 < 2 & 3 > 4", "(& (< 1 2) (> 3 4))"},
		{"(1+2)*3", "(* (+ 1 2) 3)"},
		{"2*(3+4)*5", "(* (* 2 (+ 3 4)) 5)"},
		{"((7))", "7"},
		{"1.5 + 2", "(+ 1.5 2)"},
		{`"a" + "b"`, `(+ "a" "b")`},
		{"1\n+\n2", "(+ 1 2)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ast.Format(parseExpr(t, tt.input))
			if got != tt.want {
				t.Fatalf("ParseExpression(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseTree(t *testing.T) {
	expr := parseExpr(t, "1 + 2 * 3")

	want := &ast.DumpNode{
		Kind: "BinaryExpr", Op: "Add", Start: "1:1", End: "1:10",
		Children: []*ast.DumpNode{
			{Kind: "LiteralExpr", Literal: "Int", Value: "1", Start: "1:1", End: "1:2"},
			{
				Kind: "BinaryExpr", Op: "Mul", Start: "1:5", End: "1:10",
				Children: []*ast.DumpNode{
					{Kind: "LiteralExpr", Literal: "Int", Value: "2", Start: "1:5", End: "1:6"},
					{Kind: "LiteralExpr", Literal: "Int", Value: "3", Start: "1:9", End: "1:10"},
				},
			},
		},
	}

	if diff := cmp.Diff(want, ast.Dump(expr)); diff != "" {
		t.Errorf("(-want, +got)\n%s", diff)
	}
}

func TestParseLiterals(t *testing.T) {
	tests := []struct {
		input string
		want  ast.LiteralValue
	}{
		{"3.25", ast.FloatValue(3.25)},
		{".5", ast.FloatValue(0.5)},
		{"7.", ast.FloatValue(7)},
		{`"hi there"`, ast.StrValue("hi there")},
		{`""`, ast.StrValue("")},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lit, ok := parseExpr(t, tt.input).(*ast.LiteralExpr)
			if !ok {
				t.Fatalf("expected *ast.LiteralExpr")
			}
			if lit.Value != tt.want {
				t.Fatalf("expected %#v, got %#v", tt.want, lit.Value)
			}
		})
	}
}

func TestParseInt128Bounds(t *testing.T) {
	const maxText = "170141183460469231731687303715884105727"

	lit := parseExpr(t, maxText).(*ast.LiteralExpr)
	if got := lit.Value.(ast.IntValue).V; got.Cmp(ast.MaxInt128) != 0 {
		t.Fatalf("expected %s, got %s", ast.MaxInt128, got)
	}

	err := parseError(t, "1 + 170141183460469231731687303715884105728")
	if err.Kind != parser.ErrInvalidExpression {
		t.Fatalf("expected ErrInvalidExpression, got %v", err.Kind)
	}
	if err.Span.Start.Column != 5 {
		t.Fatalf("expected the literal at column 5, got %d", err.Span.Start.Column)
	}
}

func TestParseUnsupportedPrimary(t *testing.T) {
	tests := []struct {
		input string
		kind  lexer.TokenKind
		col   int
	}{
		{"+1", lexer.PLUS, 1},
		{"-1", lexer.DASH, 1},
		{"!x", lexer.NEGATION, 1},
		{"x + 1", lexer.IDENTIFIER, 1},
		{"1 * if", lexer.IF, 5},
		{"2 + )", lexer.RPAREN, 5},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := parseError(t, tt.input)
			if err.Kind != parser.ErrUnsupportedPrimary {
				t.Fatalf("expected ErrUnsupportedPrimary, got %v (%s)", err.Kind, err)
			}
			if err.Token == nil || err.Token.Kind != tt.kind {
				t.Fatalf("expected offending token %s, got %v", tt.kind, err.Token)
			}
			if err.Span.Start.Column != tt.col {
				t.Fatalf("expected column %d, got %d", tt.col, err.Span.Start.Column)
			}

			var lookupErr *parser.LookupError
			if !errors.As(err, &lookupErr) {
				t.Fatalf("expected the error to wrap a *parser.LookupError")
			}
			if lookupErr.Table != "prefix" || lookupErr.Kind != tt.kind {
				t.Fatalf("unexpected lookup error %v", lookupErr)
			}
		})
	}
}

func TestParseEndOfInput(t *testing.T) {
	tests := []struct {
		input string
		kind  parser.ParseErrorKind
		line  int
		col   int
	}{
		{"", parser.ErrUnexpectedToken, 1, 1},
		{"1 +", parser.ErrUnexpectedToken, 1, 4},
		{"1 *\n", parser.ErrUnexpectedToken, 1, 4},
		{"(1 + 2", parser.ErrMissingToken, 1, 7},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := parseError(t, tt.input)
			if err.Kind != tt.kind {
				t.Fatalf("expected %v, got %v (%s)", tt.kind, err.Kind, err)
			}
			if err.Token != nil {
				t.Fatalf("expected no offending token at end of input, got %v", err.Token)
			}
			if err.Span.Start.Line != tt.line || err.Span.Start.Column != tt.col {
				t.Fatalf("expected %d:%d, got %s", tt.line, tt.col, err.Span.Start)
			}
			if !strings.Contains(err.Message, "end of input") {
				t.Fatalf("expected message to mention end of input, got %q", err.Message)
			}
		})
	}
}

func TestParseMissingClosingParen(t *testing.T) {
	err := parseError(t, "(1 2)")

	if err.Kind != parser.ErrMissingToken {
		t.Fatalf("expected ErrMissingToken, got %v", err.Kind)
	}
	if want := "expected ')', found INTEGER 2"; err.Message != want {
		t.Fatalf("expected message %q, got %q", want, err.Message)
	}
}

func TestParseTrailingTokens(t *testing.T) {
	tokens := tokenize(t, "1 2")

	p := parser.New(tokens)
	expr, err := p.ParseExpression(parser.BindingNone)
	if err != nil {
		t.Fatalf("ParseExpression failed: %v", err)
	}
	assertInt(t, expr, 1)
	if p.Pos() != 1 {
		t.Fatalf("expected the cursor to stop before the trailing token, got %d", p.Pos())
	}

	perr := parseError(t, "1 2", parser.WithRequireEnd())
	if perr.Kind != parser.ErrUnexpectedToken {
		t.Fatalf("expected ErrUnexpectedToken, got %v", perr.Kind)
	}
	if perr.Span.Start.Column != 3 {
		t.Fatalf("expected column 3, got %d", perr.Span.Start.Column)
	}
}

func TestParseExpressionRespectsMinimumBindingPower(t *testing.T) {
	tokens := tokenize(t, "1 * 2 + 3")

	p := parser.New(tokens)
	expr, err := p.ParseExpression(parser.BindingAdditive)
	if err != nil {
		t.Fatalf("ParseExpression failed: %v", err)
	}
	if got := ast.Format(expr); got != "(* 1 2)" {
		t.Fatalf("expected (* 1 2), got %s", got)
	}
	if p.Pos() != 3 {
		t.Fatalf("expected the cursor on '+', got %d", p.Pos())
	}
}

func TestParseErrorFilenameAndDiagnostic(t *testing.T) {
	err := parseError(t, "1 + +", parser.WithFilename("main.cv"))

	if want := "main.cv:1:5: unsupported primary expression '+'"; err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}

	d := err.ToDiagnostic()
	if d.Stage != diag.StageParser {
		t.Fatalf("expected stage %q, got %q", diag.StageParser, d.Stage)
	}
	if d.Code != diag.CodeParserUnsupportedPrimary {
		t.Fatalf("expected code %q, got %q", diag.CodeParserUnsupportedPrimary, d.Code)
	}

	wantSpan := diag.Span{Filename: "main.cv", Line: 1, Column: 5, Start: 4, End: 5}
	if d.Span != wantSpan {
		t.Fatalf("expected span %+v, got %+v", wantSpan, d.Span)
	}
}

func TestParserTracer(t *testing.T) {
	var sb strings.Builder
	parseExpr(t, "1 + 2", parser.WithTracer(parser.TraceTo(&sb)))

	out := sb.String()
	for _, want := range []string{
		"msg=enter rule=expression(none) depth=1",
		"msg=enter rule=expression(additive) depth=2",
		"msg=leave rule=expression(none) depth=1",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected trace to contain %q, got:\n%s", want, out)
		}
	}
}

func TestBindingPowerOrder(t *testing.T) {
	order := []lexer.TokenKind{lexer.VERTICAL_BAR, lexer.AMPER, lexer.LESS, lexer.PLUS, lexer.STAR}
	for i := 1; i < len(order); i++ {
		lo, hi := parser.BindingPowerOf(order[i-1]), parser.BindingPowerOf(order[i])
		if lo >= hi {
			t.Fatalf("expected %s (%s) to bind looser than %s (%s)", order[i-1], lo, order[i], hi)
		}
	}

	for _, kind := range []lexer.TokenKind{lexer.INTEGER, lexer.EQUAL, lexer.LPAREN, lexer.SEMICOLON} {
		if bp := parser.BindingPowerOf(kind); bp != parser.BindingNone {
			t.Fatalf("expected %s to have no binding power, got %s", kind, bp)
		}
	}
}
