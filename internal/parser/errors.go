package parser

import (
	"fmt"
	"strconv"

	"github.com/corvid-lang/corvid/internal/diag"
	"github.com/corvid-lang/corvid/internal/lexer"
)

type ParseErrorKind int

const (
	ErrUnexpectedToken ParseErrorKind = iota
	ErrMissingToken
	ErrInvalidExpression
	ErrUnsupportedPrimary
	ErrLookup
)

func (k ParseErrorKind) String() string {
	switch k {
	case ErrUnexpectedToken:
		return "unexpected token"
	case ErrMissingToken:
		return "missing token"
	case ErrInvalidExpression:
		return "invalid expression"
	case ErrUnsupportedPrimary:
		return "unsupported primary expression"
	case ErrLookup:
		return "lookup error"
	default:
		return "unknown parse error"
	}
}

func (k ParseErrorKind) diagnosticCode() diag.Code {
	switch k {
	case ErrUnexpectedToken:
		return diag.CodeParserUnexpectedToken
	case ErrMissingToken:
		return diag.CodeParserMissingToken
	case ErrInvalidExpression:
		return diag.CodeParserInvalidExpression
	case ErrUnsupportedPrimary:
		return diag.CodeParserUnsupportedPrimary
	case ErrLookup:
		return diag.CodeParserLookup
	default:
		return diag.Code("PARSER_UNKNOWN_ERROR")
	}
}

// LookupError reports that a dispatch table has no handler for a token kind.
// The parser never returns it directly; it is wrapped in a ParseError.
type LookupError struct {
	Table string // "prefix" or "infix"
	Kind  lexer.TokenKind
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("no %s handler for token kind %s", e.Table, e.Kind)
}

// ParseError is the single fatal error a parse can end with.
type ParseError struct {
	Kind     ParseErrorKind
	Message  string
	Span     lexer.SourceSpan
	Filename string
	Token    *lexer.Token // offending token, nil when the input ended early
	Err      error        // underlying cause, a *LookupError for dispatch failures
}

func (e *ParseError) Error() string {
	pos := e.Span.Start.String()
	if e.Filename != "" {
		pos = e.Filename + ":" + pos
	}
	return fmt.Sprintf("%s: %s", pos, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ToDiagnostic converts a parse error into a shared diagnostic structure.
func (e *ParseError) ToDiagnostic() diag.Diagnostic {
	d := diag.Diagnostic{
		Stage:    diag.StageParser,
		Severity: diag.SeverityError,
		Code:     e.Kind.diagnosticCode(),
		Message:  e.Message,
		Span: diag.Span{
			Filename: e.Filename,
			Line:     e.Span.Start.Line,
			Column:   e.Span.Start.Column,
			Start:    e.Span.Start.Offset,
			End:      e.Span.End.Offset,
		},
	}
	if e.Kind == ErrUnsupportedPrimary {
		d = d.WithHelp("an expression must start with a number, a string or '('")
	}
	return d
}

func (p *Parser) errorAt(kind ParseErrorKind, tok *lexer.Token, span lexer.SourceSpan, format string, args ...any) *ParseError {
	return &ParseError{
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Span:     span,
		Filename: p.filename,
		Token:    tok,
	}
}

// wrapError escalates err into a ParseError located at tok.
func (p *Parser) wrapError(kind ParseErrorKind, tok *lexer.Token, err error, format string, args ...any) *ParseError {
	perr := p.errorAt(kind, tok, tok.Span, format, args...)
	perr.Err = err
	return perr
}

// describe names a token for error messages.
func describe(tok lexer.Token) string {
	switch tok.Kind {
	case lexer.INTEGER, lexer.FLOAT, lexer.LITERALSTRING:
		return string(tok.Kind) + " " + tok.Value
	case lexer.IDENTIFIER:
		return "identifier " + strconv.Quote(tok.Value)
	}
	if tok.Kind.IsKeyword() {
		return "keyword '" + tok.Value + "'"
	}
	return "'" + tok.Value + "'"
}
