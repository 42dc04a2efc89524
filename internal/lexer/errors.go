package lexer

import (
	"fmt"
	"strconv"

	"github.com/corvid-lang/corvid/internal/diag"
)

type LexErrorKind int

const (
	ErrInvalidCharacter LexErrorKind = iota
	ErrUnexpectedEOF
	ErrUnterminatedString
)

func (k LexErrorKind) String() string {
	switch k {
	case ErrInvalidCharacter:
		return "invalid character"
	case ErrUnexpectedEOF:
		return "unexpected EOF"
	case ErrUnterminatedString:
		return "unterminated string literal"
	default:
		return "unknown lexer error"
	}
}

func (k LexErrorKind) diagnosticCode() diag.Code {
	switch k {
	case ErrInvalidCharacter:
		return diag.CodeLexerInvalidCharacter
	case ErrUnexpectedEOF:
		return diag.CodeLexerUnexpectedEOF
	case ErrUnterminatedString:
		return diag.CodeLexerUnterminatedString
	default:
		return diag.Code("LEXER_UNKNOWN_ERROR")
	}
}

// LexError is the single fatal error a tokenization can end with.
// Context holds the failing line from its first byte up to the failure point
// so a renderer can print it with a caret under Col.
type LexError struct {
	Kind      LexErrorKind
	Context   string
	Filename  string
	Character rune // offending character, set for ErrInvalidCharacter only
	Line      int
	Col       int
	Span      SourceSpan
}

// Message returns the error text without location.
func (e *LexError) Message() string {
	if e.Kind == ErrInvalidCharacter {
		return e.Kind.String() + " " + strconv.QuoteRune(e.Character)
	}
	return e.Kind.String()
}

func (e *LexError) Error() string {
	if e.Filename != "" {
		return fmt.Sprintf("%s:%d:%d: %s", e.Filename, e.Line, e.Col, e.Message())
	}
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Message())
}

// ToDiagnostic converts a lexer error into a shared diagnostic structure.
func (e *LexError) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageLexer,
		Severity: diag.SeverityError,
		Code:     e.Kind.diagnosticCode(),
		Message:  e.Message(),
		Context:  e.Context,
		Span: diag.Span{
			Filename: e.Filename,
			Line:     e.Line,
			Column:   e.Col,
			Start:    e.Span.Start.Offset,
			End:      e.Span.End.Offset,
		},
	}
}
