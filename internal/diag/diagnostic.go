package diag

import "fmt"

// Stage identifies which front-end phase produced the diagnostic.
type Stage string

const (
	StageLexer  Stage = "lexer"
	StageParser Stage = "parser"
)

// Severity captures how impactful the diagnostic is. Every condition the
// lexer and parser report is fatal, so only errors exist today.
type Severity string

const (
	SeverityError Severity = "error"
)

// Code is a stable identifier for a diagnostic.
type Code string

const (
	// Lexer errors
	CodeLexerInvalidCharacter   Code = "LEXER_INVALID_CHARACTER"
	CodeLexerUnexpectedEOF      Code = "LEXER_UNEXPECTED_EOF"
	CodeLexerUnterminatedString Code = "LEXER_UNTERMINATED_STRING"

	// Parser errors
	CodeParserUnexpectedToken    Code = "PARSER_UNEXPECTED_TOKEN"
	CodeParserMissingToken       Code = "PARSER_MISSING_TOKEN"
	CodeParserInvalidExpression  Code = "PARSER_INVALID_EXPRESSION"
	CodeParserUnsupportedPrimary Code = "PARSER_UNSUPPORTED_PRIMARY"
	CodeParserLookup             Code = "PARSER_LOOKUP"
)

// Span represents a location in source code. Start and End are byte offsets.
type Span struct {
	Filename string
	Line     int
	Column   int
	Start    int
	End      int
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsValid returns true if the span has valid location information.
func (s Span) IsValid() bool {
	return s.Line > 0 && s.Column > 0
}

// Diagnostic is a front-end diagnostic surfaced to end-users.
type Diagnostic struct {
	Stage    Stage
	Severity Severity
	Code     Code
	Message  string
	Span     Span
	// Context is the offending source line up to the failure point. When it is
	// empty the formatter falls back to source registered with AddSource.
	Context string
	Label   string // text printed after the caret
	Notes   []string
	Help    string
}

// WithLabel returns a copy of the diagnostic with the caret label set.
func (d Diagnostic) WithLabel(label string) Diagnostic {
	d.Label = label
	return d
}

// WithNote adds a note to the diagnostic.
func (d Diagnostic) WithNote(note string) Diagnostic {
	d.Notes = append(d.Notes, note)
	return d
}

// WithHelp adds help text to the diagnostic.
func (d Diagnostic) WithHelp(help string) Diagnostic {
	d.Help = help
	return d
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s[%s]: %s", d.Span, d.Severity, d.Code, d.Message)
}
