package lexer

import "fmt"

// TokenKind represents the lexical category of a token
type TokenKind string

// Position locates a single point in the source.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number, counted in runes
	Offset int // 0-based byte offset into the source
}

// Before reports whether p comes strictly earlier than other in document order.
func (p Position) Before(other Position) bool {
	return p.Offset < other.Offset
}

// String returns the position as line:column.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// SourceSpan is the half-open range [Start, End) covered by a lexeme or node.
type SourceSpan struct {
	Start Position
	End   Position
}

// Combine returns a span running from the start of a to the end of b.
// Composite nodes use it to cover their children; callers pass the leftmost
// span first.
func Combine(a, b SourceSpan) SourceSpan {
	return SourceSpan{Start: a.Start, End: b.End}
}

// IsValid reports whether the span has 1-based coordinates and does not run backwards.
func (s SourceSpan) IsValid() bool {
	return s.Start.Line > 0 && s.Start.Column > 0 && !s.End.Before(s.Start)
}

// Len returns the number of bytes covered by the span.
func (s SourceSpan) Len() int {
	return s.End.Offset - s.Start.Offset
}

func (s SourceSpan) String() string {
	return s.Start.String() + "-" + s.End.String()
}

// Token represents a lexical token. Value is a substring of the source the
// token was scanned from and shares its memory.
type Token struct {
	Kind  TokenKind
	Value string
	Span  SourceSpan
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s %q", t.Span.Start, t.Kind, t.Value)
}

// Token kind constants
const (
	// Literals and names
	INTEGER       TokenKind = "INTEGER"
	FLOAT         TokenKind = "FLOAT"
	IDENTIFIER    TokenKind = "IDENTIFIER"
	LITERALSTRING TokenKind = "LITERALSTRING"

	// Keywords
	IF       TokenKind = "IF"
	ELSE     TokenKind = "ELSE"
	WHILE    TokenKind = "WHILE"
	FOR      TokenKind = "FOR"
	FUNCTION TokenKind = "FUNCTION"
	RETURN   TokenKind = "RETURN"

	// Operators
	PLUS         TokenKind = "+"
	DASH         TokenKind = "-"
	STAR         TokenKind = "*"
	SLASH        TokenKind = "/"
	MODULO       TokenKind = "%"
	EQUAL        TokenKind = "="
	AMPER        TokenKind = "&"
	VERTICAL_BAR TokenKind = "|"
	LESS         TokenKind = "<"
	GREATER      TokenKind = ">"
	NEGATION     TokenKind = "!"

	// Delimiters
	LPAREN    TokenKind = "("
	RPAREN    TokenKind = ")"
	LBRACE    TokenKind = "{"
	RBRACE    TokenKind = "}"
	LBRACKET  TokenKind = "["
	RBRACKET  TokenKind = "]"
	COMMA     TokenKind = ","
	COLON     TokenKind = ":"
	SEMICOLON TokenKind = ";"
)

var keywords = map[string]TokenKind{
	"if":     IF,
	"else":   ELSE,
	"while":  WHILE,
	"for":    FOR,
	"func":   FUNCTION,
	"return": RETURN,
}

// symbols maps every single-character operator and punctuation mark to its kind.
var symbols = map[byte]TokenKind{
	'+': PLUS,
	'-': DASH,
	'*': STAR,
	'/': SLASH,
	'%': MODULO,
	'=': EQUAL,
	'&': AMPER,
	'|': VERTICAL_BAR,
	'<': LESS,
	'>': GREATER,
	'!': NEGATION,
	'(': LPAREN,
	')': RPAREN,
	'{': LBRACE,
	'}': RBRACE,
	'[': LBRACKET,
	']': RBRACKET,
	',': COMMA,
	':': COLON,
	';': SEMICOLON,
}

// LookupIdent checks if the identifier is a keyword
func LookupIdent(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return IDENTIFIER
}

// LookupSymbol returns the kind of a single-character operator or delimiter.
func LookupSymbol(ch byte) (TokenKind, bool) {
	kind, ok := symbols[ch]
	return kind, ok
}

// IsKeyword reports whether kind is one of the reserved words.
func (k TokenKind) IsKeyword() bool {
	switch k {
	case IF, ELSE, WHILE, FOR, FUNCTION, RETURN:
		return true
	default:
		return false
	}
}
