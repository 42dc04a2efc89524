package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer scans one source buffer into tokens. It is a one-shot state machine:
// once Tokenize has returned, the cursor sits at the end of the input.
type Lexer struct {
	src       string
	filename  string
	pos       int // byte offset of the next unread character
	line      int // current line number (1-based)
	column    int // current column number (1-based)
	lineStart int // byte offset where the current line begins
}

// New creates a lexer over src. filename is only used to label diagnostics.
func New(src, filename string) *Lexer {
	return &Lexer{
		src:      src,
		filename: filename,
		line:     1,
		column:   1,
	}
}

// Tokenize scans src in a single pass. On success the tokens cover the whole
// input except whitespace; otherwise the returned error is a *LexError
// describing the first offending character.
func Tokenize(src, filename string) ([]Token, error) {
	return New(src, filename).Tokenize()
}

// Tokenize runs the lexer to the end of its input.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token

	for l.pos < len(l.src) {
		ch := l.src[l.pos]

		switch {
		case isDigit(ch) || ch == '.':
			tok, ok := l.readNumber()
			if !ok {
				return nil, l.invalidCharacter()
			}
			tokens = append(tokens, tok)

		case isIdentStart(l.peekRune()):
			tokens = append(tokens, l.readIdentifier())

		case ch == '"':
			tok, err := l.readString()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)

		case isSymbol(ch):
			start := l.position()
			kind, _ := LookupSymbol(ch)
			l.read()
			tokens = append(tokens, l.makeToken(kind, start))

		case isWhitespace(ch):
			l.read()

		default:
			return nil, l.invalidCharacter()
		}
	}

	return tokens, nil
}

// position returns the location of the next unread character.
func (l *Lexer) position() Position {
	return Position{Line: l.line, Column: l.column, Offset: l.pos}
}

func (l *Lexer) peekRune() rune {
	r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
	return r
}

// read consumes one rune and keeps line/column bookkeeping in step.
func (l *Lexer) read() {
	r, size := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += size
	if r == '\n' {
		l.line++
		l.column = 1
		l.lineStart = l.pos
		return
	}
	l.column++
}

// skip consumes n bytes of single-byte characters on the current line.
func (l *Lexer) skip(n int) {
	l.pos += n
	l.column += n
}

func (l *Lexer) makeToken(kind TokenKind, start Position) Token {
	return Token{
		Kind:  kind,
		Value: l.src[start.Offset:l.pos],
		Span:  SourceSpan{Start: start, End: l.position()},
	}
}

// readNumber tries a float first and falls back to a run of digits. It
// reports false when neither matches anything, which happens for a lone '.'.
func (l *Lexer) readNumber() (Token, bool) {
	start := l.position()

	if n := l.matchFloat(); n > 0 {
		l.skip(n)
		return l.makeToken(FLOAT, start), true
	}

	if n := l.matchInteger(); n > 0 {
		l.skip(n)
		return l.makeToken(INTEGER, start), true
	}

	return Token{}, false
}

// matchFloat returns the length of a float literal at the cursor, or 0. The
// literal needs exactly one '.' and at least one digit; a second '.' in the
// same run rejects the whole match.
func (l *Lexer) matchFloat() int {
	dots, digits := 0, 0
	i := l.pos
	for ; i < len(l.src); i++ {
		c := l.src[i]
		if c == '.' {
			dots++
			if dots > 1 {
				return 0
			}
			continue
		}
		if !isDigit(c) {
			break
		}
		digits++
	}

	if dots != 1 || digits == 0 {
		return 0
	}
	return i - l.pos
}

func (l *Lexer) matchInteger() int {
	i := l.pos
	for i < len(l.src) && isDigit(l.src[i]) {
		i++
	}
	return i - l.pos
}

// readIdentifier reads an identifier or keyword
func (l *Lexer) readIdentifier() Token {
	start := l.position()
	for l.pos < len(l.src) && isIdentPart(l.peekRune()) {
		l.read()
	}
	tok := l.makeToken(IDENTIFIER, start)
	tok.Kind = LookupIdent(tok.Value)
	return tok
}

// readString reads a single-line string literal. The token value keeps both
// quotes. Triple-quoted strings are reserved and always rejected.
func (l *Lexer) readString() (Token, error) {
	start := l.position()

	if strings.HasPrefix(l.src[l.pos:], `"""`) {
		return Token{}, l.errorAt(ErrUnexpectedEOF, start, l.pos+3, 0)
	}

	l.read() // opening quote

	for {
		if l.pos >= len(l.src) || l.src[l.pos] == '\n' {
			return Token{}, l.errorAt(ErrUnterminatedString, start, l.pos, 0)
		}
		if l.src[l.pos] == '"' {
			l.read()
			return l.makeToken(LITERALSTRING, start), nil
		}
		l.read()
	}
}

func (l *Lexer) invalidCharacter() *LexError {
	r, size := utf8.DecodeRuneInString(l.src[l.pos:])
	return l.errorAt(ErrInvalidCharacter, l.position(), l.pos+size, r)
}

// errorAt builds a LexError located at pos whose context runs from the start
// of the current line up to end.
func (l *Lexer) errorAt(kind LexErrorKind, pos Position, end int, ch rune) *LexError {
	if end > len(l.src) {
		end = len(l.src)
	}
	endPos := pos
	endPos.Offset = end
	endPos.Column = pos.Column + utf8.RuneCountInString(l.src[pos.Offset:end])

	return &LexError{
		Kind:      kind,
		Context:   l.src[l.lineStart:end],
		Filename:  l.filename,
		Character: ch,
		Line:      pos.Line,
		Col:       pos.Column,
		Span:      SourceSpan{Start: pos, End: endPos},
	}
}

func isDigit(ch byte) bool {
	// Numeric literals are restricted to ASCII digits.
	return ch >= '0' && ch <= '9'
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func isSymbol(ch byte) bool {
	_, ok := symbols[ch]
	return ok
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}
