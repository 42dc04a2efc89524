package lexer

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustTokenize(t *testing.T, input string) []Token {
	t.Helper()

	tokens, err := Tokenize(input, "test.cv")
	if err != nil {
		t.Fatalf("Tokenize(%q) failed: %v", input, err)
	}
	return tokens
}

func TestTokenize_Basic(t *testing.T) {
	input := `x = 10 + y;`

	tests := []struct {
		expectedKind  TokenKind
		expectedValue string
	}{
		{IDENTIFIER, "x"},
		{EQUAL, "="},
		{INTEGER, "10"},
		{PLUS, "+"},
		{IDENTIFIER, "y"},
		{SEMICOLON, ";"},
	}

	tokens := mustTokenize(t, input)
	if len(tokens) != len(tests) {
		t.Fatalf("expected %d tokens, got %d: %v", len(tests), len(tokens), tokens)
	}

	for i, tt := range tests {
		tok := tokens[i]

		if tok.Kind != tt.expectedKind {
			t.Fatalf("tests[%d] - kind wrong. expected=%q, got=%q",
				i, tt.expectedKind, tok.Kind)
		}

		if tok.Value != tt.expectedValue {
			t.Fatalf("tests[%d] - value wrong. expected=%q, got=%q",
				i, tt.expectedValue, tok.Value)
		}
	}
}

func TestTokenize_Symbols(t *testing.T) {
	input := `+ - * / % = & | < > ! ( ) { } [ ] , : ;`

	expected := []TokenKind{
		PLUS, DASH, STAR, SLASH, MODULO, EQUAL, AMPER, VERTICAL_BAR, LESS, GREATER, NEGATION,
		LPAREN, RPAREN, LBRACE, RBRACE, LBRACKET, RBRACKET, COMMA, COLON, SEMICOLON,
	}

	tokens := mustTokenize(t, input)
	var got []TokenKind
	for _, tok := range tokens {
		got = append(got, tok.Kind)
	}

	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("(-want, +got)\n%s", diff)
	}
}

func TestTokenize_Keywords(t *testing.T) {
	input := "if else while for func return function iffy"

	expected := []TokenKind{IF, ELSE, WHILE, FOR, FUNCTION, RETURN, IDENTIFIER, IDENTIFIER}

	tokens := mustTokenize(t, input)
	var got []TokenKind
	for _, tok := range tokens {
		got = append(got, tok.Kind)
	}

	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("(-want, +got)\n%s", diff)
	}
}

func TestTokenize_Numbers(t *testing.T) {
	tests := []struct {
		input string
		kinds []TokenKind
		vals  []string
	}{
		{"42", []TokenKind{INTEGER}, []string{"42"}},
		{"3.14", []TokenKind{FLOAT}, []string{"3.14"}},
		{".5", []TokenKind{FLOAT}, []string{".5"}},
		{"7.", []TokenKind{FLOAT}, []string{"7."}},
		{"12abc", []TokenKind{INTEGER, IDENTIFIER}, []string{"12", "abc"}},
		{"1.5+2", []TokenKind{FLOAT, PLUS, INTEGER}, []string{"1.5", "+", "2"}},
		{"007", []TokenKind{INTEGER}, []string{"007"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := mustTokenize(t, tt.input)
			if len(tokens) != len(tt.kinds) {
				t.Fatalf("expected %d tokens, got %d: %v", len(tt.kinds), len(tokens), tokens)
			}
			for i, tok := range tokens {
				if tok.Kind != tt.kinds[i] || tok.Value != tt.vals[i] {
					t.Fatalf("token %d: expected %s %q, got %s %q", i, tt.kinds[i], tt.vals[i], tok.Kind, tok.Value)
				}
			}
		})
	}
}

func TestTokenize_SecondDotAbortsFloat(t *testing.T) {
	_, err := Tokenize("1.2.3", "test.cv")
	if err == nil {
		t.Fatalf("expected an error")
	}

	lexErr := err.(*LexError)
	if lexErr.Kind != ErrInvalidCharacter || lexErr.Character != '.' {
		t.Fatalf("expected invalid '.', got %v", lexErr)
	}
	if lexErr.Line != 1 || lexErr.Col != 2 {
		t.Fatalf("expected 1:2, got %d:%d", lexErr.Line, lexErr.Col)
	}
}

func TestTokenize_IdentifiersWithUnderscoresAndDigits(t *testing.T) {
	tokens := mustTokenize(t, "_tmp foo_bar9 x1")

	var got []string
	for _, tok := range tokens {
		if tok.Kind != IDENTIFIER {
			t.Fatalf("expected IDENTIFIER, got %s for %q", tok.Kind, tok.Value)
		}
		got = append(got, tok.Value)
	}

	if diff := cmp.Diff([]string{"_tmp", "foo_bar9", "x1"}, got); diff != "" {
		t.Errorf("(-want, +got)\n%s", diff)
	}
}

func TestTokenize_String(t *testing.T) {
	tokens := mustTokenize(t, `"hello world" ""`)

	if len(tokens) != 2 {
		t.Fatalf("expected 2 tokens, got %d", len(tokens))
	}
	if tokens[0].Kind != LITERALSTRING || tokens[0].Value != `"hello world"` {
		t.Fatalf("unexpected first token %v", tokens[0])
	}
	if tokens[1].Kind != LITERALSTRING || tokens[1].Value != `""` {
		t.Fatalf("unexpected second token %v", tokens[1])
	}
}

func TestTokenize_Spans(t *testing.T) {
	input := "ab + 1\n  cd"

	want := []Token{
		{Kind: IDENTIFIER, Value: "ab", Span: SourceSpan{
			Start: Position{Line: 1, Column: 1, Offset: 0},
			End:   Position{Line: 1, Column: 3, Offset: 2},
		}},
		{Kind: PLUS, Value: "+", Span: SourceSpan{
			Start: Position{Line: 1, Column: 4, Offset: 3},
			End:   Position{Line: 1, Column: 5, Offset: 4},
		}},
		{Kind: INTEGER, Value: "1", Span: SourceSpan{
			Start: Position{Line: 1, Column: 6, Offset: 5},
			End:   Position{Line: 1, Column: 7, Offset: 6},
		}},
		{Kind: IDENTIFIER, Value: "cd", Span: SourceSpan{
			Start: Position{Line: 2, Column: 3, Offset: 9},
			End:   Position{Line: 2, Column: 5, Offset: 11},
		}},
	}

	got := mustTokenize(t, input)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want, +got)\n%s", diff)
	}
}

func TestTokenize_ColumnsCountRunes(t *testing.T) {
	tokens := mustTokenize(t, "héllo + 1")

	if tokens[0].Value != "héllo" {
		t.Fatalf("expected identifier %q, got %q", "héllo", tokens[0].Value)
	}
	if got := tokens[1].Span.Start.Column; got != 7 {
		t.Fatalf("expected '+' at column 7, got %d", got)
	}
	if got := tokens[1].Span.Start.Offset; got != 7 {
		t.Fatalf("expected '+' at byte offset 7, got %d", got)
	}
}

func TestTokenize_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\n \t\r\n"} {
		tokens, err := Tokenize(input, "test.cv")
		if err != nil {
			t.Fatalf("Tokenize(%q) failed: %v", input, err)
		}
		if len(tokens) != 0 {
			t.Fatalf("Tokenize(%q): expected no tokens, got %v", input, tokens)
		}
	}
}

// Token values must be views into the source, so the text between two tokens
// is exactly the whitespace the lexer skipped.
func TestTokenize_CoverageReproducesInput(t *testing.T) {
	inputs := []string{
		"1 + 2 * 3",
		"if x { return y_1; }\nelse [a, b]: \"str ing\"",
		"  leading and trailing  \n",
		"a%b|c&d<e>f!g",
		"3.25 .5 7. 42",
	}

	for _, input := range inputs {
		tokens := mustTokenize(t, input)
		if got := reassemble(input, tokens); got != input {
			t.Fatalf("reassembled %q, want %q", got, input)
		}
	}
}

func TestTokenize_SpansAreMonotonic(t *testing.T) {
	input := "func f(a, b) {\n  return a * (b + 10.5);\n}\n"
	checkMonotonic(t, mustTokenize(t, input))
}

func TestTokenize_ClassificationIsIdempotent(t *testing.T) {
	input := `while (x < 10) { y = "s" % 3.5; }`
	for _, tok := range mustTokenize(t, input) {
		again := mustTokenize(t, tok.Value)
		if len(again) != 1 {
			t.Fatalf("re-tokenizing %q produced %d tokens", tok.Value, len(again))
		}
		if again[0].Kind != tok.Kind {
			t.Fatalf("re-tokenizing %q: kind %s, want %s", tok.Value, again[0].Kind, tok.Kind)
		}
	}
}

func TestLexerIsOneShot(t *testing.T) {
	l := New("1 + 2", "test.cv")

	first, err := l.Tokenize()
	if err != nil {
		t.Fatalf("first Tokenize failed: %v", err)
	}
	if len(first) != 3 {
		t.Fatalf("expected 3 tokens, got %d", len(first))
	}

	second, err := l.Tokenize()
	if err != nil {
		t.Fatalf("second Tokenize failed: %v", err)
	}
	if len(second) != 0 {
		t.Fatalf("expected an exhausted lexer, got %v", second)
	}
}

func TestSourceSpanCombine(t *testing.T) {
	a := SourceSpan{Start: Position{1, 1, 0}, End: Position{1, 2, 1}}
	b := SourceSpan{Start: Position{2, 4, 8}, End: Position{2, 7, 11}}

	got := Combine(a, b)
	want := SourceSpan{Start: a.Start, End: b.End}
	if got != want {
		t.Fatalf("Combine = %v, want %v", got, want)
	}
	if !got.IsValid() {
		t.Fatalf("expected combined span to be valid")
	}
	if got.Len() != 11 {
		t.Fatalf("expected length 11, got %d", got.Len())
	}
}

func FuzzTokenize(f *testing.F) {
	seeds := []string{
		"1 + 2 * 3",
		"if a { b } else { c }",
		`"abc" 4.5`,
		"x_1 % (y | z)",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		tokens, err := Tokenize(input, "fuzz.cv")
		if err != nil {
			if _, ok := err.(*LexError); !ok {
				t.Fatalf("unexpected error type %T", err)
			}
			return
		}
		checkMonotonic(t, tokens)
		if got := reassemble(input, tokens); got != input {
			t.Fatalf("reassembled %q, want %q", got, input)
		}
	})
}

// reassemble glues token values back together with the source text the lexer
// skipped between them, checking that the gaps are whitespace only.
func reassemble(input string, tokens []Token) string {
	var sb strings.Builder
	prev := 0
	for _, tok := range tokens {
		gap := input[prev:tok.Span.Start.Offset]
		if strings.TrimLeft(gap, " \t\r\n") != "" {
			return "<non-whitespace gap " + gap + ">"
		}
		sb.WriteString(gap)
		sb.WriteString(tok.Value)
		prev = tok.Span.End.Offset
	}
	sb.WriteString(input[prev:])
	return sb.String()
}

func checkMonotonic(t *testing.T, tokens []Token) {
	t.Helper()

	var prev Position
	for i, tok := range tokens {
		if tok.Span.End.Before(tok.Span.Start) {
			t.Fatalf("token %d %v: end before start", i, tok)
		}
		if i > 0 && tok.Span.Start.Before(prev) {
			t.Fatalf("token %d %v starts before previous token ends at %v", i, tok, prev)
		}
		if tok.Value != "" && tok.Span.Len() != len(tok.Value) {
			t.Fatalf("token %d %v: span length %d, value length %d", i, tok, tok.Span.Len(), len(tok.Value))
		}
		prev = tok.Span.End
	}
}
