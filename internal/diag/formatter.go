package diag

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ColorMode selects whether the formatter emits ANSI colours.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode accepts auto, always or never.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(strings.ToLower(s)); m {
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	case "":
		return ColorAuto, nil
	default:
		return "", fmt.Errorf("unknown color mode %q", s)
	}
}

type styles struct {
	severity lipgloss.Style
	message  lipgloss.Style
	location lipgloss.Style
	gutter   lipgloss.Style
	caret    lipgloss.Style
	note     lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		severity: r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		message:  r.NewStyle().Bold(true),
		location: r.NewStyle().Foreground(lipgloss.Color("12")),
		gutter:   r.NewStyle().Foreground(lipgloss.Color("10")),
		caret:    r.NewStyle().Foreground(lipgloss.Color("9")),
		note:     r.NewStyle().Foreground(lipgloss.Color("14")),
	}
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithColor forces or disables colour output.
func WithColor(mode ColorMode) Option {
	return func(f *Formatter) {
		f.mode = mode
	}
}

// Formatter renders diagnostics as a header, a location line and the
// offending source line with a caret underneath.
type Formatter struct {
	w           io.Writer
	mode        ColorMode
	styles      styles
	sourceCache map[string]string // source text by filename
}

// NewFormatter creates a formatter writing to w.
func NewFormatter(w io.Writer, opts ...Option) *Formatter {
	f := &Formatter{
		w:           w,
		mode:        ColorAuto,
		sourceCache: make(map[string]string),
	}
	for _, opt := range opts {
		opt(f)
	}

	r := lipgloss.NewRenderer(w)
	switch f.mode {
	case ColorAlways:
		r.SetColorProfile(termenv.ANSI256)
	case ColorNever:
		r.SetColorProfile(termenv.Ascii)
	}
	f.styles = newStyles(r)

	return f
}

// AddSource registers source text so diagnostics without a Context can still
// show the offending line.
func (f *Formatter) AddSource(filename, src string) {
	f.sourceCache[filename] = src
}

// Format writes one diagnostic.
func (f *Formatter) Format(d Diagnostic) {
	f.printHeader(d)

	if !d.Span.IsValid() {
		f.printHelp(d)
		return
	}

	fmt.Fprintf(f.w, "  %s %s\n", f.styles.location.Render("-->"), f.styles.location.Render(d.Span.String()))

	context, ok := f.contextFor(d)
	if ok {
		f.printSnippet(d, context)
	}

	f.printHelp(d)
}

// Sprint renders a diagnostic into a string.
func Sprint(d Diagnostic, opts ...Option) string {
	var sb strings.Builder
	NewFormatter(&sb, opts...).Format(d)
	return sb.String()
}

// printHeader prints the error header (error[CODE]: message).
func (f *Formatter) printHeader(d Diagnostic) {
	severity := string(d.Severity)
	if severity == "" {
		severity = string(SeverityError)
	}

	if d.Code != "" {
		severity += "[" + string(d.Code) + "]"
	}
	fmt.Fprintf(f.w, "%s: %s\n", f.styles.severity.Render(severity), f.styles.message.Render(d.Message))
}

// contextFor returns the source line text the caret is drawn under.
func (f *Formatter) contextFor(d Diagnostic) (string, bool) {
	if d.Context != "" {
		return d.Context, true
	}

	src, ok := f.sourceCache[d.Span.Filename]
	if !ok {
		return "", false
	}

	lines := strings.Split(src, "\n")
	if d.Span.Line > len(lines) {
		return "", false
	}
	return strings.TrimRight(lines[d.Span.Line-1], "\r"), true
}

func (f *Formatter) printSnippet(d Diagnostic, context string) {
	lineNum := fmt.Sprintf("%d", d.Span.Line)
	pad := strings.Repeat(" ", len(lineNum))

	bar := f.styles.gutter.Render("|")
	fmt.Fprintf(f.w, "%s %s\n", pad, bar)
	fmt.Fprintf(f.w, "%s %s %s\n", f.styles.gutter.Render(lineNum), bar, context)

	label := d.Label
	if label == "" {
		label = d.Message
	}
	carets := f.styles.caret.Render(strings.Repeat("^", caretWidth(d.Span, context)) + " " + label)
	fmt.Fprintf(f.w, "%s %s %s%s\n", pad, bar, indentTo(context, d.Span.Column), carets)
}

// printHelp prints notes and help text.
func (f *Formatter) printHelp(d Diagnostic) {
	for _, note := range d.Notes {
		fmt.Fprintf(f.w, "  %s %s\n", f.styles.note.Render("= note:"), note)
	}
	if d.Help != "" {
		fmt.Fprintf(f.w, "  %s %s\n", f.styles.note.Render("= help:"), d.Help)
	}
}

// indentTo returns the whitespace that places a caret under column, keeping
// tabs from the context so the caret lines up in a terminal.
func indentTo(context string, column int) string {
	var sb strings.Builder
	col := 1
	for _, r := range context {
		if col >= column {
			break
		}
		if r == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
		col++
	}
	for ; col < column; col++ {
		sb.WriteByte(' ')
	}
	return sb.String()
}

// caretWidth underlines the span, clipped to what remains of the context line.
func caretWidth(span Span, context string) int {
	width := span.End - span.Start
	if rest := utf8.RuneCountInString(context) - (span.Column - 1); rest > 0 && width > rest {
		width = rest
	}
	return max(1, width)
}
