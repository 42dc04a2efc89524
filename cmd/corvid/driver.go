package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/corvid-lang/corvid/internal/ast"
	"github.com/corvid-lang/corvid/internal/config"
	"github.com/corvid-lang/corvid/internal/diag"
	"github.com/corvid-lang/corvid/internal/lexer"
	"github.com/corvid-lang/corvid/internal/parser"
)

// SourceExt is the extension check looks for when given a directory.
const SourceExt = ".cv"

// errReported signals that the failure was already rendered as a diagnostic.
var errReported = errors.New("errors reported")

type diagnoser interface {
	ToDiagnostic() diag.Diagnostic
}

// driver runs the lexer and parser over files and renders the results.
type driver struct {
	cfg    *config.Config
	stdout io.Writer
	stderr io.Writer
	logger *log.Logger
}

func newDriver(cfg *config.Config, stdout, stderr io.Writer) *driver {
	return &driver{
		cfg:    cfg,
		stdout: stdout,
		stderr: stderr,
		logger: log.New(stderr, "[corvid] ", 0),
	}
}

// parserOptions builds the parser options the configuration asks for. Trace
// records go to traceW.
func (d *driver) parserOptions(filename string, traceW io.Writer) []parser.Option {
	opts := []parser.Option{parser.WithFilename(filename)}
	if d.cfg.Parser.RequireEnd {
		opts = append(opts, parser.WithRequireEnd())
	}
	if d.cfg.Parser.Trace {
		opts = append(opts, parser.WithTracer(parser.TraceTo(traceW)))
	}
	return opts
}

// tokenize reads filename and returns its source with the token stream.
func (d *driver) tokenize(filename string) (string, []lexer.Token, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	src := string(data)
	tokens, err := lexer.Tokenize(src, filename)
	return src, tokens, err
}

// parseFile tokenizes and parses one expression from filename.
func (d *driver) parseFile(filename string, traceW io.Writer) (string, ast.Expr, error) {
	src, tokens, err := d.tokenize(filename)
	if err != nil {
		return src, nil, err
	}

	expr, err := parser.ParseExpression(tokens, d.parserOptions(filename, traceW)...)
	return src, expr, err
}

// report renders err to w. Lexer and parser failures become diagnostics
// against src; anything else goes through the logger.
func (d *driver) report(w io.Writer, filename, src string, err error) {
	var de diagnoser
	if !errors.As(err, &de) {
		logger := d.logger
		if w != d.stderr {
			logger = log.New(w, d.logger.Prefix(), d.logger.Flags())
		}
		logger.Printf("%s: %v", filename, err)
		return
	}

	f := diag.NewFormatter(w, diag.WithColor(d.cfg.ColorMode()))
	f.AddSource(filename, src)
	f.Format(de.ToDiagnostic())
}

func (d *driver) printTokens(tokens []lexer.Token) {
	for _, tok := range tokens {
		fmt.Fprintln(d.stdout, tok)
	}
}

// render writes expr in format.
func (d *driver) render(w io.Writer, expr ast.Expr, format string) error {
	switch format {
	case config.FormatTree:
		ast.Fprint(w, expr)
	case config.FormatSExp:
		fmt.Fprintln(w, ast.Format(expr))
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(ast.Dump(expr)); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(ast.Dump(expr)); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	return nil
}

// findSourceFiles expands directories into the source files beneath them.
// Plain file arguments are kept as given.
func findSourceFiles(paths []string) ([]string, error) {
	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		err = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Skip hidden directories
			if info.IsDir() && p != path && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			if !info.IsDir() && filepath.Ext(p) == SourceExt {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("error finding source files: %w", err)
		}
	}

	return files, nil
}
