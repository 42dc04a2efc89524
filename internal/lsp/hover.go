package lsp

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/corvid-lang/corvid/internal/ast"
	"github.com/corvid-lang/corvid/internal/lexer"
)

type TextDocumentPositionParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Position     Position               `json:"position"`
}

// HoverParams represents hover request parameters.
type HoverParams struct {
	TextDocumentPositionParams
}

// Hover represents hover information.
type Hover struct {
	Contents MarkupContent `json:"contents"`
	Range    *Range        `json:"range,omitempty"`
}

type MarkupContent struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

func (s *Server) handleHover(msg *jsonrpcMessage) *jsonrpcMessage {
	var params HoverParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return errorResponse(msg, codeInvalidParams, fmt.Sprintf("Invalid params: %v", err))
	}

	s.mu.RLock()
	doc, ok := s.Documents[params.TextDocument.URI]
	var hover *Hover
	if ok && doc.Expr != nil {
		hover = getHover(doc, params.Position)
	}
	s.mu.RUnlock()

	return &jsonrpcMessage{
		JSONRPC: "2.0",
		ID:      msg.ID,
		Result:  hover,
	}
}

// getHover describes the innermost expression under pos.
func getHover(doc *Document, pos Position) *Hover {
	offset := positionToOffset(doc.Content, pos)

	expr := findExprAt(doc.Expr, offset)
	if expr == nil {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("```corvid\n")
	sb.WriteString(ast.Format(expr))
	sb.WriteString("\n```\n")
	sb.WriteString(describeExpr(expr))
	if t := expr.TypeInfo(); t != nil {
		sb.WriteString(": " + t.String())
	}

	span := expr.Span()
	return &Hover{
		Contents: MarkupContent{
			Kind:  "markdown",
			Value: sb.String(),
		},
		Range: &Range{
			Start: spanPosition(span.Start),
			End:   spanPosition(span.End),
		},
	}
}

func describeExpr(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		return fmt.Sprintf("literal %s", e.Value)
	case *ast.BinaryExpr:
		return fmt.Sprintf("binary %s", e.Op)
	case *ast.UnaryExpr:
		return fmt.Sprintf("unary %s", e.Op)
	default:
		return fmt.Sprintf("%T", e)
	}
}

// findExprAt returns the deepest expression whose span contains offset.
func findExprAt(root ast.Expr, offset int) ast.Expr {
	var found ast.Expr
	ast.Walk(root, func(n ast.Node) bool {
		expr, ok := n.(ast.Expr)
		if !ok {
			return false
		}
		span := expr.Span()
		if offset < span.Start.Offset || offset >= span.End.Offset {
			return false // Stop walking this branch
		}
		found = expr
		return true
	})
	return found
}

func spanPosition(p lexer.Position) Position {
	return Position{Line: p.Line - 1, Character: p.Column - 1}
}

// positionToOffset converts a zero-based line and rune column to a byte offset.
func positionToOffset(content string, pos Position) int {
	line := 0
	col := 0

	for i, r := range content {
		if line == pos.Line && col == pos.Character {
			return i
		}
		if r == '\n' {
			if line == pos.Line {
				return i
			}
			line++
			col = 0
		} else {
			col++
		}
	}

	return len(content)
}

// offsetToPosition converts a byte offset to a zero-based line and rune column.
func offsetToPosition(content string, offset int) Position {
	var pos Position
	prefix := content[:offset]
	if i := strings.LastIndexByte(prefix, '\n'); i >= 0 {
		pos.Line = strings.Count(prefix, "\n")
		prefix = prefix[i+1:]
	}
	pos.Character = utf8.RuneCountInString(prefix)
	return pos
}
