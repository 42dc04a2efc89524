package ast

import (
	"fmt"
	"io"
	"strings"
)

const indentSize = 2

type prettyPrinter struct {
	w     io.Writer
	depth int
}

// Fprint writes an indented tree of expr to w, one node per line.
func Fprint(w io.Writer, expr Expr) {
	p := &prettyPrinter{w: w}
	p.printExpr(expr)
}

func (p *prettyPrinter) println(format string, a ...interface{}) {
	fmt.Fprint(p.w, strings.Repeat(" ", p.depth*indentSize))
	fmt.Fprintf(p.w, format+"\n", a...)
}

func (p *prettyPrinter) indent() {
	p.depth++
}

func (p *prettyPrinter) dedent() {
	p.depth--
	if p.depth < 0 {
		p.depth = 0
	}
}

func (p *prettyPrinter) printExpr(expr Expr) {
	switch e := expr.(type) {
	case *LiteralExpr:
		p.println("LiteralExpr %s(%s) %s%s", literalKind(e.Value), e.Value, e.Span(), typeSuffix(e))
	case *BinaryExpr:
		p.println("BinaryExpr %s %s%s", e.Op, e.Span(), typeSuffix(e))
		p.indent()
		p.printExpr(e.Left)
		p.printExpr(e.Right)
		p.dedent()
	case *UnaryExpr:
		p.println("UnaryExpr %s %s%s", e.Op, e.Span(), typeSuffix(e))
		p.indent()
		p.printExpr(e.Operand)
		p.dedent()
	case nil:
		p.println("<nil>")
	default:
		panic(fmt.Sprintf("ast.Fprint: unexpected expression type %T", e))
	}
}

func typeSuffix(e Expr) string {
	if t := e.TypeInfo(); t != nil {
		return " : " + t.String()
	}
	return ""
}

func literalKind(v LiteralValue) string {
	switch v.(type) {
	case IntValue:
		return "Int"
	case FloatValue:
		return "Float"
	case BoolValue:
		return "Bool"
	case StrValue:
		return "Str"
	default:
		return "?"
	}
}

// Format renders expr as a parenthesised prefix form, e.g. (+ 1 (* 2 3)).
// Tests and the CLI use it to show grouping at a glance.
func Format(expr Expr) string {
	var sb strings.Builder
	writeSExpr(&sb, expr)
	return sb.String()
}

func writeSExpr(sb *strings.Builder, expr Expr) {
	switch e := expr.(type) {
	case *LiteralExpr:
		sb.WriteString(e.Value.String())
	case *BinaryExpr:
		sb.WriteString("(" + e.Op.Symbol() + " ")
		writeSExpr(sb, e.Left)
		sb.WriteByte(' ')
		writeSExpr(sb, e.Right)
		sb.WriteByte(')')
	case *UnaryExpr:
		sb.WriteString("(" + e.Op.Symbol() + " ")
		writeSExpr(sb, e.Operand)
		sb.WriteByte(')')
	case nil:
		sb.WriteString("<nil>")
	default:
		panic(fmt.Sprintf("ast.Format: unexpected expression type %T", e))
	}
}

// DumpNode is a serialisable view of an expression tree.
type DumpNode struct {
	Kind     string      `json:"kind" yaml:"kind"`
	Op       string      `json:"op,omitempty" yaml:"op,omitempty"`
	Literal  string      `json:"literal,omitempty" yaml:"literal,omitempty"`
	Value    string      `json:"value,omitempty" yaml:"value,omitempty"`
	Type     string      `json:"type,omitempty" yaml:"type,omitempty"`
	Start    string      `json:"start" yaml:"start"`
	End      string      `json:"end" yaml:"end"`
	Children []*DumpNode `json:"children,omitempty" yaml:"children,omitempty"`
}

// Dump converts expr into a DumpNode tree.
func Dump(expr Expr) *DumpNode {
	if expr == nil {
		return nil
	}

	span := expr.Span()
	node := &DumpNode{
		Start: span.Start.String(),
		End:   span.End.String(),
	}
	if t := expr.TypeInfo(); t != nil {
		node.Type = t.String()
	}

	switch e := expr.(type) {
	case *LiteralExpr:
		node.Kind = "LiteralExpr"
		node.Literal = literalKind(e.Value)
		node.Value = e.Value.String()
	case *BinaryExpr:
		node.Kind = "BinaryExpr"
		node.Op = e.Op.String()
		node.Children = []*DumpNode{Dump(e.Left), Dump(e.Right)}
	case *UnaryExpr:
		node.Kind = "UnaryExpr"
		node.Op = e.Op.String()
		node.Children = []*DumpNode{Dump(e.Operand)}
	default:
		panic(fmt.Sprintf("ast.Dump: unexpected expression type %T", e))
	}

	return node
}
