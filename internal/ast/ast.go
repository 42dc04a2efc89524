package ast

import "github.com/corvid-lang/corvid/internal/lexer"

// Node represents any AST node with an associated source span.
type Node interface {
	Span() lexer.SourceSpan
}

// Expr represents an expression node. The set of implementations is closed:
// *LiteralExpr, *BinaryExpr and *UnaryExpr.
//
// Nodes are immutable once built except for the type slot, which is reserved
// for a later type-checking pass.
type Expr interface {
	Node
	TypeInfo() Type
	SetTypeInfo(Type)
	exprNode()
}

// typeSlot carries the optional inferred or declared type of an expression.
type typeSlot struct {
	typ Type
}

// TypeInfo returns the recorded type, or nil when none has been set.
func (s *typeSlot) TypeInfo() Type { return s.typ }

// SetTypeInfo records the expression type.
func (s *typeSlot) SetTypeInfo(t Type) { s.typ = t }

// LiteralExpr represents an integer, float, bool or string literal.
type LiteralExpr struct {
	Value LiteralValue
	span  lexer.SourceSpan
	typeSlot
}

// NewLiteralExpr constructs a literal node.
func NewLiteralExpr(value LiteralValue, span lexer.SourceSpan) *LiteralExpr {
	return &LiteralExpr{
		Value: value,
		span:  span,
	}
}

// Span returns the literal span.
func (e *LiteralExpr) Span() lexer.SourceSpan { return e.span }

// exprNode marks LiteralExpr as an expression.
func (*LiteralExpr) exprNode() {}

// BinaryExpr represents an infix binary expression.
type BinaryExpr struct {
	Left  Expr
	Op    BinaryOp
	Right Expr
	typeSlot
}

// NewBinaryExpr constructs a binary expression node.
func NewBinaryExpr(left Expr, op BinaryOp, right Expr) *BinaryExpr {
	return &BinaryExpr{
		Left:  left,
		Op:    op,
		Right: right,
	}
}

// Span covers both operands.
func (e *BinaryExpr) Span() lexer.SourceSpan {
	return lexer.Combine(e.Left.Span(), e.Right.Span())
}

// exprNode marks BinaryExpr as an expression.
func (*BinaryExpr) exprNode() {}

// UnaryExpr represents a prefix operator applied to one operand. The parser
// does not produce it yet; later passes must still handle it.
type UnaryExpr struct {
	Op      UnaryOp
	Operand Expr
	opSpan  lexer.SourceSpan
	typeSlot
}

// NewUnaryExpr constructs a unary expression node. opSpan locates the operator.
func NewUnaryExpr(op UnaryOp, opSpan lexer.SourceSpan, operand Expr) *UnaryExpr {
	return &UnaryExpr{
		Op:      op,
		Operand: operand,
		opSpan:  opSpan,
	}
}

// Span runs from the operator to the end of the operand.
func (e *UnaryExpr) Span() lexer.SourceSpan {
	return lexer.Combine(e.opSpan, e.Operand.Span())
}

// exprNode marks UnaryExpr as an expression.
func (*UnaryExpr) exprNode() {}

// BinaryOp enumerates the infix operators.
type BinaryOp int

const (
	// Arithmetic
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Mod

	// Comparison
	Equal
	NotEqual
	Less
	LessEqual
	Greater
	GreaterEqual

	// Logical
	And
	Or
)

var binaryOpNames = [...]string{
	Add:          "Add",
	Sub:          "Sub",
	Mul:          "Mul",
	Div:          "Div",
	Mod:          "Mod",
	Equal:        "Equal",
	NotEqual:     "NotEqual",
	Less:         "Less",
	LessEqual:    "LessEqual",
	Greater:      "Greater",
	GreaterEqual: "GreaterEqual",
	And:          "And",
	Or:           "Or",
}

var binaryOpSymbols = [...]string{
	Add:          "+",
	Sub:          "-",
	Mul:          "*",
	Div:          "/",
	Mod:          "%",
	Equal:        "==",
	NotEqual:     "!=",
	Less:         "<",
	LessEqual:    "<=",
	Greater:      ">",
	GreaterEqual: ">=",
	And:          "&",
	Or:           "|",
}

func (op BinaryOp) String() string {
	if op < 0 || int(op) >= len(binaryOpNames) {
		return "BinaryOp(?)"
	}
	return binaryOpNames[op]
}

// Symbol returns the source spelling of the operator.
func (op BinaryOp) Symbol() string {
	if op < 0 || int(op) >= len(binaryOpSymbols) {
		return "?"
	}
	return binaryOpSymbols[op]
}

// BinaryOpFromToken maps an operator token to its binary operator.
// Equal, NotEqual, LessEqual and GreaterEqual have no token yet.
func BinaryOpFromToken(kind lexer.TokenKind) (BinaryOp, bool) {
	switch kind {
	case lexer.PLUS:
		return Add, true
	case lexer.DASH:
		return Sub, true
	case lexer.STAR:
		return Mul, true
	case lexer.SLASH:
		return Div, true
	case lexer.MODULO:
		return Mod, true
	case lexer.LESS:
		return Less, true
	case lexer.GREATER:
		return Greater, true
	case lexer.AMPER:
		return And, true
	case lexer.VERTICAL_BAR:
		return Or, true
	default:
		return 0, false
	}
}

// UnaryOp enumerates the prefix operators.
type UnaryOp int

const (
	Ref   UnaryOp = iota // &
	Deref                // *
	Neg                  // -
	Not                  // !
)

func (op UnaryOp) String() string {
	switch op {
	case Ref:
		return "Ref"
	case Deref:
		return "Deref"
	case Neg:
		return "Neg"
	case Not:
		return "Not"
	default:
		return "UnaryOp(?)"
	}
}

// Symbol returns the source spelling of the operator.
func (op UnaryOp) Symbol() string {
	switch op {
	case Ref:
		return "&"
	case Deref:
		return "*"
	case Neg:
		return "-"
	case Not:
		return "!"
	default:
		return "?"
	}
}
