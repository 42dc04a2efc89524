package ast

import "fmt"

// Walk traverses the AST starting from node, calling fn for each node.
// If fn returns false, Walk stops traversing that branch.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *LiteralExpr:
		// leaf

	case *BinaryExpr:
		Walk(n.Left, fn)
		Walk(n.Right, fn)

	case *UnaryExpr:
		Walk(n.Operand, fn)

	default:
		panic(fmt.Sprintf("ast.Walk: unexpected node type %T", n))
	}
}

// TypeVisitor computes the type of each expression variant. No checker ships
// with the front end; the interface fixes the shape a checker must take.
type TypeVisitor interface {
	VisitLiteral(*LiteralExpr) (Type, error)
	VisitBinary(*BinaryExpr) (Type, error)
	VisitUnary(*UnaryExpr) (Type, error)
}

// Accept dispatches expr to the matching visitor method and records the
// resulting type in the node's type slot.
func Accept(v TypeVisitor, expr Expr) (Type, error) {
	var (
		t   Type
		err error
	)

	switch e := expr.(type) {
	case *LiteralExpr:
		t, err = v.VisitLiteral(e)
	case *BinaryExpr:
		t, err = v.VisitBinary(e)
	case *UnaryExpr:
		t, err = v.VisitUnary(e)
	default:
		return nil, fmt.Errorf("ast.Accept: unexpected expression type %T", expr)
	}

	if err != nil {
		return nil, err
	}
	expr.SetTypeInfo(t)
	return t, nil
}
