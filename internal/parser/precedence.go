package parser

import "github.com/corvid-lang/corvid/internal/lexer"

// BindingPower ranks how tightly an infix operator holds its operands. A
// higher value binds tighter. BindingNone marks tokens that cannot continue
// an expression and is the minimum passed to a top-level parse.
type BindingPower int

const (
	BindingNone BindingPower = iota
	BindingOr
	BindingAnd
	BindingComparison
	BindingAdditive
	BindingMultiplicative
)

var bindingPowers = map[lexer.TokenKind]BindingPower{
	lexer.VERTICAL_BAR: BindingOr,
	lexer.AMPER:        BindingAnd,
	lexer.LESS:         BindingComparison,
	lexer.GREATER:      BindingComparison,
	lexer.PLUS:         BindingAdditive,
	lexer.DASH:         BindingAdditive,
	lexer.STAR:         BindingMultiplicative,
	lexer.SLASH:        BindingMultiplicative,
	lexer.MODULO:       BindingMultiplicative,
}

// BindingPowerOf returns the binding power of kind in infix position.
func BindingPowerOf(kind lexer.TokenKind) BindingPower {
	if bp, ok := bindingPowers[kind]; ok {
		return bp
	}
	return BindingNone
}

func (bp BindingPower) String() string {
	switch bp {
	case BindingNone:
		return "none"
	case BindingOr:
		return "or"
	case BindingAnd:
		return "and"
	case BindingComparison:
		return "comparison"
	case BindingAdditive:
		return "additive"
	case BindingMultiplicative:
		return "multiplicative"
	default:
		return "BindingPower(?)"
	}
}
