package ast

import (
	"math/big"
	"strconv"
)

// LiteralValue is the payload of a LiteralExpr: IntValue, FloatValue,
// BoolValue or StrValue.
type LiteralValue interface {
	String() string
	literalValue()
}

var (
	// MaxInt128 and MinInt128 bound the values an IntValue may hold.
	MaxInt128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	MinInt128 = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
)

// FitsInt128 reports whether v is representable as a signed 128-bit integer.
func FitsInt128(v *big.Int) bool {
	return v.Cmp(MinInt128) >= 0 && v.Cmp(MaxInt128) <= 0
}

// IntValue is a signed 128-bit integer literal.
type IntValue struct {
	V *big.Int
}

// Int builds an IntValue from a machine integer.
func Int(v int64) IntValue {
	return IntValue{V: big.NewInt(v)}
}

func (v IntValue) String() string {
	if v.V == nil {
		return "0"
	}
	return v.V.String()
}

// FloatValue is a 64-bit floating point literal.
type FloatValue float64

func (v FloatValue) String() string {
	return strconv.FormatFloat(float64(v), 'g', -1, 64)
}

// BoolValue is a boolean literal.
type BoolValue bool

func (v BoolValue) String() string {
	return strconv.FormatBool(bool(v))
}

// StrValue is a string literal without its quotes.
type StrValue string

func (v StrValue) String() string {
	return strconv.Quote(string(v))
}

func (IntValue) literalValue()   {}
func (FloatValue) literalValue() {}
func (BoolValue) literalValue()  {}
func (StrValue) literalValue()   {}
