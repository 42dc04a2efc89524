package ast

import (
	"fmt"
	"math/big"
	"strconv"
)

// Type is the placeholder typing slot attached to expressions. It is a closed
// set of primitive types, each of which may carry a known literal value.
// Nothing in the front end populates it yet.
type Type interface {
	// Name returns the type name as written in source, e.g. "i64".
	Name() string
	String() string
	typeNode()
}

// Int16Type is a signed 16-bit integer.
type Int16Type struct{ Value *int16 }

// Int32Type is a signed 32-bit integer.
type Int32Type struct{ Value *int32 }

// Int64Type is a signed 64-bit integer.
type Int64Type struct{ Value *int64 }

// Int128Type is a signed 128-bit integer.
type Int128Type struct{ Value *big.Int }

// Float32Type is a 32-bit float.
type Float32Type struct{ Value *float32 }

// Float64Type is a 64-bit float.
type Float64Type struct{ Value *float64 }

// StringType is a string.
type StringType struct{ Value *string }

func (Int16Type) Name() string   { return "i16" }
func (Int32Type) Name() string   { return "i32" }
func (Int64Type) Name() string   { return "i64" }
func (Int128Type) Name() string  { return "i128" }
func (Float32Type) Name() string { return "f32" }
func (Float64Type) Name() string { return "f64" }
func (StringType) Name() string  { return "string" }

func (t Int16Type) String() string { return withValue(t.Name(), t.Value) }
func (t Int32Type) String() string { return withValue(t.Name(), t.Value) }
func (t Int64Type) String() string { return withValue(t.Name(), t.Value) }

func (t Int128Type) String() string {
	if t.Value == nil {
		return t.Name()
	}
	return t.Name() + "(" + t.Value.String() + ")"
}

func (t Float32Type) String() string {
	if t.Value == nil {
		return t.Name()
	}
	return t.Name() + "(" + strconv.FormatFloat(float64(*t.Value), 'g', -1, 32) + ")"
}

func (t Float64Type) String() string {
	if t.Value == nil {
		return t.Name()
	}
	return t.Name() + "(" + strconv.FormatFloat(*t.Value, 'g', -1, 64) + ")"
}

func (t StringType) String() string {
	if t.Value == nil {
		return t.Name()
	}
	return t.Name() + "(" + strconv.Quote(*t.Value) + ")"
}

func withValue[T int16 | int32 | int64](name string, v *T) string {
	if v == nil {
		return name
	}
	return fmt.Sprintf("%s(%d)", name, *v)
}

func (Int16Type) typeNode()   {}
func (Int32Type) typeNode()   {}
func (Int64Type) typeNode()   {}
func (Int128Type) typeNode()  {}
func (Float32Type) typeNode() {}
func (Float64Type) typeNode() {}
func (StringType) typeNode()  {}
