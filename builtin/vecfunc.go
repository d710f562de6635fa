package builtin

import (
	"fmt"
	"math"
)

// VecFunc is an element-wise numeric function over float64 slices, with
// scalar broadcasting. Unlike plain Go functions, a VecFunc carries its own
// name: the codec special-cases it to the fixed vecmath namespace when
// representing, since the underlying closure has no stable identity.
type VecFunc struct {
	name  string
	unary func(float64) float64
	binop func(a, b float64) float64
}

// FuncName returns the function's name within the vecmath namespace.
func (f *VecFunc) FuncName() string { return f.name }

// Arity reports the number of operands the function takes.
func (f *VecFunc) Arity() int {
	if f.binop != nil {
		return 2
	}
	return 1
}

// Apply evaluates the function element-wise. Operands may be float64
// scalars, ints, or []float64 slices; slices must agree in length and a
// scalar broadcasts against a slice.
func (f *VecFunc) Apply(operands ...any) (any, error) {
	if len(operands) != f.Arity() {
		return nil, fmt.Errorf("builtin: vecmath.%s takes %d operands, got %d", f.name, f.Arity(), len(operands))
	}
	if f.binop == nil {
		return mapUnary(f.unary, operands[0])
	}
	return mapBinary(f.binop, operands[0], operands[1])
}

func mapUnary(fn func(float64) float64, v any) (any, error) {
	switch x := v.(type) {
	case []float64:
		out := make([]float64, len(x))
		for i, e := range x {
			out[i] = fn(e)
		}
		return out, nil
	default:
		s, err := asScalar(v)
		if err != nil {
			return nil, err
		}
		return fn(s), nil
	}
}

func mapBinary(fn func(a, b float64) float64, a, b any) (any, error) {
	as, aIsSlice := a.([]float64)
	bs, bIsSlice := b.([]float64)
	switch {
	case aIsSlice && bIsSlice:
		if len(as) != len(bs) {
			return nil, fmt.Errorf("builtin: operand lengths differ: %d vs %d", len(as), len(bs))
		}
		out := make([]float64, len(as))
		for i := range as {
			out[i] = fn(as[i], bs[i])
		}
		return out, nil
	case aIsSlice:
		s, err := asScalar(b)
		if err != nil {
			return nil, err
		}
		out := make([]float64, len(as))
		for i := range as {
			out[i] = fn(as[i], s)
		}
		return out, nil
	case bIsSlice:
		s, err := asScalar(a)
		if err != nil {
			return nil, err
		}
		out := make([]float64, len(bs))
		for i := range bs {
			out[i] = fn(s, bs[i])
		}
		return out, nil
	default:
		x, err := asScalar(a)
		if err != nil {
			return nil, err
		}
		y, err := asScalar(b)
		if err != nil {
			return nil, err
		}
		return fn(x, y), nil
	}
}

func asScalar(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	default:
		return 0, fmt.Errorf("builtin: not a numeric operand: %T", v)
	}
}

// The element-wise functions of the vecmath namespace.
var (
	VecAdd      = &VecFunc{name: "add", binop: func(a, b float64) float64 { return a + b }}
	VecSubtract = &VecFunc{name: "subtract", binop: func(a, b float64) float64 { return a - b }}
	VecMultiply = &VecFunc{name: "multiply", binop: func(a, b float64) float64 { return a * b }}
	VecPower    = &VecFunc{name: "power", binop: math.Pow}
	VecLog      = &VecFunc{name: "log", unary: math.Log}
)
