// Package builtin installs the standard symbol table used by the default
// configuration surface: arithmetic operators, scalar math, element-wise
// vector math, a generic attribute-bag factory and the modifier factories.
//
// The embedding application may register additional modules on the same
// registry; nothing here is special beyond being registered first.
package builtin

import (
	"math"

	"github.com/Marohn-Group/mrfmsim-yaml/model"
	"github.com/Marohn-Group/mrfmsim-yaml/symbols"
)

// Register installs the standard modules into reg.
func Register(reg *symbols.Registry) {
	reg.RegisterModule("operator", symbols.NewNamespace().
		Add("add", opAdd).
		Add("sub", opSub).
		Add("mul", opMul).
		Add("truediv", opDiv))

	emath := symbols.NewNamespace().
		Add("power", powAlias).
		Add("log", logBase)
	reg.RegisterModule("math", symbols.NewNamespace().
		Add("pow", math.Pow).
		Add("log", logBase).
		Add("exp", math.Exp).
		Add("sqrt", math.Sqrt).
		Add("emath", emath))

	reg.RegisterModule("vecmath", symbols.NewNamespace().
		Add("add", VecAdd).
		Add("subtract", VecSubtract).
		Add("multiply", VecMultiply).
		Add("power", VecPower).
		Add("log", VecLog))

	reg.RegisterModule("structs", symbols.NewNamespace().
		Add("namespace", symbols.Factory(newNamespaceValue)))

	reg.RegisterModule("modifier", symbols.NewNamespace().
		Add("loop_input", symbols.Factory(LoopInput)).
		Add("print_output", symbols.Factory(PrintOutput)))
}

func opAdd(a, b float64) float64 { return a + b }
func opSub(a, b float64) float64 { return a - b }
func opMul(a, b float64) float64 { return a * b }
func opDiv(a, b float64) float64 { return a / b }

// powAlias keeps math.emath.power distinct from math.pow in the reverse
// index, mirroring the two spellings the textual surface accepts.
func powAlias(a, b float64) float64 { return math.Pow(a, b) }

// logBase is log of a in base b.
func logBase(a, b float64) float64 { return math.Log(a) / math.Log(b) }

func newNamespaceValue(args *model.Attrs) (any, error) {
	return &Namespace{attrs: args}, nil
}
