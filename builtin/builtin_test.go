package builtin_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Marohn-Group/mrfmsim-yaml/builtin"
	"github.com/Marohn-Group/mrfmsim-yaml/model"
	"github.com/Marohn-Group/mrfmsim-yaml/symbols"
)

func newRegistry(t *testing.T) *symbols.Registry {
	t.Helper()
	reg := symbols.NewRegistry()
	builtin.Register(reg)
	return reg
}

func TestRegister_Operators(t *testing.T) {
	t.Parallel()
	reg := newRegistry(t)

	tests := []struct {
		path string
		a, b float64
		want float64
	}{
		{"operator.add", 1, 2, 3},
		{"operator.sub", 5, 2, 3},
		{"operator.mul", 3, 4, 12},
		{"operator.truediv", 1, 2, 0.5},
		{"math.pow", 2, 10, 1024},
		{"math.emath.power", 2, 4, 16},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			v, err := reg.Resolve(tt.path)
			require.NoError(t, err)
			fn, ok := v.(func(a, b float64) float64)
			require.True(t, ok)
			require.InDelta(t, tt.want, fn(tt.a, tt.b), 1e-12)
		})
	}
}

func TestRegister_LogBase(t *testing.T) {
	t.Parallel()
	reg := newRegistry(t)

	v, err := reg.Resolve("math.log")
	require.NoError(t, err)
	fn := v.(func(a, b float64) float64)
	require.InDelta(t, 3.0, fn(8, 2), 1e-12)
}

func TestRegister_ReversePaths(t *testing.T) {
	t.Parallel()
	reg := newRegistry(t)

	path, ok := reg.PathOf(builtin.VecMultiply)
	require.True(t, ok)
	require.Equal(t, "vecmath.multiply", path)
}

func TestNamespaceFactory(t *testing.T) {
	t.Parallel()
	reg := newRegistry(t)

	args := model.AttrsOf(
		model.KV{Key: "a", Value: 1},
		model.KV{Key: "b", Value: "test"},
	)
	v, err := reg.Call("structs.namespace", args)
	require.NoError(t, err)

	ns, ok := v.(*builtin.Namespace)
	require.True(t, ok)
	require.Equal(t, []string{"a", "b"}, ns.Names())

	a, ok := ns.Get("a")
	require.True(t, ok)
	require.Equal(t, 1, a)

	// The factory product resolves attribute paths like a submodule.
	b, err := reg.Resolve("structs.namespace")
	require.NoError(t, err)
	require.NotNil(t, b)
}

func TestVecFunc_Apply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fn       *builtin.VecFunc
		operands []any
		want     any
	}{
		{"scalar add", builtin.VecAdd, []any{1.0, 2.0}, 3.0},
		{"slice add", builtin.VecAdd, []any{[]float64{1, 2}, []float64{3, 4}}, []float64{4, 6}},
		{"broadcast left", builtin.VecMultiply, []any{[]float64{1, 2, 3}, 2.0}, []float64{2, 4, 6}},
		{"broadcast right", builtin.VecSubtract, []any{10, []float64{1, 2}}, []float64{9, 8}},
		{"power", builtin.VecPower, []any{[]float64{2, 3}, 2.0}, []float64{4, 9}},
		{"unary log scalar", builtin.VecLog, []any{1.0}, 0.0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := tt.fn.Apply(tt.operands...)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestVecFunc_Errors(t *testing.T) {
	t.Parallel()

	_, err := builtin.VecAdd.Apply(1.0)
	require.Error(t, err)
	require.Contains(t, err.Error(), "takes 2 operands")

	_, err = builtin.VecAdd.Apply([]float64{1}, []float64{1, 2})
	require.Error(t, err)
	require.Contains(t, err.Error(), "operand lengths differ")

	_, err = builtin.VecAdd.Apply("x", 1.0)
	require.Error(t, err)
	require.Contains(t, err.Error(), "not a numeric operand")
}

func TestModifierFactories(t *testing.T) {
	t.Parallel()
	reg := newRegistry(t)

	v, err := reg.Call("modifier.loop_input", model.AttrsOf(model.KV{Key: "parameter", Value: "d"}))
	require.NoError(t, err)
	m, ok := v.(*builtin.Modifier)
	require.True(t, ok)
	require.Equal(t, "loop_input", m.FuncName())
	require.Equal(t, "modifier.loop_input", m.FactoryPath())

	_, err = reg.Call("modifier.loop_input", model.NewAttrs())
	require.Error(t, err)

	v, err = reg.Call("modifier.print_output", model.AttrsOf(
		model.KV{Key: "output", Value: "result"},
		model.KV{Key: "format", Value: "%.3f"},
	))
	require.NoError(t, err)
	require.Equal(t, "print_output", v.(*builtin.Modifier).FuncName())

	_, err = reg.Call("modifier.print_output", model.AttrsOf(model.KV{Key: "output", Value: 7}))
	require.Error(t, err)
}
