package codec_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/Marohn-Group/mrfmsim-yaml/builtin"
	"github.com/Marohn-Group/mrfmsim-yaml/codec"
	"github.com/Marohn-Group/mrfmsim-yaml/expr"
	"github.com/Marohn-Group/mrfmsim-yaml/model"
	"github.com/Marohn-Group/mrfmsim-yaml/symbols"
)

func newCodec(t *testing.T) (*codec.Loader, *codec.Dumper, *symbols.Registry) {
	t.Helper()
	reg := symbols.NewRegistry()
	builtin.Register(reg)
	loader, dumper := codec.New(reg)
	return loader, dumper, reg
}

func TestLoad_PlainValues(t *testing.T) {
	t.Parallel()
	loader, _, _ := newCodec(t)

	tests := []struct {
		name string
		text string
		want any
	}{
		{"string", `value`, "value"},
		{"int", `42`, 42},
		{"float", `2.5`, 2.5},
		{"bool", `true`, true},
		{"null", `null`, nil},
		{"sequence", `[a, 1, 2.5]`, []any{"a", 1, 2.5}},
		{"empty document", ``, nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := loader.LoadBytes([]byte(tt.text))
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestLoad_MappingOrder(t *testing.T) {
	t.Parallel()
	loader, _, _ := newCodec(t)

	got, err := loader.Load(strings.NewReader("c: 3\na: 1\nb: 2\n"))
	require.NoError(t, err)

	attrs, ok := got.(*model.Attrs)
	require.True(t, ok)
	require.Equal(t, []string{"c", "a", "b"}, attrs.Keys())
}

func TestLoad_DuplicateKey(t *testing.T) {
	t.Parallel()
	loader, _, _ := newCodec(t)

	_, err := loader.LoadBytes([]byte("a: 1\na: 2\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), `duplicate mapping key "a"`)
}

func TestLoad_UnknownTag(t *testing.T) {
	t.Parallel()
	loader, _, _ := newCodec(t)

	_, err := loader.LoadBytes([]byte("!mystery value\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), `no constructor for tag "!mystery"`)
}

func TestLoad_Import(t *testing.T) {
	t.Parallel()
	loader, _, reg := newCodec(t)

	got, err := loader.LoadBytes([]byte("!import operator.add\n"))
	require.NoError(t, err)

	path, ok := reg.PathOf(got)
	require.True(t, ok)
	require.Equal(t, "operator.add", path)

	fn, ok := got.(func(a, b float64) float64)
	require.True(t, ok)
	require.Equal(t, 3.0, fn(1, 2))
}

func TestLoad_Import_UnknownPath(t *testing.T) {
	t.Parallel()
	loader, _, _ := newCodec(t)

	_, err := loader.LoadBytes([]byte("!import module.addition\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), `no module named "module.addition"`)
}

func TestLoad_ImportWithArgs(t *testing.T) {
	t.Parallel()
	loader, _, _ := newCodec(t)

	got, err := loader.LoadBytes([]byte("!import:structs.namespace\na: 1\nb: test\n"))
	require.NoError(t, err)

	ns, ok := got.(*builtin.Namespace)
	require.True(t, ok)
	require.Equal(t, []string{"a", "b"}, ns.Names())
	a, _ := ns.Get("a")
	require.Equal(t, 1, a)
	b, _ := ns.Get("b")
	require.Equal(t, "test", b)
}

func TestLoad_Func(t *testing.T) {
	t.Parallel()
	loader, _, _ := newCodec(t)

	got, err := loader.LoadBytes([]byte("!func:test \"a + b\"\n"))
	require.NoError(t, err)

	f, ok := got.(*expr.Func)
	require.True(t, ok)
	require.Equal(t, "test", f.FuncName())
	require.Equal(t, "a + b", f.Source())
	require.Equal(t, "a + b", f.Doc())
	require.Equal(t, []string{"a", "b"}, f.Params())

	result, err := f.Invoke(1, 2)
	require.NoError(t, err)
	require.EqualValues(t, 3, result)
}

func TestLoad_Func_ParseError(t *testing.T) {
	t.Parallel()
	loader, _, _ := newCodec(t)

	_, err := loader.LoadBytes([]byte("!func:broken \"a +\"\n"))
	require.Error(t, err)
}

const nodesText = `!nodes
add:
  func: !func:add a + h
  output: c
subtract:
  func: !import operator.sub
  inputs: [c, d]
  output: e
  doc: Subtraction operation.
`

func TestLoad_Nodes(t *testing.T) {
	t.Parallel()
	loader, _, reg := newCodec(t)

	got, err := loader.LoadBytes([]byte(nodesText))
	require.NoError(t, err)

	nodes, ok := got.([]*model.Node)
	require.True(t, ok)
	require.Len(t, nodes, 2)

	require.Equal(t, "add", nodes[0].Name)
	require.IsType(t, &expr.Func{}, nodes[0].Func)
	require.Empty(t, nodes[0].Inputs)
	require.Equal(t, "c", nodes[0].Output)

	require.Equal(t, "subtract", nodes[1].Name)
	path, ok := reg.PathOf(nodes[1].Func)
	require.True(t, ok)
	require.Equal(t, "operator.sub", path)
	require.Equal(t, []string{"c", "d"}, nodes[1].Inputs)
	require.Equal(t, "Subtraction operation.", nodes[1].Doc)
}

func TestLoad_Nodes_CapitalizedAlias(t *testing.T) {
	t.Parallel()
	loader, _, _ := newCodec(t)

	text := strings.Replace(nodesText, "!nodes", "!Nodes", 1)
	got, err := loader.LoadBytes([]byte(text))
	require.NoError(t, err)
	require.Len(t, got.([]*model.Node), 2)
}

func TestLoad_Nodes_UnknownProperty(t *testing.T) {
	t.Parallel()
	loader, _, _ := newCodec(t)

	text := "!nodes\nadd:\n  func: !import operator.add\n  color: red\n"
	_, err := loader.LoadBytes([]byte(text))
	require.Error(t, err)
	require.Contains(t, err.Error(), `unknown property "color"`)
}

func TestLoad_Nodes_MissingFunc(t *testing.T) {
	t.Parallel()
	loader, _, _ := newCodec(t)

	text := "!nodes\nadd:\n  output: c\n"
	_, err := loader.LoadBytes([]byte(text))
	require.Error(t, err)
	require.Contains(t, err.Error(), "no callable")
}

func TestLoad_Graph(t *testing.T) {
	t.Parallel()
	loader, _, _ := newCodec(t)

	got, err := loader.LoadBytes([]byte(graphText))
	require.NoError(t, err)

	g, ok := got.(*model.Graph)
	require.True(t, ok)
	require.Equal(t, "test_graph", g.Name())
	require.Equal(t, []string{"add", "subtract", "power", "log", "multiply"}, g.NodeNames())
	wantEdges := []model.Edge{
		{Source: "add", Target: "subtract"},
		{Source: "add", Target: "power"},
		{Source: "add", Target: "log"},
		{Source: "subtract", Target: "multiply"},
		{Source: "power", Target: "multiply"},
	}
	require.Empty(t, cmp.Diff(wantEdges, g.Edges()))
	require.NoError(t, g.Validate())

	// The declared endpoint shapes survive construction.
	groups := g.GroupedEdges()
	require.Len(t, groups, 2)
	require.False(t, groups[0].Sources.IsList())
	require.True(t, groups[0].Targets.IsList())

	gt, ok := g.Attrs().Get("graph_type")
	require.True(t, ok)
	require.Equal(t, "mrfmsim", gt)

	multiply, ok := g.Node("multiply")
	require.True(t, ok)
	require.Same(t, builtin.VecMultiply, multiply.Func)
	require.Equal(t, "m^2", multiply.OutputUnit)
}

func TestLoad_Graph_MissingEdges(t *testing.T) {
	t.Parallel()
	loader, _, _ := newCodec(t)

	text := "!Graph:bad\nnode_objects: !nodes\n  add:\n    func: !import operator.add\n"
	_, err := loader.LoadBytes([]byte(text))
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing grouped_edges")
}

func TestLoad_Experiment(t *testing.T) {
	t.Parallel()
	loader, _, _ := newCodec(t)

	got, err := loader.LoadBytes([]byte(experimentText))
	require.NoError(t, err)

	e, ok := got.(*model.Experiment)
	require.True(t, ok)
	require.Equal(t, "test_experiment", e.Name)
	require.Equal(t, "test_graph", e.Graph.Name())
	require.Equal(t, "Test experiment with components.", e.Doc)

	replace, ok := e.Components.Get("replace_obj")
	require.True(t, ok)
	require.Equal(t, []any{"a1", "b1"}, replace)

	h, ok := e.ParamDefaults.Get("h")
	require.True(t, ok)
	require.Equal(t, 2, h)

	require.Len(t, e.Modifiers, 1)
	m, ok := e.Modifiers[0].(*builtin.Modifier)
	require.True(t, ok)
	require.Equal(t, "modifier.loop_input", m.FactoryPath())
	param, _ := m.Args().Get("parameter")
	require.Equal(t, "d", param)
}

func TestLoad_Experiment_UnknownField(t *testing.T) {
	t.Parallel()
	loader, _, _ := newCodec(t)

	text := "!Experiment:bad\ngraph: !Graph:g\n  grouped_edges:\n    - [a, b]\n" +
		"  node_objects: !nodes\n    a:\n      func: !import operator.add\n" +
		"    b:\n      func: !import operator.sub\n" +
		"mystery: true\n"
	_, err := loader.LoadBytes([]byte(text))
	require.Error(t, err)
	require.Contains(t, err.Error(), `unknown field "mystery"`)
}

func TestLoad_Group(t *testing.T) {
	t.Parallel()
	loader, _, _ := newCodec(t)

	got, err := loader.LoadBytes([]byte(groupText))
	require.NoError(t, err)

	g, ok := got.(*model.ExperimentGroup)
	require.True(t, ok)
	require.Equal(t, "test_group", g.Name)
	require.Equal(t, "Test group.", g.Doc)
	require.Len(t, g.Nodes(), 5)

	e1, ok := g.Experiment("test1")
	require.True(t, ok)
	require.Equal(t, []string{"add", "subtract", "power", "log", "multiply"}, e1.Graph.NodeNames())
	require.Equal(t, "Global docstring.", e1.Doc)
	require.Equal(t, []string{"k", "m"}, e1.Returns)

	e2, ok := g.Experiment("test2")
	require.True(t, ok)
	require.Equal(t, []string{"add", "subtract", "power", "multiply"}, e2.Graph.NodeNames())
	require.Equal(t, "Shortened graph.", e2.Doc)

	// Both derived graphs share the pooled node descriptors.
	n1, _ := e1.Graph.Node("add")
	n2, _ := e2.Graph.Node("add")
	require.Same(t, n1, n2)
}
