package codec

import (
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Marohn-Group/mrfmsim-yaml/builtin"
	"github.com/Marohn-Group/mrfmsim-yaml/expr"
	"github.com/Marohn-Group/mrfmsim-yaml/model"
	"github.com/Marohn-Group/mrfmsim-yaml/symbols"
)

// DefaultRepresenters returns the standard writer dispatch table, bound to
// the given symbol registry for reverse path lookups.
func DefaultRepresenters(reg *symbols.Registry) *Representers {
	r := NewRepresenters()
	r.Add(reflect.TypeOf(&expr.Func{}), exprFuncRepresenter)
	r.Add(reflect.TypeOf(&builtin.VecFunc{}), vecFuncRepresenter)
	r.Add(reflect.TypeOf(&model.Graph{}), graphRepresenter)
	r.Add(reflect.TypeOf(&model.Experiment{}), experimentRepresenter)
	r.Add(reflect.TypeOf(&model.ExperimentGroup{}), groupRepresenter)
	r.Add(reflect.TypeOf(&model.Attrs{}), attrsRepresenter)
	r.Add(reflect.TypeOf(BlockList(nil)), blockListRepresenter)
	r.Add(reflect.TypeOf(NodeList(nil)), nodeListRepresenter)
	r.Add(reflect.TypeOf([]*model.Node(nil)), nodeListRepresenter)
	r.AddMatch(isParameterized, paramRepresenter)
	r.AddMatch(isFuncKind, importRepresenter(reg))
	return r
}

// exprFuncRepresenter emits an expression-backed callable as a prefixed-tag
// scalar: the display name in the suffix, the verbatim source as the body.
func exprFuncRepresenter(d *Dumper, v any) (*yaml.Node, error) {
	f := v.(*expr.Func)
	return d.RepresentScalar(TagFuncPrefix+f.FuncName(), f.Source()), nil
}

// vecFuncRepresenter emits an element-wise function under the fixed vecmath
// namespace. The underlying closures have no registry identity of their own.
func vecFuncRepresenter(d *Dumper, v any) (*yaml.Node, error) {
	f := v.(*builtin.VecFunc)
	return d.RepresentScalar(TagImport, "vecmath."+f.FuncName()), nil
}

// paramRepresenter emits a factory product as a prefixed-tag mapping: the
// factory path in the suffix, the stored keyword arguments as the body.
func paramRepresenter(d *Dumper, v any) (*yaml.Node, error) {
	p := v.(model.Parameterized)
	path := trimClosureQualifier(p.FactoryPath())
	if path == "" {
		return nil, &UnrepresentableError{Value: v, Reason: "factory product carries no provenance"}
	}
	return d.RepresentMapping(TagImportPrefix+path, p.Args().Items(), false)
}

// importRepresenter emits a plain callable as the dotted path the resolver
// would import back to the same value. Callables registered under the
// transient main namespace, or never registered, have no stable path and are
// a fatal dump error.
func importRepresenter(reg *symbols.Registry) RepresenterFunc {
	return func(d *Dumper, v any) (*yaml.Node, error) {
		path, ok := reg.PathOf(v)
		if !ok {
			return nil, &UnrepresentableError{Value: v, Reason: "callable is not registered"}
		}
		if path == "main" || strings.HasPrefix(path, "main.") {
			return nil, &UnrepresentableError{Value: v, Reason: "callable is defined in the main namespace"}
		}
		return d.RepresentScalar(TagImport, path), nil
	}
}

// attrsRepresenter emits an ordered attribute bag as a block mapping.
func attrsRepresenter(d *Dumper, v any) (*yaml.Node, error) {
	return d.RepresentMapping("!!map", v.(*model.Attrs).Items(), false)
}

// blockListRepresenter emits a sequence one item per line.
func blockListRepresenter(d *Dumper, v any) (*yaml.Node, error) {
	return d.RepresentSequence("!!seq", v.(BlockList), false)
}

// nodeListRepresenter emits a node collection as a !nodes mapping of name to
// properties, the inverse of node collection construction. It accepts both
// the NodeList wrapper and the bare slice the node collection constructor
// returns.
func nodeListRepresenter(d *Dumper, v any) (*yaml.Node, error) {
	nodes, ok := v.(NodeList)
	if !ok {
		nodes = NodeList(v.([]*model.Node))
	}
	items := make([]model.KV, 0, len(nodes))
	for _, n := range nodes {
		items = append(items, model.KV{Key: n.Name, Value: n.EditDict()})
	}
	return d.RepresentMapping(TagNodesAlias, items, false)
}

// graphRepresenter emits a graph as grouped edges, node objects, then the
// stored extra attributes in order, under the prefixed graph tag.
func graphRepresenter(d *Dumper, v any) (*yaml.Node, error) {
	g := v.(*model.Graph)
	items := []model.KV{
		{Key: "grouped_edges", Value: groupedEdgesValue(g.GroupedEdges())},
		{Key: "node_objects", Value: NodeList(g.Nodes())},
	}
	for _, item := range g.Attrs().Items() {
		if item.Key == "name" {
			continue
		}
		items = append(items, item)
	}
	return d.RepresentMapping(TagGraphPrefix+g.Name(), items, false)
}

// experimentRepresenter emits an experiment's reconstruction arguments under
// the prefixed experiment tag, name hoisted into the suffix.
func experimentRepresenter(d *Dumper, v any) (*yaml.Node, error) {
	e := v.(*model.Experiment)
	return d.RepresentMapping(TagExperimentPrefix+e.Name, e.EditDict().Items(), false)
}

// groupRepresenter emits a group from its stored recipes and defaults, the
// inverse of group construction.
func groupRepresenter(d *Dumper, v any) (*yaml.Node, error) {
	g := v.(*model.ExperimentGroup)
	recipes := model.NewAttrs()
	for _, r := range g.Recipes() {
		recipes.Set(r.Name, recipeValueAttrs(r.Recipe))
	}
	items := []model.KV{
		{Key: "node_objects", Value: NodeList(g.Nodes())},
		{Key: "experiment_recipes", Value: recipes},
	}
	if defaults := groupDefaultsAttrs(g.Defaults()); defaults.Len() > 0 {
		items = append(items, model.KV{Key: "experiment_defaults", Value: defaults})
	}
	if g.Doc != "" {
		items = append(items, model.KV{Key: "doc", Value: g.Doc})
	}
	return d.RepresentMapping(TagGroupPrefix+g.Name, items, false)
}

func recipeValueAttrs(r *model.Recipe) *model.Attrs {
	a := model.NewAttrs()
	a.Set("grouped_edges", groupedEdgesValue(r.GroupedEdges))
	if len(r.Returns) > 0 {
		a.Set("returns", anySlice(r.Returns))
	}
	if r.Doc != "" {
		a.Set("doc", r.Doc)
	}
	if r.Components.Len() > 0 {
		a.Set("components", r.Components)
	}
	if r.ParamDefaults.Len() > 0 {
		a.Set("param_defaults", r.ParamDefaults)
	}
	return a
}

func groupDefaultsAttrs(defaults model.GroupDefaults) *model.Attrs {
	a := model.NewAttrs()
	if defaults.Components.Len() > 0 {
		a.Set("components", defaults.Components)
	}
	if defaults.Doc != "" {
		a.Set("doc", defaults.Doc)
	}
	if defaults.ParamDefaults.Len() > 0 {
		a.Set("param_defaults", defaults.ParamDefaults)
	}
	return a
}

// groupedEdgesValue rebuilds the declared edge pair forms, block-listed for
// readability.
func groupedEdgesValue(groups []model.GroupedEdge) BlockList {
	out := make(BlockList, 0, len(groups))
	for _, g := range groups {
		out = append(out, []any{nameRefValue(g.Sources), nameRefValue(g.Targets)})
	}
	return out
}

func nameRefValue(ref model.NameRef) any {
	if ref.IsList() {
		return anySlice(ref.Values())
	}
	return ref.Values()[0]
}

// isParameterized reports whether a value carries factory provenance.
func isParameterized(v any) bool {
	p, ok := v.(model.Parameterized)
	return ok && p.FactoryPath() != ""
}

// isFuncKind reports whether a value is a plain Go function.
func isFuncKind(v any) bool {
	return reflect.ValueOf(v).Kind() == reflect.Func
}

// trimClosureQualifier strips trailing anonymous-closure segments (funcN)
// from a dotted factory path, keeping the enclosing function's name.
func trimClosureQualifier(path string) string {
	segments := strings.Split(path, ".")
	for len(segments) > 1 {
		last := segments[len(segments)-1]
		if !strings.HasPrefix(last, "func") || !isDigits(last[len("func"):]) {
			break
		}
		segments = segments[:len(segments)-1]
	}
	return strings.Join(segments, ".")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
