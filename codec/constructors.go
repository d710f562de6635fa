package codec

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Marohn-Group/mrfmsim-yaml/expr"
	"github.com/Marohn-Group/mrfmsim-yaml/model"
	"github.com/Marohn-Group/mrfmsim-yaml/symbols"
)

// DefaultConstructors returns the standard reader tag table, bound to the
// given symbol registry.
func DefaultConstructors(reg *symbols.Registry) *Constructors {
	c := NewConstructors()
	c.Add(TagImport, importConstructor(reg))
	c.Add(TagNodes, nodesConstructor)
	c.Add(TagNodesAlias, nodesConstructor)
	c.AddMulti(TagImportPrefix, importMultiConstructor(reg))
	c.AddMulti(TagFuncPrefix, funcMultiConstructor)
	c.AddMulti(TagGraphPrefix, graphMultiConstructor)
	c.AddMulti(TagExperimentPrefix, experimentMultiConstructor)
	c.AddMulti(TagGroupPrefix, groupMultiConstructor)
	return c
}

// importConstructor resolves a scalar dotted path through the registry.
func importConstructor(reg *symbols.Registry) ConstructorFunc {
	return func(l *Loader, node *yaml.Node) (any, error) {
		path, err := l.ConstructScalar(node)
		if err != nil {
			return nil, err
		}
		return reg.Resolve(path)
	}
}

// importMultiConstructor resolves the suffix path and invokes it with the
// mapping body as keyword arguments.
func importMultiConstructor(reg *symbols.Registry) MultiConstructorFunc {
	return func(l *Loader, suffix string, node *yaml.Node) (any, error) {
		args, err := l.ConstructMapping(node)
		if err != nil {
			return nil, err
		}
		return reg.Call(suffix, args)
	}
}

// funcMultiConstructor evaluates the scalar body as an expression-backed
// callable named by the suffix.
func funcMultiConstructor(l *Loader, suffix string, node *yaml.Node) (any, error) {
	source, err := l.ConstructScalar(node)
	if err != nil {
		return nil, err
	}
	return expr.New(suffix, source)
}

// nodesConstructor builds an ordered node collection from a mapping of node
// name to properties. The properties' callable sits under "func"; nested
// tags have already resolved it by the time the descriptor is assembled.
func nodesConstructor(l *Loader, node *yaml.Node) (any, error) {
	entries, err := l.ConstructMapping(node)
	if err != nil {
		return nil, err
	}
	nodes := make([]*model.Node, 0, entries.Len())
	for _, item := range entries.Items() {
		props, ok := item.Value.(*model.Attrs)
		if !ok {
			return nil, fmt.Errorf("codec: node %q: properties must be a mapping", item.Key)
		}
		n := &model.Node{Name: item.Key}
		for _, prop := range props.Items() {
			switch prop.Key {
			case "func":
				n.Func = prop.Value
			case "inputs":
				inputs, err := stringList(prop.Value)
				if err != nil {
					return nil, fmt.Errorf("codec: node %q: inputs: %w", item.Key, err)
				}
				n.Inputs = inputs
			case "output":
				n.Output, err = stringValue(prop.Value)
				if err != nil {
					return nil, fmt.Errorf("codec: node %q: output: %w", item.Key, err)
				}
			case "output_unit":
				n.OutputUnit, err = stringValue(prop.Value)
				if err != nil {
					return nil, fmt.Errorf("codec: node %q: output_unit: %w", item.Key, err)
				}
			case "doc":
				n.Doc, err = stringValue(prop.Value)
				if err != nil {
					return nil, fmt.Errorf("codec: node %q: doc: %w", item.Key, err)
				}
			default:
				return nil, fmt.Errorf("codec: node %q: unknown property %q", item.Key, prop.Key)
			}
		}
		if err := n.Validate(); err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// graphMultiConstructor builds a named graph from grouped edges and a node
// collection. Remaining keys land verbatim, in order, in the graph's
// attribute bag; the reserved key "name" is never duplicated into it.
func graphMultiConstructor(l *Loader, suffix string, node *yaml.Node) (any, error) {
	params, err := l.ConstructMapping(node)
	if err != nil {
		return nil, err
	}
	g := model.NewGraph(suffix)

	rawEdges, ok := params.Pop("grouped_edges")
	if !ok {
		return nil, fmt.Errorf("codec: graph %q: missing grouped_edges", suffix)
	}
	groups, err := groupedEdges(rawEdges)
	if err != nil {
		return nil, fmt.Errorf("codec: graph %q: %w", suffix, err)
	}
	g.AddGroupedEdges(groups...)

	rawNodes, ok := params.Pop("node_objects")
	if !ok {
		return nil, fmt.Errorf("codec: graph %q: missing node_objects", suffix)
	}
	nodes, ok := rawNodes.([]*model.Node)
	if !ok {
		return nil, fmt.Errorf("codec: graph %q: node_objects must be a tagged node collection", suffix)
	}
	if err := g.SetNodeObjects(nodes...); err != nil {
		return nil, err
	}

	params.Pop("name")
	for _, item := range params.Items() {
		g.Attrs().Set(item.Key, item.Value)
	}
	return g, nil
}

// experimentMultiConstructor builds a named experiment around an inline or
// nested-tagged graph.
func experimentMultiConstructor(l *Loader, suffix string, node *yaml.Node) (any, error) {
	params, err := l.ConstructMapping(node)
	if err != nil {
		return nil, err
	}
	rawGraph, ok := params.Pop("graph")
	if !ok {
		return nil, fmt.Errorf("codec: experiment %q: missing graph", suffix)
	}
	g, ok := rawGraph.(*model.Graph)
	if !ok {
		return nil, fmt.Errorf("codec: experiment %q: graph must be a tagged graph", suffix)
	}
	spec, err := experimentSpec(params)
	if err != nil {
		return nil, fmt.Errorf("codec: experiment %q: %w", suffix, err)
	}
	return model.NewExperiment(suffix, g, spec), nil
}

// experimentSpec consumes the optional experiment fields from params and
// errors on anything left over.
func experimentSpec(params *model.Attrs) (model.ExperimentSpec, error) {
	var spec model.ExperimentSpec
	var err error
	if raw, ok := params.Pop("components"); ok {
		if spec.Components, err = attrsValue(raw); err != nil {
			return spec, fmt.Errorf("components: %w", err)
		}
	}
	if raw, ok := params.Pop("modifiers"); ok {
		mods, ok := raw.([]any)
		if !ok {
			return spec, fmt.Errorf("modifiers must be a sequence")
		}
		spec.Modifiers = mods
	}
	if raw, ok := params.Pop("doc"); ok {
		if spec.Doc, err = stringValue(raw); err != nil {
			return spec, fmt.Errorf("doc: %w", err)
		}
	}
	if raw, ok := params.Pop("param_defaults"); ok {
		if spec.ParamDefaults, err = attrsValue(raw); err != nil {
			return spec, fmt.Errorf("param_defaults: %w", err)
		}
	}
	if raw, ok := params.Pop("returns"); ok {
		if spec.Returns, err = stringList(raw); err != nil {
			return spec, fmt.Errorf("returns: %w", err)
		}
	}
	if params.Len() > 0 {
		return spec, fmt.Errorf("unknown field %q", params.Keys()[0])
	}
	return spec, nil
}

// groupMultiConstructor builds a named experiment group: a shared node pool,
// per-recipe partial specifications, and group-wide defaults.
func groupMultiConstructor(l *Loader, suffix string, node *yaml.Node) (any, error) {
	params, err := l.ConstructMapping(node)
	if err != nil {
		return nil, err
	}
	rawNodes, ok := params.Pop("node_objects")
	if !ok {
		return nil, fmt.Errorf("codec: group %q: missing node_objects", suffix)
	}
	nodes, ok := rawNodes.([]*model.Node)
	if !ok {
		return nil, fmt.Errorf("codec: group %q: node_objects must be a tagged node collection", suffix)
	}

	rawRecipes, ok := params.Pop("experiment_recipes")
	if !ok {
		return nil, fmt.Errorf("codec: group %q: missing experiment_recipes", suffix)
	}
	recipeAttrs, err := attrsValue(rawRecipes)
	if err != nil {
		return nil, fmt.Errorf("codec: group %q: experiment_recipes: %w", suffix, err)
	}
	recipes := make([]model.GroupRecipe, 0, recipeAttrs.Len())
	for _, item := range recipeAttrs.Items() {
		recipe, err := recipeValue(item.Value)
		if err != nil {
			return nil, fmt.Errorf("codec: group %q: recipe %q: %w", suffix, item.Key, err)
		}
		recipes = append(recipes, model.GroupRecipe{Name: item.Key, Recipe: recipe})
	}

	var defaults model.GroupDefaults
	if rawDefaults, ok := params.Pop("experiment_defaults"); ok {
		if defaults, err = groupDefaults(rawDefaults); err != nil {
			return nil, fmt.Errorf("codec: group %q: experiment_defaults: %w", suffix, err)
		}
	}

	doc := ""
	if rawDoc, ok := params.Pop("doc"); ok {
		if doc, err = stringValue(rawDoc); err != nil {
			return nil, fmt.Errorf("codec: group %q: doc: %w", suffix, err)
		}
	}
	if params.Len() > 0 {
		return nil, fmt.Errorf("codec: group %q: unknown field %q", suffix, params.Keys()[0])
	}
	return model.NewExperimentGroup(suffix, nodes, recipes, defaults, doc)
}

// recipeValue decodes one experiment recipe.
func recipeValue(v any) (*model.Recipe, error) {
	fields, err := attrsValue(v)
	if err != nil {
		return nil, err
	}
	recipe := &model.Recipe{}
	rawEdges, ok := fields.Pop("grouped_edges")
	if !ok {
		return nil, fmt.Errorf("missing grouped_edges")
	}
	if recipe.GroupedEdges, err = groupedEdges(rawEdges); err != nil {
		return nil, err
	}
	if raw, ok := fields.Pop("returns"); ok {
		if recipe.Returns, err = stringList(raw); err != nil {
			return nil, fmt.Errorf("returns: %w", err)
		}
	}
	if raw, ok := fields.Pop("doc"); ok {
		if recipe.Doc, err = stringValue(raw); err != nil {
			return nil, fmt.Errorf("doc: %w", err)
		}
	}
	if raw, ok := fields.Pop("components"); ok {
		if recipe.Components, err = attrsValue(raw); err != nil {
			return nil, fmt.Errorf("components: %w", err)
		}
	}
	if raw, ok := fields.Pop("param_defaults"); ok {
		if recipe.ParamDefaults, err = attrsValue(raw); err != nil {
			return nil, fmt.Errorf("param_defaults: %w", err)
		}
	}
	if fields.Len() > 0 {
		return nil, fmt.Errorf("unknown field %q", fields.Keys()[0])
	}
	return recipe, nil
}

// groupDefaults decodes the experiment_defaults block.
func groupDefaults(v any) (model.GroupDefaults, error) {
	var defaults model.GroupDefaults
	fields, err := attrsValue(v)
	if err != nil {
		return defaults, err
	}
	if raw, ok := fields.Pop("components"); ok {
		if defaults.Components, err = attrsValue(raw); err != nil {
			return defaults, fmt.Errorf("components: %w", err)
		}
	}
	if raw, ok := fields.Pop("doc"); ok {
		if defaults.Doc, err = stringValue(raw); err != nil {
			return defaults, fmt.Errorf("doc: %w", err)
		}
	}
	if raw, ok := fields.Pop("param_defaults"); ok {
		if defaults.ParamDefaults, err = attrsValue(raw); err != nil {
			return defaults, fmt.Errorf("param_defaults: %w", err)
		}
	}
	if fields.Len() > 0 {
		return defaults, fmt.Errorf("unknown field %q", fields.Keys()[0])
	}
	return defaults, nil
}

// groupedEdges decodes a sequence of grouped edge pairs. Each endpoint is a
// single node name or a list of names; the declared shape is preserved.
func groupedEdges(v any) ([]model.GroupedEdge, error) {
	seq, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("grouped_edges must be a sequence")
	}
	groups := make([]model.GroupedEdge, 0, len(seq))
	for _, raw := range seq {
		pair, ok := raw.([]any)
		if !ok || len(pair) != 2 {
			return nil, fmt.Errorf("grouped edge must be a [source, target] pair")
		}
		src, err := nameRef(pair[0])
		if err != nil {
			return nil, err
		}
		dst, err := nameRef(pair[1])
		if err != nil {
			return nil, err
		}
		groups = append(groups, model.GroupedEdge{Sources: src, Targets: dst})
	}
	return groups, nil
}

func nameRef(v any) (model.NameRef, error) {
	switch x := v.(type) {
	case string:
		return model.Name(x), nil
	case []any:
		names, err := stringSlice(x)
		if err != nil {
			return model.NameRef{}, err
		}
		return model.Names(names...), nil
	default:
		return model.NameRef{}, fmt.Errorf("edge endpoint must be a name or a list of names, got %T", v)
	}
}

func stringValue(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("expected a string, got %T", v)
	}
	return s, nil
}

func stringList(v any) ([]string, error) {
	seq, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a sequence of strings, got %T", v)
	}
	return stringSlice(seq)
}

func stringSlice(seq []any) ([]string, error) {
	out := make([]string, len(seq))
	for i, e := range seq {
		s, ok := e.(string)
		if !ok {
			return nil, fmt.Errorf("expected a string, got %T", e)
		}
		out[i] = s
	}
	return out, nil
}

func attrsValue(v any) (*model.Attrs, error) {
	attrs, ok := v.(*model.Attrs)
	if !ok {
		return nil, fmt.Errorf("expected a mapping, got %T", v)
	}
	return attrs, nil
}
