package model

import "fmt"

// Recipe is a partial experiment specification inside a group. Absent fields
// fall back to the group defaults, then to the entity defaults.
type Recipe struct {
	GroupedEdges  []GroupedEdge
	Returns       []string
	Doc           string
	Components    *Attrs
	ParamDefaults *Attrs
}

// GroupRecipe pairs a recipe with its name, keeping declaration order.
type GroupRecipe struct {
	Name   string
	Recipe *Recipe
}

// GroupDefaults are merged into every recipe lacking an explicit override.
type GroupDefaults struct {
	Components    *Attrs
	Doc           string
	ParamDefaults *Attrs
}

// ExperimentGroup is a named set of experiment recipes sharing one node pool.
// Each recipe derives a full experiment whose graph is built from the
// recipe's grouped edges against the shared pool. Derived graphs reference
// the shared node descriptors; they never copy them.
type ExperimentGroup struct {
	Name        string
	Doc         string
	nodes       []*Node
	nodesByName map[string]*Node
	recipes     []GroupRecipe
	defaults    GroupDefaults
	experiments map[string]*Experiment
}

// NewExperimentGroup builds a group and derives one experiment per recipe.
// Recipe names must be unique; every node name referenced by a recipe's
// edges must exist in the shared pool.
func NewExperimentGroup(name string, nodes []*Node, recipes []GroupRecipe, defaults GroupDefaults, doc string) (*ExperimentGroup, error) {
	g := &ExperimentGroup{
		Name:        name,
		Doc:         doc,
		nodes:       nodes,
		nodesByName: make(map[string]*Node, len(nodes)),
		defaults:    defaults,
		experiments: make(map[string]*Experiment, len(recipes)),
	}
	for _, n := range nodes {
		if err := n.Validate(); err != nil {
			return nil, err
		}
		if _, ok := g.nodesByName[n.Name]; ok {
			return nil, fmt.Errorf("model: group %q has duplicate node %q", name, n.Name)
		}
		g.nodesByName[n.Name] = n
	}
	for _, r := range recipes {
		if _, ok := g.experiments[r.Name]; ok {
			return nil, fmt.Errorf("model: group %q has duplicate recipe %q", name, r.Name)
		}
		expt, err := g.derive(r.Name, r.Recipe)
		if err != nil {
			return nil, err
		}
		g.recipes = append(g.recipes, r)
		g.experiments[r.Name] = expt
	}
	return g, nil
}

// derive builds the experiment for one recipe, resolving each field as:
// recipe value if present, else group default, else entity default.
func (g *ExperimentGroup) derive(name string, r *Recipe) (*Experiment, error) {
	graph := NewGraph(name + "_graph")
	graph.AddGroupedEdges(r.GroupedEdges...)
	for _, nodeName := range graph.NodeNames() {
		n, ok := g.nodesByName[nodeName]
		if !ok {
			return nil, fmt.Errorf("model: recipe %q references unknown node %q", name, nodeName)
		}
		if err := graph.SetNodeObject(n); err != nil {
			return nil, err
		}
	}
	spec := ExperimentSpec{
		Components:    r.Components,
		Doc:           r.Doc,
		ParamDefaults: r.ParamDefaults,
		Returns:       r.Returns,
	}
	if spec.Components.Len() == 0 {
		spec.Components = g.defaults.Components
	}
	if spec.Doc == "" {
		spec.Doc = g.defaults.Doc
	}
	if spec.ParamDefaults.Len() == 0 {
		spec.ParamDefaults = g.defaults.ParamDefaults
	}
	return NewExperiment(name, graph, spec), nil
}

// Nodes returns the shared node pool in declaration order.
func (g *ExperimentGroup) Nodes() []*Node {
	nodes := make([]*Node, len(g.nodes))
	copy(nodes, g.nodes)
	return nodes
}

// Recipes returns the recipes in declaration order.
func (g *ExperimentGroup) Recipes() []GroupRecipe {
	recipes := make([]GroupRecipe, len(g.recipes))
	copy(recipes, g.recipes)
	return recipes
}

// Defaults returns the group-wide default specification.
func (g *ExperimentGroup) Defaults() GroupDefaults { return g.defaults }

// Experiment returns the derived experiment for a recipe name.
func (g *ExperimentGroup) Experiment(name string) (*Experiment, bool) {
	e, ok := g.experiments[name]
	return e, ok
}
