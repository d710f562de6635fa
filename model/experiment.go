package model

// ExperimentSpec carries the optional fields of an experiment. A field left
// at its zero value keeps the entity default and is omitted on representation.
type ExperimentSpec struct {
	Components    *Attrs
	Modifiers     []any
	Doc           string
	ParamDefaults *Attrs
	Returns       []string
}

// Experiment wraps a graph with parameter defaults, component substitutions
// and an ordered list of modifier specifications.
type Experiment struct {
	Name          string
	Graph         *Graph
	Components    *Attrs
	Modifiers     []any
	Doc           string
	ParamDefaults *Attrs
	Returns       []string
}

// NewExperiment builds an experiment around the given graph.
func NewExperiment(name string, g *Graph, spec ExperimentSpec) *Experiment {
	return &Experiment{
		Name:          name,
		Graph:         g,
		Components:    spec.Components,
		Modifiers:     spec.Modifiers,
		Doc:           spec.Doc,
		ParamDefaults: spec.ParamDefaults,
		Returns:       spec.Returns,
	}
}

// EditDict returns the ordered keyword arguments needed to reconstruct the
// experiment, excluding its name. Fields equal to the entity default are
// omitted.
func (e *Experiment) EditDict() *Attrs {
	a := NewAttrs()
	a.Set("graph", e.Graph)
	if e.Components.Len() > 0 {
		a.Set("components", e.Components)
	}
	if len(e.Modifiers) > 0 {
		a.Set("modifiers", e.Modifiers)
	}
	if e.Doc != "" {
		a.Set("doc", e.Doc)
	}
	if e.ParamDefaults.Len() > 0 {
		a.Set("param_defaults", e.ParamDefaults)
	}
	if len(e.Returns) > 0 {
		a.Set("returns", stringsToAny(e.Returns))
	}
	return a
}
