package model

// NameRef is one endpoint of a grouped edge: either a single node name or a
// list of node names. The distinction is preserved so that representation can
// reproduce the exact declared form.
type NameRef struct {
	names []string
	list  bool
}

// Name returns a single-name endpoint.
func Name(name string) NameRef {
	return NameRef{names: []string{name}}
}

// Names returns a list endpoint.
func Names(names ...string) NameRef {
	return NameRef{names: names, list: true}
}

// Values returns the node names of the endpoint.
func (r NameRef) Values() []string {
	return r.names
}

// IsList reports whether the endpoint was declared as a list.
func (r NameRef) IsList() bool {
	return r.list
}

// Edge is a single directed edge between two named nodes.
type Edge struct {
	Source string
	Target string
}

// GroupedEdge is a compact many-to-many edge declaration: every source feeds
// every target.
type GroupedEdge struct {
	Sources NameRef
	Targets NameRef
}

// Expand returns the full cross product of individual source/target pairs.
func (g GroupedEdge) Expand() []Edge {
	edges := make([]Edge, 0, len(g.Sources.Values())*len(g.Targets.Values()))
	for _, src := range g.Sources.Values() {
		for _, dst := range g.Targets.Values() {
			edges = append(edges, Edge{Source: src, Target: dst})
		}
	}
	return edges
}
