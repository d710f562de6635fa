package model

import "fmt"

// Graph is a named directed structure built from grouped edges, with a node
// descriptor attached to each structural node and an open, ordered bag of
// graph-level attributes.
//
// The graph records the original grouped form of every edge declaration next
// to the expanded pairs, and the order in which node names were first
// mentioned. Both are needed to reproduce the declared text exactly.
type Graph struct {
	name    string
	order   []string
	nodes   map[string]*Node
	grouped []GroupedEdge
	edges   []Edge
	attrs   *Attrs
}

// NewGraph returns an empty graph with the given name.
func NewGraph(name string) *Graph {
	return &Graph{
		name:  name,
		nodes: make(map[string]*Node),
		attrs: NewAttrs(),
	}
}

// Name returns the graph's identity.
func (g *Graph) Name() string { return g.name }

// AddGroupedEdges appends grouped edge declarations, expanding each into the
// cross product of its endpoints. Node names are recorded in first-mention
// order.
func (g *Graph) AddGroupedEdges(groups ...GroupedEdge) {
	for _, group := range groups {
		g.grouped = append(g.grouped, group)
		for _, name := range group.Sources.Values() {
			g.touch(name)
		}
		for _, name := range group.Targets.Values() {
			g.touch(name)
		}
		g.edges = append(g.edges, group.Expand()...)
	}
}

// touch records a node name the first time it is mentioned.
func (g *Graph) touch(name string) {
	if _, ok := g.nodes[name]; ok {
		return
	}
	g.nodes[name] = nil
	g.order = append(g.order, name)
}

// SetNodeObject attaches a node descriptor to its structural node. A name not
// yet mentioned by any edge is appended to the node order.
func (g *Graph) SetNodeObject(n *Node) error {
	if err := n.Validate(); err != nil {
		return err
	}
	g.touch(n.Name)
	g.nodes[n.Name] = n
	return nil
}

// SetNodeObjects attaches a series of node descriptors.
func (g *Graph) SetNodeObjects(nodes ...*Node) error {
	for _, n := range nodes {
		if err := g.SetNodeObject(n); err != nil {
			return err
		}
	}
	return nil
}

// NodeNames returns all node names in first-mention order.
func (g *Graph) NodeNames() []string {
	names := make([]string, len(g.order))
	copy(names, g.order)
	return names
}

// Node returns the descriptor attached to name, if any.
func (g *Graph) Node(name string) (*Node, bool) {
	n, ok := g.nodes[name]
	if !ok || n == nil {
		return nil, false
	}
	return n, true
}

// Nodes returns the attached descriptors in node order. Structural nodes
// without a descriptor are skipped.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.order))
	for _, name := range g.order {
		if n := g.nodes[name]; n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// GroupedEdges returns the original, non-expanded edge declarations.
func (g *Graph) GroupedEdges() []GroupedEdge {
	groups := make([]GroupedEdge, len(g.grouped))
	copy(groups, g.grouped)
	return groups
}

// Edges returns the expanded directed edges in declaration order.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, len(g.edges))
	copy(edges, g.edges)
	return edges
}

// Attrs returns the graph-level attribute bag. Mutations are visible on the
// graph; the bag never contains the reserved key "name".
func (g *Graph) Attrs() *Attrs { return g.attrs }

// Validate checks that every structural node has a descriptor attached.
func (g *Graph) Validate() error {
	for _, name := range g.order {
		if g.nodes[name] == nil {
			return fmt.Errorf("model: graph %q node %q has no node object", g.name, name)
		}
	}
	return nil
}
