package model

import "fmt"

// Node is a single computation step: a named callable with declared inputs
// and one declared output. The callable is whatever the loader resolved for
// the "func" property: a registered symbol, an expression-backed callable, or
// a parameterized factory product. A node always carries exactly one callable.
type Node struct {
	Name       string
	Func       any
	Inputs     []string
	Output     string
	OutputUnit string
	Doc        string
}

// Validate checks the structural invariants of the descriptor.
func (n *Node) Validate() error {
	if n.Name == "" {
		return fmt.Errorf("model: node name must not be empty")
	}
	if n.Func == nil {
		return fmt.Errorf("model: node %q has no callable", n.Name)
	}
	return nil
}

// EditDict returns the ordered keyword arguments needed to reconstruct the
// node, excluding its name. Unset optional fields are omitted.
func (n *Node) EditDict() *Attrs {
	a := NewAttrs()
	a.Set("func", n.Func)
	if len(n.Inputs) > 0 {
		a.Set("inputs", stringsToAny(n.Inputs))
	}
	if n.Output != "" {
		a.Set("output", n.Output)
	}
	if n.OutputUnit != "" {
		a.Set("output_unit", n.OutputUnit)
	}
	if n.Doc != "" {
		a.Set("doc", n.Doc)
	}
	return a
}

func stringsToAny(ss []string) []any {
	vals := make([]any, len(ss))
	for i, s := range ss {
		vals[i] = s
	}
	return vals
}
