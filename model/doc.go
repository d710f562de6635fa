// Package model defines the computation-graph entities that the YAML codec
// constructs and decomposes: nodes carrying callables, directed graphs built
// from grouped edges, experiments wrapping a graph with parameter defaults and
// modifiers, and experiment groups sharing a node pool across recipes.
//
// The entities are structural. Execution, unit conversion and graph analysis
// belong to the embedding application; this package only guarantees that every
// entity can hand back the exact constructor arguments needed to rebuild it,
// which is what the codec's representers rely on for round-trip fidelity.
package model
