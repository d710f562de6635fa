// Package symbols maps dotted-path identifiers to live Go values.
//
// The registry is an explicit substitute for dynamic import: the embedding
// application registers named modules at startup, the resolver looks dotted
// paths up with a widening-prefix search over module candidates, and
// representation runs the mapping in reverse through an identity-keyed
// provenance index.
package symbols
