// Package codec implements the bidirectional mapping between the YAML
// configuration surface and the computation-graph entities of the model
// package.
//
// The reader side is a tag registry: exact tags and prefixed (multi) tags
// dispatch to construction functions that turn parsed node trees into typed
// values, resolving nested tags inline and depth-first. The writer side is a
// type-keyed representer table producing yaml.Node trees whose emission is
// byte-identical to valid reader input, so that for canonical text
// Dump(Load(text)) == text.
//
// Both tables are caller-extensible; the dispatch mechanism itself never
// changes.
package codec
