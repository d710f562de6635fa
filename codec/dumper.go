package codec

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/Marohn-Group/mrfmsim-yaml/model"
)

// RepresenterFunc turns an in-memory value into the yaml.Node the emitter
// serializes.
type RepresenterFunc func(d *Dumper, v any) (*yaml.Node, error)

// Representers is the writer-side dispatch table: exact dynamic types first,
// then ordered match predicates for interface- and kind-based fallbacks.
type Representers struct {
	types   map[reflect.Type]RepresenterFunc
	matches []matchEntry
}

type matchEntry struct {
	match func(any) bool
	fn    RepresenterFunc
}

// NewRepresenters returns an empty representer table.
func NewRepresenters() *Representers {
	return &Representers{types: make(map[reflect.Type]RepresenterFunc)}
}

// Add registers a representer for an exact dynamic type.
func (r *Representers) Add(t reflect.Type, fn RepresenterFunc) {
	if _, ok := r.types[t]; ok {
		panic(fmt.Sprintf("codec: representer for type %s already registered", t))
	}
	r.types[t] = fn
}

// AddMatch registers a fallback representer checked, in registration order,
// after exact type lookup fails.
func (r *Representers) AddMatch(match func(any) bool, fn RepresenterFunc) {
	r.matches = append(r.matches, matchEntry{match: match, fn: fn})
}

func (r *Representers) lookup(v any) (RepresenterFunc, bool) {
	if fn, ok := r.types[reflect.TypeOf(v)]; ok {
		return fn, true
	}
	for _, m := range r.matches {
		if m.match(v) {
			return m.fn, true
		}
	}
	return nil, false
}

// Dumper serializes in-memory values back into the textual form the loader
// accepts. Output is canonical: two-space indent, flow style for plain
// sequences, block style where a wrapper requests it.
type Dumper struct {
	reps   *Representers
	indent int
}

// NewDumper builds a dumper over the given representer table.
func NewDumper(reps *Representers) *Dumper {
	return &Dumper{reps: reps, indent: 2}
}

// Dump serializes v into one YAML document.
func (d *Dumper) Dump(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := d.DumpTo(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DumpTo serializes v into w.
func (d *Dumper) DumpTo(w io.Writer, v any) error {
	node, err := d.Represent(v)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(d.indent)
	if err := enc.Encode(node); err != nil {
		return fmt.Errorf("codec: emitting document: %w", err)
	}
	return enc.Close()
}

// Represent dispatches v through the representer table, falling back to
// plain scalar, sequence and mapping forms.
func (d *Dumper) Represent(v any) (*yaml.Node, error) {
	if v == nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	}
	if fn, ok := d.reps.lookup(v); ok {
		return fn(d, v)
	}
	switch val := v.(type) {
	case []any:
		return d.RepresentSequence("!!seq", val, true)
	case []string:
		return d.RepresentSequence("!!seq", anySlice(val), true)
	case map[string]any:
		// Generic maps carry no order; sort for deterministic output.
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		items := make([]model.KV, 0, len(keys))
		for _, k := range keys {
			items = append(items, model.KV{Key: k, Value: val[k]})
		}
		return d.RepresentMapping("!!map", items, false)
	default:
		return d.representScalar(v)
	}
}

// RepresentScalar builds a tagged scalar node.
func (d *Dumper) RepresentScalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

// RepresentSequence builds a sequence node, representing each item.
func (d *Dumper) RepresentSequence(tag string, items []any, flow bool) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Tag: tag}
	if flow {
		node.Style = yaml.FlowStyle
	}
	for _, item := range items {
		child, err := d.Represent(item)
		if err != nil {
			return nil, err
		}
		node.Content = append(node.Content, child)
	}
	return node, nil
}

// RepresentMapping builds a mapping node from ordered entries.
func (d *Dumper) RepresentMapping(tag string, items []model.KV, flow bool) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: tag}
	if flow {
		node.Style = yaml.FlowStyle
	}
	for _, item := range items {
		value, err := d.Represent(item.Value)
		if err != nil {
			return nil, err
		}
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: item.Key}
		node.Content = append(node.Content, key, value)
	}
	return node, nil
}

// representScalar encodes plain scalar values through the yaml encoder's own
// type handling.
func (d *Dumper) representScalar(v any) (*yaml.Node, error) {
	switch v.(type) {
	case string, bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64:
		node := &yaml.Node{}
		if err := node.Encode(v); err != nil {
			return nil, fmt.Errorf("codec: encoding scalar: %w", err)
		}
		return node, nil
	default:
		return nil, &UnrepresentableError{Value: v, Reason: "no representer registered"}
	}
}

func anySlice(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
