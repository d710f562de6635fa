package codec

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Marohn-Group/mrfmsim-yaml/model"
)

// ConstructorFunc turns a parsed node carrying an exact tag into a value.
type ConstructorFunc func(l *Loader, node *yaml.Node) (any, error)

// MultiConstructorFunc turns a parsed node carrying a prefixed tag into a
// value. suffix is the tag's remainder after the registered prefix,
// conventionally used as an inline identity.
type MultiConstructorFunc func(l *Loader, suffix string, node *yaml.Node) (any, error)

// Constructors is the reader-side tag table: exact tags matched verbatim,
// then prefixed tags tried in registration order. Callers may extend it
// before building a Loader; dispatch itself is closed.
type Constructors struct {
	exact map[string]ConstructorFunc
	multi []multiEntry
}

type multiEntry struct {
	prefix string
	fn     MultiConstructorFunc
}

// NewConstructors returns an empty tag table.
func NewConstructors() *Constructors {
	return &Constructors{exact: make(map[string]ConstructorFunc)}
}

// Add registers an exact-tag constructor. Duplicate registration is a
// programmer error.
func (c *Constructors) Add(tag string, fn ConstructorFunc) {
	if _, ok := c.exact[tag]; ok {
		panic(fmt.Sprintf("codec: constructor for tag %q already registered", tag))
	}
	c.exact[tag] = fn
}

// AddMulti registers a prefixed-tag constructor.
func (c *Constructors) AddMulti(prefix string, fn MultiConstructorFunc) {
	for _, m := range c.multi {
		if m.prefix == prefix {
			panic(fmt.Sprintf("codec: multi constructor for prefix %q already registered", prefix))
		}
	}
	c.multi = append(c.multi, multiEntry{prefix: prefix, fn: fn})
}

// Loader constructs values from tagged YAML node trees, depth-first and
// inline: a constructor's nested tag resolutions complete before the
// constructor returns.
type Loader struct {
	cons *Constructors
}

// NewLoader builds a loader over the given tag table.
func NewLoader(cons *Constructors) *Loader {
	return &Loader{cons: cons}
}

// Load reads a single YAML document and constructs its value.
func (l *Loader) Load(r io.Reader) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("codec: reading document: %w", err)
	}
	return l.LoadBytes(data)
}

// LoadBytes constructs the value of a single YAML document.
func (l *Loader) LoadBytes(data []byte) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("codec: parsing document: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}
	return l.Construct(doc.Content[0])
}

// Construct dispatches a node through the tag table. Unrecognized custom
// tags are an error; standard tags fall through to plain scalar, sequence
// and mapping construction.
func (l *Loader) Construct(node *yaml.Node) (any, error) {
	if node.Kind == yaml.AliasNode {
		return l.Construct(node.Alias)
	}
	tag := node.Tag
	if fn, ok := l.cons.exact[tag]; ok {
		return fn(l, node)
	}
	for _, m := range l.cons.multi {
		if strings.HasPrefix(tag, m.prefix) {
			return m.fn(l, strings.TrimPrefix(tag, m.prefix), node)
		}
	}
	switch tag {
	case "!!null":
		return nil, nil
	case "!!str":
		return node.Value, nil
	case "!!bool", "!!int", "!!float", "!!timestamp", "!!binary":
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, fmt.Errorf("codec: line %d: decoding scalar: %w", node.Line, err)
		}
		return v, nil
	case "!!seq":
		return l.ConstructSequence(node)
	case "!!map":
		return l.ConstructMapping(node)
	default:
		return nil, fmt.Errorf("codec: line %d: no constructor for tag %q", node.Line, tag)
	}
}

// ConstructScalar returns the string body of a scalar node.
func (l *Loader) ConstructScalar(node *yaml.Node) (string, error) {
	if node.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("codec: line %d: expected a scalar node", node.Line)
	}
	return node.Value, nil
}

// ConstructSequence constructs every item of a sequence node.
func (l *Loader) ConstructSequence(node *yaml.Node) ([]any, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("codec: line %d: expected a sequence node", node.Line)
	}
	items := make([]any, 0, len(node.Content))
	for _, item := range node.Content {
		v, err := l.Construct(item)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, nil
}

// ConstructMapping constructs a mapping node into an insertion-ordered
// attribute bag. Keys must be plain strings and unique.
func (l *Loader) ConstructMapping(node *yaml.Node) (*model.Attrs, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("codec: line %d: expected a mapping node", node.Line)
	}
	attrs := model.NewAttrs()
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("codec: line %d: mapping keys must be scalars", keyNode.Line)
		}
		key := keyNode.Value
		if _, exists := attrs.Get(key); exists {
			return nil, fmt.Errorf("codec: line %d: duplicate mapping key %q", keyNode.Line, key)
		}
		v, err := l.Construct(valNode)
		if err != nil {
			return nil, err
		}
		attrs.Set(key, v)
	}
	return attrs, nil
}
