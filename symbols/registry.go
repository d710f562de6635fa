package symbols

import (
	"fmt"
	"reflect"
)

// Namespace is an ordered set of named members acting as an importable
// module. Members may themselves be namespaces, forming a module chain.
type Namespace struct {
	names   []string
	members map[string]any
}

// NewNamespace returns an empty namespace.
func NewNamespace() *Namespace {
	return &Namespace{members: make(map[string]any)}
}

// Add registers a member and returns the namespace for chaining.
func (ns *Namespace) Add(name string, v any) *Namespace {
	if _, ok := ns.members[name]; ok {
		panic(fmt.Sprintf("symbols: member %q already present in namespace", name))
	}
	ns.names = append(ns.names, name)
	ns.members[name] = v
	return ns
}

// Member returns the member stored under name.
func (ns *Namespace) Member(name string) (any, bool) {
	v, ok := ns.members[name]
	return v, ok
}

// Names returns the member names in registration order.
func (ns *Namespace) Names() []string {
	names := make([]string, len(ns.names))
	copy(names, ns.names)
	return names
}

// Registry holds the registered modules for one application instance, plus
// the reverse mapping from value identity to the dotted path it was
// registered under.
type Registry struct {
	modules map[string]*Namespace
	order   []string
	reverse map[any]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		modules: make(map[string]*Namespace),
		reverse: make(map[any]string),
	}
}

// RegisterModule registers a namespace under a dotted module path. Nested
// namespaces are indexed recursively for reverse lookup. Registering the
// same module path twice is a programmer error.
func (r *Registry) RegisterModule(path string, ns *Namespace) {
	if _, ok := r.modules[path]; ok {
		panic(fmt.Sprintf("symbols: module %q already registered", path))
	}
	r.modules[path] = ns
	r.order = append(r.order, path)
	r.index(path, ns)
}

// Register registers a single value under a full dotted path, creating the
// owning module namespace on demand.
func (r *Registry) Register(path string, v any) error {
	module, name, ok := splitLast(path)
	if !ok {
		return fmt.Errorf("symbols: path %q has no module segment", path)
	}
	ns, exists := r.modules[module]
	if !exists {
		ns = NewNamespace()
		r.modules[module] = ns
		r.order = append(r.order, module)
	}
	ns.Add(name, v)
	r.remember(path, v)
	return nil
}

// Modules returns the registered module paths in registration order.
func (r *Registry) Modules() []string {
	paths := make([]string, len(r.order))
	copy(paths, r.order)
	return paths
}

// PathOf returns the dotted path a value was registered under. The first
// registration of a value wins; values never registered are not found.
func (r *Registry) PathOf(v any) (string, bool) {
	key, ok := identityKey(v)
	if !ok {
		return "", false
	}
	path, ok := r.reverse[key]
	return path, ok
}

// index records reverse entries for every member of ns, recursing into
// nested namespaces.
func (r *Registry) index(prefix string, ns *Namespace) {
	for _, name := range ns.names {
		member := ns.members[name]
		path := prefix + "." + name
		if nested, ok := member.(*Namespace); ok {
			r.index(path, nested)
			continue
		}
		r.remember(path, member)
	}
}

func (r *Registry) remember(path string, v any) {
	key, ok := identityKey(v)
	if !ok {
		return
	}
	if _, exists := r.reverse[key]; !exists {
		r.reverse[key] = path
	}
}

// identityKey derives a hashable identity for a value. Functions, pointers
// and other reference kinds key by their pointer; comparable values key by
// value. Uncomparable non-reference values have no identity.
func identityKey(v any) (any, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Invalid:
		return nil, false
	case reflect.Func, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.UnsafePointer:
		return ptrKey{t: rv.Type(), p: rv.Pointer()}, true
	default:
		if rv.Comparable() {
			return v, true
		}
		return nil, false
	}
}

type ptrKey struct {
	t reflect.Type
	p uintptr
}
