package builtin

import "github.com/Marohn-Group/mrfmsim-yaml/model"

// Namespace is a generic attribute bag constructed through the
// structs.namespace factory. It exists for configuration values that are
// plain data objects rather than entities.
type Namespace struct {
	attrs *model.Attrs
}

// Attr exposes the attributes to the symbol resolver.
func (n *Namespace) Attr(name string) (any, bool) {
	return n.attrs.Get(name)
}

// Get returns the attribute stored under name.
func (n *Namespace) Get(name string) (any, bool) {
	return n.attrs.Get(name)
}

// Names returns the attribute names in declaration order.
func (n *Namespace) Names() []string {
	return n.attrs.Keys()
}
