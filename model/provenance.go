package model

// Parameterized is implemented by values produced through a parameterized
// import. It exposes the provenance needed to represent the value back as the
// factory path plus the keyword arguments it was invoked with.
type Parameterized interface {
	FactoryPath() string
	Args() *Attrs
}

// ProvenanceSetter is implemented by factory products that accept provenance
// stamping after construction. The symbol registry calls it once, right after
// the factory returns.
type ProvenanceSetter interface {
	SetProvenance(path string, args *Attrs)
}

// Provenance is an embeddable implementation of Parameterized and
// ProvenanceSetter for factory product types.
type Provenance struct {
	path string
	args *Attrs
}

// FactoryPath returns the dotted path of the producing factory.
func (p *Provenance) FactoryPath() string { return p.path }

// Args returns the keyword arguments the factory was invoked with.
func (p *Provenance) Args() *Attrs { return p.args }

// SetProvenance records the producing factory path and its arguments.
func (p *Provenance) SetProvenance(path string, args *Attrs) {
	p.path = path
	p.args = args
}
