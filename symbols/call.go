package symbols

import (
	"fmt"

	"github.com/Marohn-Group/mrfmsim-yaml/model"
)

// Factory is the uniform signature for keyword-argument constructors. Every
// symbol reachable through a parameterized import must have this shape.
type Factory func(args *model.Attrs) (any, error)

// Call resolves path and invokes the resolved factory with the given keyword
// arguments. Errors raised by the factory itself propagate unwrapped. A
// result that accepts provenance is stamped with the path and arguments so
// that representation can reproduce the call.
func (r *Registry) Call(path string, args *model.Attrs) (any, error) {
	obj, err := r.Resolve(path)
	if err != nil {
		return nil, err
	}
	var fn Factory
	switch f := obj.(type) {
	case Factory:
		fn = f
	case func(*model.Attrs) (any, error):
		fn = f
	default:
		return nil, fmt.Errorf("symbols: %s is not callable with keyword arguments", path)
	}
	v, err := fn(args)
	if err != nil {
		return nil, err
	}
	if ps, ok := v.(model.ProvenanceSetter); ok {
		ps.SetProvenance(path, args)
	}
	return v, nil
}
