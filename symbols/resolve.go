package symbols

import (
	"fmt"
	"reflect"
	"strings"
)

// ResolutionError reports that no prefix of a dotted path names a registered
// module.
type ResolutionError struct {
	Path string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("no module named %q", e.Path)
}

// Attributer lets a value expose named attributes to the resolver's
// attribute-chain walk.
type Attributer interface {
	Attr(name string) (any, bool)
}

// Resolve returns the live value a dotted path denotes.
//
// The path is split at the rightmost dot into a module candidate and an
// attribute chain. If the module candidate is not registered, the split moves
// one dot further left, treating one more segment as an attribute, until
// either a registered module is found or the path is exhausted. The search
// starts from the most specific module guess because a dotted path alone
// cannot distinguish a submodule from an attribute access.
//
// A failed attribute lookup on a found module does not resume the search; it
// is reported as-is.
func (r *Registry) Resolve(path string) (any, error) {
	segments := strings.Split(path, ".")
	for split := len(segments) - 1; split >= 1; split-- {
		module := strings.Join(segments[:split], ".")
		ns, ok := r.modules[module]
		if !ok {
			continue
		}
		var obj any = ns
		walked := module
		for _, attr := range segments[split:] {
			next, err := attrValue(obj, attr)
			if err != nil {
				return nil, fmt.Errorf("symbols: %s: %w", walked, err)
			}
			obj = next
			walked += "." + attr
		}
		return obj, nil
	}
	return nil, &ResolutionError{Path: path}
}

// attrValue performs one step of the attribute-chain walk.
func attrValue(obj any, name string) (any, error) {
	switch o := obj.(type) {
	case *Namespace:
		if v, ok := o.Member(name); ok {
			return v, nil
		}
	case Attributer:
		if v, ok := o.Attr(name); ok {
			return v, nil
		}
	case map[string]any:
		if v, ok := o[name]; ok {
			return v, nil
		}
	default:
		if v, ok := fieldValue(obj, name); ok {
			return v, nil
		}
	}
	return nil, fmt.Errorf("no attribute %q", name)
}

// fieldValue looks name up among the exported struct fields of obj, matching
// exactly first and case-insensitively second.
func fieldValue(obj any, name string) (any, bool) {
	rv := reflect.ValueOf(obj)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, false
	}
	if f := rv.FieldByName(name); f.IsValid() && f.CanInterface() {
		return f.Interface(), true
	}
	f := rv.FieldByNameFunc(func(field string) bool {
		return strings.EqualFold(field, name)
	})
	if f.IsValid() && f.CanInterface() {
		return f.Interface(), true
	}
	return nil, false
}

// splitLast splits a dotted path at its rightmost dot.
func splitLast(path string) (module, name string, ok bool) {
	i := strings.LastIndexByte(path, '.')
	if i <= 0 || i == len(path)-1 {
		return "", "", false
	}
	return path[:i], path[i+1:], true
}
