package model

// KV is a single key/value entry of an Attrs bag.
type KV struct {
	Key   string
	Value any
}

// Attrs is an insertion-ordered string-keyed attribute bag. It is the closed
// substitute for an unconstrained dynamic record: values are expected to be
// scalars, []any, nested *Attrs, or entities produced by the codec.
//
// The zero value is not usable; call NewAttrs.
type Attrs struct {
	keys []string
	vals map[string]any
}

// NewAttrs returns an empty attribute bag.
func NewAttrs() *Attrs {
	return &Attrs{vals: make(map[string]any)}
}

// AttrsOf builds a bag from the given entries, preserving their order.
func AttrsOf(entries ...KV) *Attrs {
	a := NewAttrs()
	for _, e := range entries {
		a.Set(e.Key, e.Value)
	}
	return a
}

// Set stores value under key. A new key is appended to the iteration order;
// an existing key keeps its original position.
func (a *Attrs) Set(key string, value any) *Attrs {
	if _, ok := a.vals[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.vals[key] = value
	return a
}

// Get returns the value stored under key.
func (a *Attrs) Get(key string) (any, bool) {
	if a == nil {
		return nil, false
	}
	v, ok := a.vals[key]
	return v, ok
}

// Pop removes and returns the value stored under key.
func (a *Attrs) Pop(key string) (any, bool) {
	if a == nil {
		return nil, false
	}
	v, ok := a.vals[key]
	if !ok {
		return nil, false
	}
	delete(a.vals, key)
	for i, k := range a.keys {
		if k == key {
			a.keys = append(a.keys[:i], a.keys[i+1:]...)
			break
		}
	}
	return v, true
}

// Keys returns the keys in insertion order. The slice is a copy.
func (a *Attrs) Keys() []string {
	if a == nil {
		return nil
	}
	keys := make([]string, len(a.keys))
	copy(keys, a.keys)
	return keys
}

// Items returns the entries in insertion order.
func (a *Attrs) Items() []KV {
	if a == nil {
		return nil
	}
	items := make([]KV, 0, len(a.keys))
	for _, k := range a.keys {
		items = append(items, KV{Key: k, Value: a.vals[k]})
	}
	return items
}

// Len reports the number of entries.
func (a *Attrs) Len() int {
	if a == nil {
		return 0
	}
	return len(a.keys)
}
