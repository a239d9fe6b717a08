package config

import "sort"

// Values is an insertion-ordered mapping from parameter name to value.
// Overwriting a key keeps its original position. The zero value is ready to use.
type Values struct {
	keys []string
	m    map[string]any
}

// NewValues returns an empty Values.
func NewValues() *Values {
	return &Values{m: make(map[string]any)}
}

// ValuesFromMap copies m into a new Values in sorted key order.
func ValuesFromMap(m map[string]any) *Values {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	v := NewValues()
	for _, k := range keys {
		v.Set(k, m[k])
	}
	return v
}

// Set stores value under key.
func (v *Values) Set(key string, value any) {
	if v.m == nil {
		v.m = make(map[string]any)
	}
	if _, ok := v.m[key]; !ok {
		v.keys = append(v.keys, key)
	}
	v.m[key] = value
}

// Get returns the value stored under key.
func (v *Values) Get(key string) (any, bool) {
	val, ok := v.m[key]
	return val, ok
}

// Has reports whether key is present.
func (v *Values) Has(key string) bool {
	_, ok := v.m[key]
	return ok
}

// Delete removes key.
func (v *Values) Delete(key string) {
	if _, ok := v.m[key]; !ok {
		return
	}
	delete(v.m, key)
	for i, k := range v.keys {
		if k == key {
			v.keys = append(v.keys[:i:i], v.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of keys.
func (v *Values) Len() int { return len(v.keys) }

// Keys returns the keys in insertion order.
func (v *Values) Keys() []string { return append([]string(nil), v.keys...) }

// Each calls fn for every entry in order until fn returns false.
func (v *Values) Each(fn func(key string, value any) bool) {
	for _, k := range v.keys {
		if !fn(k, v.m[k]) {
			return
		}
	}
}

// Map returns a copy of the entries as a plain map.
func (v *Values) Map() map[string]any {
	out := make(map[string]any, len(v.keys))
	for _, k := range v.keys {
		out[k] = v.m[k]
	}
	return out
}

// Clone returns a shallow copy of v.
func (v *Values) Clone() *Values {
	out := &Values{keys: v.Keys(), m: make(map[string]any, len(v.m))}
	for k, val := range v.m {
		out.m[k] = val
	}
	return out
}

// Merge overlays the entries of other onto v in other's order. Later entries win.
func (v *Values) Merge(other *Values) *Values {
	if other == nil {
		return v
	}
	for _, k := range other.keys {
		v.Set(k, other.m[k])
	}
	return v
}

// Complement removes from v every key present in remove, whatever its value,
// and returns v.
func (v *Values) Complement(remove *Values) *Values {
	if remove == nil {
		return v
	}
	for _, k := range remove.keys {
		v.Delete(k)
	}
	return v
}

// Intersection returns the entries of full whose keys are parameters of reg,
// in full's order.
func Intersection(reg *Registry, full *Values) *Values {
	out := NewValues()
	if full == nil {
		return out
	}
	for _, k := range full.keys {
		if reg.Has(k) {
			out.Set(k, full.m[k])
		}
	}
	return out
}

// Complement returns a copy of full without the keys present in remove.
func Complement(full, remove *Values) *Values {
	if full == nil {
		return NewValues()
	}
	return full.Clone().Complement(remove)
}
