package config

import "strings"

// ParameterSpec describes one declared parameter. The metadata fields are
// harvested from the handler when the registry is built and never change
// afterwards.
type ParameterSpec struct {
	Name    string
	Handler HandlerFunc
	// Index is the declaration position within the registry.
	Index int
	// Owner is the name of the schema whose handler is in effect.
	Owner string

	Default     any
	HasDefault  bool
	Comment     []string
	Description string
	Options     []string
}

// Registry is the ordered, read-only set of parameters of a schema.
type Registry struct {
	schema string
	prefix string
	local  bool
	params []ParameterSpec
	index  map[string]int
}

func buildRegistry(s *Schema, local bool) *Registry {
	prefix := s.Prefix() + "_"
	r := &Registry{
		schema: s.name,
		prefix: s.Prefix(),
		local:  local,
		index:  make(map[string]int),
	}
	for _, sc := range s.chain(local) {
		for _, h := range sc.snapshot() {
			name, ok := strings.CutPrefix(h.name, prefix)
			// A child prefix can expose an inherited "<prefix>_config_files".
			if !ok || name == "" || name == ConfigFilesKey {
				continue
			}
			if i, seen := r.index[name]; seen {
				r.params[i].Handler = h.fn
				r.params[i].Owner = sc.name
				continue
			}
			r.index[name] = len(r.params)
			r.params = append(r.params, ParameterSpec{
				Name:    name,
				Handler: h.fn,
				Index:   len(r.params),
				Owner:   sc.name,
			})
		}
	}
	for i := range r.params {
		harvest(&r.params[i])
	}
	return r
}

// Schema returns the name of the schema the registry was built from.
func (r *Registry) Schema() string { return r.schema }

// Prefix returns the handler prefix the registry was scanned with.
func (r *Registry) Prefix() string { return r.prefix }

// Local reports whether inherited handlers were excluded.
func (r *Registry) Local() bool { return r.local }

// Len returns the number of parameters.
func (r *Registry) Len() int { return len(r.params) }

// Lookup returns the parameter registered under name.
func (r *Registry) Lookup(name string) (ParameterSpec, bool) {
	i, ok := r.index[name]
	if !ok {
		return ParameterSpec{}, false
	}
	return r.params[i], true
}

// Has reports whether name is a declared parameter.
func (r *Registry) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Names returns the parameter names in declaration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.params))
	for i, p := range r.params {
		out[i] = p.Name
	}
	return out
}

// Params returns the parameters in declaration order.
func (r *Registry) Params() []ParameterSpec {
	return append([]ParameterSpec(nil), r.params...)
}
