package config

import "sync"

// DefaultPrefix is the handler name prefix used when a schema sets none.
const DefaultPrefix = "configure"

// ConfigFilesKey is the bookkeeping key under which Config.Map reports the
// sources that contributed to a configuration. No handler may claim it.
const ConfigFilesKey = "config_files"

// HandlerFunc validates or transforms the raw value of one parameter and returns
// the value to store. It declares the parameter's default and documentation
// through c; those declarations only take effect while c.Declaring() is true.
type HandlerFunc func(c *Call, v any) (any, error)

// Schema is the set of parameter handlers for one application. Handlers are
// registered under their full names, "<prefix>_<parameter>"; only names carrying
// the schema's effective prefix become parameters.
//
// A Schema is safe for concurrent use. Registries are built lazily on first use
// and rebuilt when handlers change.
type Schema struct {
	name   string
	prefix string
	parent *Schema

	hmu      sync.RWMutex
	handlers []handler
	rev      int

	cmu   sync.Mutex
	full  cachedRegistry
	local cachedRegistry
}

type handler struct {
	name string
	fn   HandlerFunc
}

type cachedRegistry struct {
	reg   *Registry
	stamp int
}

// SchemaOption configures a Schema at construction time.
type SchemaOption func(*Schema)

// WithPrefix overrides the handler prefix for the whole schema, inherited
// handlers included. Panics if prefix is empty.
func WithPrefix(prefix string) SchemaOption {
	return func(s *Schema) {
		if prefix == "" {
			panic("config: WithPrefix: prefix cannot be empty")
		}
		s.prefix = prefix
	}
}

// NewSchema constructs an empty schema. Panics if name is empty.
func NewSchema(name string, opts ...SchemaOption) *Schema {
	if name == "" {
		panic("config: NewSchema: name cannot be empty")
	}
	s := &Schema{name: name}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Extend returns a child schema inheriting every handler of s. Handlers the
// child registers under an inherited name override the parent's handler while
// keeping its position.
func (s *Schema) Extend(name string, opts ...SchemaOption) *Schema {
	child := NewSchema(name, opts...)
	child.parent = s
	return child
}

// Name returns the schema name.
func (s *Schema) Name() string { return s.name }

// Parent returns the schema s extends, or nil.
func (s *Schema) Parent() *Schema { return s.parent }

// Prefix returns the effective handler prefix: the nearest one set along the
// inheritance chain, or DefaultPrefix.
func (s *Schema) Prefix() string {
	for sc := s; sc != nil; sc = sc.parent {
		if sc.prefix != "" {
			return sc.prefix
		}
	}
	return DefaultPrefix
}

// Handle registers fn under its full handler name. Registering the same name
// twice on one schema replaces the earlier handler in place. Panics if name is
// empty, fn is nil or the name claims the reserved ConfigFilesKey under the
// schema's effective prefix.
func (s *Schema) Handle(name string, fn HandlerFunc) *Schema {
	switch {
	case name == "":
		panic("config: Handle: name cannot be empty")
	case fn == nil:
		panic("config: Handle: fn cannot be nil")
	case name == ConfigFilesKey || name == s.Prefix()+"_"+ConfigFilesKey:
		panic("config: Handle: " + ConfigFilesKey + " is reserved")
	}

	s.hmu.Lock()
	defer s.hmu.Unlock()
	s.rev++
	for i := range s.handlers {
		if s.handlers[i].name == name {
			s.handlers[i].fn = fn
			return s
		}
	}
	s.handlers = append(s.handlers, handler{name: name, fn: fn})
	return s
}

// Param registers fn for parameter name under the schema's effective prefix.
func (s *Schema) Param(name string, fn HandlerFunc) *Schema {
	return s.Handle(s.Prefix()+"_"+name, fn)
}

// Registry returns the registry of every parameter s declares or inherits.
func (s *Schema) Registry() *Registry {
	return s.registry(false)
}

// LocalRegistry returns the registry of the parameters declared directly on s,
// excluding inherited ones.
func (s *Schema) LocalRegistry() *Registry {
	return s.registry(true)
}

func (s *Schema) registry(local bool) *Registry {
	s.cmu.Lock()
	defer s.cmu.Unlock()

	cache := &s.full
	if local {
		cache = &s.local
	}
	stamp := s.stamp(local)
	if cache.reg == nil || cache.stamp != stamp {
		cache.reg = buildRegistry(s, local)
		cache.stamp = stamp
	}
	return cache.reg
}

// stamp changes whenever a handler visible to the registry changes.
func (s *Schema) stamp(local bool) int {
	n := 0
	for sc := s; sc != nil; sc = sc.parent {
		sc.hmu.RLock()
		n += sc.rev
		sc.hmu.RUnlock()
		if local {
			break
		}
	}
	return n
}

// chain returns the schemas contributing handlers, root first.
func (s *Schema) chain(local bool) []*Schema {
	if local {
		return []*Schema{s}
	}
	var out []*Schema
	for sc := s; sc != nil; sc = sc.parent {
		out = append([]*Schema{sc}, out...)
	}
	return out
}

func (s *Schema) snapshot() []handler {
	s.hmu.RLock()
	defer s.hmu.RUnlock()
	return append([]handler(nil), s.handlers...)
}
