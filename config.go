package config

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ygrebnov/schemaconf/streams"
)

// Policy decides what happens to assignments whose name has no handler.
type Policy int

const (
	// Strict rejects unknown names with an UnknownParameter error.
	Strict Policy = iota
	// Relaxed stores unknown names verbatim, without validation.
	Relaxed
)

func (p Policy) String() string {
	if p == Relaxed {
		return "relaxed"
	}
	return "strict"
}

type options struct {
	policy         Policy
	local          bool
	strictDefaults bool
	values         *Values
	envPrefix      string
	log            zerolog.Logger
	streams        streams.IOStreams
	reportPath     string
}

// Option configures a load, a check or a template run. Options are composable
// and can be passed in any order.
type Option func(*options)

func newOptions(opts []Option) options {
	o := options{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithPolicy sets the unknown-parameter policy. The default is Strict.
func WithPolicy(p Policy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithLocal restricts the schema to the parameters it declares itself,
// ignoring inherited handlers.
func WithLocal() Option {
	return func(o *options) {
		o.local = true
	}
}

// WithStrictDefaults makes an invalid declared default fail the load instead
// of being skipped. Useful to catch schema mistakes in tests.
func WithStrictDefaults() Option {
	return func(o *options) {
		o.strictDefaults = true
	}
}

// WithValues pre-populates the configuration after the defaults and before any
// source is evaluated. The values are not validated. Panics if m is nil.
func WithValues(m map[string]any) Option {
	return func(o *options) {
		if m == nil {
			panic("config: WithValues: m cannot be nil")
		}
		o.values = ValuesFromMap(m)
	}
}

// WithEnvPrefix applies environment overrides after the loaded sources:
// "<PREFIX>_<NAME>" assigns the parameter <name>, e.g. APP_LOG_ROTATION=7.
// Only registered parameters are looked up. Panics if prefix is empty.
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		if prefix == "" {
			panic("config: WithEnvPrefix: prefix cannot be empty")
		}
		o.envPrefix = prefix
	}
}

// WithLogger routes debug events of the engine to l. Defaults to zerolog.Nop().
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

// WithStreams wires user-facing messages ("config: loaded from ..." notices and
// check reports). Pass adapters from the companion streams package. Panics if s
// is nil.
func WithStreams(s streams.IOStreams) Option {
	return func(o *options) {
		if s == nil {
			panic("config: WithStreams: streams cannot be nil")
		}
		o.streams = s
	}
}

// Config is a materialized configuration: the validated values of one schema,
// the raw assignments they were resolved from, and the ordered list of sources
// that contributed them.
//
// A Config is built in the following steps:
//  1. Build (or reuse) the schema registry, local or full.
//  2. Validate every declared default through its handler and store it.
//  3. Apply WithValues entries, if any.
//  4. Evaluate each merged source, assignment by assignment, through Resolve.
//  5. With WithEnvPrefix, evaluate the environment overrides last (Load and
//     LoadSource only).
//
// A Config is not safe for concurrent mutation.
type Config struct {
	schema  *Schema
	reg     *Registry
	opts    options
	values  *Values
	raw     *Values
	sources []string
}

// New returns a configuration holding only the defaults of s.
func New(s *Schema, opts ...Option) (*Config, error) {
	if s == nil {
		panic("config: New: schema cannot be nil")
	}
	o := newOptions(opts)
	reg := s.Registry()
	if o.local {
		reg = s.LocalRegistry()
	}
	c := &Config{schema: s, reg: reg, opts: o, values: NewValues(), raw: NewValues()}

	if err := applyDefaults(c.values, c.raw, reg, o.strictDefaults, o.log); err != nil {
		return nil, err
	}
	if o.values != nil {
		c.MergeValues(o.values)
	}
	o.log.Debug().
		Str("schema", s.Name()).
		Int("params", reg.Len()).
		Int("defaults", c.values.Len()).
		Msg("config initialized")
	return c, nil
}

// Load returns the defaults of s overwritten by the assignments of the file at
// path, then by environment overrides if WithEnvPrefix is set. An empty path
// skips the file.
func Load(s *Schema, path string, opts ...Option) (*Config, error) {
	c, err := New(s, opts...)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := c.Merge(path); err != nil {
			return nil, err
		}
	}
	if err := c.mergeEnv(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadSource is Load for an already opened Source.
func LoadSource(s *Schema, src Source, opts ...Option) (*Config, error) {
	c, err := New(s, opts...)
	if err != nil {
		return nil, err
	}
	if err := c.MergeSource(src); err != nil {
		return nil, err
	}
	if err := c.mergeEnv(); err != nil {
		return nil, err
	}
	return c, nil
}

// Merge evaluates the file at path onto c, so that its assignments overwrite
// earlier values by name, and records path as a source.
func (c *Config) Merge(path string) error {
	src, err := OpenSource(path)
	if err != nil {
		return err
	}
	return c.MergeSource(src)
}

// Apply evaluates every assignment of src through Resolve, stopping at the
// first error. Assignments applied before the error stay in c. Unlike
// MergeSource, src is not recorded as a source.
func (c *Config) Apply(src Source) error {
	n := 0
	err := src.Walk(func(a Assignment) error {
		n++
		_, err := c.Resolve(a.Name, a.Value)
		return err
	})
	c.opts.log.Debug().Str("source", src.Name()).Int("assignments", n).Msg("source applied")
	return err
}

// MergeSource evaluates src onto c and records src.Name() as a source.
func (c *Config) MergeSource(src Source) error {
	if err := c.Apply(src); err != nil {
		return err
	}
	c.sources = append(c.sources, src.Name())
	if c.opts.streams != nil && c.opts.streams.Out() != nil {
		fmt.Fprintf(c.opts.streams.Out(), "config: loaded from %s\n", src.Name())
	}
	return nil
}

// MergeValues overlays already materialized values onto c without validation.
// They are saved as given.
func (c *Config) MergeValues(v *Values) {
	c.values.Merge(v)
	c.raw.Merge(v)
}

// Complement removes from c every key present in remove.
func (c *Config) Complement(remove *Values) {
	c.values.Complement(remove)
	c.raw.Complement(remove)
}

// Get returns the value of the parameter name.
func (c *Config) Get(name string) (any, bool) { return c.values.Get(name) }

// Keys returns the parameter names present, in insertion order.
func (c *Config) Keys() []string { return c.values.Keys() }

// Len returns the number of parameters present.
func (c *Config) Len() int { return c.values.Len() }

// Values returns a copy of the parameter values.
func (c *Config) Values() *Values { return c.values.Clone() }

// RawValues returns a copy of the values as they were assigned, before their
// handlers ran. These are what Save writes.
func (c *Config) RawValues() *Values { return c.raw.Clone() }

// Sources returns the sources merged into c, in application order.
func (c *Config) Sources() []string { return append([]string(nil), c.sources...) }

// Map returns the values as a plain map with the sources under ConfigFilesKey.
func (c *Config) Map() map[string]any {
	m := c.values.Map()
	m[ConfigFilesKey] = c.Sources()
	return m
}

// Schema returns the schema c was built from.
func (c *Config) Schema() *Schema { return c.schema }

// Registry returns the registry c resolves names against.
func (c *Config) Registry() *Registry { return c.reg }

// Policy returns the unknown-parameter policy in effect.
func (c *Config) Policy() Policy { return c.opts.policy }
