package config

import (
	"os"
	"sort"
	"strings"

	"go.starlark.net/starlark"
)

// envSource reads parameters from environment variables named
// "<PREFIX>_<NAME>", e.g. APP_LOG_ROTATION for log_rotation.
type envSource struct {
	prefix string
	names  []string
}

// EnvSource returns environment overrides as a Source. With names, exactly
// those parameters are looked up, in that order. Without names, every variable
// carrying the prefix becomes an assignment, in sorted order; an empty prefix
// then matches nothing.
//
// Values are read as line format literals (7, 2.5, :debug, [1, 2], true) and
// are kept as plain strings when they do not parse ("/var/log", "debug").
func EnvSource(prefix string, names ...string) Source {
	return &envSource{prefix: prefix, names: names}
}

func (e *envSource) Name() string {
	if e.prefix == "" {
		return "env"
	}
	return "env:" + e.prefix
}

func (e *envSource) Walk(fn func(Assignment) error) error { return e.lookup().Walk(fn) }

func (e *envSource) lookup() Assignments {
	var out Assignments
	if len(e.names) > 0 {
		for _, name := range e.names {
			if v, ok := os.LookupEnv(envName(e.prefix, name)); ok {
				out = append(out, Assignment{Name: name, Value: envValue(v)})
			}
		}
		return out
	}
	if e.prefix == "" {
		return nil
	}

	base := e.prefix + "_"
	for _, kv := range os.Environ() {
		key, v, _ := strings.Cut(kv, "=")
		rest, ok := strings.CutPrefix(key, base)
		if !ok {
			continue
		}
		name := strings.ToLower(rest)
		if ident, tail := splitIdent(name); ident == "" || tail != "" {
			continue
		}
		out = append(out, Assignment{Name: name, Value: envValue(v)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// envName returns the variable holding param: envName("APP", "log_rotation")
// is "APP_LOG_ROTATION".
func envName(prefix, param string) string {
	return buildEnvName(prefix, []string{strings.ToUpper(param)})
}

func buildEnvName(prefix string, segments []string) string {
	switch {
	case prefix == "" && len(segments) == 0:
		return ""
	case prefix == "":
		return strings.Join(segments, "_")
	case len(segments) == 0:
		return prefix
	default:
		return prefix + "_" + strings.Join(segments, "_")
	}
}

func envValue(s string) any {
	thread := &starlark.Thread{Name: "env"}
	thread.SetMaxExecutionSteps(starlarkMaxSteps)
	sv, err := evalLiteral(thread, "env", s, literalEnv())
	if err != nil {
		return s
	}
	v, err := fromStarlark(sv)
	if err != nil {
		return s
	}
	return v
}

// mergeEnv applies the environment overrides of the registered parameters
// when WithEnvPrefix is set. The overrides count as a source only when at
// least one variable is present.
func (c *Config) mergeEnv() error {
	if c.opts.envPrefix == "" {
		return nil
	}
	src := &envSource{prefix: c.opts.envPrefix, names: c.reg.Names()}
	list := src.lookup()
	if len(list) == 0 {
		return nil
	}
	return c.MergeSource(&fileSource{name: src.Name(), list: list})
}
