package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
)

// Assignment is one (name, raw value) pair produced by a config source.
type Assignment struct {
	Name  string
	Value any
	// Line is the 1-based source line, or 0 when unknown.
	Line int
}

// Source produces assignments in source order. Duplicate names are applied in
// sequence, so the last one wins.
type Source interface {
	Name() string
	Walk(fn func(Assignment) error) error
}

// Assignments is an in-memory Source.
type Assignments []Assignment

func (a Assignments) Name() string { return "inline" }

func (a Assignments) Walk(fn func(Assignment) error) error {
	for _, asg := range a {
		if err := fn(asg); err != nil {
			return err
		}
	}
	return nil
}

// Pairs builds Assignments from alternating names and values:
// Pairs("log_rotation", 5, "email", "me@home.org.uk"). Panics on an odd number
// of arguments or a non-string name.
func Pairs(kv ...any) Assignments {
	if len(kv)%2 != 0 {
		panic("config: Pairs: odd number of arguments")
	}
	out := make(Assignments, 0, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		name, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("config: Pairs: name at %d is %T, not string", i, kv[i]))
		}
		out = append(out, Assignment{Name: name, Value: kv[i+1]})
	}
	return out
}

// fileSource is a Source whose assignments were parsed up front.
type fileSource struct {
	name string
	list Assignments
}

func (f *fileSource) Name() string { return f.name }

func (f *fileSource) Walk(fn func(Assignment) error) error { return f.list.Walk(fn) }

// OpenSource reads path and parses it according to its extension:
// .yaml/.yml, .json, .toml, .star; any other file uses the line format.
// See EnvSource for environment variables.
// A file that cannot be read is a ConfigFileMissing error carrying the path.
func OpenSource(path string) (Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Kind: ConfigFileMissing, Msg: path, Err: err}
	}
	return ParseSource(path, data)
}

// ParseSource parses data as the format implied by name's extension.
func ParseSource(name string, data []byte) (Source, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return parseYAML(name, data)
	case ".json":
		return parseJSON(name, data)
	case ".toml":
		return parseTOML(name, data)
	case ".star", ".sky":
		return newStarlarkSource(name, data)
	default:
		return parseLines(name, data)
	}
}

func syntaxAt(name string, line int, cause error) *Error {
	msg := fmt.Sprintf("syntax error in %s: %v", name, cause)
	if line > 0 {
		msg = fmt.Sprintf("syntax error in %s:%d: %v", name, line, cause)
	}
	return &Error{Kind: ConfigSyntaxError, Msg: msg, Err: cause}
}

// normalize maps decoder output onto the canonical raw kinds: int, float64,
// string, Symbol, bool, []any, map[string]any and nil.
func normalize(v any) any {
	switch x := v.(type) {
	case nil, string, bool, Symbol, int, float64:
		return v
	case []any:
		out := make([]any, len(x))
		for i, el := range x {
			out[i] = normalize(el)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, el := range x {
			out[k] = normalize(el)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, el := range x {
			out[Display(k)] = normalize(el)
		}
		return out
	}
	if n, ok := asInt(v); ok {
		if n >= math.MinInt && n <= math.MaxInt {
			return int(n)
		}
		return float64(n)
	}
	if f, ok := asFloat(v); ok {
		return f
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = normalize(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[Display(iter.Key().Interface())] = normalize(iter.Value().Interface())
		}
		return out
	}
	return v
}
