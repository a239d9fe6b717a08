package config

import (
	"fmt"
	"strings"

	"go.starlark.net/starlark"
)

// starlarkSymbol carries a Symbol through Starlark evaluation.
type starlarkSymbol string

func (s starlarkSymbol) String() string        { return ":" + string(s) }
func (s starlarkSymbol) Type() string          { return "symbol" }
func (s starlarkSymbol) Freeze()               {}
func (s starlarkSymbol) Truth() starlark.Bool  { return starlark.True }
func (s starlarkSymbol) Hash() (uint32, error) { return starlark.String(s).Hash() }

func builtinSym(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &name); err != nil {
		return nil, err
	}
	return starlarkSymbol(name), nil
}

// literalEnv returns the names predeclared for config values: the lowercase
// literals true, false and nil, and sym() behind the :name syntax.
func literalEnv() starlark.StringDict {
	return starlark.StringDict{
		"true":  starlark.True,
		"false": starlark.False,
		"nil":   starlark.None,
		"sym":   starlark.NewBuiltin("sym", builtinSym),
	}
}

// fromStarlark converts an evaluated Starlark value to a raw config value.
func fromStarlark(v starlark.Value) (any, error) {
	switch x := v.(type) {
	case starlark.NoneType:
		return nil, nil
	case starlark.Bool:
		return bool(x), nil
	case starlark.Int:
		n, ok := x.Int64()
		if !ok {
			return nil, fmt.Errorf("integer %s is too large", x)
		}
		return normalize(n), nil
	case starlark.Float:
		return float64(x), nil
	case starlark.String:
		return string(x), nil
	case starlarkSymbol:
		return Symbol(x), nil
	case *starlark.Dict:
		out := make(map[string]any, x.Len())
		for _, item := range x.Items() {
			k, err := fromStarlark(item[0])
			if err != nil {
				return nil, err
			}
			val, err := fromStarlark(item[1])
			if err != nil {
				return nil, err
			}
			out[Display(k)] = val
		}
		return out, nil
	case starlark.Indexable:
		out := make([]any, x.Len())
		for i := range out {
			el, err := fromStarlark(x.Index(i))
			if err != nil {
				return nil, err
			}
			out[i] = el
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported value of type %s", v.Type())
}

// rewriteSymbols turns :name tokens outside string literals into sym("name").
// A colon only starts a symbol at the beginning of the expression or after one
// of ( [ { , = : so that dict keys and slices are left alone.
func rewriteSymbols(expr string) string {
	if !strings.Contains(expr, ":") {
		return expr
	}
	var b strings.Builder
	var quote byte
	prev := byte(0)
	for i := 0; i < len(expr); i++ {
		c := expr[i]
		if quote != 0 {
			b.WriteByte(c)
			switch {
			case c == '\\' && i+1 < len(expr):
				i++
				b.WriteByte(expr[i])
			case c == quote:
				quote = 0
				prev = c
			}
			continue
		}
		switch {
		case c == '"' || c == '\'':
			quote = c
		case c == ':' && (prev == 0 || strings.IndexByte("([{,=:", prev) >= 0) && i+1 < len(expr) && isIdentStart(expr[i+1]):
			j := i + 1
			for j < len(expr) && isIdentChar(expr[j]) {
				j++
			}
			b.WriteString(`sym("`)
			b.WriteString(expr[i+1 : j])
			b.WriteString(`")`)
			prev = ')'
			i = j - 1
			continue
		}
		b.WriteByte(c)
		if c != ' ' && c != '\t' && c != '\n' && c != '\r' {
			prev = c
		}
	}
	return b.String()
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
