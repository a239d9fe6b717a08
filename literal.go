package config

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Symbol is a named enumeration literal, written :name in config sources.
type Symbol string

func (s Symbol) String() string { return string(s) }

// Literal renders v in the canonical literal form understood by the line
// source format: quoted strings, :symbols, bare numbers and booleans, nil,
// [a, b] arrays and {"k": v} hashes with sorted keys.
func Literal(v any) string {
	var b strings.Builder
	writeLiteral(&b, v)
	return b.String()
}

// Display renders v for messages. Strings and symbols are written bare.
func Display(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case Symbol:
		return string(x)
	}
	return Literal(v)
}

func writeLiteral(b *strings.Builder, v any) {
	switch x := v.(type) {
	case nil:
		b.WriteString("nil")
		return
	case Symbol:
		b.WriteByte(':')
		b.WriteString(string(x))
		return
	case string:
		b.WriteString(strconv.Quote(x))
		return
	case bool:
		b.WriteString(strconv.FormatBool(x))
		return
	case fmt.Stringer:
		if _, ok := asInt(v); !ok {
			if _, ok := asFloat(v); !ok && !isCollection(v) {
				b.WriteString(strconv.Quote(x.String()))
				return
			}
		}
	}

	if n, ok := asInt(v); ok {
		b.WriteString(strconv.FormatInt(n, 10))
		return
	}
	if f, ok := asFloat(v); ok {
		b.WriteString(formatFloat(f))
		return
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		b.WriteByte('[')
		for i := 0; i < rv.Len(); i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			writeLiteral(b, rv.Index(i).Interface())
		}
		b.WriteByte(']')
	case reflect.Map:
		keys := rv.MapKeys()
		rendered := make([]string, len(keys))
		for i, k := range keys {
			rendered[i] = Literal(k.Interface())
		}
		idx := make([]int, len(keys))
		for i := range idx {
			idx[i] = i
		}
		sort.Slice(idx, func(i, j int) bool { return rendered[idx[i]] < rendered[idx[j]] })
		b.WriteByte('{')
		for n, i := range idx {
			if n > 0 {
				b.WriteString(", ")
			}
			b.WriteString(rendered[i])
			b.WriteString(": ")
			writeLiteral(b, rv.MapIndex(keys[i]).Interface())
		}
		b.WriteByte('}')
	case reflect.Pointer:
		if rv.IsNil() {
			b.WriteString("nil")
			return
		}
		writeLiteral(b, rv.Elem().Interface())
	default:
		b.WriteString(strconv.Quote(fmt.Sprint(v)))
	}
}

// formatFloat keeps a fractional part so that the literal reads back as a float.
func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return `float("inf")`
	case math.IsInf(f, -1):
		return `float("-inf")`
	case math.IsNaN(f):
		return `float("nan")`
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEn") {
		s += ".0"
	}
	return s
}

func asInt(v any) (int64, bool) {
	switch x := v.(type) {
	case bool, nil:
		return 0, false
	case int:
		return int64(x), true
	case int64:
		return x, true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	}
	return 0, false
}

func asFloat(v any) (float64, bool) {
	if f, ok := v.(float64); ok {
		return f, true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// asNumber converts any integer or float kind to float64.
func asNumber(v any) (float64, bool) {
	if n, ok := asInt(v); ok {
		return float64(n), true
	}
	return asFloat(v)
}

func isCollection(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return true
	}
	return false
}
