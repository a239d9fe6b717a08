package config

import (
	"os"
	"reflect"
	"regexp"
	"strings"
)

// Type names a value category for TypeOf and ArrayOf.
type Type int

// Value categories accepted by TypeOf and ArrayOf.
const (
	TypeInteger Type = iota + 1
	TypeFloat
	TypeNumeric
	TypeString
	TypeSymbol
	TypeBoolean
	TypeArray
	TypeHash
)

var typeNames = map[Type]string{
	TypeInteger: "Integer",
	TypeFloat:   "Float",
	TypeNumeric: "Numeric",
	TypeString:  "String",
	TypeSymbol:  "Symbol",
	TypeBoolean: "Boolean",
	TypeArray:   "Array",
	TypeHash:    "Hash",
}

func (t Type) String() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return "Type(" + Display(int(t)) + ")"
}

func (t Type) valid() bool {
	_, ok := typeNames[t]
	return ok
}

// Matches reports whether v belongs to the category t.
func (t Type) Matches(v any) bool {
	switch t {
	case TypeInteger:
		_, ok := asInt(v)
		return ok
	case TypeFloat:
		_, ok := asFloat(v)
		return ok
	case TypeNumeric:
		_, ok := asNumber(v)
		return ok
	case TypeString:
		_, ok := v.(string)
		return ok
	case TypeSymbol:
		_, ok := v.(Symbol)
		return ok
	case TypeBoolean:
		_, ok := v.(bool)
		return ok
	case TypeArray:
		return kindOf(v) == reflect.Slice || kindOf(v) == reflect.Array
	case TypeHash:
		return kindOf(v) == reflect.Map
	}
	return false
}

func kindOf(v any) reflect.Kind {
	if v == nil {
		return reflect.Invalid
	}
	return reflect.TypeOf(v).Kind()
}

// TypeOf checks that v belongs to the category t.
func TypeOf(v any, t Type) (any, error) {
	if !t.valid() {
		return nil, syntaxErrorf("%s is not a type", t)
	}
	if !t.Matches(v) {
		return nil, valueErrorf(v, "value is not of required type: %s", t)
	}
	return v, nil
}

// Number checks that v is an integer or a float.
func Number(v any) (any, error) {
	if _, ok := asNumber(v); !ok {
		return nil, valueErrorf(v, "value is not a number: %s", Display(v))
	}
	return v, nil
}

// PositiveNumber checks that v is a number greater than or equal to zero.
func PositiveNumber(v any) (any, error) {
	if n, ok := asNumber(v); !ok || n < 0 {
		return nil, valueErrorf(v, "value is not a positive number: %s", Display(v))
	}
	return v, nil
}

// InRange checks that v is a number within [lower, upper]. Bounds that do not
// form a range are a schema error and are reported whatever v is.
func InRange(v, lower, upper any) (any, error) {
	lo, okLo := asNumber(lower)
	hi, okHi := asNumber(upper)
	if !okLo || !okHi || lo > hi {
		return nil, syntaxErrorf("%s..%s is not a range", Display(lower), Display(upper))
	}
	if n, ok := asNumber(v); !ok || n < lo || n > hi {
		return nil, valueErrorf(v, "value is not within required range: %s..%s", Display(lower), Display(upper))
	}
	return v, nil
}

// Boolean accepts only the literals true and false.
func Boolean(v any) (any, error) {
	if _, ok := v.(bool); !ok {
		return nil, valueError(v, "Value is not a Boolean")
	}
	return v, nil
}

// Flag converts true, "true", "yes", "on" and 1 to true and false, "false",
// "no", "off" and 0 to false. Strings are compared case-insensitively.
func Flag(v any) (any, error) {
	if b, ok := v.(bool); ok {
		return b, nil
	}
	if s, ok := v.(string); ok {
		switch strings.ToLower(s) {
		case "true", "yes", "on":
			return true, nil
		case "false", "no", "off":
			return false, nil
		}
	} else if n, ok := asInt(v); ok {
		switch n {
		case 1:
			return true, nil
		case 0:
			return false, nil
		}
	}
	return nil, valueError(v, "Cannot convert to Boolean")
}

// Array checks that v is an ordered sequence.
func Array(v any) (any, error) {
	if !TypeArray.Matches(v) {
		return nil, valueError(v, "value is not an Array")
	}
	return v, nil
}

// ArrayOf checks that v is a sequence whose every element belongs to t.
// The first offending element is reported.
func ArrayOf(v any, t Type) (any, error) {
	if !t.valid() {
		return nil, syntaxErrorf("Provided a value that is not a type: %s", t)
	}
	if !TypeArray.Matches(v) {
		return nil, valueError(v, "value is not an Array")
	}
	rv := reflect.ValueOf(v)
	for i := 0; i < rv.Len(); i++ {
		el := rv.Index(i).Interface()
		if !t.Matches(el) {
			return nil, valueErrorf(el, "element of array is not of type: %s", t)
		}
	}
	return v, nil
}

// Hash checks that v is a key/value mapping.
func Hash(v any) (any, error) {
	if !TypeHash.Matches(v) {
		return nil, valueError(v, "value is not a Hash")
	}
	return v, nil
}

// String checks that v is text.
func String(v any) (any, error) {
	if _, ok := v.(string); !ok {
		return nil, valueError(v, "is not a String")
	}
	return v, nil
}

// MatchingString checks that v is text matching pattern in full. pattern must
// be a *regexp.Regexp.
func MatchingString(v any, pattern any) (any, error) {
	re, ok := pattern.(*regexp.Regexp)
	if !ok || re == nil {
		return nil, syntaxErrorf("Attempt to pattern match without a Regexp")
	}
	s, err := String(v)
	if err != nil {
		return nil, err
	}
	full, err := regexp.Compile(`^(?:` + re.String() + `)$`)
	if err != nil {
		return nil, syntaxErrorf("cannot anchor pattern %s: %v", re.String(), err)
	}
	if !full.MatchString(s.(string)) {
		return nil, valueErrorf(v, "does not match required pattern: %s", re.String())
	}
	return v, nil
}

// MemberOf checks that v is one of the elements of set, which must be a slice
// or an array.
func MemberOf(v any, set any) (any, error) {
	if k := kindOf(set); k != reflect.Slice && k != reflect.Array {
		return nil, syntaxErrorf("Sets to test membership must be arrays")
	}
	rv := reflect.ValueOf(set)
	members := make([]string, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		el := rv.Index(i).Interface()
		if sameValue(v, el) {
			return v, nil
		}
		members[i] = Display(el)
	}
	return nil, valueErrorf(v, "is not a member of: %s", strings.Join(members, ", "))
}

func sameValue(a, b any) bool {
	if x, ok := asInt(a); ok {
		if y, ok := asInt(b); ok {
			return x == y
		}
	}
	if x, ok := asFloat(a); ok {
		if y, ok := asNumber(b); ok {
			return x == y
		}
	}
	return reflect.DeepEqual(a, b)
}

// WritableDir checks that v names an existing, writable directory.
func WritableDir(v any) (any, error) {
	p, ok := v.(string)
	if !ok || !isDir(p) || !access(p, accessWrite) {
		return nil, valueError(v, "directory is not writable or does not exist")
	}
	return v, nil
}

// ReadableDir checks that v names an existing, readable directory.
func ReadableDir(v any) (any, error) {
	p, ok := v.(string)
	if !ok || !isDir(p) || !access(p, accessRead) {
		return nil, valueError(v, "directory is not readable or does not exist")
	}
	return v, nil
}

// ReadableFile checks that v names an existing, readable file.
func ReadableFile(v any) (any, error) {
	p, ok := v.(string)
	if !ok || !exists(p) || !access(p, accessRead) {
		return nil, valueError(v, "file does not exist")
	}
	return v, nil
}

// Executable checks that v names a readable, executable regular file.
func Executable(v any) (any, error) {
	if _, err := ReadableFile(v); err != nil {
		return nil, err
	}
	p := v.(string)
	if isDir(p) || !access(p, accessExec) {
		return nil, valueError(v, "file is not executable")
	}
	return v, nil
}

func exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
