package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// parseJSON reads a top-level object token by token so that member order and
// duplicate members survive.
func parseJSON(name string, data []byte) (Source, error) {
	src := &fileSource{name: name}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return src, nil
	}
	if err != nil {
		return nil, syntaxAt(name, lineAt(data, dec.InputOffset()), err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, syntaxAt(name, 1, errors.New("top level must be an object"))
	}
	for dec.More() {
		tok, err := dec.Token()
		line := lineAt(data, dec.InputOffset())
		if err != nil {
			return nil, syntaxAt(name, line, err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, syntaxAt(name, line, errors.New("member name must be a string"))
		}
		var raw any
		if err := dec.Decode(&raw); err != nil {
			return nil, syntaxAt(name, lineAt(data, dec.InputOffset()), err)
		}
		src.list = append(src.list, Assignment{Name: key, Value: jsonValue(raw), Line: line})
	}
	if _, err := dec.Token(); err != nil {
		return nil, syntaxAt(name, lineAt(data, dec.InputOffset()), err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, syntaxAt(name, lineAt(data, dec.InputOffset()), errors.New("unexpected data after top-level object"))
	}
	return src, nil
}

func jsonValue(v any) any {
	switch x := v.(type) {
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return normalize(n)
		}
		f, _ := x.Float64()
		return f
	case []any:
		out := make([]any, len(x))
		for i, el := range x {
			out[i] = jsonValue(el)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, el := range x {
			out[k] = jsonValue(el)
		}
		return out
	}
	return v
}

// lineAt returns the 1-based line of byte offset off in data.
func lineAt(data []byte, off int64) int {
	if off > int64(len(data)) {
		off = int64(len(data))
	}
	return bytes.Count(data[:off], []byte{'\n'}) + 1
}
