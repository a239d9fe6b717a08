package config

import (
	"errors"

	"github.com/BurntSushi/toml"
)

// parseTOML reads top-level keys in document order. Tables become hashes.
func parseTOML(name string, data []byte) (Source, error) {
	var m map[string]any
	md, err := toml.Decode(string(data), &m)
	if err != nil {
		line := 0
		var pe toml.ParseError
		if errors.As(err, &pe) {
			line = pe.Position.Line
		}
		return nil, syntaxAt(name, line, err)
	}
	src := &fileSource{name: name}
	for _, key := range md.Keys() {
		if len(key) != 1 {
			continue
		}
		v, ok := m[key[0]]
		if !ok {
			continue
		}
		src.list = append(src.list, Assignment{Name: key[0], Value: normalize(v)})
	}
	return src, nil
}
