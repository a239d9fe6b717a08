package config

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// symbolTags mark YAML scalars decoded as Symbol, e.g. "log_level: !sym debug".
var symbolTags = map[string]bool{"!sym": true, "!symbol": true}

// parseYAML reads a top-level mapping, keeping key order and duplicate keys.
func parseYAML(name string, data []byte) (Source, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, syntaxAt(name, 0, err)
	}
	src := &fileSource{name: name}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return src, nil
	}
	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return src, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, syntaxAt(name, root.Line, errors.New("top level must be a mapping"))
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, syntaxAt(name, key.Line, errors.New("parameter names must be scalars"))
		}
		v, err := yamlValue(val)
		if err != nil {
			return nil, syntaxAt(name, val.Line, err)
		}
		src.list = append(src.list, Assignment{Name: key.Value, Value: v, Line: key.Line})
	}
	return src, nil
}

func yamlValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, fmt.Errorf("unresolved alias %q", n.Value)
		}
		return yamlValue(n.Alias)
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, el := range n.Content {
			v, err := yamlValue(el)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.MappingNode:
		out := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, err := yamlValue(n.Content[i])
			if err != nil {
				return nil, err
			}
			v, err := yamlValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			out[Display(k)] = v
		}
		return out, nil
	case yaml.ScalarNode:
		if symbolTags[n.Tag] {
			return Symbol(n.Value), nil
		}
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return normalize(v), nil
	}
	return nil, fmt.Errorf("unsupported YAML node at line %d", n.Line)
}
