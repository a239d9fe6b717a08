package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

var (
	ErrInaccessiblePath        = errors.New("inaccessible path")
	ErrCannotCreateDirectories = errors.New("cannot create directories")
	ErrFormat                  = errors.New("cannot format config")
	ErrWrite                   = errors.New("cannot write file")
)

// EnsurePath ensures the directories for a file path exist and the path
// does not already exist as a directory.
func EnsurePath(p string) error {
	info, err := os.Stat(p)
	switch {
	case err == nil:
		if info.IsDir() {
			return ErrInaccessiblePath
		}
		return nil
	case !errors.Is(err, os.ErrNotExist):
		return ErrInaccessiblePath
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return ErrCannotCreateDirectories
	}
	return nil
}

// writeFileWithParents is writeFileAtomic after creating the missing parent
// directories of path.
func writeFileWithParents(path string, data []byte) error {
	if err := EnsurePath(path); err != nil {
		return errors.Join(ErrWrite, err)
	}
	return writeFileAtomic(path, data)
}

// writeFileAtomic replaces path with data through a temp file in the same
// directory, so readers never observe a partial file. The directory must exist.
func writeFileAtomic(path string, data []byte) error {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return errors.Join(ErrWrite, ErrInaccessiblePath)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "temp-config-*"+filepath.Ext(path))
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())
	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("%w %s: %w", ErrWrite, path, err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpFile.Name(), path); err != nil {
		return fmt.Errorf("rename temp file to %s: %w", path, err)
	}
	return nil
}

// Save writes the raw values of c to path in the format picked by its
// extension, the same way OpenSource reads them back: .yaml/.yml, .json, .toml,
// otherwise the line format. Raw values are written so that loading the file
// runs every handler once on its original input. The bookkeeping config_files
// key is not written.
func (c *Config) Save(path string) error {
	data, err := c.Encode(filepath.Ext(path))
	if err != nil {
		return err
	}
	return writeFileWithParents(path, data)
}

// Encode renders the raw values of c in the format of the file extension ext,
// as Save would write them.
func (c *Config) Encode(ext string) ([]byte, error) {
	return formatValues(c.raw, ext)
}

func formatValues(v *Values, ext string) (data []byte, retErr error) {
	// Encoders panic on kinds they cannot represent.
	defer func() {
		if r := recover(); r != nil {
			retErr = fmt.Errorf("%w as %s: %v", ErrFormat, ext, r)
		}
	}()

	var buf bytes.Buffer
	switch ext {
	case ".yaml", ".yml":
		doc := &yaml.Node{Kind: yaml.MappingNode}
		for _, k := range v.keys {
			doc.Content = append(doc.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: k},
				yamlNode(v.m[k]))
		}
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("%w as %s: %w", ErrFormat, ext, err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("%w as %s: %w", ErrFormat, ext, err)
		}
	case ".json":
		buf.WriteString("{")
		for i, k := range v.keys {
			key, _ := json.Marshal(k)
			val, err := json.Marshal(plain(v.m[k]))
			if err != nil {
				return nil, fmt.Errorf("%w as %s: %w", ErrFormat, ext, err)
			}
			if i > 0 {
				buf.WriteString(",")
			}
			fmt.Fprintf(&buf, "\n  %s: %s", key, val)
		}
		buf.WriteString("\n}\n")
	case ".toml":
		if err := toml.NewEncoder(&buf).Encode(plain(v.Map())); err != nil {
			return nil, fmt.Errorf("%w as %s: %w", ErrFormat, ext, err)
		}
	default:
		for _, k := range v.keys {
			fmt.Fprintf(&buf, "%s %s\n", k, Literal(v.m[k]))
		}
	}
	return buf.Bytes(), nil
}

// yamlNode encodes v keeping symbols tagged as !sym and floats as floats.
func yamlNode(v any) *yaml.Node {
	v = normalize(v)
	switch x := v.(type) {
	case Symbol:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!sym", Value: string(x)}
	case float64:
		// Keep the fractional part, the default encoding writes 5.0 as 5.
		if !math.IsInf(x, 0) && !math.IsNaN(x) {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: formatFloat(x)}
		}
	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, el := range x {
			n.Content = append(n.Content, yamlNode(el))
		}
		return n
	case map[string]any:
		n := &yaml.Node{Kind: yaml.MappingNode}
		for _, k := range sortedKeys(x) {
			n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: k}, yamlNode(x[k]))
		}
		return n
	}
	n := &yaml.Node{}
	if err := n.Encode(v); err != nil {
		panic(err)
	}
	return n
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// plain strips symbols down to strings for encoders without a symbol form.
func plain(v any) any {
	switch x := normalize(v).(type) {
	case Symbol:
		return string(x)
	case []any:
		out := make([]any, len(x))
		for i, el := range x {
			out[i] = plain(el)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, el := range x {
			out[k] = plain(el)
		}
		return out
	default:
		return x
	}
}
