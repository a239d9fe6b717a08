package config

import (
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"
	"testing"
)

func TestGenerateTemplate(t *testing.T) {
	levels := []any{Symbol("system"), Symbol("verbose")}
	s := NewSchema("tmpl")
	s.Param("log_dir", func(c *Call, v any) (any, error) {
		c.Describe("Directory for log files")
		c.Default("/tmp")
		c.Comment("Writable directory")
		c.Option("-l", "--log-dir PATH")
		return String(v)
	})
	s.Param("log_level", func(c *Call, v any) (any, error) {
		c.Default(Symbol("verbose"))
		c.Comment("One of:", "", " * :verbose")
		return MemberOf(v, levels)
	})
	s.Param("key_file", func(c *Call, v any) (any, error) {
		c.Describe("Key file")
		return String(v)
	})
	s.Param("rotation", func(c *Call, v any) (any, error) {
		c.Default(2.5)
		return Number(v)
	})

	got, err := GenerateTemplate(s, false)
	if err != nil {
		t.Fatalf("GenerateTemplate: %v", err)
	}
	want := `# Directory for log files
#
# Writable directory
#
#  Command line option: -l --log-dir PATH
#
#log_dir "/tmp"

# One of:
#
#  * :verbose
#
#log_level :verbose

# Key file
#
#key_file

#rotation 2.5

`
	if got != want {
		t.Fatalf("template mismatch:\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
}

func TestGenerateTemplateLocal(t *testing.T) {
	child := testSchema().Extend("child")
	child.Param("retries", func(c *Call, v any) (any, error) {
		c.Default(3)
		return TypeOf(v, TypeInteger)
	})

	local, err := GenerateTemplate(child, true)
	if err != nil {
		t.Fatalf("GenerateTemplate: %v", err)
	}
	if local != "#retries 3\n\n" {
		t.Fatalf("local template: got %q", local)
	}

	full, err := GenerateTemplate(child, false)
	if err != nil {
		t.Fatalf("GenerateTemplate: %v", err)
	}
	if !strings.HasPrefix(full, "# Directory for log files\n") || !strings.HasSuffix(full, "#retries 3\n\n") {
		t.Fatalf("full template must follow declaration order:\n%s", full)
	}
}

var assignmentLine = regexp.MustCompile(`(?m)^#([a-z_]+ )`)

func TestTemplateRoundTrip(t *testing.T) {
	s := testSchema()
	text, err := GenerateTemplate(s, false)
	if err != nil {
		t.Fatalf("GenerateTemplate: %v", err)
	}

	defaults, err := New(s)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// As generated, every line is a comment.
	src, err := ParseSource("template.conf", []byte(text))
	if err != nil {
		t.Fatalf("parse commented template: %v", err)
	}
	if n := len(src.(*fileSource).list); n != 0 {
		t.Fatalf("commented template must hold no assignments, got %d", n)
	}

	// Uncommenting every defaulted parameter reproduces the defaults.
	uncommented := assignmentLine.ReplaceAllString(text, "$1")
	src, err = ParseSource("template.conf", []byte(uncommented))
	if err != nil {
		t.Fatalf("parse uncommented template: %v\n%s", err, uncommented)
	}
	if len(src.(*fileSource).list) != defaults.Len() {
		t.Fatalf("want %d assignments, got %d", defaults.Len(), len(src.(*fileSource).list))
	}
	loaded, err := LoadSource(s, src)
	if err != nil {
		t.Fatalf("load uncommented template: %v", err)
	}
	if !reflect.DeepEqual(loaded.Values().Map(), defaults.Values().Map()) {
		t.Fatalf("round trip mismatch:\n got %v\nwant %v", loaded.Values().Map(), defaults.Values().Map())
	}
}

func TestTemplateRoundTripTypedDefaults(t *testing.T) {
	s := NewSchema("typed")
	s.Param("hosts", func(c *Call, v any) (any, error) {
		c.Default([]string{"a", "b"})
		return ArrayOf(v, TypeString)
	})
	s.Param("retries", func(c *Call, v any) (any, error) {
		c.Default(int64(5))
		return TypeOf(v, TypeInteger)
	})
	s.Param("limits", func(c *Call, v any) (any, error) {
		c.Default(map[string]int{"cpu": 2})
		return Hash(v)
	})

	if p, _ := s.Registry().Lookup("hosts"); !reflect.DeepEqual(p.Default, []any{"a", "b"}) {
		t.Fatalf("declared default must be normalized, got %#v", p.Default)
	}

	text, err := GenerateTemplate(s, false)
	if err != nil {
		t.Fatalf("GenerateTemplate: %v", err)
	}
	defaults, err := New(s)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if defaults.Len() != 3 {
		t.Fatalf("every typed default must validate, got %v", defaults.Keys())
	}
	loaded, err := LoadSource(s, mustParse(t, "typed.conf", assignmentLine.ReplaceAllString(text, "$1")))
	if err != nil {
		t.Fatalf("load uncommented template: %v", err)
	}
	if !reflect.DeepEqual(loaded.Values().Map(), defaults.Values().Map()) {
		t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", loaded.Values().Map(), defaults.Values().Map())
	}
}

func mustParse(t *testing.T, name, text string) Source {
	t.Helper()
	src, err := ParseSource(name, []byte(text))
	if err != nil {
		t.Fatalf("parse %s: %v\n%s", name, err, text)
	}
	return src
}

func TestWriteTemplateFile(t *testing.T) {
	td := t.TempDir()
	p := filepath.Join(td, "nested", "dir", "app.conf")
	if err := WriteTemplateFile(p, testSchema(), false); err != nil {
		t.Fatalf("WriteTemplateFile: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	want, _ := GenerateTemplate(testSchema(), false)
	if string(b) != want {
		t.Fatalf("file content differs from GenerateTemplate")
	}

	if err := WriteTemplateFile(td, testSchema(), false); err == nil {
		t.Fatalf("writing over a directory must fail")
	}
}
