package config

import (
	"errors"
	"os"
	"reflect"
	"testing"
)

// envPrefix is unlikely to collide with the test runner's environment.
const envPrefix = "SCHEMACONF_TEST"

func TestEnvSource_AllVariablesWithPrefix(t *testing.T) {
	t.Setenv(envPrefix+"_LOG_ROTATION", "7")
	t.Setenv(envPrefix+"_LOG_LEVEL", ":debug")
	t.Setenv(envPrefix+"_LOG_DIR", "/var/log")
	t.Setenv(envPrefix+"_SIEVE", "[1, 2]")
	t.Setenv(envPrefix+"_FLAG", "off")
	t.Setenv(envPrefix+"_", "ignored")         // no parameter name
	t.Setenv(envPrefix+"_BAD-NAME", "ignored") // not an identifier
	t.Setenv("SCHEMACONF_OTHER_LOG_DIR", "ignored")

	src := EnvSource(envPrefix)
	if src.Name() != "env:"+envPrefix {
		t.Fatalf("Name: got %q", src.Name())
	}
	var got []Assignment
	if err := src.Walk(func(a Assignment) error { got = append(got, a); return nil }); err != nil {
		t.Fatalf("Walk: %v", err)
	}
	want := []Assignment{
		{Name: "flag", Value: "off"},
		{Name: "log_dir", Value: "/var/log"},
		{Name: "log_level", Value: Symbol("debug")},
		{Name: "log_rotation", Value: 7},
		{Name: "sieve", Value: []any{1, 2}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("assignments:\n got %#v\nwant %#v", got, want)
	}
}

func TestEnvSource_Names(t *testing.T) {
	t.Setenv(envPrefix+"_LOG_ROTATION", "3")
	_ = os.Unsetenv(envPrefix + "_EMAIL")

	var got []Assignment
	err := EnvSource(envPrefix, "email", "log_rotation").Walk(func(a Assignment) error {
		got = append(got, a)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if !reflect.DeepEqual(got, []Assignment{{Name: "log_rotation", Value: 3}}) {
		t.Fatalf("got %#v", got)
	}
}

func TestEnvSource_NoPrefix_FallbackNames(t *testing.T) {
	t.Setenv("SCHEMACONF_LEVEL", "2.5")

	var got []Assignment
	_ = EnvSource("", "schemaconf_level").Walk(func(a Assignment) error {
		got = append(got, a)
		return nil
	})
	if !reflect.DeepEqual(got, []Assignment{{Name: "schemaconf_level", Value: 2.5}}) {
		t.Fatalf("got %#v", got)
	}

	// Without names an empty prefix would match the whole environment.
	n := 0
	_ = EnvSource("").Walk(func(Assignment) error { n++; return nil })
	if n != 0 {
		t.Fatalf("empty prefix without names must yield nothing, got %d", n)
	}
}

func TestEnvValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{in: "42", want: 42},
		{in: "-3", want: -3},
		{in: "2.5", want: 2.5},
		{in: "true", want: true},
		{in: "nil", want: nil},
		{in: ":verbose", want: Symbol("verbose")},
		{in: `"quoted"`, want: "quoted"},
		{in: `{"a": 1}`, want: map[string]any{"a": 1}},
		{in: "/var/log", want: "/var/log"},
		{in: "debug", want: "debug"},
		{in: "1h30m", want: "1h30m"},
		{in: "sym", want: "sym"},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		if got := envValue(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("envValue(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}

func TestBuildEnvName(t *testing.T) {
	type tc struct {
		prefix   string
		segments []string
		want     string
	}
	cases := []tc{
		{"", nil, ""},
		{"", []string{"A"}, "A"},
		{"P", nil, "P"},
		{"P", []string{"A", "B"}, "P_A_B"},
	}
	for _, c := range cases {
		got := buildEnvName(c.prefix, c.segments)
		if got != c.want {
			t.Fatalf("buildEnvName(%q,%v)=%q, want %q", c.prefix, c.segments, got, c.want)
		}
	}
	if got := envName("APP", "log_rotation"); got != "APP_LOG_ROTATION" {
		t.Fatalf("envName: got %q", got)
	}
}

func TestLoadWithEnvPrefix(t *testing.T) {
	td := t.TempDir()
	p := writeFile(t, td, "app.conf", "log_rotation 7\nlog_dir \"/srv\"\n")

	t.Setenv(envPrefix+"_LOG_ROTATION", "9")
	t.Setenv(envPrefix+"_FLAG", "no")
	t.Setenv(envPrefix+"_NOT_A_PARAM", "x") // only registered parameters are read

	c, err := Load(testSchema(), p, WithEnvPrefix(envPrefix))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if v, _ := c.Get("log_rotation"); v != 9 {
		t.Fatalf("log_rotation: got %v, want the env override 9", v)
	}
	if v, _ := c.Get("log_dir"); v != "/srv" {
		t.Fatalf("log_dir: got %v", v)
	}
	if v, _ := c.Get("flag"); v != false {
		t.Fatalf("flag: got %v", v)
	}
	if got := c.Sources(); !reflect.DeepEqual(got, []string{p, "env:" + envPrefix}) {
		t.Fatalf("sources: got %v", got)
	}

	// Env values go through the handlers like any other assignment.
	t.Setenv(envPrefix+"_LOG_ROTATION", "25")
	_, err = Load(testSchema(), "", WithEnvPrefix(envPrefix))
	var e *Error
	if !errors.As(err, &e) || e.Kind != ConfigError || e.Param != "log_rotation" {
		t.Fatalf("expected ConfigError for log_rotation, got %v", err)
	}
}

func TestLoadWithEnvPrefix_NoVariables(t *testing.T) {
	c, err := LoadSource(testSchema(), Pairs("log_rotation", 4), WithEnvPrefix("SCHEMACONF_UNSET"))
	if err != nil {
		t.Fatalf("LoadSource: %v", err)
	}
	if got := c.Sources(); !reflect.DeepEqual(got, []string{"inline"}) {
		t.Fatalf("an environment without overrides is not a source, got %v", got)
	}
}
