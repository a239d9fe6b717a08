package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ygrebnov/schemaconf/streams"
)

func TestCheckConfigReportFile(t *testing.T) {
	td := t.TempDir()
	good := writeFile(t, td, "good.conf", "log_rotation 7\n")
	badValue := writeFile(t, td, "bad.conf", "log_rotation 25\n")
	badSyntax := writeFile(t, td, "syntax.conf", "log_rotation [1,\n")
	unknown := writeFile(t, td, "unknown.conf", "colour :red\n")
	missing := filepath.Join(td, "missing.conf")

	tests := []struct {
		name   string
		path   string
		opts   []Option
		wantOK bool
		want   string
	}{
		{name: "no errors", path: good, wantOK: true, want: "No errors found in: " + good + "\n"},
		{name: "missing file", path: missing, want: "No such config file: " + missing + "\n"},
		{name: "config error", path: badValue, want: "[log_rotation]: 25 - value is not within required range: 0..20\n"},
		{name: "syntax error", path: badSyntax, want: "syntax error in " + badSyntax + ":1: unclosed bracket\n"},
		{name: "unknown parameter", path: unknown, want: "[colour]: red - Unknown parameter\n"},
		{name: "unknown parameter relaxed", path: unknown, opts: []Option{WithPolicy(Relaxed)}, wantOK: true, want: "No errors found in: " + unknown + "\n"},
	}
	reports := filepath.Join(td, "reports")
	if err := os.Mkdir(reports, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := filepath.Join(reports, tt.name+".txt")
			opts := append([]Option{WithReportFile(report)}, tt.opts...)
			ok, err := CheckConfig(testSchema(), tt.path, opts...)
			if err != nil {
				t.Fatalf("CheckConfig: %v", err)
			}
			if ok != tt.wantOK {
				t.Fatalf("ok: got %v, want %v", ok, tt.wantOK)
			}
			b, err := os.ReadFile(report)
			if err != nil {
				t.Fatalf("read report: %v", err)
			}
			if string(b) != tt.want {
				t.Fatalf("report: got %q, want %q", b, tt.want)
			}
		})
	}
}

func TestCheckConfigStreams(t *testing.T) {
	td := t.TempDir()
	good := writeFile(t, td, "good.conf", "log_rotation 7\n")

	var out, errOut bytes.Buffer
	ok, err := CheckConfig(testSchema(), good, WithStreams(streams.Writers(&out, &errOut)))
	if err != nil || !ok {
		t.Fatalf("CheckConfig: ok %v, err %v", ok, err)
	}
	// Only the report line, no load notice.
	if got, want := out.String(), "No errors found in: "+good+"\n"; got != want {
		t.Fatalf("report: got %q, want %q", got, want)
	}
	if errOut.Len() != 0 {
		t.Fatalf("unexpected ErrOut: %q", errOut.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestCheckConfigReportFailure(t *testing.T) {
	td := t.TempDir()
	good := writeFile(t, td, "good.conf", "log_rotation 7\n")
	blocker := writeFile(t, td, "blocker", "")

	tests := []struct {
		name string
		opt  Option
	}{
		{name: "report path under a regular file", opt: WithReportFile(filepath.Join(blocker, "report.txt"))},
		{name: "report path is a directory", opt: WithReportFile(td)},
		{name: "report directory does not exist", opt: WithReportFile(filepath.Join(td, "no_such_directory", "ok.txt"))},
		{name: "failing stream", opt: WithStreams(streams.Writers(failingWriter{}, nil))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := CheckConfig(testSchema(), good, tt.opt)
			if !ok {
				t.Fatalf("the config itself is valid")
			}
			if !errors.Is(err, ErrReportFile) {
				t.Fatalf("got %v, want ErrReportFile", err)
			}
			var e *Error
			if !errors.As(err, &e) || e.Kind != ReportFileError {
				t.Fatalf("got %T %v, want a ReportFileError", err, err)
			}
		})
	}
	if _, err := os.Stat(filepath.Join(td, "no_such_directory")); !os.IsNotExist(err) {
		t.Fatalf("the report writer must not create directories: %v", err)
	}
}

func TestCheckConfigHandlerPanic(t *testing.T) {
	td := t.TempDir()
	conf := writeFile(t, td, "app.conf", "labels {\"a\": 1}\n")

	s := NewSchema("panicky")
	s.Param("labels", func(c *Call, v any) (any, error) {
		var m map[string]any
		if !c.Declaring() {
			m["seen"] = true // nil map
		}
		return v, nil
	})

	var out bytes.Buffer
	ok, err := CheckConfig(s, conf, WithStreams(streams.Writers(&out, nil)))
	if err != nil {
		t.Fatalf("CheckConfig: %v", err)
	}
	if ok {
		t.Fatalf("a panicking handler must fail the check")
	}
	want := "handler panicked while loading " + conf + ": assignment to entry in nil map\n"
	if out.String() != want {
		t.Fatalf("report: got %q, want %q", out.String(), want)
	}
}
