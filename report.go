package config

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// WithReportFile sends the CheckConfig report to the file at path instead of
// the streams. The file is replaced; its directory must already exist. Panics
// if path is empty.
func WithReportFile(path string) Option {
	return func(o *options) {
		if path == "" {
			panic("config: WithReportFile: path cannot be empty")
		}
		o.reportPath = path
	}
}

// CheckConfig loads path against s and reports the outcome as a single line:
// "No errors found in: <path>", "No such config file: <path>", or the text of
// the error that stopped the load. It returns whether the load succeeded.
//
// Configuration errors never surface as the returned error; only a failure to
// write the report does, as a ReportFileError. A handler that panics fails the
// check with a ConfigError line.
//
// The report goes to WithReportFile if set, else to the Out stream of
// WithStreams, else to standard output.
func CheckConfig(s *Schema, path string, opts ...Option) (bool, error) {
	o := newOptions(opts)

	// The report is the only output; no load notices.
	quiet := append(append([]Option(nil), opts...), func(o *options) { o.streams = nil })
	err := checkLoad(s, path, quiet)
	ok := err == nil
	var line string
	switch {
	case ok:
		line = "No errors found in: " + path
	case errors.Is(err, ErrConfigFileMissing):
		line = "No such config file: " + path
	default:
		line = err.Error()
	}
	o.log.Debug().Str("source", path).Bool("ok", ok).Msg("config checked")

	if werr := writeReport(o, line+"\n"); werr != nil {
		return ok, werr
	}
	return ok, nil
}

func checkLoad(s *Schema, path string, opts []Option) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &Error{Kind: ConfigError, Msg: fmt.Sprintf("handler panicked while loading %s: %v", path, r)}
		}
	}()
	_, err = Load(s, path, opts...)
	return err
}

func writeReport(o options, text string) error {
	if o.reportPath != "" {
		if err := writeFileAtomic(o.reportPath, []byte(text)); err != nil {
			return &Error{Kind: ReportFileError, Msg: "cannot write report to " + o.reportPath, Err: err}
		}
		return nil
	}
	var w io.Writer = os.Stdout
	if o.streams != nil && o.streams.Out() != nil {
		w = o.streams.Out()
	}
	if _, err := io.WriteString(w, text); err != nil {
		return &Error{Kind: ReportFileError, Msg: fmt.Sprintf("cannot write report: %v", err), Err: err}
	}
	return nil
}
