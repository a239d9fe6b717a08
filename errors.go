package config

import (
	"errors"
	"fmt"
)

// Kind classifies an *Error. All failures raised by this package belong to one
// family and differ only by Kind.
type Kind int

const (
	// ConfigFileMissing reports a config source that could not be located or opened.
	ConfigFileMissing Kind = iota + 1
	// ConfigSyntaxError reports a structurally invalid source, or a validator misused
	// by a schema author (bad range bounds, non-pattern argument, non-sequence set).
	ConfigSyntaxError
	// ConfigError reports a value that failed a validator's semantic check.
	ConfigError
	// UnknownParameter reports a name without a handler under the strict policy.
	UnknownParameter
	// ReportFileError reports a report sink that could not be written.
	ReportFileError
)

// Exported error categories. Every *Error matches exactly one of them with errors.Is.
var (
	ErrConfigFileMissing = errors.New("config file missing")
	ErrConfigSyntax      = errors.New("config syntax error")
	ErrConfig            = errors.New("config error")
	ErrUnknownParameter  = errors.New("unknown parameter")
	ErrReportFile        = errors.New("report file error")
)

func (k Kind) String() string {
	switch k {
	case ConfigFileMissing:
		return "ConfigFileMissing"
	case ConfigSyntaxError:
		return "ConfigSyntaxError"
	case ConfigError:
		return "ConfigError"
	case UnknownParameter:
		return "UnknownParameter"
	case ReportFileError:
		return "ReportFileError"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) sentinel() error {
	switch k {
	case ConfigFileMissing:
		return ErrConfigFileMissing
	case ConfigSyntaxError:
		return ErrConfigSyntax
	case ConfigError:
		return ErrConfig
	case UnknownParameter:
		return ErrUnknownParameter
	case ReportFileError:
		return ErrReportFile
	}
	return nil
}

// Error is the error type returned by validators, the dispatch engine,
// config sources and the report writer.
//
// Param is empty while the error travels inside a handler; the engine fills it
// with the name of the dispatched parameter before returning it to the caller.
type Error struct {
	Kind  Kind
	Param string
	Value any
	Msg   string
	// Err is the underlying cause, if any.
	Err error

	hasValue bool
}

// Error renders "[param]: value - message" when the parameter is known.
func (e *Error) Error() string {
	switch {
	case e.Param != "" && e.hasValue:
		return fmt.Sprintf("[%s]: %s - %s", e.Param, Display(e.Value), e.Msg)
	case e.Param != "":
		return fmt.Sprintf("[%s]: %s", e.Param, e.Msg)
	default:
		return e.Msg
	}
}

// Is reports whether target is the sentinel of e's Kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

func (e *Error) Unwrap() error { return e.Err }

// HasValue reports whether the error carries an offending value.
func (e *Error) HasValue() bool { return e.hasValue }

// valueError builds a ConfigError for v. Param is attached later by the engine.
func valueError(v any, msg string) *Error {
	return &Error{Kind: ConfigError, Value: v, Msg: msg, hasValue: true}
}

func valueErrorf(v any, format string, args ...any) *Error {
	return valueError(v, fmt.Sprintf(format, args...))
}

func syntaxErrorf(format string, args ...any) *Error {
	return &Error{Kind: ConfigSyntaxError, Msg: fmt.Sprintf(format, args...)}
}

func unknownParameter(name string, v any) *Error {
	return &Error{Kind: UnknownParameter, Param: name, Value: v, Msg: "Unknown parameter", hasValue: true}
}

// attribute returns err tagged with the dispatched parameter name. Errors that
// are not *Error become a ConfigError wrapping the cause.
func attribute(err error, param string, v any) *Error {
	var e *Error
	if errors.As(err, &e) {
		out := *e
		out.Param = param
		return &out
	}
	return &Error{Kind: ConfigError, Param: param, Value: v, Msg: err.Error(), Err: err, hasValue: true}
}

// NewError constructs an *Error of the given kind. Custom handlers use it to
// report failures that the built-in validators do not cover.
func NewError(kind Kind, v any, msg string) *Error {
	return &Error{Kind: kind, Value: v, Msg: msg, hasValue: v != nil}
}
