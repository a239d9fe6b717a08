package config

// Call is the activation record of one handler invocation. It carries the name
// of the parameter being evaluated and, while the registry harvests metadata,
// collects the handler's declarations.
//
// A Call is created per invocation and must not be retained by handlers.
type Call struct {
	param string
	spec  *ParameterSpec
}

// Param returns the name of the parameter being evaluated.
func (c *Call) Param() string { return c.param }

// Declaring reports whether the handler runs to declare metadata rather than to
// evaluate a value. Results returned while declaring are discarded.
func (c *Call) Declaring() bool { return c.spec != nil }

// Default declares the raw default value. Only the first declaration counts.
// The value is stored in the canonical raw kinds sources produce, so []string
// becomes []any and int64 becomes int.
func (c *Call) Default(v any) {
	if c.spec == nil || c.spec.HasDefault {
		return
	}
	c.spec.Default = normalize(v)
	c.spec.HasDefault = true
}

// Comment appends lines to the parameter's template comment.
func (c *Call) Comment(lines ...string) {
	if c.spec == nil {
		return
	}
	c.spec.Comment = append(c.spec.Comment, lines...)
}

// Describe sets the one-line description of the parameter.
func (c *Call) Describe(text string) {
	if c.spec == nil || c.spec.Description != "" {
		return
	}
	c.spec.Description = text
}

// Option records command-line option hints, e.g. "-l", "--log-dir [PATH]".
func (c *Call) Option(hints ...string) {
	if c.spec == nil {
		return
	}
	c.spec.Options = append(c.spec.Options, hints...)
}
