package config

// Resolve dispatches one assignment to the handler of name and stores the value
// it returns. Without a handler, the Strict policy fails with UnknownParameter
// and the Relaxed policy stores raw as is. The reserved ConfigFilesKey is never
// stored: it is unknown under Strict and a ConfigError under Relaxed.
//
// Errors raised inside the handler are returned tagged with name, whatever
// parameter the failing validator was called for.
func (c *Config) Resolve(name string, raw any) (any, error) {
	if name == ConfigFilesKey {
		if c.opts.policy == Strict {
			return nil, unknownParameter(name, raw)
		}
		return nil, &Error{Kind: ConfigError, Param: name, Value: raw, Msg: "parameter name is reserved", hasValue: true}
	}

	spec, ok := c.reg.Lookup(name)
	if !ok {
		if c.opts.policy == Strict {
			return nil, unknownParameter(name, raw)
		}
		c.opts.log.Debug().Str("param", name).Msg("storing unknown parameter")
		c.values.Set(name, raw)
		c.raw.Set(name, raw)
		return raw, nil
	}

	v, err := spec.Handler(&Call{param: name}, raw)
	if err != nil {
		e := attribute(err, name, raw)
		c.opts.log.Debug().Str("param", name).Err(e).Msg("parameter rejected")
		return nil, e
	}
	c.values.Set(name, v)
	c.raw.Set(name, raw)
	c.opts.log.Debug().Str("param", name).Msg("parameter resolved")
	return v, nil
}
