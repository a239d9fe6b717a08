package config

import "github.com/rs/zerolog"

// harvest runs the handler of p with a nil value to collect its
// declarations. Whatever the handler returns, including a panic, is discarded.
func harvest(p *ParameterSpec) {
	defer func() { _ = recover() }()
	_, _ = p.Handler(&Call{param: p.Name, spec: p}, nil)
}

// applyDefaults validates each declared default through its handler and stores
// the result in dst and the declared default in raw, if raw is not nil.
// Invalid defaults are skipped unless strict is set.
func applyDefaults(dst, raw *Values, reg *Registry, strict bool, log zerolog.Logger) error {
	for _, p := range reg.params {
		if !p.HasDefault {
			continue
		}
		v, err := p.Handler(&Call{param: p.Name}, p.Default)
		if err != nil {
			e := attribute(err, p.Name, p.Default)
			if strict {
				return e
			}
			log.Debug().Str("param", p.Name).Err(e).Msg("ignoring invalid default")
			continue
		}
		dst.Set(p.Name, v)
		if raw != nil {
			raw.Set(p.Name, p.Default)
		}
	}
	return nil
}

// Defaults returns the validated defaults of every parameter of reg that
// declares one, in declaration order. Invalid defaults are skipped.
func Defaults(reg *Registry) *Values {
	v := NewValues()
	_ = applyDefaults(v, nil, reg, false, zerolog.Nop())
	return v
}
