// Package config is a declarative configuration engine. An application
// describes its parameters as a Schema of handlers; a handler validates or
// transforms one raw value and declares the parameter's default and
// documentation as it runs.
//
// It supports:
//  1. Registering handlers under "<prefix>_<name>" (prefix "configure" unless
//     overridden with WithPrefix), with inheritance through Schema.Extend.
//  2. Loading config sources (the native line format, YAML, JSON, TOML or
//     Starlark scripts) and environment overrides on top of validated defaults.
//  3. Strict or relaxed handling of parameters the schema does not declare.
//  4. Merging configurations, and intersection or complement against a schema.
//  5. Generating a commented template and checking config files with a
//     one-line report.
//  6. Binding the result to a struct, optionally with github.com/ygrebnov/model
//     defaults and validation.
//
// Typical usage:
//
//	s := config.NewSchema("app")
//	s.Param("log_rotation", func(c *config.Call, v any) (any, error) {
//	    c.Default(5)
//	    c.Describe("Number of rotated log files to keep")
//	    if _, err := config.TypeOf(v, config.TypeInteger); err != nil {
//	        return nil, err
//	    }
//	    return config.InRange(v, 0, 20)
//	})
//
//	cfg, err := config.Load(s, "/etc/app.conf")
//	if err != nil {
//	    log.Fatal(err) // e.g. [log_rotation]: 25 - value is not within required range: 0..20
//	}
//	n, _ := cfg.Get("log_rotation")
//	_ = n
package config
