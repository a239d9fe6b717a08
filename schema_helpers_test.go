package config

import "regexp"

var (
	testLevels  = []any{Symbol("system"), Symbol("verbose"), Symbol("debug")}
	testPattern = regexp.MustCompile(`[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}`)
)

// testSchema mirrors a typical daemon schema with the "set" prefix.
func testSchema() *Schema {
	s := NewSchema("test", WithPrefix("set"))

	s.Param("log_dir", func(c *Call, v any) (any, error) {
		c.Describe("Directory for log files")
		c.Comment("Any string will do here")
		c.Option("-l", "--log-dir PATH")
		c.Default("/tmp")
		return String(v)
	})
	s.Param("log_level", func(c *Call, v any) (any, error) {
		c.Default(Symbol("verbose"))
		c.Describe("Applications logging level")
		c.Comment(
			"Log level can one of the following:",
			"",
			" * :system - log all important messages and use syslog",
			" * :verbose - be more generous with logging to help resolve problems",
		)
		return MemberOf(v, testLevels)
	})
	s.Param("log_rotation", func(c *Call, v any) (any, error) {
		c.Default(5)
		if _, err := TypeOf(v, TypeInteger); err != nil {
			return nil, err
		}
		return InRange(v, 0, 20)
	})
	s.Param("threshold", func(c *Call, v any) (any, error) {
		c.Describe("Threshold for things")
		c.Default(5.0)
		if _, err := TypeOf(v, TypeNumeric); err != nil {
			return nil, err
		}
		return InRange(v, 0.0, 10.0)
	})
	s.Param("email", func(c *Call, v any) (any, error) {
		c.Describe("Email address to send alerts to")
		return MatchingString(v, testPattern)
	})
	s.Param("flag", func(c *Call, v any) (any, error) {
		c.Default("true")
		return Flag(v)
	})
	s.Param("sieve", func(c *Call, v any) (any, error) {
		c.Default([]any{2, 5, 7, 10, 15})
		return ArrayOf(v, TypeInteger)
	})
	s.Param("option_set", func(c *Call, v any) (any, error) {
		c.Default(map[string]any{"peter": 37, "birds": true})
		return Hash(v)
	})
	return s
}
