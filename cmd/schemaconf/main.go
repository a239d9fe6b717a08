package main

import (
	"context"
	"os"
	"os/signal"
	"regexp"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	config "github.com/ygrebnov/schemaconf"
	"github.com/ygrebnov/schemaconf/cli"
)

func main() {
	setupLogging()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cli.NewCommand(serviceSchema(), "schemaconf").ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("Command execution failed")
		os.Exit(1)
	}
}

func setupLogging() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

var emailPattern = regexp.MustCompile(`[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}`)

// serviceSchema is the sample schema of a small daemon.
func serviceSchema() *config.Schema {
	s := config.NewSchema("service")

	s.Param("log_dir", func(c *config.Call, v any) (any, error) {
		c.Describe("Directory for log files")
		c.Default("/tmp")
		c.Comment("Writable directory where the service keeps its log files")
		c.Option("-l", "--log-dir PATH")
		return config.WritableDir(v)
	})

	s.Param("log_level", func(c *config.Call, v any) (any, error) {
		levels := []any{config.Symbol("system"), config.Symbol("verbose"), config.Symbol("debug")}
		c.Describe("Logging level")
		c.Default(config.Symbol("verbose"))
		c.Comment(
			"One of:",
			"",
			" * :system - log important messages to syslog",
			" * :verbose - be generous with logging to help resolve problems",
			" * :debug - log everything",
		)
		c.Option("-L", "--level SYMBOL")
		return config.MemberOf(v, levels)
	})

	s.Param("log_rotation", func(c *config.Call, v any) (any, error) {
		c.Describe("Number of rotated log files to keep")
		c.Default(5)
		if _, err := config.TypeOf(v, config.TypeInteger); err != nil {
			return nil, err
		}
		return config.InRange(v, 0, 20)
	})

	s.Param("admin_email", func(c *config.Call, v any) (any, error) {
		c.Describe("Address that receives alerts")
		c.Default("root@localhost.localdomain")
		return config.MatchingString(v, emailPattern)
	})

	s.Param("daemonize", func(c *config.Call, v any) (any, error) {
		c.Describe("Detach from the terminal on start")
		c.Default("yes")
		c.Option("-d", "--[no-]daemonize")
		return config.Flag(v)
	})

	return s
}
