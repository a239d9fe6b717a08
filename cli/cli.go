// Package cli exposes a schema as cobra commands: template generation, config
// checks and printing of the materialized configuration.
package cli

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	config "github.com/ygrebnov/schemaconf"
	"github.com/ygrebnov/schemaconf/streams"
)

// ErrCheckFailed is returned by the check command when the config has errors.
var ErrCheckFailed = errors.New("config check failed")

// NewCommand returns a command named use with the template, check and show
// subcommands bound to s.
func NewCommand(s *config.Schema, use string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: fmt.Sprintf("Manage %s configuration", s.Name()),
		Long: fmt.Sprintf(`Inspect the %s configuration schema.

Subcommands:
  - template: write a commented config with every default
  - check: validate a config file and report the first error
  - show: print the configuration after defaults and validation`, s.Name()),
		SilenceUsage: true,
	}
	cmd.AddCommand(newTemplateCommand(s))
	cmd.AddCommand(newCheckCommand(s))
	cmd.AddCommand(newShowCommand(s))
	return cmd
}

func newTemplateCommand(s *config.Schema) *cobra.Command {
	var (
		local  bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Generate a commented config template",
		Example: `  # Print the template
  app config template

  # Write only the parameters declared by this schema
  app config template --local --output ./app.conf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Debug().Str("schema", s.Name()).Bool("local", local).Str("output", output).Msg("Generating template")
			if output != "" {
				if err := config.WriteTemplateFile(output, s, local); err != nil {
					return err
				}
				log.Info().Str("path", output).Msg("Template written")
				return nil
			}
			return config.WriteTemplate(cmd.OutOrStdout(), s, local)
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "only parameters declared by the schema itself")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the template to this file")

	return cmd
}

func newCheckCommand(s *config.Schema) *cobra.Command {
	var (
		report    string
		envPrefix string
		relaxed   bool
	)

	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Validate a config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := append(policyOptions(relaxed),
				config.WithStreams(streams.Writers(cmd.OutOrStdout(), cmd.ErrOrStderr())),
				config.WithLogger(log.Logger),
			)
			if report != "" {
				opts = append(opts, config.WithReportFile(report))
			}
			if envPrefix != "" {
				opts = append(opts, config.WithEnvPrefix(envPrefix))
			}
			ok, err := config.CheckConfig(s, args[0], opts...)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: %s", ErrCheckFailed, args[0])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&report, "report", "", "write the report to this file")
	cmd.Flags().StringVar(&envPrefix, "env-prefix", "", "override parameters from PREFIX_NAME environment variables")
	cmd.Flags().BoolVar(&relaxed, "relaxed", false, "accept parameters the schema does not declare")

	return cmd
}

func newShowCommand(s *config.Schema) *cobra.Command {
	var (
		format    string
		envPrefix string
		relaxed   bool
	)

	cmd := &cobra.Command{
		Use:   "show [file]",
		Short: "Print the configuration as it would be saved",
		Long: `Validate the configuration, then print its defaults overridden by the
assignments of the file. Without a file only the defaults are printed.
With --env-prefix, PREFIX_NAME environment variables override both.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) > 0 {
				path = args[0]
			}
			opts := append(policyOptions(relaxed), config.WithLogger(log.Logger))
			if envPrefix != "" {
				opts = append(opts, config.WithEnvPrefix(envPrefix))
			}
			c, err := config.Load(s, path, opts...)
			if err != nil {
				return err
			}
			var ext string
			switch format {
			case "yaml", "json", "toml":
				ext = "." + format
			case "conf":
			default:
				return fmt.Errorf("unsupported format %q", format)
			}
			data, err := c.Encode(ext)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format: yaml, json, toml or conf")
	cmd.Flags().StringVar(&envPrefix, "env-prefix", "", "override parameters from PREFIX_NAME environment variables")
	cmd.Flags().BoolVar(&relaxed, "relaxed", false, "accept parameters the schema does not declare")

	return cmd
}

func policyOptions(relaxed bool) []config.Option {
	if relaxed {
		return []config.Option{config.WithPolicy(config.Relaxed)}
	}
	return []config.Option{config.WithPolicy(config.Strict)}
}
