package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rgonek/pandoc-prose-bridge/format"
	"github.com/rgonek/pandoc-prose-bridge/internal/logging"
)

func newResolveCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve [format]",
		Short: "Resolve a markdown format request",
		Long: `Resolve a markdown format request to its base dialect and
effective extension set, the same way pandoc would. Unknown bases fall
back to plain markdown and unknown options are reported as warnings in
the output rather than failing the command.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSettings(flags)
			if err != nil {
				return err
			}
			engine, err := buildEngine(cfg)
			if err != nil {
				return err
			}

			request := cfg.DefaultFormat
			if len(args) > 0 {
				request = args[0]
			}

			logger := logging.Default()
			logger.Debug("resolving format",
				logging.FieldFormat, request,
				logging.FieldEngine, string(cfg.Engine),
			)

			resolved, err := format.Resolve(cmd.Context(), engine, request)
			if err != nil {
				return fmt.Errorf("resolve %q: %w", request, err)
			}

			if resolved.Warnings.InvalidFormat != "" {
				logger.Warn("unknown base format, using fallback",
					logging.FieldFormat, resolved.Warnings.InvalidFormat,
					logging.FieldBase, resolved.BaseName,
				)
			}
			for _, option := range resolved.Warnings.InvalidOptions {
				logger.Warn("unknown extension option", logging.FieldOptions, option)
			}

			out, err := json.MarshalIndent(resolved, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}
