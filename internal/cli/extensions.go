package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rgonek/pandoc-prose-bridge/format"
)

func newExtensionsCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "extensions <dialect>",
		Short: "List the extensions of a markdown dialect",
		Long: `List the extension descriptors the engine reports for a base
dialect, one signed name per line. A leading + marks an extension that
is enabled by default, a leading - one that is disabled.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSettings(flags)
			if err != nil {
				return err
			}
			engine, err := buildEngine(cfg)
			if err != nil {
				return err
			}

			raw, err := engine.ListExtensions(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("list extensions for %q: %w", args[0], err)
			}

			for _, descriptor := range format.ParseDescriptors(raw) {
				sign := "-"
				if descriptor.Enabled {
					sign = "+"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n", sign, descriptor.Name)
			}
			return nil
		},
	}
}
