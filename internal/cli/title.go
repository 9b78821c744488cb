package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rgonek/pandoc-prose-bridge/editor"
)

func newTitleCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "title [file]",
		Short: "Derive a title from an editor document",
		Long: `Derive a display title from an editor document (JSON): the text
of the first heading, or the start of the first non-empty block when
the document has no headings.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			var doc editor.Doc
			if err := json.Unmarshal(input, &doc); err != nil {
				return fmt.Errorf("parse document: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), editor.DeriveTitle(doc))
			return nil
		},
	}
}
