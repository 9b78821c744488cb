package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rgonek/pandoc-prose-bridge/editor"
	"github.com/rgonek/pandoc-prose-bridge/format"
	"github.com/rgonek/pandoc-prose-bridge/internal/logging"
	"github.com/rgonek/pandoc-prose-bridge/pandoc"
)

func newToDocCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "to-doc [file]",
		Short: "Convert markdown to an editor document",
		Long: `Convert markdown into the editor document model and print it as
JSON. Reads the named file, or stdin when no file (or -) is given.
Conversion warnings go to the log, not the output.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, resolved, err := setup(cmd, flags)
			if err != nil {
				return err
			}

			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			ast, err := engine.MarkdownToAST(cmd.Context(), string(input), resolved.FullName, nil)
			if err != nil {
				return fmt.Errorf("parse markdown: %w", err)
			}

			doc, warnings := editor.FromAST(ast)
			logWarnings(warnings)

			out, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}

func newToMarkdownCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "to-md [file]",
		Short: "Convert an editor document to markdown",
		Long: `Convert an editor document (JSON) back to markdown. Reads the
named file, or stdin when no file (or -) is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, resolved, err := setup(cmd, flags)
			if err != nil {
				return err
			}

			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			var doc editor.Doc
			if err := json.Unmarshal(input, &doc); err != nil {
				return fmt.Errorf("parse document: %w", err)
			}

			ast, warnings := editor.ToAST(doc)
			logWarnings(warnings)

			markdown, err := engine.ASTToMarkdown(cmd.Context(), ast, resolved.FullName, nil)
			if err != nil {
				return fmt.Errorf("render markdown: %w", err)
			}

			fmt.Fprint(cmd.OutOrStdout(), markdown)
			return nil
		},
	}
}

// setup loads settings, builds the engine, and resolves the format once.
func setup(cmd *cobra.Command, flags *rootFlags) (pandoc.Engine, format.Resolved, error) {
	cfg, err := loadSettings(flags)
	if err != nil {
		return nil, format.Resolved{}, err
	}
	engine, err := buildEngine(cfg)
	if err != nil {
		return nil, format.Resolved{}, err
	}
	resolved, err := format.Resolve(cmd.Context(), engine, cfg.DefaultFormat)
	if err != nil {
		return nil, format.Resolved{}, fmt.Errorf("resolve %q: %w", cfg.DefaultFormat, err)
	}
	return engine, resolved, nil
}

func logWarnings(warnings []editor.Warning) {
	logger := logging.Default()
	for _, warning := range warnings {
		logger.Warn(warning.Message,
			logging.FieldType, string(warning.Type),
			logging.FieldName, warning.Name,
		)
	}
}
