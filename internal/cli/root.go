// Package cli provides the Cobra command structure for ppb.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rgonek/pandoc-prose-bridge/internal/config"
	"github.com/rgonek/pandoc-prose-bridge/internal/logging"
	"github.com/rgonek/pandoc-prose-bridge/mdengine"
	"github.com/rgonek/pandoc-prose-bridge/pandoc"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// rootFlags are the persistent flags shared by every subcommand.
type rootFlags struct {
	debug      bool
	configPath string
	engine     string
	pandocPath string
	format     string
}

// NewRootCommand creates the root ppb command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "ppb",
		Short: "Bridge between pandoc documents and an editor document model",
		Long: `ppb converts between pandoc's JSON document tree and a
ProseMirror-style editor document model.

It resolves markdown format requests the way pandoc does (base dialect
plus signed extension options), converts markdown to editor documents
and back, and can run against either an external pandoc binary or the
built-in goldmark engine.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if flags.debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flags.engine, "engine", "", "conversion engine: pandoc or builtin")
	rootCmd.PersistentFlags().StringVar(&flags.pandocPath, "pandoc-path", "", "path to the pandoc binary")
	rootCmd.PersistentFlags().StringVar(&flags.format, "format", "", "markdown format request, e.g. gfm+footnotes")

	rootCmd.AddCommand(newResolveCommand(flags))
	rootCmd.AddCommand(newExtensionsCommand(flags))
	rootCmd.AddCommand(newToDocCommand(flags))
	rootCmd.AddCommand(newToMarkdownCommand(flags))
	rootCmd.AddCommand(newTitleCommand(flags))
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}

// loadSettings merges the config file with command-line overrides.
func loadSettings(flags *rootFlags) (config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return config.Config{}, err
	}

	if flags.engine != "" {
		cfg.Engine = config.EngineKind(flags.engine)
	}
	if flags.pandocPath != "" {
		cfg.PandocPath = flags.pandocPath
		cfg.Engine = config.EnginePandoc
	}
	if flags.format != "" {
		cfg.DefaultFormat = flags.format
	}
	if flags.debug {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// buildEngine constructs the conversion engine the settings ask for.
func buildEngine(cfg config.Config) (pandoc.Engine, error) {
	switch cfg.Engine {
	case config.EnginePandoc:
		path := cfg.PandocPath
		if path == "" {
			path = pandoc.DefaultBinary
		}
		return pandoc.NewCLIEngine(path), nil
	case config.EngineBuiltin:
		return mdengine.New(), nil
	default:
		return nil, fmt.Errorf("unknown engine %q", cfg.Engine)
	}
}
