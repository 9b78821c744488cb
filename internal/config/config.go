// Package config loads and validates the bridge configuration file.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EngineKind selects the markdown engine implementation.
type EngineKind string

const (
	// EnginePandoc shells out to an external pandoc binary.
	EnginePandoc EngineKind = "pandoc"
	// EngineBuiltin uses the embedded goldmark engine.
	EngineBuiltin EngineKind = "builtin"
)

// Config holds the tool configuration.
type Config struct {
	// Engine selects the conversion backend.
	Engine EngineKind `yaml:"engine,omitempty"`
	// PandocPath overrides the pandoc binary location for the pandoc engine.
	PandocPath string `yaml:"pandocPath,omitempty"`
	// DefaultFormat is the format request used when none is given.
	DefaultFormat string `yaml:"defaultFormat,omitempty"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"logLevel,omitempty"`
}

// ErrInvalidConfig wraps all validation failures.
var ErrInvalidConfig = errors.New("invalid config")

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{}.applyDefaults()
}

// Load reads a YAML config file, fills defaults, and validates.
// An empty path yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %q: %w", path, err)
	}

	cfg = cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) applyDefaults() Config {
	if c.Engine == "" {
		c.Engine = EngineBuiltin
	}
	if c.DefaultFormat == "" {
		c.DefaultFormat = "markdown"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	return c
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch c.Engine {
	case EnginePandoc, EngineBuiltin:
	default:
		return fmt.Errorf("%w: unknown engine %q", ErrInvalidConfig, c.Engine)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.LogLevel)
	}

	if c.PandocPath != "" && c.Engine != EnginePandoc {
		return fmt.Errorf("%w: pandocPath is only valid with the pandoc engine", ErrInvalidConfig)
	}

	return nil
}
