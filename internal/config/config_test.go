package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bridge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, EngineBuiltin, cfg.Engine)
	assert.Equal(t, "markdown", cfg.DefaultFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.PandocPath)
	require.NoError(t, cfg.Validate())
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, "engine: pandoc\npandocPath: /opt/pandoc/bin/pandoc\ndefaultFormat: gfm+footnotes\nlogLevel: debug\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, EnginePandoc, cfg.Engine)
	assert.Equal(t, "/opt/pandoc/bin/pandoc", cfg.PandocPath)
	assert.Equal(t, "gfm+footnotes", cfg.DefaultFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadPartialFileFillsDefaults(t *testing.T) {
	path := writeConfig(t, "defaultFormat: commonmark\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, EngineBuiltin, cfg.Engine)
	assert.Equal(t, "commonmark", cfg.DefaultFormat)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "engine: [unclosed\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "unknown engine",
			cfg:     Config{Engine: "lua", DefaultFormat: "markdown", LogLevel: "info"},
			wantErr: "unknown engine",
		},
		{
			name:    "unknown log level",
			cfg:     Config{Engine: EngineBuiltin, DefaultFormat: "markdown", LogLevel: "loud"},
			wantErr: "unknown log level",
		},
		{
			name:    "pandoc path without pandoc engine",
			cfg:     Config{Engine: EngineBuiltin, PandocPath: "/usr/bin/pandoc", DefaultFormat: "markdown", LogLevel: "info"},
			wantErr: "pandocPath",
		},
		{
			name: "valid pandoc engine",
			cfg:  Config{Engine: EnginePandoc, PandocPath: "/usr/bin/pandoc", DefaultFormat: "gfm", LogLevel: "warn"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
