package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	// No config file anywhere on the search path: defaults apply.
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "text", cfg.Format)
	assert.False(t, cfg.NoColor)
	assert.False(t, cfg.Silent)
	assert.Equal(t, "class", cfg.Checker.ClassElement)
	assert.Equal(t, 3, cfg.Checker.SuggestMaxDistance)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".classref.yaml")
	content := `config_dir: configs
symbols: symbols.json
format: json
no_color: true
checker:
  class_element: handler
  exclude_from: excludes.txt
  suggest_max_distance: 1
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "configs", cfg.ConfigDir)
	assert.Equal(t, "symbols.json", cfg.Symbols)
	assert.Equal(t, "json", cfg.Format)
	assert.True(t, cfg.NoColor)
	assert.Equal(t, "handler", cfg.Checker.ClassElement)
	assert.Equal(t, "excludes.txt", cfg.Checker.ExcludeFrom)
	assert.Equal(t, 1, cfg.Checker.SuggestMaxDistance)
}

func TestLoadConfigInvalidFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".classref.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: xml\n"), 0o600))

	_, err := LoadConfig(path)
	require.ErrorIs(t, err, ErrInvalidFormat)
}

func TestLoadConfigNegativeDistance(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".classref.yaml")
	require.NoError(t, os.WriteFile(path, []byte("checker:\n  suggest_max_distance: -1\n"), 0o600))

	_, err := LoadConfig(path)
	require.ErrorIs(t, err, ErrNegativeDistance)
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".classref.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: [unterminated\n"), 0o600))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestLoadConfigExplicitMissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err, "an explicitly named config file must exist")
}

func TestValidateAcceptsEmptyFormat(t *testing.T) {
	t.Parallel()

	cfg := &Config{}

	require.NoError(t, cfg.Validate())
}
