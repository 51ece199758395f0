package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classref/classref/pkg/checker"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()

	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	return root
}

func executeCheck(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	// LoadConfig searches the working directory; run from an empty one so
	// only explicit flags shape the command.
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("HOME", t.TempDir())

	cmd := NewCheckCommand()
	// The root command silences cobra's own error and usage printing; do the
	// same when executing the subcommand standalone.
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	var outBuf, errBuf bytes.Buffer

	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	err = cmd.Execute()

	return outBuf.String(), errBuf.String(), err
}

func TestCheckReportsUndeclaredReference(t *testing.T) {
	root := writeTree(t, map[string]string{
		"services.xml": `<config><class>Foo\Missing</class></config>`,
	})

	stdout, stderr, err := executeCheck(t, root)

	require.ErrorIs(t, err, ErrIssuesFound)
	assert.Contains(t, stdout, "services.xml:1: UndeclaredClassReference:")
	assert.Contains(t, stdout, `Foo\Missing`)
	assert.Contains(t, stderr, "progress: ")
	assert.Contains(t, stderr, "1 issues")
}

func TestCheckCleanTree(t *testing.T) {
	root := writeTree(t, map[string]string{
		"services.xml": `<config><class>Foo\Bar</class></config>`,
	})
	manifest := filepath.Join(t.TempDir(), "symbols.json")
	require.NoError(t, os.WriteFile(manifest, []byte(`{"classes": ["Foo\\Bar"]}`), 0o644))

	stdout, stderr, err := executeCheck(t, root, "--symbols", manifest)

	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "loaded 1 declared classes")
	assert.Contains(t, stderr, "0 issues")
}

func TestCheckJSONFormat(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.xml": `<c><class>Gone</class></c>`,
	})

	stdout, _, err := executeCheck(t, root, "--format", "json", "--silent")

	require.ErrorIs(t, err, ErrIssuesFound)

	var decoded struct {
		Total int `json:"total"`
	}

	require.NoError(t, json.Unmarshal([]byte(stdout), &decoded))
	assert.Equal(t, 1, decoded.Total)
}

func TestCheckSilentSuppressesProgress(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.xml": "<c/>",
	})

	_, stderr, err := executeCheck(t, root, "--silent")

	require.NoError(t, err)
	assert.NotContains(t, stderr, "progress: ")
}

func TestCheckFailsWithoutConfigDirectory(t *testing.T) {
	_, _, err := executeCheck(t)

	require.ErrorIs(t, err, checker.ErrDirectoryNotConfigured)
}

func TestCheckFailsBeforeScanOnMissingDirectory(t *testing.T) {
	stdout, _, err := executeCheck(t, filepath.Join(t.TempDir(), "gone"))

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrIssuesFound)
	assert.Empty(t, stdout, "nothing is rendered when configuration fails")
}

func TestCheckClassElementFlag(t *testing.T) {
	root := writeTree(t, map[string]string{
		"handlers.xml": `<h><handler>App\Gone</handler><class>NotChecked</class></h>`,
	})

	stdout, _, err := executeCheck(t, root, "--class-element", "handler", "--silent")

	require.ErrorIs(t, err, ErrIssuesFound)
	assert.Contains(t, stdout, `App\Gone`)
	assert.NotContains(t, stdout, "NotChecked")
}

func TestCheckConfigFile(t *testing.T) {
	root := writeTree(t, map[string]string{
		"services.xml": `<config><ref>App\Gone</ref></config>`,
	})

	cfgPath := filepath.Join(t.TempDir(), ".classref.yaml")
	cfgContent := "config_dir: " + root + "\nsilent: true\nchecker:\n  class_element: ref\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgContent), 0o600))

	stdout, stderr, err := executeCheck(t, "--config", cfgPath)

	require.ErrorIs(t, err, ErrIssuesFound)
	assert.Contains(t, stdout, `App\Gone`)
	assert.Empty(t, stderr)
}

func TestCheckRejectsExtraArguments(t *testing.T) {
	_, _, err := executeCheck(t, "one", "two")

	require.Error(t, err)
}

func TestRegisterHookFlags(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{Use: "check"}
	registerHookFlags(cmd, checker.NewChecker())

	for _, name := range []string{"config-dir", "class-element", "exclude-from", "suggest-max-distance"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}
