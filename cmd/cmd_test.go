package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	configPath, logLevel, ephemeral = "", "", false
	clearSpecPath, forceInit, decodeTree = false, false, false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestConfigInitAndShow(t *testing.T) {
	home := t.TempDir()
	t.Setenv("EZFRAME_HOME", home)

	out, err := run(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(home, "config.toml"))

	_, err = run(t, "config", "init")
	assert.Error(t, err)

	out, err = run(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "decode.command = decode_frame")
	assert.Contains(t, out, "storage.driver = file")
}

func TestPrefsToggleAndSpecPathPersist(t *testing.T) {
	home := t.TempDir()
	t.Setenv("EZFRAME_HOME", home)

	out, err := run(t, "prefs", "toggle", "dark")
	require.NoError(t, err)
	assert.Equal(t, "dark: true\n", out)

	spec := filepath.Join(home, "spec.json")
	require.NoError(t, os.WriteFile(spec, []byte(`{}`), 0o600))
	_, err = run(t, "prefs", "spec-path", spec)
	require.NoError(t, err)

	out, err = run(t, "prefs", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Dark mode:     true")
	assert.Contains(t, out, "Spec file:     "+spec)

	_, err = run(t, "prefs", "spec-path", "--clear")
	require.NoError(t, err)
	out, err = run(t, "prefs", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "(not set)")
}

func TestPrefsSpecPathRejectsMissingFile(t *testing.T) {
	t.Setenv("EZFRAME_HOME", t.TempDir())

	_, err := run(t, "prefs", "spec-path", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestDecodeReportsEngineFailure(t *testing.T) {
	t.Setenv("EZFRAME_HOME", t.TempDir())
	t.Setenv("EZFRAME_DECODE_COMMAND", filepath.Join(t.TempDir(), "no-such-decoder"))

	_, err := run(t, "--ephemeral", "decode", "<A1>")
	assert.EqualError(t, err, "decode failed")
}

func TestValidateSpecPath(t *testing.T) {
	assert.Error(t, validateSpecPath(""))
	assert.Error(t, validateSpecPath(t.TempDir()))

	f := filepath.Join(t.TempDir(), "spec.json")
	require.NoError(t, os.WriteFile(f, nil, 0o600))
	assert.NoError(t, validateSpecPath(f))
}
