package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	assert.Contains(t, DefaultPath(), filepath.Join(".config", "arrgate", "config.toml"))
}

func TestDefaultPath_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/arrgate/config.toml", DefaultPath())
}

func TestDiscover_EnvVar(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[log]"), 0644))
	t.Setenv("ARRGATE_CONFIG", cfgPath)

	path, err := Discover()
	require.NoError(t, err)
	assert.Equal(t, cfgPath, path)
}

func TestDiscover_EnvVarNotFound(t *testing.T) {
	t.Setenv("ARRGATE_CONFIG", "/nonexistent/config.toml")

	_, err := Discover()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ARRGATE_CONFIG")
}

func TestDiscover_CurrentDir(t *testing.T) {
	t.Setenv("ARRGATE_CONFIG", "")
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "config.toml"), []byte("[log]"), 0644))
	t.Chdir(tmp)

	path, err := Discover()
	require.NoError(t, err)
	assert.Equal(t, "./config.toml", path)
}

func TestDiscover_NotFound(t *testing.T) {
	t.Setenv("ARRGATE_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	if _, err := os.Stat("/etc/arrgate/config.toml"); err == nil {
		t.Skip("system config present")
	}
	_, err := Discover()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config not found")
}
