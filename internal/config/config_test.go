package config

import (
	"path/filepath"
	"testing"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvOverridesDataFile(t *testing.T) {
	t.Setenv("PASSWORD_MANAGER_DATA", "/tmp/override.json")

	opts := Options{DataFile: "/tmp/from-flag.json"}
	require.NoError(t, env.Parse(&opts))
	assert.Equal(t, "/tmp/override.json", opts.DataFile)
}

func TestEnvLeavesFlagValueWhenUnset(t *testing.T) {
	opts := Options{DataFile: "/tmp/from-flag.json", LogLevel: "info"}
	require.NoError(t, env.Parse(&opts))
	assert.Equal(t, "/tmp/from-flag.json", opts.DataFile)
	assert.Equal(t, "info", opts.LogLevel)
}

func TestResolveDataFileDefault(t *testing.T) {
	path, err := resolveDataFile("")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(path))
	assert.Equal(t, "password_manager.json", filepath.Base(path))
	assert.Equal(t, ".password_manager", filepath.Base(filepath.Dir(path)))
}

func TestResolveDataFileMakesAbsolute(t *testing.T) {
	path, err := resolveDataFile("relative/dir/creds.json")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(path))
	assert.Equal(t, "creds.json", filepath.Base(path))
}
