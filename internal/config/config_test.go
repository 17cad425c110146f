package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromMissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.FocusMinutes)
	assert.Equal(t, 41.0082, cfg.Latitude)
	assert.Equal(t, 28.9784, cfg.Longitude)
	assert.Equal(t, "Europe/Istanbul", cfg.Timezone)
	assert.Empty(t, cfg.DBPath)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
db_path = "/tmp/test.db"
focus_minutes = 45
latitude = 39.9334
longitude = 32.8597
timezone = "Europe/Istanbul"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.Equal(t, 45, cfg.FocusMinutes)
	assert.Equal(t, 39.9334, cfg.Latitude)
}

func TestLoadFromPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`focus_minutes = 25`), 0o644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.FocusMinutes)
	assert.Equal(t, "Europe/Istanbul", cfg.Timezone, "unset keys keep defaults")
}

func TestLoadFromInvalidFocusMinutes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`focus_minutes = -5`), 0o644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.FocusMinutes)
}

func TestLoadFromBadToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`focus_minutes = [[[`), 0o644))

	_, err := LoadFrom(path)
	require.Error(t, err)
}
