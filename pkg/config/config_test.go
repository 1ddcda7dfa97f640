package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultSnapshotPath, cfg.SnapshotPath)
	assert.Equal(t, DefaultPassphrase, cfg.Passphrase)
	assert.Equal(t, DefaultMaxStopover, cfg.MaxStopover)
	assert.Equal(t, DefaultListen, cfg.Listen)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wayfare.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"snapshot_path: /var/lib/wayfare/catalogue.sav\nmax_stopover: PT2H30M\n",
	), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/wayfare/catalogue.sav", cfg.SnapshotPath)
	assert.Equal(t, "PT2H30M", cfg.MaxStopover)
	// untouched keys keep their defaults
	assert.Equal(t, DefaultPassphrase, cfg.Passphrase)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	t.Setenv("WAYFARE_SNAPSHOT_PATH", "/tmp/override.sav")
	t.Setenv("WAYFARE_MAX_STOPOVER", "PT1H")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/override.sav", cfg.SnapshotPath)

	stopover, err := cfg.StopoverDuration()
	require.NoError(t, err)
	assert.Equal(t, time.Hour, stopover)
}

func TestStopoverDuration(t *testing.T) {
	cfg := Defaults()

	stopover, err := cfg.StopoverDuration()
	require.NoError(t, err)
	assert.Equal(t, 6*time.Hour, stopover)

	cfg.MaxStopover = "not-a-duration"
	_, err = cfg.StopoverDuration()
	assert.Error(t, err)
}
