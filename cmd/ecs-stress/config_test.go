package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stress.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
[run]
duration = "2s"
entities = 500
seed = 42

[logging]
format = "json"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, cfg.Run.Duration)
	assert.Equal(t, 500, cfg.Run.Entities)
	assert.Equal(t, int64(42), cfg.Run.Seed)
	assert.Equal(t, "json", cfg.Logging.Format)

	def := defaults()
	assert.Equal(t, def.Run.Systems, cfg.Run.Systems)
	assert.Equal(t, def.Run.MaxEntities, cfg.Run.MaxEntities)
	assert.Equal(t, def.Logging.Level, cfg.Logging.Level)
	assert.Equal(t, def.Profile.Path, cfg.Profile.Path)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "[run\nentities = 1"))
	require.Error(t, err)

	_, err = Load(writeConfig(t, "[profile]\nmode = \"trace\"\n"))
	assert.ErrorIs(t, err, errInvalidConfig)

	_, err = Load(writeConfig(t, "[run]\nchurn_per_frame = -1\n"))
	assert.ErrorIs(t, err, errInvalidConfig)
}

func TestDefaultsAreValid(t *testing.T) {
	assert.NoError(t, defaults().validate())
}

func TestNewLogger(t *testing.T) {
	log, err := newLogger(LoggingConfig{Level: "debug", Format: "json"})
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(-1))

	log, err = newLogger(LoggingConfig{Level: "nonsense", Format: "console"})
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(-1))
	assert.True(t, log.Core().Enabled(0))
}

func TestStartProfileOff(t *testing.T) {
	assert.Nil(t, startProfile(ProfileConfig{}))
}
