package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvOverrides(t *testing.T) {
	t.Run("unset variables leave values alone", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Intro.Skip = true
		require.NoError(t, cfg.applyEnvOverrides())
		assert.True(t, cfg.Intro.Skip)
		assert.Equal(t, 1.0, cfg.Intro.Speed)
	})

	t.Run("intro settings", func(t *testing.T) {
		t.Setenv("GRIMOIRE_SKIP_INTRO", "true")
		t.Setenv("GRIMOIRE_SPEED", "0.25")
		t.Setenv("GRIMOIRE_PASS_PROBABILITY", "0.9")
		t.Setenv("GRIMOIRE_SEED", "7")

		cfg := DefaultConfig()
		require.NoError(t, cfg.applyEnvOverrides())
		assert.True(t, cfg.Intro.Skip)
		assert.Equal(t, 0.25, cfg.Intro.Speed)
		assert.Equal(t, 0.9, cfg.Intro.PassProbability)
		assert.Equal(t, uint64(7), cfg.Intro.Seed)
	})

	t.Run("false clears a file value", func(t *testing.T) {
		t.Setenv("GRIMOIRE_SKIP_INTRO", "false")
		cfg := DefaultConfig()
		cfg.Intro.Skip = true
		require.NoError(t, cfg.applyEnvOverrides())
		assert.False(t, cfg.Intro.Skip)
	})

	t.Run("ui logging and history", func(t *testing.T) {
		t.Setenv("GRIMOIRE_THEME", ThemeWhite)
		t.Setenv("GRIMOIRE_DEBUG", "1")
		t.Setenv("GRIMOIRE_LOG_LEVEL", "debug")
		t.Setenv("GRIMOIRE_HISTORY_DB", "/tmp/runs.db")
		t.Setenv("GRIMOIRE_NO_HISTORY", "true")

		cfg := DefaultConfig()
		require.NoError(t, cfg.applyEnvOverrides())
		assert.Equal(t, ThemeWhite, cfg.UI.Theme)
		assert.True(t, cfg.Logging.DebugMode)
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, "/tmp/runs.db", cfg.History.DatabasePath)
		assert.False(t, cfg.History.Enabled)
	})

	t.Run("malformed value is an error", func(t *testing.T) {
		t.Setenv("GRIMOIRE_SPEED", "fast")
		cfg := DefaultConfig()
		assert.ErrorContains(t, cfg.applyEnvOverrides(), "parse env")
	})
}

func TestEnvOverrides_WinOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ui:\n  theme: amber\nintro:\n  speed: 2\n"), 0644))
	t.Setenv("GRIMOIRE_THEME", ThemeWhite)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ThemeWhite, cfg.UI.Theme)
	assert.Equal(t, 2.0, cfg.Intro.Speed)
}

func TestEnvOverrides_AppliedWithoutFile(t *testing.T) {
	t.Setenv("GRIMOIRE_SKIP_INTRO", "true")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.True(t, cfg.Intro.Skip)
}

func TestEnvOverrides_ZeroPassProbabilityIsKept(t *testing.T) {
	t.Setenv("GRIMOIRE_PASS_PROBABILITY", "0")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Zero(t, cfg.Intro.PassProbability)
	assert.NoError(t, cfg.Validate())
}
