package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 1.0, cfg.Intro.Speed)
	assert.Equal(t, 0.65, cfg.Intro.PassProbability)
	assert.Equal(t, ThemeClassic, cfg.UI.Theme)
	assert.True(t, cfg.History.Enabled)
	assert.False(t, cfg.Logging.DebugMode)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Intro.Speed = 0.5
	cfg.Intro.Seed = 42
	cfg.UI.Theme = ThemeAmber
	cfg.Logging.DebugMode = true
	cfg.Logging.Categories = map[string]bool{"ui": false}
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestConfig_LoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfig_LoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("intro:\n  skip: true\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Intro.Skip)
	assert.Equal(t, 1.0, cfg.Intro.Speed, "unset fields keep defaults")
	assert.Equal(t, ThemeClassic, cfg.UI.Theme)
}

func TestConfig_LoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("intro: [unterminated"), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"negative speed", func(c *Config) { c.Intro.Speed = -1 }, "intro.speed"},
		{"probability above one", func(c *Config) { c.Intro.PassProbability = 1.5 }, "intro.pass_probability"},
		{"unknown theme", func(c *Config) { c.UI.Theme = "plasma" }, "ui.theme"},
		{"history without path", func(c *Config) { c.History.DatabasePath = "" }, "history.database_path"},
		{"negative keep", func(c *Config) { c.History.Keep = -3 }, "history.keep"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestConfig_ValidateJoinsErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Intro.Speed = -1
	cfg.UI.Theme = "plasma"
	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "intro.speed")
	assert.ErrorContains(t, err, "ui.theme")
}

func TestConfig_Resolve(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Intro.ContentPath = "tales.yaml"
	cfg.Resolve("/work")
	assert.Equal(t, filepath.Join("/work", DirName, "history.db"), cfg.History.DatabasePath)
	assert.Equal(t, filepath.Join("/work", "tales.yaml"), cfg.Intro.ContentPath)

	cfg.Resolve("/elsewhere")
	assert.Equal(t, filepath.Join("/work", DirName, "history.db"), cfg.History.DatabasePath, "absolute paths are kept")
}

func TestLoggingConfig_IsCategoryEnabled(t *testing.T) {
	c := LoggingConfig{}
	assert.False(t, c.IsCategoryEnabled("intro"))

	c.DebugMode = true
	assert.True(t, c.IsCategoryEnabled("intro"))

	c.Categories = map[string]bool{"intro": false}
	assert.False(t, c.IsCategoryEnabled("intro"))
	assert.True(t, c.IsCategoryEnabled("ui"))
}

func TestFindWorkspaceRoot_PrefersGrimoireDir(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, DirName), 0755))
	sub := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0755))
	t.Chdir(sub)

	got, err := FindWorkspaceRoot()
	require.NoError(t, err)
	assert.Equal(t, evalPath(t, root), evalPath(t, got))
	assert.Equal(t, filepath.Join(got, DirName, "config.yaml"), DefaultConfigPath())
}

func evalPath(t *testing.T, p string) string {
	t.Helper()
	out, err := filepath.EvalSymlinks(p)
	require.NoError(t, err)
	return out
}
