package ux

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"grimoire/internal/config"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

func loadPrefs(t *testing.T, workspace string) Preferences {
	t.Helper()
	pm := NewPreferencesManager(workspace)
	if err := pm.Load(); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	return pm.Get()
}

func TestMigratePreferencesNewUser(t *testing.T) {
	workspace := t.TempDir()
	result, err := MigratePreferences(workspace)
	if err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if !result.WasMigrated {
		t.Fatalf("expected preferences to be created")
	}
	if !slices.Contains(result.DefaultsApplied, "theme") {
		t.Fatalf("expected defaults applied, got %v", result.DefaultsApplied)
	}
	if got := loadPrefs(t, workspace); got.Theme != config.ThemeClassic || got.Version != PreferencesVersion {
		t.Fatalf("unexpected preferences: %+v", got)
	}
}

func TestMigratePreferencesLegacyStore(t *testing.T) {
	workspace := t.TempDir()
	writeFile(t, filepath.Join(workspace, config.DirName, LegacyStoreName),
		`{"state":{"theme":"amber","soundEnabled":false},"version":0}`)

	result, err := MigratePreferences(workspace)
	if err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if result.FromVersion != "legacy-0" {
		t.Fatalf("unexpected from version: %s", result.FromVersion)
	}
	if !slices.Equal(result.PreservedData, []string{"theme", "sound_enabled"}) {
		t.Fatalf("unexpected preserved data: %v", result.PreservedData)
	}

	got := loadPrefs(t, workspace)
	if got.Theme != config.ThemeAmber || got.SoundEnabled {
		t.Fatalf("legacy values not imported: %+v", got)
	}
}

func TestMigratePreferencesLegacyStoreBadTheme(t *testing.T) {
	workspace := t.TempDir()
	writeFile(t, filepath.Join(workspace, config.DirName, LegacyStoreName),
		`{"state":{"theme":"neon"},"version":0}`)

	result, err := MigratePreferences(workspace)
	if err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if !slices.Equal(result.DefaultsApplied, []string{"theme", "sound_enabled"}) {
		t.Fatalf("unexpected defaults: %v", result.DefaultsApplied)
	}
}

func TestMigratePreferencesOldVersion(t *testing.T) {
	workspace := t.TempDir()
	pm := NewPreferencesManager(workspace)
	writeFile(t, pm.Path(), `{"version":"1.0","theme":"white","soundEnabled":false,"intro_seen":true}`)

	result, err := MigratePreferences(workspace)
	if err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if !result.WasMigrated || result.FromVersion != "1.0" {
		t.Fatalf("unexpected result: %+v", result)
	}

	got := loadPrefs(t, workspace)
	if got.Theme != config.ThemeWhite || got.SoundEnabled || !got.Intro.Seen {
		t.Fatalf("old values not carried over: %+v", got)
	}
}

func TestMigratePreferencesCurrentVersion(t *testing.T) {
	workspace := t.TempDir()
	pm := NewPreferencesManager(workspace)
	writeFile(t, pm.Path(), `{"version":"2.0","theme":"amber","sound_enabled":true}`)

	result, err := MigratePreferences(workspace)
	if err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if result.WasMigrated {
		t.Fatalf("current version must not migrate")
	}
}

func TestMigratePreferencesCorruptFile(t *testing.T) {
	workspace := t.TempDir()
	pm := NewPreferencesManager(workspace)
	writeFile(t, pm.Path(), `{not json`)

	result, err := MigratePreferences(workspace)
	if err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if !result.WasMigrated {
		t.Fatalf("corrupt file must be replaced")
	}
	if got := loadPrefs(t, workspace); got.Version != PreferencesVersion {
		t.Fatalf("unexpected preferences: %+v", got)
	}
}
