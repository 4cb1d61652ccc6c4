package ux

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"grimoire/internal/config"
)

func TestDefaultPreferences(t *testing.T) {
	prefs := DefaultPreferences()
	if prefs.Version != PreferencesVersion {
		t.Fatalf("unexpected preferences version: %s", prefs.Version)
	}
	if prefs.Theme != config.ThemeClassic {
		t.Fatalf("unexpected theme: %s", prefs.Theme)
	}
	if !prefs.SoundEnabled {
		t.Fatalf("expected sound enabled by default")
	}
	if prefs.Intro.Seen {
		t.Fatalf("fresh install must not have seen the intro")
	}
}

func TestPreferencesManagerLoadSave(t *testing.T) {
	workspace := t.TempDir()
	pm := NewPreferencesManager(workspace)
	if err := pm.Load(); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if err := pm.SetTheme(config.ThemeAmber); err != nil {
		t.Fatalf("set theme failed: %v", err)
	}
	pm.SetSound(false)
	pm.RecordIntro(true)
	if err := pm.Save(); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	pm2 := NewPreferencesManager(workspace)
	if err := pm2.Load(); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	got := pm2.Get()
	if got.Theme != config.ThemeAmber {
		t.Fatalf("expected theme persisted, got %s", got.Theme)
	}
	if got.SoundEnabled {
		t.Fatalf("expected sound off persisted")
	}
	if !got.Intro.Seen || got.Intro.Runs != 1 || got.Intro.Skipped != 1 {
		t.Fatalf("unexpected intro prefs: %+v", got.Intro)
	}
}

func TestSetThemeRejectsUnknown(t *testing.T) {
	pm := NewPreferencesManager(t.TempDir())
	if err := pm.SetTheme("plasma"); err == nil {
		t.Fatalf("expected error for unknown theme")
	}
	if pm.Get().Theme != config.ThemeClassic {
		t.Fatalf("theme changed after rejected update")
	}
}

func TestLoadRepairsUnknownTheme(t *testing.T) {
	workspace := t.TempDir()
	pm := NewPreferencesManager(workspace)
	if err := os.MkdirAll(filepath.Dir(pm.Path()), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(pm.Path(), []byte(`{"version":"2.0","theme":"plasma"}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := pm.Load(); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got := pm.Get(); got.Theme != config.ThemeClassic || !got.SoundEnabled {
		t.Fatalf("expected defaults for missing or invalid fields, got %+v", got)
	}
}

func TestToggleSound(t *testing.T) {
	pm := NewPreferencesManager(t.TempDir())
	if pm.ToggleSound() {
		t.Fatalf("expected sound off after first toggle")
	}
	if !pm.ToggleSound() {
		t.Fatalf("expected sound on after second toggle")
	}
}

func TestIntroSeenLifecycle(t *testing.T) {
	pm := NewPreferencesManager(t.TempDir())
	pm.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }

	if pm.ShouldSkipIntro(false) {
		t.Fatalf("first run must play the intro")
	}
	pm.RecordIntro(false)
	if !pm.ShouldSkipIntro(false) {
		t.Fatalf("later runs skip the intro")
	}
	if pm.ShouldSkipIntro(true) {
		t.Fatalf("replay always plays the intro")
	}
	if got := pm.Get().Intro.SeenAt; got != "2025-03-01T12:00:00Z" {
		t.Fatalf("unexpected seen_at: %s", got)
	}

	pm.RecordIntro(false)
	if got := pm.Get().Intro; got.Runs != 2 || got.SeenAt != "2025-03-01T12:00:00Z" {
		t.Fatalf("seen_at must keep the first run: %+v", got)
	}

	pm.ResetIntro()
	if pm.ShouldSkipIntro(false) {
		t.Fatalf("reset must replay the intro")
	}
}

func TestGetReturnsCopy(t *testing.T) {
	pm := NewPreferencesManager(t.TempDir())
	p := pm.Get()
	p.Theme = config.ThemeWhite
	if pm.Get().Theme == config.ThemeWhite {
		t.Fatalf("Get must not expose internal state")
	}
}
