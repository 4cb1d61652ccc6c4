package ux

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"grimoire/internal/config"
)

// LegacyStoreName is the file name of a browser-side "grimoire-ui" export.
const LegacyStoreName = "grimoire-ui.json"

// MigrationResult contains information about a preferences migration.
type MigrationResult struct {
	WasMigrated     bool
	FromVersion     string
	ToVersion       string
	Source          string   // file the preserved values came from
	PreservedData   []string // fields carried over
	DefaultsApplied []string // fields filled from defaults
}

// legacyStore is the persisted shape of the browser UI store.
type legacyStore struct {
	State struct {
		Theme        *string `json:"theme"`
		SoundEnabled *bool   `json:"soundEnabled"`
	} `json:"state"`
	Version int `json:"version"`
}

// MigratePreferences brings .grimoire/preferences.json to the current
// schema. Older schema files are upgraded in place; with no preferences file
// a legacy grimoire-ui export is imported; otherwise defaults are written.
func MigratePreferences(workspace string) (*MigrationResult, error) {
	result := &MigrationResult{ToVersion: PreferencesVersion}
	pm := NewPreferencesManager(workspace)

	data, err := os.ReadFile(pm.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return importLegacy(pm, result)
	case err != nil:
		return nil, fmt.Errorf("failed to read preferences: %w", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		// Unreadable file: start over with defaults.
		result.WasMigrated = true
		result.DefaultsApplied = []string{"theme", "sound_enabled", "intro"}
		pm.preferences = DefaultPreferences()
		return result, pm.Save()
	}

	version, _ := raw["version"].(string)
	result.FromVersion = version
	if version == PreferencesVersion {
		return result, nil
	}

	prefs := DefaultPreferences()
	result.Source = pm.path
	applyRaw(prefs, raw, result)
	if seen, ok := raw["intro_seen"].(bool); ok {
		prefs.Intro.Seen = seen
		result.PreservedData = append(result.PreservedData, "intro_seen")
	}

	result.WasMigrated = true
	pm.preferences = prefs
	return result, pm.Save()
}

func importLegacy(pm *PreferencesManager, result *MigrationResult) (*MigrationResult, error) {
	legacyPath := filepath.Join(filepath.Dir(pm.path), LegacyStoreName)
	prefs := DefaultPreferences()

	data, err := os.ReadFile(legacyPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		result.DefaultsApplied = []string{"theme", "sound_enabled", "intro"}
	case err != nil:
		return nil, fmt.Errorf("failed to read legacy preferences: %w", err)
	default:
		var legacy legacyStore
		if err := json.Unmarshal(data, &legacy); err != nil {
			return nil, fmt.Errorf("failed to parse legacy preferences: %w", err)
		}
		result.FromVersion = fmt.Sprintf("legacy-%d", legacy.Version)
		result.Source = legacyPath
		if t := legacy.State.Theme; t != nil && config.IsTheme(*t) {
			prefs.Theme = *t
			result.PreservedData = append(result.PreservedData, "theme")
		} else {
			result.DefaultsApplied = append(result.DefaultsApplied, "theme")
		}
		if s := legacy.State.SoundEnabled; s != nil {
			prefs.SoundEnabled = *s
			result.PreservedData = append(result.PreservedData, "sound_enabled")
		} else {
			result.DefaultsApplied = append(result.DefaultsApplied, "sound_enabled")
		}
	}

	result.WasMigrated = true
	pm.preferences = prefs
	return result, pm.Save()
}

// applyRaw copies the fields an older schema may carry under either
// spelling.
func applyRaw(prefs *Preferences, raw map[string]any, result *MigrationResult) {
	if t, ok := raw["theme"].(string); ok && config.IsTheme(t) {
		prefs.Theme = t
		result.PreservedData = append(result.PreservedData, "theme")
	} else {
		result.DefaultsApplied = append(result.DefaultsApplied, "theme")
	}

	for _, key := range []string{"sound_enabled", "soundEnabled"} {
		if s, ok := raw[key].(bool); ok {
			prefs.SoundEnabled = s
			result.PreservedData = append(result.PreservedData, "sound_enabled")
			return
		}
	}
	result.DefaultsApplied = append(result.DefaultsApplied, "sound_enabled")
}
