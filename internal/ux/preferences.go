package ux

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"grimoire/internal/config"
)

// PreferencesVersion is the current schema version for preferences.json.
const PreferencesVersion = "2.0"

// Preferences is the persisted preferences schema.
type Preferences struct {
	// Version is the schema version for migration detection
	Version string `json:"version"`

	Theme        string `json:"theme"`
	SoundEnabled bool   `json:"sound_enabled"`

	Intro IntroPrefs `json:"intro"`
}

// IntroPrefs tracks how the user has met the intro.
type IntroPrefs struct {
	Seen    bool   `json:"seen"`
	SeenAt  string `json:"seen_at,omitempty"`
	Runs    int    `json:"runs"`
	Skipped int    `json:"skipped"`
}

// PreferencesManager handles loading/saving preferences.
type PreferencesManager struct {
	mu          sync.RWMutex
	path        string
	preferences *Preferences
	now         func() time.Time
}

// NewPreferencesManager creates a preferences manager for the given workspace.
func NewPreferencesManager(workspace string) *PreferencesManager {
	return &PreferencesManager{
		path: filepath.Join(workspace, config.DirName, "preferences.json"),
		now:  time.Now,
	}
}

// Path is the preferences file location.
func (pm *PreferencesManager) Path() string {
	return pm.path
}

// Load reads preferences from disk, using defaults if the file is missing.
func (pm *PreferencesManager) Load() error {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	data, err := os.ReadFile(pm.path)
	if err != nil {
		if os.IsNotExist(err) {
			pm.preferences = DefaultPreferences()
			return nil
		}
		return fmt.Errorf("failed to read preferences: %w", err)
	}

	prefs := DefaultPreferences()
	if err := json.Unmarshal(data, prefs); err != nil {
		return fmt.Errorf("failed to parse preferences: %w", err)
	}
	if !config.IsTheme(prefs.Theme) {
		prefs.Theme = config.ThemeClassic
	}

	pm.preferences = prefs
	return nil
}

// Save writes preferences to disk.
func (pm *PreferencesManager) Save() error {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	return pm.saveLocked()
}

func (pm *PreferencesManager) saveLocked() error {
	if pm.preferences == nil {
		pm.preferences = DefaultPreferences()
	}

	dir := filepath.Dir(pm.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}

	data, err := json.MarshalIndent(pm.preferences, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	if err := os.WriteFile(pm.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}

	return nil
}

// Get returns a copy of the current preferences (thread-safe).
func (pm *PreferencesManager) Get() Preferences {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	if pm.preferences == nil {
		return *DefaultPreferences()
	}
	return *pm.preferences
}

func (pm *PreferencesManager) update(fn func(p *Preferences)) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if pm.preferences == nil {
		pm.preferences = DefaultPreferences()
	}
	fn(pm.preferences)
}

// SetTheme updates the phosphor theme.
func (pm *PreferencesManager) SetTheme(theme string) error {
	if !config.IsTheme(theme) {
		return fmt.Errorf("unknown theme %q (want one of %v)", theme, config.Themes)
	}
	pm.update(func(p *Preferences) { p.Theme = theme })
	return nil
}

// SetSound turns the terminal bell on or off.
func (pm *PreferencesManager) SetSound(enabled bool) {
	pm.update(func(p *Preferences) { p.SoundEnabled = enabled })
}

// ToggleSound flips the sound setting and returns the new value.
func (pm *PreferencesManager) ToggleSound() bool {
	var enabled bool
	pm.update(func(p *Preferences) {
		p.SoundEnabled = !p.SoundEnabled
		enabled = p.SoundEnabled
	})
	return enabled
}

// RecordIntro notes a finished intro run. The first run, watched or
// skipped, marks the intro as seen.
func (pm *PreferencesManager) RecordIntro(skipped bool) {
	pm.update(func(p *Preferences) {
		p.Intro.Runs++
		if skipped {
			p.Intro.Skipped++
		}
		if !p.Intro.Seen {
			p.Intro.Seen = true
			p.Intro.SeenAt = pm.now().UTC().Format(time.RFC3339)
		}
	})
}

// ResetIntro forgets that the intro was seen.
func (pm *PreferencesManager) ResetIntro() {
	pm.update(func(p *Preferences) { p.Intro = IntroPrefs{} })
}

// ShouldSkipIntro reports whether the intro should start already complete.
// A replay request always plays it.
func (pm *PreferencesManager) ShouldSkipIntro(replay bool) bool {
	if replay {
		return false
	}
	return pm.Get().Intro.Seen
}

// DefaultPreferences returns the preferences of a fresh install.
func DefaultPreferences() *Preferences {
	return &Preferences{
		Version:      PreferencesVersion,
		Theme:        config.ThemeClassic,
		SoundEnabled: true,
	}
}
