package config

import "slices"

// Theme names understood by the terminal renderer.
const (
	ThemeClassic = "classic"
	ThemeAmber   = "amber"
	ThemeWhite   = "white"
)

// Themes lists the supported CRT phosphor themes.
var Themes = []string{ThemeClassic, ThemeAmber, ThemeWhite}

// IsTheme reports whether name is a supported theme.
func IsTheme(name string) bool {
	return slices.Contains(Themes, name)
}

// UIConfig holds terminal presentation settings.
type UIConfig struct {
	// Theme is the phosphor colour scheme.
	Theme string `yaml:"theme" json:"theme"`

	// Width of the CRT frame in columns (0 = fit the terminal).
	Width int `yaml:"width,omitempty" json:"width,omitempty"`

	// Effects toggles scanlines, static and glitch frames.
	Effects bool `yaml:"effects" json:"effects"`

	// Sound rings the terminal bell once when the intro completes.
	Sound bool `yaml:"sound" json:"sound"`
}

// DefaultUIConfig returns the UI defaults.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		Theme:   ThemeClassic,
		Effects: true,
		Sound:   true,
	}
}
