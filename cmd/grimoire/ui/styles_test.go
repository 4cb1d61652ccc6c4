package ui

import (
	"testing"

	"grimoire/internal/config"
)

func TestThemeByName(t *testing.T) {
	for _, name := range config.Themes {
		if got := ThemeByName(name); got.Name != name {
			t.Fatalf("ThemeByName(%q) returned %q", name, got.Name)
		}
	}
	if got := ThemeByName("plasma"); got.Name != config.ThemeClassic {
		t.Fatalf("unknown themes must fall back to classic, got %q", got.Name)
	}
}

func TestThemesDiffer(t *testing.T) {
	if ClassicTheme().Phosphor == AmberTheme().Phosphor || AmberTheme().Phosphor == WhiteTheme().Phosphor {
		t.Fatalf("expected a distinct phosphor per theme")
	}
}
