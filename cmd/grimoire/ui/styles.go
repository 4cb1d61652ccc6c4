// Package ui provides the bubbletea host for the grimoire intro: the CRT
// frame, phosphor themes, typewriter text, the archmage portrait and the
// plain transcript printer used when no terminal UI is wanted.
package ui

import (
	"strings"

	"grimoire/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Phosphor palettes. Each theme is one phosphor colour at three
// brightnesses plus the shared status colours.
var (
	ClassicPhosphor = lipgloss.Color("#33ff66")
	ClassicBright   = lipgloss.Color("#b3ffc6")
	ClassicDim      = lipgloss.Color("#1a7f33")

	AmberPhosphor = lipgloss.Color("#ffb000")
	AmberBright   = lipgloss.Color("#ffd980")
	AmberDim      = lipgloss.Color("#805800")

	WhitePhosphor = lipgloss.Color("#e8e8e8")
	WhiteBright   = lipgloss.Color("#ffffff")
	WhiteDim      = lipgloss.Color("#747474")

	ScreenBlack = lipgloss.Color("#0a0a0a")
	Failure     = lipgloss.Color("#ff4444")
	Caution     = lipgloss.Color("#ffcc00")
)

// Theme is a phosphor colour scheme.
type Theme struct {
	Name       string
	Phosphor   lipgloss.Color
	Bright     lipgloss.Color
	Dim        lipgloss.Color
	Background lipgloss.Color
}

// ClassicTheme is green phosphor.
func ClassicTheme() Theme {
	return Theme{
		Name:       config.ThemeClassic,
		Phosphor:   ClassicPhosphor,
		Bright:     ClassicBright,
		Dim:        ClassicDim,
		Background: ScreenBlack,
	}
}

// AmberTheme is amber phosphor.
func AmberTheme() Theme {
	return Theme{
		Name:       config.ThemeAmber,
		Phosphor:   AmberPhosphor,
		Bright:     AmberBright,
		Dim:        AmberDim,
		Background: ScreenBlack,
	}
}

// WhiteTheme is paper-white phosphor.
func WhiteTheme() Theme {
	return Theme{
		Name:       config.ThemeWhite,
		Phosphor:   WhitePhosphor,
		Bright:     WhiteBright,
		Dim:        WhiteDim,
		Background: ScreenBlack,
	}
}

// ThemeByName returns the named theme, falling back to classic.
func ThemeByName(name string) Theme {
	switch name {
	case config.ThemeAmber:
		return AmberTheme()
	case config.ThemeWhite:
		return WhiteTheme()
	default:
		return ClassicTheme()
	}
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	// Layout
	Screen lipgloss.Style
	Footer lipgloss.Style

	// Text
	Body    lipgloss.Style
	Bright  lipgloss.Style
	Dim     lipgloss.Style
	Speaker lipgloss.Style
	Cursor  lipgloss.Style
	Banner  lipgloss.Style

	// Boot log kinds
	Info    lipgloss.Style
	Loading lipgloss.Style
	Success lipgloss.Style

	// Status
	Pass    lipgloss.Style
	Fail    lipgloss.Style
	Warning lipgloss.Style
	Pending lipgloss.Style

	// Components
	Panel      lipgloss.Style
	PanelTitle lipgloss.Style
	Portrait   lipgloss.Style
	Rune       lipgloss.Style
	Spinner    lipgloss.Style

	// CRT effects
	Static   lipgloss.Style
	Scanline lipgloss.Style
	Glitch   lipgloss.Style
	Warmup   lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Screen: lipgloss.NewStyle().
			Foreground(theme.Phosphor).
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Dim),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Dim).
			Padding(0, 2),

		Body: lipgloss.NewStyle().
			Foreground(theme.Phosphor),

		Bright: lipgloss.NewStyle().
			Foreground(theme.Bright).
			Bold(true),

		Dim: lipgloss.NewStyle().
			Foreground(theme.Dim),

		Speaker: lipgloss.NewStyle().
			Foreground(theme.Bright).
			Bold(true),

		Cursor: lipgloss.NewStyle().
			Foreground(theme.Bright),

		Banner: lipgloss.NewStyle().
			Foreground(theme.Bright).
			Bold(true).
			MarginTop(1),

		Info: lipgloss.NewStyle().
			Foreground(theme.Phosphor),

		Loading: lipgloss.NewStyle().
			Foreground(theme.Dim),

		Success: lipgloss.NewStyle().
			Foreground(theme.Bright),

		Pass: lipgloss.NewStyle().
			Foreground(theme.Bright).
			Bold(true),

		Fail: lipgloss.NewStyle().
			Foreground(Failure).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(Caution).
			Bold(true),

		Pending: lipgloss.NewStyle().
			Foreground(theme.Dim),

		Panel: lipgloss.NewStyle().
			Foreground(theme.Phosphor).
			Padding(0, 2).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(theme.Phosphor),

		PanelTitle: lipgloss.NewStyle().
			Foreground(theme.Bright).
			Bold(true).
			Underline(true),

		Portrait: lipgloss.NewStyle().
			Foreground(theme.Bright),

		Rune: lipgloss.NewStyle().
			Foreground(theme.Bright).
			Bold(true),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Phosphor),

		Static: lipgloss.NewStyle().
			Foreground(theme.Dim),

		Scanline: lipgloss.NewStyle().
			Faint(true),

		Glitch: lipgloss.NewStyle().
			Foreground(theme.Bright).
			Reverse(true),

		Warmup: lipgloss.NewStyle().
			Foreground(theme.Bright).
			Bold(true),
	}
}

// DefaultStyles returns styles with the classic theme
func DefaultStyles() Styles {
	return NewStyles(ClassicTheme())
}

// RenderDivider returns a horizontal divider
func (s Styles) RenderDivider(width int) string {
	return s.Dim.Render(strings.Repeat("─", width))
}
