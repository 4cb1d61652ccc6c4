// Package content holds the static narrative tables consumed by the intro
// sequence: boot log, archmage dialogue, system checks, grimoire loading
// messages, calibration runes and the fixed lines that frame each beat.
//
// Tables are plain data. They are loaded once per session (defaults, or a
// YAML override merged over the defaults) and never mutated afterwards.
package content

// BootKind classifies a boot log entry. It drives both styling and pacing
// (blank entries hold for a shorter pause).
type BootKind string

const (
	BootInfo    BootKind = "info"
	BootLoading BootKind = "loading"
	BootSuccess BootKind = "success"
	BootBlank   BootKind = "blank"
)

// BootEntry is one line of the terminal boot log.
type BootEntry struct {
	Text string   `yaml:"text" json:"text"`
	Kind BootKind `yaml:"kind" json:"kind"`
}

// IsBlank reports whether the entry is a spacer line.
func (e BootEntry) IsBlank() bool {
	return e.Kind == BootBlank
}

// Check is a named checklist entry shared by the system checks and the
// rune calibration table.
type Check struct {
	Name    string `yaml:"name" json:"name"`
	Display string `yaml:"display" json:"display"`
}

// Lines are the fixed narrative strings shown by individual beats.
type Lines struct {
	Speaker          string `yaml:"speaker" json:"speaker"`
	ProfileHeader    string `yaml:"profile_header" json:"profile_header"`
	GrimoireTitle    string `yaml:"grimoire_title" json:"grimoire_title"`
	GrimoireStatus   string `yaml:"grimoire_status" json:"grimoire_status"`
	GrimoireVersion  string `yaml:"grimoire_version" json:"grimoire_version"`
	GrimoireSpells   string `yaml:"grimoire_spells" json:"grimoire_spells"`
	GrimoireFollowUp string `yaml:"grimoire_follow_up" json:"grimoire_follow_up"`
	RuneHeader       string `yaml:"rune_header" json:"rune_header"`
	Harmony          string `yaml:"harmony" json:"harmony"`
	Disharmony       string `yaml:"disharmony" json:"disharmony"`
	DisharmonyFollow string `yaml:"disharmony_follow" json:"disharmony_follow"`
	Closing          string `yaml:"closing" json:"closing"`
	ClosingFollow    string `yaml:"closing_follow" json:"closing_follow"`
	Prompt           string `yaml:"prompt" json:"prompt"`
	Initiate         string `yaml:"initiate" json:"initiate"`
	Entering         string `yaml:"entering" json:"entering"`
}

// Tables is the full content set for one intro session.
type Tables struct {
	Boot         []BootEntry `yaml:"boot" json:"boot"`
	Dialogue     []string    `yaml:"dialogue" json:"dialogue"`
	SystemChecks []Check     `yaml:"system_checks" json:"system_checks"`
	Loading      []string    `yaml:"loading" json:"loading"`
	Runes        []Check     `yaml:"runes" json:"runes"`
	Glyphs       []string    `yaml:"glyphs" json:"glyphs"`
	Lines        Lines       `yaml:"lines" json:"lines"`
	Portrait     []string    `yaml:"portrait" json:"portrait"`
}

// FallbackGlyph is used for a rune whose position has no glyph.
const FallbackGlyph = "*"

// Glyph returns the display glyph for the rune at position i.
func (t *Tables) Glyph(i int) string {
	if i >= 0 && i < len(t.Glyphs) && t.Glyphs[i] != "" {
		return t.Glyphs[i]
	}
	return FallbackGlyph
}

// ReadyMessage returns the terminal entry of the loading table.
func (t *Tables) ReadyMessage() string {
	if len(t.Loading) == 0 {
		return ""
	}
	return t.Loading[len(t.Loading)-1]
}

// Clone returns a deep copy so callers can hand tables to a session
// without sharing backing arrays.
func (t *Tables) Clone() *Tables {
	c := *t
	c.Boot = append([]BootEntry(nil), t.Boot...)
	c.Dialogue = append([]string(nil), t.Dialogue...)
	c.SystemChecks = append([]Check(nil), t.SystemChecks...)
	c.Loading = append([]string(nil), t.Loading...)
	c.Runes = append([]Check(nil), t.Runes...)
	c.Glyphs = append([]string(nil), t.Glyphs...)
	c.Portrait = append([]string(nil), t.Portrait...)
	return &c
}
