package intro

import (
	"time"

	"grimoire/internal/content"
)

// TypedLine is a line handed to a typed-text presenter. Key is stable for
// the lifetime of the line so a presenter can start its animation exactly
// once per line.
type TypedLine struct {
	Key     string
	Speaker string
	// Continued lines belong to the previous speaker and are indented
	// under it.
	Continued bool
	Text      string
	Speed     time.Duration
	Delay     time.Duration
	Cursor    bool
	Instant   bool
}

// BootView is the render snapshot of beat 1.
type BootView struct {
	// Burst is true during the opening static burst, before any entry.
	Burst    bool
	Messages []BootLine
}

// BootLine is a revealed boot log entry.
type BootLine struct {
	TypedLine
	Kind content.BootKind
}

// DialogueView is the render snapshot of beat 2.
type DialogueView struct {
	Materializing bool
	PortraitReady bool
	Line          *TypedLine
}

// ProfileView is the render snapshot of beat 3.
type ProfileView struct {
	Header       *TypedLine
	Checks       []CheckItem
	ShowProgress bool
	Progress     float64
}

// LoadView is the render snapshot of beat 4.
type LoadView struct {
	Panel    bool
	Title    string
	Status   []string
	Message  *TypedLine
	FollowUp *TypedLine
}

// CalibrationView is the render snapshot of beat 5. The counts and the
// progress fraction are derived from Runes when the snapshot is taken.
type CalibrationView struct {
	Header    *TypedLine
	Runes     []RuneItem
	Pass      int
	Fail      int
	Completed int
	Progress  float64
	Dialogue  []TypedLine
}

// FinalView is the render snapshot of beat 6.
type FinalView struct {
	Message    []TypedLine
	ShowPrompt bool
	Prompt     string
	Banner     *TypedLine
}

// CompleteView is the render snapshot of the terminal beat.
type CompleteView struct {
	Banner  TypedLine
	Skipped bool
}

// View is everything a host needs to draw one frame. Exactly one of the
// per-beat snapshots is set, matching State.Beat.
type View struct {
	State   State
	Ambient Ambient

	Boot        *BootView
	Dialogue    *DialogueView
	Profile     *ProfileView
	Load        *LoadView
	Calibration *CalibrationView
	Final       *FinalView
	Complete    *CompleteView
}

// Tally counts resolved runes.
func Tally(runes []RuneItem) (pass, fail int) {
	for _, r := range runes {
		switch r.Status {
		case RunePass:
			pass++
		case RuneFail:
			fail++
		}
	}
	return pass, fail
}

func lineRef(l TypedLine) *TypedLine {
	return &l
}
