package intro

// CheckStatus is the state of one profile system check.
type CheckStatus string

const (
	CheckPending  CheckStatus = "pending"
	CheckChecking CheckStatus = "checking"
	CheckOK       CheckStatus = "ok"
	// CheckWarn is reserved for a degraded check. No transition assigns it
	// today; renderers still know how to draw it.
	CheckWarn CheckStatus = "warn"
)

// Label is the fixed-width status tag drawn next to a check.
func (s CheckStatus) Label() string {
	switch s {
	case CheckChecking:
		return "[....]"
	case CheckOK:
		return "[ OK ]"
	case CheckWarn:
		return "[WARN]"
	default:
		return "[    ]"
	}
}

// RuneStatus is the state of one calibration rune. Pass and fail are final.
type RuneStatus string

const (
	RunePending RuneStatus = "pending"
	RuneTesting RuneStatus = "testing"
	RunePass    RuneStatus = "pass"
	RuneFail    RuneStatus = "fail"
)

// Resolved reports whether the rune has reached pass or fail.
func (s RuneStatus) Resolved() bool {
	return s == RunePass || s == RuneFail
}

// Label is the status tag drawn next to a rune.
func (s RuneStatus) Label() string {
	switch s {
	case RuneTesting:
		return "[......] TESTING"
	case RunePass:
		return "[ALIGNED]"
	case RuneFail:
		return "[FAILED]"
	default:
		return "[------]"
	}
}

// CheckItem is a system check as rendered by beat 3.
type CheckItem struct {
	Name    string
	Display string
	Status  CheckStatus
}

// RuneItem is a calibration rune as rendered by beat 5.
type RuneItem struct {
	Name    string
	Display string
	Glyph   string
	Status  RuneStatus
}
