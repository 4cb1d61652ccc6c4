// Package intro implements the Grimoire intro sequence: a single-threaded
// scene sequencer that walks seven ordered beats, each a small step-indexed
// state machine driven by timers and presentation-completion callbacks.
//
// The sequencer never starts goroutines or timers of its own. Every delay is
// handed to a Clock as a CallbackID, and the host (the bubbletea loop, the
// headless Runner, or a ManualClock in tests) delivers it back through
// Sequencer.Fire on the one goroutine that owns the sequencer. Callbacks are
// owned by the beat that scheduled them and are voided the moment that beat
// is left, so a late delivery is always a no-op.
package intro

import "fmt"

// Beat identifies one top-level stage of the intro narrative.
type Beat int

const (
	Boot Beat = iota
	Introduction
	ProfileInit
	SystemLoad
	Calibration
	FinalPrep
	Complete
)

var beatNames = [...]string{
	Boot:         "boot",
	Introduction: "introduction",
	ProfileInit:  "profile_init",
	SystemLoad:   "system_load",
	Calibration:  "calibration",
	FinalPrep:    "final_prep",
	Complete:     "complete",
}

// Beats lists every beat in narrative order.
var Beats = []Beat{Boot, Introduction, ProfileInit, SystemLoad, Calibration, FinalPrep, Complete}

func (b Beat) String() string {
	if b < Boot || b > Complete {
		return fmt.Sprintf("beat(%d)", int(b))
	}
	return beatNames[b]
}

// Next returns the beat that follows b. Complete is terminal.
func (b Beat) Next() Beat {
	if b >= Complete {
		return Complete
	}
	return b + 1
}

// ParseBeat maps a beat name back to its value.
func ParseBeat(s string) (Beat, error) {
	for i, name := range beatNames {
		if name == s {
			return Beat(i), nil
		}
	}
	return Boot, fmt.Errorf("unknown beat %q", s)
}

// State is the sequencer's position: the active beat and the step within it.
type State struct {
	Beat Beat
	Step int
}

func (s State) String() string {
	return fmt.Sprintf("%s/%d", s.Beat, s.Step)
}
