package intro

import "time"

// Presenter runs the portrait materialization for beat 2. When the
// animation finishes the host must deliver id through Sequencer.Fire,
// exactly once. The sequencer does not look inside the animation.
type Presenter interface {
	Materialize(id CallbackID)
}

// TimedPresenter treats materialization as a fixed-length animation and
// completes it through the clock. Hosts that draw the portrait from
// elapsed time use this and only render.
type TimedPresenter struct {
	Clock    Clock
	Duration time.Duration
}

func (p TimedPresenter) Materialize(id CallbackID) {
	p.Clock.Schedule(id, p.Duration)
}

// PortraitPhase is the stage of the materialization animation.
type PortraitPhase int

const (
	PortraitHidden PortraitPhase = iota
	PortraitParticles
	PortraitForming
	PortraitVisible
)

func (p PortraitPhase) String() string {
	switch p {
	case PortraitParticles:
		return "particles"
	case PortraitForming:
		return "forming"
	case PortraitVisible:
		return "visible"
	default:
		return "hidden"
	}
}

// PhaseAt maps elapsed time since materialization began onto the portrait
// phases. Particles gather at 1/9 of the total, the form appears at 5/9,
// and the portrait is fully visible at the end.
func PhaseAt(elapsed, total time.Duration) PortraitPhase {
	switch {
	case total <= 0 || elapsed >= total:
		return PortraitVisible
	case elapsed >= total*5/9:
		return PortraitForming
	case elapsed >= total/9:
		return PortraitParticles
	default:
		return PortraitHidden
	}
}
