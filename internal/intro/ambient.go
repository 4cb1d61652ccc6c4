package intro

// Ambient is the cosmetic CRT state shared with the effects layer. It
// reacts to sequencer lifecycle events and never gates progress.
type Ambient struct {
	Powered         bool
	StaticIntensity float64
	GlitchChance    float64
	FloatingRunes   bool
}

const (
	initialStatic    = 0.08
	initialGlitch    = 0.01
	poweredStatic    = 0.03
	transitionStatic = 0.3
	transitionGlitch = 0.15
)

func initialAmbient() Ambient {
	return Ambient{
		StaticIntensity: initialStatic,
		GlitchChance:    initialGlitch,
	}
}

func (a *Ambient) powerOn() {
	a.Powered = true
	a.StaticIntensity = poweredStatic
}

func (a *Ambient) transition() {
	a.GlitchChance = transitionGlitch
	a.StaticIntensity = transitionStatic
}

// withBeat fills in the fields derived from the active beat.
func (a Ambient) withBeat(b Beat) Ambient {
	a.FloatingRunes = b >= ProfileInit
	return a
}
