package intro

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimoire/internal/content"
)

// fixedRand replays draws in order, cycling when exhausted.
type fixedRand struct {
	draws []float64
	n     int
}

func (f *fixedRand) Float64() float64 {
	v := f.draws[f.n%len(f.draws)]
	f.n++
	return v
}

type harness struct {
	seq       *Sequencer
	clock     *ManualClock
	events    []Event
	completed int
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	h := &harness{clock: NewManualClock()}
	opts.Clock = h.clock
	opts.OnComplete = func() { h.completed++ }
	opts.Observer = func(e Event) { h.events = append(h.events, e) }
	if opts.Random == nil {
		opts.Random = &fixedRand{draws: []float64{0.1}}
	}
	h.seq = New(opts)
	h.clock.Attach(h.seq.Fire)
	return h
}

// runUntil delivers timers until cond holds, failing if the clock idles.
func (h *harness) runUntil(t *testing.T, cond func(State) bool) {
	t.Helper()
	for i := 0; i < 10_000; i++ {
		if cond(h.seq.State()) {
			return
		}
		if !h.clock.Next() {
			t.Fatalf("clock idle before condition held, state %s", h.seq.State())
		}
	}
	t.Fatalf("condition never held, state %s", h.seq.State())
}

func at(b Beat, step int) func(State) bool {
	return func(s State) bool { return s.Beat == b && s.Step == step }
}

func (h *harness) beats() []Beat {
	var out []Beat
	for _, e := range h.events {
		if e.Kind == EventBeat {
			out = append(out, e.State.Beat)
		}
	}
	return out
}

func TestSequencer_BeatOrder(t *testing.T) {
	h := newHarness(t, Options{})
	h.seq.Start()
	h.clock.RunUntilIdle(10_000)

	assert.Equal(t, Beats, h.beats())
	assert.Equal(t, 1, h.completed)
	assert.True(t, h.seq.Done())
	assert.False(t, h.seq.Skipped())
	assert.Zero(t, h.seq.Pending())
	assert.Zero(t, h.clock.Pending())
}

func TestSequencer_StepsIncrementAndReset(t *testing.T) {
	h := newHarness(t, Options{})
	h.seq.Start()
	h.clock.RunUntilIdle(10_000)

	var prev State
	for i, e := range h.events {
		switch e.Kind {
		case EventBeat:
			assert.Zero(t, e.State.Step, "beat event %d", i)
		case EventStep:
			assert.Equal(t, prev.Beat, e.State.Beat, "step event %d", i)
			assert.Equal(t, prev.Step+1, e.State.Step, "step event %d", i)
		default:
			continue
		}
		prev = e.State
	}
}

func TestSequencer_StepCounts(t *testing.T) {
	tables := content.Default()
	h := newHarness(t, Options{})
	h.seq.Start()
	h.clock.RunUntilIdle(10_000)

	last := map[Beat]int{}
	for _, e := range h.events {
		if e.Kind == EventStep {
			last[e.State.Beat] = e.State.Step
		}
	}
	assert.Equal(t, len(tables.Boot)+1, last[Boot])
	assert.Equal(t, len(tables.Dialogue)+1, last[Introduction])
	assert.Equal(t, len(tables.SystemChecks)+1, last[ProfileInit])
	assert.Equal(t, len(tables.Loading)+2, last[SystemLoad])
	assert.Equal(t, 2*len(tables.Runes)+2, last[Calibration])
	assert.Equal(t, 3, last[FinalPrep])
}

func TestSequencer_SkipFromEveryBeat(t *testing.T) {
	for _, b := range Beats[:len(Beats)-1] {
		t.Run(b.String(), func(t *testing.T) {
			h := newHarness(t, Options{})
			h.seq.Start()
			h.runUntil(t, at(b, 1))

			h.seq.Skip()
			assert.Equal(t, State{Beat: Complete}, h.seq.State())
			assert.True(t, h.seq.Skipped())
			assert.Equal(t, 1, h.seq.Pending(), "only the completion callback remains")
			assert.Equal(t, 1, h.clock.Pending())

			h.clock.Advance(h.seq.Timing().TransitionDelay - time.Millisecond)
			assert.Zero(t, h.completed)
			h.clock.Advance(time.Millisecond)
			assert.Equal(t, 1, h.completed)

			h.seq.Skip()
			h.clock.RunUntilIdle(100)
			assert.Equal(t, 1, h.completed)
		})
	}
}

func TestSequencer_SkipBeforeAnyTimer(t *testing.T) {
	h := newHarness(t, Options{})
	h.seq.Start()
	h.seq.Skip()
	h.seq.Skip()

	n := h.clock.RunUntilIdle(100)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, h.completed)
	assert.Equal(t, []Beat{Boot, Complete}, h.beats())
}

func TestSequencer_ConstructedSkipped(t *testing.T) {
	h := newHarness(t, Options{Skip: true})
	assert.Equal(t, State{Beat: Complete}, h.seq.State())

	h.seq.Start()
	assert.Empty(t, h.beats(), "no beat is ever mounted")
	assert.Equal(t, []time.Duration{h.seq.Timing().TransitionDelay}, h.clock.Deadlines())

	h.clock.RunUntilIdle(100)
	assert.Equal(t, 1, h.completed)

	v := h.seq.View()
	require.NotNil(t, v.Complete)
	assert.True(t, v.Complete.Skipped)
	assert.True(t, v.Complete.Banner.Instant)
	assert.Nil(t, v.Boot)
}

func TestSequencer_CompletionTiming(t *testing.T) {
	h := newHarness(t, Options{})
	h.seq.Start()
	h.runUntil(t, func(s State) bool { return s.Beat == Complete })
	require.Zero(t, h.completed)

	entered := h.clock.Now()
	h.clock.RunUntilIdle(100)
	assert.Equal(t, 1, h.completed)
	assert.Equal(t, entered+h.seq.Timing().TransitionDelay, h.clock.Now())
}

func TestSequencer_AdvanceBeatFromCompleteIsNoop(t *testing.T) {
	h := newHarness(t, Options{Skip: true})
	h.seq.Start()
	h.seq.AdvanceBeat()
	h.seq.AdvanceStep()
	assert.Equal(t, State{Beat: Complete}, h.seq.State())

	h.clock.RunUntilIdle(100)
	h.seq.AdvanceBeat()
	assert.Equal(t, 1, h.completed)
}

func TestSequencer_StartTwice(t *testing.T) {
	h := newHarness(t, Options{})
	h.seq.Start()
	h.seq.Start()
	assert.Equal(t, []Beat{Boot}, h.beats())
}

func TestSequencer_AdvanceBeatVoidsOldCallbacks(t *testing.T) {
	h := newHarness(t, Options{})
	h.seq.Start()
	h.runUntil(t, at(Boot, 2))
	require.Positive(t, h.seq.Pending())

	h.seq.AdvanceBeat()
	assert.Equal(t, State{Beat: Introduction}, h.seq.State())
	mark := len(h.events)

	h.runUntil(t, at(Introduction, 1))
	for _, e := range h.events[mark:] {
		assert.NotEqual(t, Boot, e.State.Beat, "boot callback survived the beat change: %+v", e)
	}
	assert.Nil(t, h.seq.View().Boot)
}

// deafClock never retracts a timer, like a host that cannot cancel ticks.
type deafClock struct {
	ids []CallbackID
}

func (c *deafClock) Schedule(id CallbackID, _ time.Duration) { c.ids = append(c.ids, id) }
func (c *deafClock) Cancel(CallbackID)                       {}

func TestSequencer_StaleCallbacksAfterSkipAreInert(t *testing.T) {
	clock := &deafClock{}
	var events []Event
	completed := 0
	seq := New(Options{
		Clock:      clock,
		Random:     &fixedRand{draws: []float64{0.1}},
		OnComplete: func() { completed++ },
		Observer:   func(e Event) { events = append(events, e) },
	})
	seq.Start()

	// Drive into the middle of the grimoire load.
	for i := 0; i < 10_000; i++ {
		s := seq.State()
		if s.Beat == SystemLoad && s.Step == 3 {
			break
		}
		require.NotEmpty(t, clock.ids)
		id := clock.ids[0]
		clock.ids = clock.ids[1:]
		seq.Fire(id)
	}
	require.Equal(t, State{Beat: SystemLoad, Step: 3}, seq.State())
	loadView := seq.View().Load
	require.NotNil(t, loadView)

	stale := append([]CallbackID(nil), clock.ids...)
	require.NotEmpty(t, stale)
	clock.ids = nil

	seq.Skip()
	mark := len(events)
	for _, id := range stale {
		seq.Fire(id)
		seq.Fire(id)
	}
	assert.Equal(t, State{Beat: Complete}, seq.State())
	assert.Len(t, events, mark, "stale deliveries must not emit anything")
	assert.Nil(t, seq.View().Load)

	require.Len(t, clock.ids, 1)
	seq.Fire(clock.ids[0])
	assert.Equal(t, 1, completed)
}

func TestSequencer_PowerOnAndTransitionAmbient(t *testing.T) {
	h := newHarness(t, Options{})
	assert.Equal(t, Ambient{StaticIntensity: 0.08, GlitchChance: 0.01}, h.seq.Ambient())

	h.seq.Start()
	h.clock.Advance(h.seq.Timing().PowerOnWarmup)
	a := h.seq.Ambient()
	assert.True(t, a.Powered)
	assert.Equal(t, 0.03, a.StaticIntensity)
	assert.Equal(t, 0.01, a.GlitchChance)
	assert.False(t, a.FloatingRunes)

	h.runUntil(t, at(ProfileInit, 0))
	assert.True(t, h.seq.Ambient().FloatingRunes)

	h.seq.Skip()
	a = h.seq.Ambient()
	assert.Equal(t, 0.3, a.StaticIntensity)
	assert.Equal(t, 0.15, a.GlitchChance)
	assert.True(t, a.FloatingRunes)
}

func TestSequencer_SkipBeforeWarmupCancelsPowerOn(t *testing.T) {
	h := newHarness(t, Options{})
	h.seq.Start()
	h.seq.Skip()
	h.clock.RunUntilIdle(100)
	assert.False(t, h.seq.Ambient().Powered)
}

func TestSequencer_PassProbability(t *testing.T) {
	tests := []struct {
		name string
		in   *float64
		want float64
	}{
		{"default", nil, DefaultPassProbability},
		{"zero", ptr(0.0), 0},
		{"custom", ptr(0.4), 0.4},
		{"one", ptr(1.0), 1},
		{"negative", ptr(-1.0), 0},
		{"above one", ptr(2.0), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(Options{Clock: NewManualClock(), PassProbability: tt.in})
			assert.Equal(t, tt.want, s.passP)
		})
	}
}

func ptr[T any](v T) *T { return &v }

func TestSequencer_ContentIsCopied(t *testing.T) {
	tables := content.Default()
	s := New(Options{Clock: NewManualClock(), Content: tables})
	tables.Boot[0].Text = "mutated"
	assert.NotEqual(t, "mutated", s.Content().Boot[0].Text)
}

func TestSequencer_CompleteView(t *testing.T) {
	h := newHarness(t, Options{})
	h.seq.Start()
	h.runUntil(t, func(s State) bool { return s.Beat == Complete })

	want := &CompleteView{Banner: TypedLine{
		Key:    "complete/banner",
		Text:   ">>> ENTERING THE GRIMOIRE...",
		Speed:  80 * time.Millisecond,
		Cursor: true,
	}}
	if diff := cmp.Diff(want, h.seq.View().Complete); diff != "" {
		t.Errorf("complete view mismatch (-want +got):\n%s", diff)
	}
}
