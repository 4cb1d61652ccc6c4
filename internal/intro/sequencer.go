package intro

import (
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"grimoire/internal/content"
)

// DefaultPassProbability is the chance a calibration rune aligns.
const DefaultPassProbability = 0.65

// RandomSource supplies uniform draws in [0, 1). *rand.Rand satisfies it;
// tests inject fixed sequences to pin calibration outcomes.
type RandomSource interface {
	Float64() float64
}

// EventKind classifies sequencer notifications.
type EventKind int

const (
	EventBeat EventKind = iota
	EventStep
	EventPowerOn
	EventSkip
	EventComplete
)

func (k EventKind) String() string {
	switch k {
	case EventBeat:
		return "beat"
	case EventStep:
		return "step"
	case EventPowerOn:
		return "power_on"
	case EventSkip:
		return "skip"
	case EventComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Event is delivered to Options.Observer after each transition.
type Event struct {
	Kind  EventKind
	State State
}

// Options configures a Sequencer.
type Options struct {
	// OnComplete runs once, TransitionDelay after the sequence reaches
	// Complete (naturally or through Skip).
	OnComplete func()
	// Skip starts the sequencer directly in Complete.
	Skip bool

	// Timing defaults to DefaultTiming.
	Timing *TimingTable
	// Content defaults to content.Default.
	Content *content.Tables
	// Clock is required.
	Clock Clock
	// Presenter defaults to a TimedPresenter on Clock.
	Presenter Presenter
	// Random defaults to a time-seeded PCG.
	Random RandomSource
	// PassProbability of each calibration rune. Nil selects
	// DefaultPassProbability; values are clamped to [0, 1].
	PassProbability *float64

	Logger   *zap.Logger
	Observer func(Event)
}

// Sequencer owns narrative progress: the active beat, the step within it,
// and every callback the active beat has outstanding. It is not safe for
// concurrent use; drive it from a single goroutine.
type Sequencer struct {
	timing    TimingTable
	tables    *content.Tables
	clock     Clock
	presenter Presenter
	rng       RandomSource
	passP     float64
	log       *zap.Logger
	observer  func(Event)

	onComplete func()

	state   State
	epoch   int
	beat    controller
	ambient Ambient
	reg     registry

	started   bool
	skipped   bool
	completed bool
}

// New builds a sequencer. With Options.Skip the sequencer is already in
// Complete when New returns; Start then schedules the completion callback.
func New(opts Options) *Sequencer {
	timing := DefaultTiming()
	if opts.Timing != nil {
		timing = *opts.Timing
	}
	tables := opts.Content
	if tables == nil {
		tables = content.Default()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	rng := opts.Random
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	p := DefaultPassProbability
	if opts.PassProbability != nil {
		p = *opts.PassProbability
	}
	switch {
	case p < 0:
		p = 0
	case p > 1:
		p = 1
	}

	s := &Sequencer{
		timing:     timing,
		tables:     tables.Clone(),
		clock:      opts.Clock,
		presenter:  opts.Presenter,
		rng:        rng,
		passP:      p,
		log:        log,
		observer:   opts.Observer,
		onComplete: opts.OnComplete,
		ambient:    initialAmbient(),
		reg:        newRegistry(),
	}
	if s.presenter == nil {
		s.presenter = TimedPresenter{Clock: opts.Clock, Duration: timing.Materialize}
	}
	if opts.Skip {
		s.skipped = true
		s.state = State{Beat: Complete}
		s.ambient.transition()
	}
	return s
}

// Start mounts the first beat and schedules the CRT warm-up. A skipped
// sequencer only schedules its completion. Calling Start again is a no-op.
func (s *Sequencer) Start() {
	if s.started {
		return
	}
	s.started = true

	if s.state.Beat == Complete {
		s.log.Info("intro skipped at start")
		s.scheduleCompletion()
		return
	}

	s.schedule(ambientOwner, "power_on", s.timing.PowerOnWarmup, s.PowerOn)
	s.mount(Boot)
}

// State returns the current beat and step.
func (s *Sequencer) State() State {
	return s.state
}

// Ambient returns the current CRT effect parameters.
func (s *Sequencer) Ambient() Ambient {
	return s.ambient.withBeat(s.state.Beat)
}

// Skipped reports whether the sequence was cut short by Skip.
func (s *Sequencer) Skipped() bool {
	return s.skipped
}

// Done reports whether OnComplete has run.
func (s *Sequencer) Done() bool {
	return s.completed
}

// Pending is the number of outstanding callbacks.
func (s *Sequencer) Pending() int {
	return s.reg.pending()
}

// Timing returns the sequencer's pacing table.
func (s *Sequencer) Timing() TimingTable {
	return s.timing
}

// Content returns the session's tables.
func (s *Sequencer) Content() *content.Tables {
	return s.tables
}

// AdvanceBeat moves to the next beat and resets the step to zero. Every
// callback of the beat being left is voided. Advancing out of FinalPrep
// enters Complete; from Complete it does nothing.
func (s *Sequencer) AdvanceBeat() {
	if s.state.Beat == Complete {
		s.log.Warn("advance past terminal beat ignored", zap.Stringer("state", s.state))
		return
	}
	next := s.state.Beat.Next()
	if next == Complete {
		s.finish()
		return
	}
	s.mount(next)
}

// AdvanceStep moves the active beat to its next step.
func (s *Sequencer) AdvanceStep() {
	if s.state.Beat == Complete || s.beat == nil {
		s.log.Debug("advance step without active beat ignored", zap.Stringer("state", s.state))
		return
	}
	s.state.Step++
	s.log.Debug("step", zap.Stringer("state", s.state))
	s.emit(EventStep)
	s.beat.enter(s.state.Step)
}

// Skip jumps straight to Complete, voiding every outstanding callback, and
// schedules OnComplete after TransitionDelay. Once Complete it does nothing.
func (s *Sequencer) Skip() {
	if s.state.Beat == Complete {
		return
	}
	dropped := s.dropAll()
	s.log.Info("intro skipped",
		zap.Stringer("from", s.state),
		zap.Int("cancelled", dropped))

	s.skipped = true
	s.epoch++
	s.beat = nil
	s.state = State{Beat: Complete}
	s.ambient.transition()
	s.emit(EventSkip)
	s.emit(EventBeat)
	if s.started {
		s.scheduleCompletion()
	}
}

// PowerOn marks the end of the CRT warm-up and lowers the static.
func (s *Sequencer) PowerOn() {
	if s.ambient.Powered {
		return
	}
	s.ambient.powerOn()
	s.emit(EventPowerOn)
}

// Fire delivers a timer or presentation completion. Ids that were voided
// or already delivered are ignored.
func (s *Sequencer) Fire(id CallbackID) {
	cb, ok := s.reg.take(id)
	if !ok {
		s.log.Debug("stale callback dropped", zap.Uint64("id", uint64(id)))
		return
	}
	if cb.owner != ambientOwner && cb.owner != s.epoch {
		s.log.Debug("callback from retired beat dropped",
			zap.Uint64("id", uint64(id)),
			zap.String("label", cb.label))
		return
	}
	cb.fn()
}

// Resolve reports that a presentation started through Presenter finished.
// It is Fire under the name presenters use.
func (s *Sequencer) Resolve(id CallbackID) {
	s.Fire(id)
}

// View snapshots everything needed to draw the current frame.
func (s *Sequencer) View() View {
	v := View{State: s.state, Ambient: s.Ambient()}
	if s.state.Beat == Complete {
		v.Complete = &CompleteView{
			Banner: TypedLine{
				Key:     "complete/banner",
				Text:    s.tables.Lines.Entering,
				Speed:   s.timing.CompleteTypeSpeed,
				Cursor:  true,
				Instant: s.skipped,
			},
			Skipped: s.skipped,
		}
		return v
	}
	if s.beat != nil {
		s.beat.view(&v)
	}
	return v
}

func (s *Sequencer) mount(b Beat) {
	if dropped := s.reg.dropOwner(s.epoch); len(dropped) > 0 {
		s.cancel(dropped)
	}
	s.epoch++
	s.state = State{Beat: b}
	s.beat = s.newController(b, handle{s: s, epoch: s.epoch})
	s.log.Info("beat", zap.Stringer("beat", b))
	s.emit(EventBeat)
	s.beat.enter(0)
}

// finish is the completion handler: the natural way into Complete.
func (s *Sequencer) finish() {
	if s.state.Beat == Complete {
		return
	}
	if dropped := s.reg.dropOwner(s.epoch); len(dropped) > 0 {
		s.cancel(dropped)
	}
	s.epoch++
	s.beat = nil
	s.state = State{Beat: Complete}
	s.ambient.transition()
	s.log.Info("beat", zap.Stringer("beat", Complete))
	s.emit(EventBeat)
	s.scheduleCompletion()
}

func (s *Sequencer) scheduleCompletion() {
	s.schedule(s.epoch, "complete", s.timing.TransitionDelay, func() {
		if s.completed {
			return
		}
		s.completed = true
		s.log.Info("intro complete", zap.Bool("skipped", s.skipped))
		s.emit(EventComplete)
		if s.onComplete != nil {
			s.onComplete()
		}
	})
}

func (s *Sequencer) schedule(owner int, label string, d time.Duration, fn func()) CallbackID {
	id := s.reg.add(owner, label, fn)
	s.clock.Schedule(id, d)
	return id
}

func (s *Sequencer) dropAll() int {
	ids := s.reg.dropAll()
	s.cancel(ids)
	return len(ids)
}

func (s *Sequencer) cancel(ids []CallbackID) {
	for _, id := range ids {
		s.clock.Cancel(id)
	}
}

func (s *Sequencer) emit(kind EventKind) {
	if s.observer != nil {
		s.observer(Event{Kind: kind, State: s.state})
	}
}

func (s *Sequencer) newController(b Beat, h handle) controller {
	switch b {
	case Boot:
		return newBootBeat(h)
	case Introduction:
		return newDialogueBeat(h)
	case ProfileInit:
		return newProfileBeat(h)
	case SystemLoad:
		return newLoadBeat(h)
	case Calibration:
		return newCalibrationBeat(h)
	case FinalPrep:
		return newFinalBeat(h)
	}
	return nil
}

// controller is one beat's sub-state machine. enter runs on every step
// entry (including step 0 at mount) and schedules that step's effects.
type controller interface {
	enter(step int)
	view(v *View)
}

// handle is a beat's capability to act on the sequencer. It is bound to
// the epoch the beat was mounted in, so a handle retained past its beat
// cannot schedule, advance, or finish anything.
type handle struct {
	s     *Sequencer
	epoch int
}

func (h handle) live() bool {
	return h.s.epoch == h.epoch && h.s.state.Beat != Complete
}

func (h handle) timing() TimingTable { return h.s.timing }

func (h handle) tables() *content.Tables { return h.s.tables }

func (h handle) after(label string, d time.Duration, fn func()) {
	if !h.live() {
		return
	}
	h.s.schedule(h.epoch, label, d, fn)
}

func (h handle) advanceStep() {
	if h.live() {
		h.s.AdvanceStep()
	}
}

func (h handle) advanceBeat() {
	if h.live() {
		h.s.AdvanceBeat()
	}
}

func (h handle) finish() {
	if h.live() {
		h.s.finish()
	}
}

// materialize asks the presenter for the portrait animation and runs fn
// when it reports back.
func (h handle) materialize(fn func()) {
	if !h.live() {
		return
	}
	id := h.s.reg.add(h.epoch, "materialize", fn)
	h.s.presenter.Materialize(id)
}

// roll is one Bernoulli trial at the configured pass probability.
func (h handle) roll() bool {
	return h.s.rng.Float64() < h.s.passP
}
