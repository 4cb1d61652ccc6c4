package intro

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Runner hosts a Sequencer on real time. One goroutine (the one inside
// Run) owns the sequencer; timers and Skip requests reach it as messages.
type Runner struct {
	seq *Sequencer
	log *zap.Logger

	fired chan CallbackID
	skip  chan struct{}
	quit  chan struct{}
	done  chan struct{}

	// timers is only touched from the Run goroutine.
	timers map[CallbackID]*time.Timer

	onFrame  func(View)
	quitOnce sync.Once
	doneOnce sync.Once
}

// RunnerOption customises a Runner.
type RunnerOption func(*Runner)

// WithFrames registers fn to receive a view after every delivered event.
// fn runs on the Run goroutine and must not block for long.
func WithFrames(fn func(View)) RunnerOption {
	return func(r *Runner) { r.onFrame = fn }
}

// NewRunner builds a sequencer on a real-time clock. opts.Clock is
// replaced by the runner.
func NewRunner(opts Options, ropts ...RunnerOption) *Runner {
	r := &Runner{
		fired:  make(chan CallbackID, 16),
		skip:   make(chan struct{}, 1),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
		timers: make(map[CallbackID]*time.Timer),
		log:    opts.Logger,
	}
	if r.log == nil {
		r.log = zap.NewNop()
	}
	for _, o := range ropts {
		o(r)
	}

	userDone := opts.OnComplete
	opts.OnComplete = func() {
		if userDone != nil {
			userDone()
		}
		r.doneOnce.Do(func() { close(r.done) })
	}
	opts.Clock = r
	r.seq = New(opts)
	return r
}

// Sequencer exposes the hosted sequencer. Only read it after Run returns.
func (r *Runner) Sequencer() *Sequencer {
	return r.seq
}

// Schedule implements Clock.
func (r *Runner) Schedule(id CallbackID, d time.Duration) {
	r.timers[id] = time.AfterFunc(d, func() {
		select {
		case r.fired <- id:
		case <-r.quit:
		}
	})
}

// Cancel implements Clock.
func (r *Runner) Cancel(id CallbackID) {
	if t, ok := r.timers[id]; ok {
		t.Stop()
		delete(r.timers, id)
	}
}

// Skip asks the sequencer to jump to Complete. Safe from any goroutine.
func (r *Runner) Skip() {
	select {
	case r.skip <- struct{}{}:
	default:
	}
}

// Run starts the sequence and blocks until OnComplete has run or ctx is
// cancelled. All timers are stopped before it returns.
func (r *Runner) Run(ctx context.Context) error {
	defer r.shutdown()

	r.seq.Start()
	r.frame()
	for {
		select {
		case <-ctx.Done():
			r.log.Info("intro run cancelled", zap.Stringer("state", r.seq.State()))
			return ctx.Err()
		case <-r.done:
			return nil
		case id := <-r.fired:
			delete(r.timers, id)
			r.seq.Fire(id)
			r.frame()
		case <-r.skip:
			r.seq.Skip()
			r.frame()
		}
	}
}

func (r *Runner) frame() {
	if r.onFrame != nil {
		r.onFrame(r.seq.View())
	}
}

func (r *Runner) shutdown() {
	r.quitOnce.Do(func() { close(r.quit) })
	for id, t := range r.timers {
		t.Stop()
		delete(r.timers, id)
	}
}
