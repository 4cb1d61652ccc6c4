package ui

import (
	"time"

	"grimoire/internal/intro"

	tea "github.com/charmbracelet/bubbletea"
)

// fireMsg delivers a sequencer callback on the bubbletea loop.
type fireMsg struct {
	id intro.CallbackID
}

// teaClock turns sequencer timers into tea.Tick commands. bubbletea cannot
// retract a tick once issued, so Cancel only forgets the id; the tick still
// arrives and is dropped in take.
type teaClock struct {
	now     func() time.Duration
	// live holds the deadline of every id still wanted.
	live    map[intro.CallbackID]time.Duration
	pending []tea.Cmd
}

func newTeaClock(now func() time.Duration) *teaClock {
	return &teaClock{now: now, live: make(map[intro.CallbackID]time.Duration)}
}

func (c *teaClock) Schedule(id intro.CallbackID, d time.Duration) {
	c.live[id] = c.now() + d
	c.pending = append(c.pending, tea.Tick(d, func(time.Time) tea.Msg {
		return fireMsg{id: id}
	}))
}

func (c *teaClock) Cancel(id intro.CallbackID) {
	delete(c.live, id)
}

// take reports whether id is still wanted and forgets it.
func (c *teaClock) take(id intro.CallbackID) bool {
	if _, ok := c.live[id]; !ok {
		return false
	}
	delete(c.live, id)
	return true
}

// drain returns the ticks scheduled since the last drain.
func (c *teaClock) drain() tea.Cmd {
	if len(c.pending) == 0 {
		return nil
	}
	cmds := c.pending
	c.pending = nil
	return tea.Batch(cmds...)
}

// portraitPresenter schedules materialization like intro.TimedPresenter and
// notes when it began so the portrait can be drawn from elapsed time.
type portraitPresenter struct {
	clock    intro.Clock
	duration time.Duration
	now      func() time.Duration
	began    *time.Duration
}

func (p portraitPresenter) Materialize(id intro.CallbackID) {
	*p.began = p.now()
	p.clock.Schedule(id, p.duration)
}
