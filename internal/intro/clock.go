package intro

import (
	"sort"
	"time"
)

// Clock schedules callback delivery. After d elapses the host must call
// Sequencer.Fire(id) on the goroutine that owns the sequencer. Cancel asks
// the host to drop a delivery; hosts that cannot retract a timer may still
// deliver it, and the sequencer ignores the stale id.
type Clock interface {
	Schedule(id CallbackID, d time.Duration)
	Cancel(id CallbackID)
}

type manualTimer struct {
	id  CallbackID
	at  time.Duration
	seq uint64
}

// ManualClock is a deterministic Clock for tests and offline rendering.
// Time only moves when Advance or Next is called; due timers are delivered
// in deadline order (ties in scheduling order) to the attached target.
type ManualClock struct {
	now    time.Duration
	seq    uint64
	timers []manualTimer
	target func(CallbackID)
}

// NewManualClock creates a clock at t=0.
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

// Attach sets the delivery target, normally Sequencer.Fire.
func (c *ManualClock) Attach(target func(CallbackID)) {
	c.target = target
}

func (c *ManualClock) Schedule(id CallbackID, d time.Duration) {
	if d < 0 {
		d = 0
	}
	c.seq++
	c.timers = append(c.timers, manualTimer{id: id, at: c.now + d, seq: c.seq})
}

func (c *ManualClock) Cancel(id CallbackID) {
	for i, t := range c.timers {
		if t.id == id {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return
		}
	}
}

// Now is the elapsed virtual time.
func (c *ManualClock) Now() time.Duration {
	return c.now
}

// Pending is the number of scheduled, undelivered timers.
func (c *ManualClock) Pending() int {
	return len(c.timers)
}

func (c *ManualClock) earliest() (int, bool) {
	if len(c.timers) == 0 {
		return 0, false
	}
	idx := 0
	for i, t := range c.timers {
		best := c.timers[idx]
		if t.at < best.at || (t.at == best.at && t.seq < best.seq) {
			idx = i
		}
	}
	return idx, true
}

// Next jumps to the earliest timer and delivers it. It returns false when
// nothing is scheduled.
func (c *ManualClock) Next() bool {
	idx, ok := c.earliest()
	if !ok {
		return false
	}
	t := c.timers[idx]
	c.timers = append(c.timers[:idx], c.timers[idx+1:]...)
	if t.at > c.now {
		c.now = t.at
	}
	if c.target != nil {
		c.target(t.id)
	}
	return true
}

// Advance moves time forward by d, delivering every timer that comes due,
// including ones scheduled by earlier deliveries within the window.
func (c *ManualClock) Advance(d time.Duration) {
	deadline := c.now + d
	for {
		idx, ok := c.earliest()
		if !ok || c.timers[idx].at > deadline {
			break
		}
		c.Next()
	}
	c.now = deadline
}

// RunUntilIdle delivers timers until none remain or limit deliveries have
// happened. It returns the number delivered.
func (c *ManualClock) RunUntilIdle(limit int) int {
	n := 0
	for n < limit && c.Next() {
		n++
	}
	return n
}

// Deadlines returns the pending deadlines in delivery order.
func (c *ManualClock) Deadlines() []time.Duration {
	ts := append([]manualTimer(nil), c.timers...)
	sort.Slice(ts, func(i, j int) bool {
		if ts[i].at == ts[j].at {
			return ts[i].seq < ts[j].seq
		}
		return ts[i].at < ts[j].at
	})
	out := make([]time.Duration, len(ts))
	for i, t := range ts {
		out[i] = t.at
	}
	return out
}
