package intro

import (
	"fmt"

	"grimoire/internal/content"
)

// bootBeat reveals the boot log one entry per step after a static burst.
//
//	step 0      static burst, StaticBurst → step
//	step 1..N   reveal entry step-1 after BootReveal, then hold the
//	            entry pause (blank or message) → step
//	step N+1    BootFinalDelay → advance beat
type bootBeat struct {
	h        handle
	entries  []content.BootEntry
	burst    bool
	revealed []BootLine
}

func newBootBeat(h handle) *bootBeat {
	return &bootBeat{h: h, entries: h.tables().Boot}
}

func (b *bootBeat) enter(step int) {
	t := b.h.timing()
	n := len(b.entries)
	switch {
	case step == 0:
		b.burst = true
		b.h.after("boot/burst", t.StaticBurst, func() {
			b.burst = false
			b.h.advanceStep()
		})
	case step <= n:
		entry := b.entries[step-1]
		b.h.after("boot/reveal", t.BootReveal, func() {
			b.reveal(step-1, entry)
			pause := t.BootMessagePause
			if entry.IsBlank() {
				pause = t.BootBlankPause
			}
			b.h.after("boot/pause", pause, b.h.advanceStep)
		})
	case step == n+1:
		b.h.after("boot/final", t.BootFinalDelay, b.h.advanceBeat)
	}
}

func (b *bootBeat) reveal(i int, entry content.BootEntry) {
	b.revealed = append(b.revealed, BootLine{
		TypedLine: TypedLine{
			Key:   fmt.Sprintf("boot/%d", i),
			Text:  entry.Text,
			Speed: b.h.timing().BootTypeSpeed,
		},
		Kind: entry.Kind,
	})
}

func (b *bootBeat) view(v *View) {
	msgs := append([]BootLine(nil), b.revealed...)
	if n := len(msgs); n > 0 {
		msgs[n-1].Cursor = true
	}
	v.Boot = &BootView{
		Burst:    b.burst,
		Messages: msgs,
	}
}
