package intro

import (
	"fmt"
	"unicode/utf8"
)

// dialogueBeat materializes the archmage portrait and then speaks one
// dialogue line per step. An empty line is a pause that leaves the previous
// line on screen.
//
//	step 0      materialize portrait; on completion MaterializeSettle → step
//	step 1..M   line step-1: blank → DialogueBlankPause, text → DialogueHold
//	step M+1    DialogueFinalDelay → advance beat
type dialogueBeat struct {
	h             handle
	lines         []string
	materializing bool
	ready         bool
	current       *TypedLine
}

func newDialogueBeat(h handle) *dialogueBeat {
	return &dialogueBeat{h: h, lines: h.tables().Dialogue}
}

func (b *dialogueBeat) enter(step int) {
	t := b.h.timing()
	m := len(b.lines)
	switch {
	case step == 0:
		b.materializing = true
		b.h.materialize(func() {
			b.materializing = false
			b.ready = true
			b.h.after("dialogue/settle", t.MaterializeSettle, b.h.advanceStep)
		})
	case step <= m:
		text := b.lines[step-1]
		if text == "" {
			b.h.after("dialogue/blank", t.DialogueBlankPause, b.h.advanceStep)
			return
		}
		b.current = &TypedLine{
			Key:     fmt.Sprintf("dialogue/%d", step-1),
			Speaker: b.h.tables().Lines.Speaker,
			Text:    text,
			Speed:   t.DialogueTypeSpeed,
			Cursor:  true,
		}
		b.h.after("dialogue/hold", t.DialogueHold(utf8.RuneCountInString(text)), b.h.advanceStep)
	case step == m+1:
		b.h.after("dialogue/final", t.DialogueFinalDelay, b.h.advanceBeat)
	}
}

func (b *dialogueBeat) view(v *View) {
	dv := &DialogueView{
		Materializing: b.materializing,
		PortraitReady: b.ready,
	}
	if b.current != nil {
		dv.Line = lineRef(*b.current)
	}
	v.Dialogue = dv
}
