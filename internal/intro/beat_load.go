package intro

import "fmt"

// loadBeat opens the grimoire status panel and cycles the loading
// messages, each replacing the last.
//
//	step 0      panel, LoadPanelPause → step
//	step 1..L   loading message step-1, SystemCheckDelay → step
//	step L+1    follow-up line, LoadDialogueHold → step
//	step L+2    LoadFinalDelay → advance beat
type loadBeat struct {
	h        handle
	messages []string
	panel    bool
	message  int
	followUp bool
}

func newLoadBeat(h handle) *loadBeat {
	return &loadBeat{h: h, messages: h.tables().Loading, message: -1}
}

func (b *loadBeat) enter(step int) {
	t := b.h.timing()
	l := len(b.messages)
	switch {
	case step == 0:
		b.panel = true
		b.h.after("load/panel", t.LoadPanelPause, b.h.advanceStep)
	case step <= l:
		b.message = step - 1
		b.h.after("load/message", t.SystemCheckDelay, b.h.advanceStep)
	case step == l+1:
		b.followUp = true
		b.h.after("load/follow_up", t.LoadDialogueHold, b.h.advanceStep)
	case step == l+2:
		b.h.after("load/final", t.LoadFinalDelay, b.h.advanceBeat)
	}
}

func (b *loadBeat) view(v *View) {
	lines := b.h.tables().Lines
	t := b.h.timing()
	lv := &LoadView{Panel: b.panel}
	if b.panel {
		lv.Title = lines.GrimoireTitle
		lv.Status = []string{lines.GrimoireStatus, lines.GrimoireVersion, lines.GrimoireSpells}
	}
	if b.message >= 0 {
		lv.Message = &TypedLine{
			Key:   fmt.Sprintf("load/%d", b.message),
			Text:  b.messages[b.message],
			Speed: t.LoadTypeSpeed,
		}
	}
	if b.followUp {
		lv.FollowUp = &TypedLine{
			Key:     "load/follow_up",
			Speaker: lines.Speaker,
			Text:    lines.GrimoireFollowUp,
			Speed:   t.DialogueTypeSpeed,
			Cursor:  true,
		}
	}
	v.Load = lv
}
