package intro

// finalBeat closes the narrative and hands off to completion.
//
//	step 0   closing lines (second one delayed), FinalMessageHold → step
//	step 1   prompt placeholder, FinalCommandHold → step
//	step 2   initiating banner, FinalBannerHold → step
//	step 3   FinalHandoffDelay → completion handler
//
// The last step calls the completion handler rather than advancing, so the
// sequencer's completion path owns the move into Complete.
type finalBeat struct {
	h       handle
	message bool
	prompt  bool
	banner  bool
}

func newFinalBeat(h handle) *finalBeat {
	return &finalBeat{h: h}
}

func (b *finalBeat) enter(step int) {
	t := b.h.timing()
	switch step {
	case 0:
		b.message = true
		b.h.after("final/message", t.FinalMessageHold, b.h.advanceStep)
	case 1:
		b.prompt = true
		b.h.after("final/prompt", t.FinalCommandHold, b.h.advanceStep)
	case 2:
		b.banner = true
		b.h.after("final/banner", t.FinalBannerHold, b.h.advanceStep)
	default:
		b.h.after("final/handoff", t.FinalHandoffDelay, b.h.finish)
	}
}

func (b *finalBeat) view(v *View) {
	t := b.h.timing()
	lines := b.h.tables().Lines
	fv := &FinalView{ShowPrompt: b.prompt}
	if b.message {
		fv.Message = []TypedLine{
			{
				Key:     "final/closing",
				Speaker: lines.Speaker,
				Text:    lines.Closing,
				Speed:   t.DialogueTypeSpeed,
			},
			{
				Key:       "final/closing_follow",
				Continued: true,
				Text:      lines.ClosingFollow,
				Speed:     t.DialogueTypeSpeed,
				Delay:     t.FinalSecondLineDelay,
				Cursor:    !b.prompt,
			},
		}
	}
	if b.prompt {
		fv.Prompt = lines.Prompt
	}
	if b.banner {
		fv.Banner = &TypedLine{
			Key:    "final/banner",
			Text:   lines.Initiate,
			Speed:  t.BannerTypeSpeed,
			Cursor: true,
		}
	}
	v.Final = fv
}
