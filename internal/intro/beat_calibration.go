package intro

import "go.uber.org/zap"

// calibrationBeat tests each rune in turn and resolves it with one
// Bernoulli trial. The closing dialogue depends on whether any rune failed.
//
//	step 0        header, RuneTitlePause → step
//	step 2i+1     rune i testing, RuneTestDelay → step
//	step 2i+2     rune i pass or fail, RuneCheckDelay → step
//	step 2R+1     harmony or disharmony dialogue, RuneDialogueHold → step
//	step 2R+2     RuneFinalDelay → advance beat
//
// Counts and progress are derived from the rune table whenever they are
// read; nothing else stores them.
type calibrationBeat struct {
	h        handle
	header   bool
	runes    []RuneItem
	dialogue bool
}

func newCalibrationBeat(h handle) *calibrationBeat {
	tables := h.tables()
	runes := make([]RuneItem, len(tables.Runes))
	for i, r := range tables.Runes {
		runes[i] = RuneItem{
			Name:    r.Name,
			Display: r.Display,
			Glyph:   tables.Glyph(i),
			Status:  RunePending,
		}
	}
	return &calibrationBeat{h: h, runes: runes}
}

func (b *calibrationBeat) enter(step int) {
	t := b.h.timing()
	r := len(b.runes)
	switch {
	case step == 0:
		b.header = true
		b.h.after("calibration/title", t.RuneTitlePause, b.h.advanceStep)
	case step <= 2*r:
		i := (step - 1) / 2
		if (step-1)%2 == 0 {
			b.runes[i].Status = RuneTesting
			b.h.after("calibration/test", t.RuneTestDelay, b.h.advanceStep)
			return
		}
		b.resolve(i)
		b.h.after("calibration/result", t.RuneCheckDelay, b.h.advanceStep)
	case step == 2*r+1:
		b.dialogue = true
		b.h.after("calibration/dialogue", t.RuneDialogueHold, b.h.advanceStep)
	case step == 2*r+2:
		b.h.after("calibration/final", t.RuneFinalDelay, b.h.advanceBeat)
	}
}

// resolve settles rune i. A resolved rune is never drawn for again.
func (b *calibrationBeat) resolve(i int) {
	if b.runes[i].Status.Resolved() {
		return
	}
	if b.h.roll() {
		b.runes[i].Status = RunePass
	} else {
		b.runes[i].Status = RuneFail
	}
	b.h.s.log.Debug("rune resolved",
		zap.String("rune", b.runes[i].Name),
		zap.String("status", string(b.runes[i].Status)))
}

func (b *calibrationBeat) view(v *View) {
	runes := append([]RuneItem(nil), b.runes...)
	pass, fail := Tally(runes)
	cv := &CalibrationView{
		Runes:     runes,
		Pass:      pass,
		Fail:      fail,
		Completed: pass + fail,
	}
	if len(runes) > 0 {
		cv.Progress = float64(cv.Completed) / float64(len(runes))
	}
	t := b.h.timing()
	lines := b.h.tables().Lines
	if b.header {
		cv.Header = &TypedLine{
			Key:   "calibration/header",
			Text:  lines.RuneHeader,
			Speed: t.HeaderTypeSpeed,
		}
	}
	if b.dialogue {
		if fail > 0 {
			cv.Dialogue = []TypedLine{
				{
					Key:     "calibration/disharmony",
					Speaker: lines.Speaker,
					Text:    lines.Disharmony,
					Speed:   t.DialogueTypeSpeed,
				},
				{
					Key:       "calibration/disharmony_follow",
					Continued: true,
					Text:      lines.DisharmonyFollow,
					Speed:     t.DisharmonyTypeSpeed,
					Delay:     t.RuneSecondLineDelay,
					Cursor:    true,
				},
			}
		} else {
			cv.Dialogue = []TypedLine{{
				Key:     "calibration/harmony",
				Speaker: lines.Speaker,
				Text:    lines.Harmony,
				Speed:   t.DialogueTypeSpeed,
				Cursor:  true,
			}}
		}
	}
	v.Calibration = cv
}
