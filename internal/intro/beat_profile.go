package intro

// profileBeat runs the apprentice profile system checks in table order.
//
//	step 0      header, all checks pending, ProfileTitlePause → step
//	step 1..K   check step-1 checking, SystemCheckDelay, ok, progress
//	            step/K, CheckSettle → step
//	step K+1    ProfileFinalDelay → advance beat
type profileBeat struct {
	h        handle
	step     int
	header   bool
	checks   []CheckItem
	progress float64
}

func newProfileBeat(h handle) *profileBeat {
	src := h.tables().SystemChecks
	checks := make([]CheckItem, len(src))
	for i, c := range src {
		checks[i] = CheckItem{Name: c.Name, Display: c.Display, Status: CheckPending}
	}
	return &profileBeat{h: h, checks: checks}
}

func (b *profileBeat) enter(step int) {
	t := b.h.timing()
	k := len(b.checks)
	b.step = step
	switch {
	case step == 0:
		b.header = true
		b.h.after("profile/title", t.ProfileTitlePause, b.h.advanceStep)
	case step <= k:
		i := step - 1
		b.checks[i].Status = CheckChecking
		b.h.after("profile/check", t.SystemCheckDelay, func() {
			b.checks[i].Status = CheckOK
			b.progress = float64(step) / float64(k)
			b.h.after("profile/settle", t.CheckSettle, b.h.advanceStep)
		})
	case step == k+1:
		b.h.after("profile/final", t.ProfileFinalDelay, b.h.advanceBeat)
	}
}

func (b *profileBeat) view(v *View) {
	pv := &ProfileView{
		Checks:       append([]CheckItem(nil), b.checks...),
		ShowProgress: b.step > 0,
		Progress:     b.progress,
	}
	if b.header {
		pv.Header = &TypedLine{
			Key:   "profile/header",
			Text:  b.h.tables().Lines.ProfileHeader,
			Speed: b.h.timing().HeaderTypeSpeed,
		}
	}
	v.Profile = pv
}
