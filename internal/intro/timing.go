package intro

import (
	"fmt"
	"reflect"
	"time"
)

// TimingTable holds every duration that paces the intro. It is a value
// type: the sequencer keeps its own copy and nothing mutates it afterwards.
type TimingTable struct {
	// Beat 1
	StaticBurst      time.Duration
	BootReveal       time.Duration
	BootMessagePause time.Duration
	BootBlankPause   time.Duration
	BootFinalDelay   time.Duration

	// Beat 2
	Materialize        time.Duration
	MaterializeSettle  time.Duration
	DialoguePause      time.Duration
	DialoguePerChar    time.Duration
	DialogueBlankPause time.Duration
	DialogueFinalDelay time.Duration

	// Beat 3
	ProfileTitlePause time.Duration
	SystemCheckDelay  time.Duration
	CheckSettle       time.Duration
	ProfileFinalDelay time.Duration

	// Beat 4 (loading messages reuse SystemCheckDelay)
	LoadPanelPause   time.Duration
	LoadDialogueHold time.Duration
	LoadFinalDelay   time.Duration

	// Beat 5
	RuneTitlePause      time.Duration
	RuneTestDelay       time.Duration
	RuneCheckDelay      time.Duration
	RuneDialogueHold    time.Duration
	RuneSecondLineDelay time.Duration
	RuneFinalDelay      time.Duration

	// Beat 6
	FinalMessageHold     time.Duration
	FinalSecondLineDelay time.Duration
	FinalCommandHold     time.Duration
	FinalBannerHold      time.Duration
	FinalHandoffDelay    time.Duration

	// Completion and ambient
	TransitionDelay time.Duration
	PowerOnWarmup   time.Duration

	// Per-character typing speeds for presenters.
	BootTypeSpeed       time.Duration
	DialogueTypeSpeed   time.Duration
	HeaderTypeSpeed     time.Duration
	LoadTypeSpeed       time.Duration
	BannerTypeSpeed     time.Duration
	CompleteTypeSpeed   time.Duration
	DisharmonyTypeSpeed time.Duration
}

// DefaultTiming returns the stock pacing.
func DefaultTiming() TimingTable {
	return TimingTable{
		StaticBurst:      1200 * time.Millisecond,
		BootReveal:       100 * time.Millisecond,
		BootMessagePause: 800 * time.Millisecond,
		BootBlankPause:   400 * time.Millisecond,
		BootFinalDelay:   1000 * time.Millisecond,

		Materialize:        4500 * time.Millisecond,
		MaterializeSettle:  2000 * time.Millisecond,
		DialoguePause:      2000 * time.Millisecond,
		DialoguePerChar:    55 * time.Millisecond,
		DialogueBlankPause: 1200 * time.Millisecond,
		DialogueFinalDelay: 2500 * time.Millisecond,

		ProfileTitlePause: 1200 * time.Millisecond,
		SystemCheckDelay:  1200 * time.Millisecond,
		CheckSettle:       400 * time.Millisecond,
		ProfileFinalDelay: 1000 * time.Millisecond,

		LoadPanelPause:   1000 * time.Millisecond,
		LoadDialogueHold: 4000 * time.Millisecond,
		LoadFinalDelay:   800 * time.Millisecond,

		RuneTitlePause:      1500 * time.Millisecond,
		RuneTestDelay:       800 * time.Millisecond,
		RuneCheckDelay:      1500 * time.Millisecond,
		RuneDialogueHold:    4500 * time.Millisecond,
		RuneSecondLineDelay: 2000 * time.Millisecond,
		RuneFinalDelay:      1000 * time.Millisecond,

		FinalMessageHold:     3500 * time.Millisecond,
		FinalSecondLineDelay: 1800 * time.Millisecond,
		FinalCommandHold:     2000 * time.Millisecond,
		FinalBannerHold:      3000 * time.Millisecond,
		FinalHandoffDelay:    500 * time.Millisecond,

		TransitionDelay: 2500 * time.Millisecond,
		PowerOnWarmup:   800 * time.Millisecond,

		BootTypeSpeed:       50 * time.Millisecond,
		DialogueTypeSpeed:   55 * time.Millisecond,
		HeaderTypeSpeed:     40 * time.Millisecond,
		LoadTypeSpeed:       30 * time.Millisecond,
		BannerTypeSpeed:     60 * time.Millisecond,
		CompleteTypeSpeed:   80 * time.Millisecond,
		DisharmonyTypeSpeed: 70 * time.Millisecond,
	}
}

var durationType = reflect.TypeOf(time.Duration(0))

// Scale returns a copy with every duration multiplied by f. A factor of 0
// collapses all waits, which is what `--speed 0` means.
func (t TimingTable) Scale(f float64) TimingTable {
	out := t
	v := reflect.ValueOf(&out).Elem()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if field.Type() != durationType {
			continue
		}
		field.SetInt(int64(float64(field.Int()) * f))
	}
	return out
}

// Validate rejects negative durations.
func (t TimingTable) Validate() error {
	v := reflect.ValueOf(t)
	for i := 0; i < v.NumField(); i++ {
		if v.Field(i).Type() != durationType {
			continue
		}
		if v.Field(i).Int() < 0 {
			return fmt.Errorf("timing %s is negative: %s", v.Type().Field(i).Name, time.Duration(v.Field(i).Int()))
		}
	}
	return nil
}

// DialogueHold is how long a typed dialogue line stays up before the next
// step: a base pause plus a per-character allowance so long lines remain
// readable.
func (t TimingTable) DialogueHold(chars int) time.Duration {
	return t.DialoguePause + time.Duration(chars)*t.DialoguePerChar
}
