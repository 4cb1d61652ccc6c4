package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"grimoire/internal/intro"

	"golang.org/x/sync/errgroup"
)

// Transcript prints the intro as plain text: every line once, in full,
// the first time a frame shows it. It backs the --plain mode and works on
// frames from any host.
type Transcript struct {
	w       io.Writer
	seen    map[string]bool
	beat    intro.Beat
	started bool
	speaker string

	pass, fail int
}

// NewTranscript writes to w.
func NewTranscript(w io.Writer) *Transcript {
	return &Transcript{w: w, seen: make(map[string]bool)}
}

// Frame prints whatever v shows that has not been printed yet.
func (t *Transcript) Frame(v intro.View) {
	if !t.started || v.State.Beat != t.beat {
		if t.started {
			fmt.Fprintln(t.w)
		}
		fmt.Fprintf(t.w, "[%s]\n", v.State.Beat)
		t.started = true
		t.beat = v.State.Beat
	}

	switch {
	case v.Boot != nil:
		for _, m := range v.Boot.Messages {
			t.line(m.TypedLine)
		}
	case v.Dialogue != nil:
		if v.Dialogue.Line != nil {
			t.line(*v.Dialogue.Line)
		}
	case v.Profile != nil:
		if v.Profile.Header != nil {
			t.line(*v.Profile.Header)
		}
		for _, c := range v.Profile.Checks {
			if c.Status == intro.CheckOK || c.Status == intro.CheckWarn {
				t.once("check/"+c.Name, fmt.Sprintf("%s %s", c.Status.Label(), c.Display))
			}
		}
	case v.Load != nil:
		if v.Load.Panel {
			t.once("load/panel", strings.Join(append([]string{v.Load.Title}, v.Load.Status...), "\n"))
		}
		if v.Load.Message != nil {
			t.line(*v.Load.Message)
		}
		if v.Load.FollowUp != nil {
			t.line(*v.Load.FollowUp)
		}
	case v.Calibration != nil:
		cv := v.Calibration
		t.pass, t.fail = cv.Pass, cv.Fail
		if cv.Header != nil {
			t.line(*cv.Header)
		}
		for _, r := range cv.Runes {
			if r.Status.Resolved() {
				t.once("rune/"+r.Name, fmt.Sprintf("%s %s %s", r.Glyph, r.Display, r.Status.Label()))
			}
		}
		if len(cv.Dialogue) > 0 {
			t.once("calibration/tally", fmt.Sprintf("Runes aligned: %d/%d", cv.Pass, len(cv.Runes)))
			for _, l := range cv.Dialogue {
				t.line(l)
			}
		}
	case v.Final != nil:
		for _, l := range v.Final.Message {
			t.line(l)
		}
		if v.Final.ShowPrompt {
			t.once("final/prompt", v.Final.Prompt)
		}
		if v.Final.Banner != nil {
			t.line(*v.Final.Banner)
		}
	case v.Complete != nil:
		t.line(v.Complete.Banner)
	}
}

func (t *Transcript) line(l intro.TypedLine) {
	if t.seen[l.Key] {
		return
	}
	t.seen[l.Key] = true

	switch {
	case l.Speaker != "":
		t.speaker = l.Speaker
		fmt.Fprintf(t.w, "%s: %s\n", l.Speaker, l.Text)
	case l.Continued:
		fmt.Fprintf(t.w, "%s%s\n", strings.Repeat(" ", len(t.speaker)+2), l.Text)
	default:
		fmt.Fprintln(t.w, l.Text)
	}
}

func (t *Transcript) once(key, text string) {
	if t.seen[key] {
		return
	}
	t.seen[key] = true
	fmt.Fprintln(t.w, text)
}

// Tally is the last calibration count the transcript saw.
func (t *Transcript) Tally() (pass, fail int) {
	return t.pass, t.fail
}

// PlayPlain runs the intro on real time and prints it as a transcript to w.
// The first value on interrupts skips to the end; a second one aborts the
// run with context.Canceled.
func PlayPlain(ctx context.Context, opts intro.Options, w io.Writer, interrupts <-chan os.Signal) (Result, error) {
	start := time.Now()
	tr := NewTranscript(w)
	runner := intro.NewRunner(opts, intro.WithFrames(tr.Frame))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return runner.Run(gctx)
	})
	g.Go(func() error {
		skipped := false
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-interrupts:
				if skipped {
					cancel()
					return nil
				}
				skipped = true
				runner.Skip()
			}
		}
	})

	err := g.Wait()
	seq := runner.Sequencer()
	res := Result{
		Skipped:   seq.Skipped(),
		Quit:      err != nil,
		Completed: seq.Done(),
		FinalBeat: seq.State().Beat,
		Elapsed:   time.Since(start),
	}
	res.Pass, res.Fail = tr.Tally()
	return res, err
}
