package ui

import (
	"time"

	"grimoire/internal/intro"
)

// cursorBlink is the on/off period of the block cursor.
const cursorBlink = 530 * time.Millisecond

// Typed returns the part of line visible elapsed after it first appeared,
// and whether typing has finished. A line waits Delay, then gains one rune
// every Speed. Instant lines and a zero Speed show the whole text at once.
func Typed(line intro.TypedLine, elapsed time.Duration) (string, bool) {
	if line.Instant || line.Speed <= 0 {
		return line.Text, true
	}
	if elapsed < line.Delay {
		return "", false
	}
	runes := []rune(line.Text)
	n := int((elapsed - line.Delay) / line.Speed)
	if n >= len(runes) {
		return line.Text, true
	}
	return string(runes[:n]), false
}

// Typewriter remembers when each typed line was first shown, so a line's
// animation starts exactly once no matter how often it is redrawn.
type Typewriter struct {
	started map[string]time.Duration
}

// NewTypewriter creates an empty typewriter.
func NewTypewriter() *Typewriter {
	return &Typewriter{started: make(map[string]time.Duration)}
}

// Visible returns the text of line at now, starting its animation on first
// sight.
func (tw *Typewriter) Visible(line intro.TypedLine, now time.Duration) (string, bool) {
	at, ok := tw.started[line.Key]
	if !ok {
		at = now
		tw.started[line.Key] = at
	}
	return Typed(line, now-at)
}

// Finished reports whether line has been fully typed by now. Lines never
// seen count as unfinished.
func (tw *Typewriter) Finished(line intro.TypedLine, now time.Duration) bool {
	at, ok := tw.started[line.Key]
	if !ok {
		return false
	}
	_, done := Typed(line, now-at)
	return done
}

// Reset forgets every line.
func (tw *Typewriter) Reset() {
	clear(tw.started)
}

// Len is the number of tracked lines.
func (tw *Typewriter) Len() int {
	return len(tw.started)
}

// cursorOn reports the blink phase at now.
func cursorOn(now time.Duration) bool {
	return (now/cursorBlink)%2 == 0
}
