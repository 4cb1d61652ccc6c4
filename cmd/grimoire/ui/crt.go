package ui

import (
	"math/rand/v2"
	"strings"
	"time"

	"grimoire/internal/content"
	"grimoire/internal/intro"

	"github.com/charmbracelet/x/ansi"
)

const (
	glitchInterval  = 100 * time.Millisecond
	staticInterval  = 50 * time.Millisecond
	glitchMin       = 50 * time.Millisecond
	glitchSpread    = 150 * time.Millisecond
	floatingCount   = 6
	floatingPeriod  = 400 * time.Millisecond
	maxGlitchOffset = 3
)

// CRT draws the cosmetic screen effects over a rendered frame: scanlines,
// static rows, glitch frames and floating rune glyphs. It reads the
// sequencer's Ambient values and never feeds anything back.
type CRT struct {
	rng *rand.Rand

	lastGlitchRoll time.Duration
	glitchUntil    time.Duration
	glitchShift    int

	lastStatic time.Duration
	staticRows []float64
}

// NewCRT creates the effects layer on its own random stream.
func NewCRT(rng *rand.Rand) *CRT {
	return &CRT{rng: rng, lastGlitchRoll: -glitchInterval, lastStatic: -staticInterval}
}

// Tick advances the effect timers to now. Glitches are rolled every 100ms
// and last 50-200ms; static rows are re-rolled every 50ms.
func (c *CRT) Tick(now time.Duration, amb intro.Ambient) {
	if !amb.Powered {
		return
	}
	if now-c.lastGlitchRoll >= glitchInterval {
		c.lastGlitchRoll = now
		if now >= c.glitchUntil && c.rng.Float64() < amb.GlitchChance {
			c.glitchUntil = now + glitchMin + time.Duration(c.rng.Float64()*float64(glitchSpread))
			c.glitchShift = 1 + c.rng.IntN(maxGlitchOffset)
		}
	}
	if now-c.lastStatic >= staticInterval {
		c.lastStatic = now
		n := int(c.rng.Float64() * 3 * amb.StaticIntensity * 10)
		c.staticRows = c.staticRows[:0]
		for range n {
			c.staticRows = append(c.staticRows, c.rng.Float64())
		}
	}
}

// Glitching reports whether a glitch frame is showing at now.
func (c *CRT) Glitching(now time.Duration) bool {
	return now < c.glitchUntil
}

// Apply decorates the frame lines. width is the inner width of the screen.
func (c *CRT) Apply(lines []string, width int, now time.Duration, amb intro.Ambient, glyphs []string, s Styles) []string {
	if width <= 0 {
		width = 1
	}
	out := append([]string(nil), lines...)

	if amb.FloatingRunes && len(glyphs) > 0 {
		out = append([]string{floatingRow(glyphs, width, now, s)}, out...)
	}

	for _, at := range c.staticRows {
		if len(out) == 0 {
			break
		}
		row := min(int(at*float64(len(out))), len(out)-1)
		out[row] = s.Static.Render(content.StaticLine(c.rng, width))
	}

	for i := range out {
		if i%2 == 1 {
			out[i] = s.Scanline.Render(out[i])
		}
	}

	if c.Glitching(now) {
		pad := strings.Repeat(" ", c.glitchShift)
		for i := range out {
			if i%3 == 0 {
				out[i] = s.Glitch.Render(pad + ansi.Strip(out[i]))
			}
		}
	}
	return out
}

// floatingRow places six drifting glyphs across one row.
func floatingRow(glyphs []string, width int, now time.Duration, s Styles) string {
	row := []rune(strings.Repeat(" ", width))
	step := int(now / floatingPeriod)
	for i := range floatingCount {
		g := []rune(glyphs[i%len(glyphs)])
		if len(g) == 0 {
			continue
		}
		pos := (i*width/floatingCount + step*(i%2*2-1)) % width
		if pos < 0 {
			pos += width
		}
		row[pos] = g[0]
	}
	return s.Dim.Render(string(row))
}

// WarmupLine is the thin bright line of a tube warming up.
func WarmupLine(width int, s Styles) string {
	if width < 4 {
		width = 4
	}
	return s.Warmup.Render(strings.Repeat(" ", width/4) + strings.Repeat("━", width/2))
}
