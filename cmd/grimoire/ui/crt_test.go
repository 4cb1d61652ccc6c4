package ui

import (
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"grimoire/internal/intro"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCRT_UnpoweredIsIdle(t *testing.T) {
	crt := NewCRT(rand.New(rand.NewPCG(1, 2)))
	crt.Tick(time.Second, intro.Ambient{GlitchChance: 1, StaticIntensity: 1})
	assert.False(t, crt.Glitching(time.Second))
	assert.Empty(t, crt.staticRows)
}

func TestCRT_CertainGlitch(t *testing.T) {
	crt := NewCRT(rand.New(rand.NewPCG(1, 2)))
	amb := intro.Ambient{Powered: true, GlitchChance: 1}

	crt.Tick(0, amb)
	require.True(t, crt.Glitching(0))
	assert.False(t, crt.Glitching(glitchMin+glitchSpread), "glitches end within 200ms")
	assert.GreaterOrEqual(t, crt.glitchShift, 1)
	assert.LessOrEqual(t, crt.glitchShift, maxGlitchOffset)
}

func TestCRT_NoGlitchAtZeroChance(t *testing.T) {
	crt := NewCRT(rand.New(rand.NewPCG(1, 2)))
	amb := intro.Ambient{Powered: true}
	for now := time.Duration(0); now < 5*time.Second; now += frameInterval {
		crt.Tick(now, amb)
		require.False(t, crt.Glitching(now))
	}
	assert.Empty(t, crt.staticRows, "zero intensity never draws static")
}

func TestCRT_ApplyKeepsRowsAndAddsFloatingRunes(t *testing.T) {
	crt := NewCRT(rand.New(rand.NewPCG(1, 2)))
	s := DefaultStyles()
	lines := []string{"one", "two", "three"}

	out := crt.Apply(lines, 20, 0, intro.Ambient{Powered: true}, []string{"*"}, s)
	assert.Len(t, out, 3)
	assert.Equal(t, "one", ansi.Strip(out[0]))

	out = crt.Apply(lines, 20, 0, intro.Ambient{Powered: true, FloatingRunes: true}, []string{"*", "+"}, s)
	require.Len(t, out, 4)
	row := ansi.Strip(out[0])
	assert.Equal(t, 20, len([]rune(row)))
	assert.Equal(t, floatingCount, strings.Count(row, "*")+strings.Count(row, "+"))
	assert.Equal(t, []string{"one", "two", "three"}, lines, "input is not modified")
}

func TestFloatingRowDrifts(t *testing.T) {
	s := DefaultStyles()
	a := ansi.Strip(floatingRow([]string{"*"}, 30, 0, s))
	b := ansi.Strip(floatingRow([]string{"*"}, 30, floatingPeriod, s))
	assert.NotEqual(t, a, b)
}
