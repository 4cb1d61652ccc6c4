package content

import "strings"

// StaticChars are the block and shade runes used for screen noise.
const StaticChars = "░▒▓█▀▄▌▐"

var staticRunes = []rune(StaticChars)

// Float64Source is the minimal random source needed for noise generation.
type Float64Source interface {
	Float64() float64
}

// StaticLine returns width runes of screen noise.
func StaticLine(r Float64Source, width int) string {
	if width <= 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(width * 3)
	for i := 0; i < width; i++ {
		idx := int(r.Float64() * float64(len(staticRunes)))
		if idx >= len(staticRunes) {
			idx = len(staticRunes) - 1
		}
		b.WriteRune(staticRunes[idx])
	}
	return b.String()
}
