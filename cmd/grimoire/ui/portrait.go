package ui

import (
	"time"

	"grimoire/internal/intro"
)

// PortraitFrame picks the ASCII frame for a materialization elapsed into
// its total length. The first frame is the gathering particles, the middle
// frames are the forming figure (split evenly across the forming window)
// and the last frame is the finished portrait.
func PortraitFrame(frames []string, elapsed, total time.Duration) string {
	if len(frames) == 0 {
		return ""
	}
	last := len(frames) - 1
	switch intro.PhaseAt(elapsed, total) {
	case intro.PortraitHidden:
		return ""
	case intro.PortraitParticles:
		return frames[0]
	case intro.PortraitForming:
		forming := frames[min(1, last):last]
		if len(forming) == 0 {
			return frames[last]
		}
		start, span := total*5/9, total*4/9
		i := int(int64(elapsed-start) * int64(len(forming)) / int64(span))
		return forming[min(i, len(forming)-1)]
	default:
		return frames[last]
	}
}
