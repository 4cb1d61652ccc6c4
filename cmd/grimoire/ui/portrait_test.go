package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPortraitFrame(t *testing.T) {
	frames := []string{"particles", "form-a", "form-b", "portrait"}
	total := 4500 * time.Millisecond

	tests := []struct {
		elapsed time.Duration
		want    string
	}{
		{0, ""},
		{499 * time.Millisecond, ""},
		{500 * time.Millisecond, "particles"},
		{2499 * time.Millisecond, "particles"},
		{2500 * time.Millisecond, "form-a"},
		{3499 * time.Millisecond, "form-a"},
		{3500 * time.Millisecond, "form-b"},
		{4499 * time.Millisecond, "form-b"},
		{4500 * time.Millisecond, "portrait"},
		{time.Minute, "portrait"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PortraitFrame(frames, tt.elapsed, total), "elapsed %v", tt.elapsed)
	}
}

func TestPortraitFrame_ShortTables(t *testing.T) {
	total := 900 * time.Millisecond
	assert.Empty(t, PortraitFrame(nil, total, total))

	one := []string{"only"}
	assert.Equal(t, "only", PortraitFrame(one, 100*time.Millisecond, total))
	assert.Equal(t, "only", PortraitFrame(one, 600*time.Millisecond, total))

	two := []string{"dots", "face"}
	assert.Equal(t, "dots", PortraitFrame(two, 200*time.Millisecond, total))
	assert.Equal(t, "face", PortraitFrame(two, 600*time.Millisecond, total), "no middle frames: forming shows the portrait")
	assert.Equal(t, "face", PortraitFrame(two, 0, 0), "zero length is already visible")
}
