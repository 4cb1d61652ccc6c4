package intro

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTiming_DefaultsValidate(t *testing.T) {
	require.NoError(t, DefaultTiming().Validate())
}

func TestTiming_Scale(t *testing.T) {
	def := DefaultTiming()

	half := def.Scale(0.5)
	assert.Equal(t, def.Materialize/2, half.Materialize)
	assert.Equal(t, def.TransitionDelay/2, half.TransitionDelay)
	assert.Equal(t, def.DialogueTypeSpeed/2, half.DialogueTypeSpeed)

	if diff := cmp.Diff(def, def.Scale(1)); diff != "" {
		t.Errorf("Scale(1) changed the table (-want +got):\n%s", diff)
	}
	assert.Equal(t, TimingTable{}, def.Scale(0), "speed 0 collapses every wait")
	assert.Equal(t, 1200*time.Millisecond, def.StaticBurst, "Scale must not mutate the receiver")
}

func TestTiming_ValidateRejectsNegative(t *testing.T) {
	tt := DefaultTiming()
	tt.RuneCheckDelay = -time.Millisecond

	err := tt.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RuneCheckDelay")

	require.Error(t, DefaultTiming().Scale(-1).Validate())
}

func TestTiming_DialogueHold(t *testing.T) {
	tt := TimingTable{DialoguePause: time.Second, DialoguePerChar: 10 * time.Millisecond}
	assert.Equal(t, time.Second, tt.DialogueHold(0))
	assert.Equal(t, 1500*time.Millisecond, tt.DialogueHold(50))
}
