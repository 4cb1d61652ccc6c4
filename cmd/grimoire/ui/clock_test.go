package ui

import (
	"testing"
	"time"

	"grimoire/internal/intro"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// next returns the live id with the earliest deadline, standing in for the
// tick bubbletea would deliver first.
func (c *teaClock) next() (intro.CallbackID, time.Duration, bool) {
	var (
		best   intro.CallbackID
		bestAt time.Duration
		found  bool
	)
	for id, at := range c.live {
		if !found || at < bestAt || (at == bestAt && id < best) {
			best, bestAt, found = id, at, true
		}
	}
	return best, bestAt, found
}

func TestTeaClock_CancelledTickIsDropped(t *testing.T) {
	var now time.Duration
	c := newTeaClock(func() time.Duration { return now })

	c.Schedule(1, time.Second)
	c.Schedule(2, 2*time.Second)
	require.NotNil(t, c.drain())
	assert.Nil(t, c.drain(), "drain empties the pending ticks")

	c.Cancel(1)
	assert.False(t, c.take(1), "a cancelled tick still arrives but is ignored")

	id, at, ok := c.next()
	require.True(t, ok)
	assert.Equal(t, intro.CallbackID(2), id)
	assert.Equal(t, 2*time.Second, at)

	assert.True(t, c.take(2))
	assert.False(t, c.take(2), "a tick fires once")
	_, _, ok = c.next()
	assert.False(t, ok)
}
