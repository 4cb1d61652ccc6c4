package history

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_StatsEmpty(t *testing.T) {
	t.Parallel()

	st, err := newTestStore(t).Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, st.Runs)
	assert.Zero(t, st.AvgDuration)
	assert.Zero(t, st.AlignmentRate())
	assert.Empty(t, st.ByFinalBeat)
}

func TestStore_Stats(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for _, r := range []Run{
		{StartedAt: base, Duration: 40 * time.Second, FinalBeat: "complete", Pass: 5, Fail: 1},
		{StartedAt: base.Add(time.Minute), Duration: 2 * time.Second, Skipped: true, FinalBeat: "complete"},
		{StartedAt: base.Add(2 * time.Minute), Duration: 12 * time.Second, FinalBeat: "profile_init"},
	} {
		_, err := store.Record(ctx, r)
		require.NoError(t, err)
	}

	st, err := store.Stats(ctx)
	require.NoError(t, err)

	want := Stats{
		Runs:        3,
		Skipped:     1,
		AvgDuration: 18 * time.Second,
		Pass:        5,
		Fail:        1,
		ByFinalBeat: map[string]int{"complete": 2, "profile_init": 1},
	}
	if diff := cmp.Diff(want, st); diff != "" {
		t.Errorf("Stats() mismatch (-want +got):\n%s", diff)
	}
	assert.InDelta(t, 5.0/6.0, st.AlignmentRate(), 1e-9)
}
