package history

import (
	"context"
	"fmt"
	"time"
)

// Stats aggregates every stored run.
type Stats struct {
	Runs        int
	Skipped     int
	AvgDuration time.Duration
	// Pass and Fail total the calibration outcomes of all runs.
	Pass int
	Fail int
	// ByFinalBeat counts runs by the beat they ended on.
	ByFinalBeat map[string]int
}

// AlignmentRate is the share of calibration runes that aligned, or 0 when
// no rune was ever tested.
func (s Stats) AlignmentRate() float64 {
	if s.Pass+s.Fail == 0 {
		return 0
	}
	return float64(s.Pass) / float64(s.Pass+s.Fail)
}

// Stats computes the aggregate over all stored runs.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{ByFinalBeat: make(map[string]int)}
	var avgMs float64
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(skipped), 0), COALESCE(AVG(duration_ms), 0),
		       COALESCE(SUM(pass), 0), COALESCE(SUM(fail), 0)
		FROM runs`).Scan(&st.Runs, &st.Skipped, &avgMs, &st.Pass, &st.Fail)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to aggregate runs: %w", err)
	}
	st.AvgDuration = time.Duration(avgMs * float64(time.Millisecond))

	rows, err := s.db.QueryContext(ctx, "SELECT final_beat, COUNT(*) FROM runs GROUP BY final_beat")
	if err != nil {
		return Stats{}, fmt.Errorf("failed to group runs: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			beat string
			n    int
		)
		if err := rows.Scan(&beat, &n); err != nil {
			return Stats{}, fmt.Errorf("failed to scan run group: %w", err)
		}
		st.ByFinalBeat[beat] = n
	}
	return st, rows.Err()
}
