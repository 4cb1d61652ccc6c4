package main

import (
	"fmt"
	"sort"
	"time"

	"grimoire/internal/history"
	"grimoire/internal/intro"

	"github.com/spf13/cobra"
)

var historyLimit int

// historyCmd lists recorded intro runs
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded intro runs",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

// historyClearCmd deletes every recorded run
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the intro run history",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

// historyStatsCmd summarises every recorded run
var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarise the intro run history",
	Args:  cobra.NoArgs,
	RunE:  runHistoryStats,
}

func openHistory() (*history.Store, error) {
	if !cfg.History.Enabled {
		return nil, fmt.Errorf("history is disabled (history.enabled: false)")
	}
	return history.Open(cfg.History.DatabasePath)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmdContext(cmd)
	runs, err := store.List(ctx, historyLimit)
	if err != nil {
		return err
	}
	total, err := store.Count(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No intro runs recorded yet.")
		return nil
	}

	fmt.Fprintf(out, "%-8s  %-19s  %8s  %-12s  %-7s  %s\n", "ID", "STARTED", "DURATION", "FINAL BEAT", "RUNES", "SKIPPED")
	for _, r := range runs {
		skipped := ""
		if r.Skipped {
			skipped = "yes"
		}
		fmt.Fprintf(out, "%-8s  %-19s  %8s  %-12s  %-7s  %s\n",
			shortID(r.ID),
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Duration.Round(100*time.Millisecond),
			r.FinalBeat,
			fmt.Sprintf("%d/%d", r.Pass, r.Pass+r.Fail),
			skipped,
		)
	}
	if total > len(runs) {
		fmt.Fprintf(out, "(%d of %d runs shown)\n", len(runs), total)
	}
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	removed, err := store.Clear(cmdContext(cmd))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d run(s).\n", removed)
	return nil
}

func runHistoryStats(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	st, err := store.Stats(cmdContext(cmd))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "runs:          %d (%d skipped)\n", st.Runs, st.Skipped)
	fmt.Fprintf(out, "avg duration:  %s\n", st.AvgDuration.Round(100*time.Millisecond))
	fmt.Fprintf(out, "runes aligned: %d/%d (%.0f%%)\n", st.Pass, st.Pass+st.Fail, st.AlignmentRate()*100)

	for _, b := range beatsInOrder(st.ByFinalBeat) {
		fmt.Fprintf(out, "  ended at %-12s %d\n", b, st.ByFinalBeat[b])
	}
	return nil
}

// beatsInOrder sorts recorded beat names in narrative order. Names the
// current build no longer knows go last, alphabetically.
func beatsInOrder(counts map[string]int) []string {
	beats := make([]string, 0, len(counts))
	for b := range counts {
		beats = append(beats, b)
	}
	rank := func(name string) int {
		b, err := intro.ParseBeat(name)
		if err != nil {
			return len(intro.Beats)
		}
		return int(b)
	}
	sort.Slice(beats, func(i, j int) bool {
		ri, rj := rank(beats[i]), rank(beats[j])
		if ri != rj {
			return ri < rj
		}
		return beats[i] < beats[j]
	})
	return beats
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
