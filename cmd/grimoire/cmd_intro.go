package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"grimoire/cmd/grimoire/ui"
	"grimoire/internal/config"
	"grimoire/internal/content"
	"grimoire/internal/history"
	"grimoire/internal/intro"
	"grimoire/internal/logging"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Intro flags, shared by the root command and `intro`.
var (
	introSkip      bool
	introPlain     bool
	introReplay    bool
	introNoEffects bool
	introSeed      uint64
	introSpeed     float64
	introContent   string
	introTheme     string
)

// introCmd plays the intro sequence
var introCmd = &cobra.Command{
	Use:   "intro",
	Short: "Play the Grimoire intro sequence",
	Long: `Plays the multi-beat intro: CRT boot, introduction, profile checks,
system load, rune calibration and final preparation.

In a terminal the intro runs full screen. With --plain, or when stdout is
not a terminal, it prints a transcript instead; the first Ctrl-C skips to
the end and a second one aborts.

Examples:
  grimoire intro --replay
  grimoire intro --plain --speed 0
  grimoire intro --seed 7 --theme amber`,
	Args: cobra.NoArgs,
	RunE: runIntro,
}

func addIntroFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&introSkip, "skip", false, "Start with the intro already complete")
	cmd.Flags().BoolVar(&introPlain, "plain", false, "Print a plain transcript instead of the full-screen CRT")
	cmd.Flags().BoolVar(&introReplay, "replay", false, "Play the intro even if it has been seen")
	cmd.Flags().BoolVar(&introNoEffects, "no-effects", false, "Disable scanlines, static and glitches")
	cmd.Flags().Uint64Var(&introSeed, "seed", 0, "Seed for calibration outcomes (0 = random)")
	cmd.Flags().Float64Var(&introSpeed, "speed", 1, "Timing multiplier (0 = no waits)")
	cmd.Flags().StringVar(&introContent, "content", "", "YAML file overriding the narrative tables")
	cmd.Flags().StringVar(&introTheme, "theme", "", "Phosphor theme: classic, amber or white")
}

// introPlan is everything a run needs, resolved from config, preferences
// and flags.
type introPlan struct {
	opts    intro.Options
	seed    uint64
	theme   string
	plain   bool
	effects bool
	sound   bool
	width   int
}

func buildIntroPlan(cmd *cobra.Command) (*introPlan, error) {
	ic := cfg.Intro
	if cmd.Flags().Changed("speed") {
		ic.Speed = introSpeed
	}
	if cmd.Flags().Changed("seed") {
		ic.Seed = introSeed
	}
	if introContent != "" {
		ic.ContentPath = introContent
	}

	timing := intro.DefaultTiming().Scale(ic.Speed)
	if err := timing.Validate(); err != nil {
		return nil, fmt.Errorf("invalid timing: %w", err)
	}

	tables, err := content.Load(ic.ContentPath)
	if err != nil {
		return nil, err
	}

	seed := ic.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	theme := resolveTheme(introTheme)
	if !config.IsTheme(theme) {
		return nil, fmt.Errorf("unknown theme %q (want one of %v)", theme, config.Themes)
	}

	skip := introSkip || ic.Skip || prefs.ShouldSkipIntro(introReplay)

	return &introPlan{
		opts: intro.Options{
			Skip:            skip,
			Timing:          &timing,
			Content:         tables,
			Random:          rand.New(rand.NewPCG(seed, seed)),
			PassProbability: &ic.PassProbability,
			Logger:          logging.Get(logging.CategoryIntro),
		},
		seed:    seed,
		theme:   theme,
		plain:   introPlain || !isatty.IsTerminal(os.Stdout.Fd()),
		effects: cfg.UI.Effects && !introNoEffects,
		sound:   cfg.UI.Sound && prefs.Get().SoundEnabled,
		width:   cfg.UI.Width,
	}, nil
}

func runIntro(cmd *cobra.Command, args []string) error {
	ctx := cmdContext(cmd)

	plan, err := buildIntroPlan(cmd)
	if err != nil {
		return err
	}
	log := logging.Get(logging.CategoryUI)
	log.Info("intro starting",
		zap.Bool("skip", plan.opts.Skip),
		zap.Bool("plain", plan.plain),
		zap.Uint64("seed", plan.seed),
		zap.String("theme", plan.theme),
	)

	started := time.Now()
	var res ui.Result
	if plan.plain {
		res, err = playPlain(ctx, plan, cmd.OutOrStdout())
	} else {
		res, err = playTUI(ctx, plan)
	}
	if err != nil {
		return err
	}
	log.Info("intro finished",
		zap.Bool("completed", res.Completed),
		zap.Bool("skipped", res.Skipped),
		zap.Bool("quit", res.Quit),
		zap.Duration("elapsed", res.Elapsed),
	)

	if res.Completed {
		prefs.RecordIntro(res.Skipped)
		if err := prefs.Save(); err != nil {
			logger.Warn("failed to save preferences", zap.Error(err))
		}
	}
	recordRun(ctx, started, plan.seed, res)
	return nil
}

func playPlain(ctx context.Context, plan *introPlan, w io.Writer) (ui.Result, error) {
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	res, err := ui.PlayPlain(ctx, plan.opts, w, sigCh)
	if errors.Is(err, context.Canceled) {
		logger.Info("intro aborted")
		return res, nil
	}
	return res, err
}

func playTUI(ctx context.Context, plan *introPlan) (ui.Result, error) {
	model := ui.NewIntroModel(ui.Options{
		Intro:   plan.opts,
		Theme:   plan.theme,
		Effects: plan.effects,
		Width:   plan.width,
		Sound:   plan.sound,
		Bell:    os.Stdout,
		Seed:    plan.seed,
		Logger:  logging.Get(logging.CategoryUI),
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return ui.Result{}, fmt.Errorf("intro UI failed: %w", err)
	}
	m, ok := final.(ui.IntroModel)
	if !ok {
		return ui.Result{}, fmt.Errorf("unexpected model type %T", final)
	}
	return m.Result(), nil
}

// recordRun appends the run to the history database. History is best
// effort: failures are logged, never returned.
func recordRun(ctx context.Context, started time.Time, seed uint64, res ui.Result) {
	if !cfg.History.Enabled {
		return
	}
	log := logging.Get(logging.CategoryHistory)

	store, err := history.Open(cfg.History.DatabasePath)
	if err != nil {
		logger.Warn("failed to open history", zap.Error(err))
		return
	}
	defer store.Close()

	run, err := store.Record(ctx, history.Run{
		StartedAt: started,
		Duration:  res.Elapsed,
		Skipped:   res.Skipped,
		FinalBeat: res.FinalBeat.String(),
		Pass:      res.Pass,
		Fail:      res.Fail,
		Seed:      seed,
	})
	if err != nil {
		logger.Warn("failed to record run", zap.Error(err))
		return
	}
	log.Info("run recorded", zap.String("id", run.ID))

	if removed, err := store.Prune(ctx, cfg.History.Keep); err != nil {
		logger.Warn("failed to prune history", zap.Error(err))
	} else if removed > 0 {
		log.Debug("history pruned", zap.Int64("removed", removed))
	}
}
