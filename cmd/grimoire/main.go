package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"grimoire/internal/config"
	"grimoire/internal/logging"
	"grimoire/internal/ux"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	workspace  string
	configPath string

	// Logger
	logger *zap.Logger

	// Loaded in PersistentPreRunE
	cfg   *config.Config
	prefs *ux.PreferencesManager
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "grimoire",
	Short: "grimoire - the Grand Grimoire terminal",
	Long: `grimoire plays the apprentice's arrival at the Grand Grimoire: a CRT
boot, Sasquatch's greeting, the profile checks, the system load and the
rune calibration ritual, then hands over to the prompt.

The intro plays in full on the first run and is skipped afterwards unless
--replay is given. Press ESC (or s) to skip, q to quit.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logger
		zcfg := zap.NewProductionConfig()
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return loadRuntime()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.CloseAll()
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runIntro,
}

// loadRuntime resolves the workspace and loads config, file logging and
// preferences.
func loadRuntime() error {
	if workspace == "" {
		root, err := config.FindWorkspaceRoot()
		if err != nil {
			return fmt.Errorf("failed to resolve workspace: %w", err)
		}
		workspace = root
	}

	path := configPath
	if path == "" {
		path = filepath.Join(workspace, config.DirName, "config.yaml")
	}
	c, err := config.Load(path)
	if err != nil {
		return err
	}
	c.Resolve(workspace)
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", path, err)
	}
	cfg = c

	if err := logging.Initialize(workspace, cfg.Logging); err != nil {
		return fmt.Errorf("failed to initialize file logging: %w", err)
	}
	boot := logging.Get(logging.CategoryBoot)
	boot.Info("runtime loaded",
		zap.String("workspace", workspace),
		zap.String("config", path),
	)

	result, err := ux.MigratePreferences(workspace)
	if err != nil {
		// A broken preferences file never blocks the intro.
		logger.Warn("preferences migration failed", zap.Error(err))
	} else if result.WasMigrated {
		boot.Info("preferences migrated",
			zap.String("from", result.FromVersion),
			zap.String("to", result.ToVersion),
			zap.Strings("preserved", result.PreservedData),
		)
	}

	prefs = ux.NewPreferencesManager(workspace)
	if err := prefs.Load(); err != nil {
		logger.Warn("failed to load preferences, using defaults", zap.Error(err))
	}
	return nil
}

// resolveTheme picks the phosphor theme: flag, then GRIMOIRE_THEME, then the
// saved preference, then the config file.
func resolveTheme(flag string) string {
	if flag != "" {
		return flag
	}
	if _, ok := os.LookupEnv("GRIMOIRE_THEME"); ok {
		return cfg.UI.Theme
	}
	if p := prefs.Get().Theme; config.IsTheme(p) {
		return p
	}
	return cfg.UI.Theme
}

// cmdContext is the command's context, or Background when the command was
// invoked directly.
func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace directory (default: nearest .grimoire or current)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: <workspace>/.grimoire/config.yaml)")

	addIntroFlags(rootCmd)
	addIntroFlags(introCmd)

	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Number of runs to show (0 = all)")
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyStatsCmd)

	contentLintCmd.Flags().BoolVar(&lintWatch, "watch", false, "Re-lint whenever the file changes")
	contentDumpCmd.Flags().StringVar(&dumpPath, "content", "", "Content file to merge over the defaults")
	contentCmd.AddCommand(contentDumpCmd)
	contentCmd.AddCommand(contentLintCmd)

	prefsCmd.AddCommand(prefsShowCmd)
	prefsCmd.AddCommand(prefsSetCmd)
	prefsCmd.AddCommand(prefsResetIntroCmd)

	// Add commands
	rootCmd.AddCommand(introCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(contentCmd)
	rootCmd.AddCommand(prefsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
