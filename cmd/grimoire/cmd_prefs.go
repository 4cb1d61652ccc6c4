package main

import (
	"fmt"
	"strconv"
	"strings"

	"grimoire/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// prefsCmd groups the saved preference commands
var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change saved preferences",
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show saved preferences",
	Args:  cobra.NoArgs,
	RunE:  runPrefsShow,
}

var prefsSetCmd = &cobra.Command{
	Use:   "set <theme|sound> <value>",
	Short: "Change a preference",
	Long: `Changes a saved preference.

Examples:
  grimoire prefs set theme amber
  grimoire prefs set sound off`,
	Args: cobra.ExactArgs(2),
	RunE: runPrefsSet,
}

var prefsResetIntroCmd = &cobra.Command{
	Use:   "reset-intro",
	Short: "Forget that the intro was seen so it plays in full again",
	Args:  cobra.NoArgs,
	RunE:  runPrefsResetIntro,
}

func runPrefsShow(cmd *cobra.Command, args []string) error {
	p := prefs.Get()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "file:        %s\n", prefs.Path())
	fmt.Fprintf(out, "theme:       %s\n", p.Theme)
	fmt.Fprintf(out, "sound:       %s\n", onOff(p.SoundEnabled))
	fmt.Fprintf(out, "intro seen:  %t", p.Intro.Seen)
	if p.Intro.SeenAt != "" {
		fmt.Fprintf(out, " (%s)", p.Intro.SeenAt)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "intro runs:  %d (%d skipped)\n", p.Intro.Runs, p.Intro.Skipped)
	return nil
}

func runPrefsSet(cmd *cobra.Command, args []string) error {
	key, value := strings.ToLower(args[0]), args[1]
	switch key {
	case "theme":
		if err := prefs.SetTheme(value); err != nil {
			return err
		}
	case "sound":
		enabled, err := parseOnOff(value)
		if err != nil {
			return err
		}
		prefs.SetSound(enabled)
	default:
		return fmt.Errorf("unknown preference %q (want theme or sound)", key)
	}

	if err := prefs.Save(); err != nil {
		return err
	}
	logging.Get(logging.CategoryPrefs).Info("preference changed", zap.String("key", key), zap.String("value", value))
	fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, value)
	return nil
}

func runPrefsResetIntro(cmd *cobra.Command, args []string) error {
	prefs.ResetIntro()
	if err := prefs.Save(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "The intro will play in full on the next run.")
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid sound value %q (want on or off)", s)
	}
	return b, nil
}
