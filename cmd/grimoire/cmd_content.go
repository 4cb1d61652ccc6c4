package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"grimoire/internal/content"
	"grimoire/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	lintWatch bool
	dumpPath  string
)

// contentCmd groups the narrative table tools
var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Inspect and check the intro's narrative tables",
}

// contentDumpCmd prints the effective tables as YAML
var contentDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the narrative tables as YAML",
	Long: `Prints the tables the intro would use, in the format --content accepts.
Redirect the output to a file to start a content override:

  grimoire content dump > .grimoire/content.yaml`,
	Args: cobra.NoArgs,
	RunE: runContentDump,
}

// contentLintCmd validates a content override file
var contentLintCmd = &cobra.Command{
	Use:   "lint [file]",
	Short: "Validate a content override file",
	Long: `Loads a content file over the defaults and checks the rules every beat
relies on: no empty tables, unique check and rune names, distinct glyphs and
a ready message at the end of the loading table.

The file defaults to intro.content_path from the config. With --watch the
file is re-checked every time it is saved until Ctrl-C.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runContentLint,
}

func runContentDump(cmd *cobra.Command, args []string) error {
	path := dumpPath
	if path == "" {
		path = cfg.Intro.ContentPath
	}
	tables, err := content.Load(path)
	if err != nil {
		return err
	}
	data, err := tables.Marshal()
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runContentLint(cmd *cobra.Command, args []string) error {
	path := cfg.Intro.ContentPath
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return errors.New("no content file given and intro.content_path is not set")
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("cannot lint %s: %w", path, err)
	}

	out := cmd.OutOrStdout()
	tables, err := content.Load(path)
	report(out, path, tables, err)
	if !lintWatch {
		return err
	}

	ctx, stop := signal.NotifyContext(cmdContext(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return watchContent(ctx, path, out)
}

// watchContent re-lints path on every change until ctx is done.
func watchContent(ctx context.Context, path string, out io.Writer) error {
	log := logging.Get(logging.CategoryContent)
	w := content.NewWatcher(path, func(t *content.Tables, err error) {
		report(out, path, t, err)
		if err != nil {
			log.Info("content lint failed", zap.String("path", path), zap.Error(err))
		}
	}, log)
	fmt.Fprintf(out, "watching %s (Ctrl-C to stop)\n", path)
	if err := w.Start(ctx); err != nil {
		return err
	}
	defer w.Stop()

	<-ctx.Done()
	return nil
}

func report(out io.Writer, path string, t *content.Tables, err error) {
	if err != nil {
		fmt.Fprintf(out, "%s: FAIL\n", path)
		for _, line := range splitJoined(err) {
			fmt.Fprintf(out, "  - %s\n", line)
		}
		return
	}
	if t != nil {
		fmt.Fprintf(out, "%s: ok (%d boot lines, %d checks, %d runes)\n", path, len(t.Boot), len(t.SystemChecks), len(t.Runes))
		return
	}
	fmt.Fprintf(out, "%s: ok\n", path)
}

// splitJoined lists the individual problems of a validation error.
func splitJoined(err error) []string {
	var joined interface{ Unwrap() []error }
	if !errors.As(err, &joined) {
		return []string{err.Error()}
	}
	var lines []string
	for _, inner := range joined.Unwrap() {
		lines = append(lines, inner.Error())
	}
	return lines
}
