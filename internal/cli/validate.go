package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dragdrop/pkg/board"
	"github.com/matzehuels/dragdrop/pkg/config"
	"github.com/matzehuels/dragdrop/pkg/errors"
)

// watchDebounce collapses the burst of events an editor save produces.
const watchDebounce = 300 * time.Millisecond

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "validate <board>...",
		Short: "Check board files for problems",
		Long: `Check one or more board files. Every problem is reported with the field it
concerns. With --watch the files are checked again whenever they change.`,
		Example: `  dragdrop validate fruit.toml
  dragdrop validate boards/*.yaml --watch`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: boardFileCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			failed := 0
			for _, path := range args {
				if !c.validateFile(ctx, out, path) {
					failed++
				}
			}
			if watch {
				return c.watchFiles(ctx, out, args)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d boards invalid", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "validate again when a file changes")
	return cmd
}

// validateFile reports on one file and returns whether it is valid.
func (c *CLI) validateFile(ctx context.Context, out io.Writer, path string) bool {
	prog := newProgress(loggerFromContext(ctx))

	cfg, err := config.Load(path)
	if err == nil {
		_, err = board.New(cfg, nil)
	}
	if err != nil {
		printError(out, "%s", path)
		var ce *errors.ConfigurationError
		if stderrors.As(err, &ce) {
			for _, p := range ce.Problems {
				printDetail(out, "%s", p)
			}
		} else {
			printDetail(out, "%s", errors.UserMessage(err))
		}
		return false
	}

	printSuccess(out, "%s %s", path, StyleDim.Render(boardSummary(cfg)))
	prog.done("Validated " + filepath.Base(path))
	return true
}

func boardSummary(cfg config.Config) string {
	if !cfg.HasAreas() {
		return fmt.Sprintf("(%d items, reorder by %s)", len(cfg.DragItems), cfg.ShiftOrSwapOnNoAreas)
	}
	return fmt.Sprintf("(%d items, %d areas)", len(cfg.DragItems), len(cfg.DropAreas))
}

// watchFiles re-validates files as they change until ctx is cancelled.
// Directories are watched rather than files so editors that save by
// renaming are still seen.
func (c *CLI) watchFiles(ctx context.Context, out io.Writer, paths []string) error {
	logger := loggerFromContext(ctx)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer w.Close()

	watched := make(map[string]string, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		watched[abs] = p
		dir := filepath.Dir(abs)
		if slices.Contains(w.WatchList(), dir) {
			continue
		}
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		logger.Debug("watching", "dir", dir)
	}
	printInfo(out, "Watching %d file(s). Press Ctrl+C to stop.", len(paths))

	pending := make(map[string]bool)
	timer := time.NewTimer(watchDebounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			p, ok := watched[event.Name]
			if !ok || !event.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			logger.Debug("changed", "file", event.Name, "op", event.Op.String())
			pending[p] = true
			timer.Reset(watchDebounce)

		case <-timer.C:
			for _, p := range paths {
				if pending[p] {
					c.validateFile(ctx, out, p)
				}
			}
			clear(pending)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("file watcher error", "err", err)
		}
	}
}
