package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dragdrop/pkg/config"
	"github.com/matzehuels/dragdrop/pkg/errors"
	"github.com/matzehuels/dragdrop/pkg/store"
)

// sessionFlags are shared by the commands that run a board.
type sessionFlags struct {
	save   string
	resume string
}

func (f *sessionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.save, "save", "", "save the board under this name on exit")
	cmd.Flags().StringVar(&f.resume, "resume", "", "restore a saved board before starting")
}

func (f *sessionFlags) needsStore() bool { return f.save != "" || f.resume != "" }

// loadBoard reads a board file and applies user settings on top.
func (c *CLI) loadBoard(ctx context.Context, path string) (config.Config, string, error) {
	logger := loggerFromContext(ctx)
	abs, err := filepath.Abs(path)
	if err != nil {
		return config.Config{}, "", err
	}
	cfg, err := config.Load(abs)
	if err != nil {
		return config.Config{}, "", err
	}
	c.settings.apply(&cfg)
	logger.Debug("board loaded", "path", abs, "items", len(cfg.DragItems), "areas", len(cfg.DropAreas))
	return cfg, abs, nil
}

// openConsole builds a console for the board at path, wiring the save store
// when the session flags ask for one.
func (c *CLI) openConsole(ctx context.Context, path string, out io.Writer, flags *sessionFlags) (*console, func(), error) {
	cfg, abs, err := c.loadBoard(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	con, err := newConsole(cfg, out)
	if err != nil {
		return nil, nil, err
	}
	con.boardPath = abs

	closeFn := func() {}
	st, err := c.settings.openStore(ctx)
	if err != nil {
		if flags != nil && flags.needsStore() {
			return nil, nil, err
		}
		loggerFromContext(ctx).Debug("saves unavailable", "err", err)
	} else {
		con.saves = st
		closeFn = func() { st.Close() }
	}

	if flags != nil && flags.resume != "" {
		if err := con.resume(ctx, flags.resume); err != nil {
			closeFn()
			return nil, nil, err
		}
	}
	return con, closeFn, nil
}

// loadSave fetches a save, treating a missing one as NOT_FOUND.
func loadSave(ctx context.Context, st store.Store, name string) (*store.Save, error) {
	save, err := st.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if save == nil {
		return nil, errors.New(errors.ErrCodeNotFound, "no save named %q", name)
	}
	return save, nil
}

// finish saves the board if --save was given.
func (f *sessionFlags) finish(ctx context.Context, con *console) error {
	if f.save == "" {
		return nil
	}
	if err := con.exec(ctx, "save "+f.save); err != nil {
		return fmt.Errorf("save on exit: %w", err)
	}
	return nil
}
