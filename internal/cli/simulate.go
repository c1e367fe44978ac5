package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// simulateCommand creates the simulate command, which runs a console
// script against a board without a terminal.
func (c *CLI) simulateCommand() *cobra.Command {
	var (
		flags      sessionFlags
		transcript bool
	)

	cmd := &cobra.Command{
		Use:   "simulate <board> [script]",
		Short: "Run a console script against a board",
		Long: `Run repl commands from a script file (or stdin) against a board.

By default the final board snapshot is printed as JSON. With --transcript
the announcements are printed instead, one per line, exactly as the repl
would show them. The script stops at the first failing line.`,
		Example: `  dragdrop simulate fruit.toml moves.txt
  echo "select apple\ndrop basket" | dragdrop simulate fruit.toml --transcript`,
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return boardFileCompletion(cmd, args, toComplete)
			}
			return nil, cobra.ShellCompDirectiveDefault
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			out := cmd.OutOrStdout()

			script := io.Reader(cmd.InOrStdin())
			if len(args) == 2 && args[1] != "-" {
				f, err := os.Open(args[1])
				if err != nil {
					return fmt.Errorf("open script: %w", err)
				}
				defer f.Close()
				script = f
			}

			consoleOut := io.Discard
			if transcript {
				consoleOut = out
			}
			con, closeStore, err := c.openConsole(ctx, args[0], consoleOut, &flags)
			if err != nil {
				return err
			}
			defer closeStore()

			n, err := runScript(ctx, con, script)
			logger.Debug("script finished", "lines", n, "err", err)
			if err != nil {
				return err
			}
			if err := flags.finish(ctx, con); err != nil {
				return err
			}
			if transcript {
				return nil
			}
			return writeSnapshot(out, con)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&transcript, "transcript", false, "print announcements instead of the final snapshot")
	return cmd
}

// runScript executes r line by line and returns the number of lines read.
// The first failing line aborts the run.
func runScript(ctx context.Context, con *console, r io.Reader) (int, error) {
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		if err := ctx.Err(); err != nil {
			return n, err
		}
		if err := con.exec(ctx, sc.Text()); err != nil {
			return n, fmt.Errorf("line %d: %w", n, err)
		}
	}
	return n, sc.Err()
}

func writeSnapshot(w io.Writer, con *console) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(con.ctrl.Board().Snapshot())
}
