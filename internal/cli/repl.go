package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	dderrors "github.com/matzehuels/dragdrop/pkg/errors"
)

// replCommand creates the repl command: a line-oriented console suited to
// screen readers.
func (c *CLI) replCommand() *cobra.Command {
	var flags sessionFlags

	cmd := &cobra.Command{
		Use:   "repl <board>",
		Short: "Play a board from a line-oriented console",
		Long: `Play a board by typing commands. Every action is answered with the same
announcement a screen reader would speak. Tab completes commands and ids.

Type help for the list of commands and quit to leave.`,
		Example: `  dragdrop repl fruit.toml
  dragdrop repl fruit.toml --resume monday --save monday`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: boardFileCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			con, closeStore, err := c.openConsole(ctx, args[0], out, &flags)
			if err != nil {
				return err
			}
			defer closeStore()

			historyFile := ""
			if dir, err := configDir(); err == nil {
				historyFile = filepath.Join(dir, "history")
			}
			rl, err := readline.NewEx(&readline.Config{
				Prompt:          StyleTitle.Render(appName) + StyleDim.Render("> "),
				HistoryFile:     historyFile,
				AutoComplete:    con.completer(),
				InterruptPrompt: "^C",
				EOFPrompt:       "quit",
				Stdout:          out,
			})
			if err != nil {
				return fmt.Errorf("init readline: %w", err)
			}
			defer rl.Close()

			fmt.Fprintln(out, con.ctrl.Instructions())
			if err := repl(ctx, rl, con, out); err != nil {
				return err
			}
			return flags.finish(ctx, con)
		},
	}

	flags.register(cmd)
	return cmd
}

// lineReader is the part of readline.Instance the loop needs.
type lineReader interface {
	Readline() (string, error)
}

func repl(ctx context.Context, rl lineReader, con *console, out io.Writer) error {
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch strings.TrimSpace(strings.ToLower(line)) {
		case "quit", "exit":
			return nil
		}
		if err := con.exec(ctx, line); err != nil {
			printError(out, "%s", dderrors.UserMessage(err))
		}
	}
}

// completer completes command names, then ids appropriate for each
// command's arguments.
func (c *console) completer() *readline.PrefixCompleter {
	b := c.ctrl.Board()
	items := func(string) []string { return b.ItemIDs() }
	targets := func(string) []string { return append(b.AreaIDs(), b.ItemIDs()...) }
	dropTargets := func(string) []string { return append(targets(""), "outside") }
	saves := func(string) []string {
		if c.saves == nil {
			return nil
		}
		list, err := c.saves.List(context.Background())
		if err != nil {
			return nil
		}
		names := make([]string, len(list))
		for i, s := range list {
			names[i] = s.Name
		}
		return names
	}

	var pcs []readline.PrefixCompleterInterface
	for _, cmd := range consoleCommands {
		var children []readline.PrefixCompleterInterface
		switch cmd.args {
		case argItem:
			children = append(children, readline.PcItemDynamic(items))
		case argTarget, argAny:
			children = append(children, readline.PcItemDynamic(targets))
		case argItemTarget:
			children = append(children, readline.PcItemDynamic(items, readline.PcItemDynamic(dropTargets)))
		case argSave:
			children = append(children, readline.PcItemDynamic(saves))
		}
		pcs = append(pcs, readline.PcItem(cmd.name, children...))
	}
	pcs = append(pcs, readline.PcItem("help"), readline.PcItem("quit"))
	return readline.NewPrefixCompleter(pcs...)
}
