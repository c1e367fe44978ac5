package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dragdrop/pkg/board"
	"github.com/matzehuels/dragdrop/pkg/errors"
	"github.com/matzehuels/dragdrop/pkg/inspect"
)

// inspectCommand creates the inspect command, which draws a board's
// ownership and navigation chains as a graph.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		format   string
		output   string
		resume   string
		detailed bool
		noChains bool
	)

	cmd := &cobra.Command{
		Use:   "inspect <board>",
		Short: "Draw a board's ownership and focus chains",
		Long: `Render the board as a Graphviz graph: areas own their items, and dashed
edges follow the remaining-item and allowed-area focus chains.

Pass --resume to inspect a saved session instead of the initial board.`,
		Example: `  dragdrop inspect fruit.toml | dot -Tpng > fruit.png
  dragdrop inspect fruit.toml --format svg -o fruit.svg --resume monday`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: boardFileCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			prog := newProgress(loggerFromContext(ctx))

			cfg, _, err := c.loadBoard(ctx, args[0])
			if err != nil {
				return err
			}
			b, err := board.New(cfg, nil)
			if err != nil {
				return err
			}

			if resume != "" {
				st, err := c.settings.openStore(ctx)
				if err != nil {
					return err
				}
				defer st.Close()
				save, err := loadSave(ctx, st, resume)
				if err != nil {
					return err
				}
				if err := b.Restore(save.Snapshot); err != nil {
					return err
				}
			}

			dot := inspect.ToDOT(b, inspect.Options{Detailed: detailed, HideChains: noChains})
			data := []byte(dot)
			switch format {
			case "dot":
			case "svg":
				if data, err = inspect.RenderSVG(dot); err != nil {
					return err
				}
			default:
				return errors.New(errors.ErrCodeInvalidInput, "unknown format %q%s", format, didYouMean(format, []string{"dot", "svg"}))
			}

			if output == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			prog.done("Rendered " + output)
			printFile(cmd.OutOrStdout(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot or svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	cmd.Flags().StringVar(&resume, "resume", "", "inspect a saved session")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "label nodes with groups, capacity and flags")
	cmd.Flags().BoolVar(&noChains, "no-chains", false, "hide the focus chain edges")
	cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions([]string{"dot", "svg"}, cobra.ShellCompDirectiveNoFileComp))
	return cmd
}
