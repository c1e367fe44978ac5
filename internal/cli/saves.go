package cli

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dragdrop/pkg/errors"
	"github.com/matzehuels/dragdrop/pkg/store"
)

// savesCommand groups the commands that manage saved sessions.
func (c *CLI) savesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "saves",
		Short: "List and delete saved sessions",
		Long: `Sessions saved with save (or --save) are kept in the store configured in
the settings file: JSON files under ~/.config/dragdrop/saves by default,
or a SQLite database when store.backend is "sqlite".`,
	}
	cmd.AddCommand(c.savesListCommand(), c.savesDeleteCommand())
	return cmd
}

func (c *CLI) savesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved sessions, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			st, err := c.settings.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			list, err := st.List(ctx)
			if err != nil {
				return err
			}
			if len(list) == 0 {
				printInfo(out, "No saved sessions")
				printNextStep(out, "Save one from the console", "dragdrop repl board.toml --save <name>")
				return nil
			}
			fmt.Fprintln(out, savesTable(list))
			return nil
		},
	}
}

func savesTable(list []store.Summary) string {
	rows := make([][]string, len(list))
	for i, s := range list {
		rows[i] = []string{
			s.Name,
			filepath.Base(s.Board),
			strconv.Itoa(s.Placed) + "/" + strconv.Itoa(s.Items),
			s.SavedAt.Local().Format("2006-01-02 15:04"),
		}
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("NAME", "BOARD", "PLACED", "SAVED").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return StyleTitle.Padding(0, 1)
			case col == 0:
				return StyleValue.Padding(0, 1)
			default:
				return lipgloss.NewStyle().Padding(0, 1)
			}
		}).
		String()
}

func (c *CLI) savesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <name>...",
		Aliases: []string{"rm"},
		Short:   "Delete saved sessions",
		Args:    cobra.MinimumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return c.saveNames(cmd), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			st, err := c.settings.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			for _, name := range args {
				save, err := st.Get(ctx, name)
				if err != nil {
					return err
				}
				if save == nil {
					return errors.New(errors.ErrCodeNotFound, "no save named %q", name)
				}
				if err := st.Delete(ctx, name); err != nil {
					return err
				}
				printSuccess(out, "Deleted %s", name)
			}
			return nil
		},
	}
}

// saveNames lists save names for shell completion, ignoring errors.
func (c *CLI) saveNames(cmd *cobra.Command) []string {
	ctx := cmd.Context()
	if s, err := loadSettings(c.settingsPath); err == nil {
		c.settings = s
	}
	st, err := c.settings.openStore(ctx)
	if err != nil {
		return nil
	}
	defer st.Close()
	list, err := st.List(ctx)
	if err != nil {
		return nil
	}
	names := make([]string, len(list))
	for i, s := range list {
		names[i] = s.Name
	}
	return names
}
