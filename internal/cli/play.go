package cli

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dragdrop/pkg/board"
	"github.com/matzehuels/dragdrop/pkg/config"
	"github.com/matzehuels/dragdrop/pkg/errors"
	"github.com/matzehuels/dragdrop/pkg/geom"
	"github.com/matzehuels/dragdrop/pkg/interaction"
	"github.com/matzehuels/dragdrop/pkg/layout"
	"github.com/matzehuels/dragdrop/pkg/store"
)

// frame is the tick interval while animations or timers are pending.
const frame = 16 * time.Millisecond

// boardTop is the number of lines drawn above the board.
const boardTop = 2

// playCommand creates the play command: a full-screen board driven by the
// mouse and keyboard.
func (c *CLI) playCommand() *cobra.Command {
	var flags sessionFlags

	cmd := &cobra.Command{
		Use:   "play <board>",
		Short: "Play a board full-screen with mouse and keyboard",
		Long: `Open a board full-screen. Drag items with the mouse, or use the keyboard:

  tab / shift+tab   move focus
  enter / space     pick up the focused item, or drop on the focused target
  esc               put the picked up item back
  r                 reset the board
  q                 quit`,
		Example: `  dragdrop play fruit.toml
  dragdrop play fruit.toml --resume monday --save monday`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: boardFileCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, abs, err := c.loadBoard(ctx, args[0])
			if err != nil {
				return err
			}
			m, err := newPlayModel(cfg)
			if err != nil {
				return err
			}

			var st store.Store
			if flags.needsStore() {
				if st, err = c.settings.openStore(ctx); err != nil {
					return err
				}
				defer st.Close()
			}
			if flags.resume != "" {
				save, err := loadSave(ctx, st, flags.resume)
				if err != nil {
					return err
				}
				if err := m.ctrl.Restore(save.Snapshot); err != nil {
					return err
				}
				m.sched.Flush()
			}

			p := tea.NewProgram(m,
				tea.WithContext(ctx),
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			if _, err := p.Run(); err != nil && !stderrors.Is(err, tea.ErrProgramKilled) {
				return fmt.Errorf("run board: %w", err)
			}

			if flags.save == "" {
				return nil
			}
			save := &store.Save{Name: flags.save, Board: abs, Snapshot: m.ctrl.Board().Snapshot()}
			if err := st.Set(ctx, save); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Saved as %s", save.Name)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

// =============================================================================
// Model
// =============================================================================

type tickMsg time.Time

// playModel owns a controller and drives its scheduler from ticks, so every
// engine callback runs on the bubbletea goroutine.
type playModel struct {
	ctrl  *interaction.Controller
	grid  *layout.Grid
	sched *interaction.ManualScheduler

	last    time.Time
	ticking bool

	dragging board.ItemRef
	announce string
	focus    string
	err      string
}

func newPlayModel(cfg config.Config) (*playModel, error) {
	m := &playModel{dragging: board.NoItem}
	m.sched = interaction.NewManualScheduler(time.Now())
	m.grid = layout.New(m.sched, layout.Options{AlignRemaining: cfg.AlignRemainingItems})

	ctrl, err := interaction.New(cfg,
		interaction.WithRenderer(m.grid),
		interaction.WithScheduler(m.sched),
		interaction.WithObserver(interaction.ObserverFunc(m.onEvent)),
	)
	if err != nil {
		return nil, err
	}
	m.ctrl = ctrl
	m.announce = ctrl.Instructions()
	return m, nil
}

func (m *playModel) onEvent(e interaction.Event) {
	switch e := e.(type) {
	case interaction.AnnounceEvent:
		m.announce = e.Text
	case interaction.FocusEvent:
		m.focus = ""
		if !e.Target.IsNone() {
			m.focus = m.ctrl.Describe(e.Target)
		}
	}
}

func (m *playModel) Init() tea.Cmd { return nil }

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		now := time.Time(msg)
		if d := now.Sub(m.last); d > 0 {
			m.sched.Advance(d)
		}
		m.last = now
		return m, m.tick()

	case tea.KeyMsg:
		m.err = ""
		if quit := m.key(msg); quit {
			m.fail(m.ctrl.Destroy())
			return m, tea.Quit
		}
		return m, m.pump()

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			m.err = ""
		}
		m.mouse(msg)
		return m, m.pump()
	}
	return m, nil
}

// pump starts ticking after input left the scheduler with work. The
// scheduler clock stands still while idle.
func (m *playModel) pump() tea.Cmd {
	if m.ticking || m.sched.Pending() == 0 {
		return nil
	}
	m.last = time.Now()
	return m.tick()
}

func (m *playModel) tick() tea.Cmd {
	m.ticking = m.sched.Pending() > 0
	if !m.ticking {
		return nil
	}
	return tea.Tick(frame, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *playModel) key(msg tea.KeyMsg) (quit bool) {
	var err error
	switch msg.String() {
	case "q", "ctrl+c":
		return true
	case "tab", "right", "down":
		_, err = m.ctrl.FocusNext()
	case "shift+tab", "left", "up":
		_, err = m.ctrl.FocusPrev()
	case "enter", " ", "space":
		if focus := m.ctrl.Focus(); !focus.IsNone() {
			err = m.ctrl.Activate(focus)
		} else {
			_, err = m.ctrl.FocusNext()
		}
	case "esc":
		err = m.ctrl.Cancel()
	case "r":
		err = m.ctrl.Reset()
	}
	m.fail(err)
	return false
}

func (m *playModel) mouse(msg tea.MouseMsg) {
	p := geom.Point{X: msg.X, Y: msg.Y - boardTop}
	var err error
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		t, ok := m.grid.At(p)
		if !ok || !t.IsItem() {
			return
		}
		if err = m.ctrl.PointerDown(t.Item, p); err == nil && m.ctrl.Phase() == interaction.PhaseDragging {
			m.dragging = t.Item
		}
	case tea.MouseActionMotion:
		if m.dragging == board.NoItem {
			return
		}
		err = m.ctrl.PointerMove(m.dragging, p)
	case tea.MouseActionRelease:
		if m.dragging == board.NoItem {
			return
		}
		item := m.dragging
		m.dragging = board.NoItem
		err = m.ctrl.PointerUp(item, p)
	}
	m.fail(err)
}

func (m *playModel) fail(err error) {
	if err != nil {
		m.err = errors.UserMessage(err)
	}
}

// =============================================================================
// View
// =============================================================================

func (m *playModel) View() string {
	var sb strings.Builder
	sb.WriteString(StyleTitle.Render(appName) + "  " + StyleDim.Render(m.ctrl.Status()))
	sb.WriteString("\n\n")
	sb.WriteString(m.renderBoard())
	sb.WriteString("\n")
	sb.WriteString(StyleValue.Render(m.announce))
	sb.WriteString("\n")
	if m.focus != "" {
		sb.WriteString(StyleDim.Render("focus: " + m.focus))
	}
	sb.WriteString("\n")
	if m.err != "" {
		sb.WriteString(styleIconError.Render(iconError) + " " + m.err)
	}
	sb.WriteString("\n")
	sb.WriteString(StyleDim.Render("tab focus · enter pick up/drop · esc cancel · r reset · q quit"))
	return sb.String()
}

// renderBoard styles the drawn canvas, batching runs of equal style.
func (m *playModel) renderBoard() string {
	canvas := m.grid.Draw()
	styles := m.cellStyles()

	var sb strings.Builder
	for _, row := range canvas {
		var run strings.Builder
		cur := -1
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if cur < 0 {
				sb.WriteString(run.String())
			} else {
				sb.WriteString(styles[cur].Render(run.String()))
			}
			run.Reset()
		}
		for _, cell := range row {
			k := m.styleKey(cell)
			if k != cur {
				flush()
				cur = k
			}
			run.WriteRune(cell.Rune)
		}
		flush()
		sb.WriteString("\n")
	}
	return sb.String()
}

const (
	keyAreaBorder = iota
	keyAreaTitle
	keyAreaFocused
	keyAreaEligible
	keyItem
	keyItemFocused
	keyItemSelected
	keyItemDisabled
	keyItemCorrect
)

func (m *playModel) cellStyles() []lipgloss.Style {
	return []lipgloss.Style{
		keyAreaBorder:   styleAreaBorder,
		keyAreaTitle:    styleAreaTitle,
		keyAreaFocused:  styleAreaFocused,
		keyAreaEligible: styleAreaEligible,
		keyItem:         styleItem,
		keyItemFocused:  styleItemFocused,
		keyItemSelected: styleItemSelected,
		keyItemDisabled: styleItemDisabled,
		keyItemCorrect:  styleItemCorrect,
	}
}

// styleKey picks the style of a cell, or -1 for unstyled blanks.
func (m *playModel) styleKey(cell layout.Cell) int {
	b := m.ctrl.Board()
	focus := m.ctrl.Focus()
	switch cell.Role {
	case layout.RoleAreaBorder, layout.RoleAreaTitle:
		switch {
		case cell.Target == focus:
			return keyAreaFocused
		case m.ctrl.Phase() != interaction.PhaseIdle && b.IsAllowed(cell.Target.Area):
			return keyAreaEligible
		case cell.Role == layout.RoleAreaTitle:
			return keyAreaTitle
		}
		return keyAreaBorder
	case layout.RoleItem:
		it := b.Item(cell.Target.Item)
		switch {
		case cell.Target.Item == m.ctrl.ActiveItem():
			return keyItemSelected
		case cell.Target == focus:
			return keyItemFocused
		case it.Disabled():
			return keyItemDisabled
		case it.Correct() && it.Placed():
			return keyItemCorrect
		}
		return keyItem
	}
	return -1
}

var _ tea.Model = (*playModel)(nil)
