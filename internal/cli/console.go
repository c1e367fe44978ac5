package cli

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/matzehuels/dragdrop/pkg/board"
	"github.com/matzehuels/dragdrop/pkg/config"
	"github.com/matzehuels/dragdrop/pkg/errors"
	"github.com/matzehuels/dragdrop/pkg/geom"
	"github.com/matzehuels/dragdrop/pkg/interaction"
	"github.com/matzehuels/dragdrop/pkg/layout"
	"github.com/matzehuels/dragdrop/pkg/store"
)

// console is the line-oriented host shared by repl and simulate. It drives a
// controller over a headless layout grid and writes announcements to out.
// Time only advances between commands: every command ends by running all
// pending animations and timers.
type console struct {
	ctrl  *interaction.Controller
	grid  *layout.Grid
	sched *interaction.ManualScheduler
	out   io.Writer

	boardPath string
	saves     store.Store
}

func newConsole(cfg config.Config, out io.Writer) (*console, error) {
	c := &console{out: out}
	c.sched = interaction.NewManualScheduler(time.Unix(0, 0).UTC())
	c.grid = layout.New(c.sched, layout.Options{AlignRemaining: cfg.AlignRemainingItems})

	ctrl, err := interaction.New(cfg,
		interaction.WithRenderer(c.grid),
		interaction.WithScheduler(c.sched),
		interaction.WithObserver(interaction.ObserverFunc(c.onEvent)),
	)
	if err != nil {
		return nil, err
	}
	c.ctrl = ctrl
	return c, nil
}

func (c *console) onEvent(e interaction.Event) {
	switch e := e.(type) {
	case interaction.AnnounceEvent:
		fmt.Fprintln(c.out, e.Text)
	case interaction.FocusEvent:
		if !e.Target.IsNone() {
			fmt.Fprintln(c.out, "focus: "+c.ctrl.Describe(e.Target))
		}
	case interaction.StateEvent:
		if e.Enabled {
			fmt.Fprintln(c.out, "Drag and drop enabled.")
		} else {
			fmt.Fprintln(c.out, "Drag and drop disabled.")
		}
	}
}

// =============================================================================
// Command table
// =============================================================================

type argKind int

const (
	argNone argKind = iota
	argItem
	argTarget
	argItemTarget
	argAny
	argSave
)

type consoleCommand struct {
	name     string
	usage    string
	help     string
	min, max int
	args     argKind
	run      func(c *console, ctx context.Context, args []string) error
}

var consoleCommands = []consoleCommand{
	{name: "select", usage: "select <item>", help: "pick up an item", min: 1, max: 1, args: argItem, run: (*console).cmdSelect},
	{name: "drop", usage: "drop <target>", help: "drop the picked up item on an area (or item)", min: 1, max: 1, args: argTarget, run: (*console).cmdDrop},
	{name: "drag", usage: "drag <item> <target|outside>", help: "drag an item with the pointer", min: 2, max: 2, args: argItemTarget, run: (*console).cmdDrag},
	{name: "activate", usage: "activate", help: "press enter on the focused element", run: (*console).cmdActivate},
	{name: "cancel", usage: "cancel", help: "put the picked up item back", run: (*console).cmdCancel},
	{name: "next", usage: "next", help: "move focus forward", run: (*console).cmdNext},
	{name: "prev", usage: "prev", help: "move focus back", run: (*console).cmdPrev},
	{name: "focus", usage: "focus <target>", help: "focus an item or area", min: 1, max: 1, args: argTarget, run: (*console).cmdFocus},
	{name: "describe", usage: "describe [target]", help: "describe an item or area (default: focus)", max: 1, args: argTarget, run: (*console).cmdDescribe},
	{name: "mark", usage: "mark <item> [correct|incorrect]", help: "mark an item correct or incorrect", min: 1, max: 2, args: argItem, run: (*console).cmdMark},
	{name: "enable", usage: "enable [id]", help: "enable an item, an area or the whole board", max: 1, args: argAny, run: (*console).cmdEnable},
	{name: "disable", usage: "disable [id]", help: "disable an item, an area or the whole board", max: 1, args: argAny, run: (*console).cmdDisable},
	{name: "reset", usage: "reset", help: "return every item home", run: (*console).cmdReset},
	{name: "reset-incorrect", usage: "reset-incorrect", help: "return placed items not marked correct", run: (*console).cmdResetIncorrect},
	{name: "disable-correct", usage: "disable-correct", help: "lock items marked correct (boards without areas)", run: (*console).cmdDisableCorrect},
	{name: "show", usage: "show", help: "draw the board", run: (*console).cmdShow},
	{name: "status", usage: "status", help: "summarize the board", run: (*console).cmdStatus},
	{name: "save", usage: "save <name>", help: "save the board", min: 1, max: 1, args: argSave, run: (*console).cmdSave},
	{name: "resume", usage: "resume <name>", help: "restore a saved board", min: 1, max: 1, args: argSave, run: (*console).cmdResume},
}

func lookupCommand(name string) (consoleCommand, bool) {
	i := slices.IndexFunc(consoleCommands, func(cmd consoleCommand) bool { return cmd.name == name })
	if i < 0 {
		return consoleCommand{}, false
	}
	return consoleCommands[i], true
}

func commandNames() []string {
	names := make([]string, 0, len(consoleCommands)+1)
	for _, cmd := range consoleCommands {
		names = append(names, cmd.name)
	}
	return append(names, "help")
}

// exec runs one line. Blank lines and lines starting with # are ignored.
func (c *console) exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}
	name, args := strings.ToLower(fields[0]), fields[1:]
	if name == "help" || name == "?" {
		c.help()
		return nil
	}

	cmd, ok := lookupCommand(name)
	if !ok {
		return errors.New(errors.ErrCodeInvalidInput, "unknown command %q%s", name, didYouMean(name, commandNames()))
	}
	if len(args) < cmd.min || len(args) > cmd.max {
		return errors.New(errors.ErrCodeInvalidInput, "usage: %s", cmd.usage)
	}

	err := cmd.run(c, ctx, args)
	c.sched.Flush()
	return err
}

func (c *console) help() {
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	for _, cmd := range consoleCommands {
		fmt.Fprintf(tw, "  %s\t%s\n", cmd.usage, cmd.help)
	}
	tw.Flush()
}

// =============================================================================
// Id resolution
// =============================================================================

func (c *console) item(id string) (board.ItemRef, error) {
	b := c.ctrl.Board()
	if ref, ok := b.ItemByID(id); ok {
		return ref, nil
	}
	if _, ok := b.AreaByID(id); ok {
		return board.NoItem, errors.New(errors.ErrCodeInvalidInput, "%q is a drop area, not an item", id)
	}
	return board.NoItem, errors.New(errors.ErrCodeUnknownItem, "unknown item %q%s", id, didYouMean(id, b.ItemIDs()))
}

func (c *console) target(id string) (interaction.Target, error) {
	b := c.ctrl.Board()
	if ref, ok := b.AreaByID(id); ok {
		return interaction.AreaTarget(ref), nil
	}
	if ref, ok := b.ItemByID(id); ok {
		return interaction.ItemTarget(ref), nil
	}
	code := errors.ErrCodeUnknownItem
	if b.HasAreas() {
		code = errors.ErrCodeUnknownArea
	}
	return interaction.NoTarget, errors.New(code, "unknown target %q%s", id, didYouMean(id, append(b.AreaIDs(), b.ItemIDs()...)))
}

// =============================================================================
// Commands
// =============================================================================

func (c *console) cmdSelect(_ context.Context, args []string) error {
	ref, err := c.item(args[0])
	if err != nil {
		return err
	}
	return c.ctrl.Select(ref)
}

func (c *console) cmdDrop(_ context.Context, args []string) error {
	t, err := c.target(args[0])
	if err != nil {
		return err
	}
	return c.ctrl.DropSelected(t)
}

// cmdDrag presses on the item's centre, moves halfway, and releases over
// the target's centre so the item's rect lands on the target.
func (c *console) cmdDrag(_ context.Context, args []string) error {
	ref, err := c.item(args[0])
	if err != nil {
		return err
	}
	from := c.grid.CurrentPosition(interaction.ItemTarget(ref)).Center()

	var to geom.Point
	if strings.EqualFold(args[1], "outside") {
		w, h := c.grid.Size()
		to = geom.Point{X: w + from.X + 100, Y: h + 100}
	} else {
		t, err := c.target(args[1])
		if err != nil {
			return err
		}
		to = c.grid.CurrentPosition(t).Center()
	}

	if err := c.ctrl.PointerDown(ref, from); err != nil {
		return err
	}
	if err := c.ctrl.PointerMove(ref, geom.Point{X: (from.X + to.X) / 2, Y: (from.Y + to.Y) / 2}); err != nil {
		return err
	}
	return c.ctrl.PointerUp(ref, to)
}

func (c *console) cmdActivate(context.Context, []string) error {
	focus := c.ctrl.Focus()
	if focus.IsNone() {
		return errors.New(errors.ErrCodeInvalidInput, "nothing focused; use next or focus <target>")
	}
	return c.ctrl.Activate(focus)
}

func (c *console) cmdCancel(context.Context, []string) error { return c.ctrl.Cancel() }

func (c *console) cmdNext(context.Context, []string) error {
	_, err := c.ctrl.FocusNext()
	return err
}

func (c *console) cmdPrev(context.Context, []string) error {
	_, err := c.ctrl.FocusPrev()
	return err
}

func (c *console) cmdFocus(_ context.Context, args []string) error {
	t, err := c.target(args[0])
	if err != nil {
		return err
	}
	return c.ctrl.SetFocus(t)
}

func (c *console) cmdDescribe(_ context.Context, args []string) error {
	t := c.ctrl.Focus()
	if len(args) == 1 {
		var err error
		if t, err = c.target(args[0]); err != nil {
			return err
		}
	}
	if t.IsNone() {
		fmt.Fprintln(c.out, c.ctrl.Instructions())
		return nil
	}
	fmt.Fprintln(c.out, c.ctrl.Describe(t))
	return nil
}

func (c *console) cmdMark(_ context.Context, args []string) error {
	ref, err := c.item(args[0])
	if err != nil {
		return err
	}
	correct := true
	if len(args) == 2 {
		switch strings.ToLower(args[1]) {
		case "correct":
		case "incorrect":
			correct = false
		default:
			return errors.New(errors.ErrCodeInvalidInput, "mark: want correct or incorrect, got %q", args[1])
		}
	}
	return c.ctrl.SetCorrect(ref, correct)
}

func (c *console) cmdEnable(_ context.Context, args []string) error {
	return c.setDisabled(args, false)
}

func (c *console) cmdDisable(_ context.Context, args []string) error {
	return c.setDisabled(args, true)
}

// setDisabled toggles the whole controller when no id is given.
func (c *console) setDisabled(args []string, disabled bool) error {
	if len(args) == 0 {
		if disabled {
			return c.ctrl.Disable()
		}
		return c.ctrl.Enable()
	}
	t, err := c.target(args[0])
	if err != nil {
		return err
	}
	if t.IsArea() {
		return c.ctrl.SetAreaDisabled(t.Area, disabled)
	}
	return c.ctrl.SetItemDisabled(t.Item, disabled)
}

func (c *console) cmdReset(context.Context, []string) error { return c.ctrl.Reset() }

func (c *console) cmdResetIncorrect(context.Context, []string) error {
	_, err := c.ctrl.ResetIncorrect()
	return err
}

func (c *console) cmdDisableCorrect(context.Context, []string) error {
	_, err := c.ctrl.DisableCorrectItems()
	return err
}

func (c *console) cmdShow(context.Context, []string) error {
	fmt.Fprint(c.out, c.grid.Draw().String())
	fmt.Fprintln(c.out, c.ctrl.Status())
	return nil
}

func (c *console) cmdStatus(context.Context, []string) error {
	fmt.Fprintln(c.out, c.ctrl.Status())
	return nil
}

func (c *console) cmdSave(ctx context.Context, args []string) error {
	if c.saves == nil {
		return errors.New(errors.ErrCodeUnsupported, "saving is not available here")
	}
	save := &store.Save{Name: args[0], Board: c.boardPath, Snapshot: c.ctrl.Board().Snapshot()}
	if err := c.saves.Set(ctx, save); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Saved as %s.\n", save.Name)
	return nil
}

func (c *console) cmdResume(ctx context.Context, args []string) error {
	if c.saves == nil {
		return errors.New(errors.ErrCodeUnsupported, "saves are not available here")
	}
	return c.resume(ctx, args[0])
}

func (c *console) resume(ctx context.Context, name string) error {
	save, err := loadSave(ctx, c.saves, name)
	if err != nil {
		return err
	}
	if err := c.ctrl.Restore(save.Snapshot); err != nil {
		return fmt.Errorf("resume %s: %w", name, err)
	}
	c.sched.Flush()
	return nil
}
