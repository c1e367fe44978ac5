package interaction

import "github.com/matzehuels/dragdrop/pkg/board"

// SetFocus moves focus to t and emits a FocusEvent. Disabled and unknown
// targets are ignored.
func (c *Controller) SetFocus(t Target) error {
	if err := c.checkAlive(); err != nil {
		return err
	}
	switch t.Kind {
	case TargetItem:
		if it := c.board.Item(t.Item); it == nil || !it.Focusable() {
			return nil
		}
	case TargetArea:
		if a := c.board.Area(t.Area); a == nil || !a.Focusable() {
			return nil
		}
	}
	c.setFocus(t)
	return nil
}

// FocusNext moves focus forward along the relevant chain: allowed areas
// while an item is selected on a board with areas, remaining items
// otherwise. It wraps around and returns the new focus.
func (c *Controller) FocusNext() (Target, error) { return c.step(true) }

// FocusPrev is [Controller.FocusNext] backwards.
func (c *Controller) FocusPrev() (Target, error) { return c.step(false) }

func (c *Controller) step(forward bool) (Target, error) {
	if err := c.checkAlive(); err != nil {
		return NoTarget, err
	}

	next := NoTarget
	if c.session.phase == PhaseItemSelected && c.board.HasAreas() {
		from := board.NoArea
		if c.focus.IsArea() {
			from = c.focus.Area
		}
		ref := c.board.NextAllowed(from)
		if !forward {
			ref = c.board.PrevAllowed(from)
		}
		if ref != board.NoArea {
			next = AreaTarget(ref)
		}
	} else {
		from := board.NoItem
		if c.focus.IsItem() {
			from = c.focus.Item
		}
		ref := c.board.NextRemaining(from)
		if !forward {
			ref = c.board.PrevRemaining(from)
		}
		if ref != board.NoItem {
			next = ItemTarget(ref)
		}
	}

	if next.IsNone() {
		return c.focus, nil
	}
	c.setFocus(next)
	return next, nil
}

func (c *Controller) setFocus(t Target) {
	c.focus = t
	c.emit(FocusEvent{Target: t})
}
