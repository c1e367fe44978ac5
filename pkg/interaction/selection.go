package interaction

import (
	"github.com/matzehuels/dragdrop/pkg/board"
	"github.com/matzehuels/dragdrop/pkg/errors"
)

// Activate is the select modality's single verb, bound to space or enter on
// the focused element:
//
//   - on an item with nothing selected: pick the item up
//   - on the selected item again: cancel
//   - on an eligible target while an item is selected: drop it there
//   - on another item on a board with areas: pick that item up instead
//
// Disabled items cannot be picked up or targeted.
func (c *Controller) Activate(t Target) error {
	if err := c.checkAlive(); err != nil {
		return err
	}
	if !c.enabled {
		return nil
	}

	switch t.Kind {
	case TargetItem:
		return c.activateItem(t.Item)
	case TargetArea:
		if c.board.Area(t.Area) == nil {
			return errors.New(errors.ErrCodeUnknownArea, "unknown area %d", t.Area)
		}
		if c.session.phase != PhaseItemSelected {
			return errors.New(errors.ErrCodeInvalidInput, "no item selected")
		}
		c.confirm(t)
		return nil
	default:
		return errors.New(errors.ErrCodeInvalidInput, "no target")
	}
}

func (c *Controller) activateItem(item board.ItemRef) error {
	ok, err := c.acceptsInput(item)
	if err != nil || !ok {
		return err
	}

	if c.session.phase == PhaseItemSelected {
		selected := c.session.item
		if selected == item {
			c.cancelSession(false)
			return nil
		}
		if !c.board.HasAreas() {
			c.confirm(ItemTarget(item))
			return nil
		}
	}
	c.selectItem(item)
	return nil
}

func (c *Controller) selectItem(item board.ItemRef) {
	c.beginSession(PhaseItemSelected, item, board.ModalitySelect)
	c.focus = ItemTarget(item)
	c.emit(ItemSelectedEvent{Item: item, Eligible: c.eligibleTargets(item)})
	c.announce(c.text.Selected(c.A11yState(), item))
}

// confirm drops the selected item on t through the shared placement path.
func (c *Controller) confirm(t Target) {
	item := c.session.item
	ev := c.drop(item, t, board.ModalitySelect, false)
	dropped := c.board.Items()
	if t.IsArea() {
		dropped = c.board.Area(t.Area).InnerItems()
	}
	c.emit(AreaSelectedEvent{Item: item, Target: t, Dropped: ev.Changed(), DroppedItems: dropped})
}

// Select picks up item, the same as activating it with nothing selected.
func (c *Controller) Select(item board.ItemRef) error {
	ok, err := c.acceptsInput(item)
	if err != nil || !ok {
		return err
	}
	c.selectItem(item)
	return nil
}

// DropSelected drops the selected item on t. Unlike [Controller.Activate]
// it never changes the selection.
func (c *Controller) DropSelected(t Target) error {
	if err := c.checkAlive(); err != nil {
		return err
	}
	if !c.enabled {
		return nil
	}
	if c.session.phase != PhaseItemSelected {
		return errors.New(errors.ErrCodeInvalidInput, "no item selected")
	}
	switch t.Kind {
	case TargetArea:
		if c.board.Area(t.Area) == nil {
			return errors.New(errors.ErrCodeUnknownArea, "unknown area %d", t.Area)
		}
	case TargetItem:
		if c.board.Item(t.Item) == nil {
			return errors.New(errors.ErrCodeUnknownItem, "unknown item %d", t.Item)
		}
	}
	c.confirm(t)
	return nil
}
