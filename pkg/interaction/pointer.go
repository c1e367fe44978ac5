package interaction

import (
	"github.com/matzehuels/dragdrop/pkg/board"
	"github.com/matzehuels/dragdrop/pkg/errors"
	"github.com/matzehuels/dragdrop/pkg/geom"
)

// PointerDown starts dragging item from point p. Input for disabled items or
// while the controller is disabled is ignored.
func (c *Controller) PointerDown(item board.ItemRef, p geom.Point) error {
	ok, err := c.acceptsInput(item)
	if !ok || err != nil {
		return err
	}
	c.beginSession(PhaseDragging, item, board.ModalityPointer)
	pos := c.renderer.CurrentPosition(ItemTarget(item))
	c.session.origin = p
	c.session.startPos = pos
	c.session.rect = pos
	return nil
}

// PointerMove drags the active item to follow p.
func (c *Controller) PointerMove(item board.ItemRef, p geom.Point) error {
	if err := c.checkDrag(item); err != nil {
		return err
	}
	if c.session.phase != PhaseDragging {
		return nil
	}
	c.session.rect = c.session.startPos.Translate(p.Sub(c.session.origin))
	c.moveItem(item, c.session.rect, false, nil)

	over, _ := c.hitTest(item, c.session.rect)
	c.emit(InteractionMoveEvent{Item: item, Point: p, Rect: c.session.rect, Over: over})
	return nil
}

// PointerUp drops the active item at p. The target is the intersecting drop
// area (or, without areas, the intersecting item) with the largest overlap,
// ties going to the earlier one. Without a target the item returns home.
func (c *Controller) PointerUp(item board.ItemRef, p geom.Point) error {
	if err := c.checkDrag(item); err != nil {
		return err
	}
	if c.session.phase != PhaseDragging {
		return nil
	}
	c.session.rect = c.session.startPos.Translate(p.Sub(c.session.origin))

	target, sameArea := c.hitTest(item, c.session.rect)
	if sameArea {
		target = NoTarget
	}
	c.drop(item, target, board.ModalityPointer, sameArea)
	return nil
}

func (c *Controller) checkDrag(item board.ItemRef) error {
	if err := c.checkAlive(); err != nil {
		return err
	}
	if c.session.phase == PhaseDragging && c.session.item != item {
		return errors.New(errors.ErrCodeInvalidInput, "item %d is not being dragged", item)
	}
	return nil
}

// hitTest finds the drop target for a dragged rect. sameArea reports that
// the best target is the item's own area.
func (c *Controller) hitTest(item board.ItemRef, rect geom.Rect) (target Target, sameArea bool) {
	var candidates []Target
	if c.board.HasAreas() {
		for _, ref := range c.board.Areas() {
			candidates = append(candidates, AreaTarget(ref))
		}
	} else {
		for _, ref := range c.board.Items() {
			if ref != item {
				candidates = append(candidates, ItemTarget(ref))
			}
		}
	}

	best, bestOverlap := NoTarget, 0
	for _, t := range candidates {
		pos := c.renderer.CurrentPosition(t)
		if !c.renderer.Intersects(rect, pos) {
			continue
		}
		// Candidates are in order, so keeping the first of equal overlaps
		// prefers the earlier target.
		if ov := rect.Overlap(pos); best.IsNone() || ov > bestOverlap {
			best, bestOverlap = t, ov
		}
	}

	if best.IsArea() && best.Area == c.board.Item(item).ChosenDropArea() {
		return best, true
	}
	return best, false
}
