package interaction

import (
	"github.com/matzehuels/dragdrop/pkg/board"
	"github.com/matzehuels/dragdrop/pkg/geom"
	"github.com/matzehuels/dragdrop/pkg/observability"
)

// completions holds at most one pending movement per item. Each movement gets
// a token; a done callback whose token is no longer the item's current one is
// stale and ignored.
type completions struct {
	next    uint64
	pending map[board.ItemRef]uint64
}

func newCompletions() *completions {
	return &completions{pending: make(map[board.ItemRef]uint64)}
}

// start registers a new movement of item, superseding any pending one. It
// returns the token and whether an older movement was superseded.
func (c *completions) start(item board.ItemRef) (token uint64, superseded bool) {
	_, superseded = c.pending[item]
	c.next++
	c.pending[item] = c.next
	return c.next, superseded
}

// finish reports whether token is still current for item and clears it.
func (c *completions) finish(item board.ItemRef, token uint64) bool {
	if cur, ok := c.pending[item]; !ok || cur != token {
		return false
	}
	delete(c.pending, item)
	return true
}

// isPending reports whether item has a movement in flight.
func (c *completions) isPending(item board.ItemRef) bool {
	_, ok := c.pending[item]
	return ok
}

// len returns the number of items with a movement in flight.
func (c *completions) len() int { return len(c.pending) }

// cancelAll drops every pending movement and returns the affected items.
func (c *completions) cancelAll() []board.ItemRef {
	items := make([]board.ItemRef, 0, len(c.pending))
	for item := range c.pending {
		items = append(items, item)
	}
	clear(c.pending)
	return items
}

// moveItem asks the renderer to move item and runs then once it arrives,
// unless a newer movement of the same item supersedes this one first.
func (c *Controller) moveItem(item board.ItemRef, rect geom.Rect, animate bool, then func()) {
	token, superseded := c.completions.start(item)
	if superseded {
		if mc, ok := c.renderer.(MoveCanceler); ok {
			mc.CancelMove(item)
		}
		observability.Interaction().OnCompletionCancelled(c.board.Item(item).ID())
	}
	c.renderer.MoveTo(item, rect, animate, func() {
		if !c.completions.finish(item, token) {
			return
		}
		if then != nil && !c.destroyed {
			then()
		}
	})
}
