package interaction

import (
	"github.com/matzehuels/dragdrop/pkg/board"
	"github.com/matzehuels/dragdrop/pkg/geom"
)

// Renderer moves items on screen. The controller never computes layout; it
// asks the renderer where things are and where they belong.
type Renderer interface {
	// MoveTo moves item to rect. With animate the move may take time; done
	// must be called exactly once when the item has arrived, possibly before
	// MoveTo returns. done may be nil.
	MoveTo(item board.ItemRef, rect geom.Rect, animate bool, done func())

	// CurrentPosition returns where t is drawn right now.
	CurrentPosition(t Target) geom.Rect

	// HomePosition returns the resting slot of item under the current board
	// state: inside its area when owned, in the tray otherwise.
	HomePosition(item board.ItemRef) geom.Rect

	// Intersects reports whether a dragged rect counts as over a target rect.
	Intersects(dragged, target geom.Rect) bool
}

// MoveCanceler is implemented by renderers that can abandon an animation in
// flight. The controller calls it before superseding a pending movement; the
// renderer must then not call that movement's done.
type MoveCanceler interface {
	CancelMove(item board.ItemRef)
}

// BoardBinder is implemented by renderers that need to read the board the
// controller builds. BindBoard is called once, before the first movement.
type BoardBinder interface {
	BindBoard(b *board.Board)
}

// nopRenderer places everything at the origin and completes every movement
// immediately. Pointer drops never hit a target with it.
type nopRenderer struct{}

func (nopRenderer) MoveTo(_ board.ItemRef, _ geom.Rect, _ bool, done func()) {
	if done != nil {
		done()
	}
}

func (nopRenderer) CurrentPosition(Target) geom.Rect     { return geom.Rect{} }
func (nopRenderer) HomePosition(board.ItemRef) geom.Rect { return geom.Rect{} }
func (nopRenderer) Intersects(a, b geom.Rect) bool       { return a.Intersects(b) }
