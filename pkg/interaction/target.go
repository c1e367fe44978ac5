package interaction

import (
	"fmt"

	"github.com/matzehuels/dragdrop/pkg/board"
)

// TargetKind distinguishes the two kinds of interactive element.
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetItem
	TargetArea
)

// Target is a focusable or droppable element: a drag item or a drop area.
// The zero value is no target.
type Target struct {
	Kind TargetKind
	Item board.ItemRef
	Area board.AreaRef
}

// NoTarget is the empty target.
var NoTarget = Target{Kind: TargetNone, Item: board.NoItem, Area: board.NoArea}

// ItemTarget returns the target for a drag item.
func ItemTarget(ref board.ItemRef) Target {
	return Target{Kind: TargetItem, Item: ref, Area: board.NoArea}
}

// AreaTarget returns the target for a drop area.
func AreaTarget(ref board.AreaRef) Target {
	return Target{Kind: TargetArea, Item: board.NoItem, Area: ref}
}

// IsItem reports whether t is a drag item.
func (t Target) IsItem() bool { return t.Kind == TargetItem }

// IsArea reports whether t is a drop area.
func (t Target) IsArea() bool { return t.Kind == TargetArea }

// IsNone reports whether t is no target.
func (t Target) IsNone() bool { return t.Kind == TargetNone }

func (t Target) String() string {
	switch t.Kind {
	case TargetItem:
		return fmt.Sprintf("item#%d", t.Item)
	case TargetArea:
		return fmt.Sprintf("area#%d", t.Area)
	default:
		return "none"
	}
}
