package board

import (
	"github.com/matzehuels/dragdrop/pkg/observability"
)

// Decision is the kind of result a placement attempt produced.
type Decision int

const (
	// DecisionPlace moved the item into the target area.
	DecisionPlace Decision = iota
	// DecisionReplace moved the item into a capacity-1 area and evicted the
	// previous occupant.
	DecisionReplace
	// DecisionReset rejected the attempt. Nothing changed; the renderer moves
	// the item back to where it was.
	DecisionReset
	// DecisionSameArea dropped the item on its current owner. Nothing changed.
	DecisionSameArea
)

func (d Decision) String() string {
	switch d {
	case DecisionPlace:
		return "place"
	case DecisionReplace:
		return "replace"
	case DecisionReset:
		return "reset"
	case DecisionSameArea:
		return "same-area"
	default:
		return "unknown"
	}
}

// Reason explains a [DecisionReset].
type Reason int

const (
	ReasonNone Reason = iota
	ReasonUnknownItem
	ReasonUnknownArea
	ReasonItemDisabled
	ReasonAreaDisabled
	ReasonFull
	ReasonNotAccepted
	ReasonNoTarget
	ReasonOccupantLocked
	ReasonUnsupported
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonUnknownItem:
		return "unknown item"
	case ReasonUnknownArea:
		return "unknown area"
	case ReasonItemDisabled:
		return "item disabled"
	case ReasonAreaDisabled:
		return "area disabled"
	case ReasonFull:
		return "area full"
	case ReasonNotAccepted:
		return "not accepted"
	case ReasonNoTarget:
		return "no target"
	case ReasonOccupantLocked:
		return "occupant disabled"
	case ReasonUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// Modality is the input path that produced a placement attempt.
type Modality int

const (
	ModalityPointer Modality = iota
	ModalitySelect
	ModalityProgrammatic
)

func (m Modality) String() string {
	switch m {
	case ModalityPointer:
		return "pointer"
	case ModalitySelect:
		return "select"
	default:
		return "programmatic"
	}
}

// PlaceContext carries the flags of one placement attempt.
type PlaceContext struct {
	Modality Modality

	// SameAreaAttempt marks a drop that the interaction layer already
	// resolved to the item's own area, for example a pointer release over the
	// area the drag started in. With target [NoArea] it still yields
	// [DecisionSameArea] for an owned item.
	SameAreaAttempt bool

	// SuppressAutoShift tells the caller not to advance focus afterwards.
	// The board only echoes it back in the outcome.
	SuppressAutoShift bool
}

// Outcome is the result of [Board.AttemptPlace].
type Outcome struct {
	Decision Decision
	Reason   Reason
	Modality Modality

	Item     ItemRef
	Previous AreaRef // owner before the attempt
	Result   AreaRef // owner after the attempt
	Evicted  ItemRef // occupant removed by a replace, or NoItem

	// Changed reports whether ownership changed.
	Changed           bool
	SuppressAutoShift bool
}

// Placed reports whether the item ended up in a new area.
func (o Outcome) Placed() bool {
	return o.Decision == DecisionPlace || o.Decision == DecisionReplace
}

// AttemptPlace decides and applies a drop of item on area. It is the single
// placement path shared by every modality:
//
//  1. unknown or disabled item, unknown or disabled area: reset
//  2. target is the current owner: same-area
//  3. capacity-1 area with one occupant and replacement enabled: replace when
//     the area accepts the item, otherwise reset
//  4. full area or accept mismatch: reset
//  5. otherwise: place
//
// A reset never changes the board. Replace is applied as one step: the item
// takes the slot and the occupant rejoins the remaining items before any
// observer can look.
func (b *Board) AttemptPlace(item ItemRef, area AreaRef, pc PlaceContext) Outcome {
	out := Outcome{
		Decision:          DecisionReset,
		Modality:          pc.Modality,
		Item:              item,
		Previous:          NoArea,
		Result:            NoArea,
		Evicted:           NoItem,
		SuppressAutoShift: pc.SuppressAutoShift,
	}

	it := b.Item(item)
	if it == nil {
		return b.reject(out, ReasonUnknownItem, area)
	}
	out.Previous, out.Result = it.chosen, it.chosen

	if it.disabled {
		return b.reject(out, ReasonItemDisabled, area)
	}
	if area == NoArea {
		if pc.SameAreaAttempt && it.chosen != NoArea {
			out.Decision = DecisionSameArea
			return b.accept(out)
		}
		return b.reject(out, ReasonNoTarget, area)
	}
	a := b.Area(area)
	if a == nil {
		return b.reject(out, ReasonUnknownArea, area)
	}
	if it.chosen == area {
		out.Decision = DecisionSameArea
		return b.accept(out)
	}
	if a.disabled {
		return b.reject(out, ReasonAreaDisabled, area)
	}

	if b.policy.Replace && a.maxCapacity == 1 && len(a.inner) == 1 {
		if !a.CheckAccept(it) {
			return b.reject(out, ReasonNotAccepted, area)
		}
		occupant := a.inner[0]
		if b.items[occupant].disabled {
			return b.reject(out, ReasonOccupantLocked, area)
		}
		b.replace(item, area)
		out.Decision = DecisionReplace
		out.Result = area
		out.Evicted = occupant
		out.Changed = true
		return b.accept(out)
	}

	if a.Full() {
		return b.reject(out, ReasonFull, area)
	}
	if !a.CheckAccept(it) {
		return b.reject(out, ReasonNotAccepted, area)
	}

	b.place(item, area)
	out.Decision = DecisionPlace
	out.Result = area
	out.Changed = true
	return b.accept(out)
}

// Evict removes item from its owner and returns it to the remaining items.
// It reports whether the item was owned.
func (b *Board) Evict(item ItemRef) bool {
	it := b.Item(item)
	if it == nil || it.chosen == NoArea {
		return false
	}
	b.detach(item)
	b.syncItem(item)
	b.mutated()
	return true
}

func (b *Board) place(item ItemRef, area AreaRef) {
	b.detach(item)
	a := b.areas[area]
	a.inner = append(a.inner, item)
	b.items[item].chosen = area
	b.syncItem(item)
	b.syncArea(area)
	b.mutated()
}

func (b *Board) replace(item ItemRef, area AreaRef) {
	a := b.areas[area]
	occupant := a.inner[0]

	b.detach(item)
	a.inner = []ItemRef{item}
	b.items[item].chosen = area
	b.items[occupant].chosen = NoArea

	b.syncItem(occupant)
	b.syncItem(item)
	b.syncArea(area)
	b.mutated()
}

// detach clears item's owner on both sides without touching the remaining
// set; callers sync the item afterwards.
func (b *Board) detach(item ItemRef) {
	it := b.items[item]
	if it.chosen == NoArea {
		return
	}
	prev := it.chosen
	b.areas[prev].removeInner(item)
	it.chosen = NoArea
	b.syncArea(prev)
}

func (b *Board) accept(out Outcome) Outcome {
	areaID := ""
	if a := b.Area(out.Result); a != nil {
		areaID = a.id
	}
	observability.Board().OnPlacement(out.Decision.String(), b.items[out.Item].id, areaID, out.Changed)
	return out
}

func (b *Board) reject(out Outcome, reason Reason, area AreaRef) Outcome {
	out.Decision = DecisionReset
	out.Reason = reason
	itemID, areaID := "", ""
	if it := b.Item(out.Item); it != nil {
		itemID = it.id
	}
	if a := b.Area(area); a != nil {
		areaID = a.id
	}
	observability.Board().OnReject(itemID, areaID, reason.String())
	return out
}
