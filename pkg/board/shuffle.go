package board

import (
	"slices"

	"github.com/matzehuels/dragdrop/pkg/config"
	"github.com/matzehuels/dragdrop/pkg/observability"
)

// ShuffleOutcome is the result of [Board.Shuffle].
type ShuffleOutcome struct {
	Mode    config.ShuffleMode
	Item    ItemRef
	Target  ItemRef
	Changed bool
	Reason  Reason

	// Order is the display order after the shuffle.
	Order []ItemRef
}

// Shuffle reorders items on a board without drop areas, dropping item onto
// target according to the configured [config.ShuffleMode]:
//
//   - swap exchanges the two order indices; applying the same swap twice
//     restores the original order
//   - shift removes item and reinserts it at target's position; every item
//     in between moves one slot towards item's old position
//
// Disabled items are never moved by a shuffle, as source or target. Order
// indices stay a permutation of 0..n-1 and the remaining chain follows the new
// order.
func (b *Board) Shuffle(item, target ItemRef) ShuffleOutcome {
	out := ShuffleOutcome{Mode: b.policy.Shuffle, Item: item, Target: target}

	src, dst := b.Item(item), b.Item(target)
	switch {
	case b.HasAreas():
		out.Reason = ReasonUnsupported
	case src == nil || dst == nil:
		out.Reason = ReasonUnknownItem
	case src.disabled || dst.disabled:
		out.Reason = ReasonItemDisabled
	case item == target:
		out.Reason = ReasonNone
	default:
		if b.policy.Shuffle == config.ShuffleSwap {
			b.swap(src, dst)
		} else {
			b.shift(src, dst)
		}
		out.Changed = true
		observability.Board().OnShuffle(string(b.policy.Shuffle), src.id, dst.id)
	}
	out.Order = b.Items()
	return out
}

func (b *Board) swap(src, dst *DragItem) {
	src.orderIndex, dst.orderIndex = dst.orderIndex, src.orderIndex
	b.remaining.rebuild(b.Items(), b.shouldRemain)
	b.mutated()
}

func (b *Board) shift(src, dst *DragItem) {
	order := b.Items()
	from, to := src.orderIndex, dst.orderIndex
	order = slices.Delete(order, from, from+1)
	order = slices.Insert(order, to, src.ref)
	for i, ref := range order {
		b.items[ref].orderIndex = i
	}
	// Everyone but src kept their relative order, so only src needs to move
	// within the remaining set and its chain.
	b.remaining.reposition(src.ref)
	b.mutated()
}
