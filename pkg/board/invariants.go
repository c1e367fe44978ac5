package board

import (
	"slices"

	"github.com/matzehuels/dragdrop/pkg/errors"
)

// Check verifies every structural invariant of the board and returns an
// INTERNAL_CORRUPT error describing the first violation:
//
//   - an item is owned by at most one area, and item and area agree on it
//   - no area holds more items than its capacity
//   - order indices are a permutation of 0..n-1
//   - the remaining set is exactly the enabled, unowned items in order
//   - the allowed set is exactly the areas that pass the allow rule
//   - both sibling chains match their sets
func (b *Board) Check() error {
	owners := make([]AreaRef, len(b.items))
	for i := range owners {
		owners[i] = NoArea
	}
	for _, a := range b.areas {
		if a.maxCapacity > 0 && len(a.inner) > a.maxCapacity {
			return corrupt("area %s holds %d items, capacity %d", a.id, len(a.inner), a.maxCapacity)
		}
		for _, ref := range a.inner {
			if ref < 0 || int(ref) >= len(b.items) {
				return corrupt("area %s holds unknown item %d", a.id, ref)
			}
			if owners[ref] != NoArea {
				return corrupt("item %s owned by %s and %s", b.items[ref].id, b.areas[owners[ref]].id, a.id)
			}
			owners[ref] = a.ref
		}
	}

	seen := make([]bool, len(b.items))
	for _, it := range b.items {
		if it.chosen != owners[it.ref] {
			return corrupt("item %s points at area %d but is held by %d", it.id, it.chosen, owners[it.ref])
		}
		if it.orderIndex < 0 || it.orderIndex >= len(b.items) || seen[it.orderIndex] {
			return corrupt("item %s has invalid order index %d", it.id, it.orderIndex)
		}
		seen[it.orderIndex] = true
	}

	var wantRemaining []ItemRef
	for _, ref := range b.Items() {
		if b.shouldRemain(ref) {
			wantRemaining = append(wantRemaining, ref)
		}
	}
	if !slices.Equal(b.remaining.members, wantRemaining) {
		return corrupt("remaining items %v, want %v", b.remaining.members, wantRemaining)
	}
	for i, in := range b.remaining.in {
		if in != b.shouldRemain(ItemRef(i)) {
			return corrupt("remaining flag of item %s is %v", b.items[i].id, in)
		}
	}
	if err := b.remaining.chain.Validate(wantRemaining); err != nil {
		return errors.Wrap(errors.ErrCodeCorrupt, err, "remaining chain")
	}

	var wantAllowed []AreaRef
	for _, ref := range b.Areas() {
		if b.shouldAllow(ref) {
			wantAllowed = append(wantAllowed, ref)
		}
	}
	if !slices.Equal(b.allowed.members, wantAllowed) {
		return corrupt("allowed areas %v, want %v", b.allowed.members, wantAllowed)
	}
	if err := b.allowed.chain.Validate(wantAllowed); err != nil {
		return errors.Wrap(errors.ErrCodeCorrupt, err, "allowed chain")
	}
	return nil
}

func corrupt(format string, args ...any) error {
	return errors.New(errors.ErrCodeCorrupt, format, args...)
}
