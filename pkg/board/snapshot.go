package board

import (
	"cmp"
	"slices"

	"github.com/matzehuels/dragdrop/pkg/errors"
)

// Snapshot is the serializable state of a board: who owns what, the display
// order and the host-controlled flags. It does not include the
// configuration; a snapshot is restored onto a board built from the same
// configuration. Session is informational and is not restored.
type Snapshot struct {
	Session string      `json:"session,omitempty"`
	Items   []ItemState `json:"items"`
	Areas   []AreaState `json:"areas,omitempty"`
}

// ItemState is the saved state of one item.
type ItemState struct {
	ID       string `json:"id"`
	Order    int    `json:"order"`
	Area     string `json:"area,omitempty"`
	Slot     int    `json:"slot,omitempty"`
	Correct  bool   `json:"correct,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
}

// AreaState is the saved state of one area.
type AreaState struct {
	ID       string `json:"id"`
	Disabled bool   `json:"disabled,omitempty"`
}

// Snapshot captures the current state. Items are listed in display order.
func (b *Board) Snapshot() Snapshot {
	s := Snapshot{Session: b.session}
	for _, ref := range b.Items() {
		it := b.items[ref]
		st := ItemState{
			ID:       it.id,
			Order:    it.orderIndex,
			Correct:  it.correct,
			Disabled: it.disabled,
		}
		if it.chosen != NoArea {
			a := b.areas[it.chosen]
			st.Area = a.id
			st.Slot = slices.Index(a.inner, ref)
		}
		s.Items = append(s.Items, st)
	}
	for _, a := range b.areas {
		s.Areas = append(s.Areas, AreaState{ID: a.id, Disabled: a.disabled})
	}
	return s
}

// Restore replaces the board state with s. The snapshot must name every item
// of this board exactly once, carry a permutation of order indices and
// respect area capacities and accept lists. An invalid snapshot yields an
// INVALID_SNAPSHOT error and leaves the board untouched.
func (b *Board) Restore(s Snapshot) error {
	if len(s.Items) != len(b.items) {
		return errors.New(errors.ErrCodeInvalidSnapshot, "snapshot has %d items, board has %d", len(s.Items), len(b.items))
	}

	type placement struct {
		item ItemRef
		area AreaRef
		slot int
	}
	var (
		orders     = make([]int, len(b.items))
		states     = make([]ItemState, len(b.items))
		seen       = make([]bool, len(b.items))
		usedOrder  = make([]bool, len(b.items))
		placements []placement
		counts     = make([]int, len(b.areas))
	)

	for _, st := range s.Items {
		ref, ok := b.itemsByID[st.ID]
		if !ok {
			return errors.New(errors.ErrCodeInvalidSnapshot, "unknown item %q", st.ID)
		}
		if seen[ref] {
			return errors.New(errors.ErrCodeInvalidSnapshot, "item %q listed twice", st.ID)
		}
		seen[ref] = true
		if st.Order < 0 || st.Order >= len(b.items) || usedOrder[st.Order] {
			return errors.New(errors.ErrCodeInvalidSnapshot, "item %q has invalid order %d", st.ID, st.Order)
		}
		usedOrder[st.Order] = true
		orders[ref] = st.Order
		states[ref] = st

		if st.Area == "" {
			continue
		}
		aref, ok := b.areasByID[st.Area]
		if !ok {
			return errors.New(errors.ErrCodeInvalidSnapshot, "item %q placed in unknown area %q", st.ID, st.Area)
		}
		a := b.areas[aref]
		if !a.CheckAccept(b.items[ref]) {
			return errors.New(errors.ErrCodeInvalidSnapshot, "area %q does not accept item %q", a.id, st.ID)
		}
		counts[aref]++
		if a.maxCapacity > 0 && counts[aref] > a.maxCapacity {
			return errors.New(errors.ErrCodeInvalidSnapshot, "area %q over capacity", a.id)
		}
		placements = append(placements, placement{item: ref, area: aref, slot: st.Slot})
	}

	areaDisabled := make([]bool, len(b.areas))
	for i, a := range b.areas {
		areaDisabled[i] = a.disabled
	}
	for _, as := range s.Areas {
		aref, ok := b.areasByID[as.ID]
		if !ok {
			return errors.New(errors.ErrCodeInvalidSnapshot, "unknown area %q", as.ID)
		}
		areaDisabled[aref] = as.Disabled
	}

	// Validated; apply.
	slices.SortStableFunc(placements, func(x, y placement) int {
		if c := cmp.Compare(x.area, y.area); c != 0 {
			return c
		}
		return cmp.Compare(x.slot, y.slot)
	})
	for _, a := range b.areas {
		a.inner = nil
		a.disabled = areaDisabled[a.ref]
	}
	for i, it := range b.items {
		it.orderIndex = orders[i]
		it.correct = states[i].Correct
		it.disabled = states[i].Disabled
		it.chosen = NoArea
	}
	for _, p := range placements {
		a := b.areas[p.area]
		a.inner = append(a.inner, p.item)
		b.items[p.item].chosen = p.area
	}
	b.rebuildMembership()
	b.mutated()
	return nil
}
