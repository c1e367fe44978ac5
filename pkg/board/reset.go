package board

import (
	"github.com/matzehuels/dragdrop/pkg/errors"
	"github.com/matzehuels/dragdrop/pkg/observability"
)

// ResetReport lists what a bulk operation touched.
type ResetReport struct {
	// Evicted items left their area, in area order then drop order.
	Evicted []ItemRef
	// Emptied areas lost items and are now empty.
	Emptied []AreaRef
	// Disabled items were disabled by [Board.DisableCorrectItems].
	Disabled []ItemRef
}

// ResetAll returns the board to its initial state: every item leaves its
// area, order indices and disabled flags return to their configured values
// and correctness marks are cleared. Both membership sets are rebuilt.
func (b *Board) ResetAll() ResetReport {
	var rep ResetReport
	for _, a := range b.areas {
		if len(a.inner) > 0 {
			rep.Emptied = append(rep.Emptied, a.ref)
		}
		for _, ref := range a.inner {
			b.items[ref].chosen = NoArea
			rep.Evicted = append(rep.Evicted, ref)
		}
		a.inner = nil
		a.disabled = a.configDisabled
	}
	for _, it := range b.items {
		it.orderIndex = it.initialOrder
		it.disabled = it.configDisabled
		it.correct = false
	}
	b.rebuildMembership()
	b.mutated()

	observability.Board().OnReset("all", len(rep.Evicted))
	return rep
}

// ResetIncorrect evicts every placed item not marked correct. Areas left
// empty by the eviction are reported so hosts can refresh their state.
func (b *Board) ResetIncorrect() ResetReport {
	var rep ResetReport
	for _, a := range b.areas {
		evicted := false
		for _, ref := range a.InnerItems() {
			if b.items[ref].correct {
				continue
			}
			b.detach(ref)
			b.syncItem(ref)
			rep.Evicted = append(rep.Evicted, ref)
			evicted = true
		}
		if evicted && len(a.inner) == 0 {
			rep.Emptied = append(rep.Emptied, a.ref)
		}
	}
	b.mutated()

	observability.Board().OnReset("incorrect", len(rep.Evicted))
	return rep
}

// DisableCorrectItems disables every enabled item marked correct. It is only
// meaningful on boards without drop areas, where correctness means "in the
// right position"; other boards get an UNSUPPORTED error.
func (b *Board) DisableCorrectItems() (ResetReport, error) {
	if b.HasAreas() {
		return ResetReport{}, errors.New(errors.ErrCodeUnsupported, "disable correct items requires a board without drop areas")
	}
	var rep ResetReport
	for _, ref := range b.Items() {
		it := b.items[ref]
		if !it.correct || it.disabled {
			continue
		}
		it.disabled = true
		b.syncItem(ref)
		rep.Disabled = append(rep.Disabled, ref)
	}
	b.mutated()

	observability.Board().OnReset("disable-correct", len(rep.Disabled))
	return rep, nil
}
