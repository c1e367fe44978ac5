package board

import (
	"slices"

	"github.com/matzehuels/dragdrop/pkg/config"
	"github.com/matzehuels/dragdrop/pkg/errors"
)

// Policy is the set of placement rules taken from the configuration.
type Policy struct {
	Replace                  bool
	ForbidFocusOnFilledAreas bool
	Shuffle                  config.ShuffleMode
}

// Board owns the item and area arenas, the ownership relation and the two
// membership sets. The zero value is not usable; create one with [New].
type Board struct {
	items []*DragItem
	areas []*DropArea

	itemsByID map[string]ItemRef
	areasByID map[string]AreaRef

	remaining *membership[ItemRef]
	allowed   *membership[AreaRef]

	policy  Policy
	session string
}

// New builds a board from cfg. The configuration is defaulted and validated
// first; an invalid configuration yields an [errors.ConfigurationError] and
// no board. ids scopes element identifiers; nil creates a fresh session.
func New(cfg config.Config, ids *IDGenerator) (*Board, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if ids == nil {
		ids = NewIDGenerator("")
	}

	b := &Board{
		items:     make([]*DragItem, len(cfg.DragItems)),
		areas:     make([]*DropArea, len(cfg.DropAreas)),
		itemsByID: make(map[string]ItemRef, len(cfg.DragItems)),
		areasByID: make(map[string]AreaRef, len(cfg.DropAreas)),
		policy: Policy{
			Replace:                  cfg.PossibleToReplaceDroppedItem,
			ForbidFocusOnFilledAreas: cfg.ForbidFocusOnFilledAreas,
			Shuffle:                  cfg.ShiftOrSwapOnNoAreas,
		},
		session: ids.Session(),
	}

	for i, ic := range cfg.DragItems {
		ref := ItemRef(i)
		b.items[i] = &DragItem{
			ref:            ref,
			id:             ic.ID,
			elementID:      ids.Next("item"),
			label:          ic.Label,
			data:           ic.Data,
			groups:         slices.Compact(slices.Sorted(slices.Values(ic.Groups))),
			chosen:         NoArea,
			orderIndex:     i,
			initialOrder:   i,
			disabled:       ic.Disabled,
			configDisabled: ic.Disabled,
		}
		b.itemsByID[ic.ID] = ref
	}
	for i, ac := range cfg.DropAreas {
		ref := AreaRef(i)
		b.areas[i] = &DropArea{
			ref:            ref,
			id:             ac.ID,
			elementID:      ids.Next("area"),
			label:          ac.Label,
			data:           ac.Data,
			accept:         slices.Compact(slices.Sorted(slices.Values(ac.Accept))),
			maxCapacity:    ac.MaxCapacity,
			disabled:       ac.Disabled,
			configDisabled: ac.Disabled,
		}
		b.areasByID[ac.ID] = ref
	}

	b.remaining = newMembership(len(b.items), func(r ItemRef) int { return b.items[r].orderIndex })
	b.allowed = newMembership(len(b.areas), func(r AreaRef) int { return int(r) })
	b.rebuildMembership()
	b.mutated()
	return b, nil
}

// Session returns the identifier scope of this board.
func (b *Board) Session() string { return b.session }

// Policy returns the placement rules the board was configured with.
func (b *Board) Policy() Policy { return b.policy }

// HasAreas reports whether the board has drop areas. Boards without areas
// reorder items with [Board.Shuffle] instead of placing them.
func (b *Board) HasAreas() bool { return len(b.areas) > 0 }

// NumItems returns the size of the item arena.
func (b *Board) NumItems() int { return len(b.items) }

// NumAreas returns the size of the area arena.
func (b *Board) NumAreas() int { return len(b.areas) }

// Item returns the item at ref, or nil if ref is out of range.
func (b *Board) Item(ref ItemRef) *DragItem {
	if ref < 0 || int(ref) >= len(b.items) {
		return nil
	}
	return b.items[ref]
}

// Area returns the area at ref, or nil if ref is out of range.
func (b *Board) Area(ref AreaRef) *DropArea {
	if ref < 0 || int(ref) >= len(b.areas) {
		return nil
	}
	return b.areas[ref]
}

// ItemByID looks up an item by its configured id.
func (b *Board) ItemByID(id string) (ItemRef, bool) {
	ref, ok := b.itemsByID[id]
	if !ok {
		return NoItem, false
	}
	return ref, true
}

// AreaByID looks up an area by its configured id.
func (b *Board) AreaByID(id string) (AreaRef, bool) {
	ref, ok := b.areasByID[id]
	if !ok {
		return NoArea, false
	}
	return ref, true
}

// ItemIDs returns every item id in arena order.
func (b *Board) ItemIDs() []string {
	ids := make([]string, len(b.items))
	for i, it := range b.items {
		ids[i] = it.id
	}
	return ids
}

// AreaIDs returns every area id in arena order.
func (b *Board) AreaIDs() []string {
	ids := make([]string, len(b.areas))
	for i, a := range b.areas {
		ids[i] = a.id
	}
	return ids
}

// Items returns every item ref in display order.
func (b *Board) Items() []ItemRef {
	refs := make([]ItemRef, len(b.items))
	for i := range b.items {
		refs[i] = ItemRef(i)
	}
	slices.SortFunc(refs, func(x, y ItemRef) int { return b.items[x].orderIndex - b.items[y].orderIndex })
	return refs
}

// Areas returns every area ref in order.
func (b *Board) Areas() []AreaRef {
	refs := make([]AreaRef, len(b.areas))
	for i := range b.areas {
		refs[i] = AreaRef(i)
	}
	return refs
}

// Remaining returns the remaining items in order index order.
func (b *Board) Remaining() []ItemRef { return b.remaining.list() }

// Allowed returns the allowed areas in area order.
func (b *Board) Allowed() []AreaRef { return b.allowed.list() }

// IsRemaining reports whether ref is in the remaining set.
func (b *Board) IsRemaining(ref ItemRef) bool { return b.remaining.contains(ref) }

// IsAllowed reports whether ref is in the allowed set.
func (b *Board) IsAllowed(ref AreaRef) bool { return b.allowed.contains(ref) }

// SetCorrect records the host's verdict on an item's placement. Correctness
// only matters to [Board.ResetIncorrect] and [Board.DisableCorrectItems].
func (b *Board) SetCorrect(ref ItemRef, correct bool) error {
	it := b.Item(ref)
	if it == nil {
		return errors.New(errors.ErrCodeUnknownItem, "unknown item %d", ref)
	}
	it.correct = correct
	return nil
}

// SetItemDisabled enables or disables an item. A disabled item leaves the
// remaining set but keeps its owner, if any.
func (b *Board) SetItemDisabled(ref ItemRef, disabled bool) error {
	it := b.Item(ref)
	if it == nil {
		return errors.New(errors.ErrCodeUnknownItem, "unknown item %d", ref)
	}
	it.disabled = disabled
	b.syncItem(ref)
	b.mutated()
	return nil
}

// SetAreaDisabled enables or disables an area. A disabled area keeps its
// inner items but leaves the allowed set and rejects drops.
func (b *Board) SetAreaDisabled(ref AreaRef, disabled bool) error {
	a := b.Area(ref)
	if a == nil {
		return errors.New(errors.ErrCodeUnknownArea, "unknown area %d", ref)
	}
	a.disabled = disabled
	b.syncArea(ref)
	b.mutated()
	return nil
}

func (b *Board) shouldRemain(ref ItemRef) bool {
	it := b.items[ref]
	return !it.disabled && it.chosen == NoArea
}

func (b *Board) shouldAllow(ref AreaRef) bool {
	a := b.areas[ref]
	if a.disabled {
		return false
	}
	return !(b.policy.ForbidFocusOnFilledAreas && a.Full())
}

func (b *Board) syncItem(ref ItemRef) { b.remaining.set(ref, b.shouldRemain(ref)) }

func (b *Board) syncArea(ref AreaRef) { b.allowed.set(ref, b.shouldAllow(ref)) }

func (b *Board) rebuildMembership() {
	b.remaining.rebuild(b.Items(), b.shouldRemain)
	b.allowed.rebuild(b.Areas(), b.shouldAllow)
}

// mutated runs the invariant check in debug builds.
func (b *Board) mutated() {
	if !debugAssertions {
		return
	}
	if err := b.Check(); err != nil {
		panic(err)
	}
}
