package board

import "slices"

// AreaRef addresses a drop area in its board's arena.
type AreaRef int

// NoArea is the AreaRef meaning "no area".
const NoArea AreaRef = -1

// DropArea is one drop target. Its inner items are kept in drop order.
type DropArea struct {
	ref         AreaRef
	id          string
	elementID   string
	label       string
	data        any
	accept      []string
	maxCapacity int
	inner       []ItemRef

	disabled       bool
	configDisabled bool
}

var (
	_ Focusable   = (*DropArea)(nil)
	_ Describable = (*DropArea)(nil)
)

func (a *DropArea) Ref() AreaRef      { return a.ref }
func (a *DropArea) ID() string        { return a.id }
func (a *DropArea) ElementID() string { return a.elementID }
func (a *DropArea) Label() string     { return a.label }
func (a *DropArea) Data() any         { return a.data }
func (a *DropArea) Accept() []string  { return slices.Clone(a.accept) }
func (a *DropArea) Disabled() bool    { return a.disabled }
func (a *DropArea) Len() int          { return len(a.inner) }
func (a *DropArea) Focusable() bool   { return !a.disabled }

// InnerItems returns the owned items in drop order.
func (a *DropArea) InnerItems() []ItemRef { return slices.Clone(a.inner) }

// MaxCapacity returns the capacity bound; 0 means unbounded.
func (a *DropArea) MaxCapacity() int { return a.maxCapacity }

// Full reports whether the area holds as many items as its capacity allows.
// Unbounded areas are never full.
func (a *DropArea) Full() bool {
	return a.maxCapacity > 0 && len(a.inner) >= a.maxCapacity
}

// Contains reports whether item is one of the inner items.
func (a *DropArea) Contains(item ItemRef) bool { return slices.Contains(a.inner, item) }

// CheckAccept reports whether the area accepts it: an empty accept list
// accepts everything, otherwise the item must share at least one group.
func (a *DropArea) CheckAccept(it *DragItem) bool {
	if len(a.accept) == 0 {
		return true
	}
	for _, g := range it.groups {
		if slices.Contains(a.accept, g) {
			return true
		}
	}
	return false
}

func (a *DropArea) Describe() Description {
	return Description{
		Kind:     "area",
		ID:       a.id,
		Label:    a.label,
		Disabled: a.disabled,
		Accept:   a.Accept(),
		Count:    len(a.inner),
		Capacity: a.maxCapacity,
	}
}

func (a *DropArea) removeInner(item ItemRef) bool {
	i := slices.Index(a.inner, item)
	if i < 0 {
		return false
	}
	a.inner = slices.Delete(a.inner, i, i+1)
	return true
}
