package board

import "slices"

// ItemRef addresses a drag item in its board's arena.
type ItemRef int

// NoItem is the ItemRef meaning "no item".
const NoItem ItemRef = -1

// Focusable is implemented by records a host can move keyboard focus to.
type Focusable interface {
	ElementID() string
	Focusable() bool
}

// Describable is implemented by records that can describe themselves to
// assistive technology.
type Describable interface {
	Describe() Description
}

// Description is the host-neutral state of one record, used to build
// accessible names and announcements.
type Description struct {
	Kind     string // "item" or "area"
	ID       string
	Label    string
	Disabled bool

	// Items only.
	Groups  []string
	Placed  bool
	Correct bool

	// Areas only.
	Accept   []string
	Count    int
	Capacity int
}

// DragItem is one draggable record. Fields are read through accessors; all
// changes go through the owning [Board].
type DragItem struct {
	ref       ItemRef
	id        string
	elementID string
	label     string
	data      any
	groups    []string

	chosen       AreaRef
	orderIndex   int
	initialOrder int
	correct      bool

	disabled       bool
	configDisabled bool
}

var (
	_ Focusable   = (*DragItem)(nil)
	_ Describable = (*DragItem)(nil)
)

func (it *DragItem) Ref() ItemRef      { return it.ref }
func (it *DragItem) ID() string        { return it.id }
func (it *DragItem) ElementID() string { return it.elementID }
func (it *DragItem) Label() string     { return it.label }
func (it *DragItem) Data() any         { return it.data }
func (it *DragItem) Groups() []string  { return slices.Clone(it.groups) }
func (it *DragItem) Correct() bool     { return it.correct }
func (it *DragItem) Disabled() bool    { return it.disabled }

// ChosenDropArea returns the owning area, or [NoArea].
func (it *DragItem) ChosenDropArea() AreaRef { return it.chosen }

// Placed reports whether the item is owned by an area.
func (it *DragItem) Placed() bool { return it.chosen != NoArea }

// OrderIndex is the item's position in the display order. It only changes
// through shuffles and resets.
func (it *DragItem) OrderIndex() int { return it.orderIndex }

// InGroup reports whether the item belongs to group.
func (it *DragItem) InGroup(group string) bool { return slices.Contains(it.groups, group) }

// Focusable reports whether the item can take focus. Disabled items cannot.
func (it *DragItem) Focusable() bool { return !it.disabled }

func (it *DragItem) Describe() Description {
	return Description{
		Kind:     "item",
		ID:       it.id,
		Label:    it.label,
		Disabled: it.disabled,
		Groups:   it.Groups(),
		Placed:   it.Placed(),
		Correct:  it.correct,
	}
}
