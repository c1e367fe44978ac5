package interaction

import (
	"slices"

	"github.com/matzehuels/dragdrop/pkg/board"
	"github.com/matzehuels/dragdrop/pkg/geom"
)

// Event is a lifecycle notification. Observers receive events synchronously
// and in registration order; switch on the concrete type.
type Event interface {
	eventName() string
}

// CreateEvent is the first event of every controller.
type CreateEvent struct {
	Session string
}

// InteractionStartEvent opens a drag or a selection session.
type InteractionStartEvent struct {
	Item     board.ItemRef
	Modality board.Modality
}

// InteractionMoveEvent reports pointer motion during a drag. Over is the
// target the item would land on if released now.
type InteractionMoveEvent struct {
	Item  board.ItemRef
	Point geom.Point
	Rect  geom.Rect
	Over  Target
}

// InteractionStopEvent closes a session with the engine's decision. On boards
// without drop areas a drop on another item carries the shuffle result in
// Shuffle; every other stop carries Outcome.
type InteractionStopEvent struct {
	Item     board.ItemRef
	Modality board.Modality
	Target   Target
	Outcome  board.Outcome
	Shuffle  *board.ShuffleOutcome
}

// Changed reports whether the drop changed the board.
func (e InteractionStopEvent) Changed() bool {
	if e.Shuffle != nil {
		return e.Shuffle.Changed
	}
	return e.Outcome.Changed
}

// ItemSelectedEvent reports a keyboard selection and the targets that may now
// be activated to drop the item.
type ItemSelectedEvent struct {
	Item     board.ItemRef
	Eligible []Target
}

// AreaSelectedEvent reports that a target was activated for the selected
// item. Dropped is false when the engine rejected the drop. DroppedItems is
// the target area's contents in drop order after the drop, or the board's
// display order when the target is an item.
type AreaSelectedEvent struct {
	Item         board.ItemRef
	Target       Target
	Dropped      bool
	DroppedItems []board.ItemRef
}

// CancelEvent reports a session that ended without a drop. Superseded is set
// when a new session replaced it.
type CancelEvent struct {
	Item       board.ItemRef
	Modality   board.Modality
	Superseded bool
}

// ResetKind names a bulk operation.
type ResetKind string

const (
	ResetAll            ResetKind = "all"
	ResetIncorrect      ResetKind = "incorrect"
	ResetDisableCorrect ResetKind = "disable-correct"
	ResetRestore        ResetKind = "restore"
)

// ResetEvent reports a bulk operation.
type ResetEvent struct {
	Kind   ResetKind
	Report board.ResetReport
}

// FocusEvent asks the host to move focus to Target.
type FocusEvent struct {
	Target Target
}

// StateEvent reports enable and disable.
type StateEvent struct {
	Enabled bool
}

// AnnounceEvent carries text for a live region.
type AnnounceEvent struct {
	Text string
}

// DestroyEvent is the last event of every controller.
type DestroyEvent struct{}

func (CreateEvent) eventName() string           { return "create" }
func (InteractionStartEvent) eventName() string { return "start" }
func (InteractionMoveEvent) eventName() string  { return "move" }
func (InteractionStopEvent) eventName() string  { return "stop" }
func (ItemSelectedEvent) eventName() string     { return "item-selected" }
func (AreaSelectedEvent) eventName() string     { return "area-selected" }
func (CancelEvent) eventName() string           { return "cancel" }
func (ResetEvent) eventName() string            { return "reset" }
func (FocusEvent) eventName() string            { return "focus" }
func (StateEvent) eventName() string            { return "state" }
func (AnnounceEvent) eventName() string         { return "announce" }
func (DestroyEvent) eventName() string          { return "destroy" }

// EventName returns a short stable name for e, for logs and transcripts.
func EventName(e Event) string { return e.eventName() }

// Observer receives controller events.
type Observer interface {
	OnEvent(Event)
}

// ObserverFunc adapts a function to [Observer].
type ObserverFunc func(Event)

func (f ObserverFunc) OnEvent(e Event) { f(e) }

// EventQueue is an Observer that buffers events for hosts that prefer to
// pull them from their own loop.
type EventQueue struct {
	events []Event
}

func (q *EventQueue) OnEvent(e Event) { q.events = append(q.events, e) }

// Len returns the number of buffered events.
func (q *EventQueue) Len() int { return len(q.events) }

// Drain returns the buffered events and empties the queue.
func (q *EventQueue) Drain() []Event {
	events := q.events
	q.events = nil
	return events
}

// Peek returns the buffered events without removing them.
func (q *EventQueue) Peek() []Event { return slices.Clone(q.events) }

type observerList struct {
	entries []observerEntry
	nextID  int
}

type observerEntry struct {
	id int
	o  Observer
}

func (l *observerList) add(o Observer) func() {
	l.nextID++
	id := l.nextID
	l.entries = append(l.entries, observerEntry{id: id, o: o})
	return func() {
		l.entries = slices.DeleteFunc(l.entries, func(e observerEntry) bool { return e.id == id })
	}
}

// emit delivers e to a copy of the list, so observers may unsubscribe while
// being notified.
func (l *observerList) emit(e Event) {
	for _, entry := range slices.Clone(l.entries) {
		entry.o.OnEvent(e)
	}
}

func (l *observerList) clear() { l.entries = nil }
