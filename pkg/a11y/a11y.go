// Package a11y turns board and interaction state into text for assistive
// technology: accessible descriptions of items and areas, usage
// instructions and live-region announcements.
//
// The interaction controller supplies a [State]; a [Provider] renders it. The
// package ships an English provider; hosts needing another language or
// wording implement [Provider] themselves.
package a11y

import (
	"github.com/matzehuels/dragdrop/pkg/board"
)

// State is what a provider may look at. Board must not be mutated through it.
type State struct {
	Board   *board.Board
	Enabled bool

	// Selected is the item picked up with the select modality, or NoItem.
	Selected board.ItemRef

	// FocusItem and FocusArea locate keyboard focus; at most one is set.
	FocusItem board.ItemRef
	FocusArea board.AreaRef
}

// Provider renders state as text.
type Provider interface {
	// Item describes a drag item, for its accessible name.
	Item(s State, ref board.ItemRef) string

	// Area describes a drop area, for its accessible name.
	Area(s State, ref board.AreaRef) string

	// Instructions explains what the user can do next.
	Instructions(s State) string

	// Outcome announces a placement decision.
	Outcome(s State, o board.Outcome) string

	// Shuffle announces a reorder on a board without areas.
	Shuffle(s State, o board.ShuffleOutcome) string

	// Selected announces that an item was picked up.
	Selected(s State, ref board.ItemRef) string

	// Cancelled announces that a selection or drag was abandoned.
	Cancelled(s State, ref board.ItemRef) string

	// Reset announces a bulk operation.
	Reset(s State, kind string, rep board.ResetReport) string

	// Status summarises the board in one sentence.
	Status(s State) string
}
