package a11y

import (
	"fmt"
	"strings"

	"github.com/matzehuels/dragdrop/pkg/board"
)

// English is the default [Provider].
type English struct{}

var _ Provider = English{}

func (English) Item(s State, ref board.ItemRef) string {
	it := s.Board.Item(ref)
	if it == nil {
		return ""
	}
	parts := []string{it.Label(), "drag item"}
	if a := s.Board.Area(it.ChosenDropArea()); a != nil {
		parts = append(parts, "in "+a.Label())
	} else {
		parts = append(parts, fmt.Sprintf("position %d of %d", it.OrderIndex()+1, s.Board.NumItems()))
	}
	if ref == s.Selected {
		parts = append(parts, "selected")
	}
	if it.Disabled() {
		parts = append(parts, "disabled")
	}
	return strings.Join(parts, ", ")
}

func (English) Area(s State, ref board.AreaRef) string {
	a := s.Board.Area(ref)
	if a == nil {
		return ""
	}
	parts := []string{a.Label(), "drop area", fill(a)}
	if accept := a.Accept(); len(accept) > 0 {
		parts = append(parts, "accepts "+list(accept))
	}
	if a.Disabled() {
		parts = append(parts, "disabled")
	}
	return strings.Join(parts, ", ")
}

func (English) Instructions(s State) string {
	if !s.Enabled {
		return "Drag and drop is disabled."
	}
	it := s.Board.Item(s.Selected)
	switch {
	case it == nil && s.Board.HasAreas():
		return "Press space or enter on an item to pick it up, then on a drop area to place it."
	case it == nil:
		return "Press space or enter on an item to pick it up, then on another item to move it there."
	case s.Board.HasAreas():
		return fmt.Sprintf("%s picked up. Choose a drop area and press space or enter. Press escape to cancel.", it.Label())
	default:
		return fmt.Sprintf("%s picked up. Choose another item and press space or enter. Press escape to cancel.", it.Label())
	}
}

func (English) Outcome(s State, o board.Outcome) string {
	it := s.Board.Item(o.Item)
	if it == nil {
		return "Nothing to move."
	}
	name := it.Label()
	target := s.Board.Area(o.Result)

	switch o.Decision {
	case board.DecisionPlace:
		return fmt.Sprintf("%s placed in %s.", name, target.Label())
	case board.DecisionReplace:
		return fmt.Sprintf("%s replaced %s in %s. %s returned.",
			name, s.Board.Item(o.Evicted).Label(), target.Label(), s.Board.Item(o.Evicted).Label())
	case board.DecisionSameArea:
		return fmt.Sprintf("%s stays in %s.", name, target.Label())
	}

	home := "returned"
	if prev := s.Board.Area(o.Previous); prev != nil {
		home = "returned to " + prev.Label()
	}
	switch o.Reason {
	case board.ReasonFull:
		return fmt.Sprintf("That area is full. %s %s.", name, home)
	case board.ReasonNotAccepted:
		return fmt.Sprintf("That area does not accept %s. %s %s.", name, name, home)
	case board.ReasonAreaDisabled:
		return fmt.Sprintf("That area is disabled. %s %s.", name, home)
	case board.ReasonItemDisabled:
		return fmt.Sprintf("%s is disabled.", name)
	case board.ReasonOccupantLocked:
		return fmt.Sprintf("That area holds a locked item. %s %s.", name, home)
	default:
		return fmt.Sprintf("%s %s.", name, home)
	}
}

func (English) Shuffle(s State, o board.ShuffleOutcome) string {
	it := s.Board.Item(o.Item)
	if it == nil {
		return "Nothing to move."
	}
	if !o.Changed {
		return fmt.Sprintf("%s did not move.", it.Label())
	}
	return fmt.Sprintf("%s moved to position %d of %d.", it.Label(), it.OrderIndex()+1, s.Board.NumItems())
}

func (English) Selected(s State, ref board.ItemRef) string {
	it := s.Board.Item(ref)
	if it == nil {
		return ""
	}
	return fmt.Sprintf("%s picked up.", it.Label())
}

func (English) Cancelled(s State, ref board.ItemRef) string {
	it := s.Board.Item(ref)
	if it == nil {
		return "Cancelled."
	}
	return fmt.Sprintf("%s dropped back. Cancelled.", it.Label())
}

func (English) Reset(s State, kind string, rep board.ResetReport) string {
	switch kind {
	case "incorrect":
		if len(rep.Evicted) == 0 {
			return "All placed items are correct."
		}
		return fmt.Sprintf("%s returned.", plural(len(rep.Evicted), "incorrect item"))
	case "disable-correct":
		return fmt.Sprintf("%s locked.", plural(len(rep.Disabled), "correct item"))
	case "restore":
		return "Saved board restored. " + English{}.Status(s)
	default:
		return "Board reset."
	}
}

func (English) Status(s State) string {
	parts := []string{plural(len(s.Board.Remaining()), "item") + " remaining"}
	for _, ref := range s.Board.Areas() {
		a := s.Board.Area(ref)
		parts = append(parts, a.Label()+" "+fill(a))
	}
	return strings.Join(parts, ". ") + "."
}

func fill(a *board.DropArea) string {
	switch {
	case a.MaxCapacity() > 0 && a.Full():
		return fmt.Sprintf("%d of %d items, full", a.Len(), a.MaxCapacity())
	case a.MaxCapacity() > 0:
		return fmt.Sprintf("%d of %d items", a.Len(), a.MaxCapacity())
	case a.Len() == 0:
		return "empty"
	default:
		return plural(a.Len(), "item")
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// list joins words as "a", "a or b", "a, b or c".
func list(words []string) string {
	switch len(words) {
	case 0:
		return ""
	case 1:
		return words[0]
	default:
		return strings.Join(words[:len(words)-1], ", ") + " or " + words[len(words)-1]
	}
}
