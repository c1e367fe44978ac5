package interaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/dragdrop/pkg/board"
	"github.com/matzehuels/dragdrop/pkg/config"
	"github.com/matzehuels/dragdrop/pkg/errors"
	"github.com/matzehuels/dragdrop/pkg/geom"
)

func TestNewEmitsCreate(t *testing.T) {
	h := newHarness(t, fruitConfig(false))

	events := h.q.Drain()
	require.Len(t, events, 1)
	assert.Equal(t, CreateEvent{Session: "h"}, events[0])
	assert.Equal(t, PhaseIdle, h.c.Phase())
	assert.Equal(t, h.r.HomePosition(h.item("pear")), h.r.CurrentPosition(ItemTarget(h.item("pear"))))
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	q := &EventQueue{}
	_, err := New(config.Config{DragItems: []config.ItemConfig{{ID: "a"}, {ID: "a"}}}, WithObserver(q))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))
	assert.Zero(t, q.Len(), "no events from a controller that was never built")
}

// TestModalitiesConverge runs the same drops once with the pointer and once
// with select-then-select and compares the outcomes and resulting boards.
func TestModalitiesConverge(t *testing.T) {
	type drop struct{ item, area string }
	tests := []struct {
		name    string
		replace bool
		drops   []drop
	}{
		{"Place", false, []drop{{"apple", "crate"}}},
		{"Accept mismatch", false, []drop{{"carrot", "basket"}}},
		{"Full", false, []drop{{"apple", "basket"}, {"pear", "basket"}}},
		{"Replace", true, []drop{{"apple", "basket"}, {"pear", "basket"}}},
		{"Replace accept mismatch", true, []drop{{"apple", "basket"}, {"carrot", "basket"}}},
		{"Same area", false, []drop{{"apple", "crate"}, {"apple", "crate"}}},
		{"Move between areas", false, []drop{{"carrot", "crate"}, {"pear", "crate"}, {"pear", "basket"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ptr := newHarness(t, fruitConfig(tt.replace))
			sel := newHarness(t, fruitConfig(tt.replace))

			for i, d := range tt.drops {
				ptr.dragToArea(ptr.item(d.item), ptr.area(d.area))
				ptr.settle()
				sel.selectDrop(sel.item(d.item), AreaTarget(sel.area(d.area)))
				sel.settle()

				p, s := lastStop(t, ptr.q.Drain()).Outcome, lastStop(t, sel.q.Drain()).Outcome
				assert.Equal(t, board.ModalityPointer, p.Modality)
				assert.Equal(t, board.ModalitySelect, s.Modality)
				assert.Equal(t, p.Decision, s.Decision, "drop %d decision", i)
				assert.Equal(t, p.Reason, s.Reason, "drop %d reason", i)
				assert.Equal(t, p.Result, s.Result, "drop %d result", i)
				assert.Equal(t, p.Evicted, s.Evicted, "drop %d evicted", i)
				assert.Equal(t, p.Changed, s.Changed, "drop %d changed", i)
			}
			assert.Equal(t, ptr.c.Board().Snapshot(), sel.c.Board().Snapshot())
			assert.NoError(t, ptr.c.Board().Check())
		})
	}
}

func TestShuffleModalitiesConverge(t *testing.T) {
	for _, mode := range []config.ShuffleMode{config.ShuffleShift, config.ShuffleSwap} {
		t.Run(string(mode), func(t *testing.T) {
			ptr := newHarness(t, listConfig(mode, "item0", "item1", "item2"))
			sel := newHarness(t, listConfig(mode, "item0", "item1", "item2"))

			target := ptr.r.CurrentPosition(ItemTarget(ptr.item("item2"))).Center()
			ptr.drag(ptr.item("item0"), target)
			sel.selectDrop(sel.item("item0"), ItemTarget(sel.item("item2")))

			selEvents := sel.q.Drain()
			p, s := lastStop(t, ptr.q.Drain()), lastStop(t, selEvents)
			require.NotNil(t, p.Shuffle)
			require.NotNil(t, s.Shuffle)
			assert.Equal(t, p.Shuffle.Order, s.Shuffle.Order)

			want := []board.ItemRef{1, 2, 0}
			if mode == config.ShuffleSwap {
				want = []board.ItemRef{2, 1, 0}
			}
			assert.Equal(t, want, s.Shuffle.Order)
			assert.Equal(t, ptr.c.Board().Snapshot(), sel.c.Board().Snapshot())

			picked := eventsOf[AreaSelectedEvent](selEvents)
			require.Len(t, picked, 1)
			assert.Equal(t, want, picked[0].DroppedItems)
		})
	}
}

func TestPointerDropOutsideReturnsHome(t *testing.T) {
	h := newHarness(t, fruitConfig(false))
	apple := h.item("apple")
	home := h.r.HomePosition(apple)

	h.drag(apple, geom.Point{X: 500, Y: 500})
	stop := lastStop(t, h.q.Drain())
	assert.Equal(t, board.DecisionReset, stop.Outcome.Decision)
	assert.Equal(t, board.ReasonNoTarget, stop.Outcome.Reason)
	assert.NotEqual(t, home, h.r.CurrentPosition(ItemTarget(apple)), "still animating")

	h.settle()
	assert.Equal(t, home, h.r.CurrentPosition(ItemTarget(apple)))
	assert.Zero(t, h.c.PendingMovements())
}

func TestPointerMoveReportsTarget(t *testing.T) {
	h := newHarness(t, fruitConfig(false))
	apple := h.item("apple")
	start := h.r.CurrentPosition(ItemTarget(apple)).Center()

	require.NoError(t, h.c.PointerDown(apple, start))
	require.NoError(t, h.c.PointerMove(apple, h.r.areaRect(h.area("crate")).Center()))

	moves := eventsOf[InteractionMoveEvent](h.q.Drain())
	require.Len(t, moves, 1)
	assert.Equal(t, AreaTarget(h.area("crate")), moves[0].Over)
	assert.Equal(t, PhaseDragging, h.c.Phase())

	err := h.c.PointerMove(h.item("pear"), start)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestPointerLargestOverlapWins(t *testing.T) {
	// basket spans x 0..80 and crate 100..180. The dragged rect is 40 wide
	// and starts at x.
	tests := []struct {
		name string
		x    int
		want string
	}{
		{"Mostly basket", 65, "basket"},
		{"Mostly crate", 75, "crate"},
		{"Tie goes to the earlier area", 70, "basket"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := fruitConfig(false)
			cfg.DropAreas[0].Accept = nil
			h := newHarness(t, cfg)
			apple := h.item("apple")
			h.r.pos[apple] = geom.Rect{X: 0, Y: 200, W: 40, H: 20}

			h.drag(apple, geom.Point{X: tt.x + 20, Y: 40})

			stop := lastStop(t, h.q.Drain())
			assert.Equal(t, AreaTarget(h.area(tt.want)), stop.Target)
			assert.Equal(t, board.DecisionPlace, stop.Outcome.Decision)
		})
	}
}

func TestPointerOwnAreaIsSameArea(t *testing.T) {
	h := newHarness(t, fruitConfig(false))
	apple, crate := h.item("apple"), h.area("crate")
	h.dragToArea(apple, crate)
	h.settle()
	h.q.Drain()

	h.dragToArea(apple, crate)
	stop := lastStop(t, h.q.Drain())
	assert.Equal(t, board.DecisionSameArea, stop.Outcome.Decision)
	assert.True(t, stop.Target.IsNone())
	assert.False(t, stop.Changed())
}

func TestSelectEvents(t *testing.T) {
	h := newHarness(t, fruitConfig(false))
	h.q.Drain()
	apple, crate := h.item("apple"), h.area("crate")

	require.NoError(t, h.c.Activate(ItemTarget(apple)))
	assert.Equal(t, apple, h.c.Selected())

	events := h.q.Drain()
	require.Len(t, events, 3)
	assert.Equal(t, InteractionStartEvent{Item: apple, Modality: board.ModalitySelect}, events[0])
	assert.Equal(t, ItemSelectedEvent{
		Item:     apple,
		Eligible: []Target{AreaTarget(h.area("basket")), AreaTarget(crate)},
	}, events[1])
	assert.Equal(t, AnnounceEvent{Text: "apple picked up."}, events[2])

	require.NoError(t, h.c.Activate(AreaTarget(crate)))
	events = h.q.Drain()
	require.Len(t, events, 3)
	assert.IsType(t, InteractionStopEvent{}, events[0])
	assert.Equal(t, AnnounceEvent{Text: "apple placed in crate."}, events[1])
	assert.Equal(t, AreaSelectedEvent{
		Item:         apple,
		Target:       AreaTarget(crate),
		Dropped:      true,
		DroppedItems: []board.ItemRef{apple},
	}, events[2])
	assert.Equal(t, PhaseIdle, h.c.Phase())
}

func TestAreaSelectedDroppedItems(t *testing.T) {
	h := newHarness(t, fruitConfig(true))
	apple, pear, carrot := h.item("apple"), h.item("pear"), h.item("carrot")
	basket := AreaTarget(h.area("basket"))

	h.selectDrop(apple, basket)
	sel := eventsOf[AreaSelectedEvent](h.q.Drain())
	require.Len(t, sel, 1)
	assert.True(t, sel[0].Dropped)
	assert.Equal(t, []board.ItemRef{apple}, sel[0].DroppedItems)
	h.settle()

	h.selectDrop(pear, basket)
	sel = eventsOf[AreaSelectedEvent](h.q.Drain())
	require.Len(t, sel, 1)
	assert.True(t, sel[0].Dropped)
	assert.Equal(t, []board.ItemRef{pear}, sel[0].DroppedItems, "apple replaced")
	h.settle()

	h.selectDrop(carrot, basket)
	sel = eventsOf[AreaSelectedEvent](h.q.Drain())
	require.Len(t, sel, 1)
	assert.False(t, sel[0].Dropped)
	assert.Equal(t, []board.ItemRef{pear}, sel[0].DroppedItems)
}

func TestActivateAreaWithoutSelection(t *testing.T) {
	h := newHarness(t, fruitConfig(false))
	err := h.c.Activate(AreaTarget(h.area("crate")))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))

	err = h.c.Activate(AreaTarget(42))
	assert.True(t, errors.Is(err, errors.ErrCodeUnknownArea))
	err = h.c.Activate(ItemTarget(42))
	assert.True(t, errors.Is(err, errors.ErrCodeUnknownItem))
}

func TestCancelLeavesBoardUntouched(t *testing.T) {
	h := newHarness(t, fruitConfig(false))
	before := h.c.Board().Snapshot()
	apple := h.item("apple")

	require.NoError(t, h.c.Activate(ItemTarget(apple)))
	require.NoError(t, h.c.Cancel())
	assert.Equal(t, PhaseIdle, h.c.Phase())

	require.NoError(t, h.c.PointerDown(apple, geom.Point{X: 10, Y: 210}))
	require.NoError(t, h.c.PointerMove(apple, geom.Point{X: 140, Y: 40}))
	require.NoError(t, h.c.Cancel())
	h.settle()

	cancels := eventsOf[CancelEvent](h.q.Drain())
	require.Len(t, cancels, 2)
	assert.Equal(t, board.ModalitySelect, cancels[0].Modality)
	assert.Equal(t, board.ModalityPointer, cancels[1].Modality)
	assert.Equal(t, before, h.c.Board().Snapshot())
	assert.Equal(t, h.r.HomePosition(apple), h.r.CurrentPosition(ItemTarget(apple)))
}

func TestActivateSelectedItemAgainCancels(t *testing.T) {
	h := newHarness(t, fruitConfig(false))
	apple := h.item("apple")

	require.NoError(t, h.c.Activate(ItemTarget(apple)))
	require.NoError(t, h.c.Activate(ItemTarget(apple)))
	assert.Equal(t, PhaseIdle, h.c.Phase())
	assert.Len(t, eventsOf[CancelEvent](h.q.Drain()), 1)
}

func TestNewSessionSupersedesActive(t *testing.T) {
	h := newHarness(t, fruitConfig(false))
	apple, pear := h.item("apple"), h.item("pear")

	require.NoError(t, h.c.Activate(ItemTarget(apple)))
	require.NoError(t, h.c.PointerDown(pear, geom.Point{X: 110, Y: 210}))

	cancels := eventsOf[CancelEvent](h.q.Drain())
	require.Len(t, cancels, 1)
	assert.Equal(t, CancelEvent{Item: apple, Modality: board.ModalitySelect, Superseded: true}, cancels[0])
	assert.Equal(t, pear, h.c.ActiveItem())
	assert.Equal(t, board.NoItem, h.c.Selected())

	// Selecting another item on a board with areas switches the selection.
	require.NoError(t, h.c.Activate(ItemTarget(apple)))
	require.NoError(t, h.c.Activate(ItemTarget(h.item("carrot"))))
	assert.Equal(t, h.item("carrot"), h.c.Selected())
}

func TestDisabledItemIgnored(t *testing.T) {
	cfg := fruitConfig(false)
	cfg.DragItems[0].Disabled = true
	h := newHarness(t, cfg)
	h.q.Drain()
	apple := h.item("apple")

	require.NoError(t, h.c.Activate(ItemTarget(apple)))
	require.NoError(t, h.c.PointerDown(apple, geom.Point{}))
	assert.Equal(t, PhaseIdle, h.c.Phase())
	assert.Zero(t, h.q.Len())

	require.NoError(t, h.c.Activate(ItemTarget(h.item("pear"))))
	for _, target := range eventsOf[ItemSelectedEvent](h.q.Drain())[0].Eligible {
		assert.NotEqual(t, ItemTarget(apple), target)
	}
}

func TestSetItemDisabledCancelsItsSession(t *testing.T) {
	h := newHarness(t, fruitConfig(false))
	apple := h.item("apple")
	require.NoError(t, h.c.Activate(ItemTarget(apple)))

	require.NoError(t, h.c.SetItemDisabled(apple, true))
	assert.Equal(t, PhaseIdle, h.c.Phase())
	assert.False(t, h.c.Board().IsRemaining(apple))
}
