package interaction

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/matzehuels/dragdrop/pkg/board"
	"github.com/matzehuels/dragdrop/pkg/config"
	"github.com/matzehuels/dragdrop/pkg/geom"
)

const animation = 100 * time.Millisecond

// fakeRenderer lays areas out in a row and unplaced items in a tray below.
// Animated moves finish after a fixed delay on the manual scheduler.
type fakeRenderer struct {
	b      *board.Board
	sched  *ManualScheduler
	pos    map[board.ItemRef]geom.Rect
	timers map[board.ItemRef]Timer
	cancel []board.ItemRef
}

func newFakeRenderer(s *ManualScheduler) *fakeRenderer {
	return &fakeRenderer{
		sched:  s,
		pos:    make(map[board.ItemRef]geom.Rect),
		timers: make(map[board.ItemRef]Timer),
	}
}

func (r *fakeRenderer) BindBoard(b *board.Board) { r.b = b }

func (r *fakeRenderer) areaRect(a board.AreaRef) geom.Rect {
	return geom.Rect{X: 100 * int(a), Y: 0, W: 80, H: 80}
}

func (r *fakeRenderer) HomePosition(item board.ItemRef) geom.Rect {
	it := r.b.Item(item)
	if owner := it.ChosenDropArea(); owner != board.NoArea {
		ar := r.areaRect(owner)
		slot := slices.Index(r.b.Area(owner).InnerItems(), item)
		return geom.Rect{X: ar.X + 5, Y: ar.Y + 5 + 22*slot, W: 20, H: 20}
	}
	return geom.Rect{X: 100 * it.OrderIndex(), Y: 200, W: 20, H: 20}
}

func (r *fakeRenderer) CurrentPosition(t Target) geom.Rect {
	if t.IsArea() {
		return r.areaRect(t.Area)
	}
	return r.pos[t.Item]
}

func (r *fakeRenderer) Intersects(a, b geom.Rect) bool { return a.Intersects(b) }

func (r *fakeRenderer) MoveTo(item board.ItemRef, rect geom.Rect, animate bool, done func()) {
	finish := func() {
		delete(r.timers, item)
		r.pos[item] = rect
		if done != nil {
			done()
		}
	}
	if !animate {
		finish()
		return
	}
	r.timers[item] = r.sched.After(animation, finish)
}

func (r *fakeRenderer) CancelMove(item board.ItemRef) {
	if t, ok := r.timers[item]; ok {
		t.Stop()
		delete(r.timers, item)
		r.cancel = append(r.cancel, item)
	}
}

type harness struct {
	t     *testing.T
	c     *Controller
	q     *EventQueue
	r     *fakeRenderer
	sched *ManualScheduler
}

func newHarness(t *testing.T, cfg config.Config, opts ...Option) *harness {
	t.Helper()
	sched := NewManualScheduler(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	r := newFakeRenderer(sched)
	q := &EventQueue{}
	opts = append([]Option{
		WithRenderer(r),
		WithScheduler(sched),
		WithObserver(q),
		WithIDGenerator(board.NewIDGenerator("h")),
	}, opts...)
	c, err := New(cfg, opts...)
	require.NoError(t, err)
	return &harness{t: t, c: c, q: q, r: r, sched: sched}
}

func (h *harness) item(id string) board.ItemRef {
	h.t.Helper()
	ref, ok := h.c.Board().ItemByID(id)
	require.True(h.t, ok, id)
	return ref
}

func (h *harness) area(id string) board.AreaRef {
	h.t.Helper()
	ref, ok := h.c.Board().AreaByID(id)
	require.True(h.t, ok, id)
	return ref
}

// drag moves item with the pointer so that its rect ends up centred on to.
func (h *harness) drag(item board.ItemRef, to geom.Point) {
	h.t.Helper()
	start := h.r.CurrentPosition(ItemTarget(item)).Center()
	require.NoError(h.t, h.c.PointerDown(item, start))
	mid := geom.Point{X: (start.X + to.X) / 2, Y: (start.Y + to.Y) / 2}
	require.NoError(h.t, h.c.PointerMove(item, mid))
	require.NoError(h.t, h.c.PointerUp(item, to))
}

func (h *harness) dragToArea(item board.ItemRef, area board.AreaRef) {
	h.t.Helper()
	h.drag(item, h.r.areaRect(area).Center())
}

func (h *harness) selectDrop(item board.ItemRef, target Target) {
	h.t.Helper()
	require.NoError(h.t, h.c.Activate(ItemTarget(item)))
	require.NoError(h.t, h.c.Activate(target))
}

// settle runs every pending animation and timer.
func (h *harness) settle() { h.sched.Flush() }

func eventsOf[E Event](events []Event) []E {
	var out []E
	for _, e := range events {
		if v, ok := e.(E); ok {
			out = append(out, v)
		}
	}
	return out
}

func lastStop(t *testing.T, events []Event) InteractionStopEvent {
	t.Helper()
	stops := eventsOf[InteractionStopEvent](events)
	require.NotEmpty(t, stops, "no stop event")
	return stops[len(stops)-1]
}

func fruitConfig(replace bool) config.Config {
	return config.Config{
		PossibleToReplaceDroppedItem: replace,
		DragItems: []config.ItemConfig{
			{ID: "apple", Groups: []string{"fruit"}},
			{ID: "pear", Groups: []string{"fruit"}},
			{ID: "carrot", Groups: []string{"vegetable"}},
		},
		DropAreas: []config.AreaConfig{
			{ID: "basket", Accept: []string{"fruit"}, MaxCapacity: 1},
			{ID: "crate", MaxCapacity: 2},
		},
	}
}

func listConfig(mode config.ShuffleMode, ids ...string) config.Config {
	cfg := config.Config{ShiftOrSwapOnNoAreas: mode}
	for _, id := range ids {
		cfg.DragItems = append(cfg.DragItems, config.ItemConfig{ID: id})
	}
	return cfg
}
