// Package layout is a cell-grid [interaction.Renderer] for terminal hosts.
//
// Drop areas are drawn as a row of boxes; each owned item occupies one row
// inside its area, in drop order. Remaining items sit in a tray below the
// areas (at the top on boards without areas). With AlignRemaining the tray
// is packed; otherwise every item keeps the slot of its order index so that
// placing an item leaves a gap.
//
// Animated moves interpolate linearly on the injected scheduler's clock and
// complete through it, so the renderer works both under a real UI loop and
// under a [interaction.ManualScheduler] in tests.
package layout

import (
	"slices"
	"time"

	"github.com/matzehuels/dragdrop/pkg/board"
	"github.com/matzehuels/dragdrop/pkg/geom"
	"github.com/matzehuels/dragdrop/pkg/interaction"
)

// DefaultDuration is the length of an animated move.
const DefaultDuration = 150 * time.Millisecond

// Options controls the grid geometry. Zero fields take defaults.
type Options struct {
	Margin     int // cells around the board
	Gap        int // cells between areas and between tray slots
	AreaWidth  int // outer width of an area box
	ItemHeight int // rows per item
	TrayWidth  int // maximum tray width before wrapping; 0 fits the areas

	AlignRemaining bool
	Duration       time.Duration
}

func (o *Options) setDefaults() {
	if o.Margin == 0 {
		o.Margin = 1
	}
	if o.Gap == 0 {
		o.Gap = 2
	}
	if o.AreaWidth == 0 {
		o.AreaWidth = 18
	}
	if o.ItemHeight == 0 {
		o.ItemHeight = 1
	}
	if o.Duration == 0 {
		o.Duration = DefaultDuration
	}
}

type motion struct {
	from, to   geom.Rect
	start, end time.Time
	timer      interaction.Timer
}

// Grid implements [interaction.Renderer], [interaction.MoveCanceler] and
// [interaction.BoardBinder].
type Grid struct {
	opts  Options
	sched interaction.Scheduler
	b     *board.Board

	areaRects []geom.Rect
	trayY     int
	perRow    int

	pos     []geom.Rect
	motions map[board.ItemRef]*motion
}

var (
	_ interaction.Renderer     = (*Grid)(nil)
	_ interaction.MoveCanceler = (*Grid)(nil)
	_ interaction.BoardBinder  = (*Grid)(nil)
)

// New returns a grid driven by sched. The grid is usable once the controller
// has bound it to a board.
func New(sched interaction.Scheduler, opts Options) *Grid {
	opts.setDefaults()
	return &Grid{
		opts:    opts,
		sched:   sched,
		motions: make(map[board.ItemRef]*motion),
	}
}

// BindBoard computes the static geometry for b.
func (g *Grid) BindBoard(b *board.Board) {
	g.b = b
	g.pos = make([]geom.Rect, b.NumItems())
	o := g.opts

	rows := 1
	for _, ref := range b.Areas() {
		n := b.Area(ref).MaxCapacity()
		if n == 0 {
			n = b.NumItems()
		}
		rows = max(rows, n)
	}
	areaH := 2 + rows*o.ItemHeight

	g.areaRects = make([]geom.Rect, b.NumAreas())
	for i := range g.areaRects {
		g.areaRects[i] = geom.Rect{X: o.Margin + i*(o.AreaWidth+o.Gap), Y: o.Margin, W: o.AreaWidth, H: areaH}
	}

	g.trayY = o.Margin
	if b.HasAreas() {
		g.trayY += areaH + o.Gap
	}
	width := o.TrayWidth
	if width == 0 {
		width = max(len(g.areaRects)*(o.AreaWidth+o.Gap)-o.Gap, o.AreaWidth)
	}
	g.perRow = max(1, (width+o.Gap)/(g.itemWidth()+o.Gap))
}

func (g *Grid) itemWidth() int { return g.opts.AreaWidth - 2 }

// Size returns the width and height in cells needed to draw the board.
func (g *Grid) Size() (w, h int) {
	o := g.opts
	for _, r := range g.areaRects {
		w = max(w, r.X+r.W)
		h = max(h, r.Y+r.H)
	}
	rows := (g.b.NumItems() + g.perRow - 1) / g.perRow
	w = max(w, o.Margin+g.perRow*(g.itemWidth()+o.Gap)-o.Gap)
	h = max(h, g.trayY+rows*(o.ItemHeight+1))
	return w + o.Margin, h + o.Margin
}

// AreaRect returns the box of an area.
func (g *Grid) AreaRect(ref board.AreaRef) geom.Rect {
	if ref < 0 || int(ref) >= len(g.areaRects) {
		return geom.Rect{}
	}
	return g.areaRects[ref]
}

// HomePosition implements [interaction.Renderer].
func (g *Grid) HomePosition(item board.ItemRef) geom.Rect {
	it := g.b.Item(item)
	if it == nil {
		return geom.Rect{}
	}
	o := g.opts
	if owner := it.ChosenDropArea(); owner != board.NoArea {
		ar := g.areaRects[owner]
		slot := slices.Index(g.b.Area(owner).InnerItems(), item)
		return geom.Rect{X: ar.X + 1, Y: ar.Y + 1 + slot*o.ItemHeight, W: g.itemWidth(), H: o.ItemHeight}
	}

	slot := it.OrderIndex()
	if o.AlignRemaining {
		if i := slices.Index(g.b.Remaining(), item); i >= 0 {
			slot = i
		} else {
			// Disabled unplaced items go after the packed ones.
			slot = len(g.b.Remaining()) + g.disabledRank(item)
		}
	}
	col, row := slot%g.perRow, slot/g.perRow
	return geom.Rect{
		X: o.Margin + col*(g.itemWidth()+o.Gap),
		Y: g.trayY + row*(o.ItemHeight+1),
		W: g.itemWidth(),
		H: o.ItemHeight,
	}
}

func (g *Grid) disabledRank(item board.ItemRef) int {
	rank := 0
	for _, ref := range g.b.Items() {
		if ref == item {
			break
		}
		it := g.b.Item(ref)
		if !it.Placed() && !g.b.IsRemaining(ref) {
			rank++
		}
	}
	return rank
}

// CurrentPosition implements [interaction.Renderer]. Items in motion are
// interpolated on the scheduler's clock.
func (g *Grid) CurrentPosition(t interaction.Target) geom.Rect {
	switch {
	case t.IsArea():
		return g.AreaRect(t.Area)
	case t.IsItem() && t.Item >= 0 && int(t.Item) < len(g.pos):
		if m, ok := g.motions[t.Item]; ok {
			return m.at(g.sched.Now())
		}
		return g.pos[t.Item]
	default:
		return geom.Rect{}
	}
}

// Intersects implements [interaction.Renderer].
func (g *Grid) Intersects(a, b geom.Rect) bool { return a.Intersects(b) }

// MoveTo implements [interaction.Renderer].
func (g *Grid) MoveTo(item board.ItemRef, rect geom.Rect, animate bool, done func()) {
	from := g.CurrentPosition(interaction.ItemTarget(item))
	g.stop(item)

	if !animate || from == rect {
		g.pos[item] = rect
		if done != nil {
			done()
		}
		return
	}

	now := g.sched.Now()
	m := &motion{from: from, to: rect, start: now, end: now.Add(g.opts.Duration)}
	m.timer = g.sched.After(g.opts.Duration, func() {
		if g.motions[item] != m {
			return
		}
		delete(g.motions, item)
		g.pos[item] = rect
		if done != nil {
			done()
		}
	})
	g.motions[item] = m
}

// CancelMove implements [interaction.MoveCanceler]. The item stays where the
// animation had got to.
func (g *Grid) CancelMove(item board.ItemRef) {
	if m, ok := g.motions[item]; ok {
		g.pos[item] = m.at(g.sched.Now())
	}
	g.stop(item)
}

// Animating reports whether any item is in motion.
func (g *Grid) Animating() bool { return len(g.motions) > 0 }

func (g *Grid) stop(item board.ItemRef) {
	if m, ok := g.motions[item]; ok {
		m.timer.Stop()
		delete(g.motions, item)
	}
}

// At returns the topmost target under p: items before areas, later items
// before earlier ones.
func (g *Grid) At(p geom.Point) (interaction.Target, bool) {
	items := g.b.Items()
	for i := len(items) - 1; i >= 0; i-- {
		ref := items[i]
		if g.CurrentPosition(interaction.ItemTarget(ref)).Contains(p) {
			return interaction.ItemTarget(ref), true
		}
	}
	for i, r := range g.areaRects {
		if r.Contains(p) {
			return interaction.AreaTarget(board.AreaRef(i)), true
		}
	}
	return interaction.NoTarget, false
}

func (m *motion) at(now time.Time) geom.Rect {
	total := m.end.Sub(m.start)
	if total <= 0 || !now.Before(m.end) {
		return m.to
	}
	elapsed := now.Sub(m.start)
	lerp := func(a, b int) int { return a + int(int64(b-a)*int64(elapsed)/int64(total)) }
	return geom.Rect{
		X: lerp(m.from.X, m.to.X),
		Y: lerp(m.from.Y, m.to.Y),
		W: m.to.W,
		H: m.to.H,
	}
}
