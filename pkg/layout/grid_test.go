package layout

import (
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/dragdrop/pkg/board"
	"github.com/matzehuels/dragdrop/pkg/config"
	"github.com/matzehuels/dragdrop/pkg/geom"
	"github.com/matzehuels/dragdrop/pkg/interaction"
)

func newGrid(t *testing.T, capacity int, opts Options) (*interaction.Controller, *Grid, *interaction.ManualScheduler) {
	t.Helper()
	sched := interaction.NewManualScheduler(time.Unix(0, 0))
	opts.TrayWidth = 40
	g := New(sched, opts)
	c, err := interaction.New(config.Config{
		DragItems: []config.ItemConfig{{ID: "apple"}, {ID: "pear"}},
		DropAreas: []config.AreaConfig{{ID: "basket", MaxCapacity: capacity}},
	}, interaction.WithRenderer(g), interaction.WithScheduler(sched))
	if err != nil {
		t.Fatal(err)
	}
	return c, g, sched
}

func TestHomePositions(t *testing.T) {
	tests := []struct {
		name     string
		align    bool
		wantPear geom.Rect
	}{
		{"Gaps", false, geom.Rect{X: 19, Y: 7, W: 16, H: 1}},
		{"Aligned", true, geom.Rect{X: 1, Y: 7, W: 16, H: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, g, sched := newGrid(t, 2, Options{AlignRemaining: tt.align})
			apple, pear := board.ItemRef(0), board.ItemRef(1)

			if got, want := g.HomePosition(apple), (geom.Rect{X: 1, Y: 7, W: 16, H: 1}); got != want {
				t.Errorf("tray home = %v, want %v", got, want)
			}

			if err := c.Activate(interaction.ItemTarget(apple)); err != nil {
				t.Fatal(err)
			}
			if err := c.Activate(interaction.AreaTarget(0)); err != nil {
				t.Fatal(err)
			}
			sched.Flush()

			if got, want := g.CurrentPosition(interaction.ItemTarget(apple)), (geom.Rect{X: 2, Y: 2, W: 16, H: 1}); got != want {
				t.Errorf("placed position = %v, want %v", got, want)
			}
			if got := g.CurrentPosition(interaction.ItemTarget(pear)); got != tt.wantPear {
				t.Errorf("pear position = %v, want %v", got, tt.wantPear)
			}
		})
	}
}

func TestAnimationInterpolates(t *testing.T) {
	c, g, sched := newGrid(t, 2, Options{Duration: 100 * time.Millisecond})
	apple := board.ItemRef(0)
	from := g.CurrentPosition(interaction.ItemTarget(apple))

	_ = c.Activate(interaction.ItemTarget(apple))
	_ = c.Activate(interaction.AreaTarget(0))
	to := g.HomePosition(apple)
	if !g.Animating() {
		t.Fatal("Animating = false after an animated drop")
	}

	sched.Advance(50 * time.Millisecond)
	mid := g.CurrentPosition(interaction.ItemTarget(apple))
	if mid == from || mid == to {
		t.Errorf("halfway position %v equals an endpoint", mid)
	}
	if wantY := from.Y + (to.Y-from.Y)/2; mid.Y != wantY {
		t.Errorf("halfway Y = %d, want %d", mid.Y, wantY)
	}

	sched.Advance(50 * time.Millisecond)
	if got := g.CurrentPosition(interaction.ItemTarget(apple)); got != to {
		t.Errorf("final position = %v, want %v", got, to)
	}
	if g.Animating() {
		t.Error("still animating after the duration")
	}
}

func TestCancelMoveFreezes(t *testing.T) {
	sched := interaction.NewManualScheduler(time.Unix(0, 0))
	g := New(sched, Options{Duration: 100 * time.Millisecond})
	b, err := board.New(config.Config{DragItems: []config.ItemConfig{{ID: "a"}}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	g.BindBoard(b)

	called := false
	g.MoveTo(0, geom.Rect{X: 100, Y: 0, W: 1, H: 1}, true, func() { called = true })
	sched.Advance(25 * time.Millisecond)
	g.CancelMove(0)
	sched.Flush()

	if called {
		t.Error("done called for a cancelled move")
	}
	if got := g.CurrentPosition(interaction.ItemTarget(0)); got.X != 25 {
		t.Errorf("frozen X = %d, want 25", got.X)
	}
}

func TestAt(t *testing.T) {
	_, g, _ := newGrid(t, 2, Options{})

	tests := []struct {
		p    geom.Point
		want interaction.Target
		ok   bool
	}{
		{geom.Point{X: 5, Y: 7}, interaction.ItemTarget(0), true},
		{geom.Point{X: 20, Y: 7}, interaction.ItemTarget(1), true},
		{geom.Point{X: 3, Y: 2}, interaction.AreaTarget(0), true},
		{geom.Point{X: 0, Y: 0}, interaction.NoTarget, false},
	}
	for _, tt := range tests {
		got, ok := g.At(tt.p)
		if got != tt.want || ok != tt.ok {
			t.Errorf("At(%v) = %v, %v; want %v, %v", tt.p, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDraw(t *testing.T) {
	_, g, _ := newGrid(t, 1, Options{})

	lines := strings.Split(g.Draw().String(), "\n")
	want := map[int]string{
		1: " ┌─basket" + strings.Repeat("─", 9) + "┐",
		2: " │" + strings.Repeat(" ", 16) + "│",
		3: " └" + strings.Repeat("─", 16) + "┘",
		6: "  apple" + strings.Repeat(" ", 13) + "pear",
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}

	canvas := g.Draw()
	if got := canvas.TargetAt(3, 6); got != interaction.ItemTarget(0) {
		t.Errorf("TargetAt(3,6) = %v, want apple", got)
	}
	if got := canvas.TargetAt(5, 2); got != interaction.AreaTarget(0) {
		t.Errorf("TargetAt(5,2) = %v, want basket", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"apple", 10, "apple"},
		{"apple", 4, "app…"},
		{"apple", 1, "…"},
		{"apple", 0, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
