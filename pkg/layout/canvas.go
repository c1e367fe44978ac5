package layout

import (
	"strings"

	"github.com/matzehuels/dragdrop/pkg/geom"
	"github.com/matzehuels/dragdrop/pkg/interaction"
)

// Role tells a host how to style a cell.
type Role int

const (
	RoleBlank Role = iota
	RoleAreaBorder
	RoleAreaTitle
	RoleItem
)

// Cell is one character of a drawn board.
type Cell struct {
	Rune   rune
	Role   Role
	Target interaction.Target
}

// Canvas is a drawn board, row by row.
type Canvas [][]Cell

// Draw renders the current positions. Areas are drawn first and items on
// top, in display order, so a dragged item covers what it is over.
func (g *Grid) Draw() Canvas {
	w, h := g.Size()
	for _, ref := range g.b.Items() {
		r := g.CurrentPosition(interaction.ItemTarget(ref))
		w, h = max(w, r.X+r.W), max(h, r.Y+r.H)
	}
	c := make(Canvas, h)
	for y := range c {
		c[y] = make([]Cell, w)
		for x := range c[y] {
			c[y][x] = Cell{Rune: ' ', Target: interaction.NoTarget}
		}
	}

	for _, ref := range g.b.Areas() {
		a := g.b.Area(ref)
		c.box(g.areaRects[ref], interaction.AreaTarget(ref), a.Label())
	}
	for _, ref := range g.b.Items() {
		it := g.b.Item(ref)
		r := g.CurrentPosition(interaction.ItemTarget(ref))
		c.fill(r, interaction.ItemTarget(ref), " "+it.Label())
	}
	return c
}

// String draws the canvas as plain text with trailing spaces trimmed.
func (c Canvas) String() string {
	var sb strings.Builder
	for _, row := range c {
		line := make([]rune, len(row))
		for i, cell := range row {
			line[i] = cell.Rune
		}
		sb.WriteString(strings.TrimRight(string(line), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (c Canvas) set(x, y int, r rune, role Role, t interaction.Target) {
	if y < 0 || y >= len(c) || x < 0 || x >= len(c[y]) {
		return
	}
	c[y][x] = Cell{Rune: r, Role: role, Target: t}
}

func (c Canvas) box(r geom.Rect, t interaction.Target, title string) {
	right, bottom := r.X+r.W-1, r.Y+r.H-1
	for x := r.X; x <= right; x++ {
		c.set(x, r.Y, '─', RoleAreaBorder, t)
		c.set(x, bottom, '─', RoleAreaBorder, t)
	}
	for y := r.Y; y <= bottom; y++ {
		c.set(r.X, y, '│', RoleAreaBorder, t)
		c.set(right, y, '│', RoleAreaBorder, t)
	}
	c.set(r.X, r.Y, '┌', RoleAreaBorder, t)
	c.set(right, r.Y, '┐', RoleAreaBorder, t)
	c.set(r.X, bottom, '└', RoleAreaBorder, t)
	c.set(right, bottom, '┘', RoleAreaBorder, t)

	for i, ch := range []rune(truncate(title, r.W-4)) {
		c.set(r.X+2+i, r.Y, ch, RoleAreaTitle, t)
	}
	for y := r.Y + 1; y < bottom; y++ {
		for x := r.X + 1; x < right; x++ {
			c.set(x, y, ' ', RoleBlank, t)
		}
	}
}

func (c Canvas) fill(r geom.Rect, t interaction.Target, text string) {
	runes := []rune(truncate(text, r.W))
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			ch := ' '
			if i := x - r.X; y == r.Y && i < len(runes) {
				ch = runes[i]
			}
			c.set(x, y, ch, RoleItem, t)
		}
	}
}

// TargetAt returns the target drawn at cell (x, y).
func (c Canvas) TargetAt(x, y int) interaction.Target {
	if y < 0 || y >= len(c) || x < 0 || x >= len(c[y]) {
		return interaction.NoTarget
	}
	return c[y][x].Target
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
