// Package geom provides the integer rectangle math used for drop-target hit
// testing.
//
// Coordinates are abstract units. The terminal host uses character cells, but
// nothing here assumes a particular unit. Rectangles are half-open: a Rect with
// X=0 and W=3 covers columns 0, 1 and 2.
package geom

import "fmt"

// Point is a pointer position.
type Point struct {
	X, Y int
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point { return Point{X: p.X + d.X, Y: p.Y + d.Y} }

// Sub returns the offset from q to p.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y int // Top-left corner
	W, H int // Width and height; a rect with W or H <= 0 is empty
}

// Empty reports whether r covers no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return !r.Empty() && p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Intersects reports whether r and o share at least one unit of area.
// Empty rectangles intersect nothing.
func (r Rect) Intersects(o Rect) bool {
	return r.Overlap(o) > 0
}

// Overlap returns the area shared by r and o, or 0 when they are disjoint.
func (r Rect) Overlap(o Rect) int {
	if r.Empty() || o.Empty() {
		return 0
	}
	w := min(r.X+r.W, o.X+o.W) - max(r.X, o.X)
	h := min(r.Y+r.H, o.Y+o.H) - max(r.Y, o.Y)
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// Translate returns r moved by d.
func (r Rect) Translate(d Point) Rect {
	return Rect{X: r.X + d.X, Y: r.Y + d.Y, W: r.W, H: r.H}
}

// Origin returns the top-left corner of r.
func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

// Center returns the (rounded down) center point of r.
func (r Rect) Center() Point { return Point{X: r.X + r.W/2, Y: r.Y + r.H/2} }

// At returns r with its top-left corner moved to p.
func (r Rect) At(p Point) Rect { return Rect{X: p.X, Y: p.Y, W: r.W, H: r.H} }

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.W, r.H)
}
