package geom

import "testing"

func TestRectOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want int
	}{
		{"Disjoint", Rect{0, 0, 2, 2}, Rect{5, 5, 2, 2}, 0},
		{"Touching", Rect{0, 0, 2, 2}, Rect{2, 0, 2, 2}, 0},
		{"Partial", Rect{0, 0, 4, 4}, Rect{2, 2, 4, 4}, 4},
		{"Contained", Rect{0, 0, 10, 10}, Rect{1, 1, 2, 3}, 6},
		{"Empty", Rect{0, 0, 0, 5}, Rect{0, 0, 5, 5}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlap(tt.b); got != tt.want {
				t.Errorf("Overlap = %d, want %d", got, tt.want)
			}
			if got := tt.b.Overlap(tt.a); got != tt.want {
				t.Errorf("Overlap (swapped) = %d, want %d", got, tt.want)
			}
			if got := tt.a.Intersects(tt.b); got != (tt.want > 0) {
				t.Errorf("Intersects = %v, want %v", got, tt.want > 0)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 2, Y: 3, W: 3, H: 2}

	inside := []Point{{2, 3}, {4, 4}, {3, 3}}
	for _, p := range inside {
		if !r.Contains(p) {
			t.Errorf("Contains(%v) = false, want true", p)
		}
	}

	outside := []Point{{1, 3}, {5, 3}, {2, 5}, {0, 0}}
	for _, p := range outside {
		if r.Contains(p) {
			t.Errorf("Contains(%v) = true, want false", p)
		}
	}
}

func TestRectTranslate(t *testing.T) {
	r := Rect{X: 1, Y: 1, W: 4, H: 2}
	got := r.Translate(Point{X: 3, Y: -1})
	want := Rect{X: 4, Y: 0, W: 4, H: 2}
	if got != want {
		t.Errorf("Translate = %v, want %v", got, want)
	}
	if got := r.At(Point{X: 9, Y: 9}); got.Origin() != (Point{9, 9}) || got.W != 4 {
		t.Errorf("At = %v", got)
	}
}
