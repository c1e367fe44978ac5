package chain

import (
	"errors"
	"slices"
	"testing"
)

func TestRebuild(t *testing.T) {
	c := New[int](5)
	c.Rebuild([]int{3, 0, 4})

	if c.Len() != 3 {
		t.Fatalf("Len = %d, want 3", c.Len())
	}
	if c.Head() != 3 {
		t.Errorf("Head = %d, want 3", c.Head())
	}
	if got := c.Order(); !slices.Equal(got, []int{3, 0, 4}) {
		t.Errorf("Order = %v, want [3 0 4]", got)
	}
	if c.Next(4) != 3 || c.Prev(3) != 4 {
		t.Errorf("chain does not wrap: Next(4)=%d Prev(3)=%d", c.Next(4), c.Prev(3))
	}
	if c.Contains(1) || c.Next(1) != None || c.Prev(1) != None {
		t.Error("unlinked member should have no links")
	}
	if err := c.Validate([]int{3, 0, 4}); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestSingleMemberIsSelfReferential(t *testing.T) {
	c := New[int](3)
	c.Insert(1, []int{1})

	if c.Head() != 1 || c.Next(1) != 1 || c.Prev(1) != 1 {
		t.Errorf("single member chain: head=%d next=%d prev=%d", c.Head(), c.Next(1), c.Prev(1))
	}

	if !c.Remove(1) {
		t.Fatal("Remove(1) = false")
	}
	if c.Head() != None || c.Len() != 0 {
		t.Errorf("after removing sole member: head=%d len=%d, want empty", c.Head(), c.Len())
	}
	if c.Next(1) != None {
		t.Error("removed member still linked to itself")
	}
	if err := c.Validate(nil); err != nil {
		t.Errorf("Validate(empty): %v", err)
	}
}

func TestInsert(t *testing.T) {
	tests := []struct {
		name     string
		initial  []int
		member   int
		order    []int
		wantHead int
	}{
		{"Middle", []int{0, 2}, 1, []int{0, 1, 2}, 0},
		{"End", []int{0, 1}, 2, []int{0, 1, 2}, 0},
		{"Front becomes head", []int{1, 2}, 0, []int{0, 1, 2}, 0},
		{"Into pair", []int{4}, 2, []int{2, 4}, 2},
		{"Into empty", nil, 3, []int{3}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New[int](5)
			c.Rebuild(tt.initial)
			c.Insert(tt.member, tt.order)

			if c.Head() != tt.wantHead {
				t.Errorf("Head = %d, want %d", c.Head(), tt.wantHead)
			}
			if err := c.Validate(tt.order); err != nil {
				t.Errorf("Validate: %v", err)
			}
		})
	}
}

func TestInsertRepositions(t *testing.T) {
	c := New[int](4)
	c.Rebuild([]int{0, 1, 2, 3})

	// Member 0 moved to the end of the membership order.
	c.Insert(0, []int{1, 2, 3, 0})

	if err := c.Validate([]int{1, 2, 3, 0}); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestRemove(t *testing.T) {
	tests := []struct {
		name     string
		member   int
		wantHead int
		want     []int
	}{
		{"Head", 0, 1, []int{1, 2, 3}},
		{"Middle", 2, 0, []int{0, 1, 3}},
		{"Tail", 3, 0, []int{0, 1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New[int](4)
			c.Rebuild([]int{0, 1, 2, 3})

			if !c.Remove(tt.member) {
				t.Fatalf("Remove(%d) = false", tt.member)
			}
			if c.Head() != tt.wantHead {
				t.Errorf("Head = %d, want %d", c.Head(), tt.wantHead)
			}
			if err := c.Validate(tt.want); err != nil {
				t.Errorf("Validate: %v", err)
			}
			if c.Remove(tt.member) {
				t.Error("second Remove should report false")
			}
		})
	}
}

func TestWalkReturnsToHead(t *testing.T) {
	c := New[int](8)
	order := []int{5, 1, 7, 0, 2}
	c.Rebuild(order)

	m := c.Head()
	for range c.Len() {
		m = c.Next(m)
	}
	if m != c.Head() {
		t.Errorf("walked to %d, want head %d", m, c.Head())
	}

	m = c.Head()
	for range c.Len() {
		m = c.Prev(m)
	}
	if m != c.Head() {
		t.Errorf("backward walk ended at %d, want head %d", m, c.Head())
	}
}

func TestValidateDetectsCorruption(t *testing.T) {
	c := New[int](4)
	c.Rebuild([]int{0, 1, 2})

	tests := []struct {
		name     string
		expected []int
	}{
		{"Shorter membership", []int{0, 1}},
		{"Longer membership", []int{0, 1, 2, 3}},
		{"Wrong order", []int{0, 2, 1}},
		{"Wrong head", []int{1, 2, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.Validate(tt.expected)
			if !errors.Is(err, ErrCorrupt) {
				t.Errorf("Validate(%v) = %v, want ErrCorrupt", tt.expected, err)
			}
		})
	}
}

func TestInsertPanicsOnMissingMember(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Insert with member missing from order should panic")
		}
	}()
	c := New[int](3)
	c.Insert(1, []int{0, 2})
}
