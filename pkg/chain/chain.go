// Package chain implements the circular sibling chain used for linear
// keyboard-style navigation over a live collection.
//
// # Overview
//
// A [Chain] links the members of a membership set (remaining drag items or
// allowed drop areas) into exactly one cycle. Members are addressed by their
// arena index, so links are plain int pairs rather than pointers: records
// never reference each other and there is no reference-cycle lifetime to
// manage.
//
// The chain is independent of the storage order of the collection. It is
// maintained incrementally: [Chain.Insert] splices a member between its two
// neighbours in the current membership order and [Chain.Remove] unlinks it,
// both in O(1) once the member's position is known. [Chain.Rebuild] relinks
// everything from scratch after bulk operations.
//
// # Invariants
//
//   - Len equals the number of linked members.
//   - Walking Next exactly Len times from Head returns to Head.
//   - A chain of one member is self-referential.
//   - A member that is not linked has no next or prev.
//   - Head is [None] exactly when the chain is empty.
//
// [Chain.Validate] checks all of them against an expected order.
//
// # Concurrency
//
// Chain is not safe for concurrent use. The engine owning it is
// single-threaded by design.
package chain

import (
	"errors"
	"fmt"
	"iter"
	"slices"
)

// None is the index used for "no member".
const None = -1

var (
	// ErrCorrupt is returned by [Chain.Validate] when the links do not form
	// exactly one cycle over the expected members.
	ErrCorrupt = errors.New("sibling chain corrupt")
)

// Chain is a circular doubly-linked list over arena indices [0, capacity).
// T is the caller's index type, so item and area chains cannot be mixed up.
// The zero value is not usable; create one with [New].
type Chain[T ~int] struct {
	next []T
	prev []T
	head T
	size int
}

// New creates an empty chain able to link members 0..capacity-1.
func New[T ~int](capacity int) *Chain[T] {
	c := &Chain[T]{
		next: make([]T, capacity),
		prev: make([]T, capacity),
		head: None,
	}
	c.clear()
	return c
}

func (c *Chain[T]) clear() {
	for i := range c.next {
		c.next[i] = None
		c.prev[i] = None
	}
	c.head = None
	c.size = 0
}

// Len returns the number of linked members.
func (c *Chain[T]) Len() int { return c.size }

// Head returns the first member, or [None] for an empty chain.
func (c *Chain[T]) Head() T { return c.head }

// Contains reports whether m is linked.
func (c *Chain[T]) Contains(m T) bool {
	return m >= 0 && int(m) < len(c.next) && c.next[m] != None
}

// Next returns the member after m, or [None] if m is not linked.
func (c *Chain[T]) Next(m T) T {
	if !c.Contains(m) {
		return None
	}
	return c.next[m]
}

// Prev returns the member before m, or [None] if m is not linked.
func (c *Chain[T]) Prev(m T) T {
	if !c.Contains(m) {
		return None
	}
	return c.prev[m]
}

// Insert links member into the chain. order is the current membership
// array and must already contain member; its wrapped neighbours in order
// become member's prev and next. When member is at position 0 of order it
// becomes the new head.
//
// Inserting a member that is already linked first unlinks it, so Insert can
// also be used to reposition a member after its place in order changed.
//
// Insert panics if member is outside the arena or missing from order; both are
// programmer errors in the caller's bookkeeping.
func (c *Chain[T]) Insert(member T, order []T) {
	if member < 0 || int(member) >= len(c.next) {
		panic(fmt.Sprintf("chain: member %d outside arena of %d", member, len(c.next)))
	}
	pos := slices.Index(order, member)
	if pos < 0 {
		panic(fmt.Sprintf("chain: member %d missing from membership order", member))
	}
	if c.Contains(member) {
		c.Remove(member)
	}

	n := len(order)
	if n == 1 || c.size == 0 {
		c.next[member] = member
		c.prev[member] = member
		c.head = member
		c.size = 1
		return
	}

	before := order[(pos-1+n)%n]
	after := order[(pos+1)%n]

	c.next[before] = member
	c.prev[member] = before
	c.next[member] = after
	c.prev[after] = member
	c.size++

	if pos == 0 {
		c.head = member
	}
}

// Remove unlinks member. If member was the head, the head moves to its next
// sibling, or to [None] when the chain becomes empty. Remove reports whether
// member was linked.
func (c *Chain[T]) Remove(member T) bool {
	if !c.Contains(member) {
		return false
	}

	if c.size == 1 {
		c.head = None
	} else {
		before, after := c.prev[member], c.next[member]
		c.next[before] = after
		c.prev[after] = before
		if c.head == member {
			c.head = after
		}
	}

	c.next[member] = None
	c.prev[member] = None
	c.size--
	return true
}

// Rebuild discards all links and chains order from scratch, order[0] becoming
// the head. Duplicate entries in order are a programmer error and panic.
func (c *Chain[T]) Rebuild(order []T) {
	c.clear()
	n := len(order)
	for i, m := range order {
		if c.next[m] != None {
			panic(fmt.Sprintf("chain: duplicate member %d in rebuild order", m))
		}
		c.next[m] = order[(i+1)%n]
		c.prev[m] = order[(i-1+n)%n]
	}
	c.size = n
	if n > 0 {
		c.head = order[0]
	}
}

// All yields the members in chain order, starting at the head.
func (c *Chain[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		if c.head == None {
			return
		}
		m := c.head
		for range c.size {
			if !yield(m) {
				return
			}
			m = c.next[m]
		}
	}
}

// Order returns the members in chain order as a new slice.
func (c *Chain[T]) Order() []T {
	return slices.Collect(c.All())
}

// Validate checks the chain against the expected membership order. It
// returns an error wrapping [ErrCorrupt] describing the first violation.
func (c *Chain[T]) Validate(expected []T) error {
	if c.size != len(expected) {
		return fmt.Errorf("%w: length %d, membership %d", ErrCorrupt, c.size, len(expected))
	}
	if len(expected) == 0 {
		if c.head != None {
			return fmt.Errorf("%w: empty chain has head %d", ErrCorrupt, c.head)
		}
	} else if c.head != expected[0] {
		return fmt.Errorf("%w: head %d, want %d", ErrCorrupt, c.head, expected[0])
	}

	linked := 0
	for i := range c.next {
		m := T(i)
		if c.next[m] == None {
			if c.prev[m] != None {
				return fmt.Errorf("%w: member %d has prev but no next", ErrCorrupt, m)
			}
			continue
		}
		linked++
		if c.prev[m] == None || c.next[c.prev[m]] != m {
			return fmt.Errorf("%w: member %d prev/next mismatch", ErrCorrupt, m)
		}
	}
	if linked != c.size {
		return fmt.Errorf("%w: %d linked members, length %d", ErrCorrupt, linked, c.size)
	}

	m := c.head
	for i, want := range expected {
		if m != want {
			return fmt.Errorf("%w: position %d is %d, want %d", ErrCorrupt, i, m, want)
		}
		m = c.next[m]
	}
	if m != c.head && c.size > 0 {
		return fmt.Errorf("%w: walk of %d steps did not return to head", ErrCorrupt, c.size)
	}
	return nil
}
