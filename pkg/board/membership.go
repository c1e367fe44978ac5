package board

import (
	"slices"
	"sort"

	"github.com/matzehuels/dragdrop/pkg/chain"
)

// membership is a live subset of an arena kept sorted by a key, together with
// the sibling chain threading it. Both are updated in the same call.
type membership[R ~int] struct {
	members []R
	in      []bool
	key     func(R) int
	chain   *chain.Chain[R]
}

func newMembership[R ~int](capacity int, key func(R) int) *membership[R] {
	return &membership[R]{
		in:    make([]bool, capacity),
		key:   key,
		chain: chain.New[R](capacity),
	}
}

func (m *membership[R]) contains(r R) bool {
	return r >= 0 && int(r) < len(m.in) && m.in[r]
}

func (m *membership[R]) len() int { return len(m.members) }

func (m *membership[R]) list() []R { return slices.Clone(m.members) }

func (m *membership[R]) first() R {
	if len(m.members) == 0 {
		return -1
	}
	return m.members[0]
}

// insert adds r at its key position and links it into the chain.
func (m *membership[R]) insert(r R) {
	if m.in[r] {
		return
	}
	k := m.key(r)
	pos := sort.Search(len(m.members), func(i int) bool { return m.key(m.members[i]) > k })
	m.members = slices.Insert(m.members, pos, r)
	m.in[r] = true
	m.chain.Insert(r, m.members)
}

// remove drops r from the set and unlinks it.
func (m *membership[R]) remove(r R) {
	if !m.in[r] {
		return
	}
	m.members = slices.DeleteFunc(m.members, func(x R) bool { return x == r })
	m.in[r] = false
	m.chain.Remove(r)
}

// set inserts or removes r so that membership matches want.
func (m *membership[R]) set(r R, want bool) {
	if want {
		m.insert(r)
	} else {
		m.remove(r)
	}
}

// reposition moves r after its key changed. Other members must keep their
// relative order.
func (m *membership[R]) reposition(r R) {
	if !m.in[r] {
		return
	}
	m.members = slices.DeleteFunc(m.members, func(x R) bool { return x == r })
	m.in[r] = false
	m.insert(r)
}

// rebuild recomputes the set from scratch using pred and relinks the chain.
func (m *membership[R]) rebuild(all []R, pred func(R) bool) {
	m.members = m.members[:0]
	clear(m.in)
	for _, r := range all {
		if pred(r) {
			m.members = append(m.members, r)
			m.in[r] = true
		}
	}
	slices.SortStableFunc(m.members, func(a, b R) int { return m.key(a) - m.key(b) })
	m.chain.Rebuild(m.members)
}
