package board

// FirstRemaining returns the head of the remaining chain, or [NoItem].
func (b *Board) FirstRemaining() ItemRef { return b.remaining.chain.Head() }

// NextRemaining returns the remaining item after ref, wrapping around. When
// ref is not remaining the head is returned.
func (b *Board) NextRemaining(ref ItemRef) ItemRef {
	if !b.remaining.contains(ref) {
		return b.FirstRemaining()
	}
	return b.remaining.chain.Next(ref)
}

// PrevRemaining returns the remaining item before ref, wrapping around. When
// ref is not remaining the head is returned.
func (b *Board) PrevRemaining(ref ItemRef) ItemRef {
	if !b.remaining.contains(ref) {
		return b.FirstRemaining()
	}
	return b.remaining.chain.Prev(ref)
}

// FirstAllowed returns the head of the allowed chain, or [NoArea].
func (b *Board) FirstAllowed() AreaRef { return b.allowed.chain.Head() }

// NextAllowed returns the allowed area after ref, wrapping around.
func (b *Board) NextAllowed(ref AreaRef) AreaRef {
	if !b.allowed.contains(ref) {
		return b.FirstAllowed()
	}
	return b.allowed.chain.Next(ref)
}

// PrevAllowed returns the allowed area before ref, wrapping around.
func (b *Board) PrevAllowed(ref AreaRef) AreaRef {
	if !b.allowed.contains(ref) {
		return b.FirstAllowed()
	}
	return b.allowed.chain.Prev(ref)
}
