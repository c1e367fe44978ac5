package board

import (
	"fmt"

	"github.com/google/uuid"
)

// IDGenerator hands out element identifiers scoped to one board session.
// Identifiers look like "3f2a9c1e-item-4", so two boards rendered into the same
// document never collide.
type IDGenerator struct {
	session string
	n       int
}

// NewIDGenerator returns a generator for session. An empty session gets a
// random prefix.
func NewIDGenerator(session string) *IDGenerator {
	if session == "" {
		session = uuid.NewString()[:8]
	}
	return &IDGenerator{session: session}
}

// Session returns the prefix shared by every generated identifier.
func (g *IDGenerator) Session() string { return g.session }

// Next returns a fresh identifier for an element of the given kind.
func (g *IDGenerator) Next(kind string) string {
	g.n++
	return fmt.Sprintf("%s-%s-%d", g.session, kind, g.n)
}
