package interaction

import (
	"time"

	"github.com/matzehuels/dragdrop/pkg/a11y"
	"github.com/matzehuels/dragdrop/pkg/board"
)

// Option configures a [Controller].
type Option func(*Controller)

// WithRenderer sets the renderer. Without one, movements complete at once and
// pointer drops never hit anything.
func WithRenderer(r Renderer) Option {
	return func(c *Controller) { c.renderer = r }
}

// WithScheduler sets the time source. Without one, a [ManualScheduler]
// starting at the current time is used.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.scheduler = s }
}

// WithObserver registers an observer before the CreateEvent is emitted.
func WithObserver(o Observer) Option {
	return func(c *Controller) { c.observers.add(o) }
}

// WithTextProvider sets the accessibility text provider. The default is
// [a11y.English].
func WithTextProvider(p a11y.Provider) Option {
	return func(c *Controller) { c.text = p }
}

// WithIDGenerator scopes element identifiers to an existing session.
func WithIDGenerator(g *board.IDGenerator) Option {
	return func(c *Controller) { c.ids = g }
}

// WithFeedbackDelay overrides the configured pause before focus advances
// after a keyboard drop.
func WithFeedbackDelay(d time.Duration) Option {
	return func(c *Controller) { c.feedbackDelay = d }
}

// WithAnimation overrides the configured animation setting.
func WithAnimation(enabled bool) Option {
	return func(c *Controller) { c.animate = enabled }
}
