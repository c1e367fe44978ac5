// Package interaction drives a [board.Board] from user input. It runs two
// state machines that share one placement path:
//
//	pointer: Idle -> Dragging -> Placed | Returned
//	select:  Idle -> ItemSelected -> AreaConfirmed | Cancelled
//
// Both end in the same call into the board for the same (item, target) pair,
// so a drop produces the same outcome whichever modality made it.
//
// # Sessions
//
// At most one session is active. Starting a drag or a selection while another
// session is active cancels the old one first and returns its item home.
//
// # Time
//
// The controller starts no goroutines. Animations complete through renderer
// callbacks and the feedback pause runs on the injected [Scheduler]. Each
// item has at most one movement in flight; a newer movement cancels the
// older one's completion.
//
// # Events
//
// Observers receive typed events synchronously, in registration order. Hosts
// that prefer pulling register an [EventQueue].
package interaction

import (
	"time"

	"github.com/matzehuels/dragdrop/pkg/a11y"
	"github.com/matzehuels/dragdrop/pkg/board"
	"github.com/matzehuels/dragdrop/pkg/config"
	"github.com/matzehuels/dragdrop/pkg/errors"
	"github.com/matzehuels/dragdrop/pkg/geom"
	"github.com/matzehuels/dragdrop/pkg/observability"
)

// Phase is the state of the active session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
	PhaseItemSelected
)

func (p Phase) String() string {
	switch p {
	case PhaseDragging:
		return "dragging"
	case PhaseItemSelected:
		return "item-selected"
	default:
		return "idle"
	}
}

type session struct {
	phase    Phase
	item     board.ItemRef
	started  time.Time
	origin   geom.Point
	startPos geom.Rect
	rect     geom.Rect
}

// Controller owns a board and the interaction state around it.
type Controller struct {
	board     *board.Board
	renderer  Renderer
	scheduler Scheduler
	text      a11y.Provider
	ids       *board.IDGenerator
	observers observerList

	animate       bool
	feedbackDelay time.Duration

	enabled   bool
	destroyed bool

	session     session
	focus       Target
	feedback    Timer
	completions *completions
}

// New validates cfg, builds the board and returns a controller in the idle
// state. Observers passed with [WithObserver] receive the CreateEvent.
func New(cfg config.Config, opts ...Option) (*Controller, error) {
	cfg.SetDefaults()
	c := &Controller{
		animate:       !cfg.DisableAnimation,
		feedbackDelay: cfg.FeedbackDelay.Duration,
		enabled:       true,
		focus:         NoTarget,
		session:       session{phase: PhaseIdle, item: board.NoItem},
		completions:   newCompletions(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.renderer == nil {
		c.renderer = nopRenderer{}
	}
	if c.scheduler == nil {
		c.scheduler = NewManualScheduler(time.Now())
	}
	if c.text == nil {
		c.text = a11y.English{}
	}
	if c.feedbackDelay <= 0 {
		c.feedbackDelay = config.DefaultFeedbackDelay
	}

	b, err := board.New(cfg, c.ids)
	if err != nil {
		return nil, err
	}
	c.board = b
	if binder, ok := c.renderer.(BoardBinder); ok {
		binder.BindBoard(b)
	}

	for _, ref := range b.Items() {
		c.moveItem(ref, c.renderer.HomePosition(ref), false, nil)
	}
	c.emit(CreateEvent{Session: b.Session()})
	return c, nil
}

// Board returns the controlled board. Hosts read it; mutations go through
// the controller so sessions and timers stay consistent.
func (c *Controller) Board() *board.Board { return c.board }

// Subscribe registers an observer and returns a function that removes it.
func (c *Controller) Subscribe(o Observer) (unsubscribe func()) { return c.observers.add(o) }

// Phase returns the state of the active session.
func (c *Controller) Phase() Phase { return c.session.phase }

// ActiveItem returns the item of the active session, or NoItem.
func (c *Controller) ActiveItem() board.ItemRef { return c.session.item }

// Selected returns the item picked up with the select modality, or NoItem.
func (c *Controller) Selected() board.ItemRef {
	if c.session.phase != PhaseItemSelected {
		return board.NoItem
	}
	return c.session.item
}

// Focus returns the focused target.
func (c *Controller) Focus() Target { return c.focus }

// Enabled reports whether the controller accepts input.
func (c *Controller) Enabled() bool { return c.enabled && !c.destroyed }

// Destroyed reports whether [Controller.Destroy] was called.
func (c *Controller) Destroyed() bool { return c.destroyed }

// PendingMovements returns the number of items with a movement in flight.
func (c *Controller) PendingMovements() int { return c.completions.len() }

// A11yState returns the state handed to the text provider.
func (c *Controller) A11yState() a11y.State {
	s := a11y.State{
		Board:     c.board,
		Enabled:   c.Enabled(),
		Selected:  c.Selected(),
		FocusItem: board.NoItem,
		FocusArea: board.NoArea,
	}
	switch c.focus.Kind {
	case TargetItem:
		s.FocusItem = c.focus.Item
	case TargetArea:
		s.FocusArea = c.focus.Area
	}
	return s
}

// Describe returns the accessible description of t.
func (c *Controller) Describe(t Target) string {
	switch t.Kind {
	case TargetItem:
		return c.text.Item(c.A11yState(), t.Item)
	case TargetArea:
		return c.text.Area(c.A11yState(), t.Area)
	default:
		return ""
	}
}

// Instructions returns usage instructions for the current state.
func (c *Controller) Instructions() string { return c.text.Instructions(c.A11yState()) }

// Status returns a one-sentence summary of the board.
func (c *Controller) Status() string { return c.text.Status(c.A11yState()) }

// SetCorrect records the host's verdict on an item.
func (c *Controller) SetCorrect(item board.ItemRef, correct bool) error {
	if err := c.checkAlive(); err != nil {
		return err
	}
	return c.board.SetCorrect(item, correct)
}

// SetItemDisabled enables or disables one item. Disabling the item of the
// active session cancels it.
func (c *Controller) SetItemDisabled(item board.ItemRef, disabled bool) error {
	if err := c.checkAlive(); err != nil {
		return err
	}
	if disabled && c.session.item == item {
		c.cancelSession(false)
	}
	if err := c.board.SetItemDisabled(item, disabled); err != nil {
		return err
	}
	c.settle(board.NoItem)
	return nil
}

// SetAreaDisabled enables or disables one area. Focus leaves a disabled area
// for the first allowed area, or the selected item when none is left. While
// an item is selected the eligible targets are re-announced.
func (c *Controller) SetAreaDisabled(area board.AreaRef, disabled bool) error {
	if err := c.checkAlive(); err != nil {
		return err
	}
	if err := c.board.SetAreaDisabled(area, disabled); err != nil {
		return err
	}
	selected := c.session.phase == PhaseItemSelected
	if disabled && c.focus == AreaTarget(area) {
		next := NoTarget
		if ref := c.board.FirstAllowed(); selected && ref != board.NoArea {
			next = AreaTarget(ref)
		} else if selected {
			next = ItemTarget(c.session.item)
		}
		c.setFocus(next)
	}
	if selected {
		c.emit(ItemSelectedEvent{Item: c.session.item, Eligible: c.eligibleTargets(c.session.item)})
	}
	return nil
}

// Enable resumes accepting input.
func (c *Controller) Enable() error {
	if err := c.checkAlive(); err != nil {
		return err
	}
	if c.enabled {
		return nil
	}
	c.enabled = true
	c.emit(StateEvent{Enabled: true})
	return nil
}

// Disable cancels the active session and pending feedback and ignores input
// until [Controller.Enable].
func (c *Controller) Disable() error {
	if err := c.checkAlive(); err != nil {
		return err
	}
	if !c.enabled {
		return nil
	}
	c.cancelSession(false)
	c.stopFeedback()
	c.enabled = false
	c.emit(StateEvent{Enabled: false})
	return nil
}

// Destroy cancels everything in flight, emits DestroyEvent and detaches all
// observers. Every later call returns a DESTROYED_STATE error.
func (c *Controller) Destroy() error {
	if c.destroyed {
		return errors.New(errors.ErrCodeDestroyed, "controller already destroyed")
	}
	c.cancelSession(false)
	c.stopFeedback()
	mc, canCancel := c.renderer.(MoveCanceler)
	for _, item := range c.completions.cancelAll() {
		if canCancel {
			mc.CancelMove(item)
		}
	}
	c.emit(DestroyEvent{})
	c.destroyed = true
	c.observers.clear()
	return nil
}

// Reset returns every item home and restores the initial order and
// disabled flags.
func (c *Controller) Reset() error {
	if err := c.checkAlive(); err != nil {
		return err
	}
	c.cancelSession(false)
	c.stopFeedback()
	rep := c.board.ResetAll()
	c.settle(board.NoItem)
	c.focus = NoTarget
	c.emitReset(ResetAll, rep)
	return nil
}

// ResetIncorrect returns every placed item not marked correct.
func (c *Controller) ResetIncorrect() (board.ResetReport, error) {
	if err := c.checkAlive(); err != nil {
		return board.ResetReport{}, err
	}
	c.cancelSession(false)
	c.stopFeedback()
	rep := c.board.ResetIncorrect()
	c.settle(board.NoItem)
	c.emitReset(ResetIncorrect, rep)
	return rep, nil
}

// DisableCorrectItems locks every item marked correct. It requires a board
// without drop areas.
func (c *Controller) DisableCorrectItems() (board.ResetReport, error) {
	if err := c.checkAlive(); err != nil {
		return board.ResetReport{}, err
	}
	if c.board.HasAreas() {
		return c.board.DisableCorrectItems()
	}
	c.cancelSession(false)
	c.stopFeedback()
	rep, err := c.board.DisableCorrectItems()
	if err != nil {
		return rep, err
	}
	if c.focus.IsItem() && !c.board.IsRemaining(c.focus.Item) {
		if next := c.board.FirstRemaining(); next != board.NoItem {
			c.setFocus(ItemTarget(next))
		}
	}
	c.emitReset(ResetDisableCorrect, rep)
	return rep, nil
}

// Restore applies a snapshot taken from a board built with the same
// configuration. An invalid snapshot leaves everything untouched; otherwise
// the active session is cancelled and every item moves to its restored slot.
func (c *Controller) Restore(s board.Snapshot) error {
	if err := c.checkAlive(); err != nil {
		return err
	}
	if err := c.board.Restore(s); err != nil {
		return err
	}
	c.cancelSession(false)
	c.stopFeedback()
	c.settle(board.NoItem)
	c.focus = NoTarget
	c.emitReset(ResetRestore, board.ResetReport{})
	return nil
}

func (c *Controller) emitReset(kind ResetKind, rep board.ResetReport) {
	c.emit(ResetEvent{Kind: kind, Report: rep})
	c.announce(c.text.Reset(c.A11yState(), string(kind), rep))
}

func (c *Controller) checkAlive() error {
	if c.destroyed {
		return errors.New(errors.ErrCodeDestroyed, "controller destroyed")
	}
	return nil
}

// acceptsInput reports whether input for item should start or continue a
// session. Unknown items are an error; disabled controllers and disabled
// items silently ignore input.
func (c *Controller) acceptsInput(item board.ItemRef) (bool, error) {
	if err := c.checkAlive(); err != nil {
		return false, err
	}
	it := c.board.Item(item)
	if it == nil {
		return false, errors.New(errors.ErrCodeUnknownItem, "unknown item %d", item)
	}
	return c.enabled && !it.Disabled(), nil
}

func (c *Controller) beginSession(phase Phase, item board.ItemRef, modality board.Modality) {
	if c.session.phase != PhaseIdle {
		c.cancelSession(true)
	}
	c.stopFeedback()
	c.session = session{
		phase:   phase,
		item:    item,
		started: c.scheduler.Now(),
	}
	observability.Interaction().OnSessionStart(modality.String(), c.board.Item(item).ID())
	c.emit(InteractionStartEvent{Item: item, Modality: modality})
}

func (c *Controller) endSession(result string) {
	s := c.session
	c.session = session{phase: PhaseIdle, item: board.NoItem}
	if s.phase == PhaseIdle {
		return
	}
	observability.Interaction().OnSessionEnd(
		modalityOf(s.phase).String(), c.board.Item(s.item).ID(), result, c.scheduler.Now().Sub(s.started))
}

// cancelSession abandons the active session without touching the board and
// returns its item home.
func (c *Controller) cancelSession(superseded bool) {
	s := c.session
	if s.phase == PhaseIdle {
		return
	}
	result := "cancelled"
	if superseded {
		result = "superseded"
	}
	c.endSession(result)
	if s.phase == PhaseDragging {
		c.moveItem(s.item, c.renderer.HomePosition(s.item), c.animate, nil)
	}
	c.emit(CancelEvent{Item: s.item, Modality: modalityOf(s.phase), Superseded: superseded})
	c.announce(c.text.Cancelled(c.A11yState(), s.item))
}

// Cancel abandons the active drag or selection. Nothing on the board
// changes.
func (c *Controller) Cancel() error {
	if err := c.checkAlive(); err != nil {
		return err
	}
	c.cancelSession(false)
	return nil
}

// drop is the placement path shared by both modalities. target is an area,
// an item on boards without areas, or no target. sameArea marks a pointer
// release whose best target was the item's own area.
func (c *Controller) drop(item board.ItemRef, target Target, modality board.Modality, sameArea bool) InteractionStopEvent {
	ev := InteractionStopEvent{Item: item, Modality: modality, Target: target}
	pc := board.PlaceContext{
		Modality:          modality,
		SuppressAutoShift: modality == board.ModalityPointer,
	}

	switch {
	case target.IsItem() && !c.board.HasAreas():
		so := c.board.Shuffle(item, target.Item)
		ev.Shuffle = &so
		ev.Outcome = board.Outcome{
			Decision: board.DecisionReset, Modality: modality, Item: item,
			Previous: board.NoArea, Result: board.NoArea, Evicted: board.NoItem,
			Reason: so.Reason, SuppressAutoShift: pc.SuppressAutoShift,
		}
		if so.Changed {
			ev.Outcome.Decision = board.DecisionPlace
			ev.Outcome.Reason = board.ReasonNone
			ev.Outcome.Changed = true
		}
	case target.IsArea():
		ev.Outcome = c.board.AttemptPlace(item, target.Area, pc)
	default:
		pc.SameAreaAttempt = sameArea
		ev.Outcome = c.board.AttemptPlace(item, board.NoArea, pc)
	}

	result := "returned"
	if ev.Changed() {
		result = "placed"
	}
	c.endSession(result)

	var then func()
	if modality == board.ModalitySelect && ev.Changed() && !pc.SuppressAutoShift {
		then = c.scheduleFeedback
	}
	c.settleThen(item, then)

	c.emit(ev)
	if ev.Shuffle != nil {
		c.announce(c.text.Shuffle(c.A11yState(), *ev.Shuffle))
	} else {
		c.announce(c.text.Outcome(c.A11yState(), ev.Outcome))
	}
	return ev
}

// settle moves every item that is not at its home slot back home, and always
// moves primary.
func (c *Controller) settle(primary board.ItemRef) { c.settleThen(primary, nil) }

func (c *Controller) settleThen(primary board.ItemRef, then func()) {
	for _, ref := range c.board.Items() {
		home := c.renderer.HomePosition(ref)
		if ref != primary && c.renderer.CurrentPosition(ItemTarget(ref)) == home && !c.completions.isPending(ref) {
			continue
		}
		var done func()
		if ref == primary {
			done = then
		}
		c.moveItem(ref, home, c.animate, done)
	}
}

func (c *Controller) scheduleFeedback() {
	c.stopFeedback()
	c.feedback = c.scheduler.After(c.feedbackDelay, func() {
		c.feedback = nil
		if c.destroyed || !c.enabled {
			return
		}
		next := c.board.FirstRemaining()
		if next == board.NoItem {
			return
		}
		c.setFocus(ItemTarget(next))
	})
}

func (c *Controller) stopFeedback() {
	if c.feedback != nil {
		c.feedback.Stop()
		c.feedback = nil
	}
}

func (c *Controller) emit(e Event) {
	if c.destroyed {
		return
	}
	c.observers.emit(e)
}

func (c *Controller) announce(text string) {
	if text != "" {
		c.emit(AnnounceEvent{Text: text})
	}
}

// eligibleTargets lists where the selected item may be dropped: the allowed
// areas, or the other enabled items on boards without areas.
func (c *Controller) eligibleTargets(item board.ItemRef) []Target {
	var targets []Target
	if c.board.HasAreas() {
		for _, ref := range c.board.Allowed() {
			targets = append(targets, AreaTarget(ref))
		}
		return targets
	}
	for _, ref := range c.board.Items() {
		if ref != item && !c.board.Item(ref).Disabled() {
			targets = append(targets, ItemTarget(ref))
		}
	}
	return targets
}

func modalityOf(p Phase) board.Modality {
	if p == PhaseDragging {
		return board.ModalityPointer
	}
	return board.ModalitySelect
}
