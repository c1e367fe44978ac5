// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about placements, interaction sessions and snapshot
// storage.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the engine free of logging and metrics frameworks
//   - Allows different backends (structured logs, counters, traces)
//
// Hooks are not the host notification channel. Hosts react to lifecycle events
// through the interaction controller's observers; hooks are for operators.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetBoardHooks(&myBoardHooks{})
//	    observability.SetInteractionHooks(&myInteractionHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Board().OnPlacement("place", item, area, true)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Board Hooks
// =============================================================================

// BoardHooks receives events from the placement engine.
type BoardHooks interface {
	// OnPlacement records a placement decision. kind is "place", "replace" or
	// "same-area"; changed reports whether ownership changed.
	OnPlacement(kind, item, area string, changed bool)

	// OnReject records a rejected placement and its reason.
	OnReject(item, area, reason string)

	// OnShuffle records a reorder among drag items ("swap" or "shift").
	OnShuffle(mode, item, target string)

	// OnReset records a bulk operation and how many items it touched.
	OnReset(kind string, affected int)
}

// =============================================================================
// Interaction Hooks
// =============================================================================

// InteractionHooks receives events from the interaction controller.
type InteractionHooks interface {
	// OnSessionStart records the start of a drag or selection.
	OnSessionStart(modality, item string)

	// OnSessionEnd records how a session ended ("placed", "returned",
	// "cancelled", "superseded") and how long it lasted.
	OnSessionEnd(modality, item, result string, duration time.Duration)

	// OnCompletionCancelled records a stale movement completion that was
	// dropped because a newer movement of the same item started.
	OnCompletionCancelled(item string)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from snapshot stores.
type StoreHooks interface {
	// OnSave records a snapshot write.
	OnSave(ctx context.Context, backend, name string, duration time.Duration, err error)

	// OnLoad records a snapshot read; found is false for missing snapshots.
	OnLoad(ctx context.Context, backend, name string, found bool, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopBoardHooks is a no-op implementation of BoardHooks.
type NoopBoardHooks struct{}

func (NoopBoardHooks) OnPlacement(string, string, string, bool) {}
func (NoopBoardHooks) OnReject(string, string, string)          {}
func (NoopBoardHooks) OnShuffle(string, string, string)         {}
func (NoopBoardHooks) OnReset(string, int)                      {}

// NoopInteractionHooks is a no-op implementation of InteractionHooks.
type NoopInteractionHooks struct{}

func (NoopInteractionHooks) OnSessionStart(string, string)                       {}
func (NoopInteractionHooks) OnSessionEnd(string, string, string, time.Duration) {}
func (NoopInteractionHooks) OnCompletionCancelled(string)                        {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnSave(context.Context, string, string, time.Duration, error) {}
func (NoopStoreHooks) OnLoad(context.Context, string, string, bool, time.Duration, error) {
}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	boardHooks       BoardHooks       = NoopBoardHooks{}
	interactionHooks InteractionHooks = NoopInteractionHooks{}
	storeHooks       StoreHooks       = NoopStoreHooks{}
	hooksMu          sync.RWMutex
)

// SetBoardHooks registers custom board hooks.
// This should be called once at application startup before any board is created.
func SetBoardHooks(h BoardHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		boardHooks = h
	}
}

// SetInteractionHooks registers custom interaction hooks.
// This should be called once at application startup before any controller is created.
func SetInteractionHooks(h InteractionHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		interactionHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
// This should be called once at application startup before any store operations.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// Board returns the registered board hooks.
func Board() BoardHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return boardHooks
}

// Interaction returns the registered interaction hooks.
func Interaction() InteractionHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return interactionHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	boardHooks = NoopBoardHooks{}
	interactionHooks = NoopInteractionHooks{}
	storeHooks = NoopStoreHooks{}
}
