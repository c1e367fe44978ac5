// Package board implements the placement engine: the arena of drag items and
// drop areas, their ownership relation and the rules that decide every drop.
//
// # Overview
//
// A [Board] is created from a validated [config.Config]. Items and areas live
// in two arenas and are addressed by [ItemRef] and [AreaRef], small integer
// handles that stay valid for the lifetime of the board. Ownership is stored
// on both sides: an item knows the area it was dropped on and an area keeps
// its inner items in drop order. Both sides change together inside a single
// board operation, never separately.
//
// # Membership
//
// The board maintains two live sets, each threaded by a circular sibling
// chain (see package chain) for linear navigation:
//
//   - remaining items: enabled items not owned by any area, in order index
//   - allowed areas: areas that are not disabled and, when
//     ForbidFocusOnFilledAreas is set, not full
//
// Every mutation updates the affected records and then the sets, so observers
// never see an item owned by an area while still listed as remaining.
//
// # Placement
//
// [Board.AttemptPlace] is the single entry point shared by pointer and
// keyboard interaction. It returns an [Outcome] describing the decision:
//
//   - [DecisionPlace]: the item moved into the area
//   - [DecisionReplace]: the area had capacity 1, replacement is enabled and
//     the previous occupant was evicted back to the remaining items
//   - [DecisionReset]: the drop was rejected and nothing changed
//   - [DecisionSameArea]: the item was dropped where it already was
//
// Boards without drop areas reorder items instead; see [Board.Shuffle].
//
// # Debug Assertions
//
// Building with the dragdebug tag runs [Board.Check] after every mutation
// and panics on the first violated invariant.
//
// # Concurrency
//
// Board is not safe for concurrent use. All mutations are expected to come
// from one event loop, the interaction controller's.
package board
