// Package pkg provides the core libraries for dragdrop, an accessible
// drag-and-drop engine.
//
// # Overview
//
// A board is a set of drag items and, optionally, drop areas. Items are
// moved with a pointer (press, move, release) or selected and dropped from
// the keyboard; either way the same placement rules decide the outcome and
// the same announcement text describes it. Boards without areas reorder
// their items instead, by shifting or swapping.
//
// The pkg directory is organized into three areas:
//
//  1. Model - [config], [board], [chain]: configuration, the item and area
//     arenas, placement and reset rules, and the circular focus chains.
//  2. Interaction - [interaction], [a11y], [layout]: the session state
//     machine, injected renderer and scheduler, announcement text, and a
//     cell-grid renderer for terminal hosts.
//  3. Support - [store], [inspect], [errors], [observability], [geom],
//     [buildinfo]: saved sessions, Graphviz rendering of board state, coded
//     errors, hooks, rectangle math and version metadata.
//
// # Architecture
//
// The flow of one interaction:
//
//	board file (TOML / YAML / JSON)
//	         ↓
//	    [config] package (decode, default, validate)
//	         ↓
//	    [board] package (arenas, membership sets, placement decisions)
//	         ↓
//	    [interaction] package (pointer / select sessions, focus, timers)
//	         ↓
//	    Renderer + Observer (host UI, [a11y] announcements)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/dragdrop/pkg/config"
//	    "github.com/matzehuels/dragdrop/pkg/interaction"
//	)
//
//	cfg, _ := config.Load("fruit.toml")
//	ctrl, _ := interaction.New(cfg,
//	    interaction.WithObserver(interaction.ObserverFunc(func(e interaction.Event) {
//	        if a, ok := e.(interaction.AnnounceEvent); ok {
//	            fmt.Println(a.Text)
//	        }
//	    })),
//	)
//	apple, _ := ctrl.Board().ItemByID("apple")
//	basket, _ := ctrl.Board().AreaByID("basket")
//	ctrl.Select(apple)
//	ctrl.DropSelected(interaction.AreaTarget(basket))
//
// # Concurrency
//
// A controller and its board are single-threaded. Hosts drive them from one
// goroutine and implement [interaction.Scheduler] by posting callbacks back
// to that goroutine. Stores are safe for concurrent use.
package pkg
