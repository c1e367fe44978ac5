// Package inspect draws the internal structure of a board as a Graphviz
// graph, for debugging navigation and ownership.
//
// # Graph Structure
//
// [ToDOT] emits one node per drag item (boxes) and per drop area (folders)
// and three kinds of edges:
//
//   - remaining chain: item to its next remaining sibling (blue, dashed)
//   - allowed chain: area to its next allowed sibling (green, dashed)
//   - ownership: area to each inner item, labelled with its slot (solid)
//
// Chain edges follow the live links, not the membership order, so a
// corrupted chain shows up as a broken or doubled cycle. Disabled targets are
// drawn grey; items marked correct get a green outline.
//
// # Rendering
//
// [RenderSVG] renders a DOT string in-process with
// [github.com/goccy/go-graphviz]; no Graphviz installation is needed.
//
//	dot := inspect.ToDOT(b, inspect.Options{Detailed: true})
//	svg, err := inspect.RenderSVG(dot)
package inspect
