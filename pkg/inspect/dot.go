package inspect

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/dragdrop/pkg/board"
)

// Options configures graph output.
type Options struct {
	// Detailed adds order index, groups, accept list and capacity to node
	// labels. When false, only the label is shown.
	Detailed bool

	// HideChains omits the chain edges and draws ownership only.
	HideChains bool
}

// ToDOT converts a board to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
func ToDOT(b *board.Board, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph board {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, ref := range b.Areas() {
		a := b.Area(ref)
		fmt.Fprintf(&buf, "  %q [%s];\n", a.ID(), strings.Join(areaAttrs(b, a, opts.Detailed), ", "))
	}
	for _, ref := range b.Items() {
		it := b.Item(ref)
		fmt.Fprintf(&buf, "  %q [%s];\n", it.ID(), strings.Join(itemAttrs(b, it, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	for _, ref := range b.Areas() {
		a := b.Area(ref)
		for slot, inner := range a.InnerItems() {
			fmt.Fprintf(&buf, "  %q -> %q [label=\"%d\"];\n", a.ID(), b.Item(inner).ID(), slot)
		}
	}

	if !opts.HideChains {
		for _, ref := range b.Remaining() {
			next := b.NextRemaining(ref)
			fmt.Fprintf(&buf, "  %q -> %q [color=steelblue, style=dashed, constraint=false];\n", b.Item(ref).ID(), b.Item(next).ID())
		}
		for _, ref := range b.Allowed() {
			next := b.NextAllowed(ref)
			fmt.Fprintf(&buf, "  %q -> %q [color=darkgreen, style=dashed, constraint=false];\n", b.Area(ref).ID(), b.Area(next).ID())
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func itemAttrs(b *board.Board, it *board.DragItem, detailed bool) []string {
	label := it.Label()
	if detailed {
		parts := []string{label, fmt.Sprintf("order: %d", it.OrderIndex())}
		if g := it.Groups(); len(g) > 0 {
			parts = append(parts, "groups: "+strings.Join(g, ", "))
		}
		label = strings.Join(parts, "\n")
	}

	attrs := []string{fmt.Sprintf("label=%q", label)}
	if it.Disabled() {
		attrs = append(attrs, "fillcolor=lightgrey", "fontcolor=grey40")
	}
	if it.Correct() {
		attrs = append(attrs, "color=forestgreen", "penwidth=2")
	}
	if b.FirstRemaining() == it.Ref() {
		attrs = append(attrs, "peripheries=2")
	}
	return attrs
}

func areaAttrs(b *board.Board, a *board.DropArea, detailed bool) []string {
	label := a.Label()
	if detailed {
		capacity := "unbounded"
		if n := a.MaxCapacity(); n > 0 {
			capacity = fmt.Sprintf("%d of %d", a.Len(), n)
		}
		parts := []string{label, "items: " + capacity}
		if acc := a.Accept(); len(acc) > 0 {
			parts = append(parts, "accepts: "+strings.Join(acc, ", "))
		}
		label = strings.Join(parts, "\n")
	}

	attrs := []string{"shape=folder", fmt.Sprintf("label=%q", label)}
	if a.Disabled() {
		attrs = append(attrs, "style=\"filled,dashed\"", "fillcolor=lightgrey", "fontcolor=grey40")
	}
	if b.FirstAllowed() == a.Ref() {
		attrs = append(attrs, "peripheries=2")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the pt-sized svg header with a unitless one so
// the image scales in a browser.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
