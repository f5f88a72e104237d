package dot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/stackorder/pkg/graph"
	"github.com/matzehuels/stackorder/pkg/manifest"
	"github.com/matzehuels/stackorder/pkg/position"
)

// Options configures DOT generation.
type Options struct {
	// Detailed adds the rank and metadata to node labels.
	// When false, only the display label is shown.
	Detailed bool
}

// Node is an element of the exported graph.
type Node struct {
	ID    string
	Label string
	Meta  map[string]any

	// Rank is the 1-based position in the resolved order, or 0 when the
	// graph has a cycle.
	Rank int

	// Cyclic marks nodes that could not be ordered.
	Cyclic bool
}

// Edge is a precedence edge: From must come before To.
type Edge struct {
	From, To string

	// Cycle marks edges on the reported cycle.
	Cycle bool
}

// Graph is a constraint graph ready for export.
type Graph struct {
	Nodes []Node
	Edges []Edge

	// Cycle is the reported cycle path, empty when the graph sorts.
	Cycle []string
}

// Build snapshots b as an exportable graph.
//
// Nodes appear in registration order and edges in resolution order. A cycle
// is not an error here; it is recorded on the graph. Dangling references are
// returned as *position.UnknownElementError.
func Build(b *position.Builder[manifest.Entry]) (*Graph, error) {
	edges, err := b.Edges()
	if err != nil {
		return nil, err
	}

	g := &Graph{}
	rank := make(map[string]int)
	cyclic := make(map[string]bool)

	order, err := b.Sort()
	var cycleErr *graph.CycleError
	switch {
	case err == nil:
		for i, e := range order {
			rank[e.ID] = i + 1
		}
	case errors.As(err, &cycleErr):
		g.Cycle = cycleErr.Cycle
		for _, id := range cycleErr.Remaining {
			cyclic[id] = true
		}
	default:
		return nil, err
	}

	for _, e := range b.Elements() {
		g.Nodes = append(g.Nodes, Node{
			ID:     e.ID,
			Label:  e.DisplayLabel(),
			Meta:   e.Meta,
			Rank:   rank[e.ID],
			Cyclic: cyclic[e.ID],
		})
	}

	onCycle := cycleEdges(g.Cycle)
	for _, e := range edges {
		g.Edges = append(g.Edges, Edge{
			From:  e.From.ID,
			To:    e.To.ID,
			Cycle: onCycle[[2]string{e.From.ID, e.To.ID}],
		})
	}
	return g, nil
}

func cycleEdges(path []string) map[[2]string]bool {
	m := make(map[[2]string]bool, len(path))
	for i := 0; i+1 < len(path); i++ {
		m[[2]string{path[i], path[i+1]}] = true
	}
	return m
}

// ToDOT converts g to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
//
// Cyclic nodes are filled red and cycle edges drawn in bold red.
func ToDOT(g *Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, opts.Detailed))}
		if n.Cyclic {
			attrs = append(attrs, "fillcolor=\"#fca5a5\"", "color=\"#b91c1c\"")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		if e.Cycle {
			fmt.Fprintf(&buf, "  %q -> %q [color=\"#b91c1c\", penwidth=2];\n", e.From, e.To)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n Node, detailed bool) string {
	label := n.Label
	if label == "" {
		label = n.ID
	}
	if !detailed {
		return label
	}

	var parts []string
	if label != n.ID {
		parts = append(parts, "id: "+n.ID)
	}
	if n.Rank > 0 {
		parts = append(parts, fmt.Sprintf("rank: %d", n.Rank))
	}
	for _, k := range slices.Sorted(maps.Keys(n.Meta)) {
		parts = append(parts, fmt.Sprintf("%s: %v", k, n.Meta[k]))
	}
	if len(parts) == 0 {
		return label
	}
	return label + "\n" + strings.Join(parts, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
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

// normalizeViewBox replaces Graphviz's point-based svg header with a plain
// viewBox so the output scales in browsers.
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

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
