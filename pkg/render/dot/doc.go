// Package dot exports a constraint graph as Graphviz DOT and SVG.
//
// # Overview
//
// [Build] reads the elements and resolved precedence edges of a builder and
// annotates every node with its rank in the resolved order. When the
// constraints contain a cycle the graph is still exported: ranks are left
// empty and the nodes and edges taking part in the cycle are highlighted,
// which is usually the fastest way to see why a set of manifests does not
// sort.
//
// # Usage
//
//	g, err := dot.Build(builder)
//	if err != nil {
//	    return err // unknown reference
//	}
//	src := dot.ToDOT(g, dot.Options{Detailed: true})
//	svg, err := dot.RenderSVG(ctx, src)
//
// # Dependencies
//
// SVG rendering uses [github.com/goccy/go-graphviz], which embeds Graphviz
// as WebAssembly, so no system installation is required.
package dot
