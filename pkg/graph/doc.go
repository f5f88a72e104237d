// Package graph provides the ordering graph behind stackorder: an
// insertion-ordered directed graph whose only job is to turn "comes before"
// edges into a deterministic linear order.
//
// # Overview
//
// Nodes are any values implementing [Node]; identity is the string returned
// by ElementID. Edges are directed precedence relations: an edge (A, B)
// means A must be emitted before B. The package deliberately stays small.
// It is not a general graph library and exposes exactly what ordering
// needs: add nodes, add edges, sort.
//
// # Strategies
//
// [Graph] is the capability contract and [Factory] the substitution point.
// Two implementations are provided:
//
//   - [Kahn]: Kahn's algorithm with a FIFO worklist. Zero in-degree nodes are
//     seeded in registration order and successors are released in edge
//     registration order. This is the default.
//   - [DFS]: depth-first, dependency-first traversal. Each node is emitted
//     after all of its predecessors, roots are visited in registration order.
//
// Both are deterministic: identical registrations and edges always produce
// identical output. Use [FactoryFor] to select one by name.
//
// # Basic Usage
//
//	g := graph.NewKahn[step]()
//	g.AddNode(step("fetch"))
//	g.AddNode(step("build"))
//	g.AddEdge(step("fetch"), step("build"))
//	order, err := g.Sort()
//
// Adding a node twice is a no-op. Edges whose endpoints were never added as
// nodes auto-register them in the order they are first seen.
//
// # Cycles
//
// When edges cannot be satisfied by a total order, Sort returns a
// [*CycleError]. It matches [ErrCycleDetected] with errors.Is, lists the
// nodes that could not be emitted, and carries one concrete cycle path.
//
// # Concurrency
//
// Graph instances are not safe for concurrent use. They are meant to be
// built and sorted by a single goroutine, typically inside one call to
// position.Builder.Sort.
package graph
