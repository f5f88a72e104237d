package graph

import (
	errs "github.com/matzehuels/stackorder/pkg/errors"
)

// Node is anything that can be placed in an ordering graph.
// ElementID must be stable and unique among the nodes of one graph.
type Node interface {
	ElementID() string
}

// Edge is a directed precedence relation: From is sequenced before To.
type Edge[T Node] struct {
	From T
	To   T
}

// Graph is the capability contract used by position.Builder.
// Implementations decide the sort algorithm and tie-break policy.
type Graph[T Node] interface {
	// AddNode registers n. Adding a node with a known ID is a no-op.
	AddNode(n T)

	// AddEdge registers the precedence from → to.
	AddEdge(from, to T)

	// Sort returns every node in an order consistent with all edges, or
	// an error (typically a *CycleError) when no such order exists.
	Sort() ([]T, error)
}

// Factory creates an empty graph. A fresh graph is requested for every sort.
type Factory[T Node] func() Graph[T]

// Strategy names accepted by FactoryFor.
const (
	StrategyKahn = "kahn"
	StrategyDFS  = "dfs"
)

// Strategies returns the supported strategy names, default first.
func Strategies() []string {
	return []string{StrategyKahn, StrategyDFS}
}

// FactoryFor returns the factory for the named strategy.
// An empty name selects Kahn's algorithm.
func FactoryFor[T Node](strategy string) (Factory[T], error) {
	switch strategy {
	case "", StrategyKahn:
		return func() Graph[T] { return NewKahn[T]() }, nil
	case StrategyDFS:
		return func() Graph[T] { return NewDFS[T]() }, nil
	default:
		return nil, errs.ValidateOneOf(errs.ErrCodeInvalidStrategy, "strategy", strategy, Strategies()...)
	}
}

// IDs extracts the ID from each node, preserving order.
func IDs[T Node](nodes []T) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ElementID()
	}
	return ids
}
