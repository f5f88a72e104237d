package graph

import "slices"

// adjacency is the insertion-ordered storage shared by the sort strategies.
// Nodes are addressed by their registration index; successor and
// predecessor lists keep edge registration order.
type adjacency[T Node] struct {
	nodes []T
	index map[string]int
	succ  [][]int
	pred  [][]int
	edges []Edge[T]
}

func newAdjacency[T Node]() adjacency[T] {
	return adjacency[T]{index: make(map[string]int)}
}

// add registers n if unseen and returns its index.
func (a *adjacency[T]) add(n T) int {
	if i, ok := a.index[n.ElementID()]; ok {
		return i
	}
	i := len(a.nodes)
	a.index[n.ElementID()] = i
	a.nodes = append(a.nodes, n)
	a.succ = append(a.succ, nil)
	a.pred = append(a.pred, nil)
	return i
}

// AddNode registers n. Adding a node whose ID is already present is a
// no-op and keeps the first registration.
func (a *adjacency[T]) AddNode(n T) { a.add(n) }

// AddEdge registers the precedence from → to. Endpoints not yet known are
// registered first, from before to. Parallel edges are kept.
func (a *adjacency[T]) AddEdge(from, to T) {
	f, t := a.add(from), a.add(to)
	a.succ[f] = append(a.succ[f], t)
	a.pred[t] = append(a.pred[t], f)
	a.edges = append(a.edges, Edge[T]{From: a.nodes[f], To: a.nodes[t]})
}

// Nodes returns the registered nodes in registration order.
func (a *adjacency[T]) Nodes() []T { return slices.Clone(a.nodes) }

// Edges returns the registered edges in registration order.
func (a *adjacency[T]) Edges() []Edge[T] { return slices.Clone(a.edges) }

// NodeCount returns the number of registered nodes.
func (a *adjacency[T]) NodeCount() int { return len(a.nodes) }

// EdgeCount returns the number of registered edges, parallel edges included.
func (a *adjacency[T]) EdgeCount() int { return len(a.edges) }

// cycleError builds a *CycleError for the nodes not marked as emitted.
// Every such node still has a pending predecessor among the others, so
// walking predecessors from the first one must close a loop.
func (a *adjacency[T]) cycleError(emitted []bool) *CycleError {
	remaining := remainingIndexes(emitted)

	var path []int
	pos := make(map[int]int)
	for cur := remaining[0]; ; {
		if j, seen := pos[cur]; seen {
			return a.newCycleError(remaining, cycleFromWalk(path, j))
		}
		pos[cur] = len(path)
		path = append(path, cur)
		next := -1
		for _, p := range a.pred[cur] {
			if !emitted[p] {
				next = p
				break
			}
		}
		if next < 0 {
			// Unreachable for a consistent emitted set; report without a path.
			return a.newCycleError(remaining, nil)
		}
		cur = next
	}
}

func (a *adjacency[T]) newCycleError(remaining, cycle []int) *CycleError {
	e := &CycleError{Remaining: make([]string, len(remaining))}
	for i, n := range remaining {
		e.Remaining[i] = a.nodes[n].ElementID()
	}
	for _, n := range cycle {
		e.Cycle = append(e.Cycle, a.nodes[n].ElementID())
	}
	return e
}

func remainingIndexes(emitted []bool) []int {
	var out []int
	for i, done := range emitted {
		if !done {
			out = append(out, i)
		}
	}
	return out
}

// cycleFromWalk converts a predecessor walk that revisited path[j] into a
// cycle in edge direction, closed by repeating its first node.
func cycleFromWalk(path []int, j int) []int {
	cycle := []int{path[j]}
	for k := len(path) - 1; k > j; k-- {
		cycle = append(cycle, path[k])
	}
	return append(cycle, path[j])
}
