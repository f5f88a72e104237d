package graph

// Kahn is the default ordering graph. Sort runs Kahn's algorithm with a
// FIFO worklist: zero in-degree nodes are seeded in registration order and
// successors are released in edge registration order, so the output is
// fully determined by the sequence of AddNode/AddEdge calls.
//
// The zero value is not usable - use NewKahn.
type Kahn[T Node] struct {
	adjacency[T]
}

// NewKahn creates an empty Kahn graph.
func NewKahn[T Node]() *Kahn[T] {
	return &Kahn[T]{adjacency: newAdjacency[T]()}
}

// Sort returns the nodes in topological order in O(V+E).
// It returns a *CycleError if some nodes can never reach zero in-degree.
func (g *Kahn[T]) Sort() ([]T, error) {
	n := len(g.nodes)
	indeg := make([]int, n)
	for _, succ := range g.succ {
		for _, j := range succ {
			indeg[j]++
		}
	}

	queue := make([]int, 0, n)
	for i, d := range indeg {
		if d == 0 {
			queue = append(queue, i)
		}
	}

	emitted := make([]bool, n)
	order := make([]T, 0, n)
	for head := 0; head < len(queue); head++ {
		i := queue[head]
		emitted[i] = true
		order = append(order, g.nodes[i])
		for _, j := range g.succ[i] {
			indeg[j]--
			if indeg[j] == 0 {
				queue = append(queue, j)
			}
		}
	}

	if len(order) < n {
		return nil, g.cycleError(emitted)
	}
	return order, nil
}

var _ Graph[Node] = (*Kahn[Node])(nil)
