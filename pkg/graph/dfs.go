package graph

// DFS is an alternative ordering graph using depth-first search.
// Nodes are visited in registration order; before a node is emitted, its
// predecessors are visited in edge registration order. Without edges the
// output is registration order, as with Kahn, but the two strategies can
// break ties differently once edges are present.
//
// Cycles are found with white/gray/black coloring: reaching a gray node
// means the current path closed a loop.
//
// The zero value is not usable - use NewDFS.
type DFS[T Node] struct {
	adjacency[T]
}

// NewDFS creates an empty DFS graph.
func NewDFS[T Node]() *DFS[T] {
	return &DFS[T]{adjacency: newAdjacency[T]()}
}

// Sort returns the nodes in topological order in O(V+E).
// It returns a *CycleError on the first cycle encountered.
func (g *DFS[T]) Sort() ([]T, error) {
	const (
		white = iota
		gray
		black
	)

	n := len(g.nodes)
	color := make([]int, n)
	order := make([]T, 0, n)
	var stack []int
	var cycle []int

	var visit func(i int) bool
	visit = func(i int) bool {
		color[i] = gray
		stack = append(stack, i)
		for _, p := range g.pred[i] {
			switch color[p] {
			case white:
				if !visit(p) {
					return false
				}
			case gray:
				for j, s := range stack {
					if s == p {
						cycle = cycleFromWalk(stack, j)
						break
					}
				}
				return false
			}
		}
		stack = stack[:len(stack)-1]
		color[i] = black
		order = append(order, g.nodes[i])
		return true
	}

	for i := range g.nodes {
		if color[i] == white && !visit(i) {
			emitted := make([]bool, n)
			for j, c := range color {
				emitted[j] = c == black
			}
			return nil, g.newCycleError(remainingIndexes(emitted), cycle)
		}
	}
	return order, nil
}

var _ Graph[Node] = (*DFS[Node])(nil)
