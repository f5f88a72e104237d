package position

import (
	"fmt"

	"github.com/matzehuels/stackorder/pkg/graph"
)

// Relation is the kind of a positioning constraint.
type Relation int

const (
	// RelationBefore places the owner ahead of the reference.
	RelationBefore Relation = iota
	// RelationAfter places the owner behind the reference.
	RelationAfter
)

// String returns "before" or "after".
func (r Relation) String() string {
	switch r {
	case RelationBefore:
		return "before"
	case RelationAfter:
		return "after"
	default:
		return fmt.Sprintf("Relation(%d)", int(r))
	}
}

// Constraint is an unresolved positioning rule owned by one element.
// Only IDs are stored; the reference is looked up when the constraint is
// resolved, which is what allows forward references.
type Constraint struct {
	Relation Relation
	Owner    string
	Ref      string
}

// String returns a readable form such as "b after a".
func (c Constraint) String() string {
	return fmt.Sprintf("%s %s %s", c.Owner, c.Relation, c.Ref)
}

// Resolver turns a resolved constraint into precedence edges for its owner.
type Resolver[T Entity] interface {
	Edges(owner T) []graph.Edge[T]
}

// Before resolves to owner → Ref.
type Before[T Entity] struct{ Ref T }

// Edges returns the single edge (owner, Ref).
func (b Before[T]) Edges(owner T) []graph.Edge[T] {
	return []graph.Edge[T]{{From: owner, To: b.Ref}}
}

// After resolves to Ref → owner.
type After[T Entity] struct{ Ref T }

// Edges returns the single edge (Ref, owner).
func (a After[T]) Edges(owner T) []graph.Edge[T] {
	return []graph.Edge[T]{{From: a.Ref, To: owner}}
}

// Resolve looks up the constraint's reference and returns the matching
// resolver. Lookup failures are returned unchanged.
func Resolve[T Entity](c Constraint, lookup func(id string) (T, error)) (Resolver[T], error) {
	ref, err := lookup(c.Ref)
	if err != nil {
		return nil, err
	}
	switch c.Relation {
	case RelationBefore:
		return Before[T]{Ref: ref}, nil
	case RelationAfter:
		return After[T]{Ref: ref}, nil
	default:
		return nil, fmt.Errorf("resolve %s: unsupported relation", c)
	}
}
