package position

import (
	"github.com/matzehuels/stackorder/pkg/graph"
)

// Entity is an element that can be positioned. Only its ID is inspected;
// the value itself is passed through to the sorted output.
type Entity = graph.Node

// Option configures a Builder.
type Option[T Entity] func(*Builder[T])

// WithGraphFactory sets the graph used by Sort. A nil factory is ignored.
// The default is graph.NewKahn.
func WithGraphFactory[T Entity](f graph.Factory[T]) Option[T] {
	return func(b *Builder[T]) {
		if f != nil {
			b.factory = f
		}
	}
}

// Builder accumulates elements and relative constraints and resolves them
// into a total order. See the package documentation for the call pattern.
//
// The zero value is not usable - use New.
// Builder is not safe for concurrent use without external synchronization.
type Builder[T Entity] struct {
	factory graph.Factory[T]

	elements map[string]T
	ids      []string // registration order

	constraints map[string][]Constraint
	owners      []string // order in which owners received their first constraint

	focus   string
	focused bool
}

// New creates an empty Builder.
func New[T Entity](opts ...Option[T]) *Builder[T] {
	b := &Builder[T]{
		factory:     func() graph.Graph[T] { return graph.NewKahn[T]() },
		elements:    make(map[string]T),
		constraints: make(map[string][]Constraint),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Element registers e unless an element with the same ID already exists,
// and makes e's ID the focus for subsequent Before/After calls.
// Re-registering keeps the first value and its constraints.
func (b *Builder[T]) Element(e T) *Builder[T] {
	id := e.ElementID()
	if _, ok := b.elements[id]; !ok {
		b.elements[id] = e
		b.ids = append(b.ids, id)
	}
	b.focus, b.focused = id, true
	return b
}

// Before records that the focus element must precede refID.
// It returns ErrFocusUndefined if Element has not been called yet.
func (b *Builder[T]) Before(refID string) error {
	return b.position(RelationBefore, refID)
}

// After records that the focus element must follow refID.
// It returns ErrFocusUndefined if Element has not been called yet.
func (b *Builder[T]) After(refID string) error {
	return b.position(RelationAfter, refID)
}

func (b *Builder[T]) position(rel Relation, refID string) error {
	if !b.focused {
		return ErrFocusUndefined
	}
	b.attach(Constraint{Relation: rel, Owner: b.focus, Ref: refID})
	return nil
}

func (b *Builder[T]) attach(c Constraint) {
	if _, ok := b.constraints[c.Owner]; !ok {
		b.owners = append(b.owners, c.Owner)
	}
	b.constraints[c.Owner] = append(b.constraints[c.Owner], c)
}

// Place registers e like Element and returns a Placement bound to it.
func (b *Builder[T]) Place(e T) *Placement[T] {
	b.Element(e)
	return &Placement[T]{b: b, id: e.ElementID()}
}

// Focus returns the current focus ID, if any.
func (b *Builder[T]) Focus() (string, bool) { return b.focus, b.focused }

// Lookup returns the registered element with the given ID, or an
// *UnknownElementError.
func (b *Builder[T]) Lookup(id string) (T, error) {
	e, ok := b.elements[id]
	if !ok {
		var zero T
		return zero, &UnknownElementError{ID: id}
	}
	return e, nil
}

// Len returns the number of registered elements.
func (b *Builder[T]) Len() int { return len(b.ids) }

// Elements returns the registered elements in registration order.
func (b *Builder[T]) Elements() []T {
	out := make([]T, len(b.ids))
	for i, id := range b.ids {
		out[i] = b.elements[id]
	}
	return out
}

// Constraints returns every recorded constraint without resolving it,
// grouped by owner in the order Sort evaluates them.
func (b *Builder[T]) Constraints() []Constraint {
	var out []Constraint
	for _, owner := range b.owners {
		out = append(out, b.constraints[owner]...)
	}
	return out
}

// Edges resolves every constraint into precedence edges, in the order Sort
// adds them to the graph. It fails with *UnknownElementError on the first
// dangling reference.
func (b *Builder[T]) Edges() ([]graph.Edge[T], error) {
	var edges []graph.Edge[T]
	for _, ownerID := range b.owners {
		owner, err := b.Lookup(ownerID)
		if err != nil {
			return nil, err
		}
		for _, c := range b.constraints[ownerID] {
			r, err := Resolve(c, b.Lookup)
			if err != nil {
				return nil, err
			}
			edges = append(edges, r.Edges(owner)...)
		}
	}
	return edges, nil
}

// Sort builds a fresh graph from the registered elements and resolved
// constraints and returns the graph's order. Errors from constraint
// resolution and from the graph (such as *graph.CycleError) are returned
// unchanged; no partial order is ever returned.
func (b *Builder[T]) Sort() ([]T, error) {
	g := b.factory()
	for _, id := range b.ids {
		g.AddNode(b.elements[id])
	}
	edges, err := b.Edges()
	if err != nil {
		return nil, err
	}
	for _, e := range edges {
		g.AddEdge(e.From, e.To)
	}
	return g.Sort()
}

// Placement attaches constraints to one element without going through the
// builder's focus. Its methods cannot fail because the owner is known.
type Placement[T Entity] struct {
	b  *Builder[T]
	id string
}

// ID returns the ID of the placed element.
func (p *Placement[T]) ID() string { return p.id }

// Before records that the placed element must precede refID.
func (p *Placement[T]) Before(refID string) *Placement[T] {
	p.b.attach(Constraint{Relation: RelationBefore, Owner: p.id, Ref: refID})
	return p
}

// After records that the placed element must follow refID.
func (p *Placement[T]) After(refID string) *Placement[T] {
	p.b.attach(Constraint{Relation: RelationAfter, Owner: p.id, Ref: refID})
	return p
}
