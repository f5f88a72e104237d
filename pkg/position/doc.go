// Package position resolves a total order over uniquely identified elements
// from relative constraints such as "auth comes before router".
//
// # Overview
//
// Independent contributors each know a few relations ("my plugin runs after
// logging") but nobody knows the final sequence. A [Builder] collects
// elements and their constraints, then [Builder.Sort] turns them into one
// deterministic order using a pluggable graph strategy from the
// [graph] package.
//
// # Basic Usage
//
// Register an element with [Builder.Element], which makes it the focus,
// then attach constraints to the focus with [Builder.Before] and
// [Builder.After]:
//
//	b := position.New[step]()
//	b.Element(step("a"))
//	b.Element(step("b"))
//	_ = b.After("a")
//	b.Element(step("c"))
//	_ = b.Before("a")
//	order, err := b.Sort() // [c a b]
//
// [Builder.Place] returns a [Placement] bound to one element, which avoids
// the shared focus entirely:
//
//	b.Place(step("b")).After("a").Before("c")
//
// # Forward References
//
// Constraints are stored as [Constraint] records and resolved only when
// Sort (or [Builder.Edges]) runs. A constraint may therefore name an
// element that is registered later. A reference that is still unknown at
// sort time fails with [*UnknownElementError].
//
// # Determinism
//
// Elements become graph nodes in registration order; constraint edges are
// added owner by owner, in the order owners received their first
// constraint, and per owner in declaration order. With the default
// [graph.Kahn] strategy, ties are broken by registration order, so the
// same sequence of calls always yields the same output.
//
// # Errors
//
//   - [ErrFocusUndefined]: Before or After called before any Element.
//   - [*UnknownElementError]: a constraint or Lookup names an unknown ID.
//   - [*graph.CycleError]: constraints cannot be satisfied; returned by Sort
//     unchanged from the graph.
//
// All three carry a code from the errors package (FOCUS_UNDEFINED,
// UNKNOWN_ELEMENT, CYCLE_DETECTED).
//
// # Concurrency
//
// A Builder is not safe for concurrent use. It is meant to be filled by one
// caller and then sorted; wrap it with your own lock if several goroutines
// must contribute.
//
// [graph]: github.com/matzehuels/stackorder/pkg/graph
package position
