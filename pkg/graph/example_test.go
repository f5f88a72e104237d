package graph_test

import (
	"errors"
	"fmt"

	"github.com/matzehuels/stackorder/pkg/graph"
)

type step string

func (s step) ElementID() string { return string(s) }

func ExampleKahn() {
	g := graph.NewKahn[step]()
	g.AddNode("test")
	g.AddNode("build")
	g.AddNode("fetch")
	g.AddEdge("fetch", "build")
	g.AddEdge("build", "test")

	order, _ := g.Sort()
	fmt.Println(graph.IDs(order))
	// Output:
	// [fetch build test]
}

func ExampleCycleError() {
	g := graph.NewKahn[step]()
	g.AddEdge("lint", "build")
	g.AddEdge("build", "lint")

	_, err := g.Sort()
	var ce *graph.CycleError
	if errors.As(err, &ce) {
		fmt.Println(ce.Cycle)
	}
	fmt.Println(err)
	// Output:
	// [lint build lint]
	// cycle detected: lint -> build -> lint
}

func ExampleFactoryFor() {
	newGraph, err := graph.FactoryFor[step](graph.StrategyDFS)
	if err != nil {
		fmt.Println(err)
		return
	}
	g := newGraph()
	g.AddNode("a")
	g.AddNode("b")
	order, _ := g.Sort()
	fmt.Println(graph.IDs(order))
	// Output:
	// [a b]
}
