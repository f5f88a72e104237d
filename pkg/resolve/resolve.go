// Package resolve turns manifests into a resolved element order, with caching.
//
// Both the CLI and the HTTP API go through a [Runner] so that caching,
// logging and observability hooks behave the same on every entry point.
//
//	runner := resolve.NewRunner(cache.NewNullCache(), nil, logger)
//	res, err := runner.Resolve(ctx, manifests, resolve.Options{Strategy: "kahn"})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.IDs())
package resolve

import (
	"time"

	"github.com/matzehuels/stackorder/pkg/graph"
	"github.com/matzehuels/stackorder/pkg/manifest"
)

// DefaultStrategy is the sort strategy used when none is given.
const DefaultStrategy = graph.StrategyKahn

// Options control a single resolution.
type Options struct {
	// Strategy names the graph sort strategy (see graph.Strategies).
	Strategy string

	// Refresh skips the cache lookup. The fresh result is still stored.
	Refresh bool
}

// ValidateAndSetDefaults fills in defaults and rejects unknown strategies.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Strategy == "" {
		o.Strategy = DefaultStrategy
	}
	_, err := graph.FactoryFor[manifest.Entry](o.Strategy)
	return err
}

// Edge is a resolved precedence edge between two element IDs.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Result is the outcome of a resolution.
type Result struct {
	Order    []manifest.Entry `json:"order"`
	Edges    []Edge           `json:"edges"`
	Strategy string           `json:"strategy"`

	// Set per call, never cached.
	CacheHit bool          `json:"-"`
	Duration time.Duration `json:"-"`
}

// IDs returns the resolved element IDs in order.
func (r *Result) IDs() []string {
	return graph.IDs(r.Order)
}
