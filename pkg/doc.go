// Package pkg provides the libraries behind stackorder.
//
// # Overview
//
// Stackorder resolves relative placement constraints ("auth runs after
// logging, before router") into one deterministic total order. The pkg
// directory is organized bottom-up:
//
//  1. [graph] - Ordered-insertion graphs with Kahn and DFS topological sorts
//  2. [position] - The ordering builder and its Before/After constraints
//  3. [manifest] - TOML, JSON and YAML manifests applied to a builder
//  4. [resolve] - Cached resolution shared by the CLI and the HTTP API
//  5. [render/dot] - Graphviz export of the constraint graph
//
// Supporting packages: [errors] (error codes), [cache] (file, Redis and
// MongoDB backends), [observability] (hooks), [buildinfo] (version).
//
// # Quick Start
//
//	b := position.New[item]()
//	b.Element(item("a"))
//	b.Element(item("b"))
//	_ = b.After("a")
//	b.Element(item("c"))
//	_ = b.Before("a")
//	order, err := b.Sort() // [c a b]
//
// # Testing
//
//	go test ./...                     # All tests
//	go test -short ./...              # Skip Graphviz rendering
//	go test -run Example ./pkg/...    # Examples only
//
// Redis and MongoDB cache tests run only when STACKORDER_TEST_REDIS_ADDR or
// STACKORDER_TEST_MONGO_URI is set.
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/stackorder/pkg/graph
// [position]: https://pkg.go.dev/github.com/matzehuels/stackorder/pkg/position
// [manifest]: https://pkg.go.dev/github.com/matzehuels/stackorder/pkg/manifest
// [resolve]: https://pkg.go.dev/github.com/matzehuels/stackorder/pkg/resolve
// [render/dot]: https://pkg.go.dev/github.com/matzehuels/stackorder/pkg/render/dot
// [errors]: https://pkg.go.dev/github.com/matzehuels/stackorder/pkg/errors
// [cache]: https://pkg.go.dev/github.com/matzehuels/stackorder/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/stackorder/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/stackorder/pkg/buildinfo
package pkg
