package manifest

import (
	"github.com/matzehuels/stackorder/pkg/graph"
	"github.com/matzehuels/stackorder/pkg/position"
)

// Entry is one element declared by a manifest. It is also the element type
// positioned by the CLI and the HTTP API.
type Entry struct {
	ID     string         `toml:"id" json:"id" yaml:"id"`
	Label  string         `toml:"label,omitempty" json:"label,omitempty" yaml:"label,omitempty"`
	Before []string       `toml:"before,omitempty" json:"before,omitempty" yaml:"before,omitempty"`
	After  []string       `toml:"after,omitempty" json:"after,omitempty" yaml:"after,omitempty"`
	Meta   map[string]any `toml:"meta,omitempty" json:"meta,omitempty" yaml:"meta,omitempty"`
}

// ElementID implements position.Entity.
func (e Entry) ElementID() string { return e.ID }

// DisplayLabel returns the label if set, otherwise the ID.
func (e Entry) DisplayLabel() string {
	if e.Label != "" {
		return e.Label
	}
	return e.ID
}

// Manifest is a decoded manifest file.
type Manifest struct {
	// Source names where the manifest came from (a path, or "inline").
	// It is used in error messages and is not serialized.
	Source string `toml:"-" json:"-" yaml:"-"`

	Elements []Entry `toml:"element" json:"elements" yaml:"elements"`
}

// Apply registers every entry of every manifest on b, in order, and
// attaches the entry's before/after relations to it. An entry whose ID was
// already registered keeps the first registration but still contributes its
// relations.
func Apply(b *position.Builder[Entry], manifests ...*Manifest) {
	for _, m := range manifests {
		if m == nil {
			continue
		}
		for _, e := range m.Elements {
			p := b.Place(e)
			for _, ref := range e.Before {
				p.Before(ref)
			}
			for _, ref := range e.After {
				p.After(ref)
			}
		}
	}
}

// NewBuilder returns a builder using factory (nil for the default graph)
// with all manifests applied.
func NewBuilder(factory graph.Factory[Entry], manifests ...*Manifest) *position.Builder[Entry] {
	b := position.New[Entry](position.WithGraphFactory[Entry](factory))
	Apply(b, manifests...)
	return b
}

// Count returns the total number of entries across manifests.
func Count(manifests ...*Manifest) int {
	n := 0
	for _, m := range manifests {
		if m != nil {
			n += len(m.Elements)
		}
	}
	return n
}
