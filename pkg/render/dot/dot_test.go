package dot

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/matzehuels/stackorder/pkg/manifest"
	"github.com/matzehuels/stackorder/pkg/position"
)

func build(t *testing.T, src string) *Graph {
	t.Helper()
	m, err := manifest.Parse([]byte(src), manifest.FormatJSON)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	g, err := Build(manifest.NewBuilder(nil, m))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return g
}

func TestBuild_Ranks(t *testing.T) {
	g := build(t, `{"elements": [
		{"id": "a", "label": "Alpha"},
		{"id": "b", "after": ["a"]},
		{"id": "c", "before": ["a"]}
	]}`)

	wantRank := map[string]int{"c": 1, "a": 2, "b": 3}
	if len(g.Nodes) != 3 {
		t.Fatalf("len(Nodes) = %d, want 3", len(g.Nodes))
	}
	for _, n := range g.Nodes {
		if n.Rank != wantRank[n.ID] {
			t.Errorf("Rank(%s) = %d, want %d", n.ID, n.Rank, wantRank[n.ID])
		}
		if n.Cyclic {
			t.Errorf("node %s marked cyclic", n.ID)
		}
	}
	if g.Nodes[0].Label != "Alpha" {
		t.Errorf("Label = %q, want %q", g.Nodes[0].Label, "Alpha")
	}
	if len(g.Edges) != 2 || len(g.Cycle) != 0 {
		t.Errorf("Edges = %v, Cycle = %v", g.Edges, g.Cycle)
	}
}

func TestBuild_Cycle(t *testing.T) {
	g := build(t, `{"elements": [
		{"id": "a", "before": ["b"]},
		{"id": "b", "before": ["a"]},
		{"id": "c", "after": ["a"]},
		{"id": "d"}
	]}`)

	if got := strings.Join(g.Cycle, " "); got != "a b a" {
		t.Errorf("Cycle = %q, want %q", got, "a b a")
	}
	for _, n := range g.Nodes {
		wantCyclic := n.ID != "d"
		if n.Cyclic != wantCyclic {
			t.Errorf("Cyclic(%s) = %v, want %v", n.ID, n.Cyclic, wantCyclic)
		}
		if n.Rank != 0 {
			t.Errorf("Rank(%s) = %d, want 0 for a cyclic graph", n.ID, n.Rank)
		}
	}
	for _, e := range g.Edges {
		wantCycle := e.To != "c"
		if e.Cycle != wantCycle {
			t.Errorf("edge %s->%s Cycle = %v, want %v", e.From, e.To, e.Cycle, wantCycle)
		}
	}
}

func TestBuild_UnknownElement(t *testing.T) {
	b := position.New[manifest.Entry]()
	b.Place(manifest.Entry{ID: "a"}).After("ghost")

	_, err := Build(b)
	if !errors.Is(err, position.ErrUnknownElement) {
		t.Errorf("Build() error = %v, want ErrUnknownElement", err)
	}
}

func TestToDOT_Basic(t *testing.T) {
	g := &Graph{
		Nodes: []Node{{ID: "a"}, {ID: "b"}},
		Edges: []Edge{{From: "a", To: "b"}},
	}

	dot := ToDOT(g, Options{})

	for _, want := range []string{"digraph G", "rankdir=TB", `"a" [label="a"]`, `"b" [label="b"]`, `"a" -> "b";`} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOT_Cycle(t *testing.T) {
	g := &Graph{
		Nodes: []Node{{ID: "a", Cyclic: true}, {ID: "b", Cyclic: true}},
		Edges: []Edge{{From: "a", To: "b", Cycle: true}},
		Cycle: []string{"a", "b", "a"},
	}

	dot := ToDOT(g, Options{})

	if !strings.Contains(dot, `fillcolor="#fca5a5"`) {
		t.Error("ToDOT() cyclic node missing red fill")
	}
	if !strings.Contains(dot, `"a" -> "b" [color="#b91c1c", penwidth=2];`) {
		t.Errorf("ToDOT() cycle edge not highlighted:\n%s", dot)
	}
}

func TestFmtLabel(t *testing.T) {
	tests := []struct {
		name     string
		node     Node
		detailed bool
		want     string
	}{
		{"simple", Node{ID: "auth", Label: "Authentication", Rank: 2}, false, "Authentication"},
		{"empty label", Node{ID: "auth"}, false, "auth"},
		{"detailed", Node{ID: "auth", Label: "Authentication", Rank: 2}, true, "Authentication\nid: auth\nrank: 2"},
		{"detailed meta", Node{ID: "auth", Rank: 1, Meta: map[string]any{"team": "core", "owner": "a"}}, true, "auth\nrank: 1\nowner: a\nteam: core"},
		{"detailed bare", Node{ID: "auth"}, true, "auth"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fmtLabel(tt.node, tt.detailed); got != tt.want {
				t.Errorf("fmtLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="116pt" viewBox="0.00 0.00 62.00 116.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))

	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 116.00" width="62" height="116">`
	if !strings.HasPrefix(out, want) {
		t.Errorf("normalizeViewBox() = %q, want prefix %q", out, want)
	}

	plain := []byte("<svg><g/></svg>")
	if got := normalizeViewBox(plain); string(got) != string(plain) {
		t.Errorf("normalizeViewBox() without viewBox = %q, want unchanged", got)
	}
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping graphviz rendering in short mode")
	}
	g := &Graph{
		Nodes: []Node{{ID: "a"}, {ID: "b"}},
		Edges: []Edge{{From: "a", To: "b"}},
	}

	svg, err := RenderSVG(context.Background(), ToDOT(g, Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output is not SVG")
	}
}
