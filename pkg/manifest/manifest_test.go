package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	errs "github.com/matzehuels/stackorder/pkg/errors"
	"github.com/matzehuels/stackorder/pkg/graph"
)

func TestLoad_Formats(t *testing.T) {
	tests := []struct {
		path    string
		wantIDs []string
	}{
		{"testdata/core.toml", []string{"logging", "auth", "router"}},
		{"testdata/plugins.json", []string{"metrics", "ratelimit"}},
		{"testdata/extras.yaml", []string{"compress"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			m, err := Load(tt.path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if m.Source != tt.path {
				t.Errorf("Source = %q, want %q", m.Source, tt.path)
			}
			if got := graph.IDs(m.Elements); !slices.Equal(got, tt.wantIDs) {
				t.Errorf("IDs = %v, want %v", got, tt.wantIDs)
			}
		})
	}
}

func TestLoad_TOMLFields(t *testing.T) {
	m, err := Load("testdata/core.toml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	auth := m.Elements[1]
	if !slices.Equal(auth.Before, []string{"router"}) || !slices.Equal(auth.After, []string{"logging"}) {
		t.Errorf("auth relations = before %v after %v", auth.Before, auth.After)
	}
	if auth.Meta["owner"] != "security" {
		t.Errorf("auth meta = %v, want owner=security", auth.Meta)
	}
	if got := m.Elements[0].DisplayLabel(); got != "Request logging" {
		t.Errorf("DisplayLabel() = %q", got)
	}
	if got := m.Elements[2].DisplayLabel(); got != "router" {
		t.Errorf("DisplayLabel() without label = %q, want router", got)
	}
}

func TestLoad_YAMLMeta(t *testing.T) {
	m, err := Load("testdata/extras.yaml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if m.Elements[0].Meta["level"] != 6 {
		t.Errorf("meta level = %v (%T), want 6", m.Elements[0].Meta["level"], m.Elements[0].Meta["level"])
	}
}

func TestApply_CombinedOrder(t *testing.T) {
	ms, err := LoadAll("testdata/core.toml", "testdata/plugins.json", "testdata/extras.yaml")
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if Count(ms...) != 6 {
		t.Errorf("Count() = %d, want 6", Count(ms...))
	}

	order, err := NewBuilder(nil, ms...).Sort()
	if err != nil {
		t.Fatalf("Sort() error = %v", err)
	}
	got := graph.IDs(order)
	want := []string{"metrics", "logging", "auth", "ratelimit", "router", "compress"}
	if !slices.Equal(got, want) {
		t.Errorf("Sort() = %v, want %v", got, want)
	}
}

func TestApply_DuplicateKeepsFirstAndMergesRelations(t *testing.T) {
	first, err := Parse([]byte(`{"elements":[{"id":"a","label":"first"},{"id":"b"}]}`), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Parse([]byte(`{"elements":[{"id":"a","label":"second","after":["b"]}]}`), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}

	order, err := NewBuilder(nil, first, nil, second).Sort()
	if err != nil {
		t.Fatalf("Sort() error = %v", err)
	}
	if got := graph.IDs(order); !slices.Equal(got, []string{"b", "a"}) {
		t.Errorf("Sort() = %v, want [b a]", got)
	}
	if order[1].Label != "first" {
		t.Errorf("Label = %q, want first registration", order[1].Label)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		format   string
		wantCode errs.Code
	}{
		{"bad toml", "[[element]\nid=", FormatTOML, errs.ErrCodeInvalidManifest},
		{"unknown toml key", "[[element]]\nid = \"a\"\nbefor = [\"b\"]\n", FormatTOML, errs.ErrCodeInvalidManifest},
		{"bad json", `{"elements": [`, FormatJSON, errs.ErrCodeInvalidManifest},
		{"unknown json key", `{"elements": [{"id": "a", "befor": ["b"]}]}`, FormatJSON, errs.ErrCodeInvalidManifest},
		{"trailing json", `{"elements": []} {"elements": []}`, FormatJSON, errs.ErrCodeInvalidManifest},
		{"bad yaml", "elements: [\n", FormatYAML, errs.ErrCodeInvalidManifest},
		{"unknown yaml key", "elements:\n  - id: a\n    befor: [b]\n", FormatYAML, errs.ErrCodeInvalidManifest},
		{"empty id", `{"elements":[{"id":""}]}`, FormatJSON, errs.ErrCodeInvalidManifest},
		{"bad ref", `{"elements":[{"id":"a","after":[" b"]}]}`, FormatJSON, errs.ErrCodeInvalidManifest},
		{"bad format", `{}`, "xml", errs.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format)
			if err == nil {
				t.Fatal("Parse() error = nil, want error")
			}
			if !errs.Is(err, tt.wantCode) {
				t.Errorf("code = %v, want %v (%v)", errs.GetCode(err), tt.wantCode, err)
			}
		})
	}
}

func TestParse_MetaIsFreeForm(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format string
	}{
		{"json", `{"elements": [{"id": "a", "meta": {"anything": 1, "nested": {"x": true}}}]}`, FormatJSON},
		{"yaml", "elements:\n  - id: a\n    meta:\n      anything: 1\n      nested: {x: true}\n", FormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse([]byte(tt.data), tt.format)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if len(m.Elements) != 1 || len(m.Elements[0].Meta) != 2 {
				t.Errorf("Elements = %+v, want one element with two meta keys", m.Elements)
			}
		})
	}
}

func TestParse_EmptyYAML(t *testing.T) {
	m, err := Parse(nil, FormatYAML)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(m.Elements) != 0 {
		t.Errorf("Elements = %v, want none", m.Elements)
	}
}

func TestParse_TOMLMetaIsFreeForm(t *testing.T) {
	data := "[[element]]\nid = \"a\"\n[element.meta]\nanything = 1\nnested = { x = true }\n"
	m, err := Parse([]byte(data), FormatTOML)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if m.Source != "inline" {
		t.Errorf("Source = %q, want inline", m.Source)
	}
	if _, ok := m.Elements[0].Meta["nested"]; !ok {
		t.Errorf("Meta = %v, want nested key", m.Elements[0].Meta)
	}
}

func TestRead(t *testing.T) {
	m, err := Read(strings.NewReader("elements:\n  - id: x\n"), FormatYAML)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(m.Elements) != 1 || m.Elements[0].ID != "x" {
		t.Errorf("Read() = %+v", m)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"order.toml", FormatTOML, false},
		{"dir/Order.JSON", FormatJSON, false},
		{"a.yaml", FormatYAML, false},
		{"a.yml", FormatYAML, false},
		{"a.txt", "", true},
		{"noext", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatFromPath() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FormatFromPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("Load() error = %v, want FILE_NOT_FOUND", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error does not wrap a not-exist error: %v", err)
	}
}

func TestLoadAll_StopsAtFirstError(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadAll("testdata/core.toml", bad)
	if err == nil || !strings.Contains(err.Error(), "bad.json") {
		t.Errorf("LoadAll() error = %v, want error naming bad.json", err)
	}
}
