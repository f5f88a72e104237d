package manifest_test

import (
	"fmt"

	"github.com/matzehuels/stackorder/pkg/graph"
	"github.com/matzehuels/stackorder/pkg/manifest"
)

func ExampleParse() {
	core, _ := manifest.Parse([]byte(`
[[element]]
id = "fetch"

[[element]]
id = "test"
after = ["build"]
`), manifest.FormatTOML)

	plugin, _ := manifest.Parse([]byte(`{"elements": [{"id": "build", "after": ["fetch"]}]}`), manifest.FormatJSON)

	order, err := manifest.NewBuilder(nil, core, plugin).Sort()
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(graph.IDs(order))
	// Output:
	// [fetch build test]
}
