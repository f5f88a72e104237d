// Package manifest reads ordering manifests and applies them to a
// position.Builder.
//
// A manifest is what one contributor writes: a list of elements, each with
// the relations it knows about. Several manifests (one per team, plugin or
// package) are applied to the same builder in order, and the builder works
// out the combined sequence.
//
// # Formats
//
// TOML uses an array of tables named "element":
//
//	[[element]]
//	id = "auth"
//	before = ["router"]
//	after = ["logging"]
//
//	[element.meta]
//	owner = "team-a"
//
// JSON and YAML use an "elements" list with the same keys:
//
//	{"elements": [{"id": "auth", "before": ["router"], "after": ["logging"]}]}
//
// [Load] picks the decoder from the file extension (.toml, .json, .yaml,
// .yml); [Parse] and [Read] take the format explicitly.
//
// # Validation
//
// Element IDs and referenced IDs must pass errors.ValidateElementID.
// Unknown TOML keys are rejected so typos such as "befor" do not silently
// drop a constraint. Whether references resolve is only known once every
// manifest is applied, so it is checked by Builder.Sort, not here.
package manifest
