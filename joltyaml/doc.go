// Package joltyaml bridges YAML documents and [jolt.Value] trees.
//
// [Load] parses YAML with goccy/go-yaml and walks the AST into Values,
// preserving mapping key order (plain map unmarshaling would lose it).
// Anchors and aliases are resolved during the walk; tags are unwrapped.
// [Dump] renders a Value back to YAML through [yaml.MapSlice] so key
// order survives the other way too.
//
// The bridge exists for tooling: it lets the jolt CLI accept values
// written as YAML and render decoded values readably. It is not part of
// the wire format.
package joltyaml
