// Package joltschema describes the Jolt wire format as a JSON Schema.
//
// [Wire] returns a schema matching every document a Jolt encoder can
// produce: the six plain JSON shapes plus the sigil-tagged single-entry
// object forms, recursing through arrays and objects. The schema is
// descriptive rather than exclusive -- a plain object with a single
// non-sigil entry is still a valid map, so object forms are combined
// with anyOf and the schema cannot (and does not try to) reject every
// document the decoder would reject. It is meant for consumers that
// want a cheap structural check, or documentation, before decoding.
package joltschema
