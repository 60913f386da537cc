package joltschema

import (
	"github.com/google/jsonschema-go/jsonschema"
)

// Schema URIs for the generated schema.
const (
	schemaURI = "https://json-schema.org/draft/2020-12/schema"
	schemaID  = "https://go.jacobcolvin.com/jolt/wire.schema.json"
)

const valueRef = "#/$defs/value"

// Wire returns a JSON Schema for Jolt payloads.
func Wire() *jsonschema.Schema {
	return &jsonschema.Schema{
		Schema:      schemaURI,
		ID:          schemaID,
		Title:       "Jolt wire format",
		Description: "Self-describing JSON for a property-graph value system.",
		Ref:         valueRef,
		Defs: map[string]*jsonschema.Schema{
			"value":        valueSchema(),
			"int":          sigilSchema("Z", decimalString("signed decimal integer (outside the safe band, or any integer in always-safe output)")),
			"float":        sigilSchema("R", floatString()),
			"temporal":     sigilSchema("T", &jsonschema.Schema{Type: "string", Description: "ISO-8601 date, time, datetime, or duration"}),
			"bytes":        sigilSchema("#", &jsonschema.Schema{Type: "string", Pattern: "^([0-9A-Fa-f]{2})*$"}),
			"wrappedMap":   sigilSchema("{}", &jsonschema.Schema{Type: "object", AdditionalProperties: &jsonschema.Schema{Ref: valueRef}}),
			"point":        pointSchema(),
			"graph":        sigilSchema("G", graphPayloadSchema()),
			"elementTable": elementTableSchema(),
			"properties": {
				Type:                 "object",
				Description:          "Property map in a typed position; never carries the {} wrapping.",
				AdditionalProperties: &jsonschema.Schema{Ref: valueRef},
			},
		},
	}
}

// valueSchema is the recursive union of every encodable form.
func valueSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		AnyOf: []*jsonschema.Schema{
			{Types: []string{"null", "boolean", "number", "string"}},
			{Type: "array", Items: &jsonschema.Schema{Ref: valueRef}},
			{Ref: "#/$defs/int"},
			{Ref: "#/$defs/float"},
			{Ref: "#/$defs/temporal"},
			{Ref: "#/$defs/bytes"},
			{Ref: "#/$defs/wrappedMap"},
			{Ref: "#/$defs/point"},
			{Ref: "#/$defs/graph"},
			{Type: "object", AdditionalProperties: &jsonschema.Schema{Ref: valueRef}},
		},
	}
}

// sigilSchema matches an object whose sole entry is the sigil key with
// the given payload.
func sigilSchema(sigil string, payload *jsonschema.Schema) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:                 "object",
		Required:             []string{sigil},
		Properties:           map[string]*jsonschema.Schema{sigil: payload},
		AdditionalProperties: falseSchema(),
		MinProperties:        jsonschema.Ptr(1),
		MaxProperties:        jsonschema.Ptr(1),
	}
}

func decimalString(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Description: desc,
		Pattern:     `^[+-]?[0-9]+$`,
	}
}

func floatString() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Description: "decimal float, NaN, Infinity, or -Infinity",
	}
}

// pointSchema matches {"@<srid>": {"POINT": [x, y]}} with an optional
// third coordinate.
func pointSchema() *jsonschema.Schema {
	coords := &jsonschema.Schema{
		Type:     "array",
		Items:    &jsonschema.Schema{Type: "number"},
		MinItems: jsonschema.Ptr(2),
		MaxItems: jsonschema.Ptr(3),
	}

	payload := &jsonschema.Schema{
		Type:                 "object",
		Required:             []string{"POINT"},
		Properties:           map[string]*jsonschema.Schema{"POINT": coords},
		AdditionalProperties: falseSchema(),
	}

	return &jsonschema.Schema{
		Type:                 "object",
		PatternProperties:    map[string]*jsonschema.Schema{`^@[0-9]+$`: payload},
		AdditionalProperties: falseSchema(),
		MinProperties:        jsonschema.Ptr(1),
		MaxProperties:        jsonschema.Ptr(1),
	}
}

// graphPayloadSchema matches either a one-element table or the
// three-entry path array.
func graphPayloadSchema() *jsonschema.Schema {
	pathArray := &jsonschema.Schema{
		Type: "array",
		PrefixItems: []*jsonschema.Schema{
			{Ref: "#/$defs/elementTable"},
			{Ref: "#/$defs/elementTable"},
			{Type: "array", Items: &jsonschema.Schema{Type: "string"}},
		},
		MinItems: jsonschema.Ptr(3),
		MaxItems: jsonschema.Ptr(3),
	}

	singleElement := &jsonschema.Schema{
		Ref:           "#/$defs/elementTable",
		MinProperties: jsonschema.Ptr(1),
		MaxProperties: jsonschema.Ptr(1),
	}

	return &jsonschema.Schema{
		AnyOf: []*jsonschema.Schema{singleElement, pathArray},
	}
}

// elementTableSchema matches a map from stringified ids to node content
// [labels, properties] or relationship content [type, properties, start,
// end].
func elementTableSchema() *jsonschema.Schema {
	nodeContent := &jsonschema.Schema{
		Type: "array",
		PrefixItems: []*jsonschema.Schema{
			{Type: "array", Items: &jsonschema.Schema{Type: "string"}},
			{Ref: "#/$defs/properties"},
		},
		MinItems: jsonschema.Ptr(2),
		MaxItems: jsonschema.Ptr(2),
	}

	relationshipContent := &jsonschema.Schema{
		Type: "array",
		PrefixItems: []*jsonschema.Schema{
			{Type: "string"},
			{Ref: "#/$defs/properties"},
			{Type: "string"},
			{Type: "string"},
		},
		MinItems: jsonschema.Ptr(4),
		MaxItems: jsonschema.Ptr(4),
	}

	return &jsonschema.Schema{
		Type: "object",
		PatternProperties: map[string]*jsonschema.Schema{
			`^-?[0-9]+$`: {AnyOf: []*jsonschema.Schema{nodeContent, relationshipContent}},
		},
		AdditionalProperties: falseSchema(),
	}
}

// falseSchema returns a schema that validates nothing.
func falseSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Not: &jsonschema.Schema{}}
}
