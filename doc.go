// Package jolt implements the Jolt (JSON-Oriented Linked Types) wire
// encoding: self-describing JSON for a property-graph value system. Jolt
// extends ordinary JSON with sigil-tagged single-entry objects that
// disambiguate values whose native JSON form would be lossy -- large
// integers, non-finite or whole-valued floats, byte strings, temporal
// values, spatial points, and graph entities.
//
// A valid Jolt payload is a valid JSON document. [Encode] lowers a
// [Value] to text; [Decode] parses text back. The mapping round-trips:
// decode(encode(v)) is structurally equal to v for every representable
// value, with NaN compared by bit pattern and [Map] key order preserved.
//
// # Sigils
//
// A sigil is a reserved key that, as the sole entry of an object, marks
// the object as a typed value rather than a plain map:
//
//	{"Z": "2147483648"}                     large integer
//	{"R": "1.0"}                            float needing type protection
//	{"T": "2016-06-23"}                     temporal (ISO-8601)
//	{"#": "0F1011"}                         bytes (uppercase hex)
//	{"{}": {"one": 1}}                      single-entry map, disambiguated
//	{"@4326": {"POINT": [12.34, 56.78]}}    spatial point with SRID
//	{"G": {"1": [["Person"], {...}]}}       graph element
//
// The keys "()", "->", and "--" are reserved with unspecified semantics;
// the decoder rejects them with [ErrUnrecognizedSigil].
//
// # The numeric boundary
//
// JSON parsers without a 64-bit integer type corrupt integers beyond
// 2^31-1, and parsers without an integer/float distinction conflate 1
// with 1.0. Jolt therefore emits an [Int] bare only inside the safe band
// ([SafeBandMin], [SafeBandMax]) and wraps it in Z outside; a [Float]
// that is whole-valued and within the band is wrapped in R, and whole
// floats outside the band keep a trailing ".0" (or, from 1e15 up, use
// exponent form) so their text stays distinct from integer text. The decoder inverts the same table: bare
// numbers with '.', 'e', or 'E' are floats, all others are ints.
//
// # Graph values
//
// Nodes, relationships, and paths encode by reference: an element table
// maps stringified ids to content, and a path adds a traversal sequence
// of the start node id followed by relationship ids. Traversal may run
// against a relationship's intrinsic direction; the next node after each
// relationship is the endpoint the walk is not standing on. Decoding
// accumulates elements in a per-parse [Graph], returned by [DecodeGraph].
// Property maps inside graph payloads sit in typed positions and are
// written raw, without the {} singleton wrapping; the decoder reads them
// as plain maps without sigil disambiguation.
//
// # Errors
//
// Decode failures wrap one of the sentinel errors [ErrMalformedJSON],
// [ErrUnrecognizedSigil], [ErrMalformedSigilPayload],
// [ErrIntegerOverflow], or [ErrGraphReferenceMissing]; encode failures
// wrap [ErrUnrepresentable]. Classify with [errors.Is].
//
// # Concurrency
//
// Encoders and decoders are pure per call: each call allocates its own
// working state and returns a value owned by the caller. Concurrent
// calls on disjoint inputs are safe. Encoders are cheap to construct and
// should not be pooled.
//
// # Basic usage
//
//	text, err := jolt.Encode(jolt.List{jolt.Int(1), jolt.Float(1.5)})
//
//	v, err := jolt.Decode(`{"#": "0F1011"}`)
//
// # With options
//
//	enc := jolt.NewEncoder(
//	    jolt.WithAlwaysSafe(true),
//	    jolt.WithSortKeys(true),
//	)
//	text, err := enc.Encode(value)
//
// # Config-based usage
//
//	cfg := jolt.NewConfig()
//	cfg.RegisterFlags(rootCmd.Flags())
//
//	text, err := cfg.NewEncoder().Encode(value)
package jolt
