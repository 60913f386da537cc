package jolt

import "errors"

// Sentinel errors returned by the codec. Decode errors wrap one of these;
// use [errors.Is] to classify a failure.
var (
	// ErrMalformedJSON indicates the underlying JSON document failed to
	// parse, or carried trailing data after the root value.
	ErrMalformedJSON = errors.New("malformed json")
	// ErrUnrecognizedSigil indicates a one-entry object whose key is
	// sigil-shaped but unknown or reserved.
	ErrUnrecognizedSigil = errors.New("unrecognized sigil")
	// ErrMalformedSigilPayload indicates a recognized sigil carrying a
	// payload of the wrong shape.
	ErrMalformedSigilPayload = errors.New("malformed sigil payload")
	// ErrIntegerOverflow indicates an integer that does not fit in 64 bits.
	// Legitimately-large values avoid this by using the Z sigil.
	ErrIntegerOverflow = errors.New("integer overflow")
	// ErrGraphReferenceMissing indicates a traversal sequence referencing
	// an id absent from the accompanying element tables.
	ErrGraphReferenceMissing = errors.New("graph reference missing")
	// ErrUnrepresentable indicates a value that cannot be expressed in
	// Jolt. It is returned by [Encoder.Encode] only.
	ErrUnrepresentable = errors.New("unrepresentable value")
	// ErrElementConflict indicates two graph elements sharing an id but
	// differing in content.
	ErrElementConflict = errors.New("graph element conflict")
	// ErrInvalidPath indicates a path whose traversal sequence does not
	// connect, or that has no relationships.
	ErrInvalidPath = errors.New("invalid path")
)
