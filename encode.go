package jolt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Encoder renders Values as Jolt text. Encoders are cheap to construct,
// hold no per-call state, and are safe for concurrent use.
type Encoder struct {
	alwaysSafe bool
	sortKeys   bool
}

// Option configures an [Encoder].
type Option func(*Encoder)

// WithAlwaysSafe forces every Int, Float, and Map into its sigil form
// regardless of magnitude or size, producing strictly-typed output for
// consumers that refuse to inspect value shape.
func WithAlwaysSafe(alwaysSafe bool) Option {
	return func(e *Encoder) {
		e.alwaysSafe = alwaysSafe
	}
}

// WithSortKeys emits every object's entries in ascending key order instead
// of insertion order.
func WithSortKeys(sortKeys bool) Option {
	return func(e *Encoder) {
		e.sortKeys = sortKeys
	}
}

// NewEncoder creates an [Encoder] with the given options.
func NewEncoder(opts ...Option) *Encoder {
	e := &Encoder{}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Encode renders v as Jolt text using a default [Encoder] configured by
// opts.
func Encode(v Value, opts ...Option) (string, error) {
	return NewEncoder(opts...).Encode(v)
}

// Encode renders v as Jolt text. The only failure mode is a value the
// wire format cannot express, reported as [ErrUnrepresentable] (a Point
// with a coordinate count other than 2 or 3, a Path referencing elements
// its Graph no longer holds, a Value kind outside the sum).
func (e *Encoder) Encode(v Value) (string, error) {
	j, err := e.transform(v)
	if err != nil {
		return "", err
	}

	return string(appendJSON(nil, j, e.sortKeys)), nil
}

// transform lowers a Value into the plain-JSON document model, wrapping
// in sigil form where the wire format demands it.
func (e *Encoder) transform(v Value) (jsonValue, error) {
	if v == nil {
		return jsonNull{}, nil
	}

	switch t := v.(type) {
	case Null:
		return jsonNull{}, nil

	case Bool:
		return jsonBool(t), nil

	case Int:
		return e.transformInt(int64(t)), nil

	case Float:
		return e.transformFloat(float64(t)), nil

	case String:
		return jsonString(t), nil

	case Bytes:
		return sigilObject(sigilBytes, jsonString(hexUpper(t))), nil

	case List:
		arr := make(jsonArray, 0, len(t))

		for _, elem := range t {
			j, err := e.transform(elem)
			if err != nil {
				return nil, err
			}

			arr = append(arr, j)
		}

		return arr, nil

	case *Map:
		return e.transformMap(t)

	case Point:
		return e.transformPoint(t)

	case Date:
		return sigilObject(sigilTemporal, jsonString(t.String())), nil

	case Time:
		return sigilObject(sigilTemporal, jsonString(t.String())), nil

	case DateTime:
		return sigilObject(sigilTemporal, jsonString(t.String())), nil

	case Duration:
		return sigilObject(sigilTemporal, jsonString(t.String())), nil

	case *Node:
		entry, err := e.nodeEntry(t)
		if err != nil {
			return nil, err
		}

		return sigilObject(sigilGraph, jsonObject{entry}), nil

	case *Relationship:
		entry, err := e.relationshipEntry(t)
		if err != nil {
			return nil, err
		}

		return sigilObject(sigilGraph, jsonObject{entry}), nil

	case *Path:
		return e.transformPath(t)
	}

	return nil, fmt.Errorf("%w: %T", ErrUnrepresentable, v)
}

// transformInt emits n bare within the safe band, wrapped in the Z sigil
// outside it or in always-safe mode.
func (e *Encoder) transformInt(n int64) jsonValue {
	if !e.alwaysSafe && inSafeBand(n) {
		return jsonNumber(strconv.FormatInt(n, 10))
	}

	return sigilObject(sigilInt, jsonString(strconv.FormatInt(n, 10)))
}

// transformFloat emits the R sigil for non-finite values, for safe-band
// whole values (whose bare form would read back as an Int), and in
// always-safe mode; everything else is emitted bare.
func (e *Encoder) transformFloat(f float64) jsonValue {
	switch {
	case math.IsNaN(f):
		return sigilObject(sigilFloat, jsonString("NaN"))

	case math.IsInf(f, 1):
		return sigilObject(sigilFloat, jsonString("Infinity"))

	case math.IsInf(f, -1):
		return sigilObject(sigilFloat, jsonString("-Infinity"))

	case e.alwaysSafe || floatNeedsSigil(f):
		return sigilObject(sigilFloat, jsonString(formatFloat(f)))
	}

	return jsonNumber(formatFloat(f))
}

// transformMap emits a Map as a plain object, wrapped in the {} sigil when
// it has exactly one entry (whose bare form would be mistaken for a sigil
// object) or in always-safe mode.
func (e *Encoder) transformMap(m *Map) (jsonValue, error) {
	obj, err := e.rawMap(m)
	if err != nil {
		return nil, err
	}

	if e.alwaysSafe || m.Len() == 1 {
		return sigilObject(sigilMap, obj), nil
	}

	return obj, nil
}

// rawMap emits a Map as a plain object with no singleton wrapping. Typed
// positions inside graph payloads use this form directly.
func (e *Encoder) rawMap(m *Map) (jsonObject, error) {
	obj := jsonObject{}

	for _, key := range m.Keys() {
		v, _ := m.Get(key)

		j, err := e.transform(v)
		if err != nil {
			return nil, err
		}

		obj = append(obj, jsonMember{key: key, value: j})
	}

	return obj, nil
}

// transformPoint emits {"@<srid>": {"POINT": [coords]}}. Coordinates are
// plain numbers; the sigil key types the position, so they need no R
// wrapping of their own.
func (e *Encoder) transformPoint(p Point) (jsonValue, error) {
	if len(p.Coords) != 2 && len(p.Coords) != 3 {
		return nil, fmt.Errorf("%w: point with %d coordinates", ErrUnrepresentable, len(p.Coords))
	}

	coords := make(jsonArray, 0, len(p.Coords))

	for _, c := range p.Coords {
		coords = append(coords, jsonNumber(formatFloat(c)))
	}

	key := sigilPoint + strconv.Itoa(p.SRID)
	payload := jsonObject{{key: "POINT", value: coords}}

	return jsonObject{{key: key, value: payload}}, nil
}

// nodeEntry emits an element-table entry: "<id>" -> [labels, properties].
func (e *Encoder) nodeEntry(n *Node) (jsonMember, error) {
	labels := make(jsonArray, 0, len(n.Labels))

	for _, label := range n.Labels {
		labels = append(labels, jsonString(label))
	}

	props, err := e.rawMap(n.Properties)
	if err != nil {
		return jsonMember{}, err
	}

	return jsonMember{
		key:   strconv.FormatInt(n.ID, 10),
		value: jsonArray{labels, props},
	}, nil
}

// relationshipEntry emits an element-table entry:
// "<id>" -> [type, properties, "<start>", "<end>"].
func (e *Encoder) relationshipEntry(r *Relationship) (jsonMember, error) {
	props, err := e.rawMap(r.Properties)
	if err != nil {
		return jsonMember{}, err
	}

	return jsonMember{
		key: strconv.FormatInt(r.ID, 10),
		value: jsonArray{
			jsonString(r.Type),
			props,
			jsonString(strconv.FormatInt(r.StartID, 10)),
			jsonString(strconv.FormatInt(r.EndID, 10)),
		},
	}, nil
}

// transformPath emits {"G": [NODES, RELS, SEQ]}: the element tables of
// every distinct node and relationship encountered, and the traversal
// sequence of the start node id followed by the relationship ids. The
// walk updates its position after each relationship by direction
// comparison, so it can run against a relationship's intrinsic direction.
func (e *Encoder) transformPath(p *Path) (jsonValue, error) {
	if p.graph == nil || len(p.rels) == 0 {
		return nil, fmt.Errorf("%w: empty path", ErrUnrepresentable)
	}

	startNode, ok := p.graph.Node(p.start)
	if !ok {
		return nil, fmt.Errorf("%w: %w: node %d", ErrUnrepresentable, ErrGraphReferenceMissing, p.start)
	}

	startEntry, err := e.nodeEntry(startNode)
	if err != nil {
		return nil, err
	}

	nodes := jsonObject{startEntry}
	rels := jsonObject{}
	seq := jsonArray{jsonString(strconv.FormatInt(p.start, 10))}

	current := p.start

	for _, relID := range p.rels {
		r, ok := p.graph.Relationship(relID)
		if !ok {
			return nil, fmt.Errorf("%w: %w: relationship %d", ErrUnrepresentable, ErrGraphReferenceMissing, relID)
		}

		if current == r.StartID {
			current = r.EndID
		} else {
			current = r.StartID
		}

		node, ok := p.graph.Node(current)
		if !ok {
			return nil, fmt.Errorf("%w: %w: node %d", ErrUnrepresentable, ErrGraphReferenceMissing, current)
		}

		if entry, entryErr := e.nodeEntry(node); entryErr != nil {
			return nil, entryErr
		} else if !nodes.hasKey(entry.key) {
			nodes = append(nodes, entry)
		}

		if entry, entryErr := e.relationshipEntry(r); entryErr != nil {
			return nil, entryErr
		} else if !rels.hasKey(entry.key) {
			rels = append(rels, entry)
		}

		seq = append(seq, jsonString(strconv.FormatInt(relID, 10)))
	}

	return sigilObject(sigilGraph, jsonArray{nodes, rels, seq}), nil
}

// sigilObject wraps a payload in a single-entry object keyed by the sigil.
func sigilObject(sigil string, payload jsonValue) jsonObject {
	return jsonObject{{key: sigil, value: payload}}
}

// formatFloat renders f in the textual form the decoder relies on:
// whole-valued floats below 1e15 in magnitude keep a trailing ".0" so
// their text cannot be read back as an integer, and everything else uses
// the shortest form that round-trips (exponent form for large whole
// values, which also reads back as a float).
func formatFloat(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', 1, 64)
	}

	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		// Large whole values whose shortest form has no dot or exponent
		// must still read back as floats.
		s += ".0"
	}

	return s
}

// hexUpper renders bytes as uppercase hex with no separator.
func hexUpper(b []byte) string {
	const digits = "0123456789ABCDEF"

	var sb strings.Builder

	sb.Grow(len(b) * 2)

	for _, octet := range b {
		sb.WriteByte(digits[octet>>4])
		sb.WriteByte(digits[octet&0x0F])
	}

	return sb.String()
}
