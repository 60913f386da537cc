package jolt

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Decode parses Jolt text into a [Value]. Plain JSON is valid Jolt, so
// any well-formed document decodes; sigil-tagged single-entry objects are
// rewritten into their rich values. Malformed input is reported as an
// error wrapping one of the sentinel kinds in this package.
func Decode(text string) (Value, error) {
	v, _, err := DecodeGraph(text)

	return v, err
}

// DecodeGraph decodes like [Decode] and additionally returns the element
// store accumulated while resolving G-tagged values. The graph is nil
// when the document carried no graph values. Each call owns a fresh
// graph; two decodes never share state.
func DecodeGraph(text string) (Value, *Graph, error) {
	doc, err := parseJSON(text)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrMalformedJSON, err)
	}

	d := &decodeState{}

	v, err := d.resolve(doc)
	if err != nil {
		return nil, nil, err
	}

	return v, d.graph, nil
}

// decodeState is the decoder's only per-parse state: the element store
// populated by G-tagged values.
type decodeState struct {
	graph *Graph
}

// resolve rewrites a document-model value into a [Value]. Single-entry
// objects are dispatched through the sigil table; everything else maps
// structurally.
func (d *decodeState) resolve(j jsonValue) (Value, error) {
	switch t := j.(type) {
	case jsonNull:
		return Null{}, nil

	case jsonBool:
		return Bool(t), nil

	case jsonNumber:
		return resolveNumber(string(t))

	case jsonString:
		return String(t), nil

	case jsonArray:
		list := make(List, 0, len(t))

		for _, elem := range t {
			v, err := d.resolve(elem)
			if err != nil {
				return nil, err
			}

			list = append(list, v)
		}

		return list, nil

	case jsonObject:
		if len(t) == 1 {
			return d.resolveSigil(t[0].key, t[0].value, t)
		}

		return d.resolveMap(t)
	}

	return nil, fmt.Errorf("%w: unexpected document value %T", ErrMalformedJSON, j)
}

// resolveNumber classifies a bare JSON number by its textual form: text
// containing '.', 'e', or 'E' is a Float, everything else an Int. Integer
// text that does not fit 64 bits is an overflow; the Z sigil exists to
// carry such values as strings.
func resolveNumber(text string) (Value, error) {
	if strings.ContainsAny(text, ".eE") {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: number %q", ErrMalformedJSON, text)
		}

		return Float(f), nil
	}

	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return nil, fmt.Errorf("%w: %s", ErrIntegerOverflow, text)
		}

		return nil, fmt.Errorf("%w: number %q", ErrMalformedJSON, text)
	}

	return Int(n), nil
}

// resolveMap builds a Map from an object, resolving each member value.
// The object itself is never re-inspected as a sigil, which makes this
// the form for typed positions ({}-sigil payloads, property maps inside
// graph payloads) as well as for plain objects. Duplicate keys keep their
// first position and last value.
func (d *decodeState) resolveMap(obj jsonObject) (*Map, error) {
	m := NewMap()

	for _, member := range obj {
		v, err := d.resolve(member.value)
		if err != nil {
			return nil, err
		}

		m.Set(member.key, v)
	}

	return m, nil
}

// resolveSigil dispatches a single-entry object by its key. Unknown keys
// that are not sigil-shaped fall through to a one-entry Map.
func (d *decodeState) resolveSigil(key string, payload jsonValue, whole jsonObject) (Value, error) {
	switch key {
	case sigilInt:
		return resolveInt(payload)

	case sigilFloat:
		return resolveFloat(payload)

	case sigilTemporal:
		return resolveTemporal(payload)

	case sigilBytes:
		return resolveBytes(payload)

	case sigilMap:
		obj, ok := payload.(jsonObject)
		if !ok {
			return nil, fmt.Errorf("%w: {} payload must be an object", ErrMalformedSigilPayload)
		}

		return d.resolveMap(obj)

	case sigilGraph:
		return d.resolveGraph(payload)
	}

	if reservedSigils[key] {
		return nil, fmt.Errorf("%w: %q is reserved", ErrUnrecognizedSigil, key)
	}

	if strings.HasPrefix(key, sigilPoint) {
		srid, ok := parseSRID(key)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnrecognizedSigil, key)
		}

		return d.resolvePoint(srid, payload)
	}

	return d.resolveMap(whole)
}

// resolveInt parses a Z payload: a string holding a signed decimal.
func resolveInt(payload jsonValue) (Value, error) {
	s, ok := payload.(jsonString)
	if !ok {
		return nil, fmt.Errorf("%w: Z payload must be a string", ErrMalformedSigilPayload)
	}

	n, err := strconv.ParseInt(string(s), 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return nil, fmt.Errorf("%w: %s", ErrIntegerOverflow, s)
		}

		return nil, fmt.Errorf("%w: Z payload %q is not a signed decimal", ErrMalformedSigilPayload, s)
	}

	return Int(n), nil
}

// resolveFloat parses an R payload: one of the non-finite names or a
// decimal float.
func resolveFloat(payload jsonValue) (Value, error) {
	s, ok := payload.(jsonString)
	if !ok {
		return nil, fmt.Errorf("%w: R payload must be a string", ErrMalformedSigilPayload)
	}

	switch s {
	case "NaN":
		return Float(math.NaN()), nil
	case "Infinity":
		return Float(math.Inf(1)), nil
	case "-Infinity":
		return Float(math.Inf(-1)), nil
	}

	f, err := strconv.ParseFloat(string(s), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: R payload %q is not a decimal float", ErrMalformedSigilPayload, s)
	}

	return Float(f), nil
}

// resolveTemporal parses a T payload against the ISO-8601 forms.
func resolveTemporal(payload jsonValue) (Value, error) {
	s, ok := payload.(jsonString)
	if !ok {
		return nil, fmt.Errorf("%w: T payload must be a string", ErrMalformedSigilPayload)
	}

	v, err := ParseTemporal(string(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedSigilPayload, err)
	}

	return v, nil
}

// resolveBytes parses a # payload: hex with no separator. The encoder
// emits uppercase; lowercase is accepted.
func resolveBytes(payload jsonValue) (Value, error) {
	s, ok := payload.(jsonString)
	if !ok {
		return nil, fmt.Errorf("%w: # payload must be a string", ErrMalformedSigilPayload)
	}

	b, err := hex.DecodeString(string(s))
	if err != nil {
		return nil, fmt.Errorf("%w: # payload %q is not hex", ErrMalformedSigilPayload, s)
	}

	return Bytes(b), nil
}

// resolvePoint parses an @<srid> payload: a single-entry object holding a
// POINT coordinate array of two or three numbers.
func (d *decodeState) resolvePoint(srid int, payload jsonValue) (Value, error) {
	obj, ok := payload.(jsonObject)
	if !ok || len(obj) != 1 || obj[0].key != "POINT" {
		return nil, fmt.Errorf("%w: @%d payload must be a single-entry POINT object",
			ErrMalformedSigilPayload, srid)
	}

	arr, ok := obj[0].value.(jsonArray)
	if !ok || (len(arr) != 2 && len(arr) != 3) {
		return nil, fmt.Errorf("%w: POINT needs 2 or 3 coordinates", ErrMalformedSigilPayload)
	}

	coords := make([]float64, 0, len(arr))

	for _, elem := range arr {
		num, ok := elem.(jsonNumber)
		if !ok {
			return nil, fmt.Errorf("%w: POINT coordinate must be a number", ErrMalformedSigilPayload)
		}

		c, err := strconv.ParseFloat(string(num), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: POINT coordinate %q", ErrMalformedSigilPayload, num)
		}

		coords = append(coords, c)
	}

	return Point{SRID: srid, Coords: coords}, nil
}

// resolveGraph parses a G payload: an element table holding one node or
// relationship, or a three-entry path array. Elements land in the
// per-parse graph.
func (d *decodeState) resolveGraph(payload jsonValue) (Value, error) {
	if d.graph == nil {
		d.graph = NewGraph()
	}

	switch t := payload.(type) {
	case jsonObject:
		if len(t) != 1 {
			return nil, fmt.Errorf("%w: G element table must hold exactly one element",
				ErrMalformedSigilPayload)
		}

		return d.resolveElement(t[0])

	case jsonArray:
		if len(t) != 3 {
			return nil, fmt.Errorf("%w: G path must be [nodes, relationships, sequence]",
				ErrMalformedSigilPayload)
		}

		return d.resolvePath(t)
	}

	return nil, fmt.Errorf("%w: G payload must be an object or an array", ErrMalformedSigilPayload)
}

// resolveElement parses one element-table entry into a node (two-entry
// content) or relationship (four-entry content).
func (d *decodeState) resolveElement(member jsonMember) (Value, error) {
	id, err := strconv.ParseInt(member.key, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: element id %q", ErrMalformedSigilPayload, member.key)
	}

	content, ok := member.value.(jsonArray)
	if !ok {
		return nil, fmt.Errorf("%w: element %d content must be an array", ErrMalformedSigilPayload, id)
	}

	switch len(content) {
	case 2:
		return d.resolveNodeElement(id, content)
	case 4:
		return d.resolveRelationshipElement(id, content)
	}

	return nil, fmt.Errorf("%w: element %d content has %d entries",
		ErrMalformedSigilPayload, id, len(content))
}

// resolveNodeElement parses [labels, properties] and stores the node.
func (d *decodeState) resolveNodeElement(id int64, content jsonArray) (*Node, error) {
	labelArr, ok := content[0].(jsonArray)
	if !ok {
		return nil, fmt.Errorf("%w: node %d labels must be an array", ErrMalformedSigilPayload, id)
	}

	labels := make([]string, 0, len(labelArr))

	for _, elem := range labelArr {
		label, ok := elem.(jsonString)
		if !ok {
			return nil, fmt.Errorf("%w: node %d label must be a string", ErrMalformedSigilPayload, id)
		}

		labels = append(labels, string(label))
	}

	props, err := d.resolveProperties(id, content[1])
	if err != nil {
		return nil, err
	}

	n, err := d.graph.PutNode(id, labels, props)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedSigilPayload, err)
	}

	return n, nil
}

// resolveRelationshipElement parses [type, properties, start, end] and
// stores the relationship. Endpoint nodes need not be present: a
// standalone relationship element ships only their ids.
func (d *decodeState) resolveRelationshipElement(id int64, content jsonArray) (*Relationship, error) {
	typ, ok := content[0].(jsonString)
	if !ok {
		return nil, fmt.Errorf("%w: relationship %d type must be a string", ErrMalformedSigilPayload, id)
	}

	props, err := d.resolveProperties(id, content[1])
	if err != nil {
		return nil, err
	}

	endpoints := make([]int64, 0, 2)

	for _, elem := range content[2:] {
		s, ok := elem.(jsonString)
		if !ok {
			return nil, fmt.Errorf("%w: relationship %d endpoint must be a string id",
				ErrMalformedSigilPayload, id)
		}

		endpoint, parseErr := strconv.ParseInt(string(s), 10, 64)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: relationship %d endpoint %q",
				ErrMalformedSigilPayload, id, s)
		}

		endpoints = append(endpoints, endpoint)
	}

	r, err := d.graph.putRelationship(id, endpoints[0], endpoints[1], string(typ), props)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedSigilPayload, err)
	}

	return r, nil
}

// resolveProperties parses a property map, which sits in a typed position
// and therefore never carries the {} singleton wrapping.
func (d *decodeState) resolveProperties(id int64, j jsonValue) (*Map, error) {
	obj, ok := j.(jsonObject)
	if !ok {
		return nil, fmt.Errorf("%w: element %d properties must be an object",
			ErrMalformedSigilPayload, id)
	}

	return d.resolveMap(obj)
}

// resolvePath parses [NODES, RELS, SEQ]: both element tables are loaded
// into the graph, then the traversal sequence is walked, deriving each
// next node by direction comparison.
func (d *decodeState) resolvePath(content jsonArray) (*Path, error) {
	for i, name := range []string{"nodes", "relationships"} {
		table, ok := content[i].(jsonObject)
		if !ok {
			return nil, fmt.Errorf("%w: path %s table must be an object",
				ErrMalformedSigilPayload, name)
		}

		for _, member := range table {
			if _, err := d.resolveElement(member); err != nil {
				return nil, err
			}
		}
	}

	seq, ok := content[2].(jsonArray)
	if !ok || len(seq) < 2 {
		return nil, fmt.Errorf("%w: path sequence must hold a start node and at least one relationship",
			ErrMalformedSigilPayload)
	}

	ids := make([]int64, 0, len(seq))

	for _, elem := range seq {
		s, ok := elem.(jsonString)
		if !ok {
			return nil, fmt.Errorf("%w: path sequence entries must be string ids",
				ErrMalformedSigilPayload)
		}

		id, err := strconv.ParseInt(string(s), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: path sequence id %q", ErrMalformedSigilPayload, s)
		}

		ids = append(ids, id)
	}

	startID := ids[0]
	if _, ok := d.graph.Node(startID); !ok {
		return nil, fmt.Errorf("%w: node %d", ErrGraphReferenceMissing, startID)
	}

	current := startID

	for _, relID := range ids[1:] {
		r, ok := d.graph.Relationship(relID)
		if !ok {
			return nil, fmt.Errorf("%w: relationship %d", ErrGraphReferenceMissing, relID)
		}

		if current == r.StartID {
			current = r.EndID
		} else {
			current = r.StartID
		}

		if _, ok := d.graph.Node(current); !ok {
			return nil, fmt.Errorf("%w: node %d", ErrGraphReferenceMissing, current)
		}
	}

	return &Path{graph: d.graph, start: startID, rels: ids[1:]}, nil
}
