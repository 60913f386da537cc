package jolt

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

// The plain-JSON document layer. The encoder lowers every [Value] into
// this model before printing, and the decoder parses wire text into it
// before resolving sigils. Only the six JSON shapes exist here; numbers
// are carried as preformatted decimal text so that the integer/float
// distinction survives in both directions.
type jsonValue interface {
	isJSON()
}

type jsonNull struct{}

type jsonBool bool

// jsonNumber holds the exact decimal text of a number.
type jsonNumber string

type jsonString string

type jsonArray []jsonValue

// jsonMember is one entry of a jsonObject.
type jsonMember struct {
	key   string
	value jsonValue
}

// jsonObject preserves member order.
type jsonObject []jsonMember

func (jsonNull) isJSON()   {}
func (jsonBool) isJSON()   {}
func (jsonNumber) isJSON() {}
func (jsonString) isJSON() {}
func (jsonArray) isJSON()  {}
func (jsonObject) isJSON() {}

// hasKey reports whether the object carries a member with the given key.
func (o jsonObject) hasKey(key string) bool {
	for _, m := range o {
		if m.key == key {
			return true
		}
	}

	return false
}

// parseJSON parses a complete JSON document into the document model,
// preserving object member order. Anything beyond the first value is an
// error.
func parseJSON(text string) (jsonValue, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	v, err := parseNext(dec)
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("trailing data after document")
	}

	return v, nil
}

// parseNext consumes one value from the token stream.
func parseNext(dec *json.Decoder) (jsonValue, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("unexpected end of document")
		}

		return nil, err
	}

	return parseToken(dec, tok)
}

// parseToken turns a lead token into a value, consuming the remainder of
// a composite from the stream.
func parseToken(dec *json.Decoder, tok json.Token) (jsonValue, error) {
	switch t := tok.(type) {
	case nil:
		return jsonNull{}, nil

	case bool:
		return jsonBool(t), nil

	case json.Number:
		return jsonNumber(t.String()), nil

	case string:
		return jsonString(t), nil

	case json.Delim:
		switch t {
		case '[':
			return parseArray(dec)
		case '{':
			return parseObject(dec)
		}
	}

	return nil, fmt.Errorf("unexpected token %v", tok)
}

func parseArray(dec *json.Decoder) (jsonValue, error) {
	arr := jsonArray{}

	for dec.More() {
		v, err := parseNext(dec)
		if err != nil {
			return nil, err
		}

		arr = append(arr, v)
	}

	// Consume the closing bracket.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return arr, nil
}

func parseObject(dec *json.Decoder) (jsonValue, error) {
	obj := jsonObject{}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", keyTok)
		}

		v, err := parseNext(dec)
		if err != nil {
			return nil, err
		}

		obj = append(obj, jsonMember{key: key, value: v})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return obj, nil
}

// appendJSON prints a document-model value in the canonical textual form:
// members and elements separated by ", ", keys and values by ": ". When
// sortKeys is set, every object prints its members in ascending key order
// instead of insertion order.
func appendJSON(dst []byte, v jsonValue, sortKeys bool) []byte {
	switch t := v.(type) {
	case jsonNull:
		return append(dst, "null"...)

	case jsonBool:
		if t {
			return append(dst, "true"...)
		}

		return append(dst, "false"...)

	case jsonNumber:
		return append(dst, t...)

	case jsonString:
		return appendQuoted(dst, string(t))

	case jsonArray:
		dst = append(dst, '[')

		for i, elem := range t {
			if i > 0 {
				dst = append(dst, ", "...)
			}

			dst = appendJSON(dst, elem, sortKeys)
		}

		return append(dst, ']')

	case jsonObject:
		members := t
		if sortKeys {
			members = slices.Clone(t)
			slices.SortStableFunc(members, func(a, b jsonMember) int {
				return strings.Compare(a.key, b.key)
			})
		}

		dst = append(dst, '{')

		for i, m := range members {
			if i > 0 {
				dst = append(dst, ", "...)
			}

			dst = appendQuoted(dst, m.key)
			dst = append(dst, ": "...)
			dst = appendJSON(dst, m.value, sortKeys)
		}

		return append(dst, '}')
	}

	// The document model is closed; this is unreachable for values built
	// by the encoder or parser.
	return dst
}

// appendQuoted prints a JSON string literal. Non-ASCII text is emitted as
// UTF-8 rather than \u escapes.
func appendQuoted(dst []byte, s string) []byte {
	dst = append(dst, '"')

	for _, r := range s {
		switch r {
		case '"':
			dst = append(dst, '\\', '"')
		case '\\':
			dst = append(dst, '\\', '\\')
		case '\n':
			dst = append(dst, '\\', 'n')
		case '\r':
			dst = append(dst, '\\', 'r')
		case '\t':
			dst = append(dst, '\\', 't')
		case '\b':
			dst = append(dst, '\\', 'b')
		case '\f':
			dst = append(dst, '\\', 'f')
		default:
			if r < 0x20 {
				dst = append(dst, fmt.Sprintf("\\u%04x", r)...)
			} else {
				dst = append(dst, string(r)...)
			}
		}
	}

	return append(dst, '"')
}
