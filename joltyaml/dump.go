package joltyaml

import (
	"fmt"

	"github.com/goccy/go-yaml"

	"go.jacobcolvin.com/jolt"
)

// Dump renders a [jolt.Value] as YAML. Maps keep their insertion order
// via [yaml.MapSlice]. Bytes render as the same uppercase hex text the
// wire format uses; temporal values render as their ISO-8601 strings;
// graph values render as readable mappings of their fields.
func Dump(v jolt.Value) ([]byte, error) {
	plain, err := toPlain(v)
	if err != nil {
		return nil, err
	}

	out, err := yaml.Marshal(plain)
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}

	return out, nil
}

// toPlain lowers a Value into goccy-marshalable Go data.
func toPlain(v jolt.Value) (any, error) {
	if v == nil {
		return nil, nil
	}

	switch t := v.(type) {
	case jolt.Null:
		return nil, nil

	case jolt.Bool:
		return bool(t), nil

	case jolt.Int:
		return int64(t), nil

	case jolt.Float:
		return float64(t), nil

	case jolt.String:
		return string(t), nil

	case jolt.Bytes:
		return fmt.Sprintf("%X", []byte(t)), nil

	case jolt.List:
		list := make([]any, 0, len(t))

		for _, elem := range t {
			p, err := toPlain(elem)
			if err != nil {
				return nil, err
			}

			list = append(list, p)
		}

		return list, nil

	case *jolt.Map:
		return mapSlice(t)

	case jolt.Point:
		return yaml.MapSlice{
			{Key: "srid", Value: t.SRID},
			{Key: "coordinates", Value: t.Coords},
		}, nil

	case jolt.Date:
		return t.String(), nil

	case jolt.Time:
		return t.String(), nil

	case jolt.DateTime:
		return t.String(), nil

	case jolt.Duration:
		return t.String(), nil

	case *jolt.Node:
		return nodeSlice(t)

	case *jolt.Relationship:
		return relationshipSlice(t)

	case *jolt.Path:
		return pathSlice(t)
	}

	return nil, fmt.Errorf("%w: %T", ErrUnsupported, v)
}

func mapSlice(m *jolt.Map) (yaml.MapSlice, error) {
	out := make(yaml.MapSlice, 0, m.Len())

	for _, key := range m.Keys() {
		v, _ := m.Get(key)

		p, err := toPlain(v)
		if err != nil {
			return nil, err
		}

		out = append(out, yaml.MapItem{Key: key, Value: p})
	}

	return out, nil
}

func nodeSlice(n *jolt.Node) (yaml.MapSlice, error) {
	props, err := mapSlice(n.Properties)
	if err != nil {
		return nil, err
	}

	return yaml.MapSlice{
		{Key: "id", Value: n.ID},
		{Key: "labels", Value: n.Labels},
		{Key: "properties", Value: props},
	}, nil
}

func relationshipSlice(r *jolt.Relationship) (yaml.MapSlice, error) {
	props, err := mapSlice(r.Properties)
	if err != nil {
		return nil, err
	}

	return yaml.MapSlice{
		{Key: "id", Value: r.ID},
		{Key: "type", Value: r.Type},
		{Key: "start", Value: r.StartID},
		{Key: "end", Value: r.EndID},
		{Key: "properties", Value: props},
	}, nil
}

func pathSlice(p *jolt.Path) (yaml.MapSlice, error) {
	nodes := make([]any, 0, p.Len()+1)

	for _, n := range p.Nodes() {
		ns, err := nodeSlice(n)
		if err != nil {
			return nil, err
		}

		nodes = append(nodes, ns)
	}

	rels := make([]any, 0, p.Len())

	for _, r := range p.Relationships() {
		rs, err := relationshipSlice(r)
		if err != nil {
			return nil, err
		}

		rels = append(rels, rs)
	}

	return yaml.MapSlice{
		{Key: "nodes", Value: nodes},
		{Key: "relationships", Value: rels},
	}, nil
}
