package jolt_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/jolt"
)

func TestEncodePrimitives(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input jolt.Value
		want  string
	}{
		"null": {
			input: jolt.Null{},
			want:  `null`,
		},
		"true": {
			input: jolt.Bool(true),
			want:  `true`,
		},
		"false": {
			input: jolt.Bool(false),
			want:  `false`,
		},
		"small int": {
			input: jolt.Int(42),
			want:  `42`,
		},
		"int at positive band edge": {
			input: jolt.Int(0x7FFFFFFF),
			want:  `2147483647`,
		},
		"int beyond positive band edge": {
			input: jolt.Int(0x80000000),
			want:  `{"Z": "2147483648"}`,
		},
		"int at negative band edge": {
			input: jolt.Int(-0x80000000),
			want:  `-2147483648`,
		},
		"int beyond negative band edge": {
			input: jolt.Int(-0x80000001),
			want:  `{"Z": "-2147483649"}`,
		},
		"small whole float": {
			input: jolt.Float(1.0),
			want:  `{"R": "1.0"}`,
		},
		"fractional float": {
			input: jolt.Float(1.5),
			want:  `1.5`,
		},
		"large whole float": {
			input: jolt.Float(2147483648.0),
			want:  `2147483648.0`,
		},
		"negative whole float": {
			input: jolt.Float(-2.0),
			want:  `{"R": "-2.0"}`,
		},
		"nan": {
			input: jolt.Float(math.NaN()),
			want:  `{"R": "NaN"}`,
		},
		"positive infinity": {
			input: jolt.Float(math.Inf(1)),
			want:  `{"R": "Infinity"}`,
		},
		"negative infinity": {
			input: jolt.Float(math.Inf(-1)),
			want:  `{"R": "-Infinity"}`,
		},
		"string": {
			input: jolt.String("hello, world"),
			want:  `"hello, world"`,
		},
		"empty string": {
			input: jolt.String(""),
			want:  `""`,
		},
		"bytes": {
			input: jolt.Bytes{0x0F, 0x10, 0x11},
			want:  `{"#": "0F1011"}`,
		},
		"empty bytes": {
			input: jolt.Bytes{},
			want:  `{"#": ""}`,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := jolt.Encode(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEncodeComposites(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input jolt.Value
		want  string
	}{
		"empty list": {
			input: jolt.List{},
			want:  `[]`,
		},
		"singleton list": {
			input: jolt.List{jolt.Int(1)},
			want:  `[1]`,
		},
		"regular list": {
			input: jolt.List{jolt.Int(1), jolt.Int(2), jolt.Int(3)},
			want:  `[1, 2, 3]`,
		},
		"nested lists": {
			input: jolt.List{
				jolt.Int(1),
				jolt.List{jolt.Float(2.1), jolt.Float(2.2), jolt.Float(2.3)},
				jolt.Int(3),
			},
			want: `[1, [2.1, 2.2, 2.3], 3]`,
		},
		"escaped values in list": {
			input: jolt.List{jolt.Int(0x7FFFFFFF), jolt.Int(0x80000000), jolt.Int(0x80000001)},
			want:  `[2147483647, {"Z": "2147483648"}, {"Z": "2147483649"}]`,
		},
		"empty map": {
			input: jolt.NewMap(),
			want:  `{}`,
		},
		"singleton map": {
			input: jolt.NewMap(jolt.MapEntry{Key: "one", Value: jolt.Int(1)}),
			want:  `{"{}": {"one": 1}}`,
		},
		"regular map": {
			input: jolt.NewMap(
				jolt.MapEntry{Key: "one", Value: jolt.Int(1)},
				jolt.MapEntry{Key: "two", Value: jolt.Int(2)},
			),
			want: `{"one": 1, "two": 2}`,
		},
		"nested maps": {
			input: jolt.NewMap(
				jolt.MapEntry{Key: "one", Value: jolt.Int(1)},
				jolt.MapEntry{Key: "two", Value: jolt.NewMap(
					jolt.MapEntry{Key: "one", Value: jolt.Float(2.1)},
					jolt.MapEntry{Key: "two", Value: jolt.Float(2.2)},
				)},
			),
			want: `{"one": 1, "two": {"one": 2.1, "two": 2.2}}`,
		},
		"escaped values in map": {
			input: jolt.NewMap(
				jolt.MapEntry{Key: "short", Value: jolt.Int(1)},
				jolt.MapEntry{Key: "long", Value: jolt.Int(0x80000000)},
			),
			want: `{"short": 1, "long": {"Z": "2147483648"}}`,
		},
		"list in map": {
			input: jolt.NewMap(
				jolt.MapEntry{Key: "short", Value: jolt.Int(1)},
				jolt.MapEntry{Key: "long", Value: jolt.List{jolt.Int(0x80000000), jolt.Int(0x80000001)}},
			),
			want: `{"short": 1, "long": [{"Z": "2147483648"}, {"Z": "2147483649"}]}`,
		},
		"map in list": {
			input: jolt.List{
				jolt.Int(1),
				jolt.NewMap(
					jolt.MapEntry{Key: "short", Value: jolt.Int(1)},
					jolt.MapEntry{Key: "long", Value: jolt.Int(0x80000000)},
				),
				jolt.Int(3),
			},
			want: `[1, {"short": 1, "long": {"Z": "2147483648"}}, 3]`,
		},
		"singleton map with sigil key": {
			input: jolt.NewMap(jolt.MapEntry{Key: "Z", Value: jolt.String("12")}),
			want:  `{"{}": {"Z": "12"}}`,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := jolt.Encode(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEncodeTemporalAndSpatial(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input jolt.Value
		want  string
	}{
		"date": {
			input: jolt.NewDate(2016, 6, 23),
			want:  `{"T": "2016-06-23"}`,
		},
		"time with fraction": {
			input: jolt.NewTime(12, 34, 56, 789123456),
			want:  `{"T": "12:34:56.789123456"}`,
		},
		"time without fraction": {
			input: jolt.NewTime(12, 34, 56, 0),
			want:  `{"T": "12:34:56"}`,
		},
		"datetime": {
			input: jolt.NewDateTime(2016, 6, 23, 12, 34, 56, 0),
			want:  `{"T": "2016-06-23T12:34:56.000000000"}`,
		},
		"datetime with offset": {
			input: jolt.NewDateTime(2016, 6, 23, 12, 34, 56, 0).WithOffset(-4 * 3600),
			want:  `{"T": "2016-06-23T12:34:56.000000000-04:00"}`,
		},
		"duration": {
			input: jolt.NewDuration(14, 2, 3723, 0),
			want:  `{"T": "P1Y2M2DT1H2M3S"}`,
		},
		"zero duration": {
			input: jolt.NewDuration(0, 0, 0, 0),
			want:  `{"T": "PT0S"}`,
		},
		"wgs84 point": {
			input: jolt.WGS84Point(12.34, 56.78),
			want:  `{"@4326": {"POINT": [12.34, 56.78]}}`,
		},
		"cartesian point": {
			input: jolt.CartesianPoint(12.34, 56.78),
			want:  `{"@7203": {"POINT": [12.34, 56.78]}}`,
		},
		"3d point": {
			input: jolt.Point{SRID: 4979, Coords: []float64{1.5, 2.5, 3.5}},
			want:  `{"@4979": {"POINT": [1.5, 2.5, 3.5]}}`,
		},
		"point with whole coordinates": {
			input: jolt.Point{SRID: 7203, Coords: []float64{1, 2}},
			want:  `{"@7203": {"POINT": [1.0, 2.0]}}`,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := jolt.Encode(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEncodeAlwaysSafe(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input jolt.Value
		want  string
	}{
		"small int": {
			input: jolt.Int(1),
			want:  `{"Z": "1"}`,
		},
		"fractional float": {
			input: jolt.Float(1.5),
			want:  `{"R": "1.5"}`,
		},
		"regular map": {
			input: jolt.NewMap(
				jolt.MapEntry{Key: "one", Value: jolt.Int(1)},
				jolt.MapEntry{Key: "two", Value: jolt.Int(2)},
			),
			want: `{"{}": {"one": {"Z": "1"}, "two": {"Z": "2"}}}`,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := jolt.Encode(tc.input, jolt.WithAlwaysSafe(true))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEncodeSortKeys(t *testing.T) {
	t.Parallel()

	input := jolt.NewMap(
		jolt.MapEntry{Key: "two", Value: jolt.Int(2)},
		jolt.MapEntry{Key: "one", Value: jolt.Int(1)},
		jolt.MapEntry{Key: "three", Value: jolt.Int(3)},
	)

	got, err := jolt.Encode(input, jolt.WithSortKeys(true))
	require.NoError(t, err)
	assert.Equal(t, `{"one": 1, "three": 3, "two": 2}`, got)
}

func TestEncodeGraph(t *testing.T) {
	t.Parallel()

	g, alice, bob := newTestGraph(t)

	t.Run("node", func(t *testing.T) {
		t.Parallel()

		got, err := jolt.Encode(alice)
		require.NoError(t, err)
		assert.Equal(t, `{"G": {"1": [["Person"], {"name": "Alice"}]}}`, got)
	})

	t.Run("node with non-basic property sorted", func(t *testing.T) {
		t.Parallel()

		got, err := jolt.Encode(bob, jolt.WithSortKeys(true))
		require.NoError(t, err)
		assert.Equal(t,
			`{"G": {"2": [["Person"], {"date_of_birth": {"T": "1970-01-01"}, "name": "Bob"}]}}`,
			got)
	})

	t.Run("relationship with properties", func(t *testing.T) {
		t.Parallel()

		ab, ok := g.Relationship(7)
		require.True(t, ok)

		got, err := jolt.Encode(ab)
		require.NoError(t, err)
		assert.Equal(t, `{"G": {"7": ["KNOWS", {"since": 1999}, "1", "2"]}}`, got)
	})

	t.Run("relationship without properties", func(t *testing.T) {
		t.Parallel()

		cb, ok := g.Relationship(8)
		require.True(t, ok)

		got, err := jolt.Encode(cb)
		require.NoError(t, err)
		assert.Equal(t, `{"G": {"8": ["KNOWS", {}, "3", "2"]}}`, got)
	})

	t.Run("path", func(t *testing.T) {
		t.Parallel()

		path, err := g.Path(1, 7, 8, 9)
		require.NoError(t, err)

		got, err := jolt.Encode(path)
		require.NoError(t, err)

		want := `{"G": [{` +
			`"1": [["Person"], {"name": "Alice"}], ` +
			`"2": [["Person"], {"name": "Bob", "date_of_birth": {"T": "1970-01-01"}}], ` +
			`"3": [["Person"], {"name": "Carol"}], ` +
			`"4": [["Person"], {"name": "Dave"}]` +
			`}, {` +
			`"7": ["KNOWS", {"since": 1999}, "1", "2"], ` +
			`"8": ["KNOWS", {}, "3", "2"], ` +
			`"9": ["KNOWS", {}, "3", "4"]` +
			`}, ` +
			`["1", "7", "8", "9"]` +
			`]}`
		assert.Equal(t, want, got)
	})
}

func TestEncodeErrors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input   jolt.Value
		wantErr error
	}{
		"point with one coordinate": {
			input:   jolt.Point{SRID: 4326, Coords: []float64{1}},
			wantErr: jolt.ErrUnrepresentable,
		},
		"point with four coordinates": {
			input:   jolt.Point{SRID: 4326, Coords: []float64{1, 2, 3, 4}},
			wantErr: jolt.ErrUnrepresentable,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := jolt.Encode(tc.input)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

// newTestGraph builds the shared fixture graph: four Person nodes and
// three KNOWS relationships, with relationship 8 pointing against the
// traversal direction of path 1-7-8-9.
func newTestGraph(t *testing.T) (*jolt.Graph, *jolt.Node, *jolt.Node) {
	t.Helper()

	g := jolt.NewGraph()

	alice, err := g.PutNode(1, []string{"Person"},
		jolt.NewMap(jolt.MapEntry{Key: "name", Value: jolt.String("Alice")}))
	require.NoError(t, err)

	bob, err := g.PutNode(2, []string{"Person"}, jolt.NewMap(
		jolt.MapEntry{Key: "name", Value: jolt.String("Bob")},
		jolt.MapEntry{Key: "date_of_birth", Value: jolt.NewDate(1970, 1, 1)},
	))
	require.NoError(t, err)

	carol, err := g.PutNode(3, []string{"Person"},
		jolt.NewMap(jolt.MapEntry{Key: "name", Value: jolt.String("Carol")}))
	require.NoError(t, err)

	dave, err := g.PutNode(4, []string{"Person"},
		jolt.NewMap(jolt.MapEntry{Key: "name", Value: jolt.String("Dave")}))
	require.NoError(t, err)

	_, err = g.PutRelationship(7, alice, bob, "KNOWS",
		jolt.NewMap(jolt.MapEntry{Key: "since", Value: jolt.Int(1999)}))
	require.NoError(t, err)

	_, err = g.PutRelationship(8, carol, bob, "KNOWS", nil)
	require.NoError(t, err)

	_, err = g.PutRelationship(9, carol, dave, "KNOWS", nil)
	require.NoError(t, err)

	return g, alice, bob
}
