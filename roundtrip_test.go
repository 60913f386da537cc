package jolt_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/jolt"
)

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	tcs := map[string]jolt.Value{
		"null":            jolt.Null{},
		"bool":            jolt.Bool(true),
		"small int":       jolt.Int(42),
		"large int":       jolt.Int(1 << 40),
		"min int64":       jolt.Int(math.MinInt64),
		"max int64":       jolt.Int(math.MaxInt64),
		"whole float":     jolt.Float(1.0),
		"fraction float":  jolt.Float(1.5),
		"large float":     jolt.Float(2147483648.0),
		"huge float":      jolt.Float(1e300),
		"big whole float": jolt.Float(18014398509481984),
		"tiny float":      jolt.Float(1e-300),
		"negative zero":   jolt.Float(math.Copysign(0, -1)),
		"nan":             jolt.Float(math.NaN()),
		"infinity":        jolt.Float(math.Inf(1)),
		"string":          jolt.String("hello, world"),
		"unicode string":  jolt.String("héllo \"wörld\"\n"),
		"bytes":           jolt.Bytes{0x00, 0xFF, 0x0F},
		"empty bytes":     jolt.Bytes{},
		"date":            jolt.NewDate(2016, 6, 23),
		"time":            jolt.NewTime(12, 34, 56, 789123456),
		"time offset":     jolt.NewTime(12, 34, 56, 0).WithOffset(2 * 3600),
		"datetime":        jolt.NewDateTime(2016, 6, 23, 12, 34, 56, 123456789),
		"datetime offset": jolt.NewDateTime(2016, 6, 23, 12, 34, 56, 0).WithOffset(-4 * 3600),
		"duration":        jolt.NewDuration(14, 2, 3723, 500000000),
		"zero duration":   jolt.NewDuration(0, 0, 0, 0),
		"negative days":   jolt.NewDuration(0, -3, 0, 0),
		"wgs84 point":     jolt.WGS84Point(12.34, 56.78),
		"3d point":        jolt.Point{SRID: 4979, Coords: []float64{1.5, 2.5, 3.5}},
		"list": jolt.List{
			jolt.Int(1),
			jolt.List{jolt.Float(2.1), jolt.Float(2.2)},
			jolt.String("three"),
		},
		"map": jolt.NewMap(
			jolt.MapEntry{Key: "one", Value: jolt.Int(1)},
			jolt.MapEntry{Key: "two", Value: jolt.Int(0x80000000)},
		),
		"singleton map": jolt.NewMap(
			jolt.MapEntry{Key: "one", Value: jolt.Int(1)},
		),
		"singleton map with sigil key": jolt.NewMap(
			jolt.MapEntry{Key: "Z", Value: jolt.String("12")},
		),
		"map order preserved": jolt.NewMap(
			jolt.MapEntry{Key: "zebra", Value: jolt.Int(1)},
			jolt.MapEntry{Key: "aardvark", Value: jolt.Int(2)},
		),
	}

	for name, value := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			encoded, err := jolt.Encode(value)
			require.NoError(t, err)

			decoded, err := jolt.Decode(encoded)
			require.NoError(t, err)

			assert.True(t, value.Equal(decoded),
				"round trip through %q: want %#v, got %#v", encoded, value, decoded)
		})
	}
}

func TestRoundTripAlwaysSafe(t *testing.T) {
	t.Parallel()

	values := []jolt.Value{
		jolt.Int(1),
		jolt.Float(1.5),
		jolt.NewMap(
			jolt.MapEntry{Key: "one", Value: jolt.Int(1)},
			jolt.MapEntry{Key: "two", Value: jolt.Int(2)},
		),
	}

	for _, value := range values {
		encoded, err := jolt.Encode(value, jolt.WithAlwaysSafe(true))
		require.NoError(t, err)

		decoded, err := jolt.Decode(encoded)
		require.NoError(t, err)

		assert.True(t, value.Equal(decoded), "round trip through %q", encoded)
	}
}

func TestRoundTripGraph(t *testing.T) {
	t.Parallel()

	g, alice, _ := newTestGraph(t)

	t.Run("node", func(t *testing.T) {
		t.Parallel()

		encoded, err := jolt.Encode(alice)
		require.NoError(t, err)

		decoded, err := jolt.Decode(encoded)
		require.NoError(t, err)
		assert.True(t, alice.Equal(decoded))
	})

	t.Run("relationship", func(t *testing.T) {
		t.Parallel()

		ab, ok := g.Relationship(7)
		require.True(t, ok)

		encoded, err := jolt.Encode(ab)
		require.NoError(t, err)

		decoded, err := jolt.Decode(encoded)
		require.NoError(t, err)
		assert.True(t, ab.Equal(decoded))
	})

	t.Run("path", func(t *testing.T) {
		t.Parallel()

		path, err := g.Path(1, 7, 8, 9)
		require.NoError(t, err)

		encoded, err := jolt.Encode(path)
		require.NoError(t, err)

		decoded, err := jolt.Decode(encoded)
		require.NoError(t, err)
		assert.True(t, path.Equal(decoded), "decoded path topology differs")
	})
}

// TestCanonicalIdempotence checks encode(decode(text)) == text for texts
// already in canonical form.
func TestCanonicalIdempotence(t *testing.T) {
	t.Parallel()

	texts := []string{
		`null`,
		`true`,
		`42`,
		`-2147483648`,
		`{"Z": "2147483648"}`,
		`{"Z": "-2147483649"}`,
		`1.5`,
		`2147483648.0`,
		`{"R": "1.0"}`,
		`{"R": "NaN"}`,
		`{"R": "Infinity"}`,
		`"hello, world"`,
		`{"#": "0F1011"}`,
		`{"#": ""}`,
		`[1, [2.1, 2.2, 2.3], 3]`,
		`{"one": 1, "two": 2}`,
		`{"{}": {"one": 1}}`,
		`{"T": "2016-06-23"}`,
		`{"T": "12:34:56.789123456"}`,
		`{"T": "P1Y2M2DT1H2M3S"}`,
		`{"@4326": {"POINT": [12.34, 56.78]}}`,
		`{"G": {"1": [["Person"], {"name": "Alice"}]}}`,
		`{"G": {"7": ["KNOWS", {"since": 1999}, "1", "2"]}}`,
	}

	for _, text := range texts {
		decoded, err := jolt.Decode(text)
		require.NoError(t, err, "decode %q", text)

		encoded, err := jolt.Encode(decoded)
		require.NoError(t, err, "encode of decoded %q", text)

		assert.Equal(t, text, encoded)
	}
}
