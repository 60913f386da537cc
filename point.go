package jolt

import "slices"

// Spatial reference system identifiers with dedicated constructors.
const (
	SRIDWGS84     = 4326
	SRIDCartesian = 7203
)

// Point is a spatial point: an SRID qualifying the coordinate system and
// two or three coordinates. Points with any other coordinate count are
// unrepresentable and rejected by the encoder.
type Point struct {
	SRID   int
	Coords []float64
}

// WGS84Point creates a two-dimensional point in the WGS-84 system.
func WGS84Point(x, y float64) Point {
	return Point{SRID: SRIDWGS84, Coords: []float64{x, y}}
}

// CartesianPoint creates a two-dimensional point in the Cartesian system.
func CartesianPoint(x, y float64) Point {
	return Point{SRID: SRIDCartesian, Coords: []float64{x, y}}
}

// Kind implements [Value].
func (Point) Kind() Kind { return KindPoint }

// Equal implements [Value].
func (p Point) Equal(other Value) bool {
	o, ok := other.(Point)

	return ok && p.SRID == o.SRID && slices.Equal(p.Coords, o.Coords)
}
