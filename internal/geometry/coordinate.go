package geometry

import "math"

// Planar position in some coordinate reference system. The reference system itself is not
// stored here, it is tracked by whoever owns the coordinate.
type Coordinate struct {
	X float64
	Y float64
}

func NewCoordinate(x, y float64) Coordinate {
	return Coordinate{X: x, Y: y}
}

// Builds a Coordinate from a GeoJSON position. Members after the first two (elevation, measure)
// are ignored. Returns false if the position has less than two members.
func FromPosition(position []float64) (Coordinate, bool) {
	if len(position) < 2 {
		return Coordinate{}, false
	}
	return Coordinate{X: position[0], Y: position[1]}, true
}

// Returns true if both components are neither NaN nor infinite
func (c Coordinate) IsFinite() bool {
	return isFinite(c.X) && isFinite(c.Y)
}

func (c Coordinate) Equal(other Coordinate) bool {
	return c.X == other.X && c.Y == other.Y
}

// Writes the coordinate as a GeoJSON position into dst, copying any extra members
// (elevation, measure) from the source position unchanged. dst must have len(source) members.
func (c Coordinate) WritePosition(dst []float64, source []float64) {
	dst[0] = c.X
	dst[1] = c.Y
	copy(dst[2:], source[2:])
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
