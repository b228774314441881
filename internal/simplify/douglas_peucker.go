package simplify

import (
	"math"

	geojson "github.com/paulmach/go.geojson"
)

// Smallest closed ring: three distinct positions plus the closing one
const minRingPositions = 4

// Geometry returns a copy of g with lines and rings simplified with the Douglas-Peucker algorithm.
//
// Points are kept as they are. Positions are shared with the input, only the slices holding them
// are new. A ring that would collapse below a triangle keeps its original positions, so polygons
// never lose rings. A tolerance <= 0 returns g itself.
func Geometry(g *geojson.Geometry, tolerance float64) *geojson.Geometry {
	if g == nil || tolerance <= 0 {
		return g
	}

	root := simplifyMember(g, tolerance)
	if g.Type != geojson.GeometryCollection {
		return root
	}

	type pair struct{ src, dst *geojson.Geometry }
	pending := []pair{{g, root}}
	for len(pending) > 0 {
		p := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		for i, member := range p.src.Geometries {
			out := simplifyMember(member, tolerance)
			p.dst.Geometries[i] = out
			if member != nil && member.Type == geojson.GeometryCollection {
				pending = append(pending, pair{member, out})
			}
		}
	}
	return root
}

// Simplifies a single geometry. Collections come back as shells to be filled by the caller.
func simplifyMember(g *geojson.Geometry, tolerance float64) *geojson.Geometry {
	if g == nil {
		return nil
	}

	out := *g
	switch g.Type {
	case geojson.GeometryLineString:
		out.LineString = Line(g.LineString, tolerance)
	case geojson.GeometryMultiLineString:
		out.MultiLineString = make([][][]float64, len(g.MultiLineString))
		for i, line := range g.MultiLineString {
			out.MultiLineString[i] = Line(line, tolerance)
		}
	case geojson.GeometryPolygon:
		out.Polygon = rings(g.Polygon, tolerance)
	case geojson.GeometryMultiPolygon:
		out.MultiPolygon = make([][][][]float64, len(g.MultiPolygon))
		for i, polygon := range g.MultiPolygon {
			out.MultiPolygon[i] = rings(polygon, tolerance)
		}
	case geojson.GeometryCollection:
		out.Geometries = make([]*geojson.Geometry, len(g.Geometries))
	}
	return &out
}

func rings(polygon [][][]float64, tolerance float64) [][][]float64 {
	if polygon == nil {
		return nil
	}
	out := make([][][]float64, len(polygon))
	for i, ring := range polygon {
		out[i] = Ring(ring, tolerance)
	}
	return out
}

// Line simplifies an open sequence of positions. Both end points are always kept.
func Line(positions [][]float64, tolerance float64) [][]float64 {
	if len(positions) <= 2 || tolerance <= 0 || !planar(positions) {
		return positions
	}
	return douglasPeucker(positions, tolerance)
}

// Ring simplifies a closed ring and closes it again. Rings that are not closed, or that would
// end up with less than 4 positions, are returned unchanged.
func Ring(ring [][]float64, tolerance float64) [][]float64 {
	n := len(ring)
	if n <= minRingPositions || tolerance <= 0 || !planar(ring) || !samePosition(ring[0], ring[n-1]) {
		return ring
	}

	simplified := douglasPeucker(ring[:n-1], tolerance)
	if len(simplified)+1 < minRingPositions {
		return ring
	}
	return append(simplified, ring[n-1])
}

// Iterative Douglas-Peucker: spans still to examine sit on a stack, kept positions are flagged.
func douglasPeucker(positions [][]float64, tolerance float64) [][]float64 {
	n := len(positions)
	if n <= 2 {
		return positions
	}

	keep := make([]bool, n)
	keep[0], keep[n-1] = true, true
	kept := 2

	stack := [][2]int{{0, n - 1}}
	for len(stack) > 0 {
		span := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		first, last := span[0], span[1]
		if last-first < 2 {
			continue
		}

		maxDistance, index := 0.0, 0
		for i := first + 1; i < last; i++ {
			d := perpendicularDistance(positions[i], positions[first], positions[last])
			if d > maxDistance {
				maxDistance, index = d, i
			}
		}

		if maxDistance > tolerance {
			keep[index] = true
			kept++
			stack = append(stack, [2]int{first, index}, [2]int{index, last})
		}
	}

	out := make([][]float64, 0, kept)
	for i, p := range positions {
		if keep[i] {
			out = append(out, p)
		}
	}
	return out
}

// Distance from p to the line through a and b, or to a when a and b coincide
func perpendicularDistance(p, a, b []float64) float64 {
	dx := b[0] - a[0]
	dy := b[1] - a[1]

	length := math.Hypot(dx, dy)
	if length == 0 {
		return math.Hypot(p[0]-a[0], p[1]-a[1])
	}
	return math.Abs(dy*p[0]-dx*p[1]+b[0]*a[1]-b[1]*a[0]) / length
}

func planar(positions [][]float64) bool {
	for _, p := range positions {
		if len(p) < 2 {
			return false
		}
	}
	return true
}

func samePosition(a, b []float64) bool {
	return a[0] == b[0] && a[1] == b[1]
}
