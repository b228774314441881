package projector

import (
	"github.com/ecopia-map/geo_reprojector/internal/geometry"
	geojson "github.com/paulmach/go.geojson"
)

// Grows box with every position of g, walking collections without recursion
func extendGeometryBox(box *geometry.BoundingBox, g *geojson.Geometry) {
	pending := []*geojson.Geometry{g}
	for len(pending) > 0 {
		g = pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		if g == nil {
			continue
		}
		if g.Type == geojson.GeometryCollection {
			pending = append(pending, g.Geometries...)
			continue
		}
		extendSimpleBox(box, g)
	}
}

func extendSimpleBox(box *geometry.BoundingBox, g *geojson.Geometry) {
	switch g.Type {
	case geojson.GeometryPoint:
		box.ExtendPosition(g.Point)
	case geojson.GeometryMultiPoint:
		box.ExtendPositions(g.MultiPoint)
	case geojson.GeometryLineString:
		box.ExtendPositions(g.LineString)
	case geojson.GeometryMultiLineString:
		for _, line := range g.MultiLineString {
			box.ExtendPositions(line)
		}
	case geojson.GeometryPolygon:
		for _, ring := range g.Polygon {
			box.ExtendPositions(ring)
		}
	case geojson.GeometryMultiPolygon:
		for _, polygon := range g.MultiPolygon {
			for _, ring := range polygon {
				box.ExtendPositions(ring)
			}
		}
	}
}

// Bounding box of all the given geometries in GeoJSON bbox order, nil when they have no positions
func GeometryBounds(geometries ...*geojson.Geometry) []float64 {
	box := geometry.NewEmptyBoundingBox()
	for _, g := range geometries {
		extendGeometryBox(box, g)
	}
	return box.Slice()
}

func mergeBox(dst *geometry.BoundingBox, src *geometry.BoundingBox) {
	if src.IsEmpty() {
		return
	}
	dst.ExtendPosition([]float64{src.Xmin, src.Ymin})
	dst.ExtendPosition([]float64{src.Xmax, src.Ymax})
}
