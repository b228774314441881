package io

import (
	"bytes"
	"fmt"

	geojson "github.com/paulmach/go.geojson"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkt"
)

// Writes one WKT geometry per line. Features without geometry produce "GEOMETRYCOLLECTION EMPTY"
// so line numbers match feature indexes.
type WKTEncoder struct{}

func NewWKTEncoder() *WKTEncoder {
	return &WKTEncoder{}
}

func (e *WKTEncoder) Encode(doc *Document) ([]byte, error) {
	var geometries []*geojson.Geometry
	switch doc.Kind {
	case DocumentFeatureCollection:
		for _, f := range doc.Collection.Features {
			geometries = append(geometries, f.Geometry)
		}
	case DocumentFeature:
		geometries = append(geometries, doc.Feature.Geometry)
	case DocumentGeometry:
		geometries = append(geometries, doc.Geometry)
	default:
		return nil, fmt.Errorf("cannot encode document of kind %s", doc.Kind)
	}

	var buf bytes.Buffer
	for i, g := range geometries {
		text, err := MarshalWKT(g)
		if err != nil {
			return nil, fmt.Errorf("geometry %d: %w", i, err)
		}
		buf.WriteString(text)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

func (e *WKTEncoder) Extension() string {
	return ".wkt"
}

// Encodes a single geometry as WKT. A nil geometry is encoded as an empty collection.
func MarshalWKT(g *geojson.Geometry) (string, error) {
	t, err := ToGeom(g)
	if err != nil {
		return "", err
	}
	return wkt.Marshal(t)
}

// Converts a GeoJSON geometry into its go-geom counterpart
func ToGeom(g *geojson.Geometry) (geom.T, error) {
	if g == nil {
		return geom.NewGeometryCollection(), nil
	}

	switch g.Type {
	case geojson.GeometryPoint:
		layout := layoutOf(g.Point)
		return geom.NewPoint(layout).SetCoords(toCoord(g.Point, layout))
	case geojson.GeometryMultiPoint:
		layout := layoutOfSequence(g.MultiPoint)
		return geom.NewMultiPoint(layout).SetCoords(toCoords(g.MultiPoint, layout))
	case geojson.GeometryLineString:
		layout := layoutOfSequence(g.LineString)
		return geom.NewLineString(layout).SetCoords(toCoords(g.LineString, layout))
	case geojson.GeometryMultiLineString:
		layout := layoutOfRings(g.MultiLineString)
		return geom.NewMultiLineString(layout).SetCoords(toRings(g.MultiLineString, layout))
	case geojson.GeometryPolygon:
		layout := layoutOfRings(g.Polygon)
		return geom.NewPolygon(layout).SetCoords(toRings(g.Polygon, layout))
	case geojson.GeometryMultiPolygon:
		layout := geom.XY
		if len(g.MultiPolygon) > 0 {
			layout = layoutOfRings(g.MultiPolygon[0])
		}
		polygons := make([][][]geom.Coord, len(g.MultiPolygon))
		for i, p := range g.MultiPolygon {
			polygons[i] = toRings(p, layout)
		}
		return geom.NewMultiPolygon(layout).SetCoords(polygons)
	case geojson.GeometryCollection:
		return toGeomCollection(g)
	}
	return nil, fmt.Errorf("unsupported geometry type %q", g.Type)
}

// Walks nested collections with an explicit stack
func toGeomCollection(root *geojson.Geometry) (geom.T, error) {
	type frame struct {
		src  *geojson.Geometry
		dst  *geom.GeometryCollection
		next int
	}

	result := geom.NewGeometryCollection()
	stack := []*frame{{src: root, dst: result}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next == len(top.src.Geometries) {
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				if err := stack[len(stack)-1].dst.Push(top.dst); err != nil {
					return nil, err
				}
			}
			continue
		}

		member := top.src.Geometries[top.next]
		top.next++
		if member != nil && member.Type == geojson.GeometryCollection {
			stack = append(stack, &frame{src: member, dst: geom.NewGeometryCollection()})
			continue
		}

		t, err := ToGeom(member)
		if err != nil {
			return nil, err
		}
		if err := top.dst.Push(t); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Positions with elevation map to XYZ, with elevation and measure to XYZM
func layoutOf(position []float64) geom.Layout {
	switch {
	case len(position) >= 4:
		return geom.XYZM
	case len(position) == 3:
		return geom.XYZ
	}
	return geom.XY
}

func layoutOfSequence(positions [][]float64) geom.Layout {
	if len(positions) == 0 {
		return geom.XY
	}
	return layoutOf(positions[0])
}

func layoutOfRings(rings [][][]float64) geom.Layout {
	if len(rings) == 0 {
		return geom.XY
	}
	return layoutOfSequence(rings[0])
}

// Fits a position to the stride of layout, padding missing members with zero
func toCoord(position []float64, layout geom.Layout) geom.Coord {
	coord := make(geom.Coord, layout.Stride())
	copy(coord, position)
	return coord
}

func toCoords(positions [][]float64, layout geom.Layout) []geom.Coord {
	coords := make([]geom.Coord, len(positions))
	for i, p := range positions {
		coords[i] = toCoord(p, layout)
	}
	return coords
}

func toRings(rings [][][]float64, layout geom.Layout) [][]geom.Coord {
	out := make([][]geom.Coord, len(rings))
	for i, r := range rings {
		out[i] = toCoords(r, layout)
	}
	return out
}
