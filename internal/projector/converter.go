package projector

import (
	"github.com/ecopia-map/geo_reprojector/internal/converters"
	"github.com/ecopia-map/geo_reprojector/internal/errors"
	"github.com/ecopia-map/geo_reprojector/internal/geometry"
	"github.com/ecopia-map/geo_reprojector/internal/metrics"
	"github.com/ecopia-map/geo_reprojector/internal/pool"
	"github.com/ecopia-map/geo_reprojector/internal/transform"
	"github.com/golang/glog"
	geojson "github.com/paulmach/go.geojson"
)

// Converter rebuilds geometries in the target system of its session.
//
// The output has the same variant, member order, ring order and coordinate counts as the input;
// only coordinate values change. Extra position members (elevation, measure) are copied as they
// are. Input geometries are never modified. A Converter is not safe for concurrent use unless
// both its session engine and its pool are.
type Converter struct {
	session   *transform.Session
	pool      *pool.Pool
	corrector converters.CoordinateCorrector
}

// Builds a converter. buffers may be nil to disable buffer reuse, corrector may be nil.
func NewConverter(session *transform.Session, buffers *pool.Pool, corrector converters.CoordinateCorrector) *Converter {
	return &Converter{
		session:   session,
		pool:      buffers,
		corrector: corrector,
	}
}

func (c *Converter) Session() *transform.Session {
	return c.session
}

// Converts g into a new geometry. Conversion is all or nothing: on error no partial result is
// returned.
func (c *Converter) ConvertGeometry(g *geojson.Geometry) (*geojson.Geometry, error) {
	var out *geojson.Geometry
	var err error

	if g != nil && g.Type == geojson.GeometryCollection {
		out, err = c.convertCollection(g)
	} else {
		out, err = c.convertSimple(g)
	}

	if err != nil {
		metrics.ConversionErrors.WithLabelValues(string(errors.KindOf(err))).Inc()
		if glog.V(2) {
			glog.Infof("geometry conversion failed: %v", err)
		}
		return nil, err
	}

	metrics.GeometriesConverted.WithLabelValues(string(g.Type)).Inc()
	return out, nil
}

// Pending GeometryCollection on the work stack
type collectionFrame struct {
	src  *geojson.Geometry
	dst  *geojson.Geometry
	box  *geometry.BoundingBox
	next int
}

// Converts nested collections with an explicit stack, so depth only costs heap memory.
func (c *Converter) convertCollection(root *geojson.Geometry) (*geojson.Geometry, error) {
	stack := []collectionFrame{newCollectionFrame(root)}
	var result *geojson.Geometry

	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		if top.next == len(top.src.Geometries) {
			if top.src.BoundingBox != nil {
				top.dst.BoundingBox = top.box.Slice()
			}
			done := *top
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				result = done.dst
			} else {
				mergeBox(stack[len(stack)-1].box, done.box)
			}
			continue
		}

		index := top.next
		top.next++
		member := top.src.Geometries[index]

		if member != nil && member.Type == geojson.GeometryCollection {
			frame := newCollectionFrame(member)
			top.dst.Geometries[index] = frame.dst
			stack = append(stack, frame)
			continue
		}

		converted, err := c.convertSimple(member)
		if err != nil {
			return nil, errors.WithPath(err, stackPath(stack)...)
		}
		top.dst.Geometries[index] = converted
		extendGeometryBox(top.box, converted)
	}

	return result, nil
}

func newCollectionFrame(src *geojson.Geometry) collectionFrame {
	dst := geojson.NewCollectionGeometry(make([]*geojson.Geometry, len(src.Geometries))...)
	return collectionFrame{
		src: src,
		dst: dst,
		box: geometry.NewEmptyBoundingBox(),
	}
}

// Path of the member currently converted by each frame of the stack
func stackPath(stack []collectionFrame) []string {
	path := make([]string, len(stack))
	for i := range stack {
		path[i] = errors.Segment("geometries", stack[i].next-1)
	}
	return path
}

// Converts every variant except GeometryCollection
func (c *Converter) convertSimple(g *geojson.Geometry) (*geojson.Geometry, error) {
	if g == nil {
		return nil, errors.InvalidGeometryType("")
	}

	var out *geojson.Geometry
	var err error

	switch g.Type {
	case geojson.GeometryPoint:
		var p []float64
		if p, err = c.convertPoint(g.Point); err == nil {
			out = geojson.NewPointGeometry(p)
		}
	case geojson.GeometryMultiPoint:
		var points [][]float64
		if points, err = c.convertPositions(g.MultiPoint, pool.KindPoint, false); err == nil {
			out = geojson.NewMultiPointGeometry(points...)
		}
	case geojson.GeometryLineString:
		var line [][]float64
		if line, err = c.convertLine(g.LineString); err == nil {
			out = geojson.NewLineStringGeometry(line)
		}
	case geojson.GeometryMultiLineString:
		var lines [][][]float64
		if lines, err = c.convertLines(g.MultiLineString); err == nil {
			out = geojson.NewMultiLineStringGeometry(lines...)
		}
	case geojson.GeometryPolygon:
		var rings [][][]float64
		if rings, err = c.convertPolygon(g.Polygon); err == nil {
			out = geojson.NewPolygonGeometry(rings)
		}
	case geojson.GeometryMultiPolygon:
		var polygons [][][][]float64
		if polygons, err = c.convertPolygons(g.MultiPolygon); err == nil {
			out = geojson.NewMultiPolygonGeometry(polygons...)
		}
	default:
		return nil, errors.InvalidGeometryType(string(g.Type))
	}

	if err != nil {
		return nil, errors.WithGeometryType(err, string(g.Type))
	}

	if g.BoundingBox != nil {
		box := geometry.NewEmptyBoundingBox()
		extendGeometryBox(box, out)
		out.BoundingBox = box.Slice()
	}
	return out, nil
}
