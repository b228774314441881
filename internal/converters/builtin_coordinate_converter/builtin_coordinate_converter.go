package builtin_coordinate_converter

import (
	"fmt"
	"math"

	"github.com/ecopia-map/geo_reprojector/internal/converters"
	"github.com/ecopia-map/geo_reprojector/internal/geometry"
)

// Engine factory backed by closed-form projections implemented in Go. It supports a small set
// of reference systems (EPSG:4326, EPSG:3857 and EPSG:3395) and needs no native library.
type BuiltinEngineFactory struct{}

func NewBuiltinEngineFactory() converters.EngineFactory {
	return &BuiltinEngineFactory{}
}

func (f *BuiltinEngineFactory) NewEngine(source string, target string) (converters.Engine, error) {
	src, err := lookupProjection(source)
	if err != nil {
		return nil, err
	}
	dst, err := lookupProjection(target)
	if err != nil {
		return nil, err
	}

	return &builtinEngine{
		source:   src,
		target:   dst,
		identity: src.srid() == dst.srid(),
	}, nil
}

func (f *BuiltinEngineFactory) KnownSystems() []string {
	return []string{
		converters.FormatSrid(converters.Wgs84Srid),
		converters.FormatSrid(converters.WebMercatorSrid),
		converters.FormatSrid(converters.WorldMercatorSrid),
	}
}

func lookupProjection(identifier string) (projection, error) {
	srid, ok := converters.ParseSrid(identifier)
	if !ok {
		return nil, fmt.Errorf("malformed coordinate system identifier %q", identifier)
	}
	p, ok := projectionForSrid(srid)
	if !ok {
		return nil, fmt.Errorf("coordinate system %s is not supported by the builtin engine", converters.FormatSrid(srid))
	}
	return p, nil
}

// Converts through WGS84 longitude/latitude
type builtinEngine struct {
	source   projection
	target   projection
	identity bool
}

func (e *builtinEngine) Convert(coord geometry.Coordinate) (geometry.Coordinate, error) {
	if e.identity {
		return coord, nil
	}

	lon, lat, err := e.source.toWGS84(coord.X, coord.Y)
	if err != nil {
		return geometry.Coordinate{}, err
	}
	x, y, err := e.target.fromWGS84(lon, lat)
	if err != nil {
		return geometry.Coordinate{}, err
	}
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return geometry.Coordinate{}, fmt.Errorf("%w: non finite result for (%v, %v)", errOutOfDomain, coord.X, coord.Y)
	}
	return geometry.Coordinate{X: x, Y: y}, nil
}

func (e *builtinEngine) ConvertArray(coords []geometry.Coordinate) error {
	if e.identity {
		return nil
	}

	for i, c := range coords {
		converted, err := e.Convert(c)
		if err != nil {
			return converters.NewOffsetError(i, err)
		}
		coords[i] = converted
	}
	return nil
}

func (e *builtinEngine) Close() {}
