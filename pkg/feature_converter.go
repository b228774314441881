package pkg

import (
	"fmt"

	"github.com/ecopia-map/geo_reprojector/internal/converters"
	"github.com/ecopia-map/geo_reprojector/internal/errors"
	"github.com/ecopia-map/geo_reprojector/internal/projector"
	"github.com/ecopia-map/geo_reprojector/internal/simplify"
	geojson "github.com/paulmach/go.geojson"
)

// Converts the features of one pipeline call, or of one worker in parallel mode.
// Owns its session: not safe for concurrent use.
type featureConverter struct {
	converter *projector.Converter
	tolerance float64
}

func (c *featureConverter) convertGeometry(g *geojson.Geometry) (*geojson.Geometry, error) {
	out, err := c.converter.ConvertGeometry(simplify.Geometry(g, c.tolerance))
	if err != nil {
		return nil, err
	}
	if g.CRS != nil {
		out.CRS = namedCRS(c.converter.Session().Target())
	}
	return out, nil
}

// Returns a shallow copy of feature with its geometry converted. Id and properties are shared
// with the input feature.
func (c *featureConverter) ConvertFeature(feature *geojson.Feature) (*geojson.Feature, error) {
	if feature == nil {
		return nil, errors.New(errors.PhasePipeline, errors.KindInvalidGeometryType).
			Detail("missing feature").
			Build()
	}

	out := *feature
	if feature.Geometry != nil {
		converted, err := c.convertGeometry(feature.Geometry)
		if err != nil {
			return nil, err
		}
		out.Geometry = converted
	}

	if feature.BoundingBox != nil {
		out.BoundingBox = projector.GeometryBounds(out.Geometry)
	}
	if feature.CRS != nil {
		out.CRS = namedCRS(c.converter.Session().Target())
	}
	return &out, nil
}

func (c *featureConverter) close() {
	c.converter.Session().Close()
}

// Legacy GeoJSON named crs member for a coordinate system identifier
func namedCRS(identifier string) map[string]interface{} {
	name := identifier
	if srid, ok := converters.ParseSrid(identifier); ok {
		name = fmt.Sprintf("urn:ogc:def:crs:EPSG::%d", srid)
	}
	return map[string]interface{}{
		"type": "name",
		"properties": map[string]interface{}{
			"name": name,
		},
	}
}
