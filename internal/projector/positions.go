package projector

import (
	"github.com/ecopia-map/geo_reprojector/internal/errors"
	"github.com/ecopia-map/geo_reprojector/internal/geometry"
	"github.com/ecopia-map/geo_reprojector/internal/pool"
)

const (
	minLineCoordinates = 2
	minPolygonRings    = 1
)

func (c *Converter) convertPoint(position []float64) ([]float64, error) {
	coord, ok := geometry.FromPosition(position)
	if !ok || !coord.IsFinite() {
		return nil, errors.InvalidCoordinate("", 0, position)
	}

	converted, err := c.session.ConvertPoint(coord)
	if err != nil {
		return nil, err
	}
	if c.corrector != nil {
		converted = c.corrector.CorrectCoordinate(converted)
	}

	out := make([]float64, len(position))
	converted.WritePosition(out, position)
	return out, nil
}

func (c *Converter) convertLine(line [][]float64) ([][]float64, error) {
	if len(line) < minLineCoordinates {
		return nil, errors.EmptyGeometry("", len(line), minLineCoordinates)
	}
	return c.convertPositions(line, pool.KindLine, false)
}

// A ring closed on input is closed on output, bit for bit
func (c *Converter) convertRing(ring [][]float64) ([][]float64, error) {
	if len(ring) < minLineCoordinates {
		return nil, errors.EmptyGeometry("", len(ring), minLineCoordinates)
	}
	return c.convertPositions(ring, pool.KindLine, isClosed(ring))
}

func (c *Converter) convertLines(lines [][][]float64) ([][][]float64, error) {
	out := make([][][]float64, len(lines))
	for i, line := range lines {
		converted, err := c.convertLine(line)
		if err != nil {
			return nil, errors.WithPath(err, errors.Segment("lines", i))
		}
		out[i] = converted
	}
	return out, nil
}

func (c *Converter) convertPolygon(rings [][][]float64) ([][][]float64, error) {
	if len(rings) < minPolygonRings {
		return nil, errors.EmptyGeometry("", 0, minPolygonRings)
	}

	out := make([][][]float64, len(rings))
	for i, ring := range rings {
		converted, err := c.convertRing(ring)
		if err != nil {
			return nil, errors.WithPath(err, errors.Segment("rings", i))
		}
		out[i] = converted
	}
	return out, nil
}

func (c *Converter) convertPolygons(polygons [][][][]float64) ([][][][]float64, error) {
	out := make([][][][]float64, len(polygons))
	for i, polygon := range polygons {
		converted, err := c.convertPolygon(polygon)
		if err != nil {
			return nil, errors.WithPath(err, errors.Segment("polygons", i))
		}
		out[i] = converted
	}
	return out, nil
}

// Converts a sequence of positions with a single engine batch call through a pooled buffer.
// The output positions share one backing array.
func (c *Converter) convertPositions(positions [][]float64, kind pool.Kind, closeRing bool) ([][]float64, error) {
	n := len(positions)
	if n == 0 {
		return [][]float64{}, nil
	}

	buf := c.pool.Acquire(kind, n)
	defer func() {
		c.pool.Release(kind, buf)
	}()

	size := 0
	for i, p := range positions {
		coord, ok := geometry.FromPosition(p)
		if !ok || !coord.IsFinite() {
			return nil, errors.InvalidCoordinate("", i, p)
		}
		buf = append(buf, coord)
		size += len(p)
	}

	if err := c.session.ConvertArray(buf); err != nil {
		return nil, err
	}

	if c.corrector != nil {
		for i := range buf {
			buf[i] = c.corrector.CorrectCoordinate(buf[i])
		}
	}
	if closeRing {
		buf[n-1] = buf[0]
	}

	backing := make([]float64, size)
	out := make([][]float64, n)
	offset := 0
	for i, p := range positions {
		end := offset + len(p)
		dst := backing[offset:end:end]
		buf[i].WritePosition(dst, p)
		out[i] = dst
		offset = end
	}
	return out, nil
}

func isClosed(ring [][]float64) bool {
	first, ok := geometry.FromPosition(ring[0])
	if !ok {
		return false
	}
	last, ok := geometry.FromPosition(ring[len(ring)-1])
	return ok && first.Equal(last)
}
