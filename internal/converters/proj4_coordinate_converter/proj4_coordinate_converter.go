package proj4_coordinate_converter

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/ecopia-map/geo_reprojector/internal/converters"
	"github.com/ecopia-map/geo_reprojector/internal/geometry"
	"github.com/golang/glog"
	proj "github.com/xeonx/proj4"
)

const (
	deg2Rad = math.Pi / 180.0
	rad2Deg = 180.0 / math.Pi
)

var errNonFinite = errors.New("transformation produced a non finite value")

// Engine factory backed by the PROJ library. Identifiers are either EPSG codes in any form
// accepted by converters.ParseSrid or proj.4 definition strings starting with "+".
type Proj4EngineFactory struct{}

func NewProj4EngineFactory() converters.EngineFactory {
	return &Proj4EngineFactory{}
}

func (f *Proj4EngineFactory) NewEngine(source string, target string) (converters.Engine, error) {
	src, err := initProjection(source)
	if err != nil {
		return nil, err
	}
	dst, err := initProjection(target)
	if err != nil {
		src.Close()
		return nil, err
	}

	glog.V(1).Infof("proj4 engine created for %s -> %s", source, target)

	return &proj4Engine{
		src:          src,
		dst:          dst,
		srcIsLatLong: src.IsLatLong(),
		dstIsLatLong: dst.IsLatLong(),
	}, nil
}

func (f *Proj4EngineFactory) KnownSystems() []string {
	codes := knownEpsgCodes()
	systems := make([]string, len(codes))
	for i, code := range codes {
		systems[i] = converters.FormatSrid(code)
	}
	return systems
}

// Resolves an identifier to a proj.4 definition and initializes the projection
func initProjection(identifier string) (*proj.Proj, error) {
	definition, err := resolveDefinition(identifier)
	if err != nil {
		return nil, err
	}
	p, err := proj.InitPlus(definition)
	if err != nil {
		return nil, fmt.Errorf("invalid projection %q: %w", definition, err)
	}
	return p, nil
}

func resolveDefinition(identifier string) (string, error) {
	id := strings.TrimSpace(identifier)
	if strings.HasPrefix(id, "+") {
		return id, nil
	}

	srid, ok := converters.ParseSrid(id)
	if !ok {
		return "", fmt.Errorf("malformed coordinate system identifier %q", identifier)
	}
	if definition, ok := getEpsgDatabase()[srid]; ok {
		return definition, nil
	}
	// let PROJ look the code up in its own init files
	return fmt.Sprintf("+init=epsg:%d", srid), nil
}

type proj4Engine struct {
	src          *proj.Proj
	dst          *proj.Proj
	srcIsLatLong bool
	dstIsLatLong bool

	// scratch arrays handed to PROJ, reused across batches
	x []float64
	y []float64
	z []float64
}

func (e *proj4Engine) Convert(coord geometry.Coordinate) (geometry.Coordinate, error) {
	single := [1]geometry.Coordinate{coord}
	if err := e.ConvertArray(single[:]); err != nil {
		var offsetErr *converters.OffsetError
		if errors.As(err, &offsetErr) {
			return geometry.Coordinate{}, offsetErr.Err
		}
		return geometry.Coordinate{}, err
	}
	return single[0], nil
}

func (e *proj4Engine) ConvertArray(coords []geometry.Coordinate) error {
	n := len(coords)
	if n == 0 {
		return nil
	}
	e.ensureScratch(n)
	x, y, z := e.x[:n], e.y[:n], e.z[:n]

	for i, c := range coords {
		x[i], y[i], z[i] = c.X, c.Y, 0
		if e.srcIsLatLong {
			x[i] *= deg2Rad
			y[i] *= deg2Rad
		}
	}

	if err := proj.TransformRaw(e.src, e.dst, x, y, z); err != nil {
		return converters.NewOffsetError(e.locateFailure(coords), err)
	}

	for i := range coords {
		if !isFinite(x[i]) || !isFinite(y[i]) {
			return converters.NewOffsetError(i, errNonFinite)
		}
		if e.dstIsLatLong {
			x[i] *= rad2Deg
			y[i] *= rad2Deg
		}
		coords[i] = geometry.Coordinate{X: x[i], Y: y[i]}
	}

	return nil
}

// PROJ reports a single error for the whole batch; replay coordinates one by one to find the
// first offending offset. Only runs on the failure path.
func (e *proj4Engine) locateFailure(coords []geometry.Coordinate) int {
	return locateFailure(coords, e.srcIsLatLong, func(x, y, z []float64) error {
		return proj.TransformRaw(e.src, e.dst, x, y, z)
	})
}

// Offset of the first coordinate transform rejects or maps to a non finite value, or
// converters.NoOffset when no single coordinate reproduces the failure
func locateFailure(coords []geometry.Coordinate, srcIsLatLong bool, transform func(x, y, z []float64) error) int {
	for i, c := range coords {
		x, y, z := []float64{c.X}, []float64{c.Y}, []float64{0}
		if srcIsLatLong {
			x[0] *= deg2Rad
			y[0] *= deg2Rad
		}
		if err := transform(x, y, z); err != nil {
			return i
		}
		if !isFinite(x[0]) || !isFinite(y[0]) {
			return i
		}
	}
	return converters.NoOffset
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (e *proj4Engine) ensureScratch(n int) {
	if cap(e.x) < n {
		e.x = make([]float64, n)
		e.y = make([]float64, n)
		e.z = make([]float64, n)
	}
}

func (e *proj4Engine) Close() {
	if e.src != nil {
		e.src.Close()
		e.src = nil
	}
	if e.dst != nil {
		e.dst.Close()
		e.dst = nil
	}
}
