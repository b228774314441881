package transform

import (
	stderrors "errors"
	"fmt"
	"sync"

	"github.com/ecopia-map/geo_reprojector/internal/converters"
	"github.com/ecopia-map/geo_reprojector/internal/errors"
	"github.com/ecopia-map/geo_reprojector/internal/geometry"
	"github.com/ecopia-map/geo_reprojector/internal/metrics"
	"github.com/golang/glog"
)

var errNonFinite = stderrors.New("engine returned a non finite coordinate")

// Session binds a pair of coordinate system identifiers to a lazily built engine.
//
// The engine is built on the first conversion and reused for every following one. A failed build
// is remembered as well and reported again without retrying until SetSystems is called.
// Conversions may run from several goroutines only if the engine itself allows it; SetSystems
// and Close must not run concurrently with conversions.
type Session struct {
	factory converters.EngineFactory
	source  string
	target  string
	current *generation
}

// One engine build for a given (source, target) pair
type generation struct {
	once   sync.Once
	engine converters.Engine
	err    error
}

func NewSession(factory converters.EngineFactory, source string, target string) *Session {
	return &Session{
		factory: factory,
		source:  source,
		target:  target,
		current: &generation{},
	}
}

func (s *Session) Source() string {
	return s.source
}

func (s *Session) Target() string {
	return s.target
}

// Returns the cached engine, building it on first use. A failed build is cached too, every call
// gets its own copy of the error.
func (s *Session) Engine() (converters.Engine, error) {
	g := s.current
	g.once.Do(func() {
		g.engine, g.err = s.build()
	})
	if g.err != nil {
		return nil, errors.Clone(g.err)
	}
	return g.engine, nil
}

func (s *Session) build() (converters.Engine, error) {
	if s.factory == nil {
		metrics.EngineConstructions.WithLabelValues("failure").Inc()
		return nil, errors.UnsupportedCoordinateSystem(s.source, s.target, fmt.Errorf("no engine factory configured"))
	}

	engine, err := s.factory.NewEngine(s.source, s.target)
	if err != nil {
		metrics.EngineConstructions.WithLabelValues("failure").Inc()
		glog.V(1).Infof("cannot build engine %s -> %s: %v", s.source, s.target, err)
		return nil, errors.UnsupportedCoordinateSystem(s.source, s.target, err)
	}

	metrics.EngineConstructions.WithLabelValues("success").Inc()
	glog.V(1).Infof("engine built for %s -> %s", s.source, s.target)
	return engine, nil
}

// Converts a single coordinate
func (s *Session) ConvertPoint(coord geometry.Coordinate) (geometry.Coordinate, error) {
	engine, err := s.Engine()
	if err != nil {
		return geometry.Coordinate{}, err
	}

	converted, err := engine.Convert(coord)
	if err != nil {
		return geometry.Coordinate{}, errors.Transformation(s.source, s.target, 0, err)
	}
	if !converted.IsFinite() {
		return geometry.Coordinate{}, errors.Transformation(s.source, s.target, 0, errNonFinite)
	}

	metrics.CoordinatesConverted.Inc()
	return converted, nil
}

// Converts coords in place through the engine batch path. On failure the error carries the offset
// of the first rejected coordinate and the content of coords must not be used.
func (s *Session) ConvertArray(coords []geometry.Coordinate) error {
	if len(coords) == 0 {
		return nil
	}

	engine, err := s.Engine()
	if err != nil {
		return err
	}

	if err := engine.ConvertArray(coords); err != nil {
		offset := errors.NoOffset
		var offsetErr *converters.OffsetError
		if stderrors.As(err, &offsetErr) {
			offset = offsetErr.Offset
			err = offsetErr.Err
		}
		return errors.Transformation(s.source, s.target, offset, err)
	}

	for i := range coords {
		if !coords[i].IsFinite() {
			return errors.Transformation(s.source, s.target, i, errNonFinite)
		}
	}

	metrics.CoordinatesConverted.Add(float64(len(coords)))
	return nil
}

// Changes the coordinate systems of the session. If either identifier differs from the current
// one the cached engine is closed and the next conversion builds a new one.
func (s *Session) SetSystems(source string, target string) {
	if source == s.source && target == s.target {
		return
	}

	glog.V(2).Infof("session systems changed from %s -> %s to %s -> %s", s.source, s.target, source, target)
	metrics.SessionInvalidations.Inc()

	s.Close()
	s.source = source
	s.target = target
}

// Releases the cached engine, if any. The session stays usable and builds a new engine on demand.
func (s *Session) Close() {
	old := s.current
	s.current = &generation{}

	// marks the old generation as done so a late Engine call cannot build on it
	old.once.Do(func() {})
	if old.engine != nil {
		old.engine.Close()
	}
}
