package converters

import (
	"github.com/ecopia-map/geo_reprojector/internal/geometry"
)

// Handle to a coordinate transformation between a fixed pair of coordinate reference systems.
// Implementations are not required to be safe for concurrent use.
type Engine interface {
	// Transforms a single coordinate
	Convert(coord geometry.Coordinate) (geometry.Coordinate, error)
	// Transforms coords in place, in order. On failure the returned error is an *OffsetError
	// locating the first coordinate the engine rejected and the content of coords is undefined.
	ConvertArray(coords []geometry.Coordinate) error
	// Releases the resources held by the engine
	Close()
}

// Builds engines for a pair of coordinate system identifiers
type EngineFactory interface {
	NewEngine(source string, target string) (Engine, error)
	// Identifiers the factory knows about, for listing purposes
	KnownSystems() []string
}

// Post-processes converted coordinates
type CoordinateCorrector interface {
	CorrectCoordinate(coord geometry.Coordinate) geometry.Coordinate
}
