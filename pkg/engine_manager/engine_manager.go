package engine_manager

import (
	"github.com/ecopia-map/geo_reprojector/internal/converters"
	"github.com/ecopia-map/geo_reprojector/internal/pool"
)

type EngineManager interface {
	GetEngineFactory() converters.EngineFactory
	// Corrector applied to converted coordinates, nil for none
	GetCoordinateCorrector() converters.CoordinateCorrector
	// Pool for one pipeline call or one worker, nil when buffer reuse is disabled
	GetBufferPool() *pool.Pool
}
