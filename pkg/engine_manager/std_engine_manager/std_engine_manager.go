package std_engine_manager

import (
	"github.com/ecopia-map/geo_reprojector/internal/converters"
	"github.com/ecopia-map/geo_reprojector/internal/converters/builtin_coordinate_converter"
	"github.com/ecopia-map/geo_reprojector/internal/converters/precision_corrector"
	"github.com/ecopia-map/geo_reprojector/internal/converters/proj4_coordinate_converter"
	"github.com/ecopia-map/geo_reprojector/internal/pool"
	"github.com/ecopia-map/geo_reprojector/internal/reproject"
	"github.com/ecopia-map/geo_reprojector/pkg/engine_manager"
)

type StandardEngineManager struct {
	options    *reproject.ReprojectOptions
	factory    converters.EngineFactory
	corrector  converters.CoordinateCorrector
	sharedPool *pool.Pool
}

func NewEngineManager(options *reproject.ReprojectOptions) engine_manager.EngineManager {
	var factory converters.EngineFactory
	switch options.Engine {
	case reproject.EngineBuiltin:
		factory = builtin_coordinate_converter.NewBuiltinEngineFactory()
	default:
		factory = proj4_coordinate_converter.NewProj4EngineFactory()
	}

	var corrector converters.CoordinateCorrector
	if options.Precision >= 0 {
		corrector = precision_corrector.NewDecimalPrecisionCorrector(int32(options.Precision))
	}

	var sharedPool *pool.Pool
	if options.PoolMode == reproject.PoolShared {
		sharedPool = pool.NewSharedPool(options.PoolInitialCapacity)
	}

	return &StandardEngineManager{
		options:    options,
		factory:    factory,
		corrector:  corrector,
		sharedPool: sharedPool,
	}
}

func (m *StandardEngineManager) GetEngineFactory() converters.EngineFactory {
	return m.factory
}

func (m *StandardEngineManager) GetCoordinateCorrector() converters.CoordinateCorrector {
	return m.corrector
}

func (m *StandardEngineManager) GetBufferPool() *pool.Pool {
	switch m.options.PoolMode {
	case reproject.PoolShared:
		return m.sharedPool
	case reproject.PoolOff:
		return nil
	default:
		return pool.NewPool(m.options.PoolInitialCapacity)
	}
}
