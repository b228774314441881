package pkg

import (
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ecopia-map/geo_reprojector/internal/errors"
	"github.com/ecopia-map/geo_reprojector/internal/io"
	"github.com/ecopia-map/geo_reprojector/internal/metrics"
	"github.com/ecopia-map/geo_reprojector/internal/pool"
	"github.com/ecopia-map/geo_reprojector/internal/projector"
	"github.com/ecopia-map/geo_reprojector/internal/reproject"
	"github.com/ecopia-map/geo_reprojector/internal/transform"
	"github.com/ecopia-map/geo_reprojector/pkg/engine_manager"
	"github.com/golang/glog"
	geojson "github.com/paulmach/go.geojson"
)

// Feature of a collection that could not be converted
type FeatureFailure struct {
	Index int         // position of the feature in the input collection
	ID    interface{} // id member of the feature, if any
	Err   error
}

// Outcome of a feature collection conversion
type CollectionResult struct {
	// Converted features in input order. In PARTIAL mode failed features are left out.
	Collection *geojson.FeatureCollection
	// Features left out, ordered by index. Always empty in FAIL_FAST mode.
	Failures []FeatureFailure
}

// Entry points of the reprojection pipeline. Every call builds its own transform session, so a
// Pipeline can be used from several goroutines.
type Pipeline struct {
	engineManager engine_manager.EngineManager
	opts          *reproject.ReprojectOptions
}

func NewPipeline(engineManager engine_manager.EngineManager, opts *reproject.ReprojectOptions) *Pipeline {
	return &Pipeline{
		engineManager: engineManager,
		opts:          opts.Copy(),
	}
}

func (p *Pipeline) newFeatureConverter(buffers *pool.Pool) *featureConverter {
	session := transform.NewSession(p.engineManager.GetEngineFactory(), p.opts.Source, p.opts.Target)
	return &featureConverter{
		converter: projector.NewConverter(session, buffers, p.engineManager.GetCoordinateCorrector()),
		tolerance: p.opts.SimplifyTolerance,
	}
}

// Converts a single geometry
func (p *Pipeline) ConvertGeometry(g *geojson.Geometry) (*geojson.Geometry, error) {
	if g == nil {
		return nil, errors.InvalidGeometryType("")
	}

	converter := p.newFeatureConverter(p.engineManager.GetBufferPool())
	defer converter.close()

	return converter.convertGeometry(g)
}

// Converts a single feature. A feature without geometry is copied as it is.
func (p *Pipeline) ConvertFeature(f *geojson.Feature) (*geojson.Feature, error) {
	converter := p.newFeatureConverter(p.engineManager.GetBufferPool())
	defer converter.close()

	out, err := converter.ConvertFeature(f)
	recordFeature(err)
	return out, err
}

// Converts every feature of fc with a single engine. In FAIL_FAST mode the first failure is
// returned as error, prefixed with the index of the feature. In PARTIAL mode failures are
// collected in the result and the error is nil.
func (p *Pipeline) ConvertFeatureCollection(fc *geojson.FeatureCollection) (*CollectionResult, error) {
	if fc == nil {
		return nil, errors.New(errors.PhasePipeline, errors.KindInvalidGeometryType).
			Detail("missing feature collection").
			Build()
	}

	start := time.Now()
	var results []*geojson.Feature
	var failures []FeatureFailure

	mode := "sequential"
	if p.opts.Workers > 1 && len(fc.Features) > 1 {
		mode = "parallel"
		results, failures = p.convertParallel(fc.Features)
	} else {
		results, failures = p.convertSequential(fc.Features)
	}
	metrics.ObserveCollection(mode, start)

	if p.opts.FailureMode != reproject.Partial && len(failures) > 0 {
		first := failures[0]
		return nil, errors.WithPath(first.Err, errors.Segment("features", first.Index))
	}

	for i := range failures {
		failures[i].Err = errors.WithPath(failures[i].Err, errors.Segment("features", failures[i].Index))
	}

	out := *fc
	out.Features = make([]*geojson.Feature, 0, len(results))
	for _, f := range results {
		if f != nil {
			out.Features = append(out.Features, f)
		}
	}
	if fc.BoundingBox != nil {
		geometries := make([]*geojson.Geometry, len(out.Features))
		for i, f := range out.Features {
			geometries[i] = f.Geometry
		}
		out.BoundingBox = projector.GeometryBounds(geometries...)
	}
	if fc.CRS != nil {
		out.CRS = namedCRS(p.opts.Target)
	}

	if len(failures) > 0 {
		glog.V(1).Infof("%d of %d features could not be converted", len(failures), len(fc.Features))
	}

	return &CollectionResult{
		Collection: &out,
		Failures:   failures,
	}, nil
}

func (p *Pipeline) convertSequential(features []*geojson.Feature) ([]*geojson.Feature, []FeatureFailure) {
	converter := p.newFeatureConverter(p.engineManager.GetBufferPool())
	defer converter.close()

	results := make([]*geojson.Feature, len(features))
	var failures []FeatureFailure
	for i, f := range features {
		converted, err := converter.ConvertFeature(f)
		recordFeature(err)
		if err != nil {
			failures = append(failures, newFeatureFailure(i, f, err))
			if p.opts.FailureMode != reproject.Partial {
				break
			}
			continue
		}
		results[i] = converted
	}
	return results, failures
}

// Spreads features over worker goroutines, each with its own session and pool
func (p *Pipeline) convertParallel(features []*geojson.Feature) ([]*geojson.Feature, []FeatureFailure) {
	numConsumers := p.opts.Workers
	if numConsumers > runtime.NumCPU()*4 {
		numConsumers = runtime.NumCPU() * 4
	}

	// init channel where to submit work with a buffer 5 times greater than the number of consumers
	workChannel := make(chan *io.WorkUnit, numConsumers*5)

	// every feature can fail at most once
	errorChannel := make(chan *io.WorkError, len(features))

	var abort *atomic.Bool
	if p.opts.FailureMode != reproject.Partial {
		abort = &atomic.Bool{}
	}

	results := make([]*geojson.Feature, len(features))
	var waitGroup sync.WaitGroup

	waitGroup.Add(1)
	go io.NewStandardProducer(abort).Produce(workChannel, &waitGroup, features)

	converters := make([]*featureConverter, numConsumers)
	for i := 0; i < numConsumers; i++ {
		converters[i] = p.newFeatureConverter(p.engineManager.GetBufferPool())
		waitGroup.Add(1)
		consumer := io.NewStandardConsumer(countingConverter{converters[i]}, results, abort)
		go consumer.Consume(workChannel, errorChannel, &waitGroup)
	}

	waitGroup.Wait()
	close(errorChannel)
	for _, c := range converters {
		c.close()
	}

	var failures []FeatureFailure
	for workErr := range errorChannel {
		failures = append(failures, newFeatureFailure(workErr.Index, features[workErr.Index], workErr.Err))
	}
	sort.Slice(failures, func(i, j int) bool { return failures[i].Index < failures[j].Index })

	return results, failures
}

// Records feature outcomes for converters running inside consumers
type countingConverter struct {
	*featureConverter
}

func (c countingConverter) ConvertFeature(f *geojson.Feature) (*geojson.Feature, error) {
	out, err := c.featureConverter.ConvertFeature(f)
	recordFeature(err)
	return out, err
}

func newFeatureFailure(index int, f *geojson.Feature, err error) FeatureFailure {
	failure := FeatureFailure{Index: index, Err: err}
	if f != nil {
		failure.ID = f.ID
	}
	return failure
}

func recordFeature(err error) {
	if err != nil {
		metrics.FeaturesProcessed.WithLabelValues("failed").Inc()
		return
	}
	metrics.FeaturesProcessed.WithLabelValues("converted").Inc()
}
