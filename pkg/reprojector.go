package pkg

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/ecopia-map/geo_reprojector/internal/io"
	"github.com/ecopia-map/geo_reprojector/internal/metrics"
	"github.com/ecopia-map/geo_reprojector/internal/reproject"
	"github.com/ecopia-map/geo_reprojector/pkg/engine_manager"
	"github.com/ecopia-map/geo_reprojector/tools"
	"github.com/golang/glog"
)

type IReprojector interface {
	RunReprojector(opts *reproject.ReprojectOptions) error
}

type Reprojector struct {
	fileFinder    tools.FileFinder
	engineManager engine_manager.EngineManager
}

func NewReprojector(fileFinder tools.FileFinder, engineManager engine_manager.EngineManager) IReprojector {
	return &Reprojector{
		fileFinder:    fileFinder,
		engineManager: engineManager,
	}
}

// Starts the reprojection of the input documents
func (r *Reprojector) RunReprojector(opts *reproject.ReprojectOptions) error {
	if opts.ConvertOptions == nil {
		return fmt.Errorf("missing convert options")
	}

	tools.LogOutput("Preparing list of files to process...")

	// Prepare list of files to process
	files, err := r.fileFinder.GetGeoJSONFilesToProcess(opts)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no GeoJSON documents found in %s", opts.ConvertOptions.Input)
	}
	for i, filePath := range files {
		glog.V(1).Infof("file %d [%s]", i, filePath)
	}

	pipeline := NewPipeline(r.engineManager, opts)
	encoder := newEncoder(opts.ConvertOptions.OutputFormat)

	failedFiles := 0
	for i, filePath := range files {
		tools.LogOutput("Processing file " + strconv.Itoa(i+1) + "/" + strconv.Itoa(len(files)))
		if err := r.processFile(pipeline, encoder, filePath, opts); err != nil {
			metrics.DocumentsProcessed.WithLabelValues("failed").Inc()
			if opts.FailureMode != reproject.Partial {
				r.writeMetrics(opts)
				return fmt.Errorf("%s: %w", filePath, err)
			}
			glog.Warningf("%s: %v", filePath, err)
			failedFiles++
			continue
		}
		metrics.DocumentsProcessed.WithLabelValues("converted").Inc()
	}

	r.writeMetrics(opts)

	if failedFiles > 0 {
		return fmt.Errorf("%d of %d documents could not be converted. Check console output for details", failedFiles, len(files))
	}
	return nil
}

func (r *Reprojector) processFile(pipeline *Pipeline, encoder io.DocumentEncoder, filePath string, opts *reproject.ReprojectOptions) error {
	tools.LogOutput("> reading data from file...", filepath.Base(filePath))
	doc, err := io.ReadDocumentFile(filePath)
	if err != nil {
		return err
	}

	tools.LogOutput("> converting " + doc.Kind.String() + "...")
	converted, err := convertDocument(pipeline, doc)
	if err != nil {
		return err
	}

	tools.LogOutput("> exporting data...")
	outPath, err := io.WriteDocument(opts.ConvertOptions.Output, tools.GetFilenameWithoutExtension(filePath), converted, encoder)
	if err != nil {
		return err
	}

	tools.LogOutput("> done processing", filepath.Base(filePath), "->", outPath)
	return nil
}

// Runs the pipeline entry point matching the kind of document
func convertDocument(pipeline *Pipeline, doc *io.Document) (*io.Document, error) {
	switch doc.Kind {
	case io.DocumentFeatureCollection:
		result, err := pipeline.ConvertFeatureCollection(doc.Collection)
		if err != nil {
			return nil, err
		}
		for _, failure := range result.Failures {
			glog.Warningf("feature %d (id %v) skipped: %v", failure.Index, failure.ID, failure.Err)
		}
		return &io.Document{Kind: io.DocumentFeatureCollection, Collection: result.Collection}, nil
	case io.DocumentFeature:
		f, err := pipeline.ConvertFeature(doc.Feature)
		if err != nil {
			return nil, err
		}
		return &io.Document{Kind: io.DocumentFeature, Feature: f}, nil
	default:
		g, err := pipeline.ConvertGeometry(doc.Geometry)
		if err != nil {
			return nil, err
		}
		return &io.Document{Kind: io.DocumentGeometry, Geometry: g}, nil
	}
}

func newEncoder(format reproject.OutputFormat) io.DocumentEncoder {
	if format == reproject.OutputWKT {
		return io.NewWKTEncoder()
	}
	return io.NewGeoJSONEncoder()
}

func (r *Reprojector) writeMetrics(opts *reproject.ReprojectOptions) {
	metricsFile := opts.ConvertOptions.MetricsFile
	if metricsFile == "" {
		return
	}
	if err := metrics.WriteTextfile(metricsFile); err != nil {
		glog.Warningf("cannot write metrics to %s: %v", metricsFile, err)
	}
}
