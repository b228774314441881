package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Engine metrics
	EngineConstructions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "reprojector",
		Subsystem: "engine",
		Name:      "constructions_total",
		Help:      "Total transformation engines built, by outcome",
	}, []string{"outcome"})

	SessionInvalidations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "reprojector",
		Subsystem: "engine",
		Name:      "session_invalidations_total",
		Help:      "Total cached engines discarded after a change of coordinate systems",
	})

	// Conversion metrics
	GeometriesConverted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "reprojector",
		Subsystem: "conversion",
		Name:      "geometries_total",
		Help:      "Total top level geometries converted",
	}, []string{"geometry_type"})

	CoordinatesConverted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "reprojector",
		Subsystem: "conversion",
		Name:      "coordinates_total",
		Help:      "Total coordinates sent to an engine",
	})

	ConversionErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "reprojector",
		Subsystem: "conversion",
		Name:      "errors_total",
		Help:      "Total failed conversions, by error kind",
	}, []string{"kind"})

	// Pipeline metrics
	FeaturesProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "reprojector",
		Subsystem: "pipeline",
		Name:      "features_total",
		Help:      "Total features processed, by outcome",
	}, []string{"outcome"})

	CollectionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "reprojector",
		Subsystem: "pipeline",
		Name:      "collection_duration_seconds",
		Help:      "Duration of feature collection conversions",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
	}, []string{"mode"})

	// CLI metrics
	DocumentsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "reprojector",
		Subsystem: "cli",
		Name:      "documents_total",
		Help:      "Total input documents processed, by outcome",
	}, []string{"outcome"})
)

// ObserveCollection records the duration of a collection conversion since start
func ObserveCollection(mode string, start time.Time) {
	CollectionDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())
}

// WriteTextfile dumps every registered metric to path in the text exposition format,
// for node_exporter's textfile collector
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
