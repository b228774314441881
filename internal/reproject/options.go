package reproject

import "strings"

type FailureMode string
type EngineName string
type OutputFormat string
type PoolMode string

const (
	// Stop at the first feature that cannot be converted and return its error
	FailFast FailureMode = "FAIL_FAST"
	// Skip failing features, keep the others in order and report every failure
	Partial FailureMode = "PARTIAL"
)

const (
	// PROJ through cgo, any EPSG code or proj.4 definition
	EngineProj4 EngineName = "PROJ4"
	// Pure Go, EPSG:4326, EPSG:3857 and EPSG:3395 only
	EngineBuiltin EngineName = "BUILTIN"
)

const (
	OutputGeoJSON OutputFormat = "GEOJSON"
	OutputWKT     OutputFormat = "WKT"
)

const (
	// One synchronized pool shared by every conversion of the process
	PoolShared PoolMode = "shared"
	// A fresh pool for each pipeline call, reused across the members of that call
	PoolPerCall PoolMode = "per-call"
	// No buffer reuse
	PoolOff PoolMode = "off"
)

func (m FailureMode) String() string {
	return string(m)
}

func ParseFailureMode(value string) FailureMode {
	normalizedValue := strings.ReplaceAll(strings.Trim(strings.ToUpper(value), " "), "-", "_")
	if normalizedValue == "FAIL_FAST" {
		return FailFast
	} else if normalizedValue == "PARTIAL" {
		return Partial
	}
	return ""
}

func ParseEngine(value string) EngineName {
	normalizedValue := strings.Trim(strings.ToUpper(value), " ")
	if normalizedValue == "PROJ4" || normalizedValue == "PROJ" {
		return EngineProj4
	} else if normalizedValue == "BUILTIN" {
		return EngineBuiltin
	}
	return ""
}

func ParseOutputFormat(value string) OutputFormat {
	normalizedValue := strings.Trim(strings.ToUpper(value), " ")
	if normalizedValue == "GEOJSON" || normalizedValue == "JSON" {
		return OutputGeoJSON
	} else if normalizedValue == "WKT" {
		return OutputWKT
	}
	return ""
}

func ParsePoolMode(value string) PoolMode {
	normalizedValue := strings.ReplaceAll(strings.Trim(strings.ToLower(value), " "), "_", "-")
	switch normalizedValue {
	case "shared":
		return PoolShared
	case "per-call", "percall":
		return PoolPerCall
	case "off", "none", "disabled":
		return PoolOff
	}
	return ""
}

// Contains the options needed by the reprojection pipeline
type ReprojectOptions struct {
	Source              string      // Identifier of the input coordinate system
	Target              string      // Identifier of the output coordinate system
	Engine              EngineName  // Transformation engine to use
	FailureMode         FailureMode // What to do with features that cannot be converted
	Workers             int         // Number of concurrent feature workers, 1 disables parallelism
	PoolMode            PoolMode    // Coordinate buffer reuse strategy
	PoolInitialCapacity int         // Capacity of freshly allocated coordinate buffers
	SimplifyTolerance   float64     // Douglas-Peucker tolerance in source units, <= 0 disables simplification
	Precision           int         // Decimal places kept in the output, negative disables rounding

	Command        string
	ConvertOptions *ConvertOptions
}

type ConvertOptions struct {
	Input            string       // Input GeoJSON file/folder
	Output           string       // Output folder
	FolderProcessing bool         // Enables the processing of all GeoJSON files in folder
	Recursive        bool         // Recursive lookup of GeoJSON files in subfolders
	OutputFormat     OutputFormat // Format of the written documents
	MetricsFile      string       // Prometheus textfile written at the end of the run, empty to skip
}

func (opt *ReprojectOptions) Copy() *ReprojectOptions {
	newOpt := *opt

	if opt.ConvertOptions != nil {
		convertOpt := *opt.ConvertOptions
		newOpt.ConvertOptions = &convertOpt
	}

	return &newOpt
}
