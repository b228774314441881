// Package errors provides structured error types for the reprojection pipeline.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the context needed for diagnostics: source and target coordinate
// systems, geometry variant, path inside the geometry tree and coordinate offset.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseTransform, errors.KindTransformation).
//		Systems("EPSG:4326", "EPSG:3857").
//		GeometryType("LineString").
//		Offset(12).
//		Cause(engineErr).
//		Build()
//
// Sentinel values match any error of the same kind through the standard library errors.Is:
//
//	if errors.Is(err, reprojerrors.ErrEmptyGeometry) { ... }
package errors
