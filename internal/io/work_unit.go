package io

import geojson "github.com/paulmach/go.geojson"

// Contains the minimal data needed to convert a single feature of a collection
type WorkUnit struct {
	Index   int
	Feature *geojson.Feature
}

// Error raised by a consumer while converting the feature at Index
type WorkError struct {
	Index int
	Err   error
}

func (e *WorkError) Error() string {
	return e.Err.Error()
}

func (e *WorkError) Unwrap() error {
	return e.Err
}
